// Command flowcheck walks the registration wizard against a running instance
// and reports where the flow breaks. Intended for post-deploy smoke checks.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"time"
)

type step struct {
	Name     string
	Method   string
	Path     string
	Body     func() (io.Reader, string)
	Expected int
}

type result struct {
	Step     step
	Status   int
	Error    error
	Duration time.Duration
}

type envelope struct {
	Data struct {
		ID    string `json:"id"`
		Stage string `json:"stage"`
	} `json:"data"`
}

func main() {
	var (
		base    string
		role    string
		timeout time.Duration
	)

	flag.StringVar(&base, "base", "http://localhost:8080/api/v1", "API base URL")
	flag.StringVar(&role, "role", "Customer", "Role to register as")
	flag.DurationVar(&timeout, "timeout", 10*time.Second, "HTTP client timeout")
	flag.Parse()

	client := &http.Client{Timeout: timeout}

	draftID, err := createDraft(client, base)
	if err != nil {
		log.Fatalf("failed to create draft: %v", err)
	}

	email := fmt.Sprintf("flowcheck+%d@example.com", time.Now().UnixNano())
	steps := []step{
		{
			Name:   "set role",
			Method: http.MethodPut,
			Path:   fmt.Sprintf("/registration/drafts/%s/role", draftID),
			Body: func() (io.Reader, string) {
				return jsonBody(map[string]string{"role": role})
			},
			Expected: http.StatusOK,
		},
		{
			Name:   "patch fields",
			Method: http.MethodPatch,
			Path:   fmt.Sprintf("/registration/drafts/%s/fields", draftID),
			Body: func() (io.Reader, string) {
				return jsonBody(map[string]string{
					"email":      email,
					"password":   "flowcheck-secret",
					"first_name": "Flow",
					"last_name":  "Check",
				})
			},
			Expected: http.StatusOK,
		},
		{
			Name:     "advance to contact",
			Method:   http.MethodPost,
			Path:     fmt.Sprintf("/registration/drafts/%s/advance", draftID),
			Expected: http.StatusOK,
		},
		{
			Name:   "stage selfie",
			Method: http.MethodPost,
			Path:   fmt.Sprintf("/registration/drafts/%s/files/selfie_photo", draftID),
			Body: func() (io.Reader, string) {
				return fileBody("selfie.jpg", []byte("flowcheck"))
			},
			Expected: http.StatusOK,
		},
		{
			Name:     "advance to documents",
			Method:   http.MethodPost,
			Path:     fmt.Sprintf("/registration/drafts/%s/advance", draftID),
			Expected: http.StatusOK,
		},
	}

	var results []result
	failures := 0
	for _, s := range steps {
		res := runStep(client, base, s)
		if res.Error != nil || res.Status != s.Expected {
			failures++
		}
		results = append(results, res)
	}

	printReport(results)
	if failures > 0 {
		os.Exit(1)
	}
	fmt.Printf("wizard flow OK for draft %s (role %s)\n", draftID, role)
}

func createDraft(client *http.Client, base string) (string, error) {
	resp, err := client.Post(base+"/registration/drafts", "application/json", nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return "", err
	}
	if env.Data.ID == "" {
		return "", fmt.Errorf("response carried no draft id")
	}
	return env.Data.ID, nil
}

func runStep(client *http.Client, base string, s step) result {
	res := result{Step: s}

	var body io.Reader
	contentType := "application/json"
	if s.Body != nil {
		body, contentType = s.Body()
	}

	req, err := http.NewRequest(s.Method, base+s.Path, body)
	if err != nil {
		res.Error = err
		return res
	}
	req.Header.Set("Content-Type", contentType)

	start := time.Now()
	resp, err := client.Do(req)
	res.Duration = time.Since(start)
	if err != nil {
		res.Error = err
		return res
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	res.Status = resp.StatusCode
	return res
}

func jsonBody(payload interface{}) (io.Reader, string) {
	data, _ := json.Marshal(payload)
	return bytes.NewReader(data), "application/json"
}

func fileBody(name string, data []byte) (io.Reader, string) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, _ := writer.CreateFormFile("file", name)
	_, _ = part.Write(data)
	_ = writer.Close()
	return &buf, writer.FormDataContentType()
}

func printReport(results []result) {
	for _, res := range results {
		status := "ok"
		detail := fmt.Sprintf("%d", res.Status)
		if res.Error != nil {
			status = "FAIL"
			detail = res.Error.Error()
		} else if res.Status != res.Step.Expected {
			status = "FAIL"
			detail = fmt.Sprintf("got %d want %d", res.Status, res.Step.Expected)
		}
		fmt.Printf("%-22s %-4s %s (%s)\n", res.Step.Name, status, detail, res.Duration.Round(time.Millisecond))
	}
}
