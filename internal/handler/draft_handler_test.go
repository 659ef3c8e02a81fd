package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelintrips/registration-api/internal/dto"
	"github.com/travelintrips/registration-api/internal/models"
	"github.com/travelintrips/registration-api/internal/service"
	appErrors "github.com/travelintrips/registration-api/pkg/errors"
	"github.com/travelintrips/registration-api/pkg/response"
)

type memoryDraftStore struct {
	drafts map[string]*models.RegistrationDraft
}

func newMemoryDraftStore() *memoryDraftStore {
	return &memoryDraftStore{drafts: make(map[string]*models.RegistrationDraft)}
}

func (s *memoryDraftStore) Get(ctx context.Context, id string) (*models.RegistrationDraft, error) {
	draft, ok := s.drafts[id]
	if !ok {
		return nil, appErrors.ErrDraftNotFound
	}
	return draft, nil
}

func (s *memoryDraftStore) Save(ctx context.Context, draft *models.RegistrationDraft) error {
	s.drafts[draft.ID] = draft
	return nil
}

func (s *memoryDraftStore) Delete(ctx context.Context, id string) error {
	delete(s.drafts, id)
	return nil
}

func newDraftTestHandler(store *memoryDraftStore) *DraftHandler {
	wizard := service.NewWizardService(store, nil, nil, service.WizardConfig{MinPasswordLength: 6, MaxFileSizeBytes: 1024})
	return NewDraftHandler(wizard, nil)
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) response.Envelope {
	t.Helper()
	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope
}

func TestDraftHandlerCreate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newDraftTestHandler(newMemoryDraftStore())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/registration/drafts", nil)

	handler.Create(c)
	require.Equal(t, http.StatusCreated, w.Code)

	envelope := decodeEnvelope(t, w)
	require.NotNil(t, envelope.Data)
}

func TestDraftHandlerGetNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newDraftTestHandler(newMemoryDraftStore())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/registration/drafts/missing", nil)
	c.Params = gin.Params{{Key: "id", Value: "missing"}}

	handler.Get(c)
	assert.Equal(t, http.StatusNotFound, w.Code)

	envelope := decodeEnvelope(t, w)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, appErrors.ErrDraftNotFound.Code, envelope.Error.Code)
}

func TestDraftHandlerSetRoleUnknown(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := newMemoryDraftStore()
	handler := newDraftTestHandler(store)

	draft := models.NewRegistrationDraft()
	store.drafts[draft.ID] = draft

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body, _ := json.Marshal(dto.SetRoleRequest{Role: "Pilot"})
	c.Request, _ = http.NewRequest(http.MethodPut, "/registration/drafts/"+draft.ID+"/role", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: draft.ID}}

	handler.SetRole(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	envelope := decodeEnvelope(t, w)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, appErrors.ErrUnknownRole.Code, envelope.Error.Code)
}

func TestDraftHandlerAdvanceBlockedReturnsState(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := newMemoryDraftStore()
	handler := newDraftTestHandler(store)

	draft := models.NewRegistrationDraft()
	store.drafts[draft.ID] = draft

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/registration/drafts/"+draft.ID+"/advance", nil)
	c.Params = gin.Params{{Key: "id", Value: draft.ID}}

	handler.Advance(c)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	envelope := decodeEnvelope(t, w)
	require.NotNil(t, envelope.Data)
	state, ok := envelope.Data.(map[string]interface{})
	require.True(t, ok)
	assert.NotEmpty(t, state["errors"])
}

func TestDraftHandlerStageFileMissingField(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := newMemoryDraftStore()
	handler := newDraftTestHandler(store)

	draft := models.NewRegistrationDraft()
	store.drafts[draft.ID] = draft

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/registration/drafts/"+draft.ID+"/files/selfie_photo", nil)
	c.Params = gin.Params{{Key: "id", Value: draft.ID}, {Key: "slot", Value: "selfie_photo"}}

	handler.StageFile(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDraftHandlerStageFileMultipart(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := newMemoryDraftStore()
	handler := newDraftTestHandler(store)

	draft := models.NewRegistrationDraft()
	store.drafts[draft.ID] = draft

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "selfie.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("jpeg-bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/registration/drafts/"+draft.ID+"/files/selfie_photo", &buf)
	c.Request.Header.Set("Content-Type", writer.FormDataContentType())
	c.Params = gin.Params{{Key: "id", Value: draft.ID}, {Key: "slot", Value: "selfie_photo"}}

	handler.StageFile(c)
	require.Equal(t, http.StatusOK, w.Code)

	staged, ok := store.drafts[draft.ID].Files[models.SlotSelfiePhoto]
	require.True(t, ok)
	assert.Equal(t, "selfie.jpg", staged.Name)
	assert.Equal(t, []byte("jpeg-bytes"), staged.Data)
}
