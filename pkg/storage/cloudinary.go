package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryStore uploads documents to Cloudinary. Credentials come from the
// CLOUDINARY_URL environment variable per the SDK's convention.
type CloudinaryStore struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryStore initializes the Cloudinary client.
func NewCloudinaryStore() (*CloudinaryStore, error) {
	cld, err := cloudinary.New()
	if err != nil {
		return nil, fmt.Errorf("initialize cloudinary client: %w", err)
	}
	cld.Config.URL.Secure = true
	return &CloudinaryStore{cld: cld}, nil
}

// Upload stores the object under <bucket>/<dir-of-path> with the file name as
// public id and returns the secure URL.
func (s *CloudinaryStore) Upload(ctx context.Context, bucket, objectPath string, _ string, data []byte) (string, error) {
	if s == nil || s.cld == nil {
		return "", fmt.Errorf("cloudinary store is not initialized")
	}

	folder := bucket
	if dir := path.Dir(objectPath); dir != "." && dir != "/" {
		folder = bucket + "/" + dir
	}
	name := strings.TrimSuffix(path.Base(objectPath), path.Ext(objectPath))

	resp, err := s.cld.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		Folder:         folder,
		PublicID:       name,
		UseFilename:    api.Bool(true),
		UniqueFilename: api.Bool(false),
		Overwrite:      api.Bool(false),
		ResourceType:   "auto",
	})
	if err != nil {
		return "", fmt.Errorf("upload document to cloudinary: %w", err)
	}
	if resp.SecureURL == "" {
		return "", fmt.Errorf("cloudinary upload returned an empty URL")
	}
	return resp.SecureURL, nil
}
