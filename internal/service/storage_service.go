package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	apperrors "pdf-resaver/pkg/errors"
)

// SupabaseStorage uploads files to a Supabase Storage bucket over its REST API
type SupabaseStorage struct {
	baseURL string
	apiKey  string
	bucket  string
	client  *http.Client
}

func NewStorageService(
	baseURL string,
	apiKey string,
	bucket string,
) *SupabaseStorage {
	return &SupabaseStorage{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		bucket:  bucket,
		client:  http.DefaultClient,
	}
}

// Configured reports whether uploads can be attempted
func (s *SupabaseStorage) Configured() bool {
	return s.baseURL != "" && s.apiKey != "" && s.bucket != ""
}

func (s *SupabaseStorage) Upload(
	ctx context.Context,
	path string,
	token string,
	file io.Reader,
) error {
	if !s.Configured() {
		return fmt.Errorf("storage is not configured")
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		s.baseURL+"/storage/v1/object/"+s.bucket+"/"+strings.TrimLeft(path, "/"),
		file,
	)
	if err != nil {
		return err
	}

	// A user token applies the bucket's row level policies to the upload
	if token == "" {
		token = s.apiKey
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("apikey", s.apiKey)
	req.Header.Set("Content-Type", "application/pdf")
	req.Header.Set("x-upsert", "true")

	resp, err := s.client.Do(req)
	if err != nil {
		return apperrors.NewNetworkError("Failed to reach storage", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("storage upload failed: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return nil
}
