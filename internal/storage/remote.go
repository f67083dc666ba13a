package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"time"
)

// RemoteStorage posts design files to the file service as multipart uploads
// and returns the URL the service assigns. Used in production where uploads
// must outlive a single backend instance.
type RemoteStorage struct {
	endpoint   string
	httpClient *http.Client
}

// NewRemoteStorage は RemoteStorage を生成する。
func NewRemoteStorage(endpoint string, timeout time.Duration) *RemoteStorage {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &RemoteStorage{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Save uploads the file under its key's basename. The key's directory part
// carries the owning user, passed along as the username field.
func (s *RemoteStorage) Save(ctx context.Context, key string, data io.Reader, contentType string) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	part, err := mw.CreateFormFile("file", path.Base(key))
	if err != nil {
		return "", fmt.Errorf("storage: multipart: %w", err)
	}
	if _, err := io.Copy(part, data); err != nil {
		return "", fmt.Errorf("storage: read upload: %w", err)
	}
	if err := mw.WriteField("username", path.Dir(key)); err != nil {
		return "", fmt.Errorf("storage: multipart field: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("storage: multipart close: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, &body)
	if err != nil {
		return "", fmt.Errorf("storage: build request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("storage: upload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("storage: upload failed with status %d", resp.StatusCode)
	}

	var result struct {
		FileURL string `json:"file_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("storage: decode response: %w", err)
	}
	if result.FileURL == "" {
		return "", fmt.Errorf("storage: empty file_url in response")
	}
	return result.FileURL, nil
}

// Delete is a no-op: the file service owns retention of uploaded designs.
func (s *RemoteStorage) Delete(_ context.Context, _ string) error {
	return nil
}
