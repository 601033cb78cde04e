package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// mirrored downloads are capped, provider model archives stay well below this
const maxMirrorBytes = 512 << 20

type SupabaseClient struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
}

func NewSupabaseClient(c *Config) *SupabaseClient {
	return &SupabaseClient{
		baseURL:    strings.TrimSuffix(c.URL, "/"),
		serviceKey: c.ServiceKey,
		httpClient: &http.Client{
			Timeout: time.Duration(c.RequestTimeout) * time.Second,
		},
	}
}

// Upload stores an object and returns its public url. Existing objects
// under the same path are overwritten.
func (s *SupabaseClient) Upload(ctx context.Context, bucket, path string, contentType string, r io.Reader) (string, error) {
	url := fmt.Sprintf("%s/storage/v1/object/%s/%s", s.baseURL, bucket, path)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, r)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+s.serviceKey)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-upsert", "true")
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("storage upload of %s/%s failed: %d %s", bucket, path, resp.StatusCode, string(body))
	}
	return s.PublicURL(bucket, path), nil
}

// Mirror fetches srcURL and re-uploads it under bucket/path. Provider
// model urls expire after a few days, mirroring makes them permanent.
func (s *SupabaseClient) Mirror(ctx context.Context, bucket, path, srcURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srcURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("fetching %s failed: %d", srcURL, resp.StatusCode)
	}
	contentType := resp.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = contentTypeForPath(path)
	}
	return s.Upload(ctx, bucket, path, contentType, io.LimitReader(resp.Body, maxMirrorBytes))
}

// Delete removes objects from a bucket. Missing objects are not an error,
// the bulk endpoint skips them.
func (s *SupabaseClient) Delete(ctx context.Context, bucket string, paths ...string) error {
	if len(paths) == 0 {
		return nil
	}
	payload, err := json.Marshal(map[string][]string{"prefixes": paths})
	if err != nil {
		return err
	}
	url := fmt.Sprintf("%s/storage/v1/object/%s", s.baseURL, bucket)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.serviceKey)
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 && resp.StatusCode != http.StatusNotFound {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("storage delete in %s failed: %d %s", bucket, resp.StatusCode, string(body))
	}
	return nil
}

func (s *SupabaseClient) PublicURL(bucket, path string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, bucket, path)
}

// ListBuckets is used as a credential check on startup.
func (s *SupabaseClient) ListBuckets(ctx context.Context) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/storage/v1/bucket", nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Authorization", "Bearer "+s.serviceKey)
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, err
	}
	if resp.StatusCode >= 300 {
		return 0, fmt.Errorf("listing buckets failed: %d %s", resp.StatusCode, string(body))
	}
	return strings.Count(string(body), "\"id\""), nil
}

// ParsePublicURL splits a public object url back into bucket and path.
// Urls that do not point at a public storage object report ok=false.
func ParsePublicURL(rawURL string) (bucket string, path string, ok bool) {
	const marker = "/storage/v1/object/public/"
	idx := strings.Index(rawURL, marker)
	if idx < 0 {
		return "", "", false
	}
	rest := rawURL[idx+len(marker):]
	bucket, path, found := strings.Cut(rest, "/")
	if !found || bucket == "" || path == "" {
		return "", "", false
	}
	return bucket, path, true
}

func contentTypeForPath(path string) string {
	switch {
	case strings.HasSuffix(path, ".glb"):
		return "model/gltf-binary"
	case strings.HasSuffix(path, ".fbx"):
		return "application/octet-stream"
	case strings.HasSuffix(path, ".vrm"):
		return "application/octet-stream"
	case strings.HasSuffix(path, ".png"):
		return "image/png"
	case strings.HasSuffix(path, ".jpg"), strings.HasSuffix(path, ".jpeg"):
		return "image/jpeg"
	default:
		return "application/octet-stream"
	}
}
