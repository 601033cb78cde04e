package gameserver

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

type HTTPManifestClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewHTTPManifestClient(c *Config) *HTTPManifestClient {
	return &HTTPManifestClient{
		baseURL: strings.TrimSuffix(c.URL, "/"),
		token:   c.Token,
		httpClient: &http.Client{
			Timeout: time.Duration(c.RequestTimeout) * time.Second,
		},
	}
}

func (g *HTTPManifestClient) Mode() string {
	return HTTP_CLIENT_TYPE
}

func (g *HTTPManifestClient) ListManifests(ctx context.Context) ([]ManifestInfo, error) {
	body, err := g.doRequest(ctx, http.MethodGet, "/api/manifests", nil)
	if err != nil {
		return nil, err
	}
	var result struct {
		Manifests []ManifestInfo `json:"manifests"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, err
	}
	for i := range result.Manifests {
		result.Manifests[i].Source = g.baseURL
	}
	return result.Manifests, nil
}

func (g *HTTPManifestClient) FetchManifest(ctx context.Context, name string) (*Manifest, error) {
	body, err := g.doRequest(ctx, http.MethodGet, "/api/manifests/"+name, nil)
	if err != nil {
		return nil, err
	}
	entries := []ManifestEntry{}
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, err
	}
	return &Manifest{Name: name, Entries: entries}, nil
}

func (g *HTTPManifestClient) PushManifest(ctx context.Context, name string, m *Manifest) error {
	body, err := json.Marshal(m.Entries)
	if err != nil {
		return err
	}
	_, err = g.doRequest(ctx, http.MethodPut, "/api/manifests/"+name, bytes.NewReader(body))
	return err
}

func (g *HTTPManifestClient) doRequest(ctx context.Context, method, path string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if g.token != "" {
		req.Header.Set("Authorization", "Bearer "+g.token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("game server request %s %s failed: %d %s", method, path, resp.StatusCode, string(respBody))
	}
	return respBody, nil
}
