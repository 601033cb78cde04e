package meshy

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

// task statuses as returned by the meshy api
const (
	StatusPending    = "PENDING"
	StatusInProgress = "IN_PROGRESS"
	StatusSucceeded  = "SUCCEEDED"
	StatusFailed     = "FAILED"
	StatusCanceled   = "CANCELED"
)

// task families, each with its own endpoint
const (
	FamilyTextTo3D  = "text-to-3d"
	FamilyImageTo3D = "image-to-3d"
	FamilyRetexture = "retexture"
)

const (
	ModePreview = "preview"
	ModeRefine  = "refine"
)

type TextTo3DRequest struct {
	Mode            string `json:"mode"`
	Prompt          string `json:"prompt,omitempty"`
	ArtStyle        string `json:"art_style,omitempty"`
	NegativePrompt  string `json:"negative_prompt,omitempty"`
	PreviewTaskID   string `json:"preview_task_id,omitempty"`
	TexturePrompt   string `json:"texture_prompt,omitempty"`
	Topology        string `json:"topology,omitempty"`
	TargetPolycount int    `json:"target_polycount,omitempty"`
	SymmetryMode    string `json:"symmetry_mode,omitempty"`
	ShouldRemesh    bool   `json:"should_remesh,omitempty"`
	EnablePBR       bool   `json:"enable_pbr,omitempty"`
	Seed            int    `json:"seed,omitempty"`
}

type ImageTo3DRequest struct {
	ImageURL        string `json:"image_url"`
	Topology        string `json:"topology,omitempty"`
	TargetPolycount int    `json:"target_polycount,omitempty"`
	EnablePBR       bool   `json:"enable_pbr,omitempty"`
	ShouldRemesh    bool   `json:"should_remesh,omitempty"`
	ShouldTexture   bool   `json:"should_texture,omitempty"`
}

type RetextureRequest struct {
	InputTaskID      string `json:"input_task_id,omitempty"`
	ModelURL         string `json:"model_url,omitempty"`
	TextStylePrompt  string `json:"text_style_prompt"`
	ArtStyle         string `json:"art_style,omitempty"`
	EnableOriginalUV bool   `json:"enable_original_uv,omitempty"`
	EnablePBR        bool   `json:"enable_pbr,omitempty"`
}

type ModelUrls struct {
	Glb  string `json:"glb,omitempty"`
	Fbx  string `json:"fbx,omitempty"`
	Obj  string `json:"obj,omitempty"`
	Mtl  string `json:"mtl,omitempty"`
	Usdz string `json:"usdz,omitempty"`
}

type TextureUrls struct {
	BaseColor string `json:"base_color,omitempty"`
	Metallic  string `json:"metallic,omitempty"`
	Normal    string `json:"normal,omitempty"`
	Roughness string `json:"roughness,omitempty"`
}

type TaskError struct {
	Message string `json:"message"`
}

type Task struct {
	ID             string        `json:"id"`
	Status         string        `json:"status"`
	Progress       int           `json:"progress"`
	Prompt         string        `json:"prompt,omitempty"`
	ArtStyle       string        `json:"art_style,omitempty"`
	NegativePrompt string        `json:"negative_prompt,omitempty"`
	ModelUrls      ModelUrls     `json:"model_urls"`
	TextureUrls    []TextureUrls `json:"texture_urls,omitempty"`
	ThumbnailURL   string        `json:"thumbnail_url,omitempty"`
	TaskError      *TaskError    `json:"task_error,omitempty"`
	CreatedAt      int64         `json:"created_at,omitempty"`
	StartedAt      int64         `json:"started_at,omitempty"`
	FinishedAt     int64         `json:"finished_at,omitempty"`
}

func (t *Task) Terminal() bool {
	return t.Status == StatusSucceeded || t.Status == StatusFailed || t.Status == StatusCanceled
}

func (t *Task) ErrorMessage() string {
	if t.TaskError != nil {
		return t.TaskError.Message
	}
	return ""
}

// MeshyError carries the api's status code and error message so the
// caller can store it on the failed job.
type MeshyError struct {
	StatusCode int
	Message    string
}

func (e *MeshyError) Error() string {
	return fmt.Sprintf("meshy: %d %s", e.StatusCode, e.Message)
}

type createResult struct {
	Result string `json:"result"`
}

type balanceResult struct {
	Balance int64 `json:"balance"`
}

type MeshyClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewMeshyClient(c *Config) *MeshyClient {
	return &MeshyClient{
		baseURL: c.APIURL,
		apiKey:  c.APIKey,
		httpClient: &http.Client{
			Timeout: time.Duration(c.RequestTimeout) * time.Second,
		},
	}
}

func (client *MeshyClient) CreateTextTo3DTask(ctx context.Context, req *TextTo3DRequest) (string, error) {
	return client.createTask(ctx, "/openapi/v2/text-to-3d", req)
}

func (client *MeshyClient) CreateImageTo3DTask(ctx context.Context, req *ImageTo3DRequest) (string, error) {
	return client.createTask(ctx, "/openapi/v1/image-to-3d", req)
}

func (client *MeshyClient) CreateRetextureTask(ctx context.Context, req *RetextureRequest) (string, error) {
	return client.createTask(ctx, "/openapi/v1/retexture", req)
}

func (client *MeshyClient) GetTask(ctx context.Context, family string, taskID string) (*Task, error) {
	path, err := familyPath(family)
	if err != nil {
		return nil, err
	}
	body, err := client.doRequest(ctx, http.MethodGet, fmt.Sprintf("%s/%s", path, taskID), nil)
	if err != nil {
		return nil, err
	}
	task := &Task{}
	if err := json.Unmarshal(body, task); err != nil {
		return nil, err
	}
	return task, nil
}

// GetBalance returns the remaining api credits, also used as a liveness probe.
func (client *MeshyClient) GetBalance(ctx context.Context) (int64, error) {
	body, err := client.doRequest(ctx, http.MethodGet, "/openapi/v1/balance", nil)
	if err != nil {
		return 0, err
	}
	result := balanceResult{}
	if err := json.Unmarshal(body, &result); err != nil {
		return 0, err
	}
	return result.Balance, nil
}

func (client *MeshyClient) createTask(ctx context.Context, path string, payload interface{}) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	respBody, err := client.doRequest(ctx, http.MethodPost, path, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	result := createResult{}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", err
	}
	if result.Result == "" {
		return "", fmt.Errorf("meshy returned an empty task id")
	}
	return result.Result, nil
}

func (client *MeshyClient) doRequest(ctx context.Context, method, path string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, client.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+client.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := client.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 300 {
		apiErr := &MeshyError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(respBody))}
		parsed := struct {
			Message string `json:"message"`
		}{}
		if json.Unmarshal(respBody, &parsed) == nil && parsed.Message != "" {
			apiErr.Message = parsed.Message
		}
		return nil, apiErr
	}
	return respBody, nil
}

func familyPath(family string) (string, error) {
	switch family {
	case FamilyTextTo3D:
		return "/openapi/v2/text-to-3d", nil
	case FamilyImageTo3D:
		return "/openapi/v1/image-to-3d", nil
	case FamilyRetexture:
		return "/openapi/v1/retexture", nil
	default:
		return "", fmt.Errorf("unknown task family %s", family)
	}
}
