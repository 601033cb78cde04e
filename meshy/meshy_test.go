package meshy_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hyperforge/hyperforge.go/meshy"
	"github.com/stretchr/testify/assert"
)

func testClient(handler http.Handler) (*meshy.MeshyClient, *httptest.Server) {
	srv := httptest.NewServer(handler)
	client := meshy.NewMeshyClient(&meshy.Config{
		APIURL:         srv.URL,
		APIKey:         "test-key",
		RequestTimeout: 5,
	})
	return client, srv
}

func TestCreateTextTo3DTask(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody meshy.TextTo3DRequest
	client, srv := testClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(map[string]string{"result": "task-abc"})
	}))
	defer srv.Close()

	taskID, err := client.CreateTextTo3DTask(context.Background(), &meshy.TextTo3DRequest{
		Mode:     meshy.ModePreview,
		Prompt:   "a rusty iron sword",
		ArtStyle: "realistic",
	})
	assert.NoError(t, err)
	assert.Equal(t, "task-abc", taskID)
	assert.Equal(t, "/openapi/v2/text-to-3d", gotPath)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, meshy.ModePreview, gotBody.Mode)
	assert.Equal(t, "a rusty iron sword", gotBody.Prompt)
}

func TestCreateTaskEmptyResult(t *testing.T) {
	client, srv := testClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"result": ""})
	}))
	defer srv.Close()

	_, err := client.CreateRetextureTask(context.Background(), &meshy.RetextureRequest{TextStylePrompt: "gold"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "empty task id")
}

func TestGetTask(t *testing.T) {
	client, srv := testClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/openapi/v1/image-to-3d/task-xyz", r.URL.Path)
		json.NewEncoder(w).Encode(&meshy.Task{
			ID:           "task-xyz",
			Status:       meshy.StatusSucceeded,
			Progress:     100,
			ModelUrls:    meshy.ModelUrls{Glb: "https://assets.meshy.ai/task-xyz.glb"},
			ThumbnailURL: "https://assets.meshy.ai/task-xyz.png",
		})
	}))
	defer srv.Close()

	task, err := client.GetTask(context.Background(), meshy.FamilyImageTo3D, "task-xyz")
	assert.NoError(t, err)
	assert.Equal(t, meshy.StatusSucceeded, task.Status)
	assert.Equal(t, 100, task.Progress)
	assert.Equal(t, "https://assets.meshy.ai/task-xyz.glb", task.ModelUrls.Glb)
	assert.True(t, task.Terminal())
}

func TestGetTaskUnknownFamily(t *testing.T) {
	client, srv := testClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	}))
	defer srv.Close()

	_, err := client.GetTask(context.Background(), "voxel", "task-1")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown task family")
}

func TestErrorResponsesBecomeMeshyErrors(t *testing.T) {
	client, srv := testClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		json.NewEncoder(w).Encode(map[string]string{"message": "insufficient credits"})
	}))
	defer srv.Close()

	_, err := client.CreateTextTo3DTask(context.Background(), &meshy.TextTo3DRequest{Mode: meshy.ModePreview})
	assert.Error(t, err)

	var meshyErr *meshy.MeshyError
	assert.True(t, errors.As(err, &meshyErr))
	assert.Equal(t, http.StatusPaymentRequired, meshyErr.StatusCode)
	assert.Equal(t, "insufficient credits", meshyErr.Message)
}

func TestErrorResponseWithoutJSONBody(t *testing.T) {
	client, srv := testClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream unavailable"))
	}))
	defer srv.Close()

	_, err := client.GetBalance(context.Background())
	var meshyErr *meshy.MeshyError
	assert.True(t, errors.As(err, &meshyErr))
	assert.Equal(t, http.StatusBadGateway, meshyErr.StatusCode)
	assert.Equal(t, "upstream unavailable", meshyErr.Message)
}

func TestGetBalance(t *testing.T) {
	client, srv := testClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/openapi/v1/balance", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]int64{"balance": 420})
	}))
	defer srv.Close()

	balance, err := client.GetBalance(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(420), balance)
}

func TestTaskErrorMessage(t *testing.T) {
	task := &meshy.Task{Status: meshy.StatusFailed, TaskError: &meshy.TaskError{Message: "nsfw prompt"}}
	assert.Equal(t, "nsfw prompt", task.ErrorMessage())
	assert.True(t, task.Terminal())

	running := &meshy.Task{Status: meshy.StatusInProgress}
	assert.Equal(t, "", running.ErrorMessage())
	assert.False(t, running.Terminal())
}
