package storage_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hyperforge/hyperforge.go/storage"
	"github.com/stretchr/testify/assert"
)

func testClient(handler http.Handler) (*storage.SupabaseClient, *httptest.Server) {
	srv := httptest.NewServer(handler)
	client := storage.NewSupabaseClient(&storage.Config{
		URL:            srv.URL,
		ServiceKey:     "service-key",
		RequestTimeout: 5,
	})
	return client, srv
}

func TestUpload(t *testing.T) {
	var gotPath, gotAuth, gotUpsert, gotContentType string
	var gotBody []byte
	client, srv := testClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotUpsert = r.Header.Get("x-upsert")
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	url, err := client.Upload(context.Background(), "models", "assets/hf_1/model.glb", "model/gltf-binary", strings.NewReader("glTF"))
	assert.NoError(t, err)
	assert.Equal(t, srv.URL+"/storage/v1/object/public/models/assets/hf_1/model.glb", url)
	assert.Equal(t, "/storage/v1/object/models/assets/hf_1/model.glb", gotPath)
	assert.Equal(t, "Bearer service-key", gotAuth)
	assert.Equal(t, "true", gotUpsert)
	assert.Equal(t, "model/gltf-binary", gotContentType)
	assert.Equal(t, "glTF", string(gotBody))
}

func TestUploadFailure(t *testing.T) {
	client, srv := testClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message":"bucket not found"}`))
	}))
	defer srv.Close()

	_, err := client.Upload(context.Background(), "missing", "a.png", "image/png", strings.NewReader("x"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "storage upload")
	assert.Contains(t, err.Error(), "bucket not found")
}

func TestMirror(t *testing.T) {
	src := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Write([]byte("model-bytes"))
	}))
	defer src.Close()

	var gotContentType string
	var gotBody []byte
	client, srv := testClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	url, err := client.Mirror(context.Background(), "models", "assets/hf_2/task.glb", src.URL+"/task.glb")
	assert.NoError(t, err)
	assert.Equal(t, srv.URL+"/storage/v1/object/public/models/assets/hf_2/task.glb", url)
	assert.Equal(t, "model-bytes", string(gotBody))
	// octet-stream from the provider is replaced with the type implied by the path
	assert.Equal(t, "model/gltf-binary", gotContentType)
}

func TestMirrorSourceFailure(t *testing.T) {
	src := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer src.Close()

	client, srv := testClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no upload expected when the source fetch fails")
	}))
	defer srv.Close()

	_, err := client.Mirror(context.Background(), "models", "a.glb", src.URL+"/gone.glb")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestDelete(t *testing.T) {
	var gotMethod, gotPath string
	var gotPayload map[string][]string
	client, srv := testClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	err := client.Delete(context.Background(), "images", "assets/hf_1/thumb.png", "assets/hf_1/concept.png")
	assert.NoError(t, err)
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/storage/v1/object/images", gotPath)
	assert.Equal(t, []string{"assets/hf_1/thumb.png", "assets/hf_1/concept.png"}, gotPayload["prefixes"])
}

func TestDeleteToleratesMissingObjects(t *testing.T) {
	client, srv := testClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	assert.NoError(t, client.Delete(context.Background(), "images", "gone.png"))
}

func TestDeleteWithoutPathsIsNoop(t *testing.T) {
	client, srv := testClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	}))
	defer srv.Close()

	assert.NoError(t, client.Delete(context.Background(), "images"))
}

func TestParsePublicURL(t *testing.T) {
	bucket, path, ok := storage.ParsePublicURL("https://proj.supabase.co/storage/v1/object/public/models/assets/hf_1/model.glb")
	assert.True(t, ok)
	assert.Equal(t, "models", bucket)
	assert.Equal(t, "assets/hf_1/model.glb", path)

	_, _, ok = storage.ParsePublicURL("https://assets.meshy.ai/task.glb")
	assert.False(t, ok)

	_, _, ok = storage.ParsePublicURL("https://proj.supabase.co/storage/v1/object/public/models")
	assert.False(t, ok)
}
