package gameserver_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/hyperforge/hyperforge.go/gameserver"
	"github.com/stretchr/testify/assert"
)

func writeManifestFile(t *testing.T, dir, name string, entries []gameserver.ManifestEntry) {
	t.Helper()
	data, err := json.Marshal(entries)
	assert.NoError(t, err)
	assert.NoError(t, os.WriteFile(filepath.Join(dir, name+".json"), data, 0644))
}

func TestLocalClientListManifests(t *testing.T) {
	dir := t.TempDir()
	writeManifestFile(t, dir, "items", []gameserver.ManifestEntry{
		{ID: "sword", Name: "Sword"},
		{ID: "shield", Name: "Shield"},
	})
	writeManifestFile(t, dir, "npcs", []gameserver.ManifestEntry{
		{ID: "wolf", Name: "Wolf"},
	})
	// hidden files are editor artifacts, not manifests
	assert.NoError(t, os.WriteFile(filepath.Join(dir, ".items.json"), []byte("[]"), 0644))

	client, err := gameserver.NewLocalManifestClient(&gameserver.Config{LocalManifestDir: dir})
	assert.NoError(t, err)
	assert.Equal(t, gameserver.LOCAL_CLIENT_TYPE, client.Mode())

	infos, err := client.ListManifests(context.Background())
	assert.NoError(t, err)
	assert.Len(t, infos, 2)
	// sorted by name
	assert.Equal(t, "items", infos[0].Name)
	assert.Equal(t, 2, infos[0].AssetCount)
	assert.Equal(t, gameserver.LOCAL_CLIENT_TYPE, infos[0].Source)
	assert.Equal(t, "npcs", infos[1].Name)
}

func TestLocalClientFetchManifest(t *testing.T) {
	dir := t.TempDir()
	writeManifestFile(t, dir, "items", []gameserver.ManifestEntry{
		{ID: "sword", Name: "Sword", ModelURL: "https://cdn.test/sword.glb"},
	})

	client, err := gameserver.NewLocalManifestClient(&gameserver.Config{LocalManifestDir: dir})
	assert.NoError(t, err)

	manifest, err := client.FetchManifest(context.Background(), "items")
	assert.NoError(t, err)
	assert.Equal(t, "items", manifest.Name)
	assert.Len(t, manifest.Entries, 1)
	assert.Equal(t, "sword", manifest.Entries[0].ID)
}

func TestLocalClientFetchMissingManifestIsEmpty(t *testing.T) {
	client, err := gameserver.NewLocalManifestClient(&gameserver.Config{LocalManifestDir: t.TempDir()})
	assert.NoError(t, err)

	manifest, err := client.FetchManifest(context.Background(), "buildings")
	assert.NoError(t, err)
	assert.Equal(t, "buildings", manifest.Name)
	assert.Empty(t, manifest.Entries)
}

func TestLocalClientFetchRejectsMalformedManifest(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "items.json"), []byte("{not json"), 0644))

	client, err := gameserver.NewLocalManifestClient(&gameserver.Config{LocalManifestDir: dir})
	assert.NoError(t, err)

	_, err = client.FetchManifest(context.Background(), "items")
	assert.Error(t, err)
}

func TestLocalClientPushManifestRoundTrip(t *testing.T) {
	dir := t.TempDir()
	client, err := gameserver.NewLocalManifestClient(&gameserver.Config{LocalManifestDir: dir})
	assert.NoError(t, err)

	pushed := &gameserver.Manifest{Name: "items", Entries: []gameserver.ManifestEntry{
		{ID: "axe", Name: "Axe", Category: "tool"},
	}}
	assert.NoError(t, client.PushManifest(context.Background(), "items", pushed))

	// no temp file left behind
	_, err = os.Stat(filepath.Join(dir, "items.json.tmp"))
	assert.True(t, os.IsNotExist(err))

	fetched, err := client.FetchManifest(context.Background(), "items")
	assert.NoError(t, err)
	assert.Len(t, fetched.Entries, 1)
	assert.Equal(t, "axe", fetched.Entries[0].ID)

	// the written file is a plain entries array, the format the game server reads
	data, err := os.ReadFile(filepath.Join(dir, "items.json"))
	assert.NoError(t, err)
	entries := []gameserver.ManifestEntry{}
	assert.NoError(t, json.Unmarshal(data, &entries))
	assert.Len(t, entries, 1)
}

func TestNewLocalManifestClientValidatesDir(t *testing.T) {
	_, err := gameserver.NewLocalManifestClient(&gameserver.Config{LocalManifestDir: "/does/not/exist"})
	assert.Error(t, err)

	file := filepath.Join(t.TempDir(), "manifests")
	assert.NoError(t, os.WriteFile(file, []byte("x"), 0644))
	_, err = gameserver.NewLocalManifestClient(&gameserver.Config{LocalManifestDir: file})
	assert.Error(t, err)
}
