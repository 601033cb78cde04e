package gameserver

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/ziflex/lecho/v3"
)

// LocalManifestClient reads manifests straight from a checkout of the
// game server's content directory. Used for development against a local
// game server without running its http api.
type LocalManifestClient struct {
	dir string
}

func NewLocalManifestClient(c *Config) (*LocalManifestClient, error) {
	info, err := os.Stat(c.LocalManifestDir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", c.LocalManifestDir)
	}
	return &LocalManifestClient{dir: c.LocalManifestDir}, nil
}

func (g *LocalManifestClient) Mode() string {
	return LOCAL_CLIENT_TYPE
}

func (g *LocalManifestClient) ListManifests(ctx context.Context) ([]ManifestInfo, error) {
	files, err := filepath.Glob(filepath.Join(g.dir, "*.json"))
	if err != nil {
		return nil, err
	}
	infos := []ManifestInfo{}
	for _, f := range files {
		base := filepath.Base(f)
		if strings.HasPrefix(base, ".") {
			continue
		}
		name := strings.TrimSuffix(base, ".json")
		info := ManifestInfo{Name: name, Source: LOCAL_CLIENT_TYPE}
		if m, err := g.FetchManifest(ctx, name); err == nil {
			info.AssetCount = len(m.Entries)
		}
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos, nil
}

func (g *LocalManifestClient) FetchManifest(ctx context.Context, name string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(g.dir, name+".json"))
	if err != nil {
		// a manifest that has not been written yet is just empty
		if os.IsNotExist(err) {
			return &Manifest{Name: name, Entries: []ManifestEntry{}}, nil
		}
		return nil, err
	}
	entries := []ManifestEntry{}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	return &Manifest{Name: name, Entries: entries}, nil
}

func (g *LocalManifestClient) PushManifest(ctx context.Context, name string, m *Manifest) error {
	data, err := json.MarshalIndent(m.Entries, "", "  ")
	if err != nil {
		return err
	}
	// write to a temp file first so the game server never reads a partial manifest
	path := filepath.Join(g.dir, name+".json")
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// StartWatch blocks until ctx is canceled and calls onChange with the
// manifest name whenever a manifest file changes on disk.
func (g *LocalManifestClient) StartWatch(ctx context.Context, logger *lecho.Logger, onChange func(name string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	if err := watcher.Add(g.dir); err != nil {
		return err
	}
	logger.Infof("Watching local manifest directory: %s", g.dir)
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !strings.HasSuffix(event.Name, ".json") {
				continue
			}
			base := filepath.Base(event.Name)
			if strings.HasPrefix(base, ".") || strings.HasPrefix(base, "~") {
				continue
			}
			if event.Has(fsnotify.Create) || event.Has(fsnotify.Write) ||
				event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				onChange(strings.TrimSuffix(base, ".json"))
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Errorf("Manifest watcher error: %v", err)
		case <-ctx.Done():
			return nil
		}
	}
}
