package gameserver

import (
	"context"
	"errors"
	"time"

	"github.com/ziflex/lecho/v3"
)

type ManifestSourceWrapper interface {
	Mode() string
	ListManifests(ctx context.Context) ([]ManifestInfo, error)
	FetchManifest(ctx context.Context, name string) (*Manifest, error)
	PushManifest(ctx context.Context, name string, m *Manifest) error
}

// InitManifestClient connects to the game server, preferring a local
// content directory when one is configured. The returned source is
// always wrapped in the ttl cache.
func InitManifestClient(c *Config, logger *lecho.Logger, ctx context.Context) (ManifestSourceWrapper, error) {
	ttl := time.Duration(c.CacheTTLSeconds) * time.Second
	switch {
	case c.LocalManifestDir != "":
		client, err := NewLocalManifestClient(c)
		if err != nil {
			return nil, err
		}
		cached := NewCachedManifestSource(client, ttl)
		go func() {
			if err := client.StartWatch(ctx, logger, func(name string) {
				cached.Invalidate(name)
			}); err != nil {
				logger.Errorf("Manifest watcher terminated: %v", err)
			}
		}()
		logger.Infof("Using local manifest directory: %s", c.LocalManifestDir)
		return cached, nil
	case c.URL != "":
		client := NewHTTPManifestClient(c)
		infos, err := client.ListManifests(ctx)
		if err != nil {
			return nil, err
		}
		logger.Infof("Connected to game server, %d manifests available", len(infos))
		return NewCachedManifestSource(client, ttl), nil
	default:
		return nil, errors.New("no game server configured, set GAME_SERVER_URL or LOCAL_MANIFEST_DIR")
	}
}
