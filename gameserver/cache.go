package gameserver

import (
	"context"
	"sync"
	"time"
)

// CachedManifestSource wraps a manifest source with a ttl cache so the
// graph and import endpoints do not hammer the game server. Pushes and
// file watcher events invalidate eagerly, the ttl covers out-of-band
// edits on the game server side.
type CachedManifestSource struct {
	source ManifestSourceWrapper
	ttl    time.Duration

	mu        sync.RWMutex
	manifests map[string]cachedManifest
	infos     []ManifestInfo
	infosAt   time.Time
}

type cachedManifest struct {
	manifest  *Manifest
	fetchedAt time.Time
}

func NewCachedManifestSource(source ManifestSourceWrapper, ttl time.Duration) *CachedManifestSource {
	return &CachedManifestSource{
		source:    source,
		ttl:       ttl,
		manifests: map[string]cachedManifest{},
	}
}

func (c *CachedManifestSource) Mode() string {
	return c.source.Mode()
}

func (c *CachedManifestSource) ListManifests(ctx context.Context) ([]ManifestInfo, error) {
	c.mu.RLock()
	if c.infos != nil && time.Since(c.infosAt) < c.ttl {
		infos := c.infos
		c.mu.RUnlock()
		return infos, nil
	}
	c.mu.RUnlock()
	infos, err := c.source.ListManifests(ctx)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.infos = infos
	c.infosAt = time.Now()
	c.mu.Unlock()
	return infos, nil
}

func (c *CachedManifestSource) FetchManifest(ctx context.Context, name string) (*Manifest, error) {
	c.mu.RLock()
	cached, found := c.manifests[name]
	c.mu.RUnlock()
	if found && time.Since(cached.fetchedAt) < c.ttl {
		return cached.manifest.clone(), nil
	}
	manifest, err := c.source.FetchManifest(ctx, name)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.manifests[name] = cachedManifest{manifest: manifest.clone(), fetchedAt: time.Now()}
	c.mu.Unlock()
	return manifest, nil
}

func (c *CachedManifestSource) PushManifest(ctx context.Context, name string, m *Manifest) error {
	if err := c.source.PushManifest(ctx, name, m); err != nil {
		return err
	}
	c.Invalidate(name)
	return nil
}

func (c *CachedManifestSource) Invalidate(name string) {
	c.mu.Lock()
	delete(c.manifests, name)
	c.infos = nil
	c.mu.Unlock()
}

func (c *CachedManifestSource) InvalidateAll() {
	c.mu.Lock()
	c.manifests = map[string]cachedManifest{}
	c.infos = nil
	c.mu.Unlock()
}
