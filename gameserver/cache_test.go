package gameserver_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/hyperforge/hyperforge.go/gameserver"
	"github.com/stretchr/testify/assert"
)

type countingSource struct {
	mu      sync.Mutex
	fetches int
	lists   int
	entries []gameserver.ManifestEntry
}

func (s *countingSource) Mode() string { return gameserver.HTTP_CLIENT_TYPE }

func (s *countingSource) ListManifests(ctx context.Context) ([]gameserver.ManifestInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lists++
	return []gameserver.ManifestInfo{{Name: "items", AssetCount: len(s.entries)}}, nil
}

func (s *countingSource) FetchManifest(ctx context.Context, name string) (*gameserver.Manifest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetches++
	return &gameserver.Manifest{Name: name, Entries: s.entries}, nil
}

func (s *countingSource) PushManifest(ctx context.Context, name string, m *gameserver.Manifest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = m.Entries
	return nil
}

func (s *countingSource) fetchCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fetches
}

func TestCachedSourceServesFromCache(t *testing.T) {
	src := &countingSource{entries: []gameserver.ManifestEntry{{ID: "sword"}}}
	cached := gameserver.NewCachedManifestSource(src, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		m, err := cached.FetchManifest(ctx, "items")
		assert.NoError(t, err)
		assert.Len(t, m.Entries, 1)
	}
	assert.Equal(t, 1, src.fetchCount())

	for i := 0; i < 3; i++ {
		_, err := cached.ListManifests(ctx)
		assert.NoError(t, err)
	}
	src.mu.Lock()
	lists := src.lists
	src.mu.Unlock()
	assert.Equal(t, 1, lists)
}

func TestCachedSourceExpires(t *testing.T) {
	src := &countingSource{}
	cached := gameserver.NewCachedManifestSource(src, 10*time.Millisecond)
	ctx := context.Background()

	_, err := cached.FetchManifest(ctx, "items")
	assert.NoError(t, err)
	time.Sleep(20 * time.Millisecond)
	_, err = cached.FetchManifest(ctx, "items")
	assert.NoError(t, err)
	assert.Equal(t, 2, src.fetchCount())
}

func TestCachedSourcePushInvalidates(t *testing.T) {
	src := &countingSource{entries: []gameserver.ManifestEntry{{ID: "sword"}}}
	cached := gameserver.NewCachedManifestSource(src, time.Minute)
	ctx := context.Background()

	m, err := cached.FetchManifest(ctx, "items")
	assert.NoError(t, err)
	assert.Len(t, m.Entries, 1)

	pushed := &gameserver.Manifest{Name: "items", Entries: []gameserver.ManifestEntry{{ID: "sword"}, {ID: "axe"}}}
	assert.NoError(t, cached.PushManifest(ctx, "items", pushed))

	m, err = cached.FetchManifest(ctx, "items")
	assert.NoError(t, err)
	assert.Len(t, m.Entries, 2)
}

func TestCachedSourceReturnsCopies(t *testing.T) {
	src := &countingSource{entries: []gameserver.ManifestEntry{{ID: "sword", Name: "Sword"}}}
	cached := gameserver.NewCachedManifestSource(src, time.Minute)
	ctx := context.Background()

	first, err := cached.FetchManifest(ctx, "items")
	assert.NoError(t, err)
	first.Entries[0].Name = "Mutated"

	second, err := cached.FetchManifest(ctx, "items")
	assert.NoError(t, err)
	assert.Equal(t, "Sword", second.Entries[0].Name)
	// both reads hit the cache
	assert.Equal(t, 1, src.fetchCount())
}

func TestCachedSourceInvalidateAll(t *testing.T) {
	src := &countingSource{}
	cached := gameserver.NewCachedManifestSource(src, time.Minute)
	ctx := context.Background()

	_, err := cached.FetchManifest(ctx, "items")
	assert.NoError(t, err)
	cached.InvalidateAll()
	_, err = cached.FetchManifest(ctx, "items")
	assert.NoError(t, err)
	assert.Equal(t, 2, src.fetchCount())
}
