package integration_tests

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
)

// MockStorage keeps uploaded objects in memory. Mirror records the
// source url as the object body instead of fetching it.
type MockStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	deleted []string
}

func NewMockStorage() *MockStorage {
	return &MockStorage{objects: map[string][]byte{}}
}

func (m *MockStorage) key(bucket, path string) string {
	return bucket + "/" + path
}

func (m *MockStorage) Upload(ctx context.Context, bucket, path string, contentType string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[m.key(bucket, path)] = data
	return m.PublicURL(bucket, path), nil
}

func (m *MockStorage) Mirror(ctx context.Context, bucket, path, srcURL string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[m.key(bucket, path)] = []byte("mirrored from " + srcURL)
	return m.PublicURL(bucket, path), nil
}

func (m *MockStorage) Delete(ctx context.Context, bucket string, paths ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, path := range paths {
		delete(m.objects, m.key(bucket, path))
		m.deleted = append(m.deleted, m.key(bucket, path))
	}
	return nil
}

func (m *MockStorage) PublicURL(bucket, path string) string {
	return fmt.Sprintf("https://storage.test/storage/v1/object/public/%s/%s", bucket, path)
}

func (m *MockStorage) Has(bucket, path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[m.key(bucket, path)]
	return ok
}

// ObjectCount counts stored objects, optionally under a prefix.
func (m *MockStorage) ObjectCount(prefix string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for key := range m.objects {
		if strings.HasPrefix(key, prefix) {
			count++
		}
	}
	return count
}

func (m *MockStorage) DeletedKeys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string{}, m.deleted...)
}
