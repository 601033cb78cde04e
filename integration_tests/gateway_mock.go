package integration_tests

import (
	"context"
	"fmt"
	"sync"

	"github.com/hyperforge/hyperforge.go/gateway"
)

// MockGateway answers gateway calls with deterministic content.
type MockGateway struct {
	mu          sync.Mutex
	enhanceErr  error
	conceptErr  error
	conceptPNG  []byte
	lastPrompt  string
	enhanceCnt  int
	conceptCnt  int
	metadataCnt int
}

func NewMockGateway() *MockGateway {
	return &MockGateway{conceptPNG: []byte("png-bytes")}
}

func (m *MockGateway) FailNextEnhance(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enhanceErr = err
}

func (m *MockGateway) FailNextConceptArt(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.conceptErr = err
}

func (m *MockGateway) EnhancePrompt(ctx context.Context, prompt string, category string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.enhanceErr != nil {
		err := m.enhanceErr
		m.enhanceErr = nil
		return "", err
	}
	m.enhanceCnt++
	m.lastPrompt = prompt
	return fmt.Sprintf("enhanced %s, detailed game asset", prompt), nil
}

func (m *MockGateway) SuggestMetadata(ctx context.Context, name string, category string, description string) (map[string]interface{}, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.metadataCnt++
	return map[string]interface{}{"rarity": "common", "value": 10}, nil
}

func (m *MockGateway) AnalyzeImage(ctx context.Context, image []byte, mimeType string) (*gateway.ImageAnalysis, error) {
	return &gateway.ImageAnalysis{
		Caption: "concept art of a game asset",
		Tags:    []string{"fantasy", "prop"},
		Palette: []string{"#aa3311", "#222222"},
	}, nil
}

func (m *MockGateway) GenerateConceptArt(ctx context.Context, prompt string, artStyle string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.conceptErr != nil {
		err := m.conceptErr
		m.conceptErr = nil
		return nil, err
	}
	m.conceptCnt++
	m.lastPrompt = prompt
	return m.conceptPNG, nil
}

func (m *MockGateway) EnhanceCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.enhanceCnt
}
