package integration_tests

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/hyperforge/hyperforge.go/meshy"
)

// MockMeshProvider keeps submitted tasks in memory. Suites drive the
// task lifecycle with SucceedTask/FailTask/SetProgress and let the
// poller pick the changes up.
type MockMeshProvider struct {
	mu        sync.Mutex
	tasks     map[string]*meshy.Task
	counter   int
	createErr error
}

func NewMockMeshProvider() *MockMeshProvider {
	return &MockMeshProvider{tasks: map[string]*meshy.Task{}}
}

// FailNextCreate makes the next task submission fail with err.
func (m *MockMeshProvider) FailNextCreate(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createErr = err
}

func (m *MockMeshProvider) newTask(prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		err := m.createErr
		m.createErr = nil
		return "", err
	}
	m.counter++
	id := fmt.Sprintf("mock-task-%d", m.counter)
	m.tasks[id] = &meshy.Task{ID: id, Status: meshy.StatusPending, Prompt: prompt}
	return id, nil
}

func (m *MockMeshProvider) CreateTextTo3DTask(ctx context.Context, req *meshy.TextTo3DRequest) (string, error) {
	return m.newTask(req.Prompt)
}

func (m *MockMeshProvider) CreateImageTo3DTask(ctx context.Context, req *meshy.ImageTo3DRequest) (string, error) {
	return m.newTask(req.ImageURL)
}

func (m *MockMeshProvider) CreateRetextureTask(ctx context.Context, req *meshy.RetextureRequest) (string, error) {
	return m.newTask(req.TextStylePrompt)
}

func (m *MockMeshProvider) GetTask(ctx context.Context, family string, taskID string) (*meshy.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	task, ok := m.tasks[taskID]
	if !ok {
		return nil, &meshy.MeshyError{StatusCode: http.StatusNotFound, Message: "task not found"}
	}
	copied := *task
	return &copied, nil
}

func (m *MockMeshProvider) GetBalance(ctx context.Context) (int64, error) {
	return 1000, nil
}

// LastTaskID returns the id of the most recently submitted task.
func (m *MockMeshProvider) LastTaskID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fmt.Sprintf("mock-task-%d", m.counter)
}

func (m *MockMeshProvider) SetProgress(taskID string, progress int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if task, ok := m.tasks[taskID]; ok {
		task.Status = meshy.StatusInProgress
		task.Progress = progress
	}
}

func (m *MockMeshProvider) SucceedTask(taskID, glbURL, thumbnailURL string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if task, ok := m.tasks[taskID]; ok {
		task.Status = meshy.StatusSucceeded
		task.Progress = 100
		task.ModelUrls = meshy.ModelUrls{Glb: glbURL}
		task.ThumbnailURL = thumbnailURL
	}
}

func (m *MockMeshProvider) FailTask(taskID, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if task, ok := m.tasks[taskID]; ok {
		task.Status = meshy.StatusFailed
		task.TaskError = &meshy.TaskError{Message: message}
	}
}
