package usecase_test

import (
	"context"
	"errors"
	"sync"

	"github.com/m-mizutani/xlrbot/pkg/domain/model"
	"github.com/m-mizutani/xlrbot/pkg/domain/types"
)

// MockReleaseAPI is a mock implementation of ReleaseAPI
type MockReleaseAPI struct {
	getReleaseFunc func(ctx context.Context, releaseID types.ReleaseID) (*model.Release, error)

	mu    sync.Mutex
	calls []types.ReleaseID
}

func (m *MockReleaseAPI) GetRelease(ctx context.Context, releaseID types.ReleaseID) (*model.Release, error) {
	m.mu.Lock()
	m.calls = append(m.calls, releaseID)
	m.mu.Unlock()

	if m.getReleaseFunc != nil {
		return m.getReleaseFunc(ctx, releaseID)
	}
	return nil, errors.New("mock not configured")
}

func (m *MockReleaseAPI) Calls() []types.ReleaseID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]types.ReleaseID(nil), m.calls...)
}

// MockNotifier records notifications
type MockNotifier struct {
	notifyFunc func(ctx context.Context, n *model.Notification) error

	mu   sync.Mutex
	sent []model.Notification
}

func (m *MockNotifier) Notify(ctx context.Context, n *model.Notification) error {
	m.mu.Lock()
	m.sent = append(m.sent, *n)
	m.mu.Unlock()

	if m.notifyFunc != nil {
		return m.notifyFunc(ctx, n)
	}
	return nil
}

func (m *MockNotifier) Sent() []model.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.Notification(nil), m.sent...)
}

func releaseWithTask(taskID types.TaskID) func(ctx context.Context, releaseID types.ReleaseID) (*model.Release, error) {
	return func(ctx context.Context, releaseID types.ReleaseID) (*model.Release, error) {
		return &model.Release{
			ID:          releaseID,
			CurrentTask: &model.Task{ID: taskID, Status: "IN_PROGRESS"},
		}, nil
	}
}

func ale(id string, activityType types.ActivityType, message string) model.ConfigurationItem {
	return model.ConfigurationItem{
		ID:           id,
		Type:         "xlrelease.ActivityLogEntry",
		ActivityType: activityType,
		Message:      message,
	}
}
