package mocks

import (
	"context"
	"sync/atomic"

	"github.com/gong-fq/eng5/internal/clients"
	"github.com/gong-fq/eng5/internal/models"
)

// MockModelClient implements clients.ModelClient for testing
type MockModelClient struct {
	CompleteFunc func(ctx context.Context, req *clients.ChatCompletionRequest) (*clients.Completion, error)
	calls        atomic.Int32
}

func (m *MockModelClient) Complete(ctx context.Context, req *clients.ChatCompletionRequest) (*clients.Completion, error) {
	m.calls.Add(1)
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, req)
	}
	return &clients.Completion{Usage: map[string]interface{}{}}, nil
}

// Calls returns how many times Complete was invoked
func (m *MockModelClient) Calls() int {
	return int(m.calls.Load())
}

// MockTutor implements gateway.Tutor for testing
type MockTutor struct {
	AskFunc func(ctx context.Context, message string) (*models.CompletionResult, error)
	calls   atomic.Int32
}

func (m *MockTutor) Ask(ctx context.Context, message string) (*models.CompletionResult, error) {
	m.calls.Add(1)
	if m.AskFunc != nil {
		return m.AskFunc(ctx, message)
	}
	return &models.CompletionResult{Success: true, Tokens: map[string]interface{}{}}, nil
}

// Calls returns how many times Ask was invoked
func (m *MockTutor) Calls() int {
	return int(m.calls.Load())
}
