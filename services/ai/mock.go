package aisvc

import (
	"context"
	"sync"

	"github.com/hashemmwanes8-maker/uni-ai-coach/core"
)

// MockService is a scripted core.CompletionService for tests.
type MockService struct {
	mu       sync.Mutex
	Response string
	Err      error
	Calls    int
	LastMsgs []core.ChatMessage
}

var _ core.CompletionService = (*MockService)(nil)

func NewMockService(response string, err error) *MockService {
	return &MockService{Response: response, Err: err}
}

func (svc *MockService) Complete(_ context.Context, messages ...core.ChatMessage) (string, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	svc.Calls++
	svc.LastMsgs = messages
	if svc.Err != nil {
		return "", svc.Err
	}
	return svc.Response, nil
}

// CallCount returns the number of Complete invocations so far.
func (svc *MockService) CallCount() int {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	return svc.Calls
}
