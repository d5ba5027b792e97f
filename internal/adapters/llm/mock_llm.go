package llm

import (
	"context"
	"fmt"
	"sync"

	"github.com/PabloGalante/cbt-notebook/internal/domain"
)

// MockLLM is an offline domain.TextGenerator. It records every request it
// receives, which lets tests assert that no call was attempted.
type MockLLM struct {
	mu       sync.Mutex
	reply    string
	err      error
	requests []domain.GenerateRequest
}

func NewMockLLM() *MockLLM {
	return &MockLLM{}
}

// WithReply fixes the text returned by Generate.
func (m *MockLLM) WithReply(reply string) *MockLLM {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reply = reply
	return m
}

// WithError makes every Generate call fail with err.
func (m *MockLLM) WithError(err error) *MockLLM {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
	return m
}

func (m *MockLLM) Generate(ctx context.Context, req domain.GenerateRequest) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = append(m.requests, req)
	if m.err != nil {
		return "", m.err
	}
	if m.reply != "" {
		return m.reply, nil
	}
	return fmt.Sprintf("(offline model %s) I read your note of %d characters. Try writing down one piece of evidence against the thought.", req.Model, len(req.Prompt)), nil
}

// Requests returns a copy of the requests received so far.
func (m *MockLLM) Requests() []domain.GenerateRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.GenerateRequest(nil), m.requests...)
}

var _ domain.TextGenerator = (*MockLLM)(nil)
