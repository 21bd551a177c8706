package ai

import (
	"context"
	"sync"
)

// Call is one recorded Mock.Complete invocation.
type Call struct {
	Prompt   string
	Sampling Sampling
}

// Mock is a deterministic Provider for tests and offline runs.
// It returns Candidates (or Err) and records every call.
type Mock struct {
	Candidates []string
	Err        error

	mu    sync.Mutex
	calls []Call
}

func NewMock(candidates ...string) *Mock {
	return &Mock{Candidates: candidates}
}

func (m *Mock) Complete(ctx context.Context, prompt string, s Sampling) ([]string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, Call{Prompt: prompt, Sampling: s})
	m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]string, len(m.Candidates))
	copy(out, m.Candidates)
	return out, nil
}

func (m *Mock) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Call, len(m.calls))
	copy(out, m.calls)
	return out
}

// LastCall returns the most recent call, or false if none was made.
func (m *Mock) LastCall() (Call, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.calls) == 0 {
		return Call{}, false
	}
	return m.calls[len(m.calls)-1], true
}
