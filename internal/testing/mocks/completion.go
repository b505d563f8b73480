package mocks

import (
	"context"
	"sync"

	"github.com/Cyclone1070/patchpane/internal/gateway"
)

// Completion implements gateway.Completion with scripted responses.
type Completion struct {
	Mu sync.Mutex

	// Responses are returned in order; the last one repeats.
	Responses []string

	// Err, when set, is returned instead of a response.
	Err error

	// Delay, when set, blocks until the context is done and then returns
	// gateway.ErrCancelled, simulating an in-flight request being cancelled.
	Delay bool

	// Requests logs every message slice received.
	Requests [][]gateway.Message

	calls int
}

func (m *Completion) RequestCompletion(ctx context.Context, messages []gateway.Message) (string, error) {
	m.Mu.Lock()
	m.Requests = append(m.Requests, messages)
	call := m.calls
	m.calls++
	err := m.Err
	delay := m.Delay
	m.Mu.Unlock()

	if delay {
		<-ctx.Done()
		return "", gateway.ErrCancelled
	}
	if err != nil {
		return "", err
	}

	m.Mu.Lock()
	defer m.Mu.Unlock()
	if len(m.Responses) == 0 {
		return "", nil
	}
	if call >= len(m.Responses) {
		call = len(m.Responses) - 1
	}
	return m.Responses[call], nil
}

// Calls returns how many requests have been made.
func (m *Completion) Calls() int {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	return m.calls
}
