package transcribe

import (
	"context"
	"sync"
)

// Mock is a Transcriber for tests that returns canned text and counts calls.
type Mock struct {
	mu    sync.Mutex
	Text  string
	Err   error
	calls int
}

func (m *Mock) Transcribe(context.Context, []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return m.Text, m.Err
}

// Calls returns how many times Transcribe ran.
func (m *Mock) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
