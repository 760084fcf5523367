package llm

import (
	"context"
	"sync"
)

// Fake replays scripted responses in order and records every request. Once
// the script runs out it keeps returning the last response.
type Fake struct {
	mu        sync.Mutex
	Responses []string
	// Err is returned from every call, or only from call FailAt (1-based)
	// when FailAt is set.
	Err    error
	FailAt int
	Calls  [][]Message
}

func NewFake(responses ...string) *Fake {
	return &Fake{Responses: responses}
}

func (f *Fake) Chat(ctx context.Context, messages []Message) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Calls = append(f.Calls, messages)
	n := len(f.Calls)
	if f.Err != nil && (f.FailAt == 0 || f.FailAt == n) {
		return "", f.Err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(f.Responses) == 0 {
		return "", nil
	}
	if n > len(f.Responses) {
		return f.Responses[len(f.Responses)-1], nil
	}
	return f.Responses[n-1], nil
}

func (f *Fake) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Calls)
}
