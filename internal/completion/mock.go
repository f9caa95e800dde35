package completion

import (
	"context"
	"fmt"
)

// Mock is a canned Completer for tests and local development. When Err is
// set every call fails with it; otherwise Reply is returned, or an echo of
// the prompt when Reply is empty.
type Mock struct {
	Reply string
	Err   error

	// Prompts records every prompt received, in call order.
	Prompts []string
}

func NewMock(reply string) *Mock {
	return &Mock{Reply: reply}
}

func (m *Mock) Complete(_ context.Context, prompt string) (string, error) {
	m.Prompts = append(m.Prompts, prompt)
	if m.Err != nil {
		return "", m.Err
	}
	if m.Reply == "" {
		return fmt.Sprintf("You said: %q", prompt), nil
	}
	return m.Reply, nil
}
