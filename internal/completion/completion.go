// Package completion wraps the generative-language API behind a small
// contract: prompt text in, generated text or a classified failure out.
package completion

import "context"

// Completer turns prompt text into generated text. Implementations must
// classify quota and credential failures with ErrRateLimited and
// ErrUnauthorized so callers can map them without parsing messages.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
