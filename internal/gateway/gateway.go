// Package gateway validates inbound chat messages, forwards them to the
// completion service and classifies the outcome. It keeps no state between
// calls: conversation history is the client's responsibility.
package gateway

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/zenochat/zenochat/internal/completion"
)

// DefaultSessionID is used when a request carries no session id.
const DefaultSessionID = "default"

// Reply is a successful completion, echoing the session id it was made for.
type Reply struct {
	Text      string
	SessionID string
}

// Ack acknowledges a clear request.
type Ack struct {
	Message   string
	SessionID string
}

type Gateway struct {
	completer completion.Completer
	logger    *zap.Logger
}

func New(completer completion.Completer, logger *zap.Logger) *Gateway {
	return &Gateway{
		completer: completer,
		logger:    logger,
	}
}

// Handle forwards message verbatim as the prompt. The message must be
// non-empty after trimming. Failures come back as *Error with a
// machine-readable code; upstream detail never reaches the reply text.
func (g *Gateway) Handle(ctx context.Context, message, sessionID string) (*Reply, error) {
	if strings.TrimSpace(message) == "" {
		return nil, invalidRequest("Message is required")
	}
	if sessionID == "" {
		sessionID = DefaultSessionID
	}

	text, err := g.completer.Complete(ctx, message)
	if err != nil {
		g.logger.Error("completion request failed",
			zap.String("sessionId", sessionID),
			zap.Error(err))
		switch {
		case errors.Is(err, completion.ErrRateLimited):
			return nil, rateLimited("You have exceeded your daily quota for Gemini API.")
		case errors.Is(err, completion.ErrUnauthorized):
			return nil, unauthorized("Please check your Gemini API key configuration.")
		default:
			return nil, upstream(err.Error())
		}
	}

	return &Reply{Text: text, SessionID: sessionID}, nil
}

// Clear acknowledges a clear request. There is no server-side session
// storage, so this mutates nothing; clients clear their own view.
func (g *Gateway) Clear(sessionID string) *Ack {
	return &Ack{
		Message:   "Chat cleared successfully",
		SessionID: sessionID,
	}
}
