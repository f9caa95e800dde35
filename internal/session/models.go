package session

import (
	"time"

	"github.com/google/uuid"
)

type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// FileRef is a client-staged attachment. Content is opaque to the model.
type FileRef struct {
	Name      string `json:"name"`
	SizeBytes int64  `json:"size_bytes"`
	Content   []byte `json:"content,omitempty"`
}

// Message is one transcript entry. Immutable once appended; reactions live
// in the store, not on the message.
type Message struct {
	ID          string    `json:"id"`
	Sender      Sender    `json:"sender"`
	Text        string    `json:"text"`
	CreatedAt   time.Time `json:"created_at"`
	IsError     bool      `json:"is_error,omitempty"`
	Attachments []FileRef `json:"attachments,omitempty"`
}

func NewUserMessage(text string, attachments []FileRef) Message {
	return Message{
		ID:          uuid.NewString(),
		Sender:      SenderUser,
		Text:        text,
		CreatedAt:   time.Now(),
		Attachments: attachments,
	}
}

func NewAssistantMessage(text string) Message {
	return Message{
		ID:        uuid.NewString(),
		Sender:    SenderAssistant,
		Text:      text,
		CreatedAt: time.Now(),
	}
}

// NewAssistantError is the variant recorded when a send fails; the text is
// a fixed human-readable fallback, never the raw upstream error.
func NewAssistantError(text string) Message {
	return Message{
		ID:        uuid.NewString(),
		Sender:    SenderAssistant,
		Text:      text,
		CreatedAt: time.Now(),
		IsError:   true,
	}
}

// Session is one conversation: an ordered, append-only message log.
type Session struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Messages       []Message `json:"messages"`
	LastActivityAt time.Time `json:"last_activity_at"`
}

// ReactionToken is a single emoji reaction attached to a message.
type ReactionToken string

const titleLimit = 30

// DeriveTitle builds a session title from its first message, truncated to
// 30 characters with an ellipsis.
func DeriveTitle(firstMessageText string) string {
	runes := []rune(firstMessageText)
	if len(runes) <= titleLimit {
		return firstMessageText
	}
	return string(runes[:titleLimit]) + "..."
}
