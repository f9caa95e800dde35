// Package controller runs the client side of a conversation: the
// send/receive cycle against the gateway, session switching and history
// bookkeeping against the session store.
package controller

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/zenochat/zenochat/internal/gateway"
	"github.com/zenochat/zenochat/internal/session"
)

// FallbackErrorText is the only failure text that ever reaches a transcript;
// classified error detail goes to the log instead.
const FallbackErrorText = "Sorry, I encountered an error. Please try again."

type State string

const (
	StateIdle    State = "idle"
	StateSending State = "sending"
)

var (
	ErrEmptyMessage = errors.New("controller: message is empty")
	ErrSendInFlight = errors.New("controller: a send is already in flight")
)

// Gateway is the slice of the chat gateway the controller needs.
type Gateway interface {
	Handle(ctx context.Context, message, sessionID string) (*gateway.Reply, error)
}

// HistoryStore mirrors archived sessions into durable storage. Optional; the
// in-memory store stays authoritative.
type HistoryStore interface {
	Save(sess session.Session) error
	Delete(id string) error
}

type Controller struct {
	mu      sync.Mutex
	store   *session.Store
	gw      Gateway
	history HistoryStore
	logger  *zap.Logger

	sending      bool
	staged       []session.FileRef
	pendingInput string
	ui           UiState
}

func New(store *session.Store, gw Gateway, logger *zap.Logger) *Controller {
	return &Controller{
		store:  store,
		gw:     gw,
		logger: logger,
		ui:     DefaultUiState(),
	}
}

// WithHistory enables mirroring of archive and delete events into a durable
// history store.
func (c *Controller) WithHistory(h HistoryStore) *Controller {
	c.history = h
	return c
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sending {
		return StateSending
	}
	return StateIdle
}

// Send runs one turn: append the user message optimistically, call the
// gateway, append the assistant reply (or the fixed fallback on failure).
// Empty text and concurrent sends are rejected without touching the
// transcript. The outcome is appended to the session that was active when
// the send started, so a reply arriving after a session switch lands in its
// originating transcript rather than the newly active one.
func (c *Controller) Send(ctx context.Context, text string, attachments []session.FileRef) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyMessage
	}

	c.mu.Lock()
	if c.sending {
		c.mu.Unlock()
		return ErrSendInFlight
	}
	c.sending = true

	files := append(c.staged, attachments...)
	c.staged = nil
	originID := c.store.Active().ID
	c.mu.Unlock()

	if err := c.store.AppendMessage(originID, session.NewUserMessage(text, files)); err != nil {
		c.setIdle()
		return err
	}

	reply, err := c.gw.Handle(ctx, text, originID)

	var assistant session.Message
	if err != nil {
		c.logger.Error("send failed", zap.String("sessionId", originID), zap.Error(err))
		assistant = session.NewAssistantError(FallbackErrorText)
	} else {
		assistant = session.NewAssistantMessage(reply.Text)
	}

	if appendErr := c.store.AppendMessage(originID, assistant); appendErr != nil {
		// The originating session was deleted mid-flight; drop the reply.
		c.logger.Warn("discarding reply for deleted session",
			zap.String("sessionId", originID))
	}

	c.setIdle()
	return nil
}

func (c *Controller) setIdle() {
	c.mu.Lock()
	c.sending = false
	c.mu.Unlock()
}

// StartNewChat archives the active session (if it has any messages) and
// activates a fresh empty one.
func (c *Controller) StartNewChat() session.Session {
	c.mu.Lock()
	defer c.mu.Unlock()

	active := c.store.Active()
	c.store.ArchiveActive()
	if c.history != nil && len(active.Messages) > 0 {
		if err := c.history.Save(active); err != nil {
			c.logger.Warn("failed to persist archived session",
				zap.String("sessionId", active.ID), zap.Error(err))
		}
	}
	return c.store.CreateSession()
}

// LoadChat activates an archived session.
func (c *Controller) LoadChat(id string) (session.Session, error) {
	return c.store.LoadSession(id)
}

// DeleteChat removes a session from history; deleting the active session
// leaves a fresh empty one active.
func (c *Controller) DeleteChat(id string) session.Session {
	c.mu.Lock()
	defer c.mu.Unlock()

	replacement := c.store.DeleteSession(id)
	if c.history != nil {
		if err := c.history.Delete(id); err != nil {
			c.logger.Warn("failed to delete persisted session",
				zap.String("sessionId", id), zap.Error(err))
		}
	}
	return replacement
}

// SearchHistory matches archived sessions by title or message text.
func (c *Controller) SearchHistory(query string) []session.Session {
	return c.store.Search(query)
}

// StageFile queues an attachment for the next Send.
func (c *Controller) StageFile(f session.FileRef) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.staged = append(c.staged, f)
}

// StagedFiles returns the attachments queued for the next Send.
func (c *Controller) StagedFiles() []session.FileRef {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]session.FileRef, len(c.staged))
	copy(out, c.staged)
	return out
}

// AddReaction appends an emoji reaction to a message.
func (c *Controller) AddReaction(messageID string, token session.ReactionToken) {
	c.store.AddReaction(messageID, token)
}

// PendingInput is the draft text awaiting Send, e.g. a dictation result.
func (c *Controller) PendingInput() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pendingInput
}

func (c *Controller) SetPendingInput(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pendingInput = text
}

// UiState returns the current UI state value.
func (c *Controller) UiState() UiState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ui
}

// Apply reduces the UI state by one action and returns the new value.
func (c *Controller) Apply(action Action) UiState {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ui = Reduce(c.ui, action)
	return c.ui
}
