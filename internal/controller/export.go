package controller

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/zenochat/zenochat/internal/session"
)

// Transcript is the transportable export document for one session.
type Transcript struct {
	Title     string            `json:"title"`
	Messages  []session.Message `json:"messages"`
	Timestamp time.Time         `json:"timestamp"`
}

// ExportActive serializes the active session to a downloadable JSON
// document. Pure: no controller or store state changes.
func (c *Controller) ExportActive() ([]byte, error) {
	return ExportSession(c.store.Active())
}

// ExportSession serializes any session snapshot to the transcript document.
func ExportSession(sess session.Session) ([]byte, error) {
	title := sess.Title
	if title == "" {
		title = fmt.Sprintf("Zenochat Conversation - %s", time.Now().Format("2006-01-02"))
	}

	doc := Transcript{
		Title:     title,
		Messages:  sess.Messages,
		Timestamp: time.Now(),
	}
	return json.MarshalIndent(doc, "", "  ")
}

// ParseTranscript restores an exported document. Round-trips the title and
// the ordered message sequence exactly.
func ParseTranscript(data []byte) (Transcript, error) {
	var doc Transcript
	if err := json.Unmarshal(data, &doc); err != nil {
		return Transcript{}, fmt.Errorf("failed to parse transcript: %w", err)
	}
	return doc, nil
}

// ShareTranscript renders the active session as plain text, one
// "sender: text" paragraph per message, for the clipboard.
func (c *Controller) ShareTranscript() string {
	active := c.store.Active()

	out := ""
	for i, msg := range active.Messages {
		if i > 0 {
			out += "\n\n"
		}
		out += fmt.Sprintf("%s: %s", msg.Sender, msg.Text)
	}
	return out
}
