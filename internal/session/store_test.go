package session

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendMessage(t *testing.T) {
	t.Run("appends in order to the active session", func(t *testing.T) {
		s := NewStore()
		active := s.Active()

		require.NoError(t, s.AppendMessage(active.ID, NewUserMessage("Hello", nil)))
		require.NoError(t, s.AppendMessage(active.ID, NewAssistantMessage("Hi there")))

		got := s.Active()
		require.Len(t, got.Messages, 2)
		assert.Equal(t, SenderUser, got.Messages[0].Sender)
		assert.Equal(t, "Hello", got.Messages[0].Text)
		assert.Equal(t, SenderAssistant, got.Messages[1].Sender)
		assert.Equal(t, "Hi there", got.Messages[1].Text)
	})

	t.Run("fails for an unknown session", func(t *testing.T) {
		s := NewStore()
		err := s.AppendMessage("no-such-id", NewUserMessage("Hello", nil))
		assert.ErrorIs(t, err, ErrUnknownSession)
	})

	t.Run("derives the title from the first message", func(t *testing.T) {
		s := NewStore()
		active := s.Active()

		require.NoError(t, s.AppendMessage(active.ID, NewUserMessage("Short question", nil)))
		assert.Equal(t, "Short question", s.Active().Title)
	})

	t.Run("message ids are unique", func(t *testing.T) {
		s := NewStore()
		active := s.Active()
		seen := map[string]bool{}
		for i := 0; i < 20; i++ {
			msg := NewUserMessage("x", nil)
			require.NoError(t, s.AppendMessage(active.ID, msg))
			assert.False(t, seen[msg.ID])
			seen[msg.ID] = true
		}
	})
}

func TestDeriveTitle(t *testing.T) {
	long := strings.Repeat("a", 45)
	assert.Equal(t, strings.Repeat("a", 30)+"...", DeriveTitle(long))
	assert.Equal(t, "short", DeriveTitle("short"))
	assert.Equal(t, strings.Repeat("b", 30), DeriveTitle(strings.Repeat("b", 30)))
}

func TestArchiveActive(t *testing.T) {
	t.Run("zero-message sessions are never archived", func(t *testing.T) {
		s := NewStore()
		s.ArchiveActive()
		assert.Empty(t, s.History())
	})

	t.Run("re-archiving the same id replaces the entry", func(t *testing.T) {
		s := NewStore()
		active := s.Active()
		require.NoError(t, s.AppendMessage(active.ID, NewUserMessage("first", nil)))
		s.ArchiveActive()

		require.NoError(t, s.AppendMessage(active.ID, NewUserMessage("second", nil)))
		s.ArchiveActive()

		history := s.History()
		require.Len(t, history, 1)
		assert.Equal(t, active.ID, history[0].ID)
		assert.Len(t, history[0].Messages, 2)
	})

	t.Run("most recently archived comes first", func(t *testing.T) {
		s := NewStore()
		first := s.Active()
		require.NoError(t, s.AppendMessage(first.ID, NewUserMessage("one", nil)))
		s.ArchiveActive()

		second := s.CreateSession()
		require.NoError(t, s.AppendMessage(second.ID, NewUserMessage("two", nil)))
		s.ArchiveActive()

		history := s.History()
		require.Len(t, history, 2)
		assert.Equal(t, second.ID, history[0].ID)
		assert.Equal(t, first.ID, history[1].ID)
	})

	t.Run("archived snapshot is isolated from later appends", func(t *testing.T) {
		s := NewStore()
		active := s.Active()
		require.NoError(t, s.AppendMessage(active.ID, NewUserMessage("one", nil)))
		s.ArchiveActive()

		loaded, err := s.LoadSession(active.ID)
		require.NoError(t, err)
		require.NoError(t, s.AppendMessage(loaded.ID, NewUserMessage("two", nil)))

		history := s.History()
		require.Len(t, history, 1)
		assert.Len(t, history[0].Messages, 1, "history keeps the archived snapshot until re-archive")
	})
}

func TestDeleteSession(t *testing.T) {
	t.Run("removes from history", func(t *testing.T) {
		s := NewStore()
		active := s.Active()
		require.NoError(t, s.AppendMessage(active.ID, NewUserMessage("hi", nil)))
		s.ArchiveActive()
		s.CreateSession()

		s.DeleteSession(active.ID)
		assert.Empty(t, s.History())
	})

	t.Run("deleting the active session leaves a fresh empty one", func(t *testing.T) {
		s := NewStore()
		active := s.Active()
		require.NoError(t, s.AppendMessage(active.ID, NewUserMessage("hi", nil)))

		replacement := s.DeleteSession(active.ID)
		assert.NotEqual(t, active.ID, replacement.ID)
		assert.Empty(t, replacement.Messages)
		assert.Equal(t, replacement.ID, s.Active().ID)
	})
}

func TestSearch(t *testing.T) {
	s := NewStore()
	first := s.Active()
	require.NoError(t, s.AppendMessage(first.ID, NewUserMessage("How do goroutines work?", nil)))
	s.ArchiveActive()

	second := s.CreateSession()
	require.NoError(t, s.AppendMessage(second.ID, NewUserMessage("Pasta recipes", nil)))
	require.NoError(t, s.AppendMessage(second.ID, NewAssistantMessage("Try carbonara with GUANCIALE.")))
	s.ArchiveActive()

	t.Run("matches titles case-insensitively", func(t *testing.T) {
		got := s.Search("GOROUTINES")
		require.Len(t, got, 1)
		assert.Equal(t, first.ID, got[0].ID)
	})

	t.Run("matches message text", func(t *testing.T) {
		got := s.Search("guanciale")
		require.Len(t, got, 1)
		assert.Equal(t, second.ID, got[0].ID)
	})

	t.Run("preserves history order", func(t *testing.T) {
		got := s.Search("")
		require.Len(t, got, 2)
		assert.Equal(t, second.ID, got[0].ID)
		assert.Equal(t, first.ID, got[1].ID)
	})

	t.Run("no matches yields empty", func(t *testing.T) {
		assert.Empty(t, s.Search("quantum chromodynamics"))
	})
}

func TestRestoreHistory(t *testing.T) {
	s := NewStore()
	restored := []Session{
		{ID: "s2", Title: "Newer", Messages: []Message{NewUserMessage("two", nil)}},
		{ID: "s1", Title: "Older", Messages: []Message{NewUserMessage("one", nil)}},
	}

	s.RestoreHistory(restored)

	history := s.History()
	require.Len(t, history, 2)
	assert.Equal(t, "s2", history[0].ID)
	assert.Equal(t, "s1", history[1].ID)

	loaded, err := s.LoadSession("s1")
	require.NoError(t, err)
	assert.Equal(t, "Older", loaded.Title)
}

func TestReactions(t *testing.T) {
	s := NewStore()
	msg := NewUserMessage("hi", nil)
	require.NoError(t, s.AppendMessage(s.Active().ID, msg))

	s.AddReaction(msg.ID, "👍")
	s.AddReaction(msg.ID, "❤️")
	s.AddReaction(msg.ID, "👍")

	assert.Equal(t, []ReactionToken{"👍", "❤️", "👍"}, s.Reactions(msg.ID))
	assert.Empty(t, s.Reactions("other-message"))
}
