package controller

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReduce(t *testing.T) {
	t.Run("theme toggles both ways", func(t *testing.T) {
		state := DefaultUiState()
		state = Reduce(state, ToggleTheme{})
		assert.Equal(t, ThemeLight, state.Theme)
		state = Reduce(state, ToggleTheme{})
		assert.Equal(t, ThemeDark, state.Theme)
	})

	t.Run("closing search clears the query", func(t *testing.T) {
		state := Reduce(DefaultUiState(), ToggleSearch{})
		state = Reduce(state, SetSearchQuery{Query: "goroutines"})
		assert.Equal(t, "goroutines", state.SearchQuery)

		state = Reduce(state, ToggleSearch{})
		assert.False(t, state.SearchOpen)
		assert.Empty(t, state.SearchQuery)
	})

	t.Run("mode changes only to known modes", func(t *testing.T) {
		state := Reduce(DefaultUiState(), SetMode{Mode: ModeTechnical})
		assert.Equal(t, ModeTechnical, state.Mode)

		state = Reduce(state, SetMode{Mode: AssistantMode("sarcastic")})
		assert.Equal(t, ModeTechnical, state.Mode)
	})

	t.Run("copied message marker set and cleared", func(t *testing.T) {
		state := Reduce(DefaultUiState(), MessageCopied{MessageID: "m1"})
		assert.Equal(t, "m1", state.CopiedMessageID)
		state = Reduce(state, ClearCopied{})
		assert.Empty(t, state.CopiedMessageID)
	})

	t.Run("input state is never mutated", func(t *testing.T) {
		original := DefaultUiState()
		_ = Reduce(original, ToggleSidebar{})
		assert.True(t, original.SidebarOpen)
	})
}

func TestModesHavePrompts(t *testing.T) {
	for mode, profile := range Modes {
		assert.NotEmpty(t, profile.Name, "mode %s", mode)
		assert.NotEmpty(t, profile.Prompt, "mode %s", mode)
	}
}
