package controller

type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

type AssistantMode string

const (
	ModeFriendly     AssistantMode = "friendly"
	ModeProfessional AssistantMode = "professional"
	ModeCreative     AssistantMode = "creative"
	ModeTechnical    AssistantMode = "technical"
)

// ModeProfile describes one assistant persona.
type ModeProfile struct {
	Name        string
	Description string
	Prompt      string
}

var Modes = map[AssistantMode]ModeProfile{
	ModeFriendly: {
		Name:        "Friendly",
		Description: "Casual and helpful conversations",
		Prompt:      "You are Zenochat, a helpful AI assistant. Answer the user's question directly and clearly. Be conversational and friendly while providing accurate, useful information.",
	},
	ModeProfessional: {
		Name:        "Professional",
		Description: "Formal and business-like",
		Prompt:      "You are Zenochat, a professional AI assistant. Answer the user's question directly with clear, concise, and formal responses. Focus on accuracy and actionable insights.",
	},
	ModeCreative: {
		Name:        "Creative",
		Description: "Artistic and imaginative",
		Prompt:      "You are Zenochat, a creative AI assistant. Answer the user's question directly while providing imaginative and innovative perspectives when appropriate.",
	},
	ModeTechnical: {
		Name:        "Technical",
		Description: "Code and technical focus",
		Prompt:      "You are Zenochat, a technical AI assistant. Answer the user's question directly with detailed technical explanations and code examples when relevant. Be precise and accurate.",
	},
}

// UiState is the whole presentation state as one immutable value, changed
// only through Reduce.
type UiState struct {
	Theme           Theme
	SidebarOpen     bool
	SettingsOpen    bool
	SearchOpen      bool
	SearchQuery     string
	Muted           bool
	Listening       bool
	CopiedMessageID string
	Mode            AssistantMode
}

func DefaultUiState() UiState {
	return UiState{
		Theme:       ThemeDark,
		SidebarOpen: true,
		Mode:        ModeFriendly,
	}
}

// Action is one explicit UI state transition.
type Action interface {
	isAction()
}

type (
	ToggleTheme    struct{}
	ToggleSidebar  struct{}
	ToggleSettings struct{}
	ToggleSearch   struct{}
	SetSearchQuery struct{ Query string }
	ToggleMute     struct{}
	SetListening   struct{ Listening bool }
	MessageCopied  struct{ MessageID string }
	ClearCopied    struct{}
	SetMode        struct{ Mode AssistantMode }
)

func (ToggleTheme) isAction()    {}
func (ToggleSidebar) isAction()  {}
func (ToggleSettings) isAction() {}
func (ToggleSearch) isAction()   {}
func (SetSearchQuery) isAction() {}
func (ToggleMute) isAction()     {}
func (SetListening) isAction()   {}
func (MessageCopied) isAction()  {}
func (ClearCopied) isAction()    {}
func (SetMode) isAction()        {}

// Reduce applies one action to a state value and returns the next value.
// The input is never mutated.
func Reduce(state UiState, action Action) UiState {
	switch a := action.(type) {
	case ToggleTheme:
		if state.Theme == ThemeDark {
			state.Theme = ThemeLight
		} else {
			state.Theme = ThemeDark
		}
	case ToggleSidebar:
		state.SidebarOpen = !state.SidebarOpen
	case ToggleSettings:
		state.SettingsOpen = !state.SettingsOpen
	case ToggleSearch:
		state.SearchOpen = !state.SearchOpen
		if !state.SearchOpen {
			state.SearchQuery = ""
		}
	case SetSearchQuery:
		state.SearchQuery = a.Query
	case ToggleMute:
		state.Muted = !state.Muted
	case SetListening:
		state.Listening = a.Listening
	case MessageCopied:
		state.CopiedMessageID = a.MessageID
	case ClearCopied:
		state.CopiedMessageID = ""
	case SetMode:
		if _, ok := Modes[a.Mode]; ok {
			state.Mode = a.Mode
		}
	}
	return state
}
