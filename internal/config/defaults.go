package config

// Config holds all application configuration values.
// Defaults are set in DefaultConfig() and can be overridden via dotfile.
// Missing keys are left at their default values.
type Config struct {
	Model     ModelConfig     `json:"model"`
	Selection SelectionConfig `json:"selection"`
	UI        UIConfig        `json:"ui"`
	Logging   LoggingConfig   `json:"logging"`
}

type ModelConfig struct {
	// Name is the Gemini model identifier used for chat and selection calls.
	Name string `json:"name"` // Default: "gemini-2.5-flash"

	MaxOutputTokens int `json:"max_output_tokens"` // Default: 8192
}

// SelectionConfig bounds the context-selection stage: how many files may be
// injected into a prompt and how large the listing and snippets may grow.
type SelectionConfig struct {
	MaxFiles int `json:"max_files"` // Default: 5

	// Listing bounds for the selection prompt.
	MaxListingEntries int `json:"max_listing_entries"` // Default: 400
	MaxListingChars   int `json:"max_listing_chars"`   // Default: 4000

	// Snippet budgets for injected file content.
	SnippetBudgetChars  int `json:"snippet_budget_chars"`   // Default: 8000
	SnippetPerFileChars int `json:"snippet_per_file_chars"` // Default: 2000
}

type UIConfig struct {
	// ANSI 256 color codes used by lipgloss styles.
	ColorPrimary string `json:"color_primary"` // Default: "63"
	ColorAdded   string `json:"color_added"`   // Default: "42"
	ColorRemoved string `json:"color_removed"` // Default: "196"
	ColorContext string `json:"color_context"` // Default: "245"
	ColorError   string `json:"color_error"`   // Default: "196"
}

type LoggingConfig struct {
	// Debug enables debug-level logging.
	Debug bool `json:"debug"`

	// File is the log destination. The UI owns the terminal, so logs never go
	// to stderr; empty means ~/.config/patchpane/patchpane.log.
	File string `json:"file"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Model: ModelConfig{
			Name:            "gemini-2.5-flash",
			MaxOutputTokens: 8192,
		},
		Selection: SelectionConfig{
			MaxFiles:            5,
			MaxListingEntries:   400,
			MaxListingChars:     4000,
			SnippetBudgetChars:  8000,
			SnippetPerFileChars: 2000,
		},
		UI: UIConfig{
			ColorPrimary: "63",
			ColorAdded:   "42",
			ColorRemoved: "196",
			ColorContext: "245",
			ColorError:   "196",
		},
		Logging: LoggingConfig{
			Debug: false,
			File:  "",
		},
	}
}
