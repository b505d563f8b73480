// Package gateway defines the external collaborators of the patch engine:
// file access and LLM completion. The engine owns the interfaces; concrete
// implementations live at the edges (osfs, provider/gemini, test mocks).
package gateway

import "context"

// FileAccess is the engine's only route to the filesystem.
type FileAccess interface {
	// ReadFile returns the full content of path. Fails with ErrNotFound when
	// the file does not exist, or an *IOError otherwise.
	ReadFile(ctx context.Context, path string) (string, error)

	// WriteFile replaces the content of path atomically, creating parent
	// directories as needed. Fails with *IOError.
	WriteFile(ctx context.Context, path string, content string) error

	// DeleteFile removes path. Fails with *IOError.
	DeleteFile(ctx context.Context, path string) error
}

// Message is one turn of a completion conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Completion requests text from the model backend. Cancellation flows through
// ctx; implementations map transport failures to *NetworkError and
// cancellation to ErrCancelled. Timeouts are the implementation's concern,
// never the engine's.
type Completion interface {
	RequestCompletion(ctx context.Context, messages []Message) (string, error)
}
