// Package engine drives the chat loop: it selects context files for a
// question, requests a completion, and turns patch blocks in the reply into
// pending edits.
package engine

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/Cyclone1070/patchpane/internal/gateway"
	"github.com/Cyclone1070/patchpane/internal/patch"
	"github.com/Cyclone1070/patchpane/internal/selector"
	"github.com/Cyclone1070/patchpane/internal/store"
	"github.com/Cyclone1070/patchpane/internal/tokenutil"
	"github.com/Cyclone1070/patchpane/internal/workspace"
)

// systemPrompt is the sole contract between the model and the patch parser:
// replies proposing changes must emit exactly this grammar.
const systemPrompt = `You are a coding assistant embedded in an editor.

When you propose file changes, emit one block per change in exactly this format:

***PATCH <relative path>
***OLD:
<the content being replaced, empty for a new file>
***NEW:
<the replacement content, empty to delete the file>

Use the path NONE when no change is needed. Outside patch blocks, answer normally in markdown.`

// Answer is the result of one Ask round trip.
type Answer struct {
	// Text is the model's full reply, patch blocks included.
	Text string

	// ContextFiles are the relative paths injected as context.
	ContextFiles []string

	// Edits are the pending edits enqueued from the reply, in reply order.
	Edits []*store.PendingFileEdit
}

// Engine owns the conversation history. All mutation happens under one mutex;
// a failed or cancelled completion never mutates history or the edit store.
type Engine struct {
	mu         sync.Mutex
	completion gateway.Completion
	selector   *selector.Selector
	store      *store.Store
	ws         *workspace.Workspace
	log        *zap.Logger

	history []gateway.Message

	// lastParsed is the history index of the newest assistant message whose
	// patch blocks have been enqueued. Older messages are never re-parsed, so
	// re-rendering a conversation cannot duplicate edits.
	lastParsed int

	activeFile string
	openFiles  []string
}

// New creates an Engine. log may be nil.
func New(completion gateway.Completion, sel *selector.Selector, st *store.Store, ws *workspace.Workspace, log *zap.Logger) *Engine {
	if completion == nil {
		panic("completion is required")
	}
	if sel == nil {
		panic("selector is required")
	}
	if st == nil {
		panic("store is required")
	}
	if ws == nil {
		panic("workspace is required")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		completion: completion,
		selector:   sel,
		store:      st,
		ws:         ws,
		log:        log,
		lastParsed: -1,
	}
}

// SetActiveFile records the file currently focused in the editor, as a
// workspace-relative path.
func (e *Engine) SetActiveFile(rel string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.activeFile = rel
}

// SetOpenFiles records the files currently open in the editor.
func (e *Engine) SetOpenFiles(rels []string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.openFiles = append([]string(nil), rels...)
}

// Ask runs one round trip: select context, complete, record history, enqueue
// any patch blocks. On any completion failure the engine state is untouched
// and the error is returned for the UI to surface.
func (e *Engine) Ask(ctx context.Context, question string) (*Answer, error) {
	listing, err := e.ws.Listing()
	if err != nil {
		e.log.Warn("file listing unavailable, continuing without context", zap.Error(err))
		listing = nil
	}

	contextBlock, included := e.selector.BuildContext(ctx, selector.Request{
		Question:  question,
		Preferred: e.preferred(),
		Listing:   listing,
	})

	userContent := question
	if contextBlock != "" {
		userContent = question + "\n\nRelevant project files:\n\n" + contextBlock
	}

	e.mu.Lock()
	messages := make([]gateway.Message, 0, len(e.history)+2)
	messages = append(messages, gateway.Message{Role: "system", Content: systemPrompt})
	messages = append(messages, e.history...)
	messages = append(messages, gateway.Message{Role: "user", Content: userContent})
	e.mu.Unlock()

	response, err := e.completion.RequestCompletion(ctx, messages)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	e.history = append(e.history,
		gateway.Message{Role: "user", Content: userContent},
		gateway.Message{Role: "assistant", Content: response},
	)
	e.mu.Unlock()

	answer := &Answer{Text: response, ContextFiles: included}
	answer.Edits = e.parseNewEdits(ctx)
	return answer, nil
}

// parseNewEdits enqueues the patch blocks of the newest unprocessed
// assistant message, if any. Each message is parsed at most once.
func (e *Engine) parseNewEdits(ctx context.Context) []*store.PendingFileEdit {
	e.mu.Lock()
	newest := -1
	for i := len(e.history) - 1; i > e.lastParsed; i-- {
		if e.history[i].Role == "assistant" && patch.ContainsPatch(e.history[i].Content) {
			newest = i
			break
		}
	}
	if newest < 0 {
		e.mu.Unlock()
		return nil
	}
	content := e.history[newest].Content
	e.lastParsed = newest
	e.mu.Unlock()

	parsed := patch.Parse(content)
	if len(parsed) == 0 {
		return nil
	}
	e.log.Info("patch blocks parsed", zap.Int("count", len(parsed)))
	return e.store.Enqueue(ctx, parsed)
}

// History returns a copy of the conversation so far.
func (e *Engine) History() []gateway.Message {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]gateway.Message, len(e.history))
	copy(out, e.history)
	return out
}

// TokenEstimate approximates the token footprint of the conversation,
// system prompt included.
func (e *Engine) TokenEstimate() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	var b strings.Builder
	b.WriteString(systemPrompt)
	for _, m := range e.history {
		b.WriteString(m.Content)
	}
	return tokenutil.EstimateTokensSimple(b.String())
}

// preferred returns the active file followed by the open files, deduplicated.
func (e *Engine) preferred() []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	var out []string
	seen := make(map[string]bool)
	if e.activeFile != "" {
		seen[e.activeFile] = true
		out = append(out, e.activeFile)
	}
	for _, p := range e.openFiles {
		if p != "" && !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}
