package selector

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/Cyclone1070/patchpane/internal/config"
	"github.com/Cyclone1070/patchpane/internal/gateway"
	"github.com/Cyclone1070/patchpane/internal/workspace"
)

// Request carries one selection's inputs. Preferred paths (the active file
// plus anything open in the editor) are always included in the result when
// they exist in the listing, cap permitting.
type Request struct {
	Question  string
	Preferred []string
	Listing   []workspace.FileListingEntry
}

// Selector owns no state beyond a single request's lifetime.
type Selector struct {
	completion gateway.Completion
	fs         gateway.FileAccess
	cfg        config.SelectionConfig
	log        *zap.Logger
}

// New creates a Selector. completion may be nil, in which case only the
// heuristic stage runs. log may be nil.
func New(completion gateway.Completion, fs gateway.FileAccess, cfg config.SelectionConfig, log *zap.Logger) *Selector {
	if fs == nil {
		panic("fs is required")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Selector{completion: completion, fs: fs, cfg: cfg, log: log}
}

// SelectFiles returns at most cfg.MaxFiles relative paths from the listing.
// The LLM stage runs when a completion gateway is configured and the listing
// is non-empty; any failure or cancellation falls back to preferred plus the
// top heuristic matches. Never errors.
func (s *Selector) SelectFiles(ctx context.Context, req Request) []string {
	files := filePaths(req.Listing)
	preferred := intersect(req.Preferred, files)

	if s.completion == nil || len(files) == 0 {
		return s.fallback(req.Question, preferred, files)
	}

	prompt := buildSelectionPrompt(req.Question, preferred, files,
		s.cfg.MaxFiles, s.cfg.MaxListingEntries, s.cfg.MaxListingChars)
	response, err := s.completion.RequestCompletion(ctx, []gateway.Message{
		{Role: "user", Content: prompt},
	})
	if err != nil {
		s.log.Debug("selection completion failed, using heuristic fallback", zap.Error(err))
		return s.fallback(req.Question, preferred, files)
	}

	selected := intersect(parseSelection(response), files)

	// Preferred files always come first, then the model's picks, then
	// heuristic padding up to the cap.
	out := union(preferred, selected)
	if len(out) < s.cfg.MaxFiles {
		out = union(out, HeuristicMatches(req.Question, files, s.cfg.MaxFiles))
	}
	return capAt(out, s.cfg.MaxFiles)
}

// BuildContext selects files and renders their content as numbered snippets,
// appending in selection order until the total budget would be exceeded;
// remaining files are silently dropped. Returns the rendered block and the
// paths actually included.
func (s *Selector) BuildContext(ctx context.Context, req Request) (string, []string) {
	selected := s.SelectFiles(ctx, req)
	byRel := make(map[string]string, len(req.Listing))
	for _, e := range req.Listing {
		if e.Kind == workspace.KindFile {
			byRel[e.RelativePath] = e.AbsolutePath
		}
	}

	var b strings.Builder
	var included []string
	for _, rel := range selected {
		abs, ok := byRel[rel]
		if !ok {
			continue
		}
		content, err := s.fs.ReadFile(ctx, abs)
		if err != nil {
			s.log.Debug("skipping unreadable context file",
				zap.String("path", rel), zap.Error(err))
			continue
		}
		snippet := formatSnippet(rel, content, s.cfg.SnippetPerFileChars)
		if b.Len()+len(snippet) > s.cfg.SnippetBudgetChars {
			break
		}
		b.WriteString(snippet)
		included = append(included, rel)
	}
	return b.String(), included
}

func (s *Selector) fallback(question string, preferred, files []string) []string {
	out := union(preferred, HeuristicMatches(question, files, s.cfg.MaxFiles))
	return capAt(out, s.cfg.MaxFiles)
}

// filePaths extracts the relative paths of file entries, directories excluded.
func filePaths(listing []workspace.FileListingEntry) []string {
	out := make([]string, 0, len(listing))
	for _, e := range listing {
		if e.Kind == workspace.KindFile {
			out = append(out, e.RelativePath)
		}
	}
	return out
}

// intersect keeps the elements of paths that appear in available, in order,
// deduplicated.
func intersect(paths, available []string) []string {
	set := make(map[string]bool, len(available))
	for _, p := range available {
		set[p] = true
	}
	var out []string
	seen := make(map[string]bool)
	for _, p := range paths {
		if set[p] && !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}

// union appends the elements of b not already in a.
func union(a, b []string) []string {
	seen := make(map[string]bool, len(a))
	out := make([]string, 0, len(a)+len(b))
	for _, p := range a {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	for _, p := range b {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}

func capAt(paths []string, n int) []string {
	if len(paths) > n {
		return paths[:n]
	}
	return paths
}
