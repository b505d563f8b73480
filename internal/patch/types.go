// Package patch extracts ordered edit proposals from raw assistant text.
//
// The wire grammar is the sole contract between any LLM integration and the
// engine: repeated blocks of
//
//	***PATCH <path>
//	***OLD:
//	<original content>
//	***NEW:
//	<replacement content>
//
// terminated by the next ***PATCH marker or end of input.
package patch

// Action describes what applying an edit does to its target file.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// ParsedFileEdit is one well-formed patch block. It is produced directly from
// parsing and is not yet tied to the filesystem.
type ParsedFileEdit struct {
	// Path is the target path exactly as the model spelled it.
	Path string
	// Action is derived from old/new content presence, see Classify.
	Action Action
	// Old is the content of the ***OLD: section.
	Old string
	// Content is the content of the ***NEW: section.
	Content string
	// Reason optionally explains a block, currently only populated for
	// discarded no-change blocks.
	Reason string
}
