package patch

import "strings"

const (
	markerPatch = "***PATCH"
	markerOld   = "***OLD:"
	markerNew   = "***NEW:"
)

// ContainsPatch reports whether text contains at least one patch marker.
// Used to decide which assistant messages are worth scanning at all.
func ContainsPatch(text string) bool {
	return strings.Contains(text, markerPatch)
}

// Parse extracts the ordered list of well-formed patch blocks from raw
// assistant text.
//
// Parsing is permissive by design: malformed or unterminated blocks are simply
// not matched, never an error. A block whose path is empty or "NONE" (any
// case) signals "no change needed" and is discarded. Multiple blocks may
// target the same path; each is an independent proposal.
func Parse(text string) []ParsedFileEdit {
	// CRLF-normalize, then drop the single trailing newline that belongs to
	// the grammar rather than to the final content section.
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")

	var edits []ParsedFileEdit

	i := 0
	for i < len(lines) {
		if !isPatchMarker(lines[i]) {
			i++
			continue
		}

		path := strings.TrimSpace(strings.TrimPrefix(lines[i], markerPatch))
		i++

		// ***OLD: must follow immediately for the block to be well-formed.
		if i >= len(lines) || strings.TrimSpace(lines[i]) != markerOld {
			continue
		}
		i++

		oldStart := i
		for i < len(lines) && strings.TrimSpace(lines[i]) != markerNew {
			if isPatchMarker(lines[i]) {
				break
			}
			i++
		}
		if i >= len(lines) || strings.TrimSpace(lines[i]) != markerNew {
			// Unterminated OLD section; resume scanning at the current line.
			continue
		}
		oldContent := strings.Join(lines[oldStart:i], "\n")
		i++

		newStart := i
		for i < len(lines) && !isPatchMarker(lines[i]) {
			i++
		}
		newContent := strings.Join(lines[newStart:i], "\n")

		if path == "" || strings.EqualFold(path, "NONE") {
			continue
		}

		edits = append(edits, ParsedFileEdit{
			Path:    path,
			Action:  Classify(oldContent, newContent),
			Old:     oldContent,
			Content: newContent,
		})
	}

	return edits
}

func isPatchMarker(line string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed == markerPatch || strings.HasPrefix(trimmed, markerPatch+" ")
}
