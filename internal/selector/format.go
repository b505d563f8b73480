package selector

import (
	"fmt"
	"strings"
)

const truncationMarker = "... [truncated]"

// formatSnippet renders file content with 4-digit line-number prefixes,
// cutting at perFileCap characters with an explicit marker.
func formatSnippet(path, content string, perFileCap int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "--- %s ---\n", path)

	numbered := strings.Builder{}
	for i, line := range strings.Split(content, "\n") {
		fmt.Fprintf(&numbered, "%04d| %s\n", i+1, line)
	}

	body := numbered.String()
	if len(body) > perFileCap {
		body = body[:perFileCap] + "\n" + truncationMarker + "\n"
	}
	b.WriteString(body)
	return b.String()
}
