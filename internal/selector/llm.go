package selector

import (
	"encoding/json"
	"fmt"
	"strings"
)

// buildSelectionPrompt lists the preferred files and a bounded slice of the
// full listing, and asks for a JSON array of relevant paths. The listing is
// truncated to maxEntries entries and maxChars characters, whichever bound
// hits first.
func buildSelectionPrompt(question string, preferred, listing []string, maxFiles, maxEntries, maxChars int) string {
	var b strings.Builder
	b.WriteString("You select project files relevant to a user question.\n\n")
	b.WriteString("Question:\n")
	b.WriteString(question)
	b.WriteString("\n\n")

	if len(preferred) > 0 {
		b.WriteString("Files currently open in the editor:\n")
		for _, p := range preferred {
			b.WriteString("- ")
			b.WriteString(p)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("Project files:\n")
	listingChars := 0
	for i, p := range listing {
		if i >= maxEntries {
			break
		}
		if listingChars+len(p)+1 > maxChars {
			break
		}
		b.WriteString(p)
		b.WriteString("\n")
		listingChars += len(p) + 1
	}

	fmt.Fprintf(&b, "\nReply with a JSON array of at most %d paths from the project files above that are most relevant to the question, for example [\"src/a.ts\",\"src/b.ts\"]. Reply with [] if none are relevant. Reply with the JSON array only.\n", maxFiles)
	return b.String()
}

// parseSelection extracts paths from the model's reply. Strict JSON between
// the first '[' and last ']' is tried first; anything that fails falls back
// to splitting on commas and newlines. Never errors.
func parseSelection(response string) []string {
	open := strings.Index(response, "[")
	end := strings.LastIndex(response, "]")
	body := response
	if open >= 0 && end > open {
		body = response[open : end+1]
		var paths []string
		if err := json.Unmarshal([]byte(body), &paths); err == nil {
			return cleanPaths(paths)
		}
		body = body[1 : len(body)-1]
	}

	split := strings.FieldsFunc(body, func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r'
	})
	return cleanPaths(split)
}

// cleanPaths trims quotes, backticks, and list markers, dropping empties.
func cleanPaths(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, p := range raw {
		p = strings.TrimSpace(p)
		p = strings.Trim(p, "\"'`")
		p = strings.TrimPrefix(p, "- ")
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
