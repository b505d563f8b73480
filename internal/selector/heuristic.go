// Package selector picks a bounded subset of project files to inject as
// prompt context, combining a token heuristic with an LLM-assisted stage
// that falls back to the heuristic on any failure.
package selector

import (
	"sort"
	"strings"
)

const minTokenLen = 3

// longTokenLen is the length at which a token counts double: longer tokens
// are more likely to be identifiers than common words.
const longTokenLen = 6

func isTokenChar(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '.' || r == '-' || r == '_'
}

// Tokenize lowercases the question and returns its deduplicated runs of
// [a-z0-9._-] of length >= 3, in first-occurrence order.
func Tokenize(question string) []string {
	lower := strings.ToLower(question)

	var tokens []string
	seen := make(map[string]bool)
	start := -1
	flush := func(end int) {
		if start < 0 {
			return
		}
		token := lower[start:end]
		start = -1
		if len(token) < minTokenLen || seen[token] {
			return
		}
		seen[token] = true
		tokens = append(tokens, token)
	}

	for i, r := range lower {
		if isTokenChar(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		flush(i)
	}
	flush(len(lower))
	return tokens
}

// questionWords returns every lowercase [a-z0-9._-] run of the question with
// no minimum length, for exact-word matching against file name stems.
func questionWords(question string) map[string]bool {
	words := make(map[string]bool)
	for _, w := range strings.FieldsFunc(strings.ToLower(question), func(r rune) bool {
		return !isTokenChar(r)
	}) {
		words[w] = true
	}
	return words
}

// stem returns the lowercase base name of a path with its extension removed:
// "src/store.test.ts" -> "store.test".
func stem(p string) string {
	base := p
	if i := strings.LastIndexByte(base, '/'); i >= 0 {
		base = base[i+1:]
	}
	if i := strings.LastIndexByte(base, '.'); i > 0 {
		base = base[:i]
	}
	return strings.ToLower(base)
}

// HeuristicMatches scores each candidate path by substring containment of the
// question's tokens (weight 2 for tokens >= 6 chars, else 1), plus 2 when the
// file's name stem appears verbatim as a word of the question (this is what
// lets a one-letter file name like y.ts match "fix y"). Returns the paths
// with a positive score, best first, capped at limit. Ties keep the
// candidates' original order, so identical inputs always produce identical
// output.
func HeuristicMatches(question string, candidates []string, limit int) []string {
	tokens := Tokenize(question)
	words := questionWords(question)
	if (len(tokens) == 0 && len(words) == 0) || limit < 1 {
		return nil
	}

	type scored struct {
		path  string
		score int
		order int
	}
	var matches []scored
	for i, path := range candidates {
		lower := strings.ToLower(path)
		score := 0
		for _, token := range tokens {
			if !strings.Contains(lower, token) {
				continue
			}
			if len(token) >= longTokenLen {
				score += 2
			} else {
				score++
			}
		}
		if words[stem(path)] {
			score += 2
		}
		if score > 0 {
			matches = append(matches, scored{path: path, score: score, order: i})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].score != matches[j].score {
			return matches[i].score > matches[j].score
		}
		return matches[i].order < matches[j].order
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.path
	}
	return out
}
