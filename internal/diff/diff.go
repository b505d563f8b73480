// Package diff computes line-level diffs between two text blobs for review
// rendering and round-trip verification.
package diff

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// RowKind tags a rendered diff row.
type RowKind string

const (
	RowAdded   RowKind = "added"
	RowRemoved RowKind = "removed"
	RowContext RowKind = "context"
)

// NoChanges is the placeholder text of the synthetic row returned when both
// inputs are identical.
const NoChanges = "no changes"

// Row is one rendered diff line. Text never contains a newline; a trailing
// newline in the input produces an explicit empty trailing row so the row
// count matches the line-segment count.
type Row struct {
	Text string
	Kind RowKind
}

// Rows computes the ordered diff rows between originalContent and newContent.
//
// Identical inputs yield a single synthetic context row rather than an empty
// list, so the review pane always has something to show. For unequal inputs,
// joining the text of all non-removed rows with "\n" reproduces newContent
// exactly; tests rely on that invariant, and the output is deterministic for
// identical inputs.
func Rows(originalContent, newContent string) []Row {
	if originalContent == newContent {
		return []Row{{Text: NoChanges, Kind: RowContext}}
	}

	a := strings.Split(originalContent, "\n")
	b := strings.Split(newContent, "\n")

	var rows []Row
	for _, op := range difflib.NewMatcher(a, b).GetOpCodes() {
		switch op.Tag {
		case 'e':
			// Context rows are taken from the new side so the round-trip
			// reconstruction is exact by construction.
			for _, line := range b[op.J1:op.J2] {
				rows = append(rows, Row{Text: line, Kind: RowContext})
			}
		case 'd':
			for _, line := range a[op.I1:op.I2] {
				rows = append(rows, Row{Text: line, Kind: RowRemoved})
			}
		case 'i':
			for _, line := range b[op.J1:op.J2] {
				rows = append(rows, Row{Text: line, Kind: RowAdded})
			}
		case 'r':
			for _, line := range a[op.I1:op.I2] {
				rows = append(rows, Row{Text: line, Kind: RowRemoved})
			}
			for _, line := range b[op.J1:op.J2] {
				rows = append(rows, Row{Text: line, Kind: RowAdded})
			}
		}
	}

	return rows
}

// Counts returns the number of added and removed rows.
func Counts(rows []Row) (added, removed int) {
	for _, row := range rows {
		switch row.Kind {
		case RowAdded:
			added++
		case RowRemoved:
			removed++
		}
	}
	return added, removed
}

// Unified renders a unified diff string for clipboard export and logging.
func Unified(displayPath, originalContent, newContent string) string {
	ud := difflib.UnifiedDiff{
		A:        difflib.SplitLines(originalContent),
		B:        difflib.SplitLines(newContent),
		FromFile: "a/" + displayPath,
		ToFile:   "b/" + displayPath,
		Context:  3,
	}
	out, err := difflib.GetUnifiedDiffString(ud)
	if err != nil {
		return ""
	}
	return out
}
