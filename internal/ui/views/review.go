package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/Cyclone1070/patchpane/internal/diff"
	"github.com/Cyclone1070/patchpane/internal/ui/models"
)

// RenderReview renders the pending-edit list and the diff of the selected
// edit.
func RenderReview(s models.State) string {
	if len(s.Edits) == 0 {
		return ContextStyle.Render("No pending edits.")
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render(fmt.Sprintf("Pending edits (%d)", len(s.Edits))))
	b.WriteString("\n\n")

	for i, e := range s.Edits {
		line := fmt.Sprintf("  %s  %s", e.Action, e.DisplayPath)
		if i == s.SelectedIndex {
			line = SelectedStyle.Render("> " + line[2:])
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if selected := s.SelectedEdit(); selected != nil {
		b.WriteString(renderDiff(selected))
	}

	footer := "[a] accept  [r] reject  [c] copy diff  [j/k] select  [esc] back"
	if s.CopyNotice != "" {
		footer = s.CopyNotice + "  " + footer
	}
	b.WriteString("\n")
	b.WriteString(StatusStyle.Render(footer))
	return b.String()
}

// renderDiff renders the line diff of one edit, with intra-line emphasis when
// a single removed line is replaced by a single added line.
func renderDiff(e *models.ReviewEdit) string {
	rows := diff.Rows(e.OriginalContent, e.NewContent)
	added, removed := diff.Counts(rows)

	var b strings.Builder
	b.WriteString(TitleStyle.Render(e.DisplayPath))
	b.WriteString(StatusStyle.Render(fmt.Sprintf("  +%d -%d", added, removed)))
	b.WriteString("\n")

	for i := 0; i < len(rows); i++ {
		row := rows[i]
		switch row.Kind {
		case diff.RowRemoved:
			if pair, ok := replacementPair(rows, i); ok {
				b.WriteString(renderWordDiff(row.Text, pair, diffmatchpatch.DiffDelete, RemovedStyle, "- "))
				b.WriteString(renderWordDiff(row.Text, pair, diffmatchpatch.DiffInsert, AddedStyle, "+ "))
				i++
				continue
			}
			b.WriteString(RemovedStyle.Render("- " + row.Text))
			b.WriteString("\n")
		case diff.RowAdded:
			b.WriteString(AddedStyle.Render("+ " + row.Text))
			b.WriteString("\n")
		default:
			b.WriteString(ContextStyle.Render("  " + row.Text))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// replacementPair reports whether rows[i] is a removed line directly replaced
// by exactly one added line, returning that added line's text.
func replacementPair(rows []diff.Row, i int) (string, bool) {
	if i+1 >= len(rows) || rows[i+1].Kind != diff.RowAdded {
		return "", false
	}
	if i+2 < len(rows) && rows[i+2].Kind == diff.RowAdded {
		return "", false
	}
	if i > 0 && rows[i-1].Kind == diff.RowRemoved {
		return "", false
	}
	return rows[i+1].Text, true
}

// renderWordDiff renders one side of a replaced line, underlining the spans
// that differ.
func renderWordDiff(oldLine, newLine string, keep diffmatchpatch.Operation, style lipgloss.Style, prefix string) string {
	var b strings.Builder
	b.WriteString(style.Render(prefix))
	for _, span := range diff.WordSpans(oldLine, newLine) {
		switch span.Type {
		case diffmatchpatch.DiffEqual:
			b.WriteString(style.Render(span.Text))
		case keep:
			b.WriteString(style.Render(HighlightStyle.Render(span.Text)))
		}
	}
	b.WriteString("\n")
	return b.String()
}
