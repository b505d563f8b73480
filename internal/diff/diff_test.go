package diff

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// roundTrip joins the text of all non-removed rows; for unequal inputs it must
// reproduce the new content exactly.
func roundTrip(rows []Row) string {
	var kept []string
	for _, row := range rows {
		if row.Kind != RowRemoved {
			kept = append(kept, row.Text)
		}
	}
	return strings.Join(kept, "\n")
}

func TestRowsRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		old  string
		new  string
	}{
		{"single line change", "foo", "bar"},
		{"line added", "a\nb", "a\nb\nc"},
		{"line removed", "a\nb\nc", "a\nc"},
		{"replace middle", "a\nb\nc", "a\nx\nc"},
		{"trailing newline added", "a\nb", "a\nb\n"},
		{"trailing newline removed", "a\nb\n", "a\nb"},
		{"from empty", "", "hello\nworld\n"},
		{"to empty", "hello\nworld\n", ""},
		{"interleaved changes", "a\nb\nc\nd\ne", "a\nx\nc\ny\ne\nz"},
		{"whitespace only change", "a\n  b\n", "a\n\tb\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := Rows(tt.old, tt.new)
			assert.Equal(t, tt.new, roundTrip(rows))
		})
	}
}

func TestRowsEqualInputsYieldPlaceholder(t *testing.T) {
	for _, content := range []string{"", "a", "a\nb\nc\n", "x\n\n\ny"} {
		rows := Rows(content, content)
		require.Len(t, rows, 1)
		assert.Equal(t, Row{Text: NoChanges, Kind: RowContext}, rows[0])
	}
}

func TestRowsTrailingNewlineProducesEmptyRow(t *testing.T) {
	rows := Rows("a", "a\nb\n")

	// Segments of "a\nb\n" are ["a" "b" ""]; the final empty segment must be
	// an explicit row so rendered row count matches segment count.
	var nonRemoved []Row
	for _, r := range rows {
		if r.Kind != RowRemoved {
			nonRemoved = append(nonRemoved, r)
		}
	}
	require.Len(t, nonRemoved, 3)
	assert.Equal(t, "", nonRemoved[2].Text)
}

func TestRowsKinds(t *testing.T) {
	rows := Rows("a\nb\nc", "a\nx\nc")

	want := []Row{
		{Text: "a", Kind: RowContext},
		{Text: "b", Kind: RowRemoved},
		{Text: "x", Kind: RowAdded},
		{Text: "c", Kind: RowContext},
	}
	if d := cmp.Diff(want, rows); d != "" {
		t.Errorf("row mismatch (-want +got):\n%s", d)
	}
}

func TestRowsDeterministic(t *testing.T) {
	old := "alpha\nbeta\ngamma\ndelta\n"
	new := "alpha\nbeta2\ngamma\ndelta\nepsilon\n"

	first := Rows(old, new)
	for range 5 {
		if d := cmp.Diff(first, Rows(old, new)); d != "" {
			t.Fatalf("Rows not deterministic:\n%s", d)
		}
	}
}

func TestCounts(t *testing.T) {
	rows := Rows("a\nb\nc", "a\nx\ny\nc")
	added, removed := Counts(rows)
	assert.Equal(t, 2, added)
	assert.Equal(t, 1, removed)
}

func TestUnified(t *testing.T) {
	out := Unified("src/a.go", "foo\n", "bar\n")

	assert.Contains(t, out, "--- a/src/a.go")
	assert.Contains(t, out, "+++ b/src/a.go")
	assert.Contains(t, out, "-foo")
	assert.Contains(t, out, "+bar")
}

func TestWordSpans(t *testing.T) {
	spans := WordSpans("count := 1", "count := 2")
	require.NotEmpty(t, spans)

	var inserted, kept string
	for _, s := range spans {
		switch s.Type {
		case diffmatchpatch.DiffInsert:
			inserted += s.Text
		case diffmatchpatch.DiffEqual:
			kept += s.Text
		}
	}
	assert.Contains(t, inserted, "2")
	assert.Contains(t, kept, "count := ")
}
