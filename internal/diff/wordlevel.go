package diff

import "github.com/sergi/go-diff/diffmatchpatch"

var dmp = func() *diffmatchpatch.DiffMatchPatch {
	d := diffmatchpatch.New()
	d.DiffTimeout = 0
	return d
}()

// WordSpans computes word-level differences between a removed row and the
// added row that replaced it. The review renderer uses the spans to highlight
// what actually changed inside a modified line.
func WordSpans(oldLine, newLine string) []diffmatchpatch.Diff {
	diffs := dmp.DiffMain(oldLine, newLine, false)
	return dmp.DiffCleanupSemantic(diffs)
}
