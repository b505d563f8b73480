package patch

// Classify derives the edit action from old/new content presence.
//
// Both-empty is classified as update, not a no-op: accepting such an edit
// truncates the target file to empty. That behavior is intentional and must
// not be silently changed; it is flagged for product-level review rather than
// fixed here.
func Classify(oldContent, newContent string) Action {
	hasOld := len(oldContent) > 0
	hasNew := len(newContent) > 0

	switch {
	case !hasOld && hasNew:
		return ActionCreate
	case hasOld && !hasNew:
		return ActionDelete
	default:
		return ActionUpdate
	}
}
