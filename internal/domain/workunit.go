package domain

// WorkUnitEvent notifies the session controller that a changeset was
// finalized in the editor. Delivered at most once per underlying upload or
// close request; deduplication against the current session happens at the
// controller.
type WorkUnitEvent struct {
	WorkUnitID string
}
