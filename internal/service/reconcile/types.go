package reconcile

// CreateEventsResult lists the remote ids now backing the schedule. Patched
// counts the ids that reused an existing remote event.
type CreateEventsResult struct {
	Created []string `json:"created"`
	Failed  int      `json:"failed"`
	Patched int      `json:"patched"`
}

type DeleteEventsResult struct {
	Deleted []string `json:"deleted"`
	Failed  []string `json:"failed"`
}
