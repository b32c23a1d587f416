package enum

// ReportState is the primary report lifecycle of a content item. The
// warned/fired flags on the item are orthogonal audit markers layered on
// top of this state and never change it.
//
//go:generate go tool enumer -type=ReportState -trimprefix=ReportState
type ReportState int

const (
	// ReportStateClean means the item has never been reported.
	ReportStateClean ReportState = iota
	// ReportStatePending means an open report awaits moderator review.
	ReportStatePending
	// ReportStateArchived means report handling was completed; the item
	// stays queryable and can be reactivated.
	ReportStateArchived
)

// CanComplete reports whether report handling may be marked complete
// from this state.
func (i ReportState) CanComplete() bool {
	return i == ReportStatePending
}

// CanReactivate reports whether an archived report may be returned to
// the pending queue from this state.
func (i ReportState) CanReactivate() bool {
	return i == ReportStateArchived
}
