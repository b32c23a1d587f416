package enum

// SuspensionKind controls whether a suspension carries an expiry instant.
//
//go:generate go tool enumer -type=SuspensionKind -trimprefix=SuspensionKind
type SuspensionKind int

const (
	// SuspensionKindTemporary suspends for a bounded number of days.
	SuspensionKindTemporary SuspensionKind = iota
	// SuspensionKindPermanent suspends with no expiry; the sweep never
	// touches permanent suspensions.
	SuspensionKindPermanent
)
