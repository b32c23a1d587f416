package enum

// AccountStatus represents the states a user account can be in.
//
//go:generate go tool enumer -type=AccountStatus -trimprefix=AccountStatus
type AccountStatus int

const (
	// AccountStatusActive indicates a normal account in good standing.
	AccountStatusActive AccountStatus = iota
	// AccountStatusInactive indicates a dormant or deactivated account.
	AccountStatusInactive
	// AccountStatusSuspended indicates a sanctioned account. A suspended
	// account with no expiry instant is permanently suspended.
	AccountStatusSuspended
)
