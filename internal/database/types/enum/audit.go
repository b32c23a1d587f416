package enum

// AuditAction identifies the administrative state change recorded by an
// audit log entry.
//
//go:generate go tool enumer -type=AuditAction -trimprefix=AuditAction -transform=snake
type AuditAction int

const (
	// AuditActionStatusChange records an account status transition.
	AuditActionStatusChange AuditAction = iota
	// AuditActionContentWarned records a warning issued for a content item.
	AuditActionContentWarned
	// AuditActionContentRemoved records a content soft delete.
	AuditActionContentRemoved
	// AuditActionReportCompleted records report handling being archived.
	AuditActionReportCompleted
	// AuditActionReportReactivated records an archived report returning to
	// the pending queue.
	AuditActionReportReactivated
)
