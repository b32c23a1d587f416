package types

import (
	"time"

	"github.com/pobredward/inschoolz-moderation/internal/database/types/enum"
	"github.com/uptrace/bun"
)

// Actor identifies who performed a mutating operation. Every mutating call
// takes an explicit Actor; identity is never resolved from ambient state.
type Actor struct {
	ID        string
	Name      string
	IPAddress string
	UserAgent string
}

// SystemActor is the actor recorded for automated transitions such as the
// expiry sweep.
var SystemActor = Actor{ID: "system", Name: "system"}

// AuditLogEntry is an append-only record of one administrative state
// change. Entries are immutable once written.
type AuditLogEntry struct {
	bun.BaseModel `bun:"table:audit_logs"`

	Sequence       int64            `bun:",pk,autoincrement"`
	ActorID        string           `bun:",notnull"`
	ActorName      string           `bun:",nullzero"`
	Action         enum.AuditAction `bun:",notnull"`
	TargetUserID   string           `bun:",nullzero"`
	TargetUserName string           `bun:",nullzero"`
	OldValue       string           `bun:",nullzero"`
	NewValue       string           `bun:",nullzero"`
	Reason         string           `bun:",nullzero"`
	Timestamp      time.Time        `bun:",notnull"`
	IPAddress      string           `bun:",nullzero"`
	UserAgent      string           `bun:",nullzero"`
	Details        map[string]any   `bun:"type:jsonb"`
}

// AuditFilter narrows an audit log query. Zero-valued fields are ignored;
// Action is a pointer so the zero action remains filterable.
type AuditFilter struct {
	ActorID      string
	TargetUserID string
	Action       *enum.AuditAction
	StartDate    time.Time
	EndDate      time.Time
}

// AuditCursor marks a position in the audit log for stable pagination.
type AuditCursor struct {
	Timestamp time.Time `json:"timestamp"`
	Sequence  int64     `json:"sequence"`
}
