package types

import (
	"time"

	"github.com/pobredward/inschoolz-moderation/internal/database/types/enum"
	"github.com/uptrace/bun"
)

// Report is a single report filed against a content item. Reports are
// intentionally not deduplicated per reporter; repeated reports raise an
// item's visibility in the pending queue.
type Report struct {
	ReporterID   string    `json:"reporterId"`
	Reasons      []string  `json:"reasons"`
	CustomReason string    `json:"customReason,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ContentItem is a post or comment as seen by the moderation subsystem.
// Posts and comments share one shape, distinguished by ContentType;
// comments carry the owning post in ParentPostID. The item is created by
// the posting service and only mutated here; it is never hard-deleted.
type ContentItem struct {
	bun.BaseModel `bun:"table:content_items"`

	ID           string           `bun:"id,pk"`
	ContentType  enum.ContentType `bun:"content_type,pk"`
	AuthorID     string           `bun:",notnull"`
	ParentPostID string           `bun:",nullzero"`
	Title        string           `bun:",nullzero"`
	CreatedAt    time.Time        `bun:",notnull"`

	ReportCount     int        `bun:",notnull,default:0"`
	IsReportPending bool       `bun:",notnull,default:false"`
	Reports         []*Report  `bun:"reports,type:jsonb"`
	LastReportedAt  *time.Time `bun:",nullzero"`
	CompletedAt     *time.Time `bun:",nullzero"`

	IsWarned  bool       `bun:",notnull,default:false"`
	IsFired   bool       `bun:",notnull,default:false"`
	DeletedAt *time.Time `bun:",nullzero"`

	// Version guards every save against concurrent mutators.
	Version int64 `bun:",notnull,default:0"`
}

// ReportState derives the primary report lifecycle state from the stored
// flags. IsWarned/IsFired do not participate; they overlay this state.
func (c *ContentItem) ReportState() enum.ReportState {
	switch {
	case c.ReportCount == 0:
		return enum.ReportStateClean
	case c.IsReportPending:
		return enum.ReportStatePending
	default:
		return enum.ReportStateArchived
	}
}

// ReportCursor marks a position in a report listing for keyset pagination.
type ReportCursor struct {
	LastReportedAt time.Time `json:"lastReportedAt"`
	ID             string    `json:"id"`
}
