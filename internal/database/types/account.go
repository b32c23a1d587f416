package types

import (
	"time"

	"github.com/pobredward/inschoolz-moderation/internal/database/types/enum"
	"github.com/uptrace/bun"
)

// Warning is a recorded sanction against a user for one reported content
// item. Warnings are unique per (ContentID, ContentType) within a user's
// warning list.
type Warning struct {
	ID               string           `json:"id"`
	Reasons          []string         `json:"reasons"`
	CustomReason     string           `json:"customReason,omitempty"`
	ContentID        string           `json:"contentId"`
	ContentType      enum.ContentType `json:"contentType"`
	PostID           string           `json:"postId,omitempty"`
	ContentTitle     string           `json:"contentTitle,omitempty"`
	ContentCreatedAt time.Time        `json:"contentCreatedAt"`
	CreatedAt        time.Time        `json:"createdAt"`
}

// Matches reports whether the warning covers the given content item.
func (w *Warning) Matches(contentID string, contentType enum.ContentType) bool {
	return w.ContentID == contentID && w.ContentType == contentType
}

// UserAccount is a platform account as seen by the sanctioning subsystem.
// The account is created by the signup flow; its sanction fields are owned
// exclusively by the suspension engine and the expiry sweep.
type UserAccount struct {
	bun.BaseModel `bun:"table:user_accounts"`

	ID     string             `bun:"id,pk"`
	Name   string             `bun:",nullzero"`
	Status enum.AccountStatus `bun:",notnull,default:0"`

	SuspensionReason string     `bun:",nullzero"`
	SuspendedAt      *time.Time `bun:",nullzero"`
	// SuspendedUntil is nil while suspended for a permanent suspension.
	// Stored as jsonb because legacy document exports carried mixed
	// timestamp shapes; Instant normalizes them on read.
	SuspendedUntil *Instant   `bun:"suspended_until,type:jsonb,nullzero"`
	Warnings       []*Warning `bun:"warnings,type:jsonb"`

	// Version guards every save against concurrent mutators.
	Version int64 `bun:",notnull,default:0"`
}

// IsPermanentlySuspended reports whether the account is suspended with no
// expiry. Such accounts are never touched by the sweep.
func (a *UserAccount) IsPermanentlySuspended() bool {
	return a.Status == enum.AccountStatusSuspended && a.SuspendedUntil == nil
}

// SuspensionExpired reports whether a bounded suspension window has
// elapsed at the given instant.
func (a *UserAccount) SuspensionExpired(now time.Time) bool {
	return a.SuspendedUntil != nil && !a.SuspendedUntil.Time.After(now)
}

// FindWarning returns the existing warning for a content item, or nil.
func (a *UserAccount) FindWarning(contentID string, contentType enum.ContentType) *Warning {
	for _, w := range a.Warnings {
		if w.Matches(contentID, contentType) {
			return w
		}
	}

	return nil
}

// SuspensionSettings describes a suspension being applied to an account.
type SuspensionSettings struct {
	Reason       string
	Kind         enum.SuspensionKind
	DurationDays int
	NotifyUser   bool
}

// SweepSummary aggregates the outcome of one expiry sweep.
type SweepSummary struct {
	TotalChecked    int
	Unsuspended     int
	Failed          int
	RestoredUserIDs []string
}
