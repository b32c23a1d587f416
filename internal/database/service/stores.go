package service

import (
	"context"

	"github.com/pobredward/inschoolz-moderation/internal/database/types"
	"github.com/pobredward/inschoolz-moderation/internal/database/types/enum"
)

// ContentStore is the content persistence surface the services consume.
// *models.ContentModel satisfies it.
type ContentStore interface {
	GetContent(ctx context.Context, id string, contentType enum.ContentType) (*types.ContentItem, error)
	SaveContent(ctx context.Context, item *types.ContentItem) error
	ListPendingReports(ctx context.Context) ([]*types.ContentItem, error)
	ListCompletedReports(
		ctx context.Context, cursor *types.ReportCursor, limit int,
	) ([]*types.ContentItem, *types.ReportCursor, error)
}

// AccountStore is the account persistence surface the services consume.
// *models.AccountModel satisfies it.
type AccountStore interface {
	GetAccount(ctx context.Context, id string) (*types.UserAccount, error)
	SaveAccount(ctx context.Context, account *types.UserAccount) error
	GetSuspendedAccounts(ctx context.Context, afterID string, limit int) ([]*types.UserAccount, error)
	RestoreAccount(ctx context.Context, id string, version int64) (bool, error)
}

// AuditLog appends and queries administrative state changes. Appends are
// best-effort and never fail the owning mutation. *models.AuditModel
// satisfies it.
type AuditLog interface {
	Log(ctx context.Context, entry *types.AuditLogEntry)
	GetLogs(
		ctx context.Context, filter types.AuditFilter, cursor *types.AuditCursor, limit int,
	) ([]*types.AuditLogEntry, *types.AuditCursor, error)
}
