package models

import (
	"context"
	"errors"
	"fmt"

	"github.com/pobredward/inschoolz-moderation/internal/database/dbretry"
	"github.com/pobredward/inschoolz-moderation/internal/database/types"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// ErrNoAuditEntries indicates an audit query matched nothing.
var ErrNoAuditEntries = errors.New("no audit log entries found")

// AuditModel handles database operations for the append-only audit log.
type AuditModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewAudit creates a repository for storing and retrieving audit log
// entries.
func NewAudit(db *bun.DB, logger *zap.Logger) *AuditModel {
	return &AuditModel{
		db:     db,
		logger: logger.Named("db_audit"),
	}
}

// Log appends one audit entry. The append is best-effort: a failure is
// logged and swallowed so it never rolls back the owning state change.
func (r *AuditModel) Log(ctx context.Context, entry *types.AuditLogEntry) {
	err := dbretry.NoResult(ctx, func(ctx context.Context) error {
		_, err := r.db.NewInsert().Model(entry).Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to append audit entry: %w", err)
		}

		return nil
	})
	if err != nil {
		r.logger.Error("Failed to append audit entry",
			zap.Error(err),
			zap.String("actorID", entry.ActorID),
			zap.String("targetUserID", entry.TargetUserID),
			zap.String("action", entry.Action.String()))

		return
	}

	r.logger.Debug("Appended audit entry",
		zap.String("actorID", entry.ActorID),
		zap.String("targetUserID", entry.TargetUserID),
		zap.String("action", entry.Action.String()))
}

// GetLogs retrieves audit entries based on filter criteria with keyset
// pagination on (timestamp, sequence).
func (r *AuditModel) GetLogs(
	ctx context.Context, filter types.AuditFilter, cursor *types.AuditCursor, limit int,
) ([]*types.AuditLogEntry, *types.AuditCursor, error) {
	var (
		entries    []*types.AuditLogEntry
		nextCursor *types.AuditCursor
	)

	err := dbretry.NoResult(ctx, func(ctx context.Context) error {
		query := r.db.NewSelect().Model(&entries)

		if filter.ActorID != "" {
			query = query.Where("actor_id = ?", filter.ActorID)
		}

		if filter.TargetUserID != "" {
			query = query.Where("target_user_id = ?", filter.TargetUserID)
		}

		if filter.Action != nil {
			query = query.Where("action = ?", *filter.Action)
		}

		if !filter.StartDate.IsZero() && !filter.EndDate.IsZero() {
			query = query.Where("timestamp BETWEEN ? AND ?", filter.StartDate, filter.EndDate)
		}

		if cursor != nil {
			query = query.Where("(timestamp, sequence) <= (?, ?)", cursor.Timestamp, cursor.Sequence)
		}

		query = query.Order("timestamp DESC", "sequence DESC").
			Limit(limit + 1) // Get one extra to determine if there are more results

		err := query.Scan(ctx)
		if err != nil {
			return fmt.Errorf("failed to get audit entries: %w", err)
		}

		if len(entries) > limit {
			extra := entries[limit]
			nextCursor = &types.AuditCursor{
				Timestamp: extra.Timestamp,
				Sequence:  extra.Sequence,
			}
			entries = entries[:limit]
		}

		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return entries, nextCursor, nil
}
