package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pobredward/inschoolz-moderation/internal/database/types"
	"github.com/pobredward/inschoolz-moderation/internal/database/types/enum"
	"go.uber.org/zap"
)

// SanctionPolicy holds the configurable moderation policy knobs.
type SanctionPolicy struct {
	// AllowWarnRemoved permits warnings against already-removed content,
	// keeping the warning history accurate for items removed first and
	// warned after. When false, WarnUser rejects removed content.
	AllowWarnRemoved bool
}

// SanctionService issues warnings, soft-deletes content, and moves report
// handling between the pending queue and the archive.
type SanctionService struct {
	content  ContentStore
	accounts AccountStore
	audit    AuditLog
	policy   SanctionPolicy
	logger   *zap.Logger
}

// NewSanction creates a new sanction service.
func NewSanction(
	content ContentStore, accounts AccountStore, audit AuditLog,
	policy SanctionPolicy, logger *zap.Logger,
) *SanctionService {
	return &SanctionService{
		content:  content,
		accounts: accounts,
		audit:    audit,
		policy:   policy,
		logger:   logger.Named("sanction_service"),
	}
}

// WarnUser records a warning against a user for a reported content item
// and marks the item as warned. Warnings are idempotent per
// (contentID, contentType, userID): a duplicate call is a successful
// no-op and returns false.
func (s *SanctionService) WarnUser(
	ctx context.Context, userID, contentID string, contentType enum.ContentType,
	reasons []string, customReason string, actor types.Actor,
) (bool, error) {
	item, err := s.content.GetContent(ctx, contentID, contentType)
	if err != nil {
		return false, err
	}

	if item.IsFired && !s.policy.AllowWarnRemoved {
		return false, fmt.Errorf("%w: content is already removed", types.ErrInvalidState)
	}

	account, err := s.accounts.GetAccount(ctx, userID)
	if err != nil {
		return false, err
	}

	if existing := account.FindWarning(contentID, contentType); existing != nil {
		s.logger.Debug("Warning already exists, skipping",
			zap.String("userID", userID),
			zap.String("contentID", contentID),
			zap.String("warningID", existing.ID))

		return false, nil
	}

	// Comments carry their owning post so the warning links back to it.
	postID := item.ID
	if contentType == enum.ContentTypeComment {
		postID = item.ParentPostID
	}

	if !item.IsWarned {
		item.IsWarned = true
		if err := s.content.SaveContent(ctx, item); err != nil {
			return false, fmt.Errorf("failed to mark content as warned: %w", err)
		}
	}

	now := time.Now().UTC()
	account.Warnings = append(account.Warnings, &types.Warning{
		ID:               uuid.New().String(),
		Reasons:          reasons,
		CustomReason:     customReason,
		ContentID:        contentID,
		ContentType:      contentType,
		PostID:           postID,
		ContentTitle:     item.Title,
		ContentCreatedAt: item.CreatedAt,
		CreatedAt:        now,
	})

	if err := s.accounts.SaveAccount(ctx, account); err != nil {
		return false, fmt.Errorf("failed to record warning: %w", err)
	}

	s.audit.Log(ctx, &types.AuditLogEntry{
		ActorID:        actor.ID,
		ActorName:      actor.Name,
		Action:         enum.AuditActionContentWarned,
		TargetUserID:   account.ID,
		TargetUserName: account.Name,
		NewValue:       strings.Join(reasons, ","),
		Reason:         customReason,
		Timestamp:      now,
		IPAddress:      actor.IPAddress,
		UserAgent:      actor.UserAgent,
		Details: map[string]any{
			"contentId":   contentID,
			"contentType": contentType.String(),
		},
	})

	s.logger.Info("Issued warning",
		zap.String("userID", userID),
		zap.String("contentID", contentID),
		zap.String("contentType", contentType.String()))

	return true, nil
}

// RemoveContent soft-deletes a content item. The record is kept for audit
// purposes and never physically purged. Removing an already-removed item
// is a successful no-op.
func (s *SanctionService) RemoveContent(
	ctx context.Context, contentID string, contentType enum.ContentType, actor types.Actor,
) error {
	// Read first so a missing row is distinguished from an already-removed one.
	item, err := s.content.GetContent(ctx, contentID, contentType)
	if err != nil {
		return err
	}

	if item.IsFired {
		return nil
	}

	now := time.Now().UTC()
	item.IsFired = true
	item.DeletedAt = &now

	if err := s.content.SaveContent(ctx, item); err != nil {
		return fmt.Errorf("failed to remove content: %w", err)
	}

	s.audit.Log(ctx, &types.AuditLogEntry{
		ActorID:      actor.ID,
		ActorName:    actor.Name,
		Action:       enum.AuditActionContentRemoved,
		TargetUserID: item.AuthorID,
		Timestamp:    now,
		IPAddress:    actor.IPAddress,
		UserAgent:    actor.UserAgent,
		Details: map[string]any{
			"contentId":   contentID,
			"contentType": contentType.String(),
		},
	})

	s.logger.Info("Removed content",
		zap.String("contentID", contentID),
		zap.String("contentType", contentType.String()))

	return nil
}

// CompleteReport archives a pending report: the item leaves the pending
// queue but stays queryable and reactivatable.
func (s *SanctionService) CompleteReport(
	ctx context.Context, contentID string, contentType enum.ContentType, actor types.Actor,
) (*types.ContentItem, error) {
	item, err := s.content.GetContent(ctx, contentID, contentType)
	if err != nil {
		return nil, err
	}

	if state := item.ReportState(); !state.CanComplete() {
		return nil, fmt.Errorf("%w: cannot complete report in state %s", types.ErrInvalidState, state)
	}

	now := time.Now().UTC()
	item.IsReportPending = false
	item.CompletedAt = &now

	if err := s.content.SaveContent(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to complete report handling: %w", err)
	}

	s.audit.Log(ctx, &types.AuditLogEntry{
		ActorID:      actor.ID,
		ActorName:    actor.Name,
		Action:       enum.AuditActionReportCompleted,
		TargetUserID: item.AuthorID,
		Timestamp:    now,
		IPAddress:    actor.IPAddress,
		UserAgent:    actor.UserAgent,
		Details: map[string]any{
			"contentId":   contentID,
			"contentType": contentType.String(),
		},
	})

	s.logger.Info("Completed report handling",
		zap.String("contentID", contentID),
		zap.String("contentType", contentType.String()))

	return item, nil
}

// ReactivateReport returns an archived report to the pending queue for
// re-review, clearing the archived state.
func (s *SanctionService) ReactivateReport(
	ctx context.Context, contentID string, contentType enum.ContentType, actor types.Actor,
) (*types.ContentItem, error) {
	item, err := s.content.GetContent(ctx, contentID, contentType)
	if err != nil {
		return nil, err
	}

	if state := item.ReportState(); !state.CanReactivate() {
		return nil, fmt.Errorf("%w: cannot reactivate report in state %s", types.ErrInvalidState, state)
	}

	now := time.Now().UTC()
	item.IsReportPending = true
	item.LastReportedAt = &now
	item.CompletedAt = nil

	if err := s.content.SaveContent(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to reactivate report: %w", err)
	}

	s.audit.Log(ctx, &types.AuditLogEntry{
		ActorID:      actor.ID,
		ActorName:    actor.Name,
		Action:       enum.AuditActionReportReactivated,
		TargetUserID: item.AuthorID,
		Timestamp:    now,
		IPAddress:    actor.IPAddress,
		UserAgent:    actor.UserAgent,
		Details: map[string]any{
			"contentId":   contentID,
			"contentType": contentType.String(),
		},
	})

	s.logger.Info("Reactivated report",
		zap.String("contentID", contentID),
		zap.String("contentType", contentType.String()))

	return item, nil
}
