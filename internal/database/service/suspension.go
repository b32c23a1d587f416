package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/pobredward/inschoolz-moderation/internal/database/types"
	"github.com/pobredward/inschoolz-moderation/internal/database/types/enum"
	"github.com/pobredward/inschoolz-moderation/internal/notify"
	"github.com/pobredward/inschoolz-moderation/pkg/utils"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

// AutoRestoreReason is recorded on audit entries written by the expiry
// sweep.
const AutoRestoreReason = "expired-suspension auto-restore"

// notifyTimeout bounds the fire-and-forget notification dispatch.
const notifyTimeout = 5 * time.Second

var (
	// ErrSettingsRequired indicates a suspension was requested without
	// settings.
	ErrSettingsRequired = errors.New("suspension settings are required")
	// ErrInvalidDuration indicates a temporary suspension without a
	// positive duration.
	ErrInvalidDuration = errors.New("temporary suspension requires a positive duration")
)

// SuspensionService owns account status transitions and the expiry sweep
// that restores accounts whose suspension window has elapsed.
type SuspensionService struct {
	accounts       AccountStore
	audit          AuditLog
	notifier       notify.Notifier
	sweepBatchSize int
	logger         *zap.Logger
}

// NewSuspension creates a new suspension service.
func NewSuspension(
	accounts AccountStore, audit AuditLog, notifier notify.Notifier,
	sweepBatchSize int, logger *zap.Logger,
) *SuspensionService {
	if sweepBatchSize <= 0 {
		sweepBatchSize = 200
	}

	return &SuspensionService{
		accounts:       accounts,
		audit:          audit,
		notifier:       notifier,
		sweepBatchSize: sweepBatchSize,
		logger:         logger.Named("suspension_service"),
	}
}

// SetStatus transitions a user account to the given status. Suspending
// requires settings; activating clears all sanction fields; inactive is a
// plain status write. Every call appends exactly one audit entry with the
// prior and new status. The optional user notification is dispatched
// best-effort and never affects the status change.
func (s *SuspensionService) SetStatus(
	ctx context.Context, userID string, newStatus enum.AccountStatus,
	settings *types.SuspensionSettings, actor types.Actor,
) error {
	account, err := s.accounts.GetAccount(ctx, userID)
	if err != nil {
		return err
	}

	oldStatus := account.Status
	now := time.Now().UTC()

	var reason string

	switch newStatus {
	case enum.AccountStatusSuspended:
		if settings == nil {
			return ErrSettingsRequired
		}

		reason = settings.Reason
		account.Status = enum.AccountStatusSuspended
		account.SuspensionReason = settings.Reason
		account.SuspendedAt = &now

		switch settings.Kind {
		case enum.SuspensionKindTemporary:
			if settings.DurationDays <= 0 {
				return ErrInvalidDuration
			}

			account.SuspendedUntil = utils.Ptr(types.NewInstant(now.AddDate(0, 0, settings.DurationDays)))
		case enum.SuspensionKindPermanent:
			account.SuspendedUntil = nil
		default:
			return fmt.Errorf("%w: unknown suspension kind %d", types.ErrInvalidState, settings.Kind)
		}
	case enum.AccountStatusActive:
		account.Status = enum.AccountStatusActive
		account.SuspensionReason = ""
		account.SuspendedAt = nil
		account.SuspendedUntil = nil
	case enum.AccountStatusInactive:
		account.Status = enum.AccountStatusInactive
	default:
		return fmt.Errorf("%w: unknown account status %d", types.ErrInvalidState, newStatus)
	}

	if err := s.accounts.SaveAccount(ctx, account); err != nil {
		return fmt.Errorf("failed to set account status: %w", err)
	}

	s.audit.Log(ctx, &types.AuditLogEntry{
		ActorID:        actor.ID,
		ActorName:      actor.Name,
		Action:         enum.AuditActionStatusChange,
		TargetUserID:   account.ID,
		TargetUserName: account.Name,
		OldValue:       oldStatus.String(),
		NewValue:       newStatus.String(),
		Reason:         reason,
		Timestamp:      now,
		IPAddress:      actor.IPAddress,
		UserAgent:      actor.UserAgent,
	})

	s.logger.Info("Changed account status",
		zap.String("userID", userID),
		zap.String("oldStatus", oldStatus.String()),
		zap.String("newStatus", newStatus.String()))

	if newStatus == enum.AccountStatusSuspended && settings.NotifyUser {
		s.dispatchSuspensionNotice(account, settings, now)
	}

	return nil
}

// dispatchSuspensionNotice delivers the notice asynchronously; failures
// are logged and dropped.
func (s *SuspensionService) dispatchSuspensionNotice(
	account *types.UserAccount, settings *types.SuspensionSettings, issuedAt time.Time,
) {
	notice := &notify.SuspensionNotice{
		UserID:       account.ID,
		Kind:         settings.Kind.String(),
		Reason:       settings.Reason,
		DurationDays: settings.DurationDays,
		IssuedAt:     issuedAt,
	}
	if account.SuspendedUntil != nil {
		notice.Until = utils.Ptr(account.SuspendedUntil.Time)
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		if err := s.notifier.NotifySuspension(ctx, notice); err != nil {
			s.logger.Warn("Failed to deliver suspension notice",
				zap.String("userID", account.ID),
				zap.Error(err))
		}
	}()
}

// SweepExpired scans all suspended accounts and restores those whose
// suspension window has elapsed at the given instant. Accounts are
// processed in parallel batches; one account's failure is logged,
// counted, and excluded from the success tally without aborting the
// batch. Permanent suspensions are never touched.
func (s *SuspensionService) SweepExpired(ctx context.Context, now time.Time) (*types.SweepSummary, error) {
	summary := &types.SweepSummary{}

	var (
		mu      sync.Mutex
		afterID string
	)

	for {
		batch, err := s.accounts.GetSuspendedAccounts(ctx, afterID, s.sweepBatchSize)
		if err != nil {
			return summary, fmt.Errorf("failed to fetch suspended accounts: %w", err)
		}

		if len(batch) == 0 {
			break
		}

		afterID = batch[len(batch)-1].ID
		summary.TotalChecked += len(batch)

		p := pool.New().WithContext(ctx)
		for _, account := range batch {
			p.Go(func(ctx context.Context) error {
				restored, err := s.restoreIfExpired(ctx, account, now)
				if err != nil {
					// Continue-on-error: one failing account never aborts the sweep.
					s.logger.Error("Failed to process suspended account",
						zap.String("userID", account.ID),
						zap.Error(err))

					mu.Lock()
					summary.Failed++
					mu.Unlock()

					return nil
				}

				if restored {
					mu.Lock()
					summary.Unsuspended++
					summary.RestoredUserIDs = append(summary.RestoredUserIDs, account.ID)
					mu.Unlock()
				}

				return nil
			})
		}

		if err := p.Wait(); err != nil {
			return summary, err
		}

		if len(batch) < s.sweepBatchSize {
			break
		}
	}

	sort.Strings(summary.RestoredUserIDs)

	return summary, nil
}

// CheckAndRestore applies the sweep's restoration logic to one account,
// e.g. from the login hook, so an expired suspension self-heals without
// waiting for the next sweep. Returns whether a restoration occurred;
// an account that is not suspended, or is permanently suspended, is a
// false without error.
func (s *SuspensionService) CheckAndRestore(ctx context.Context, userID string, now time.Time) (bool, error) {
	account, err := s.accounts.GetAccount(ctx, userID)
	if err != nil {
		return false, err
	}

	if account.Status != enum.AccountStatusSuspended {
		return false, nil
	}

	return s.restoreIfExpired(ctx, account, now)
}

// restoreIfExpired restores one suspended account if its window has
// elapsed, writing the system audit entry. A lost race with a concurrent
// restore is a clean no-op.
func (s *SuspensionService) restoreIfExpired(
	ctx context.Context, account *types.UserAccount, now time.Time,
) (bool, error) {
	if account.SuspendedUntil == nil {
		// Permanent suspension.
		return false, nil
	}

	if !account.SuspensionExpired(now) {
		return false, nil
	}

	restored, err := s.accounts.RestoreAccount(ctx, account.ID, account.Version)
	if err != nil {
		return false, err
	}

	if !restored {
		return false, nil
	}

	s.audit.Log(ctx, &types.AuditLogEntry{
		ActorID:        types.SystemActor.ID,
		ActorName:      types.SystemActor.Name,
		Action:         enum.AuditActionStatusChange,
		TargetUserID:   account.ID,
		TargetUserName: account.Name,
		OldValue:       enum.AccountStatusSuspended.String(),
		NewValue:       enum.AccountStatusActive.String(),
		Reason:         AutoRestoreReason,
		Timestamp:      time.Now().UTC(),
	})

	s.logger.Info("Restored expired suspension",
		zap.String("userID", account.ID),
		zap.Timep("suspendedUntil", &account.SuspendedUntil.Time))

	return true, nil
}
