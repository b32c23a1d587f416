package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pobredward/inschoolz-moderation/internal/database/service"
	"github.com/pobredward/inschoolz-moderation/internal/database/types"
	"github.com/pobredward/inschoolz-moderation/internal/database/types/enum"
	"github.com/pobredward/inschoolz-moderation/internal/notify"
	"github.com/pobredward/inschoolz-moderation/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newSuspensionService(
	t *testing.T, accounts *memAccountStore, audit *memAuditLog, notifier notify.Notifier,
) *service.SuspensionService {
	t.Helper()

	if notifier == nil {
		notifier = notify.NopNotifier{}
	}

	return service.NewSuspension(accounts, audit, notifier, 2, zaptest.NewLogger(t))
}

func suspendedUntil(t time.Time) *types.Instant {
	return utils.Ptr(types.NewInstant(t))
}

func TestSetStatus(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("temporary suspension", func(t *testing.T) {
		t.Parallel()

		accounts := newMemAccountStore(&types.UserAccount{ID: "user-1", Name: "kim"})
		audit := &memAuditLog{}
		svc := newSuspensionService(t, accounts, audit, nil)

		err := svc.SetStatus(ctx, "user-1", enum.AccountStatusSuspended, &types.SuspensionSettings{
			Reason:       "repeated spam",
			Kind:         enum.SuspensionKindTemporary,
			DurationDays: 7,
		}, testActor)
		require.NoError(t, err)

		account, err := accounts.GetAccount(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, enum.AccountStatusSuspended, account.Status)
		assert.Equal(t, "repeated spam", account.SuspensionReason)
		require.NotNil(t, account.SuspendedAt)
		require.NotNil(t, account.SuspendedUntil)
		assert.WithinDuration(t,
			account.SuspendedAt.AddDate(0, 0, 7), account.SuspendedUntil.Time, time.Second)
		assert.False(t, account.IsPermanentlySuspended())

		entries := audit.byAction(enum.AuditActionStatusChange)
		require.Len(t, entries, 1)
		assert.Equal(t, enum.AccountStatusActive.String(), entries[0].OldValue)
		assert.Equal(t, enum.AccountStatusSuspended.String(), entries[0].NewValue)
		assert.Equal(t, "repeated spam", entries[0].Reason)
	})

	t.Run("permanent suspension", func(t *testing.T) {
		t.Parallel()

		accounts := newMemAccountStore(&types.UserAccount{ID: "user-1"})
		svc := newSuspensionService(t, accounts, &memAuditLog{}, nil)

		err := svc.SetStatus(ctx, "user-1", enum.AccountStatusSuspended, &types.SuspensionSettings{
			Reason: "ban evasion",
			Kind:   enum.SuspensionKindPermanent,
		}, testActor)
		require.NoError(t, err)

		account, err := accounts.GetAccount(ctx, "user-1")
		require.NoError(t, err)
		assert.Nil(t, account.SuspendedUntil)
		assert.True(t, account.IsPermanentlySuspended())
	})

	t.Run("suspension requires settings", func(t *testing.T) {
		t.Parallel()

		accounts := newMemAccountStore(&types.UserAccount{ID: "user-1"})
		svc := newSuspensionService(t, accounts, &memAuditLog{}, nil)

		err := svc.SetStatus(ctx, "user-1", enum.AccountStatusSuspended, nil, testActor)
		require.ErrorIs(t, err, service.ErrSettingsRequired)
	})

	t.Run("temporary suspension requires positive duration", func(t *testing.T) {
		t.Parallel()

		accounts := newMemAccountStore(&types.UserAccount{ID: "user-1"})
		svc := newSuspensionService(t, accounts, &memAuditLog{}, nil)

		err := svc.SetStatus(ctx, "user-1", enum.AccountStatusSuspended, &types.SuspensionSettings{
			Reason: "spam",
			Kind:   enum.SuspensionKindTemporary,
		}, testActor)
		require.ErrorIs(t, err, service.ErrInvalidDuration)
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		t.Parallel()

		accounts := newMemAccountStore(&types.UserAccount{ID: "user-1"})
		audit := &memAuditLog{}
		svc := newSuspensionService(t, accounts, audit, nil)

		err := svc.SetStatus(ctx, "user-1", enum.AccountStatus(99), nil, testActor)
		require.ErrorIs(t, err, types.ErrInvalidState)

		account, err := accounts.GetAccount(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, enum.AccountStatusActive, account.Status)
		assert.Empty(t, audit.all())
	})

	t.Run("activating clears sanction fields", func(t *testing.T) {
		t.Parallel()

		now := time.Now().UTC()
		accounts := newMemAccountStore(&types.UserAccount{
			ID:               "user-1",
			Status:           enum.AccountStatusSuspended,
			SuspensionReason: "spam",
			SuspendedAt:      &now,
			SuspendedUntil:   suspendedUntil(now.AddDate(0, 0, 3)),
		})
		audit := &memAuditLog{}
		svc := newSuspensionService(t, accounts, audit, nil)

		err := svc.SetStatus(ctx, "user-1", enum.AccountStatusActive, nil, testActor)
		require.NoError(t, err)

		account, err := accounts.GetAccount(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, enum.AccountStatusActive, account.Status)
		assert.Empty(t, account.SuspensionReason)
		assert.Nil(t, account.SuspendedAt)
		assert.Nil(t, account.SuspendedUntil)

		entries := audit.byAction(enum.AuditActionStatusChange)
		require.Len(t, entries, 1)
		assert.Equal(t, enum.AccountStatusSuspended.String(), entries[0].OldValue)
		assert.Equal(t, enum.AccountStatusActive.String(), entries[0].NewValue)
	})

	t.Run("inactive is a plain status write", func(t *testing.T) {
		t.Parallel()

		accounts := newMemAccountStore(&types.UserAccount{ID: "user-1"})
		audit := &memAuditLog{}
		svc := newSuspensionService(t, accounts, audit, nil)

		err := svc.SetStatus(ctx, "user-1", enum.AccountStatusInactive, nil, testActor)
		require.NoError(t, err)

		account, err := accounts.GetAccount(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, enum.AccountStatusInactive, account.Status)
		assert.Len(t, audit.byAction(enum.AuditActionStatusChange), 1)
	})

	t.Run("unknown account", func(t *testing.T) {
		t.Parallel()

		svc := newSuspensionService(t, newMemAccountStore(), &memAuditLog{}, nil)

		err := svc.SetStatus(ctx, "ghost", enum.AccountStatusActive, nil, testActor)
		require.ErrorIs(t, err, types.ErrAccountNotFound)
	})
}

func TestSetStatusNotification(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("delivers notice when requested", func(t *testing.T) {
		t.Parallel()

		accounts := newMemAccountStore(&types.UserAccount{ID: "user-1"})
		notifier := newChanNotifier()
		svc := newSuspensionService(t, accounts, &memAuditLog{}, notifier)

		err := svc.SetStatus(ctx, "user-1", enum.AccountStatusSuspended, &types.SuspensionSettings{
			Reason:       "spam",
			Kind:         enum.SuspensionKindTemporary,
			DurationDays: 3,
			NotifyUser:   true,
		}, testActor)
		require.NoError(t, err)

		select {
		case notice := <-notifier.notices:
			assert.Equal(t, "user-1", notice.UserID)
			assert.Equal(t, 3, notice.DurationDays)
			require.NotNil(t, notice.Until)
		case <-time.After(2 * time.Second):
			t.Fatal("expected a suspension notice")
		}
	})

	t.Run("skips notice when not requested", func(t *testing.T) {
		t.Parallel()

		accounts := newMemAccountStore(&types.UserAccount{ID: "user-1"})
		notifier := newChanNotifier()
		svc := newSuspensionService(t, accounts, &memAuditLog{}, notifier)

		err := svc.SetStatus(ctx, "user-1", enum.AccountStatusSuspended, &types.SuspensionSettings{
			Reason:     "spam",
			Kind:       enum.SuspensionKindPermanent,
			NotifyUser: false,
		}, testActor)
		require.NoError(t, err)

		select {
		case <-notifier.notices:
			t.Fatal("unexpected suspension notice")
		case <-time.After(100 * time.Millisecond):
		}
	})

	t.Run("delivery failure does not fail the status change", func(t *testing.T) {
		t.Parallel()

		accounts := newMemAccountStore(&types.UserAccount{ID: "user-1"})
		notifier := newChanNotifier()
		notifier.err = errors.New("queue unavailable")
		svc := newSuspensionService(t, accounts, &memAuditLog{}, notifier)

		err := svc.SetStatus(ctx, "user-1", enum.AccountStatusSuspended, &types.SuspensionSettings{
			Reason:     "spam",
			Kind:       enum.SuspensionKindPermanent,
			NotifyUser: true,
		}, testActor)
		require.NoError(t, err)

		account, err := accounts.GetAccount(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, enum.AccountStatusSuspended, account.Status)
	})
}

func TestSweepExpired(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("restores only elapsed temporary suspensions", func(t *testing.T) {
		t.Parallel()

		accounts := newMemAccountStore(
			&types.UserAccount{
				ID:             "user-a",
				Status:         enum.AccountStatusSuspended,
				SuspendedUntil: suspendedUntil(now.Add(-time.Hour)),
			},
			&types.UserAccount{
				ID:             "user-b",
				Status:         enum.AccountStatusSuspended,
				SuspendedUntil: suspendedUntil(now.Add(time.Hour)),
			},
			&types.UserAccount{
				ID:     "user-c",
				Status: enum.AccountStatusSuspended,
			},
		)
		audit := &memAuditLog{}
		svc := newSuspensionService(t, accounts, audit, nil)

		summary, err := svc.SweepExpired(ctx, now)
		require.NoError(t, err)

		assert.Equal(t, 3, summary.TotalChecked)
		assert.Equal(t, 1, summary.Unsuspended)
		assert.Equal(t, 0, summary.Failed)
		assert.Equal(t, []string{"user-a"}, summary.RestoredUserIDs)

		restored, err := accounts.GetAccount(ctx, "user-a")
		require.NoError(t, err)
		assert.Equal(t, enum.AccountStatusActive, restored.Status)
		assert.Nil(t, restored.SuspendedUntil)

		stillSuspended, err := accounts.GetAccount(ctx, "user-b")
		require.NoError(t, err)
		assert.Equal(t, enum.AccountStatusSuspended, stillSuspended.Status)

		permanent, err := accounts.GetAccount(ctx, "user-c")
		require.NoError(t, err)
		assert.Equal(t, enum.AccountStatusSuspended, permanent.Status)

		entries := audit.byAction(enum.AuditActionStatusChange)
		require.Len(t, entries, 1)
		assert.Equal(t, types.SystemActor.ID, entries[0].ActorID)
		assert.Equal(t, "user-a", entries[0].TargetUserID)
		assert.Equal(t, service.AutoRestoreReason, entries[0].Reason)
	})

	t.Run("expiry boundary", func(t *testing.T) {
		t.Parallel()

		deadline := now.Add(24 * time.Hour)
		accounts := newMemAccountStore(
			&types.UserAccount{
				ID:             "user-before",
				Status:         enum.AccountStatusSuspended,
				SuspendedUntil: suspendedUntil(deadline.Add(time.Second)),
			},
			&types.UserAccount{
				ID:             "user-exact",
				Status:         enum.AccountStatusSuspended,
				SuspendedUntil: suspendedUntil(deadline),
			},
		)
		svc := newSuspensionService(t, accounts, &memAuditLog{}, nil)

		summary, err := svc.SweepExpired(ctx, deadline)
		require.NoError(t, err)

		assert.Equal(t, 1, summary.Unsuspended)
		assert.Equal(t, []string{"user-exact"}, summary.RestoredUserIDs)
	})

	t.Run("one failure does not abort the batch", func(t *testing.T) {
		t.Parallel()

		accounts := newMemAccountStore(
			&types.UserAccount{
				ID:             "user-a",
				Status:         enum.AccountStatusSuspended,
				SuspendedUntil: suspendedUntil(now.Add(-time.Hour)),
			},
			&types.UserAccount{
				ID:             "user-b",
				Status:         enum.AccountStatusSuspended,
				SuspendedUntil: suspendedUntil(now.Add(-time.Hour)),
			},
			&types.UserAccount{
				ID:             "user-c",
				Status:         enum.AccountStatusSuspended,
				SuspendedUntil: suspendedUntil(now.Add(-time.Hour)),
			},
		)
		accounts.restoreErr["user-b"] = errors.New("connection reset")

		svc := newSuspensionService(t, accounts, &memAuditLog{}, nil)

		summary, err := svc.SweepExpired(ctx, now)
		require.NoError(t, err)

		assert.Equal(t, 3, summary.TotalChecked)
		assert.Equal(t, 2, summary.Unsuspended)
		assert.Equal(t, 1, summary.Failed)
		assert.Equal(t, []string{"user-a", "user-c"}, summary.RestoredUserIDs)
	})

	t.Run("walks multiple batches", func(t *testing.T) {
		t.Parallel()

		// Batch size is 2; five accounts force three fetches.
		all := make([]*types.UserAccount, 0, 5)
		for _, id := range []string{"u1", "u2", "u3", "u4", "u5"} {
			all = append(all, &types.UserAccount{
				ID:             id,
				Status:         enum.AccountStatusSuspended,
				SuspendedUntil: suspendedUntil(now.Add(-time.Minute)),
			})
		}

		accounts := newMemAccountStore(all...)
		svc := newSuspensionService(t, accounts, &memAuditLog{}, nil)

		summary, err := svc.SweepExpired(ctx, now)
		require.NoError(t, err)

		assert.Equal(t, 5, summary.TotalChecked)
		assert.Equal(t, 5, summary.Unsuspended)
		assert.Equal(t, []string{"u1", "u2", "u3", "u4", "u5"}, summary.RestoredUserIDs)
	})

	t.Run("empty sweep", func(t *testing.T) {
		t.Parallel()

		svc := newSuspensionService(t, newMemAccountStore(), &memAuditLog{}, nil)

		summary, err := svc.SweepExpired(ctx, now)
		require.NoError(t, err)

		assert.Zero(t, summary.TotalChecked)
		assert.Zero(t, summary.Unsuspended)
		assert.Empty(t, summary.RestoredUserIDs)
	})
}

func TestCheckAndRestore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("restores an expired suspension", func(t *testing.T) {
		t.Parallel()

		accounts := newMemAccountStore(&types.UserAccount{
			ID:             "user-1",
			Status:         enum.AccountStatusSuspended,
			SuspendedUntil: suspendedUntil(now.Add(-time.Minute)),
		})
		audit := &memAuditLog{}
		svc := newSuspensionService(t, accounts, audit, nil)

		restored, err := svc.CheckAndRestore(ctx, "user-1", now)
		require.NoError(t, err)
		assert.True(t, restored)

		account, err := accounts.GetAccount(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, enum.AccountStatusActive, account.Status)
		assert.Len(t, audit.byAction(enum.AuditActionStatusChange), 1)
	})

	t.Run("leaves an unexpired suspension", func(t *testing.T) {
		t.Parallel()

		accounts := newMemAccountStore(&types.UserAccount{
			ID:             "user-1",
			Status:         enum.AccountStatusSuspended,
			SuspendedUntil: suspendedUntil(now.Add(time.Hour)),
		})
		svc := newSuspensionService(t, accounts, &memAuditLog{}, nil)

		restored, err := svc.CheckAndRestore(ctx, "user-1", now)
		require.NoError(t, err)
		assert.False(t, restored)
	})

	t.Run("leaves a permanent suspension", func(t *testing.T) {
		t.Parallel()

		accounts := newMemAccountStore(&types.UserAccount{
			ID:     "user-1",
			Status: enum.AccountStatusSuspended,
		})
		svc := newSuspensionService(t, accounts, &memAuditLog{}, nil)

		restored, err := svc.CheckAndRestore(ctx, "user-1", now)
		require.NoError(t, err)
		assert.False(t, restored)
	})

	t.Run("active account is a no-op", func(t *testing.T) {
		t.Parallel()

		accounts := newMemAccountStore(&types.UserAccount{ID: "user-1"})
		svc := newSuspensionService(t, accounts, &memAuditLog{}, nil)

		restored, err := svc.CheckAndRestore(ctx, "user-1", now)
		require.NoError(t, err)
		assert.False(t, restored)
	})
}
