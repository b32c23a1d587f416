package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/pobredward/inschoolz-moderation/internal/database/service"
	"github.com/pobredward/inschoolz-moderation/internal/database/types"
	"github.com/pobredward/inschoolz-moderation/internal/database/types/enum"
	"github.com/pobredward/inschoolz-moderation/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newAuditService(t *testing.T, audit *memAuditLog) *service.AuditService {
	t.Helper()

	return service.NewAudit(audit, zaptest.NewLogger(t))
}

func TestListLogs(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)

	seedAudit := func() *memAuditLog {
		audit := &memAuditLog{}
		audit.Log(context.Background(), &types.AuditLogEntry{
			ActorID:      "mod-1",
			Action:       enum.AuditActionStatusChange,
			TargetUserID: "user-a",
			Timestamp:    base,
		})
		audit.Log(context.Background(), &types.AuditLogEntry{
			ActorID:      "mod-2",
			Action:       enum.AuditActionContentWarned,
			TargetUserID: "user-a",
			Timestamp:    base.Add(time.Hour),
		})
		audit.Log(context.Background(), &types.AuditLogEntry{
			ActorID:      "mod-1",
			Action:       enum.AuditActionContentRemoved,
			TargetUserID: "user-b",
			Timestamp:    base.Add(2 * time.Hour),
		})

		return audit
	}

	t.Run("returns all entries newest first", func(t *testing.T) {
		t.Parallel()

		svc := newAuditService(t, seedAudit())

		entries, nextCursor, err := svc.ListLogs(context.Background(), types.AuditFilter{}, nil, 0)
		require.NoError(t, err)
		require.Len(t, entries, 3)
		assert.Nil(t, nextCursor)
		assert.Equal(t, enum.AuditActionContentRemoved, entries[0].Action)
		assert.Equal(t, enum.AuditActionStatusChange, entries[2].Action)
	})

	t.Run("filters by actor", func(t *testing.T) {
		t.Parallel()

		svc := newAuditService(t, seedAudit())

		entries, _, err := svc.ListLogs(context.Background(), types.AuditFilter{ActorID: "mod-2"}, nil, 10)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, enum.AuditActionContentWarned, entries[0].Action)
	})

	t.Run("filters by target user", func(t *testing.T) {
		t.Parallel()

		svc := newAuditService(t, seedAudit())

		entries, _, err := svc.ListLogs(
			context.Background(), types.AuditFilter{TargetUserID: "user-a"}, nil, 10,
		)
		require.NoError(t, err)
		require.Len(t, entries, 2)
	})

	t.Run("filters by action", func(t *testing.T) {
		t.Parallel()

		svc := newAuditService(t, seedAudit())

		filter := types.AuditFilter{Action: utils.Ptr(enum.AuditActionStatusChange)}

		entries, _, err := svc.ListLogs(context.Background(), filter, nil, 10)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "mod-1", entries[0].ActorID)
	})

	t.Run("filters by date range", func(t *testing.T) {
		t.Parallel()

		svc := newAuditService(t, seedAudit())

		filter := types.AuditFilter{
			StartDate: base.Add(30 * time.Minute),
			EndDate:   base.Add(90 * time.Minute),
		}

		entries, _, err := svc.ListLogs(context.Background(), filter, nil, 10)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, enum.AuditActionContentWarned, entries[0].Action)
	})

	t.Run("pages with a keyset cursor", func(t *testing.T) {
		t.Parallel()

		svc := newAuditService(t, seedAudit())

		page1, cursor, err := svc.ListLogs(context.Background(), types.AuditFilter{}, nil, 2)
		require.NoError(t, err)
		require.Len(t, page1, 2)
		require.NotNil(t, cursor)

		page2, cursor, err := svc.ListLogs(context.Background(), types.AuditFilter{}, cursor, 2)
		require.NoError(t, err)
		require.Len(t, page2, 1)
		assert.Nil(t, cursor)

		assert.Equal(t, enum.AuditActionStatusChange, page2[0].Action)
	})
}
