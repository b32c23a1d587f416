package service_test

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/pobredward/inschoolz-moderation/internal/database/types"
	"github.com/pobredward/inschoolz-moderation/internal/database/types/enum"
	"github.com/pobredward/inschoolz-moderation/internal/notify"
)

// memContentStore is an in-memory ContentStore for service tests.
type memContentStore struct {
	mu      sync.Mutex
	items   map[string]*types.ContentItem
	saveErr error
}

func newMemContentStore(items ...*types.ContentItem) *memContentStore {
	s := &memContentStore{items: make(map[string]*types.ContentItem)}
	for _, item := range items {
		s.items[contentKey(item.ID, item.ContentType)] = item
	}

	return s
}

func contentKey(id string, contentType enum.ContentType) string {
	return fmt.Sprintf("%s/%d", id, contentType)
}

func copyContent(item *types.ContentItem) *types.ContentItem {
	clone := *item
	clone.Reports = append([]*types.Report(nil), item.Reports...)

	return &clone
}

func (s *memContentStore) GetContent(
	_ context.Context, id string, contentType enum.ContentType,
) (*types.ContentItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[contentKey(id, contentType)]
	if !ok {
		return nil, types.ErrContentNotFound
	}

	return copyContent(item), nil
}

func (s *memContentStore) SaveContent(_ context.Context, item *types.ContentItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.saveErr != nil {
		return s.saveErr
	}

	key := contentKey(item.ID, item.ContentType)

	if current, ok := s.items[key]; ok && current.Version != item.Version {
		return types.ErrStaleRecord
	}

	stored := copyContent(item)
	stored.Version++
	s.items[key] = stored
	item.Version = stored.Version

	return nil
}

func (s *memContentStore) ListPendingReports(context.Context) ([]*types.ContentItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var pending []*types.ContentItem

	for _, item := range s.items {
		if item.ReportCount > 0 && item.IsReportPending {
			pending = append(pending, copyContent(item))
		}
	}

	// Most recently reported first, id descending as tie-breaker
	sort.Slice(pending, func(i, j int) bool {
		a, b := pending[i], pending[j]

		switch {
		case a.LastReportedAt == nil && b.LastReportedAt == nil:
			return a.ID > b.ID
		case a.LastReportedAt == nil:
			return false
		case b.LastReportedAt == nil:
			return true
		case !a.LastReportedAt.Equal(*b.LastReportedAt):
			return a.LastReportedAt.After(*b.LastReportedAt)
		default:
			return a.ID > b.ID
		}
	})

	return pending, nil
}

func (s *memContentStore) ListCompletedReports(
	_ context.Context, cursor *types.ReportCursor, limit int,
) ([]*types.ContentItem, *types.ReportCursor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var completed []*types.ContentItem

	for _, item := range s.items {
		if item.ReportCount > 0 && !item.IsReportPending {
			completed = append(completed, copyContent(item))
		}
	}

	sort.Slice(completed, func(i, j int) bool {
		a, b := completed[i], completed[j]

		switch {
		case a.LastReportedAt == nil && b.LastReportedAt == nil:
			return a.ID > b.ID
		case a.LastReportedAt == nil:
			return false
		case b.LastReportedAt == nil:
			return true
		case !a.LastReportedAt.Equal(*b.LastReportedAt):
			return a.LastReportedAt.After(*b.LastReportedAt)
		default:
			return a.ID > b.ID
		}
	})

	if cursor != nil {
		filtered := completed[:0]

		for _, item := range completed {
			if !reportCursorIncludes(cursor, item) {
				continue
			}

			filtered = append(filtered, item)
		}

		completed = filtered
	}

	var nextCursor *types.ReportCursor

	if len(completed) > limit {
		next := completed[limit]
		nextCursor = &types.ReportCursor{ID: next.ID}

		if next.LastReportedAt != nil {
			nextCursor.LastReportedAt = *next.LastReportedAt
		}

		completed = completed[:limit]
	}

	return completed, nextCursor, nil
}

// reportCursorIncludes mirrors the keyset predicate: a zero cursor
// timestamp addresses the untimestamped tail, otherwise rows at or before
// the cursor plus the whole tail.
func reportCursorIncludes(cursor *types.ReportCursor, item *types.ContentItem) bool {
	if cursor.LastReportedAt.IsZero() {
		return item.LastReportedAt == nil && item.ID <= cursor.ID
	}

	if item.LastReportedAt == nil {
		return true
	}

	if item.LastReportedAt.After(cursor.LastReportedAt) {
		return false
	}

	if item.LastReportedAt.Equal(cursor.LastReportedAt) && item.ID > cursor.ID {
		return false
	}

	return true
}

// memAccountStore is an in-memory AccountStore for service tests.
type memAccountStore struct {
	mu         sync.Mutex
	accounts   map[string]*types.UserAccount
	saveErr    error
	restoreErr map[string]error
}

func newMemAccountStore(accounts ...*types.UserAccount) *memAccountStore {
	s := &memAccountStore{
		accounts:   make(map[string]*types.UserAccount),
		restoreErr: make(map[string]error),
	}
	for _, account := range accounts {
		s.accounts[account.ID] = account
	}

	return s
}

func copyAccount(account *types.UserAccount) *types.UserAccount {
	clone := *account
	clone.Warnings = append([]*types.Warning(nil), account.Warnings...)

	return &clone
}

func (s *memAccountStore) GetAccount(_ context.Context, id string) (*types.UserAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[id]
	if !ok {
		return nil, types.ErrAccountNotFound
	}

	return copyAccount(account), nil
}

func (s *memAccountStore) SaveAccount(_ context.Context, account *types.UserAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.saveErr != nil {
		return s.saveErr
	}

	if current, ok := s.accounts[account.ID]; ok && current.Version != account.Version {
		return types.ErrStaleRecord
	}

	stored := copyAccount(account)
	stored.Version++
	s.accounts[account.ID] = stored
	account.Version = stored.Version

	return nil
}

func (s *memAccountStore) GetSuspendedAccounts(
	_ context.Context, afterID string, limit int,
) ([]*types.UserAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var suspended []*types.UserAccount

	for _, account := range s.accounts {
		if account.Status == enum.AccountStatusSuspended && account.ID > afterID {
			suspended = append(suspended, copyAccount(account))
		}
	}

	sort.Slice(suspended, func(i, j int) bool { return suspended[i].ID < suspended[j].ID })

	if len(suspended) > limit {
		suspended = suspended[:limit]
	}

	return suspended, nil
}

func (s *memAccountStore) RestoreAccount(_ context.Context, id string, version int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.restoreErr[id]; err != nil {
		return false, err
	}

	account, ok := s.accounts[id]
	if !ok || account.Status != enum.AccountStatusSuspended || account.Version != version {
		return false, nil
	}

	account.Status = enum.AccountStatusActive
	account.SuspensionReason = ""
	account.SuspendedAt = nil
	account.SuspendedUntil = nil
	account.Version++

	return true, nil
}

// memAuditLog records audit entries in memory.
type memAuditLog struct {
	mu      sync.Mutex
	entries []*types.AuditLogEntry
}

func (l *memAuditLog) Log(_ context.Context, entry *types.AuditLogEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry.Sequence = int64(len(l.entries) + 1)
	l.entries = append(l.entries, entry)
}

func (l *memAuditLog) GetLogs(
	_ context.Context, filter types.AuditFilter, cursor *types.AuditCursor, limit int,
) ([]*types.AuditLogEntry, *types.AuditCursor, error) {
	var matched []*types.AuditLogEntry

	for _, entry := range l.all() {
		if filter.ActorID != "" && entry.ActorID != filter.ActorID {
			continue
		}

		if filter.TargetUserID != "" && entry.TargetUserID != filter.TargetUserID {
			continue
		}

		if filter.Action != nil && entry.Action != *filter.Action {
			continue
		}

		if !filter.StartDate.IsZero() && !filter.EndDate.IsZero() &&
			(entry.Timestamp.Before(filter.StartDate) || entry.Timestamp.After(filter.EndDate)) {
			continue
		}

		if cursor != nil {
			if entry.Timestamp.After(cursor.Timestamp) {
				continue
			}

			if entry.Timestamp.Equal(cursor.Timestamp) && entry.Sequence > cursor.Sequence {
				continue
			}
		}

		matched = append(matched, entry)
	}

	// Newest first, sequence descending as tie-breaker
	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !a.Timestamp.Equal(b.Timestamp) {
			return a.Timestamp.After(b.Timestamp)
		}

		return a.Sequence > b.Sequence
	})

	var nextCursor *types.AuditCursor

	if len(matched) > limit {
		next := matched[limit]
		nextCursor = &types.AuditCursor{Timestamp: next.Timestamp, Sequence: next.Sequence}
		matched = matched[:limit]
	}

	return matched, nextCursor, nil
}

func (l *memAuditLog) all() []*types.AuditLogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]*types.AuditLogEntry(nil), l.entries...)
}

func (l *memAuditLog) byAction(action enum.AuditAction) []*types.AuditLogEntry {
	var matched []*types.AuditLogEntry

	for _, entry := range l.all() {
		if entry.Action == action {
			matched = append(matched, entry)
		}
	}

	return matched
}

// chanNotifier delivers notices to a channel so tests can observe the
// asynchronous dispatch.
type chanNotifier struct {
	notices chan *notify.SuspensionNotice
	err     error
}

func newChanNotifier() *chanNotifier {
	return &chanNotifier{notices: make(chan *notify.SuspensionNotice, 8)}
}

func (n *chanNotifier) NotifySuspension(_ context.Context, notice *notify.SuspensionNotice) error {
	if n.err != nil {
		return n.err
	}

	n.notices <- notice

	return nil
}
