package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/rueidis"
	"go.uber.org/zap"
)

// DefaultQueueKey is the Redis list the notification service consumes.
const DefaultQueueKey = "notifications:moderation"

// SuspensionNotice is the payload delivered to the notification service
// when an account is suspended.
type SuspensionNotice struct {
	UserID       string     `json:"userId"`
	Kind         string     `json:"kind"`
	Reason       string     `json:"reason"`
	DurationDays int        `json:"durationDays,omitempty"`
	Until        *time.Time `json:"until,omitempty"`
	IssuedAt     time.Time  `json:"issuedAt"`
}

// Notifier delivers best-effort notices to the external notification
// service. Delivery failures are logged by callers and never fail the
// owning state change.
type Notifier interface {
	NotifySuspension(ctx context.Context, notice *SuspensionNotice) error
}

// NopNotifier discards all notices.
type NopNotifier struct{}

// NotifySuspension implements Notifier.
func (NopNotifier) NotifySuspension(context.Context, *SuspensionNotice) error {
	return nil
}

// RedisNotifier pushes notices onto a Redis list consumed by the
// notification service.
type RedisNotifier struct {
	client   rueidis.Client
	queueKey string
	logger   *zap.Logger
}

// NewRedisNotifier creates a notifier backed by a Redis list.
func NewRedisNotifier(client rueidis.Client, queueKey string, logger *zap.Logger) *RedisNotifier {
	if queueKey == "" {
		queueKey = DefaultQueueKey
	}

	return &RedisNotifier{
		client:   client,
		queueKey: queueKey,
		logger:   logger.Named("notifier"),
	}
}

// NotifySuspension enqueues a suspension notice.
func (n *RedisNotifier) NotifySuspension(ctx context.Context, notice *SuspensionNotice) error {
	payload, err := sonic.Marshal(notice)
	if err != nil {
		return fmt.Errorf("failed to marshal suspension notice: %w", err)
	}

	err = n.client.Do(ctx,
		n.client.B().Lpush().Key(n.queueKey).Element(string(payload)).Build(),
	).Error()
	if err != nil {
		return fmt.Errorf("failed to enqueue suspension notice: %w", err)
	}

	n.logger.Debug("Enqueued suspension notice",
		zap.String("userID", notice.UserID),
		zap.String("kind", notice.Kind))

	return nil
}
