package notifications

import (
	"context"
	"fmt"
	"time"

	"artisan_escrow/internal/usecase/interfaces"

	"github.com/redis/go-redis/v9"
)

// RedisNotifier publishes notifications on a pub/sub channel.
type RedisNotifier struct {
	client  *redis.Client
	channel string
	now     func() time.Time
}

var _ interfaces.INotificationSink = (*RedisNotifier)(nil)

func NewRedisNotifier(client *redis.Client, channel string) *RedisNotifier {
	return &RedisNotifier{client: client, channel: channel, now: time.Now}
}

func (n *RedisNotifier) Notify(ctx context.Context, userID, template string, payload map[string]any) error {
	body, err := encode(userID, template, payload, n.now())
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}
	if err := n.client.Publish(ctx, n.channel, body).Err(); err != nil {
		return fmt.Errorf("redis publish %s: %w", template, err)
	}
	return nil
}
