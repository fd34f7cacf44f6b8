package alert

import (
	"context"
	"fmt"

	"expmon/internal/entity"
)

// Notifier 告警下游通知（Redis 广播、lmstfy 投递等）
// 通知失败不影响告警本身
type Notifier interface {
	Name() string
	Notify(ctx context.Context, rec *entity.AlertRecord) error
}

// ChannelPublisher 频道广播
type ChannelPublisher interface {
	PublishJSON(ctx context.Context, channel string, v interface{}) (int64, error)
}

// QueuePublisher 队列投递
type QueuePublisher interface {
	PublishJSON(queue string, v interface{}, ttl uint32) (string, error)
}

// RedisNotifier 将告警记录广播到 Redis 频道
type RedisNotifier struct {
	pub     ChannelPublisher
	channel string
}

// NewRedisNotifier 创建 Redis 通知
func NewRedisNotifier(pub ChannelPublisher, channel string) *RedisNotifier {
	return &RedisNotifier{pub: pub, channel: channel}
}

// Name 通知名
func (n *RedisNotifier) Name() string {
	return "redis:" + n.channel
}

// Notify 发布告警
func (n *RedisNotifier) Notify(ctx context.Context, rec *entity.AlertRecord) error {
	_, err := n.pub.PublishJSON(ctx, n.channel, rec)
	return err
}

// QueueNotifier 将告警投递到 lmstfy 队列，交给下游投递服务
type QueueNotifier struct {
	pub   QueuePublisher
	queue string
	ttl   uint32
}

// NewQueueNotifier 创建队列通知，ttl 为消息存活秒数，0 表示不过期
func NewQueueNotifier(pub QueuePublisher, queue string, ttl uint32) *QueueNotifier {
	return &QueueNotifier{pub: pub, queue: queue, ttl: ttl}
}

// Name 通知名
func (n *QueueNotifier) Name() string {
	return "lmstfy:" + n.queue
}

// Notify 投递告警
func (n *QueueNotifier) Notify(ctx context.Context, rec *entity.AlertRecord) error {
	if _, err := n.pub.PublishJSON(n.queue, rec, n.ttl); err != nil {
		return fmt.Errorf("publish alert %s: %w", rec.ID, err)
	}
	return nil
}
