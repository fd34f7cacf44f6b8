package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// PubSub Redis 发布/订阅客户端
type PubSub struct {
	client *redis.Client
}

// NewPubSub 创建 PubSub 实例并检查连接
func NewPubSub(ctx context.Context, addr, password string, db int) (*PubSub, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &PubSub{
		client: client,
	}, nil
}

// NewPubSubFromClient 基于已有客户端创建（测试用）
func NewPubSubFromClient(client *redis.Client) *PubSub {
	return &PubSub{client: client}
}

// PublishJSON 序列化后发布到频道，返回收到消息的订阅者数量
func (p *PubSub) PublishJSON(ctx context.Context, channel string, v interface{}) (int64, error) {
	msgJSON, err := json.Marshal(v)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal message: %w", err)
	}

	n, err := p.client.Publish(ctx, channel, msgJSON).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to publish to %s: %w", channel, err)
	}
	return n, nil
}

// Subscribe 订阅频道
func (p *PubSub) Subscribe(ctx context.Context, channel string) *redis.PubSub {
	return p.client.Subscribe(ctx, channel)
}

// Close 关闭 Redis 连接
func (p *PubSub) Close() error {
	return p.client.Close()
}
