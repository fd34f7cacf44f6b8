package framework

import (
	"context"
	"sync"
	"time"

	"expmon/pkg/logger"
)

// TaskBuilder 将队列消息包装为 Task
type TaskBuilder func(msg *Message) Task

// Subscriber 订阅者：从消息队列拉取消息，包装为 Task 转发给 Processor
type Subscriber struct {
	cfg        *SubscriberConfig
	source     MessageSource
	build      TaskBuilder
	logger     Logger
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
}

// NewSubscriber 创建订阅者
func NewSubscriber(cfg *SubscriberConfig, source MessageSource, build TaskBuilder, log Logger) *Subscriber {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	return &Subscriber{
		cfg:    cfg,
		source: source,
		build:  build,
		logger: log,
	}
}

// Start 启动订阅循环
func (s *Subscriber) Start(parentCtx context.Context, inputChan chan<- Task) {
	ctx, cancel := context.WithCancel(parentCtx)
	s.cancelFunc = cancel

	s.logger.Infof(ctx, "[Subscriber] Starting with %d workers for queue: %s",
		s.cfg.Concurrency, s.cfg.QueueName)

	for i := 0; i < s.cfg.Concurrency; i++ {
		s.wg.Add(1)
		go s.loop(ctx, i, inputChan)
	}
}

// Stop 停止订阅（不再拉取新消息）
func (s *Subscriber) Stop() {
	s.logger.Infof(context.Background(), "[Subscriber] Stopping queue: %s", s.cfg.QueueName)
	if s.cancelFunc != nil {
		s.cancelFunc()
	}
}

// Wait 等待所有订阅协程退出
func (s *Subscriber) Wait() {
	s.wg.Wait()
	s.logger.Infof(context.Background(), "[Subscriber] All workers exited for queue: %s", s.cfg.QueueName)
}

// loop 订阅循环（单个 Worker）
func (s *Subscriber) loop(ctx context.Context, workerID int, inputChan chan<- Task) {
	defer s.wg.Done()
	ctx = logger.WithWorkerID(ctx, workerID)
	s.logger.Debugf(ctx, "[Subscriber-%d] Started", workerID)

	for {
		if ctx.Err() != nil {
			s.logger.Infof(ctx, "[Subscriber-%d] Context cancelled, exiting", workerID)
			return
		}

		// 1. 拉取消息（带超时）
		msg, err := s.source.Consume(s.cfg.QueueName, s.cfg.Timeout, s.cfg.TTR)
		if err != nil {
			// 网络抖动不退出，退避后重试
			s.logger.Warnf(ctx, "[Subscriber-%d] Consume error: %v, retrying...", workerID, err)
			if !sleep(ctx, s.cfg.ErrorBackoff) {
				return
			}
			continue
		}

		// 超时未拉到消息
		if msg == nil {
			continue
		}

		// 2. 发送给 Processor
		select {
		case inputChan <- s.build(msg):
			s.logger.Debugf(ctx, "[Subscriber-%d] Message sent: %s", workerID, msg.ID)
		case <-ctx.Done():
			// 未 Ack 的消息在 TTR 到期后由队列重新投递
			s.logger.Warnf(ctx, "[Subscriber-%d] Dropping message due to shutdown: %s", workerID, msg.ID)
			return
		}

		// 3. 速率控制
		if !sleep(ctx, s.cfg.Rate) {
			return
		}
	}
}

// sleep 等待 d 或 ctx 取消；取消时返回 false
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
