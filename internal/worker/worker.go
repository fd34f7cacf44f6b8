package worker

import (
	"context"
	"sync"

	"expmon/internal/framework"
	"expmon/pkg/lmstfyx"
	"expmon/pkg/logger"
)

// Worker 接口
type Worker interface {
	Start()
	Shutdown()
	GetName() string
	Stats() framework.Stats
}

// WorkerInstance 队列 Worker：Subscriber 拉取消息，Processor 执行
type WorkerInstance struct {
	ctx        context.Context
	name       string
	subscriber *framework.Subscriber
	processor  *framework.Processor
	inputChan  chan framework.Task
	shutdownCh chan struct{}
	mu         sync.Mutex // 保证 Start 与 Shutdown 互斥
	closed     bool
	logger     logger.Logger
}

// NewWorkerInstance 创建 Worker 实例
func NewWorkerInstance(
	ctx context.Context,
	name string,
	subscriberCfg *framework.SubscriberConfig,
	processorCfg *framework.ProcessorConfig,
	source framework.MessageSource,
	proc lmstfyx.Proc, // 注入 GetProcess
	log logger.Logger,
) Worker {
	inputChan := make(chan framework.Task, processorCfg.BufferSize)

	if processorCfg.Name == "" {
		processorCfg.Name = "Processor-" + name
	}
	build := framework.NewMessageTaskBuilder(proc, source, log)

	return &WorkerInstance{
		ctx:        ctx,
		name:       name,
		subscriber: framework.NewSubscriber(subscriberCfg, source, build, log),
		processor:  framework.NewProcessor(processorCfg, log),
		inputChan:  inputChan,
		shutdownCh: make(chan struct{}),
		logger:     log,
	}
}

// Start 启动 Worker，阻塞直到 Shutdown 完成
func (w *WorkerInstance) Start() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}

	// 1. 启动 Processor
	w.processor.Start(w.ctx, w.inputChan)

	// 2. 启动 Subscriber
	w.subscriber.Start(w.ctx, w.inputChan)
	w.mu.Unlock()
	w.logger.Infof(w.ctx, "[Worker] %s started", w.name)

	// 3. 阻塞，等待关闭指令
	<-w.shutdownCh
}

// Shutdown 优雅退出
func (w *WorkerInstance) Shutdown() {
	w.logger.Infof(w.ctx, "[Worker] %s began to close", w.name)

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	w.closed = true

	// 1. 停止拉取新消息
	w.subscriber.Stop()

	// 2. 等待 Subscriber 完全退出
	w.subscriber.Wait()

	// 3. 通知 Processor 进入 Drain 模式
	w.processor.SignalShutdown()

	// 4. 等待 Processor 处理完剩余消息
	w.processor.Wait()

	close(w.shutdownCh)
	w.logger.Infof(w.ctx, "[Worker] %s shutdown complete", w.name)
}

// GetName 获取 Worker 名称
func (w *WorkerInstance) GetName() string {
	return w.name
}

// Stats 处理统计
func (w *WorkerInstance) Stats() framework.Stats {
	return w.processor.Stats()
}
