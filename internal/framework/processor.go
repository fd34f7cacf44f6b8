package framework

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"go.uber.org/atomic"

	"expmon/pkg/logger"
)

// Processor 固定大小的协程池：从输入通道取任务执行
// 单个任务的错误和 panic 在任务边界记录后吞掉，不影响其他任务
type Processor struct {
	cfg        *ProcessorConfig
	logger     Logger
	shutdownCh chan struct{} // 退出信号通道
	once       sync.Once
	wg         sync.WaitGroup

	processed *atomic.Int64
	failed    *atomic.Int64
	panicked  *atomic.Int64
}

// NewProcessor 创建处理器
func NewProcessor(cfg *ProcessorConfig, log Logger) *Processor {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	if cfg.Name == "" {
		cfg.Name = "Processor"
	}
	return &Processor{
		cfg:        cfg,
		logger:     log,
		shutdownCh: make(chan struct{}),
		processed:  atomic.NewInt64(0),
		failed:     atomic.NewInt64(0),
		panicked:   atomic.NewInt64(0),
	}
}

// Start 启动处理协程
func (p *Processor) Start(ctx context.Context, inputChan <-chan Task) {
	p.logger.Infof(ctx, "[%s] Starting with %d workers", p.cfg.Name, p.cfg.Concurrency)

	for i := 0; i < p.cfg.Concurrency; i++ {
		p.wg.Add(1)
		go p.loop(ctx, i, inputChan)
	}
}

// SignalShutdown 通知 Processor 准备退出（进入 Drain 模式），可重复调用
func (p *Processor) SignalShutdown() {
	p.once.Do(func() {
		p.logger.Infof(context.Background(), "[%s] Shutdown signal received", p.cfg.Name)
		close(p.shutdownCh)
	})
}

// Wait 等待所有处理协程退出
func (p *Processor) Wait() {
	p.wg.Wait()
	p.logger.Infof(context.Background(), "[%s] All workers exited", p.cfg.Name)
}

// Stats 运行统计
func (p *Processor) Stats() Stats {
	return Stats{
		Processed: p.processed.Load(),
		Failed:    p.failed.Load(),
		Panicked:  p.panicked.Load(),
	}
}

// loop 处理循环（单个 Worker）
func (p *Processor) loop(ctx context.Context, workerID int, inputChan <-chan Task) {
	defer p.wg.Done()
	ctx = logger.WithWorkerID(ctx, workerID)
	p.logger.Debugf(ctx, "[%s-%d] Started", p.cfg.Name, workerID)

	for {
		select {
		// A. 正常处理
		case task, ok := <-inputChan:
			if !ok {
				p.logger.Debugf(ctx, "[%s-%d] Input closed, exiting", p.cfg.Name, workerID)
				return
			}
			p.process(ctx, task, workerID)

		// B. Drain 模式：处理完剩余任务再退出
		case <-p.shutdownCh:
			count := 0
			for {
				select {
				case task, ok := <-inputChan:
					if !ok {
						p.logger.Infof(ctx, "[%s-%d] Drained %d tasks, exiting", p.cfg.Name, workerID, count)
						return
					}
					p.process(ctx, task, workerID)
					count++
				default:
					p.logger.Infof(ctx, "[%s-%d] Drained %d tasks, exiting", p.cfg.Name, workerID, count)
					return
				}
			}
		}
	}
}

// process 执行单个任务
func (p *Processor) process(ctx context.Context, task Task, workerID int) {
	if task == nil {
		return
	}

	startTime := time.Now()

	// 1. 超时控制
	procCtx := ctx
	if p.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		procCtx, cancel = context.WithTimeout(ctx, p.cfg.Timeout)
		defer cancel()
	}

	// 2. 执行任务（捕获 panic）
	err := p.safeRun(procCtx, task)
	p.processed.Inc()

	// 3. 记录结果
	duration := time.Since(startTime)
	if err != nil {
		p.failed.Inc()
		p.logger.Errorf(procCtx, "[%s-%d] Task %s failed after %v: %v", p.cfg.Name, workerID, task.Name(), duration, err)
		return
	}
	p.logger.Debugf(procCtx, "[%s-%d] Task %s done, duration: %v", p.cfg.Name, workerID, task.Name(), duration)
}

func (p *Processor) safeRun(ctx context.Context, task Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			p.panicked.Inc()
			err = fmt.Errorf("panic: %v\n%s", r, debug.Stack())
		}
	}()
	return task.Run(ctx)
}
