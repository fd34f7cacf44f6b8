package scheduler

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/atomic"

	"expmon/internal/domains"
	"expmon/internal/framework"
	"expmon/internal/worker"
	"expmon/pkg/config"
	"expmon/pkg/logger"
)

// Manager 接口
type Manager interface {
	Start() error
	Shutdown()
	// RunNow 立即投递一次指定任务（不等待执行结果）
	RunNow(name string) error
	Stats() framework.Stats
}

// ManagerInstance 定时任务与队列 Worker 的统一管理
type ManagerInstance struct {
	ctx        context.Context
	cfg        *config.Config
	jobs       []Job
	runners    []*framework.TriggerRunner
	processor  *framework.Processor
	taskChan   chan framework.Task
	source     framework.MessageSource
	handlers   domains.HandlerMap
	workers    []worker.Worker
	closing    *atomic.Bool
	shutdownCh chan struct{}
	wg         sync.WaitGroup
	mu         sync.Mutex // 保护 runners / workers 的启动与关闭
	logger     logger.Logger
}

// NewManagerInstance 创建 Manager
// source 为空时不启动队列 Worker
func NewManagerInstance(cfg *config.Config, jobs []Job, source framework.MessageSource, handlers domains.HandlerMap, log logger.Logger) (*ManagerInstance, error) {
	if len(cfg.Workers) > 0 && source == nil {
		return nil, fmt.Errorf("workers configured but no message source provided")
	}

	poolSize := cfg.Scheduler.PoolSize
	processor := framework.NewProcessor(&framework.ProcessorConfig{
		Name:        "Scheduler",
		Concurrency: poolSize,
		BufferSize:  len(jobs),
	}, log)

	return &ManagerInstance{
		ctx:        context.Background(),
		cfg:        cfg,
		jobs:       jobs,
		processor:  processor,
		taskChan:   make(chan framework.Task, len(jobs)+poolSize),
		source:     source,
		handlers:   handlers,
		closing:    atomic.NewBool(false),
		shutdownCh: make(chan struct{}),
		logger:     log,
	}, nil
}

// Start 启动 Manager，阻塞直到 Shutdown 完成
func (m *ManagerInstance) Start() error {
	m.logger.Infof(m.ctx, "[Manager] Starting...")

	m.mu.Lock()
	if m.closing.Load() {
		m.mu.Unlock()
		return nil
	}

	// 1. 启动任务执行池
	m.processor.Start(m.ctx, m.taskChan)

	// 2. 每个任务一个触发循环
	for _, job := range m.jobs {
		runner := framework.NewTriggerRunner(job.Trigger, job.Task, m.logger)
		runner.Start(m.ctx, m.taskChan)
		m.runners = append(m.runners, runner)
		m.logger.Infof(m.ctx, "[Manager] Job scheduled: %s (%s)", job.Task.Name(), job.Trigger)
	}

	// 3. 加载并启动队列 Worker（每个 Worker 在独立 goroutine）
	if err := m.loadWorkers(); err != nil {
		m.mu.Unlock()
		return fmt.Errorf("failed to load workers: %w", err)
	}
	for _, w := range m.workers {
		w := w
		m.wg.Add(1)
		go func() {
			defer m.wg.Done()
			w.Start()
		}()
		m.logger.Infof(m.ctx, "[Manager] Worker started: %s", w.GetName())
	}
	m.mu.Unlock()

	m.logger.Infof(m.ctx, "[Manager] Start success, jobs: %d, workers: %d", len(m.jobs), len(m.workers))

	// 4. 阻塞等待退出信号
	<-m.shutdownCh
	return nil
}

// RunNow 立即投递一次指定任务
func (m *ManagerInstance) RunNow(name string) error {
	if m.closing.Load() {
		return fmt.Errorf("manager is shutting down")
	}
	for _, job := range m.jobs {
		if job.Task.Name() != name {
			continue
		}
		select {
		case m.taskChan <- job.Task:
			return nil
		default:
			return fmt.Errorf("task queue is full, job %s not queued", name)
		}
	}
	return fmt.Errorf("unknown job: %s", name)
}

// Stats 定时任务执行统计
func (m *ManagerInstance) Stats() framework.Stats {
	return m.processor.Stats()
}

// Shutdown 优雅退出
func (m *ManagerInstance) Shutdown() {
	m.logger.Infof(m.ctx, "[Manager] Began to close")

	// 原子操作，保证只执行一次
	if !m.closing.CAS(false, true) {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// 1. 停止所有触发循环
	for _, r := range m.runners {
		r.Stop()
	}
	for _, r := range m.runners {
		r.Wait()
	}

	// 2. 执行池处理完已投递的任务
	m.processor.SignalShutdown()
	m.processor.Wait()

	// 3. 队列 Worker 安全退出
	for _, w := range m.workers {
		m.logger.Infof(m.ctx, "[Manager] Shutting down worker: %s", w.GetName())
		w.Shutdown()
	}
	m.wg.Wait()

	// 4. 关闭信号通道
	close(m.shutdownCh)
	m.logger.Infof(m.ctx, "[Manager] Shutdown complete")
}

// loadWorkers 按配置创建队列 Worker
func (m *ManagerInstance) loadWorkers() error {
	if len(m.cfg.Workers) == 0 {
		return nil
	}

	getProcess := domains.GetProcess(m.logger, m.handlers)
	for _, workerCfg := range m.cfg.Workers {
		subCfg := &framework.SubscriberConfig{
			QueueName:    workerCfg.QueueName,
			Concurrency:  workerCfg.Subscriber.Threads,
			Rate:         workerCfg.Subscriber.Rate,
			Timeout:      workerCfg.Subscriber.Timeout,
			TTR:          workerCfg.Subscriber.TTR,
			ErrorBackoff: workerCfg.Subscriber.ErrorBackoff,
		}
		procCfg := &framework.ProcessorConfig{
			Concurrency: workerCfg.Processor.Threads,
			BufferSize:  workerCfg.Processor.BufferSize,
			Timeout:     workerCfg.Processor.Timeout,
		}

		m.workers = append(m.workers, worker.NewWorkerInstance(
			m.ctx,
			workerCfg.Name,
			subCfg,
			procCfg,
			m.source,
			getProcess,
			m.logger,
		))
	}
	return nil
}
