package framework

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// DailyTrigger 每天固定时刻触发
type DailyTrigger struct {
	Hour     int
	Minute   int
	Location *time.Location
}

// NewDailyTrigger 创建每日触发器，loc 为空时使用本地时区
func NewDailyTrigger(hour, minute int, loc *time.Location) (*DailyTrigger, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return nil, fmt.Errorf("invalid daily trigger time %02d:%02d", hour, minute)
	}
	if loc == nil {
		loc = time.Local
	}
	return &DailyTrigger{Hour: hour, Minute: minute, Location: loc}, nil
}

// Next 下一次触发时间
func (t *DailyTrigger) Next(after time.Time) time.Time {
	local := after.In(t.Location)
	y, m, d := local.Date()
	next := time.Date(y, m, d, t.Hour, t.Minute, 0, 0, t.Location)
	if !next.After(local) {
		next = time.Date(y, m, d+1, t.Hour, t.Minute, 0, 0, t.Location)
	}
	return next
}

func (t *DailyTrigger) String() string {
	return fmt.Sprintf("daily at %02d:%02d %s", t.Hour, t.Minute, t.Location)
}

// IntervalTrigger 固定间隔触发
type IntervalTrigger struct {
	Every time.Duration
}

// NewIntervalTrigger 创建间隔触发器
func NewIntervalTrigger(every time.Duration) (*IntervalTrigger, error) {
	if every <= 0 {
		return nil, fmt.Errorf("invalid trigger interval %v", every)
	}
	return &IntervalTrigger{Every: every}, nil
}

// Next 下一次触发时间
func (t *IntervalTrigger) Next(after time.Time) time.Time {
	return after.Add(t.Every)
}

func (t *IntervalTrigger) String() string {
	return fmt.Sprintf("every %v", t.Every)
}

// TriggerRunner 按触发器把任务投递到 Processor 的输入通道
// 每个任务一个独立协程，互不阻塞
type TriggerRunner struct {
	trigger    Trigger
	task       Task
	logger     Logger
	now        func() time.Time
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
}

// NewTriggerRunner 创建触发循环
func NewTriggerRunner(trigger Trigger, task Task, log Logger) *TriggerRunner {
	return &TriggerRunner{
		trigger: trigger,
		task:    task,
		logger:  log,
		now:     time.Now,
	}
}

// Start 启动触发循环
func (r *TriggerRunner) Start(parentCtx context.Context, out chan<- Task) {
	ctx, cancel := context.WithCancel(parentCtx)
	r.cancelFunc = cancel

	r.wg.Add(1)
	go r.loop(ctx, out)
}

// Stop 停止触发
func (r *TriggerRunner) Stop() {
	if r.cancelFunc != nil {
		r.cancelFunc()
	}
}

// Wait 等待触发协程退出
func (r *TriggerRunner) Wait() {
	r.wg.Wait()
}

func (r *TriggerRunner) loop(ctx context.Context, out chan<- Task) {
	defer r.wg.Done()

	for {
		next := r.trigger.Next(r.now())
		r.logger.Debugf(ctx, "[Trigger] %s next fire at %s (%s)", r.task.Name(), next.Format(time.RFC3339), r.trigger)

		if !sleep(ctx, next.Sub(r.now())) {
			return
		}

		select {
		case out <- r.task:
		case <-ctx.Done():
			return
		}
	}
}
