package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"expmon/internal/framework"
	"expmon/pkg/config"
	"expmon/pkg/logger"
)

// 任务名
const (
	JobMorningReport = "morning_health_report"
	JobSevenDayCheck = "seven_day_check"
	JobTomorrowCheck = "tomorrow_check"
	JobMealPlanning  = "evening_meal_planning"
	JobFastCheck     = "fast_interval_check"
)

// Checks 定时任务调用的检查
type Checks interface {
	RunMorningReport(ctx context.Context) error
	RunSevenDayCheck(ctx context.Context) error
	RunTomorrowCheck(ctx context.Context) error
	RunMealPlanning(ctx context.Context) error
	RunFastCheck(ctx context.Context) error
}

// Job 定时任务：触发器 + 任务体
type Job struct {
	Trigger framework.Trigger
	Task    framework.Task
}

// BuildJobs 按配置生成定时任务
func BuildJobs(cfg *config.SchedulerConfig, loc *time.Location, checks Checks, log logger.Logger) ([]Job, error) {
	daily := []struct {
		name string
		hour int
		run  func(ctx context.Context) error
	}{
		{JobMorningReport, cfg.MorningReportHour, checks.RunMorningReport},
		{JobSevenDayCheck, cfg.SevenDayHour, checks.RunSevenDayCheck},
		{JobTomorrowCheck, cfg.TomorrowHour, checks.RunTomorrowCheck},
		{JobMealPlanning, cfg.MealPlanningHour, checks.RunMealPlanning},
	}

	jobs := make([]Job, 0, len(daily)+1)
	for _, d := range daily {
		trigger, err := framework.NewDailyTrigger(d.hour, 0, loc)
		if err != nil {
			return nil, fmt.Errorf("job %s: %w", d.name, err)
		}
		jobs = append(jobs, Job{Trigger: trigger, Task: newJobTask(d.name, d.run, log)})
	}

	if cfg.FastCheckEnabled {
		trigger, err := framework.NewIntervalTrigger(cfg.FastInterval)
		if err != nil {
			return nil, fmt.Errorf("job %s: %w", JobFastCheck, err)
		}
		jobs = append(jobs, Job{Trigger: trigger, Task: newJobTask(JobFastCheck, checks.RunFastCheck, log)})
	}
	return jobs, nil
}

// jobTask 为每次触发注入 trace id 和任务名，并记录起止日志
type jobTask struct {
	name   string
	run    func(ctx context.Context) error
	logger logger.Logger
}

func newJobTask(name string, run func(ctx context.Context) error, log logger.Logger) *jobTask {
	return &jobTask{name: name, run: run, logger: log}
}

// Name 任务名
func (j *jobTask) Name() string {
	return j.name
}

// Run 执行一次触发
func (j *jobTask) Run(ctx context.Context) error {
	ctx = logger.WithJobName(ctx, j.name)
	ctx = logger.WithTraceID(ctx, uuid.NewString())

	start := time.Now()
	j.logger.Infof(ctx, "[Scheduler] Job %s fired", j.name)

	if err := j.run(ctx); err != nil {
		return fmt.Errorf("job %s: %w", j.name, err)
	}

	j.logger.Infof(ctx, "[Scheduler] Job %s finished in %v", j.name, time.Since(start))
	return nil
}
