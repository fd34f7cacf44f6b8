package framework

import (
	"context"
)

// Message 队列消息（框架内部流转）
type Message struct {
	ID       string // 消息 ID
	Queue    string // 队列名称
	Data     []byte // 原始 Job 数据
	Attempts int    // 已投递次数
}

// Task Processor 执行的最小单元：一次定时触发或一条队列消息
type Task interface {
	Name() string
	Run(ctx context.Context) error
}

// TaskFunc 函数形式的 Task
type TaskFunc struct {
	TaskName string
	Fn       func(ctx context.Context) error
}

// Name 任务名
func (t TaskFunc) Name() string {
	return t.TaskName
}

// Run 执行任务
func (t TaskFunc) Run(ctx context.Context) error {
	return t.Fn(ctx)
}

// Stats Processor 运行统计
type Stats struct {
	Processed int64 `json:"processed"`
	Failed    int64 `json:"failed"`
	Panicked  int64 `json:"panicked"`
}
