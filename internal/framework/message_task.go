package framework

import (
	"context"
	"fmt"

	"github.com/bitleak/lmstfy/client"

	"expmon/pkg/lmstfyx"
)

// messageTask 队列消息任务：调用业务处理函数，并按结果 Ack
type messageTask struct {
	msg    *Message
	proc   lmstfyx.Proc
	source MessageSource
	logger Logger
}

// NewMessageTaskBuilder 返回将消息交给 proc 处理的 TaskBuilder
func NewMessageTaskBuilder(proc lmstfyx.Proc, source MessageSource, log Logger) TaskBuilder {
	return func(msg *Message) Task {
		return &messageTask{
			msg:    msg,
			proc:   proc,
			source: source,
			logger: log,
		}
	}
}

// Name 任务名
func (t *messageTask) Name() string {
	return fmt.Sprintf("%s/%s", t.msg.Queue, t.msg.ID)
}

// Run 处理消息
func (t *messageTask) Run(ctx context.Context) error {
	job := &client.Job{
		ID:    t.msg.ID,
		Queue: t.msg.Queue,
		Data:  t.msg.Data,
	}

	resp := t.proc(ctx, job)
	if resp == nil {
		return fmt.Errorf("nil response for job %s", t.msg.ID)
	}

	switch resp.Action {
	case lmstfyx.JobRespStatusSuccess:
		return t.source.Ack(t.msg.Queue, t.msg.ID)
	case lmstfyx.JobRespStatusBury:
		// 不可重试：记录后 Ack，避免无限重投
		t.logger.Warnf(ctx, "[MessageTask] Job %s buried, acking to drop it", t.msg.ID)
		return t.source.Ack(t.msg.Queue, t.msg.ID)
	default:
		// Release：不 Ack，TTR 到期后由队列重新投递
		t.logger.Infof(ctx, "[MessageTask] Job %s released for retry", t.msg.ID)
		return nil
	}
}
