package domains

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bitleak/lmstfy/client"
	"github.com/google/uuid"

	"expmon/internal/domains/common/job"
	"expmon/internal/domains/common/response"
	"expmon/pkg/lmstfyx"
	"expmon/pkg/logger"
)

// GetProcess 返回核心处理函数（注入到 Processor）
func GetProcess(log logger.Logger, handlers HandlerMap) lmstfyx.Proc {
	return func(ctx context.Context, lmstfyJob *client.Job) *lmstfyx.JobResp {
		startTime := time.Now()

		// 1. 解析 Job
		meta, bizPayload, err := parseJob(lmstfyJob)
		if err != nil {
			log.Errorf(ctx, "[GetProcess] parseJob failed for job %s: %v", lmstfyJob.ID, err)
			return lmstfyx.Bury()
		}

		// 2. 注入 TraceID 到 Context
		ctx = logger.WithTraceID(ctx, meta.RequestID)
		ctx = logger.WithActionType(ctx, meta.ActionType)

		log.Infof(ctx, "[GetProcess] Processing job: action_type=%s, request_id=%s, id=%s",
			meta.ActionType, meta.RequestID, meta.ID)

		// 3. 从 HandlerMap 获取 Handler
		factory, ok := handlers[meta.ActionType]
		if !ok {
			log.Errorf(ctx, "[GetProcess] handler not found for action_type: %s", meta.ActionType)
			return lmstfyx.Bury()
		}

		// 4. 调用 Handler（捕获 panic）
		resp := runHandler(ctx, log, factory, meta, bizPayload)

		// 5. 记录处理时长
		log.Infof(ctx, "[GetProcess] Processing complete: action=%s, duration=%v", resp.Action, time.Since(startTime))
		return resp
	}
}

func runHandler(ctx context.Context, log logger.Logger, factory HandlerFactory, meta *job.Meta, payload json.RawMessage) (resp *lmstfyx.JobResp) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf(ctx, "[GetProcess] handler panic: %v", r)
			resp = lmstfyx.Bury()
		}
	}()

	handler, err := factory(ctx, meta, payload)
	if err != nil {
		log.Errorf(ctx, "[GetProcess] handler creation failed: %v", err)
		return lmstfyx.Bury()
	}

	return doJobReport(ctx, handler.GetProcess(ctx), log)
}

// parseJob 解析 Job
func parseJob(lmstfyJob *client.Job) (*job.Meta, json.RawMessage, error) {
	var standardJob job.Job
	if err := json.Unmarshal(lmstfyJob.Data, &standardJob); err != nil {
		return nil, nil, fmt.Errorf("json unmarshal failed: %w", err)
	}

	if standardJob.Payload == nil || standardJob.Payload.Data == nil {
		return nil, nil, fmt.Errorf("invalid job structure: payload.data is nil")
	}
	data := standardJob.Payload.Data

	meta := &job.Meta{
		RequestID:  data.RequestID,
		ActionType: data.ActionType,
		ID:         data.ID,
		JobID:      lmstfyJob.ID,
	}
	// RequestID 为空则生成一个
	if meta.RequestID == "" {
		meta.RequestID = uuid.New().String()
	}

	return meta, data.Data, nil
}

// doJobReport 根据 Response 判断 ACK/Bury/Release
func doJobReport(ctx context.Context, resp *response.Response, log logger.Logger) *lmstfyx.JobResp {
	data, err := json.Marshal(resp)
	if err != nil {
		log.Errorf(ctx, "[doJobReport] marshal response failed: %v", err)
		return lmstfyx.Bury()
	}

	switch {
	case resp.Processed:
		log.Debugf(ctx, "[doJobReport] Job succeeded: %s", data)
		return lmstfyx.Success(data)
	case resp.Retryable():
		log.Warnf(ctx, "[doJobReport] Job failed, will retry: %s", data)
		return lmstfyx.Release()
	default:
		log.Errorf(ctx, "[doJobReport] Job failed permanently: %s", data)
		return lmstfyx.Bury()
	}
}
