package check

import (
	"context"
	"encoding/json"
	"fmt"

	"expmon/internal/domains/common/job"
	"expmon/internal/domains/common/response"
	"expmon/pkg/errorutil"
)

// ActionType 过期检查的路由键
const ActionType = "expiration_check"

// 检查种类
const (
	KindManual        = "manual"
	KindTomorrow      = "tomorrow"
	KindSevenDay      = "seven_day"
	KindMorningReport = "morning_report"
	KindMealPlanning  = "meal_planning"
)

// Runner 过期检查
type Runner interface {
	RunManualCheck(ctx context.Context) (int, error)
	RunTomorrowCheck(ctx context.Context) error
	RunSevenDayCheck(ctx context.Context) error
	RunMorningReport(ctx context.Context) error
	RunMealPlanning(ctx context.Context) error
}

// Payload 业务数据
type Payload struct {
	Check string `json:"check"`
}

// Result 处理结果
type Result struct {
	Check        string `json:"check"`
	AlertsRaised int    `json:"alerts_raised"`
}

// Handler 队列触发的过期检查
type Handler struct {
	runner  Runner
	meta    *job.Meta
	payload *Payload
}

// NewHandler 解析业务数据并创建 Handler
func NewHandler(runner Runner, meta *job.Meta, raw json.RawMessage) (*Handler, error) {
	payload := &Payload{Check: KindManual}
	if len(raw) > 0 && string(raw) != "null" {
		if err := json.Unmarshal(raw, payload); err != nil {
			return nil, errorutil.Validation("invalid expiration_check payload", err)
		}
		if payload.Check == "" {
			payload.Check = KindManual
		}
	}
	return &Handler{runner: runner, meta: meta, payload: payload}, nil
}

// GetProcess 执行检查
func (h *Handler) GetProcess(ctx context.Context) *response.Response {
	resp := &response.Response{}
	result := &Result{Check: h.payload.Check}

	var err error
	switch h.payload.Check {
	case KindManual:
		result.AlertsRaised, err = h.runner.RunManualCheck(ctx)
	case KindTomorrow:
		err = h.runner.RunTomorrowCheck(ctx)
	case KindSevenDay:
		err = h.runner.RunSevenDayCheck(ctx)
	case KindMorningReport:
		err = h.runner.RunMorningReport(ctx)
	case KindMealPlanning:
		err = h.runner.RunMealPlanning(ctx)
	default:
		err = errorutil.Validation(fmt.Sprintf("unknown check %q", h.payload.Check), nil)
	}

	resp.WrapResponse(result, h.meta, err)
	return resp
}
