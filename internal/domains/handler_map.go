package domains

import (
	"context"
	"encoding/json"

	"expmon/internal/domains/common/job"
	"expmon/internal/domains/common/response"
	"expmon/internal/domains/handlers/check"
)

// Handler 业务 Handler 接口
type Handler interface {
	GetProcess(ctx context.Context) *response.Response
}

// HandlerFactory Handler 构造函数类型
type HandlerFactory func(ctx context.Context, meta *job.Meta, payload json.RawMessage) (Handler, error)

// HandlerMap 路由表（ActionType → Handler 构造函数）
type HandlerMap map[string]HandlerFactory

// NewHandlerMap 创建路由表
func NewHandlerMap(checks check.Runner) HandlerMap {
	return HandlerMap{
		check.ActionType: func(ctx context.Context, meta *job.Meta, payload json.RawMessage) (Handler, error) {
			h, err := check.NewHandler(checks, meta, payload)
			if err != nil {
				return nil, err
			}
			return h, nil
		},
	}
}
