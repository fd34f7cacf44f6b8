package response

import (
	"expmon/internal/domains/common/job"
	"expmon/pkg/errorutil"
)

// Response 统一响应结构
type Response struct {
	Error     *errorutil.Error `json:"error,omitempty"`
	Result    interface{}      `json:"result,omitempty"`
	Processed bool             `json:"processed"`
	Meta      *job.Meta        `json:"meta"`
}

// WrapResponse 包装响应
func (r *Response) WrapResponse(result interface{}, meta *job.Meta, err error) {
	r.Processed = err == nil
	r.Meta = meta
	r.Error = errorutil.Wrap(err)
	r.Result = result
}

// Retryable 失败且可重试
func (r *Response) Retryable() bool {
	return r.Error != nil && r.Error.Retryable
}
