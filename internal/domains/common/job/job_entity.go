package job

import "encoding/json"

// Job 标准 Job 结构
type Job struct {
	Payload *JobPayload `json:"payload"`
}

// JobPayload Job 负载
type JobPayload struct {
	Data *JobPayloadData `json:"data"`
}

// JobPayloadData Job 数据
type JobPayloadData struct {
	// 元信息
	RequestID  string `json:"request_id"`  // 请求 ID（TraceID）
	ActionType string `json:"action_type"` // 动作类型（路由键）
	ID         string `json:"id"`          // 业务 ID

	// 业务数据
	Data json.RawMessage `json:"data,omitempty"`
}

// Meta 元数据
type Meta struct {
	RequestID  string `json:"request_id"`
	ActionType string `json:"action_type"`
	ID         string `json:"id"`
	JobID      string `json:"job_id"` // lmstfy job id
}
