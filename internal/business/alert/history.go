package alert

import (
	"sync"

	"github.com/shopspring/decimal"

	"expmon/internal/entity"
)

// DefaultHistoryCap 告警历史默认容量
const DefaultHistoryCap = 100

// History 有界告警历史，超出容量时淘汰最早的记录
type History struct {
	mu      sync.RWMutex
	records []*entity.AlertRecord
	cap     int
}

// NewHistory 创建告警历史，capacity<=0 时使用默认容量
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultHistoryCap
	}
	return &History{
		records: make([]*entity.AlertRecord, 0, capacity),
		cap:     capacity,
	}
}

// Append 追加记录；追加与淘汰在同一把锁内完成
func (h *History) Append(rec *entity.AlertRecord) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.records = append(h.records, rec)
	if over := len(h.records) - h.cap; over > 0 {
		// 拷贝到新切片，避免底层数组无限增长
		kept := make([]*entity.AlertRecord, h.cap)
		copy(kept, h.records[over:])
		h.records = kept
	}
}

// Recent 最近 limit 条记录，按时间正序
func (h *History) Recent(limit int) []*entity.AlertRecord {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if limit <= 0 {
		return []*entity.AlertRecord{}
	}
	start := len(h.records) - limit
	if start < 0 {
		start = 0
	}
	out := make([]*entity.AlertRecord, len(h.records)-start)
	copy(out, h.records[start:])
	return out
}

// Len 当前保留的记录数
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.records)
}

// Cap 容量
func (h *History) Cap() int {
	return h.cap
}

// Statistics 统计当前保留窗口内的告警数与风险货值
func (h *History) Statistics() entity.AlertStatistics {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := decimal.Zero
	for _, rec := range h.records {
		total = total.Add(rec.TotalValueAtRisk)
	}
	return entity.AlertStatistics{
		TotalAlerts:      len(h.records),
		TotalValueAtRisk: total,
	}
}
