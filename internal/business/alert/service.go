package alert

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"expmon/internal/business/inventory"
	"expmon/internal/entity"
	"expmon/pkg/logger"
)

// RecipeSuggester 批量菜谱推荐
type RecipeSuggester interface {
	SuggestForMany(productNames []string) []entity.RecipeSuggestion
}

// Service 告警聚合服务
type Service struct {
	history   *History
	recipes   RecipeSuggester
	clock     inventory.Clock
	notifiers []Notifier
	logger    logger.Logger
}

// NewService 创建告警聚合服务
func NewService(history *History, recipes RecipeSuggester, clock inventory.Clock, log logger.Logger, notifiers ...Notifier) *Service {
	return &Service{
		history:   history,
		recipes:   recipes,
		clock:     clock,
		notifiers: notifiers,
		logger:    log,
	}
}

// Raise 对一组商品生成告警；商品为空时返回 nil 且不产生任何副作用
func (s *Service) Raise(ctx context.Context, products []*entity.Product, alertType entity.AlertType) (*entity.AlertRecord, error) {
	if len(products) == 0 {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ctx = logger.WithAlertType(ctx, string(alertType))

	now := s.clock.Now()
	today := entity.DateOf(now)

	// 1. 商品快照与风险货值
	snapshots := make([]entity.ProductSnapshot, 0, len(products))
	names := make([]string, 0, len(products))
	seen := make(map[string]struct{}, len(products))
	total := decimal.Zero
	for _, p := range products {
		snapshots = append(snapshots, entity.NewProductSnapshot(p, today))
		total = total.Add(p.TotalValue())
		if _, ok := seen[p.Name]; !ok {
			seen[p.Name] = struct{}{}
			names = append(names, p.Name)
		}
	}

	// 2. 组装告警记录
	rec := &entity.AlertRecord{
		ID:               uuid.NewString(),
		Type:             alertType,
		CreatedAt:        now,
		Products:         snapshots,
		Recipes:          s.recipes.SuggestForMany(names),
		TotalValueAtRisk: total,
		Message:          Summary(alertType, len(products), total),
	}

	// 3. 写入历史
	s.history.Append(rec)

	// 4. 告警明细日志
	logNarrative(ctx, s.logger, rec)

	// 5. 通知下游，失败只记录
	s.notify(ctx, rec)

	return rec, nil
}

func (s *Service) notify(ctx context.Context, rec *entity.AlertRecord) {
	for _, n := range s.notifiers {
		if err := n.Notify(ctx, rec); err != nil {
			s.logger.Warnf(ctx, "[AlertService] Notifier %s failed for alert %s: %v", n.Name(), rec.ID, err)
		}
	}
}

// History 最近 limit 条告警，按时间正序
func (s *Service) History(limit int) []*entity.AlertRecord {
	return s.history.Recent(limit)
}

// Statistics 历史窗口内的告警统计
func (s *Service) Statistics() entity.AlertStatistics {
	return s.history.Statistics()
}

// HistoryCap 历史容量
func (s *Service) HistoryCap() int {
	return s.history.Cap()
}
