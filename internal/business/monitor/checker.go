package monitor

import (
	"context"
	"fmt"

	"expmon/internal/business/inventory"
	"expmon/internal/entity"
	"expmon/pkg/logger"
)

// PlanningWindowDays 计划窗口（天）
const PlanningWindowDays = 7

// Raiser 告警聚合
type Raiser interface {
	Raise(ctx context.Context, products []*entity.Product, alertType entity.AlertType) (*entity.AlertRecord, error)
}

// Checker 过期检查任务集合
// 定时任务调用 Run* 方法；错误返回给调用方，由任务边界统一记录
type Checker struct {
	query  *inventory.QueryService
	alerts Raiser
	logger logger.Logger
}

// NewChecker 创建检查器
func NewChecker(query *inventory.QueryService, alerts Raiser, log logger.Logger) *Checker {
	return &Checker{
		query:  query,
		alerts: alerts,
		logger: log,
	}
}

// RunMorningReport 早间库存健康报告，只输出日志
func (c *Checker) RunMorningReport(ctx context.Context) error {
	tomorrow, err := c.query.FindExpiringTomorrow(ctx)
	if err != nil {
		return fmt.Errorf("query expiring tomorrow failed: %w", err)
	}
	week, err := c.query.FindExpiringWithin(ctx, PlanningWindowDays)
	if err != nil {
		return fmt.Errorf("query expiring within %d days failed: %w", PlanningWindowDays, err)
	}
	expired, err := c.query.FindExpired(ctx)
	if err != nil {
		return fmt.Errorf("query expired failed: %w", err)
	}

	c.logger.Infof(ctx, "[Monitor] Morning inventory report for %s: expiring tomorrow=%d, expiring within %d days=%d, already expired=%d",
		c.query.Today().Format("2006-01-02"), len(tomorrow), PlanningWindowDays, len(week), len(expired))
	if len(expired) > 0 {
		c.logger.Warnf(ctx, "[Monitor] %d expired product(s) should be removed from inventory", len(expired))
	}
	return nil
}

// RunSevenDayCheck 7 天内过期检查
func (c *Checker) RunSevenDayCheck(ctx context.Context) error {
	_, err := c.raiseSevenDays(ctx)
	return err
}

// RunTomorrowCheck 明天过期检查
func (c *Checker) RunTomorrowCheck(ctx context.Context) error {
	_, err := c.raiseTomorrow(ctx)
	return err
}

// RunMealPlanning 晚间膳食计划，只输出日志
func (c *Checker) RunMealPlanning(ctx context.Context) error {
	products, err := c.query.FindExpiringWithin(ctx, PlanningWindowDays)
	if err != nil {
		return fmt.Errorf("query expiring within %d days failed: %w", PlanningWindowDays, err)
	}

	if len(products) == 0 {
		c.logger.Infof(ctx, "[Monitor] Meal planning: No products expiring this week")
		return nil
	}

	today := c.query.Today()
	c.logger.Infof(ctx, "[Monitor] Meal planning for %d product(s) expiring this week", len(products))
	for _, p := range products {
		c.logger.Infof(ctx, "[Monitor] Day %d: Use %s (%s)", p.DaysUntilExpiration(today)+1, p.Name, p.Category)
	}
	return nil
}

// RunFastCheck 短周期检查：明天与 7 天内的列表分别非空时告警
func (c *Checker) RunFastCheck(ctx context.Context) error {
	_, err := c.RunManualCheck(ctx)
	return err
}

// RunManualCheck 手动触发检查，返回产生的告警数
func (c *Checker) RunManualCheck(ctx context.Context) (int, error) {
	raised := 0

	ok, err := c.raiseTomorrow(ctx)
	if err != nil {
		return raised, err
	}
	if ok {
		raised++
	}

	ok, err = c.raiseSevenDays(ctx)
	if err != nil {
		return raised, err
	}
	if ok {
		raised++
	}
	return raised, nil
}

func (c *Checker) raiseTomorrow(ctx context.Context) (bool, error) {
	products, err := c.query.FindExpiringTomorrow(ctx)
	if err != nil {
		return false, fmt.Errorf("query expiring tomorrow failed: %w", err)
	}
	return c.raise(ctx, products, entity.AlertTypeTomorrow)
}

func (c *Checker) raiseSevenDays(ctx context.Context) (bool, error) {
	products, err := c.query.FindExpiringWithin(ctx, PlanningWindowDays)
	if err != nil {
		return false, fmt.Errorf("query expiring within %d days failed: %w", PlanningWindowDays, err)
	}
	return c.raise(ctx, products, entity.AlertTypeSevenDays)
}

func (c *Checker) raise(ctx context.Context, products []*entity.Product, alertType entity.AlertType) (bool, error) {
	if len(products) == 0 {
		c.logger.Debugf(ctx, "[Monitor] No products for %s alert", alertType)
		return false, nil
	}
	rec, err := c.alerts.Raise(ctx, products, alertType)
	if err != nil {
		return false, fmt.Errorf("raise %s alert failed: %w", alertType, err)
	}
	return rec != nil, nil
}
