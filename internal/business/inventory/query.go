package inventory

import (
	"context"
	"time"

	"expmon/internal/entity"
)

// Store 过期查询依赖的库存读接口
type Store interface {
	FindByExpirationDate(ctx context.Context, date time.Time) ([]*entity.Product, error)
	FindByExpirationBetween(ctx context.Context, from, to time.Time) ([]*entity.Product, error)
	FindByExpirationBefore(ctx context.Context, date time.Time) ([]*entity.Product, error)
}

// QueryService 过期查询门面
// 所有查询相对"今天"，每次调用重新计算；不缓存，存储错误原样返回
type QueryService struct {
	store Store
	clock Clock
}

// NewQueryService 创建过期查询门面
func NewQueryService(store Store, clock Clock) *QueryService {
	return &QueryService{
		store: store,
		clock: clock,
	}
}

// Today 当前日历日期
func (s *QueryService) Today() time.Time {
	return Today(s.clock)
}

// FindExpiringOn 过期日期恰好为 date 的商品
func (s *QueryService) FindExpiringOn(ctx context.Context, date time.Time) ([]*entity.Product, error) {
	return s.store.FindByExpirationDate(ctx, entity.DateOf(date))
}

// FindExpiringTomorrow 明天过期的商品
func (s *QueryService) FindExpiringTomorrow(ctx context.Context) ([]*entity.Product, error) {
	return s.FindExpiringOn(ctx, s.Today().AddDate(0, 0, 1))
}

// FindExpiringWithin 过期日期位于 [today, today+days] 的商品，按过期日期升序
// days 由调用方校验
func (s *QueryService) FindExpiringWithin(ctx context.Context, days int) ([]*entity.Product, error) {
	today := s.Today()
	return s.store.FindByExpirationBetween(ctx, today, today.AddDate(0, 0, days))
}

// FindExpired 过期日期早于今天的商品
func (s *QueryService) FindExpired(ctx context.Context) ([]*entity.Product, error) {
	return s.store.FindByExpirationBefore(ctx, s.Today())
}
