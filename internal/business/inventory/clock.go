package inventory

import (
	"time"

	"expmon/internal/entity"
)

// Clock 时间源
type Clock interface {
	Now() time.Time
}

// SystemClock 系统时钟（按指定时区取日历日期）
type SystemClock struct {
	Location *time.Location
}

// Now 当前时间
func (c SystemClock) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}

// FixedClock 固定时钟（测试用）
type FixedClock struct {
	T time.Time
}

// Now 当前时间
func (c FixedClock) Now() time.Time {
	return c.T
}

// Today 时钟对应的日历日期，每次调用重新计算
func Today(c Clock) time.Time {
	return entity.DateOf(c.Now())
}
