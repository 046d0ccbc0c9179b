package service

import (
	"context"
	"time"

	"github.com/BerniceZTT/sales_tracker/utils"
)

// nextRunAt 下一次执行时间，今天已过则顺延到明天
func nextRunAt(now time.Time, hour, min, sec int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, min, sec, 0, now.Location())
	if !now.Before(next) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// ScheduleDailyTaskAt 每天指定时间执行任务，ctx 取消后退出
func ScheduleDailyTaskAt(ctx context.Context, hour, min, sec int, task func(context.Context)) {
	go func() {
		for {
			next := nextRunAt(time.Now(), hour, min, sec)
			utils.Logger.Debug().Time("next", next).Msg("定时任务已排期")

			timer := time.NewTimer(time.Until(next))
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
				task(ctx)
			}
		}
	}()
}
