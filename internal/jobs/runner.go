package jobs

import (
	"context"
	"time"
)

// Job — периодическая задача бота, например напоминания о занятиях.
type Job func(ctx context.Context) error

type Runner struct {
	ctx context.Context
}

func New(ctx context.Context) *Runner { return &Runner{ctx: ctx} }

// Every запускает fn сразу и затем с интервалом interval, пока жив контекст.
// Немедленный первый запуск нужен напоминаниям: после рестарта бота ждать
// сутки до ближайшей рассылки нельзя.
func (r *Runner) Every(interval time.Duration, name string, fn Job) {
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			r.runOnce(name, fn)
			select {
			case <-r.ctx.Done():
				return
			case <-t.C:
			}
		}
	}()
}

func (r *Runner) runOnce(name string, fn Job) {
	start := time.Now()
	if err := fn(r.ctx); err != nil {
		jobErrors.WithLabelValues(name).Inc()
	}
	jobRuns.WithLabelValues(name).Inc()
	jobDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
}
