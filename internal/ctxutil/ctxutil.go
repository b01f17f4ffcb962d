package ctxutil

import (
	"context"
	"time"
)

// Таймаут для локальной БД сессий. На запросы к бэкенду расписания таймаут
// не ставится: зависший вызов держит «загрузку» у кнопки, повторов нет.
var DefaultDBTimeout = 5 * time.Second

func WithDBTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	if dl, ok := parent.Deadline(); ok {
		remain := time.Until(dl)
		if remain < DefaultDBTimeout {
			return context.WithTimeout(parent, remain)
		}
	}
	return context.WithTimeout(parent, DefaultDBTimeout)
}
