// Package observability — отправка ошибок в Sentry. Сюда попадают только
// системные сбои (сеть, локальная БД, недоступность бэкенда расписания);
// пользовательские отказы вроде занятого слота не шлются.
package observability

import (
	"time"

	"github.com/getsentry/sentry-go"
)

// InitSentry включает Sentry, если задан DSN; без DSN бот работает без него
// (локальная разработка). Возвращаемая функция сбрасывает буфер при выходе.
func InitSentry(dsn, env, release string) (func(), error) {
	if dsn == "" {
		return func() {}, nil
	}
	opts := sentry.ClientOptions{
		Dsn:         dsn,
		Environment: env,
		Release:     release,
	}
	if err := sentry.Init(opts); err != nil {
		return func() {}, err
	}
	return func() { sentry.Flush(2 * time.Second) }, nil
}

// CaptureErr переносит nil-проверку внутрь: можно вызывать прямо на err
// из ветки ошибки.
func CaptureErr(err error) {
	if err == nil {
		return
	}
	sentry.CaptureException(err)
}
