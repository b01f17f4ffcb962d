package handlers

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/avdeevsm/driving-school-bot/internal/ctxutil"
	"github.com/avdeevsm/driving-school-bot/internal/metrics"
	"github.com/avdeevsm/driving-school-bot/internal/models"
	"github.com/avdeevsm/driving-school-bot/internal/observability"
	"github.com/avdeevsm/driving-school-bot/internal/schedclient"
	"github.com/avdeevsm/driving-school-bot/internal/store"
	"github.com/avdeevsm/driving-school-bot/internal/tg"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// RequireSession достаёт сессию чата. Незалогиненным и деактивированным —
// сообщение и nil; вызывающий сценарий в этом случае не стартует.
func RequireSession(ctx context.Context, bot *tgbotapi.BotAPI, database *sql.DB, chatID int64) *schedclient.Session {
	dbCtx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	s, err := store.GetSession(dbCtx, database, chatID)
	if err != nil {
		observability.CaptureErr(err)
		sendText(bot, chatID, "Ошибка доступа к сессии. Попробуйте позже.")
		return nil
	}
	if s == nil {
		sendText(bot, chatID, "⚠️ Вы не авторизованы. Нажмите /start для входа.")
		return nil
	}
	if !s.IsActive {
		rm := tgbotapi.NewMessage(chatID, "🚫 Учётная запись деактивирована. Обратитесь к администратору.")
		rm.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
		if _, err := tg.Send(bot, rm); err != nil {
			metrics.HandlerErrors.Inc()
		}
		return nil
	}
	return &schedclient.Session{Token: s.Token, Role: s.Role, CustomerID: s.CustomerID}
}

func sendText(bot *tgbotapi.BotAPI, chatID int64, text string) {
	sendMsg(bot, tgbotapi.NewMessage(chatID, text))
}

func sendMsg(bot *tgbotapi.BotAPI, msg tgbotapi.Chattable) {
	if _, err := tg.Send(bot, msg); err != nil {
		metrics.HandlerErrors.Inc()
	}
}

// parseDate — дата из UI (ДД.ММ.ГГГГ).
func parseDate(s string) (time.Time, error) {
	return time.Parse("02.01.2006", s)
}

// wireDate — проводной формат даты (YYYY-MM-DD).
func wireDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// uiDate — YYYY-MM-DD → ДД.ММ.ГГГГ для показа; нераспарсенное отдаём как есть.
func uiDate(wire string) string {
	t, err := time.Parse("2006-01-02", wire)
	if err != nil {
		return wire
	}
	return t.Format("02.01.2006")
}

// statusLabel — статусы занятий в подписях.
func statusLabel(s models.ScheduleStatus) string {
	switch s {
	case models.StatusScheduled:
		return "🟢 Запланировано"
	case models.StatusRescheduled:
		return "🔁 Перенесено"
	case models.StatusCompleted:
		return "✅ Завершено"
	case models.StatusCancelled:
		return "❌ Отменено"
	default:
		return string(s)
	}
}

// scheduleLine — строка занятия в списках.
func scheduleLine(s models.Schedule) string {
	name := s.CourseName
	if name == "" {
		name = fmt.Sprintf("курс #%d", s.CourseID)
	}
	line := fmt.Sprintf("#%d %s — %s %s–%s, авто %s, %s",
		s.ID, name, uiDate(s.Date), hhmm(s.StartTime), hhmm(s.EndTime), s.VehicleNumber, statusLabel(s.Status))
	if s.PickAndDrop {
		line += ", с подачей"
	}
	return line
}

// hhmm — "HH:mm:ss" → "HH:mm" для показа.
func hhmm(t string) string {
	if len(t) >= 5 {
		return t[:5]
	}
	return t
}
