package app

import (
	"context"
	"database/sql"
	"strings"

	"github.com/avdeevsm/driving-school-bot/internal/bot/auth"
	"github.com/avdeevsm/driving-school-bot/internal/bot/handlers"
	"github.com/avdeevsm/driving-school-bot/internal/bot/menu"
	"github.com/avdeevsm/driving-school-bot/internal/ctxutil"
	"github.com/avdeevsm/driving-school-bot/internal/metrics"
	"github.com/avdeevsm/driving-school-bot/internal/observability"
	"github.com/avdeevsm/driving-school-bot/internal/schedclient"
	"github.com/avdeevsm/driving-school-bot/internal/store"
	"github.com/avdeevsm/driving-school-bot/internal/tg"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// HandleMessage — маршрутизация текстовых сообщений: /start, активные
// сценарии (по состоянию чата), затем кнопки меню.
func HandleMessage(ctx context.Context, bot *tgbotapi.BotAPI, database *sql.DB, client *schedclient.Client, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	text := msg.Text

	if text == "/start" {
		handleStart(ctx, bot, database, chatID)
		return
	}

	// вход: пока чат не привязан к учётке, остальное недоступно
	if auth.GetLoginState(chatID) != nil {
		auth.HandleLoginMessage(ctx, chatID, text, bot, database, client)
		return
	}

	// активные сценарии с текстовым вводом
	if handlers.GetEnrollState(chatID) != nil {
		handlers.HandleEnrollText(ctx, bot, database, client, msg)
		return
	}
	if handlers.GetRescheduleState(chatID) != nil {
		handlers.HandleRescheduleText(ctx, bot, database, client, msg)
		return
	}
	if handlers.GetBulkTimeState(chatID) != nil {
		handlers.HandleBulkTimeText(ctx, bot, database, client, msg)
		return
	}
	if handlers.GetPriceAdjustState(chatID) != nil {
		handlers.HandlePriceAdjustText(ctx, bot, database, client, msg)
		return
	}

	switch text {
	case "📝 Записаться на курс":
		handlers.StartEnrollFSM(ctx, bot, database, client, msg)
	case "📅 Мои занятия":
		handlers.ShowMySchedules(ctx, bot, database, client, msg)
	case "👥 Занятия клиента":
		handlers.StartCustomerLessons(ctx, bot, database, client, msg)
	case "🕒 Сменить время по автомобилю":
		handlers.StartBulkTimeFSM(ctx, bot, database, client, msg)
	case "💰 Корректировка цены":
		handlers.StartPriceAdjustFSM(ctx, bot, database, client, msg)
	case "🚫 Отменить все занятия клиента":
		handlers.StartCancelAll(ctx, bot, database, client, msg)
	case "📥 Экспорт занятий":
		handlers.StartExport(ctx, bot, database, client, msg)
	default:
		send(bot, tgbotapi.NewMessage(chatID, "⚠️ Неизвестная команда. Используйте /start"))
	}
}

func handleStart(ctx context.Context, bot *tgbotapi.BotAPI, database *sql.DB, chatID int64) {
	dbCtx, cancel := ctxutil.WithDBTimeout(ctx)
	sess, err := store.GetSession(dbCtx, database, chatID)
	cancel()
	if err != nil {
		observability.CaptureErr(err)
		send(bot, tgbotapi.NewMessage(chatID, "Ошибка доступа к сессии. Попробуйте позже."))
		return
	}
	if sess == nil {
		auth.StartLogin(chatID, bot)
		return
	}
	if !sess.IsActive {
		rm := tgbotapi.NewMessage(chatID, "🚫 Учётная запись деактивирована. Обратитесь к администратору.")
		rm.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
		send(bot, rm)
		return
	}
	msg := tgbotapi.NewMessage(chatID, "Добро пожаловать! Выберите действие:")
	msg.ReplyMarkup = menu.GetRoleMenu(sess.Role)
	send(bot, msg)
}

// HandleCallback — маршрутизация inline-кнопок по префиксу callback-данных.
func HandleCallback(ctx context.Context, bot *tgbotapi.BotAPI, database *sql.DB, client *schedclient.Client, cb *tgbotapi.CallbackQuery) {
	// отвечаем всегда, чтобы Telegram "разморозил" кнопку
	if _, err := tg.Request(bot, tgbotapi.NewCallback(cb.ID, "")); err != nil {
		metrics.HandlerErrors.Inc()
	}
	if cb.Message == nil {
		return
	}
	data := cb.Data

	switch {
	case strings.HasPrefix(data, "enr_"):
		handlers.HandleEnrollCallback(ctx, bot, database, client, cb)
	case strings.HasPrefix(data, "res_"):
		handlers.HandleRescheduleCallback(ctx, bot, database, client, cb)
	case strings.HasPrefix(data, "les_"):
		handlers.HandleLessonCallback(ctx, bot, database, client, cb)
	case strings.HasPrefix(data, "cls_"):
		handlers.HandleCustomerLessonsCallback(ctx, bot, database, client, cb)
	case strings.HasPrefix(data, "blk_"):
		handlers.HandleBulkTimeCallback(ctx, bot, database, client, cb)
	case strings.HasPrefix(data, "pad_"):
		handlers.HandlePriceAdjustCallback(ctx, bot, database, client, cb)
	case strings.HasPrefix(data, "cal_"):
		handlers.HandleCancelAllCallback(ctx, bot, database, client, cb)
	case strings.HasPrefix(data, "exp_"):
		handlers.HandleExportCallback(ctx, bot, database, client, cb)
	}
}

func send(bot *tgbotapi.BotAPI, msg tgbotapi.Chattable) {
	if _, err := tg.Send(bot, msg); err != nil {
		metrics.HandlerErrors.Inc()
	}
}
