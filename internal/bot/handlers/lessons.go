package handlers

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	"github.com/avdeevsm/driving-school-bot/internal/booking"
	"github.com/avdeevsm/driving-school-bot/internal/bot/shared/fsmutil"
	"github.com/avdeevsm/driving-school-bot/internal/models"
	"github.com/avdeevsm/driving-school-bot/internal/observability"
	"github.com/avdeevsm/driving-school-bot/internal/schedclient"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// ShowMySchedules — «Мои занятия»: авторитетный список с действиями.
func ShowMySchedules(ctx context.Context, bot *tgbotapi.BotAPI, database *sql.DB, client *schedclient.Client, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	sess := RequireSession(ctx, bot, database, chatID)
	if sess == nil {
		return
	}
	if sess.CustomerID == 0 {
		sendText(bot, chatID, "Вы ещё не записаны ни на один курс. Нажмите «📝 Записаться на курс».")
		return
	}
	RefreshSchedules(ctx, bot, database, client, chatID, sess, sess.CustomerID, "")
}

// HandleLessonCallback — завершение/отмена/перенос одного занятия.
// Терминальные статусы отбиваются до любого сетевого вызова.
func HandleLessonCallback(ctx context.Context, bot *tgbotapi.BotAPI, database *sql.DB, client *schedclient.Client, cb *tgbotapi.CallbackQuery) {
	chatID := cb.Message.Chat.ID
	sess := RequireSession(ctx, bot, database, chatID)
	if sess == nil {
		return
	}
	data := cb.Data

	var op booking.Op
	var idStr string
	switch {
	case strings.HasPrefix(data, "les_complete:"):
		op, idStr = booking.OpComplete, strings.TrimPrefix(data, "les_complete:")
	case strings.HasPrefix(data, "les_cancel:"):
		op, idStr = booking.OpCancel, strings.TrimPrefix(data, "les_cancel:")
	case strings.HasPrefix(data, "les_resched:"):
		op, idStr = booking.OpReschedule, strings.TrimPrefix(data, "les_resched:")
	default:
		return
	}
	scheduleID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return
	}
	sched, ok := knownSchedule(chatID, scheduleID)
	if !ok {
		sendText(bot, chatID, "⚠️ Список устарел. Откройте «📅 Мои занятия» заново.")
		return
	}
	if err := booking.EnsureMutable(op, sched.Status); err != nil {
		sendText(bot, chatID, "❌ "+err.Error())
		return
	}

	switch op {
	case booking.OpComplete:
		mutateLesson(ctx, bot, database, client, sess, chatID, sched, "complete",
			func() error {
				return client.UpdateStatus(ctx, sess, scheduleID, booking.ResultStatus(op, sched.Status))
			},
			"✅ Занятие отмечено завершённым.")
	case booking.OpCancel:
		mutateLesson(ctx, bot, database, client, sess, chatID, sched, "cancel",
			func() error { return client.Cancel(ctx, sess, scheduleID) },
			"❌ Занятие отменено.")
	case booking.OpReschedule:
		StartRescheduleFSM(ctx, bot, database, client, chatID, sched)
	}
}

// mutateLesson — общий путь мутации: защита от дублей, вызов, сверка.
func mutateLesson(ctx context.Context, bot *tgbotapi.BotAPI, database *sql.DB, client *schedclient.Client,
	sess *schedclient.Session, chatID int64, sched models.Schedule, key string, call func() error, note string) {

	pendingKey := key + ":" + strconv.FormatInt(sched.ID, 10)
	if !fsmutil.SetPending(chatID, pendingKey) {
		sendText(bot, chatID, "⏳ Операция уже выполняется.")
		return
	}
	go func() {
		defer fsmutil.ClearPending(chatID, pendingKey)
		if err := call(); err != nil {
			observability.CaptureErr(err)
			sendText(bot, chatID, "❌ "+err.Error())
			return
		}
		RefreshSchedules(ctx, bot, database, client, chatID, sess, sched.CustomerID, note)
	}()
}
