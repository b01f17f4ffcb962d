package handlers

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/avdeevsm/driving-school-bot/internal/bot/shared/fsmutil"
	"github.com/avdeevsm/driving-school-bot/internal/ctxutil"
	"github.com/avdeevsm/driving-school-bot/internal/observability"
	"github.com/avdeevsm/driving-school-bot/internal/schedclient"
	"github.com/avdeevsm/driving-school-bot/internal/store"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// StartCancelAll — «Отменить все занятия клиента»: каскадная отмена всех
// будущих занятий с деактивацией клиента. Только после явного подтверждения.
func StartCancelAll(ctx context.Context, bot *tgbotapi.BotAPI, database *sql.DB, client *schedclient.Client, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	sess := RequireAdmin(ctx, bot, database, chatID)
	if sess == nil {
		return
	}
	askCustomer(ctx, bot, client, sess, chatID,
		"Выберите клиента для отмены всех будущих занятий:", "cal_cust:", "cal_no")
}

// HandleCancelAllCallback — выбор клиента и подтверждение каскада.
func HandleCancelAllCallback(ctx context.Context, bot *tgbotapi.BotAPI, database *sql.DB, client *schedclient.Client, cb *tgbotapi.CallbackQuery) {
	chatID := cb.Message.Chat.ID
	sess := RequireAdmin(ctx, bot, database, chatID)
	if sess == nil {
		return
	}
	data := cb.Data

	switch {
	case data == "cal_no":
		fsmutil.DisableMarkup(bot, chatID, cb.Message.MessageID)
		sendText(bot, chatID, "Отменено.")

	case strings.HasPrefix(data, "cal_cust:"):
		customerID, err := strconv.ParseInt(strings.TrimPrefix(data, "cal_cust:"), 10, 64)
		if err != nil {
			return
		}
		fsmutil.DisableMarkup(bot, chatID, cb.Message.MessageID)
		cust, err := client.GetCustomer(ctx, sess, customerID)
		if err != nil {
			observability.CaptureErr(err)
			sendText(bot, chatID, "❌ "+err.Error())
			return
		}
		msg := tgbotapi.NewMessage(chatID, fmt.Sprintf(
			"⚠️ Отменить ВСЕ будущие занятия клиента %s (%s)?\nКлиент будет деактивирован, завершённые занятия не тронутся.",
			cust.Name, cust.Phone))
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🚫 Да, отменить всё", fmt.Sprintf("cal_yes:%d", customerID)),
			tgbotapi.NewInlineKeyboardButtonData("❌ Нет", "cal_no"),
		))
		sendMsg(bot, msg)

	case strings.HasPrefix(data, "cal_yes:"):
		customerID, err := strconv.ParseInt(strings.TrimPrefix(data, "cal_yes:"), 10, 64)
		if err != nil {
			return
		}
		fsmutil.DisableMarkup(bot, chatID, cb.Message.MessageID)
		cancelAllUpcoming(ctx, bot, database, client, sess, chatID, customerID)
	}
}

// cancelAllUpcoming — сам каскад; после него сверочное перечитывание и
// обновление локального флага активности по всем чатам клиента.
func cancelAllUpcoming(ctx context.Context, bot *tgbotapi.BotAPI, database *sql.DB, client *schedclient.Client,
	sess *schedclient.Session, chatID, customerID int64) {

	pendingKey := "cancel_all:" + strconv.FormatInt(customerID, 10)
	if !fsmutil.SetPending(chatID, pendingKey) {
		sendText(bot, chatID, "⏳ Операция уже выполняется.")
		return
	}
	go func() {
		defer fsmutil.ClearPending(chatID, pendingKey)

		if err := client.CancelAllUpcoming(ctx, sess, customerID); err != nil {
			observability.CaptureErr(err)
			sendText(bot, chatID, "❌ "+err.Error())
			return
		}

		note := "🚫 Все будущие занятия клиента отменены."
		if cust, err := client.GetCustomer(ctx, sess, customerID); err == nil && !cust.IsActive {
			note += " Клиент деактивирован."
			dbCtx, cancel := ctxutil.WithDBTimeout(ctx)
			if err := store.SetActiveByCustomer(dbCtx, database, customerID, false); err != nil {
				observability.CaptureErr(err)
			}
			cancel()
		}
		RefreshSchedules(ctx, bot, database, client, chatID, sess, customerID, note)
	}()
}
