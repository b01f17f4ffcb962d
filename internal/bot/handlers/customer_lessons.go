package handlers

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	"github.com/avdeevsm/driving-school-bot/internal/bot/shared/fsmutil"
	"github.com/avdeevsm/driving-school-bot/internal/schedclient"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// StartCustomerLessons — «Занятия клиента» (админ): выбор клиента и показ его
// списка с теми же действиями, что и у самого клиента.
func StartCustomerLessons(ctx context.Context, bot *tgbotapi.BotAPI, database *sql.DB, client *schedclient.Client, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	sess := RequireAdmin(ctx, bot, database, chatID)
	if sess == nil {
		return
	}
	askCustomer(ctx, bot, client, sess, chatID, "Выберите клиента:", "cls_cust:", "cls_cancel")
}

func HandleCustomerLessonsCallback(ctx context.Context, bot *tgbotapi.BotAPI, database *sql.DB, client *schedclient.Client, cb *tgbotapi.CallbackQuery) {
	chatID := cb.Message.Chat.ID
	sess := RequireAdmin(ctx, bot, database, chatID)
	if sess == nil {
		return
	}
	data := cb.Data

	if data == "cls_cancel" {
		fsmutil.DisableMarkup(bot, chatID, cb.Message.MessageID)
		sendText(bot, chatID, "Отменено.")
		return
	}
	customerID, err := strconv.ParseInt(strings.TrimPrefix(data, "cls_cust:"), 10, 64)
	if err != nil {
		return
	}
	fsmutil.DisableMarkup(bot, chatID, cb.Message.MessageID)
	RefreshSchedules(ctx, bot, database, client, chatID, sess, customerID, "")
}
