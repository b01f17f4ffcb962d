package handlers

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/avdeevsm/driving-school-bot/internal/models"
	"github.com/avdeevsm/driving-school-bot/internal/observability"
	"github.com/avdeevsm/driving-school-bot/internal/schedclient"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// RequireAdmin — сессия с ролью ADMIN; остальным — отказ без сетевых вызовов.
func RequireAdmin(ctx context.Context, bot *tgbotapi.BotAPI, database *sql.DB, chatID int64) *schedclient.Session {
	sess := RequireSession(ctx, bot, database, chatID)
	if sess == nil {
		return nil
	}
	if sess.Role != models.RoleAdmin {
		sendText(bot, chatID, "🚫 Доступно только администратору.")
		return nil
	}
	return sess
}

// askCustomer — выбор клиента для админского сценария; callback-данные
// собираются как prefix + customerID.
func askCustomer(ctx context.Context, bot *tgbotapi.BotAPI, client *schedclient.Client,
	sess *schedclient.Session, chatID int64, prompt, prefix, cancelData string) {

	customers, err := client.ListCustomers(ctx, sess)
	if err != nil {
		observability.CaptureErr(err)
		sendText(bot, chatID, "❌ "+err.Error())
		return
	}
	if len(customers) == 0 {
		sendText(bot, chatID, "Клиентов нет.")
		return
	}
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, c := range customers {
		label := fmt.Sprintf("%s (%s)", c.Name, c.Phone)
		if !c.IsActive {
			label = "🚫 " + label
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("%s%d", prefix, c.ID)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("❌ Отмена", cancelData),
	))
	msg := tgbotapi.NewMessage(chatID, prompt)
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	sendMsg(bot, msg)
}
