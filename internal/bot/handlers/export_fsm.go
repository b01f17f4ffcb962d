package handlers

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/avdeevsm/driving-school-bot/internal/bot/shared/fsmutil"
	"github.com/avdeevsm/driving-school-bot/internal/export"
	"github.com/avdeevsm/driving-school-bot/internal/models"
	"github.com/avdeevsm/driving-school-bot/internal/observability"
	"github.com/avdeevsm/driving-school-bot/internal/schedclient"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// StartExport — «Экспорт занятий» (админ): занятия клиента одним xlsx-файлом.
func StartExport(ctx context.Context, bot *tgbotapi.BotAPI, database *sql.DB, client *schedclient.Client, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	sess := RequireAdmin(ctx, bot, database, chatID)
	if sess == nil {
		return
	}
	askCustomer(ctx, bot, client, sess, chatID, "Чьи занятия выгрузить?", "exp_cust:", "exp_cancel")
}

func HandleExportCallback(ctx context.Context, bot *tgbotapi.BotAPI, database *sql.DB, client *schedclient.Client, cb *tgbotapi.CallbackQuery) {
	chatID := cb.Message.Chat.ID
	sess := RequireAdmin(ctx, bot, database, chatID)
	if sess == nil {
		return
	}
	data := cb.Data

	if data == "exp_cancel" {
		fsmutil.DisableMarkup(bot, chatID, cb.Message.MessageID)
		sendText(bot, chatID, "Отменено.")
		return
	}
	customerID, err := strconv.ParseInt(strings.TrimPrefix(data, "exp_cust:"), 10, 64)
	if err != nil {
		return
	}
	fsmutil.DisableMarkup(bot, chatID, cb.Message.MessageID)

	pendingKey := "export:" + strconv.FormatInt(customerID, 10)
	if !fsmutil.SetPending(chatID, pendingKey) {
		sendText(bot, chatID, "⏳ Экспорт уже выполняется.")
		return
	}
	go func() {
		defer fsmutil.ClearPending(chatID, pendingKey)

		cust, err := client.GetCustomer(ctx, sess, customerID)
		if err != nil {
			observability.CaptureErr(err)
			sendText(bot, chatID, "❌ "+err.Error())
			return
		}
		schedules, err := client.ListSchedules(ctx, sess, customerID)
		if err != nil {
			observability.CaptureErr(err)
			sendText(bot, chatID, "❌ "+err.Error())
			return
		}
		if len(schedules) == 0 {
			sendText(bot, chatID, "Занятий нет, выгружать нечего.")
			return
		}

		wb, err := export.NewWorkbook([]export.SheetSpec{{
			Title:  "Занятия",
			Header: export.ScheduleHeader,
			Rows:   scheduleRows(schedules),
		}})
		if err != nil {
			observability.CaptureErr(err)
			sendText(bot, chatID, "❌ Не удалось сформировать файл.")
			return
		}
		raw, err := wb.Bytes()
		if err != nil {
			observability.CaptureErr(err)
			sendText(bot, chatID, "❌ Не удалось сформировать файл.")
			return
		}

		name := fmt.Sprintf("lessons_%d_%s.xlsx", customerID, time.Now().Format("2006-01-02"))
		doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: name, Bytes: raw})
		doc.Caption = fmt.Sprintf("Занятия клиента %s", cust.Name)
		sendMsg(bot, doc)
	}()
}

// scheduleRows — занятия в строки листа, колонки по ScheduleHeader.
func scheduleRows(schedules []models.Schedule) [][]string {
	rows := make([][]string, 0, len(schedules))
	for _, s := range schedules {
		pd := "нет"
		if s.PickAndDrop {
			pd = "да"
		}
		rows = append(rows, []string{
			strconv.FormatInt(s.ID, 10),
			s.CourseName,
			uiDate(s.Date),
			hhmm(s.StartTime),
			hhmm(s.EndTime),
			s.VehicleNumber,
			s.InstructorName,
			statusLabel(s.Status),
			pd,
		})
	}
	return rows
}
