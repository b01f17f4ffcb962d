package handlers

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"

	"github.com/avdeevsm/driving-school-bot/internal/booking"
	"github.com/avdeevsm/driving-school-bot/internal/bot/shared/fsmutil"
	"github.com/avdeevsm/driving-school-bot/internal/observability"
	"github.com/avdeevsm/driving-school-bot/internal/schedclient"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	StepBulkVehicle = iota
	StepBulkTime
	StepBulkPickDrop
	StepBulkConfirm
)

// BulkTimeState — массовый перенос времени всех незавершённых занятий
// автомобиля. Перекрытия проверяет бэкенд, бот только собирает параметры.
type BulkTimeState struct {
	Step          int
	VehicleNumber string
	NewStartTime  string // HH:mm:ss
	PickAndDrop   bool
}

var bulkStates = struct {
	mu sync.Mutex
	m  map[int64]*BulkTimeState
}{m: make(map[int64]*BulkTimeState)}

func GetBulkTimeState(chatID int64) *BulkTimeState {
	bulkStates.mu.Lock()
	defer bulkStates.mu.Unlock()
	return bulkStates.m[chatID]
}

func setBulkTimeState(chatID int64, st *BulkTimeState) {
	bulkStates.mu.Lock()
	defer bulkStates.mu.Unlock()
	bulkStates.m[chatID] = st
}

func ClearBulkTimeState(chatID int64) {
	bulkStates.mu.Lock()
	defer bulkStates.mu.Unlock()
	delete(bulkStates.m, chatID)
}

// StartBulkTimeFSM — «Сменить время по автомобилю» (админ).
func StartBulkTimeFSM(ctx context.Context, bot *tgbotapi.BotAPI, database *sql.DB, client *schedclient.Client, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	sess := RequireAdmin(ctx, bot, database, chatID)
	if sess == nil {
		return
	}
	vehicles, err := client.Vehicles(ctx, sess, "")
	if err != nil {
		observability.CaptureErr(err)
		sendText(bot, chatID, "❌ "+err.Error())
		return
	}
	if len(vehicles) == 0 {
		sendText(bot, chatID, "Автомобилей нет.")
		return
	}
	ClearBulkTimeState(chatID)
	setBulkTimeState(chatID, &BulkTimeState{Step: StepBulkVehicle})

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, v := range vehicles {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("%s — %s", v.Number, v.Name), "blk_veh:"+v.Number),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("❌ Отмена", "blk_cancel"),
	))
	out := tgbotapi.NewMessage(chatID, "Выберите автомобиль:")
	out.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	sendMsg(bot, out)
}

// HandleBulkTimeText — ввод нового времени начала (ЧЧ:ММ).
func HandleBulkTimeText(ctx context.Context, bot *tgbotapi.BotAPI, database *sql.DB, client *schedclient.Client, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	st := GetBulkTimeState(chatID)
	if st == nil || st.Step != StepBulkTime {
		return
	}
	if fsmutil.IsCancelText(msg.Text) {
		ClearBulkTimeState(chatID)
		sendText(bot, chatID, "Отменено.")
		return
	}
	if RequireAdmin(ctx, bot, database, chatID) == nil {
		return
	}
	t, err := booking.ToHHMMSS(strings.TrimSpace(msg.Text))
	if err != nil {
		sendText(bot, chatID, "Введите время в формате ЧЧ:ММ, например 09:30.")
		return
	}
	st.NewStartTime = t
	st.Step = StepBulkPickDrop

	out := tgbotapi.NewMessage(chatID, "Занятия будут с подачей автомобиля?")
	out.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🚗 Да", "blk_pd_yes"),
			tgbotapi.NewInlineKeyboardButtonData("Нет", "blk_pd_no"),
		),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("❌ Отмена", "blk_cancel")),
	)
	sendMsg(bot, out)
}

// HandleBulkTimeCallback — шаги с кнопками.
func HandleBulkTimeCallback(ctx context.Context, bot *tgbotapi.BotAPI, database *sql.DB, client *schedclient.Client, cb *tgbotapi.CallbackQuery) {
	chatID := cb.Message.Chat.ID
	sess := RequireAdmin(ctx, bot, database, chatID)
	if sess == nil {
		return
	}
	st := GetBulkTimeState(chatID)
	data := cb.Data

	if data == "blk_cancel" {
		fsmutil.DisableMarkup(bot, chatID, cb.Message.MessageID)
		ClearBulkTimeState(chatID)
		sendText(bot, chatID, "Отменено.")
		return
	}
	if st == nil {
		return
	}

	switch {
	case strings.HasPrefix(data, "blk_veh:") && st.Step == StepBulkVehicle:
		st.VehicleNumber = strings.TrimPrefix(data, "blk_veh:")
		st.Step = StepBulkTime
		fsmutil.DisableMarkup(bot, chatID, cb.Message.MessageID)
		sendText(bot, chatID, "Введите новое время начала (ЧЧ:ММ):")

	case (data == "blk_pd_yes" || data == "blk_pd_no") && st.Step == StepBulkPickDrop:
		st.PickAndDrop = data == "blk_pd_yes"
		st.Step = StepBulkConfirm
		fsmutil.DisableMarkup(bot, chatID, cb.Message.MessageID)

		pd := "без подачи"
		if st.PickAndDrop {
			pd = "с подачей"
		}
		out := tgbotapi.NewMessage(chatID, fmt.Sprintf(
			"Перенести ВСЕ незавершённые занятия авто %s на %s (%s)?",
			st.VehicleNumber, hhmm(st.NewStartTime), pd))
		out.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Подтвердить", "blk_confirm"),
			tgbotapi.NewInlineKeyboardButtonData("❌ Отмена", "blk_cancel"),
		))
		sendMsg(bot, out)

	case data == "blk_confirm" && st.Step == StepBulkConfirm:
		fsmutil.DisableMarkup(bot, chatID, cb.Message.MessageID)
		submitBulkTime(ctx, bot, database, client, sess, chatID, st)
	}
}

func submitBulkTime(ctx context.Context, bot *tgbotapi.BotAPI, database *sql.DB, client *schedclient.Client,
	sess *schedclient.Session, chatID int64, st *BulkTimeState) {

	// снимок параметров до горутины
	vehicleNumber := st.VehicleNumber
	newStart := st.NewStartTime
	pickAndDrop := st.PickAndDrop

	pendingKey := "bulk_time:" + vehicleNumber
	if !fsmutil.SetPending(chatID, pendingKey) {
		sendText(bot, chatID, "⏳ Операция уже выполняется.")
		return
	}
	go func() {
		defer fsmutil.ClearPending(chatID, pendingKey)
		defer ClearBulkTimeState(chatID)

		if err := client.BulkUpdateTime(ctx, sess, vehicleNumber, newStart, pickAndDrop); err != nil {
			observability.CaptureErr(err)
			sendText(bot, chatID, "❌ "+err.Error())
			return
		}
		note := fmt.Sprintf("🕒 Время занятий авто %s обновлено.", vehicleNumber)
		// перечитываем последний просмотренный список: массовая мутация могла
		// задеть и его
		if customerID := lastViewedCustomer(chatID); customerID != 0 {
			RefreshSchedules(ctx, bot, database, client, chatID, sess, customerID, note)
			return
		}
		sendText(bot, chatID, note)
	}()
}
