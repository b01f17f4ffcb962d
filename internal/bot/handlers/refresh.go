package handlers

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"

	"github.com/avdeevsm/driving-school-bot/internal/booking"
	"github.com/avdeevsm/driving-school-bot/internal/models"
	"github.com/avdeevsm/driving-school-bot/internal/observability"
	"github.com/avdeevsm/driving-school-bot/internal/schedclient"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// lastSchedules — последний авторитетный список занятий по чату. По нему
// делается локальная проверка терминальности перед мутацией и берётся связка
// ресурсов для переноса; источник — только бэкенд.
var lastSchedules = struct {
	mu sync.Mutex
	m  map[int64]map[int64]models.Schedule // chatID → scheduleID → schedule
}{m: make(map[int64]map[int64]models.Schedule)}

func rememberSchedules(chatID int64, schedules []models.Schedule) {
	lastSchedules.mu.Lock()
	defer lastSchedules.mu.Unlock()
	m := make(map[int64]models.Schedule, len(schedules))
	for _, s := range schedules {
		m[s.ID] = s
	}
	lastSchedules.m[chatID] = m
}

func knownSchedule(chatID, scheduleID int64) (models.Schedule, bool) {
	lastSchedules.mu.Lock()
	defer lastSchedules.mu.Unlock()
	s, ok := lastSchedules.m[chatID][scheduleID]
	return s, ok
}

// viewedCustomer — чей список занятий чат смотрел последним; после массовых
// мутаций сверка перечитывает именно его.
var viewedCustomer = struct {
	mu sync.Mutex
	m  map[int64]int64
}{m: make(map[int64]int64)}

func lastViewedCustomer(chatID int64) int64 {
	viewedCustomer.mu.Lock()
	defer viewedCustomer.mu.Unlock()
	return viewedCustomer.m[chatID]
}

// RefreshSchedules — сверочное перечитывание после мутации: статусы, даты и
// суммы пересчитывает бэкенд, локально ничего не патчим. note — что произошло.
func RefreshSchedules(ctx context.Context, bot *tgbotapi.BotAPI, database *sql.DB, client *schedclient.Client,
	chatID int64, sess *schedclient.Session, customerID int64, note string) {

	schedules, err := client.ListSchedules(ctx, sess, customerID)
	if err != nil {
		observability.CaptureErr(err)
		sendText(bot, chatID, note+"\n⚠️ Не удалось обновить список занятий: "+err.Error())
		return
	}
	rememberSchedules(chatID, schedules)
	viewedCustomer.mu.Lock()
	viewedCustomer.m[chatID] = customerID
	viewedCustomer.mu.Unlock()

	var b strings.Builder
	if note != "" {
		b.WriteString(note)
		b.WriteString("\n\n")
	}
	b.WriteString(renderSchedules(schedules))

	msg := tgbotapi.NewMessage(chatID, b.String())
	if kb, ok := scheduleActionsKeyboard(schedules); ok {
		msg.ReplyMarkup = kb
	}
	sendMsg(bot, msg)
}

func renderSchedules(schedules []models.Schedule) string {
	if len(schedules) == 0 {
		return "Занятий нет."
	}
	var b strings.Builder
	b.WriteString("📅 Занятия:\n")
	for _, s := range schedules {
		b.WriteString(scheduleLine(s))
		b.WriteString("\n")
	}
	return b.String()
}

// scheduleActionsKeyboard — действия по активным занятиям; для терминальных
// кнопок нет, попытка мутации по ним отбивается ещё и в обработчике.
func scheduleActionsKeyboard(schedules []models.Schedule) (tgbotapi.InlineKeyboardMarkup, bool) {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, s := range schedules {
		if !booking.CanApply(booking.OpReschedule, s.Status) {
			continue
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("✅ #%d", s.ID), fmt.Sprintf("les_complete:%d", s.ID)),
			tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("🔁 #%d", s.ID), fmt.Sprintf("les_resched:%d", s.ID)),
			tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("❌ #%d", s.ID), fmt.Sprintf("les_cancel:%d", s.ID)),
		))
	}
	if len(rows) == 0 {
		return tgbotapi.InlineKeyboardMarkup{}, false
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...), true
}
