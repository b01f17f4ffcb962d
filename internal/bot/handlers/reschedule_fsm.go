package handlers

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/avdeevsm/driving-school-bot/internal/booking"
	"github.com/avdeevsm/driving-school-bot/internal/bot/shared/fsmutil"
	"github.com/avdeevsm/driving-school-bot/internal/metrics"
	"github.com/avdeevsm/driving-school-bot/internal/models"
	"github.com/avdeevsm/driving-school-bot/internal/observability"
	"github.com/avdeevsm/driving-school-bot/internal/schedclient"
	"github.com/avdeevsm/driving-school-bot/internal/tg"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	StepReschedDate = iota
	StepReschedSlots
	StepReschedConfirm

	resCancel  = "res_cancel"
	resConfirm = "res_confirm"
)

type RescheduleState struct {
	Step      int
	MessageID int

	Schedule models.Schedule
	Course   *models.Course // длительность нужна для слотов и конца занятия

	Date    string // YYYY-MM-DD
	Slots   []booking.Slot
	SlotIdx int
}

var reschedStates = struct {
	mu sync.Mutex
	m  map[int64]*RescheduleState
}{m: make(map[int64]*RescheduleState)}

func GetRescheduleState(chatID int64) *RescheduleState {
	reschedStates.mu.Lock()
	defer reschedStates.mu.Unlock()
	return reschedStates.m[chatID]
}

func setRescheduleState(chatID int64, st *RescheduleState) {
	reschedStates.mu.Lock()
	defer reschedStates.mu.Unlock()
	reschedStates.m[chatID] = st
}

func ClearRescheduleState(chatID int64) {
	reschedStates.mu.Lock()
	defer reschedStates.mu.Unlock()
	delete(reschedStates.m, chatID)
}

// StartRescheduleFSM — перенос одного занятия; связка ресурсов берётся из
// самого занятия, меняются только дата и время.
func StartRescheduleFSM(ctx context.Context, bot *tgbotapi.BotAPI, database *sql.DB, client *schedclient.Client, chatID int64, sched models.Schedule) {
	sess := RequireSession(ctx, bot, database, chatID)
	if sess == nil {
		return
	}
	courses, err := client.Courses(ctx, sess)
	if err != nil {
		observability.CaptureErr(err)
		sendText(bot, chatID, "❌ "+err.Error())
		return
	}
	course := findCourse(courses, sched.CourseID)
	if course == nil {
		sendText(bot, chatID, "❌ Курс занятия не найден.")
		return
	}

	ClearRescheduleState(chatID)
	st := &RescheduleState{Step: StepReschedDate, Schedule: sched, Course: course}
	setRescheduleState(chatID, st)

	text := fmt.Sprintf("Перенос занятия %s\nВведите новую дату в формате ДД.ММ.ГГГГ:", scheduleLine(sched))
	resReplace(bot, chatID, st, text, resCancelRow())
}

func HandleRescheduleText(ctx context.Context, bot *tgbotapi.BotAPI, database *sql.DB, client *schedclient.Client, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	st := GetRescheduleState(chatID)
	if st == nil {
		return
	}
	if fsmutil.IsCancelText(msg.Text) {
		ClearRescheduleState(chatID)
		sendText(bot, chatID, "Перенос отменён.")
		return
	}
	sess := RequireSession(ctx, bot, database, chatID)
	if sess == nil {
		return
	}

	if st.Step != StepReschedDate {
		return
	}
	d, err := parseDate(strings.TrimSpace(msg.Text))
	if err != nil {
		sendText(bot, chatID, "❌ Неверный формат. Введите дату в формате ДД.ММ.ГГГГ:")
		return
	}
	// новая дата обнуляет ранее показанные слоты
	st.Date = wireDate(d)
	st.Slots = nil
	st.Step = StepReschedSlots
	requestRescheduleSlots(ctx, bot, client, sess, chatID, st)
}

func HandleRescheduleCallback(ctx context.Context, bot *tgbotapi.BotAPI, database *sql.DB, client *schedclient.Client, cb *tgbotapi.CallbackQuery) {
	chatID := cb.Message.Chat.ID
	st := GetRescheduleState(chatID)
	if st == nil {
		return
	}
	sess := RequireSession(ctx, bot, database, chatID)
	if sess == nil {
		return
	}
	data := cb.Data

	switch {
	case data == resCancel:
		ClearRescheduleState(chatID)
		sendText(bot, chatID, "Перенос отменён.")

	case strings.HasPrefix(data, "res_slot:"):
		idx, _ := strconv.Atoi(strings.TrimPrefix(data, "res_slot:"))
		if idx < 0 || idx >= len(st.Slots) {
			return
		}
		st.SlotIdx = idx
		st.Step = StepReschedConfirm

		slot := st.Slots[idx]
		end, err := booking.EndTime(slot.Start, st.Course.DurationPerDayHours)
		if err != nil {
			sendText(bot, chatID, "❌ "+err.Error())
			return
		}
		text := fmt.Sprintf("Перенести занятие #%d на %s, %s–%s?",
			st.Schedule.ID, uiDate(st.Date), slot.Start, hhmm(end))
		mk := tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("✅ Подтвердить", resConfirm)),
			tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("❌ Отмена", resCancel)),
		)
		resReplace(bot, chatID, st, text, mk)

	case data == resConfirm:
		submitReschedule(ctx, bot, database, client, sess, chatID, st)
	}
}

func requestRescheduleSlots(ctx context.Context, bot *tgbotapi.BotAPI, client *schedclient.Client, sess *schedclient.Session, chatID int64, st *RescheduleState) {
	q := schedclient.SlotQuery{
		InstructorID:      st.Schedule.InstructorID,
		VehicleNumber:     st.Schedule.VehicleNumber,
		Date:              st.Date,
		SlotDurationHours: st.Course.DurationPerDayHours,
		CourseID:          st.Schedule.CourseID,
		IsPickAndDrop:     st.Schedule.PickAndDrop,
	}
	if err := q.Validate(); err != nil {
		sendText(bot, chatID, "❌ "+err.Error())
		return
	}
	if !fsmutil.SetPending(chatID, "resched:slots") {
		sendText(bot, chatID, "⏳ Запрос уже выполняется.")
		return
	}
	resReplace(bot, chatID, st, "⏳ Ищу свободное время…", resCancelRow())

	seq := slotSeq.Next(chatID)
	go func() {
		defer fsmutil.ClearPending(chatID, "resched:slots")
		slots, err := client.AvailableSlots(ctx, sess, q)
		if err != nil {
			observability.CaptureErr(err)
		}
		fsmutil.Chats.Do(chatID, func() {
			if !slotSeq.IsCurrent(chatID, seq) {
				metrics.StaleSlotResponses.Inc()
				return
			}
			if GetRescheduleState(chatID) != st {
				return
			}
			if err != nil {
				// занятие и дата остаются в состоянии: достаточно ввести
				// дату ещё раз
				st.Step = StepReschedDate
				resReplace(bot, chatID, st, "❌ "+err.Error()+"\nВведите другую дату:", resCancelRow())
				return
			}
			st.Slots = slots
			if len(slots) == 0 {
				st.Step = StepReschedDate
				resReplace(bot, chatID, st, "Свободных слотов нет. Введите другую дату:", resCancelRow())
				return
			}
			var rows [][]tgbotapi.InlineKeyboardButton
			for i, s := range slots {
				rows = append(rows, tgbotapi.NewInlineKeyboardRow(
					tgbotapi.NewInlineKeyboardButtonData(s.Label(), fmt.Sprintf("res_slot:%d", i)),
				))
			}
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("❌ Отмена", resCancel)))
			resReplace(bot, chatID, st, "Выберите новое время:", tgbotapi.NewInlineKeyboardMarkup(rows...))
		})
	}()
}

func submitReschedule(ctx context.Context, bot *tgbotapi.BotAPI, database *sql.DB, client *schedclient.Client, sess *schedclient.Session, chatID int64, st *RescheduleState) {
	slot := st.Slots[st.SlotIdx]
	start := slot.StartHHMMSS()
	end, err := booking.EndTime(start, st.Course.DurationPerDayHours)
	if err != nil {
		sendText(bot, chatID, "❌ "+err.Error())
		return
	}

	// снимок параметров до горутины: состояние дальше может измениться
	scheduleID := st.Schedule.ID
	customerID := st.Schedule.CustomerID
	date := st.Date

	pendingKey := "resched:" + strconv.FormatInt(scheduleID, 10)
	if !fsmutil.SetPending(chatID, pendingKey) {
		sendText(bot, chatID, "⏳ Перенос уже отправляется.")
		return
	}
	sendText(bot, chatID, "⏳ Переношу занятие…")

	go func() {
		defer fsmutil.ClearPending(chatID, pendingKey)
		if err := client.Reschedule(ctx, sess, scheduleID, date, start, end); err != nil {
			observability.CaptureErr(err)
			sendText(bot, chatID, "❌ "+err.Error())
			return
		}
		ClearRescheduleState(chatID)
		RefreshSchedules(ctx, bot, database, client, chatID, sess, customerID, "🔁 Занятие перенесено.")
	}()
}

func resCancelRow() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("❌ Отмена", resCancel)),
	)
}

func resReplace(bot *tgbotapi.BotAPI, chatID int64, st *RescheduleState, text string, mk tgbotapi.InlineKeyboardMarkup) {
	if st.MessageID != 0 {
		edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, st.MessageID, text, mk)
		if _, err := tg.Send(bot, edit); err == nil {
			return
		}
	}
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = mk
	m, err := tg.Send(bot, msg)
	if err != nil {
		metrics.HandlerErrors.Inc()
		return
	}
	st.MessageID = m.MessageID
}
