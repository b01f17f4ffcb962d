package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/avdeevsm/driving-school-bot/internal/booking"
	"github.com/avdeevsm/driving-school-bot/internal/bot/shared/fsmutil"
	"github.com/avdeevsm/driving-school-bot/internal/models"
	"github.com/avdeevsm/driving-school-bot/internal/schedclient"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// newTestBot — Bot API поверх фейкового сервера Telegram: getMe отвечает
// ботом, остальные методы — пустым сообщением.
func newTestBot(t *testing.T) *tgbotapi.BotAPI {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if strings.HasSuffix(r.URL.Path, "/getMe") {
			fmt.Fprint(w, `{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"bot","username":"driving_test_bot"}}`)
			return
		}
		fmt.Fprint(w, `{"ok":true,"result":{"message_id":1,"chat":{"id":1,"type":"private"},"date":1,"text":"ok"}}`)
	}))
	t.Cleanup(srv.Close)

	bot, err := tgbotapi.NewBotAPIWithAPIEndpoint("TEST", srv.URL+"/bot%s/%s")
	if err != nil {
		t.Fatalf("тестовый бот: %v", err)
	}
	return bot
}

func brokenBackend(t *testing.T) *schedclient.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)
	return schedclient.New(srv.URL)
}

func waitForStep(t *testing.T, chatID int64, get func() int, want int) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		var step int
		fsmutil.Chats.Do(chatID, func() { step = get() })
		if step == want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("шаг %d так и не наступил", want)
}

// При ошибке слот-запроса сценарий записи возвращается к вводу даты:
// выбранные поля сохраняются, тупика с одной кнопкой «Отмена» нет.
func TestEnrollSlotFetchErrorReturnsToDateStep(t *testing.T) {
	bot := newTestBot(t)
	client := brokenBackend(t)
	sess := &schedclient.Session{Token: "t", Role: models.RoleUser}

	chatID := int64(777001)
	st := &EnrollState{
		Step:   StepEnrollSlots,
		Course: &models.Course{ID: 1, DurationPerDayHours: 2},
		Sel: booking.Selection{
			CourseID:      1,
			VehicleNumber: "А123ВС",
			InstructorID:  5,
			Date:          "2026-09-01",
		},
	}
	setEnrollState(chatID, st)
	defer ClearEnrollState(chatID)

	requestSlots(context.Background(), bot, client, sess, chatID, st)

	waitForStep(t, chatID, func() int { return st.Step }, StepEnrollDate)

	fsmutil.Chats.Do(chatID, func() {
		if st.Sel.CourseID != 1 || st.Sel.VehicleNumber != "А123ВС" || st.Sel.Date != "2026-09-01" {
			t.Errorf("после ошибки выбранные поля должны сохраниться: %+v", st.Sel)
		}
	})
}

// То же для переноса занятия: после ошибки достаточно ввести дату заново.
func TestRescheduleSlotFetchErrorReturnsToDateStep(t *testing.T) {
	bot := newTestBot(t)
	client := brokenBackend(t)
	sess := &schedclient.Session{Token: "t", Role: models.RoleUser}

	chatID := int64(777002)
	st := &RescheduleState{
		Step: StepReschedSlots,
		Schedule: models.Schedule{
			ID: 3, CustomerID: 42, CourseID: 1,
			VehicleNumber: "А123ВС", InstructorID: 5, PickAndDrop: false,
		},
		Course: &models.Course{ID: 1, DurationPerDayHours: 2},
		Date:   "2026-09-01",
	}
	setRescheduleState(chatID, st)
	defer ClearRescheduleState(chatID)

	requestRescheduleSlots(context.Background(), bot, client, sess, chatID, st)

	waitForStep(t, chatID, func() int { return st.Step }, StepReschedDate)
}
