package handlers

import (
	"strings"
	"testing"

	"github.com/avdeevsm/driving-school-bot/internal/models"
)

func TestUIDateRoundTrip(t *testing.T) {
	d, err := parseDate("01.09.2026")
	if err != nil {
		t.Fatalf("parseDate: %v", err)
	}
	if got := wireDate(d); got != "2026-09-01" {
		t.Errorf("wireDate = %q, ожидали 2026-09-01", got)
	}
	if got := uiDate("2026-09-01"); got != "01.09.2026" {
		t.Errorf("uiDate = %q, ожидали 01.09.2026", got)
	}
	// нераспарсенное отдаём как есть
	if got := uiDate("не дата"); got != "не дата" {
		t.Errorf("uiDate(мусор) = %q", got)
	}
}

func TestScheduleLine(t *testing.T) {
	s := models.Schedule{
		ID:            7,
		CourseName:    "Курс B",
		Date:          "2026-09-01",
		StartTime:     "09:00:00",
		EndTime:       "11:00:00",
		VehicleNumber: "А123БВ77",
		Status:        models.StatusScheduled,
		PickAndDrop:   true,
	}
	line := scheduleLine(s)
	for _, want := range []string{"#7", "Курс B", "01.09.2026", "09:00–11:00", "А123БВ77", "с подачей"} {
		if !strings.Contains(line, want) {
			t.Errorf("в строке %q нет %q", line, want)
		}
	}
}

func TestHHMMShortInput(t *testing.T) {
	if got := hhmm("9:00"); got != "9:00" {
		t.Errorf("hhmm не должен паниковать на коротком времени: %q", got)
	}
	if got := hhmm("09:00:00"); got != "09:00" {
		t.Errorf("hhmm = %q", got)
	}
}

func TestPaymentLinePendingUnclamped(t *testing.T) {
	p := models.Payment{ID: 3, BasePrice: 5000, ExtraCharges: 0, Discount: 4000, InitialPayment: 2000}
	line := paymentLine(p)
	// остаток может уйти в минус: итого 1000, взнос 2000
	if !strings.Contains(line, "остаток -1000") {
		t.Errorf("ожидали отрицательный остаток в строке: %q", line)
	}
}

func TestScheduleActionsKeyboardOnlyActive(t *testing.T) {
	schedules := []models.Schedule{
		{ID: 1, Status: models.StatusScheduled},
		{ID: 2, Status: models.StatusCompleted},
		{ID: 3, Status: models.StatusRescheduled},
		{ID: 4, Status: models.StatusCancelled},
	}
	kb, ok := scheduleActionsKeyboard(schedules)
	if !ok {
		t.Fatal("ожидали клавиатуру для активных занятий")
	}
	if len(kb.InlineKeyboard) != 2 {
		t.Fatalf("ожидали 2 ряда (по активным занятиям), получили %d", len(kb.InlineKeyboard))
	}

	_, ok = scheduleActionsKeyboard([]models.Schedule{{ID: 2, Status: models.StatusCompleted}})
	if ok {
		t.Error("для терминальных занятий клавиатуры быть не должно")
	}
}

func TestScheduleRows(t *testing.T) {
	rows := scheduleRows([]models.Schedule{{
		ID:             5,
		CourseName:     "Курс B",
		Date:           "2026-09-01",
		StartTime:      "09:00:00",
		EndTime:        "11:00:00",
		VehicleNumber:  "А123БВ77",
		InstructorName: "Иванов И.И.",
		Status:         models.StatusScheduled,
	}})
	if len(rows) != 1 {
		t.Fatalf("ожидали 1 строку, получили %d", len(rows))
	}
	row := rows[0]
	if row[0] != "5" || row[2] != "01.09.2026" || row[8] != "нет" {
		t.Errorf("строка экспорта: %v", row)
	}
}
