package booking

import (
	"strings"
	"testing"

	"github.com/avdeevsm/driving-school-bot/internal/models"
)

func TestCanApply(t *testing.T) {
	active := []models.ScheduleStatus{models.StatusScheduled, models.StatusRescheduled}
	terminal := []models.ScheduleStatus{models.StatusCompleted, models.StatusCancelled}

	for _, op := range []Op{OpComplete, OpReschedule, OpCancel, OpBulkTime} {
		for _, s := range active {
			if !CanApply(op, s) {
				t.Fatalf("%s из %s должна быть разрешена", op, s)
			}
		}
		for _, s := range terminal {
			if CanApply(op, s) {
				t.Fatalf("%s из терминального %s должна быть запрещена", op, s)
			}
		}
	}
}

func TestEnsureMutableNamesStatus(t *testing.T) {
	err := EnsureMutable(OpCancel, models.StatusCompleted)
	if err == nil {
		t.Fatal("отмена завершённого занятия обязана отклоняться до сетевого вызова")
	}
	if !strings.Contains(err.Error(), string(models.StatusCompleted)) {
		t.Fatalf("ошибка должна называть текущий статус: %v", err)
	}
}

func TestResultStatus(t *testing.T) {
	if got := ResultStatus(OpComplete, models.StatusScheduled); got != models.StatusCompleted {
		t.Fatalf("complete → %s", got)
	}
	if got := ResultStatus(OpReschedule, models.StatusScheduled); got != models.StatusRescheduled {
		t.Fatalf("reschedule → %s", got)
	}
	if got := ResultStatus(OpCancel, models.StatusRescheduled); got != models.StatusCancelled {
		t.Fatalf("cancel → %s", got)
	}
	// массовая смена времени статус не меняет
	if got := ResultStatus(OpBulkTime, models.StatusRescheduled); got != models.StatusRescheduled {
		t.Fatalf("bulk_time → %s", got)
	}
}

func TestIsTerminal(t *testing.T) {
	if models.StatusScheduled.IsTerminal() || models.StatusRescheduled.IsTerminal() {
		t.Fatal("активные статусы не терминальные")
	}
	if !models.StatusCompleted.IsTerminal() || !models.StatusCancelled.IsTerminal() {
		t.Fatal("COMPLETED и CANCELLED терминальные")
	}
}
