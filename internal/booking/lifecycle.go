package booking

import (
	"fmt"

	"github.com/avdeevsm/driving-school-bot/internal/models"
)

// Op — операция над занятием, инициируемая из бота.
type Op string

const (
	OpComplete   Op = "complete"
	OpReschedule Op = "reschedule"
	OpCancel     Op = "cancel"
	// OpBulkTime — массовая смена времени по автомобилю; применяется ко всем
	// незавершённым занятиям, статус не меняет.
	OpBulkTime Op = "bulk_time"
)

// allowedFrom — из каких статусов операция разрешена.
var allowedFrom = map[Op][]models.ScheduleStatus{
	OpComplete:   {models.StatusScheduled, models.StatusRescheduled},
	OpReschedule: {models.StatusScheduled, models.StatusRescheduled},
	OpCancel:     {models.StatusScheduled, models.StatusRescheduled},
	OpBulkTime:   {models.StatusScheduled, models.StatusRescheduled},
}

// resultStatus — статус после операции (для bulk_time статус сохраняется).
var resultStatus = map[Op]models.ScheduleStatus{
	OpComplete:   models.StatusCompleted,
	OpReschedule: models.StatusRescheduled,
	OpCancel:     models.StatusCancelled,
}

// CanApply проверяет, допустима ли операция из текущего статуса.
func CanApply(op Op, from models.ScheduleStatus) bool {
	for _, s := range allowedFrom[op] {
		if s == from {
			return true
		}
	}
	return false
}

// EnsureMutable — защита перед любым сетевым вызовом: по терминальному статусу
// возвращает ошибку с его названием, запрос при этом не отправляется.
func EnsureMutable(op Op, from models.ScheduleStatus) error {
	if CanApply(op, from) {
		return nil
	}
	return fmt.Errorf("занятие в статусе %s, операция недоступна", from)
}

// ResultStatus — целевой статус операции. Для OpBulkTime возвращает from:
// массовая смена времени статус не трогает.
func ResultStatus(op Op, from models.ScheduleStatus) models.ScheduleStatus {
	if op == OpBulkTime {
		return from
	}
	return resultStatus[op]
}
