package schedclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/avdeevsm/driving-school-bot/internal/booking"
)

// SlotQuery — параметры запроса свободных слотов. Пять полей обязательны;
// без любого из них запрос не уходит вовсе.
type SlotQuery struct {
	InstructorID      int64
	VehicleNumber     string
	Date              string // YYYY-MM-DD
	SlotDurationHours int
	CourseID          int64
	IsPickAndDrop     bool
}

// Validate — предусловие слот-запроса; ошибка показывается пользователю.
func (q SlotQuery) Validate() error {
	switch {
	case q.InstructorID == 0:
		return fmt.Errorf("не выбран инструктор")
	case q.VehicleNumber == "":
		return fmt.Errorf("не выбран автомобиль")
	case q.Date == "":
		return fmt.Errorf("не выбрана дата")
	case q.SlotDurationHours <= 0:
		return fmt.Errorf("не определена длительность занятия")
	case q.CourseID == 0:
		return fmt.Errorf("не выбран курс")
	}
	return nil
}

// AvailableSlots — авторитетный список слотов для набора ресурсов.
// Пустой список — не ошибка: подходящего времени нет, запись недоступна.
func (c *Client) AvailableSlots(ctx context.Context, sess *Session, q SlotQuery) ([]booking.Slot, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	v := url.Values{}
	v.Set("instructorId", strconv.FormatInt(q.InstructorID, 10))
	v.Set("vehicleNumber", q.VehicleNumber)
	v.Set("date", q.Date)
	v.Set("slotDurationHours", strconv.Itoa(q.SlotDurationHours))
	v.Set("courseId", strconv.FormatInt(q.CourseID, 10))
	v.Set("isPickAndDrop", strconv.FormatBool(q.IsPickAndDrop))

	var tokens []string
	if err := c.do(ctx, sess, "available_slots", http.MethodGet, "/schedules/available-slots", v, nil, &tokens); err != nil {
		return nil, err
	}
	return booking.ParseSlots(tokens)
}
