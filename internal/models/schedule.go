package models

// ScheduleStatus — статус занятия на стороне расписания.
// SCHEDULED и RESCHEDULED считаются «активными», COMPLETED и CANCELLED — терминальные.
type ScheduleStatus string

const (
	StatusScheduled   ScheduleStatus = "SCHEDULED"
	StatusRescheduled ScheduleStatus = "RESCHEDULED"
	StatusCompleted   ScheduleStatus = "COMPLETED"
	StatusCancelled   ScheduleStatus = "CANCELLED"
)

// IsTerminal — из терминального статуса никакие переходы не допускаются.
func (s ScheduleStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Schedule — одно датированное занятие: клиент + курс + инструктор + автомобиль.
// Создаётся только через запись на курс (по одному на каждый день курса),
// дальше меняется операциями переноса/смены времени/смены статуса.
type Schedule struct {
	ID            int64          `json:"id"`
	CustomerID    int64          `json:"customerId"`
	CourseID      int64          `json:"courseId"`
	VehicleNumber string         `json:"vehicleNumber"`
	InstructorID  int64          `json:"instructorId"`
	Date          string         `json:"date"`      // YYYY-MM-DD
	StartTime     string         `json:"startTime"` // HH:mm:ss
	EndTime       string         `json:"endTime"`   // HH:mm:ss
	Status        ScheduleStatus `json:"status"`
	PickAndDrop   bool           `json:"pickAndDrop"`

	// Справочные поля, которые бэкенд подкладывает в списки (могут быть пустыми).
	CourseName     string `json:"courseName,omitempty"`
	InstructorName string `json:"instructorName,omitempty"`
	CustomerName   string `json:"customerName,omitempty"`
}
