package booking

// Field — поля выбора в сценарии записи/переноса занятия.
type Field string

const (
	FieldCourse     Field = "course"
	FieldVehicle    Field = "vehicle"
	FieldInstructor Field = "instructor"
	FieldDate       Field = "date"
	FieldTime       Field = "time"
)

// invalidated — направленный граф зависимостей между полями.
// Смена курса меняет тип ТС, поэтому сбрасывает автомобиль, дату и время;
// смена автомобиля/инструктора/даты сбрасывает только время.
var invalidated = map[Field][]Field{
	FieldCourse:     {FieldVehicle, FieldDate, FieldTime},
	FieldVehicle:    {FieldTime},
	FieldInstructor: {FieldTime},
	FieldDate:       {FieldTime},
	FieldTime:       {},
}

// InvalidatedFields возвращает множество полей, которые нужно очистить
// ДО применения нового значения changed. Гарантирует инвариант: время не
// переживает смену ресурса или даты, под которые оно подбиралось.
func InvalidatedFields(changed Field) map[Field]bool {
	out := make(map[Field]bool, len(invalidated[changed]))
	for _, f := range invalidated[changed] {
		out[f] = true
	}
	return out
}

// Selection — текущий выбор пользователя в сценарии записи.
type Selection struct {
	CourseID      int64
	VehicleNumber string
	InstructorID  int64
	Date          string // YYYY-MM-DD
	Time          string // HH:mm:ss, каноническое начало выбранного слота
}

// Apply очищает зависимые поля и записывает новое значение.
// Значение передаётся сеттером, чтобы очистка всегда шла первой.
func (s *Selection) Apply(changed Field, set func(*Selection)) {
	for f := range InvalidatedFields(changed) {
		s.clear(f)
	}
	set(s)
}

func (s *Selection) clear(f Field) {
	switch f {
	case FieldCourse:
		s.CourseID = 0
	case FieldVehicle:
		s.VehicleNumber = ""
	case FieldInstructor:
		s.InstructorID = 0
	case FieldDate:
		s.Date = ""
	case FieldTime:
		s.Time = ""
	}
}

// ReadyForSlots — все четыре обязательных поля заполнены, значит можно
// запрашивать слоты у бэкенда (время ещё не выбрано — его и подбираем).
func (s *Selection) ReadyForSlots() bool {
	return s.CourseID != 0 && s.VehicleNumber != "" && s.InstructorID != 0 && s.Date != ""
}
