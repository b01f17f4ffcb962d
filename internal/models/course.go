package models

// Course — курс обучения. После того как на курс есть записи,
// меняется только явным редактированием в админке бэкенда.
type Course struct {
	ID                  int64   `json:"id"`
	Name                string  `json:"name"`
	VehicleType         string  `json:"vehicleType"`
	DurationPerDayHours int     `json:"durationPerDayHours"`
	TotalDays           int     `json:"totalDays"`
	Price               float64 `json:"price"`
	IsActive            bool    `json:"isActive"`
}

// Vehicle — учебный автомобиль. Идентичность — госномер.
// В пересекающемся окне времени автомобиль обслуживает не больше одного занятия
// (следит за этим бэкенд, клиент не обходит это произвольным временем).
type Vehicle struct {
	Number      string `json:"number"`
	Name        string `json:"name"`
	VehicleType string `json:"vehicleType"`
	IsActive    bool   `json:"isActive"`
}

// Instructor — инструктор; то же ограничение «одно занятие в окне», что и у автомобиля.
type Instructor struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`
}
