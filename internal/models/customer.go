package models

// Customer — клиент автошколы. Каскадная отмена всех будущих занятий
// переводит active в false — единственная разрушительная межсущностная операция.
type Customer struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	IsActive bool   `json:"isActive"`
}

// Payment — оплата по группе занятий одной записи на курс.
// Инварианты: total = max(0, basePrice + extraCharges - discount);
// initialPayment ≤ total на момент создания.
type Payment struct {
	ID               int64   `json:"id"`
	ScheduleGroup    int64   `json:"scheduleGroup"`
	BasePrice        float64 `json:"basePrice"`
	ExtraCharges     float64 `json:"extraCharges"`
	Discount         float64 `json:"discount"`
	InitialPayment   float64 `json:"initialPayment"`
	PaymentCompleted bool    `json:"paymentCompleted"`
}
