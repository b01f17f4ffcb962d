package booking

import (
	"fmt"
	"math"
)

// Порог бесплатной подачи: первые 5 км не тарифицируются, дальше по 10 за км.
const (
	freeDistanceKm = 5.0
	surchargePerKm = 10.0
)

// ExtraCharge — надбавка за подачу/возврат по дистанции в километрах.
func ExtraCharge(km float64) float64 {
	if km <= freeDistanceKm {
		return 0
	}
	return math.Round((km - freeDistanceKm) * surchargePerKm)
}

// Total — итог по оплате; в минус не уходит.
func Total(base, extra, discount float64) float64 {
	return math.Max(0, base+extra-discount)
}

// PendingBalance — остаток к оплате. Не обрезается: отрицательное значение
// означает переплату и должно быть показано явно, а не спрятано.
func PendingBalance(base, extra, discount, initialPayment float64) float64 {
	return Total(base, extra, discount) - initialPayment
}

// ValidateInitialPayment — локальная проверка перед записью на курс:
// первый взнос больше итога — отказ без сетевого вызова.
func ValidateInitialPayment(base, extra, discount, initialPayment float64) error {
	total := Total(base, extra, discount)
	if initialPayment > total {
		return fmt.Errorf("первый взнос %.2f больше итоговой суммы %.2f", initialPayment, total)
	}
	return nil
}
