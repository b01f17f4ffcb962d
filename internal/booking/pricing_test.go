package booking

import "testing"

func TestTotal(t *testing.T) {
	cases := []struct {
		base, extra, discount, want float64
	}{
		{5000, 500, 200, 5300},
		{1000, 0, 0, 1000},
		{100, 0, 500, 0}, // в минус не уходим
		{0, 0, 0, 0},
	}
	for _, c := range cases {
		if got := Total(c.base, c.extra, c.discount); got != c.want {
			t.Fatalf("Total(%v,%v,%v) = %v, ожидали %v", c.base, c.extra, c.discount, got, c.want)
		}
	}
}

func TestExtraCharge(t *testing.T) {
	cases := []struct {
		km, want float64
	}{
		{0, 0},
		{5, 0},
		{5.04, 0}, // round(0.4) = 0
		{6, 10},
		{12, 70},
		{7.55, 26}, // round(2.55*10)=26
	}
	for _, c := range cases {
		if got := ExtraCharge(c.km); got != c.want {
			t.Fatalf("ExtraCharge(%v) = %v, ожидали %v", c.km, got, c.want)
		}
	}
}

func TestPendingBalance(t *testing.T) {
	// Сценарий из договора: 5000+500-200=5300, взнос 5300 — остаток ноль.
	if got := PendingBalance(5000, 500, 200, 5300); got != 0 {
		t.Fatalf("PendingBalance = %v, ожидали 0", got)
	}
	// Переплата не обрезается — это сигнал, а не мусор.
	if got := PendingBalance(1000, 0, 0, 1500); got != -500 {
		t.Fatalf("PendingBalance = %v, ожидали -500", got)
	}
}

func TestValidateInitialPayment(t *testing.T) {
	if err := ValidateInitialPayment(5000, 500, 200, 5300); err != nil {
		t.Fatalf("взнос равен итогу — это допустимо: %v", err)
	}
	if err := ValidateInitialPayment(5000, 500, 200, 5301); err == nil {
		t.Fatal("взнос больше итога обязан отклоняться локально")
	}
}
