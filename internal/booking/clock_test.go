package booking

import "testing"

func TestEndTime(t *testing.T) {
	cases := []struct {
		start string
		hours int
		want  string
	}{
		{"15:00", 2, "17:00:00"},
		{"15:00:00", 2, "17:00:00"},
		{"23:00", 2, "01:00:00"}, // заворот по модулю 24
		{"22:30:00", 3, "01:30:00"},
		{"00:00", 24, "00:00:00"},
	}
	for _, c := range cases {
		got, err := EndTime(c.start, c.hours)
		if err != nil {
			t.Fatalf("EndTime(%q,%d): %v", c.start, c.hours, err)
		}
		if got != c.want {
			t.Fatalf("EndTime(%q,%d) = %q, ожидали %q", c.start, c.hours, got, c.want)
		}
	}
}

func TestEndTimeInvalid(t *testing.T) {
	for _, start := range []string{"", "25:00", "12", "12:60", "aa:bb"} {
		if _, err := EndTime(start, 2); err == nil {
			t.Fatalf("EndTime(%q): ожидали ошибку", start)
		}
	}
}

func TestToHHMMSS(t *testing.T) {
	got, err := ToHHMMSS("09:05")
	if err != nil || got != "09:05:00" {
		t.Fatalf("ToHHMMSS = %q, %v", got, err)
	}
	got, err = ToHHMMSS("09:05:30")
	if err != nil || got != "09:05:30" {
		t.Fatalf("ToHHMMSS = %q, %v", got, err)
	}
}
