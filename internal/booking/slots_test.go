package booking

import "testing"

func TestParseSlot(t *testing.T) {
	cases := []struct {
		token string
		start string
		end   string
		note  string
	}{
		{"15:00", "15:00", "", ""},
		{"15:00 - 16:00", "15:00", "16:00", ""},
		{"09:00 - 11:00 (Travel: 08:30 to 11:30)", "09:00", "11:00", "Travel: 08:30 to 11:30"},
		{"  07:30 - 09:30  ", "07:30", "09:30", ""},
	}
	for _, c := range cases {
		s, err := ParseSlot(c.token)
		if err != nil {
			t.Fatalf("ParseSlot(%q): %v", c.token, err)
		}
		if s.Start != c.start || s.End != c.end || s.Note != c.note {
			t.Fatalf("ParseSlot(%q) = %+v, ожидали start=%q end=%q note=%q", c.token, s, c.start, c.end, c.note)
		}
	}
}

func TestParseSlotInvalid(t *testing.T) {
	for _, token := range []string{"", "   ", "25:00", "9:00", "abcd", "(Travel: 08:30 to 11:30)"} {
		if _, err := ParseSlot(token); err == nil {
			t.Fatalf("ParseSlot(%q): ожидали ошибку", token)
		}
	}
}

func TestSlotStartHHMMSS(t *testing.T) {
	s, err := ParseSlot("15:00 - 16:00")
	if err != nil {
		t.Fatal(err)
	}
	if got := s.StartHHMMSS(); got != "15:00:00" {
		t.Fatalf("StartHHMMSS = %q, ожидали 15:00:00", got)
	}
}

func TestSlotLabel(t *testing.T) {
	s := Slot{Start: "09:00", End: "11:00", Note: "Travel: 08:30 to 11:30"}
	if got := s.Label(); got != "09:00 - 11:00 (Travel: 08:30 to 11:30)" {
		t.Fatalf("Label = %q", got)
	}
	if got := (Slot{Start: "15:00"}).Label(); got != "15:00" {
		t.Fatalf("Label = %q", got)
	}
}

func TestParseSlotsKeepsOrder(t *testing.T) {
	slots, err := ParseSlots([]string{"10:00 - 12:00", "08:00 - 10:00"})
	if err != nil {
		t.Fatal(err)
	}
	if slots[0].Start != "10:00" || slots[1].Start != "08:00" {
		t.Fatalf("порядок бэкенда нарушен: %+v", slots)
	}
}
