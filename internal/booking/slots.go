package booking

import (
	"fmt"
	"strings"
)

// Slot — структурированный вид токена слота от бэкенда.
// Токены приходят как "HH:mm", "HH:mm - HH:mm" или с пояснением в скобках,
// например "09:00 - 11:00 (Travel: 08:30 to 11:30)". Пояснение показываем
// пользователю как есть, в расчётах не участвует.
type Slot struct {
	Start string // HH:mm — каноническое начало
	End   string // HH:mm, может быть пустым
	Note  string // текст в скобках без самих скобок, может быть пустым
}

// ParseSlot разбирает токен слота. Каноническое начало — подстрока до первого
// пробельного символа; список слотов от бэкенда авторитетен, никакой
// собственной проверки пересечений клиент не делает.
func ParseSlot(token string) (Slot, error) {
	t := strings.TrimSpace(token)
	if t == "" {
		return Slot{}, fmt.Errorf("пустой токен слота")
	}

	var s Slot
	if i := strings.Index(t, "("); i >= 0 {
		note := strings.TrimSpace(t[i:])
		note = strings.TrimPrefix(note, "(")
		note = strings.TrimSuffix(note, ")")
		s.Note = strings.TrimSpace(note)
		t = strings.TrimSpace(t[:i])
	}

	fields := strings.Fields(t)
	if len(fields) == 0 {
		return Slot{}, fmt.Errorf("слот %q: нет времени начала", token)
	}
	s.Start = fields[0]
	if !validHHMM(s.Start) {
		return Slot{}, fmt.Errorf("слот %q: начало %q не в формате HH:mm", token, s.Start)
	}
	// "HH:mm - HH:mm" — конец после дефиса
	if len(fields) == 3 && fields[1] == "-" {
		if !validHHMM(fields[2]) {
			return Slot{}, fmt.Errorf("слот %q: конец %q не в формате HH:mm", token, fields[2])
		}
		s.End = fields[2]
	}
	return s, nil
}

// ParseSlots разбирает список токенов, сохраняя порядок бэкенда.
func ParseSlots(tokens []string) ([]Slot, error) {
	out := make([]Slot, 0, len(tokens))
	for _, t := range tokens {
		s, err := ParseSlot(t)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// Label — подпись для кнопки: интервал плюс пояснение, если есть.
func (s Slot) Label() string {
	label := s.Start
	if s.End != "" {
		label += " - " + s.End
	}
	if s.Note != "" {
		label += " (" + s.Note + ")"
	}
	return label
}

// StartHHMMSS — каноническое начало в проводном формате HH:mm:ss.
func (s Slot) StartHHMMSS() string {
	return s.Start + ":00"
}

func validHHMM(v string) bool {
	if len(v) != 5 || v[2] != ':' {
		return false
	}
	h := int(v[0]-'0')*10 + int(v[1]-'0')
	m := int(v[3]-'0')*10 + int(v[4]-'0')
	for _, i := range []int{0, 1, 3, 4} {
		if v[i] < '0' || v[i] > '9' {
			return false
		}
	}
	return h < 24 && m < 60
}
