package booking

import (
	"fmt"
	"strconv"
	"strings"
)

// EndTime считает конец занятия: начало плюс длительность курса в часах,
// часы заворачиваются по модулю 24 (дата при этом не меняется — так считает
// и бэкенд). start принимает "HH:mm" или "HH:mm:ss", возвращает "HH:mm:ss".
func EndTime(start string, durationHours int) (string, error) {
	h, m, s, err := splitTime(start)
	if err != nil {
		return "", err
	}
	h = (h + durationHours) % 24
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s), nil
}

// ToHHMMSS нормализует "HH:mm" к проводному "HH:mm:ss".
func ToHHMMSS(t string) (string, error) {
	h, m, s, err := splitTime(t)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s), nil
}

func splitTime(t string) (h, m, s int, err error) {
	parts := strings.Split(strings.TrimSpace(t), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("время %q не в формате HH:mm[:ss]", t)
	}
	h, err = strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, 0, 0, fmt.Errorf("время %q: неверный час", t)
	}
	m, err = strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, 0, 0, fmt.Errorf("время %q: неверные минуты", t)
	}
	if len(parts) == 3 {
		s, err = strconv.Atoi(parts[2])
		if err != nil || s < 0 || s > 59 {
			return 0, 0, 0, fmt.Errorf("время %q: неверные секунды", t)
		}
	}
	return h, m, s, nil
}
