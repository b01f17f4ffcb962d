package export

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestNewWorkbookRoundTrip(t *testing.T) {
	wb, err := NewWorkbook([]SheetSpec{{
		Title:  "Занятия",
		Header: ScheduleHeader,
		Rows: [][]string{
			{"1", "Курс B", "01.09.2026", "09:00", "11:00", "А123БВ77", "Иванов И.И.", "🟢 Запланировано", "нет"},
			{"2", "Курс B", "02.09.2026", "09:00", "11:00", "А123БВ77", "Иванов И.И.", "❌ Отменено", "да"},
		},
	}})
	if err != nil {
		t.Fatalf("NewWorkbook: %v", err)
	}
	raw, err := wb.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("открытие книги: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Занятия")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("ожидали 3 строки (заголовок + 2), получили %d", len(rows))
	}
	if rows[0][0] != "№" || rows[0][5] != "Авто" {
		t.Errorf("заголовок не совпал: %v", rows[0])
	}
	if rows[2][2] != "02.09.2026" {
		t.Errorf("дата второй строки: %q", rows[2][2])
	}
}

func TestColName(t *testing.T) {
	cases := map[int]string{1: "A", 2: "B", 26: "Z", 27: "AA"}
	for n, want := range cases {
		if got := colName(n); got != want {
			t.Errorf("colName(%d) = %q, ожидали %q", n, got, want)
		}
	}
}
