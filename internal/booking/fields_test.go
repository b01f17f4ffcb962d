package booking

import "testing"

func TestInvalidatedFields(t *testing.T) {
	cases := []struct {
		changed Field
		cleared []Field
	}{
		{FieldCourse, []Field{FieldVehicle, FieldDate, FieldTime}},
		{FieldVehicle, []Field{FieldTime}},
		{FieldInstructor, []Field{FieldTime}},
		{FieldDate, []Field{FieldTime}},
		{FieldTime, nil},
	}
	for _, c := range cases {
		got := InvalidatedFields(c.changed)
		if len(got) != len(c.cleared) {
			t.Fatalf("%s: сбрасывается %v, ожидали %v", c.changed, got, c.cleared)
		}
		for _, f := range c.cleared {
			if !got[f] {
				t.Fatalf("%s: поле %s должно сбрасываться", c.changed, f)
			}
		}
	}
}

func TestSelectionApplyCourseClearsDownstream(t *testing.T) {
	sel := &Selection{CourseID: 1, VehicleNumber: "А123ВС", InstructorID: 7, Date: "2025-10-01", Time: "15:00:00"}
	sel.Apply(FieldCourse, func(s *Selection) { s.CourseID = 2 })

	if sel.CourseID != 2 {
		t.Fatalf("курс не применился: %+v", sel)
	}
	if sel.VehicleNumber != "" || sel.Date != "" || sel.Time != "" {
		t.Fatalf("смена курса обязана сбросить автомобиль, дату и время: %+v", sel)
	}
	if sel.InstructorID != 7 {
		t.Fatalf("инструктор сбрасываться не должен: %+v", sel)
	}
}

func TestSelectionApplyClearsStaleTime(t *testing.T) {
	for _, f := range []Field{FieldVehicle, FieldInstructor, FieldDate} {
		sel := &Selection{CourseID: 1, VehicleNumber: "А123ВС", InstructorID: 7, Date: "2025-10-01", Time: "15:00:00"}
		sel.Apply(f, func(s *Selection) {})
		if sel.Time != "" {
			t.Fatalf("смена %s обязана сбросить время", f)
		}
	}
}

func TestSelectionReadyForSlots(t *testing.T) {
	sel := &Selection{CourseID: 1, VehicleNumber: "А123ВС", InstructorID: 7}
	if sel.ReadyForSlots() {
		t.Fatal("без даты слоты запрашивать рано")
	}
	sel.Date = "2025-10-01"
	if !sel.ReadyForSlots() {
		t.Fatal("все четыре поля заполнены — пора запрашивать слоты")
	}
}
