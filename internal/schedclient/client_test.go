package schedclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/avdeevsm/driving-school-bot/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

func testSession(t *testing.T, role string, customerID int64) *Session {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"role":       role,
		"customerId": customerID,
	})
	signed, err := tok.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatal(err)
	}
	s, err := NewSession(signed)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestSessionRoleClaim(t *testing.T) {
	s := testSession(t, "ADMIN", 42)
	if s.Role != models.RoleAdmin {
		t.Fatalf("роль из claim'а: %s", s.Role)
	}
	if s.CustomerID != 42 {
		t.Fatalf("customerId из claim'а: %d", s.CustomerID)
	}
}

func TestSessionDefaultsToUser(t *testing.T) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "x"})
	signed, _ := tok.SignedString([]byte("s"))
	s, err := NewSession(signed)
	if err != nil {
		t.Fatal(err)
	}
	if s.Role != models.RoleUser {
		t.Fatalf("без claim'а роль по умолчанию USER, получили %s", s.Role)
	}
}

func TestAvailableSlotsPreconditionNoRequest(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer srv.Close()

	c := New(srv.URL)
	sess := testSession(t, "USER", 1)

	q := SlotQuery{InstructorID: 7, VehicleNumber: "А123ВС", SlotDurationHours: 2, CourseID: 3} // нет даты
	if _, err := c.AvailableSlots(context.Background(), sess, q); err == nil {
		t.Fatal("без даты ожидали ошибку предусловия")
	}
	if atomic.LoadInt32(&hits) != 0 {
		t.Fatal("при ошибке предусловия запрос уходить не должен")
	}
}

func TestAvailableSlots(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/schedules/available-slots" {
			t.Errorf("путь %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("instructorId") != "7" || q.Get("vehicleNumber") != "А123ВС" ||
			q.Get("date") != "2025-10-01" || q.Get("slotDurationHours") != "2" ||
			q.Get("courseId") != "3" || q.Get("isPickAndDrop") != "true" {
			t.Errorf("параметры запроса: %v", q)
		}
		if got := r.Header.Get("Authorization"); len(got) < 8 || got[:7] != "Bearer " {
			t.Errorf("нет bearer-токена: %q", got)
		}
		_ = json.NewEncoder(w).Encode([]string{"09:00 - 11:00 (Travel: 08:30 to 11:30)", "15:00 - 17:00"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	sess := testSession(t, "USER", 1)
	slots, err := c.AvailableSlots(context.Background(), sess, SlotQuery{
		InstructorID: 7, VehicleNumber: "А123ВС", Date: "2025-10-01",
		SlotDurationHours: 2, CourseID: 3, IsPickAndDrop: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(slots) != 2 {
		t.Fatalf("слотов %d", len(slots))
	}
	if slots[0].Start != "09:00" || slots[0].End != "11:00" || slots[0].Note == "" {
		t.Fatalf("первый слот разобран неверно: %+v", slots[0])
	}
	if slots[0].StartHHMMSS() != "09:00:00" {
		t.Fatalf("каноническое начало: %s", slots[0].StartHHMMSS())
	}
}

func TestAvailableSlotsEmptyIsNotError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("[]"))
	}))
	defer srv.Close()

	c := New(srv.URL)
	slots, err := c.AvailableSlots(context.Background(), testSession(t, "USER", 1), SlotQuery{
		InstructorID: 7, VehicleNumber: "А123ВС", Date: "2025-10-01", SlotDurationHours: 2, CourseID: 3,
	})
	if err != nil {
		t.Fatalf("пустой список — не ошибка: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("ожидали пустой список, получили %d", len(slots))
	}
}

func TestServerMessageSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"Инструктор занят в это время"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	err := c.Cancel(context.Background(), testSession(t, "USER", 1), 5)
	if err == nil {
		t.Fatal("ожидали ошибку")
	}
	if err.Error() != "Инструктор занят в это время" {
		t.Fatalf("должно показываться message бэкенда: %q", err.Error())
	}
}

func TestGenericFallbackMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	}))
	defer srv.Close()

	c := New(srv.URL)
	err := c.Cancel(context.Background(), testSession(t, "USER", 1), 5)
	if err == nil || err.Error() != genericErr {
		t.Fatalf("ожидали общий текст, получили %v", err)
	}
}
