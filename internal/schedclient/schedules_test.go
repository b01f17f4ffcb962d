package schedclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/avdeevsm/driving-school-bot/internal/models"
)

func TestReschedulePassesWireFormats(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/schedules/cancel-reschedule/12" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("newDate") != "2025-10-03" || q.Get("newStartTime") != "15:00:00" || q.Get("newEndTime") != "17:00:00" {
			t.Errorf("параметры: %v", q)
		}
	}))
	defer srv.Close()

	c := New(srv.URL)
	if err := c.Reschedule(context.Background(), testSession(t, "USER", 1), 12, "2025-10-03", "15:00:00", "17:00:00"); err != nil {
		t.Fatal(err)
	}
}

func TestUpdateStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/schedules/update-status/7" || r.URL.Query().Get("status") != "COMPLETED" {
			t.Errorf("%s %v", r.URL.Path, r.URL.Query())
		}
	}))
	defer srv.Close()

	c := New(srv.URL)
	if err := c.UpdateStatus(context.Background(), testSession(t, "USER", 1), 7, models.StatusCompleted); err != nil {
		t.Fatal(err)
	}
}

func TestBulkUpdateTime(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/schedules/update-time/all" {
			t.Errorf("путь %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("vehicleNumber") != "А123ВС" || q.Get("newStartTime") != "08:00:00" || q.Get("isPickAndDrop") != "false" {
			t.Errorf("параметры: %v", q)
		}
	}))
	defer srv.Close()

	c := New(srv.URL)
	if err := c.BulkUpdateTime(context.Background(), testSession(t, "ADMIN", 0), "А123ВС", "08:00:00", false); err != nil {
		t.Fatal(err)
	}
}

func TestCancelAllUpcomingSingleRequest(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		if r.URL.Path != "/schedules/cancel-all-upcoming" || r.URL.Query().Get("customerId") != "42" {
			t.Errorf("%s %v", r.URL.Path, r.URL.Query())
		}
	}))
	defer srv.Close()

	c := New(srv.URL)
	if err := c.CancelAllUpcoming(context.Background(), testSession(t, "ADMIN", 0), 42); err != nil {
		t.Fatal(err)
	}
	if atomic.LoadInt32(&hits) != 1 {
		t.Fatalf("ровно один запрос, было %d", hits)
	}
}

func TestEnrollOverpaymentNoRequest(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Enroll(context.Background(), testSession(t, "USER", 1), EnrollRequest{
		CustomerName: "Иванов", CourseID: 1, VehicleNumber: "А123ВС", InstructorID: 7,
		StartDate: "2025-10-01", StartTime: "15:00:00",
		BasePrice: 5000, ExtraCharges: 500, Discount: 200, InitialPayment: 6000,
	})
	if err == nil {
		t.Fatal("переплата обязана отклоняться локально")
	}
	if atomic.LoadInt32(&hits) != 0 {
		t.Fatalf("сетевых вызовов быть не должно, было %d", hits)
	}
}

func TestAdjustPriceBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/payments/9/adjust-price" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
	}))
	defer srv.Close()

	c := New(srv.URL)
	if err := c.AdjustPrice(context.Background(), testSession(t, "ADMIN", 0), 9, 5500, 0, 300); err != nil {
		t.Fatal(err)
	}
}
