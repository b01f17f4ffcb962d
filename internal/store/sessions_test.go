//go:build testutil
// +build testutil

package store_test

import (
	"context"
	"testing"

	"github.com/avdeevsm/driving-school-bot/internal/models"
	"github.com/avdeevsm/driving-school-bot/internal/store"
	"github.com/avdeevsm/driving-school-bot/internal/testutil/testdb"
)

func TestSessionsRoundTrip(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h, err := testdb.Start(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	if s, err := store.GetSession(ctx, h.DB, 100); err != nil || s != nil {
		t.Fatalf("незалогиненный чат: %v, %v", s, err)
	}

	sess := models.Session{ChatID: 100, CustomerID: 42, Role: models.RoleUser, Token: "tok-1", IsActive: true}
	if err := store.SaveSession(ctx, h.DB, sess); err != nil {
		t.Fatal(err)
	}

	got, err := store.GetSession(ctx, h.DB, 100)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || got.CustomerID != 42 || got.Role != models.RoleUser || got.Token != "tok-1" || !got.IsActive {
		t.Fatalf("сессия прочиталась неверно: %+v", got)
	}

	// повторный логин обновляет токен и роль
	sess.Token = "tok-2"
	sess.Role = models.RoleAdmin
	if err := store.SaveSession(ctx, h.DB, sess); err != nil {
		t.Fatal(err)
	}
	got, _ = store.GetSession(ctx, h.DB, 100)
	if got.Token != "tok-2" || got.Role != models.RoleAdmin {
		t.Fatalf("повторный логин не обновил сессию: %+v", got)
	}

	// после каскадной отмены сверка переводит флаг в false
	if err := store.SetActive(ctx, h.DB, 100, false); err != nil {
		t.Fatal(err)
	}
	got, _ = store.GetSession(ctx, h.DB, 100)
	if got.IsActive {
		t.Fatal("флаг active должен стать false")
	}

	// деактивация по customerId накрывает все чаты клиента
	if err := store.SaveSession(ctx, h.DB, models.Session{ChatID: 101, CustomerID: 42, Role: models.RoleUser, Token: "tok-3", IsActive: true}); err != nil {
		t.Fatal(err)
	}
	if err := store.SetActiveByCustomer(ctx, h.DB, 42, false); err != nil {
		t.Fatal(err)
	}
	all, err := store.ListSessions(ctx, h.DB)
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range all {
		if s.CustomerID == 42 && s.IsActive {
			t.Fatalf("чат %d клиента 42 остался активным", s.ChatID)
		}
	}

	if err := store.DeleteSession(ctx, h.DB, 100); err != nil {
		t.Fatal(err)
	}
	if s, _ := store.GetSession(ctx, h.DB, 100); s != nil {
		t.Fatalf("сессия не удалилась: %+v", s)
	}
}
