package jobs

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/avdeevsm/driving-school-bot/internal/observability"
	"github.com/avdeevsm/driving-school-bot/internal/schedclient"
	"github.com/avdeevsm/driving-school-bot/internal/store"
	"github.com/avdeevsm/driving-school-bot/internal/tg"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// LessonReminders — напоминаем про завтрашние занятия. Список занятий каждый
// раз читается с бэкенда: локально расписание не хранится.
type LessonReminders struct {
	Bot    *tgbotapi.BotAPI
	DB     *sql.DB
	Client *schedclient.Client
	Loc    *time.Location
}

func (j *LessonReminders) Run(ctx context.Context) error {
	sessions, err := store.ListSessions(ctx, j.DB)
	if err != nil {
		observability.CaptureErr(err)
		return err
	}

	tomorrow := time.Now().In(j.Loc).AddDate(0, 0, 1).Format("2006-01-02")
	for _, s := range sessions {
		if !s.IsActive || s.CustomerID == 0 {
			continue
		}
		sess := &schedclient.Session{Token: s.Token, Role: s.Role, CustomerID: s.CustomerID}
		schedules, err := j.Client.ListSchedules(ctx, sess, s.CustomerID)
		if err != nil {
			observability.CaptureErr(err)
			continue
		}
		for _, sc := range schedules {
			if sc.Date != tomorrow || sc.Status.IsTerminal() {
				continue
			}
			text := fmt.Sprintf("🔔 Напоминание: завтра занятие «%s» в %s (автомобиль %s).",
				sc.CourseName, sc.StartTime, sc.VehicleNumber)
			if _, err := tg.Send(j.Bot, tgbotapi.NewMessage(s.ChatID, text)); err != nil {
				observability.CaptureErr(err)
			}
		}
	}
	return nil
}
