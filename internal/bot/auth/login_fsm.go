package auth

import (
	"context"
	"database/sql"
	"strings"
	"sync"

	"github.com/avdeevsm/driving-school-bot/internal/bot/menu"
	"github.com/avdeevsm/driving-school-bot/internal/bot/shared/fsmutil"
	"github.com/avdeevsm/driving-school-bot/internal/ctxutil"
	"github.com/avdeevsm/driving-school-bot/internal/metrics"
	"github.com/avdeevsm/driving-school-bot/internal/models"
	"github.com/avdeevsm/driving-school-bot/internal/observability"
	"github.com/avdeevsm/driving-school-bot/internal/schedclient"
	"github.com/avdeevsm/driving-school-bot/internal/store"
	"github.com/avdeevsm/driving-school-bot/internal/tg"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	StepLoginPhone = iota
	StepLoginPassword
)

// LoginState — вход по телефону и паролю. Токен выдаёт бэкенд, бот хранит
// его в привязке к чату и дальше только подставляет.
type LoginState struct {
	Step  int
	Phone string
}

var loginStates = struct {
	mu sync.Mutex
	m  map[int64]*LoginState
}{m: make(map[int64]*LoginState)}

func GetLoginState(chatID int64) *LoginState {
	loginStates.mu.Lock()
	defer loginStates.mu.Unlock()
	return loginStates.m[chatID]
}

func setLoginState(chatID int64, st *LoginState) {
	loginStates.mu.Lock()
	defer loginStates.mu.Unlock()
	loginStates.m[chatID] = st
}

func ClearLoginState(chatID int64) {
	loginStates.mu.Lock()
	defer loginStates.mu.Unlock()
	delete(loginStates.m, chatID)
}

// StartLogin — /start для неавторизованного чата.
func StartLogin(chatID int64, bot *tgbotapi.BotAPI) {
	setLoginState(chatID, &LoginState{Step: StepLoginPhone})
	send(bot, chatID, "👋 Автошкола на связи. Введите номер телефона:")
}

// HandleLoginMessage — шаги входа.
func HandleLoginMessage(ctx context.Context, chatID int64, text string, bot *tgbotapi.BotAPI, database *sql.DB, client *schedclient.Client) {
	st := GetLoginState(chatID)
	if st == nil {
		return
	}
	if fsmutil.IsCancelText(text) {
		ClearLoginState(chatID)
		send(bot, chatID, "Вход отменён. Нажмите /start, чтобы начать заново.")
		return
	}
	text = strings.TrimSpace(text)

	switch st.Step {
	case StepLoginPhone:
		if len(text) < 5 {
			send(bot, chatID, "Введите номер телефона, например +79995551122.")
			return
		}
		st.Phone = text
		st.Step = StepLoginPassword
		send(bot, chatID, "Введите пароль:")

	case StepLoginPassword:
		pendingKey := "login"
		if !fsmutil.SetPending(chatID, pendingKey) {
			send(bot, chatID, "⏳ Вход уже выполняется.")
			return
		}
		phone := st.Phone // снимок до горутины
		go func() {
			defer fsmutil.ClearPending(chatID, pendingKey)

			sess, err := client.Login(ctx, phone, text)
			if err != nil {
				observability.CaptureErr(err)
				send(bot, chatID, "❌ "+err.Error()+"\nПопробуйте ещё раз: введите пароль.")
				return
			}
			dbCtx, cancel := ctxutil.WithDBTimeout(ctx)
			err = store.SaveSession(dbCtx, database, models.Session{
				ChatID:     chatID,
				CustomerID: sess.CustomerID,
				Role:       sess.Role,
				Token:      sess.Token,
				IsActive:   true,
			})
			cancel()
			if err != nil {
				observability.CaptureErr(err)
				send(bot, chatID, "❌ Не удалось сохранить сессию. Попробуйте позже.")
				return
			}
			ClearLoginState(chatID)

			msg := tgbotapi.NewMessage(chatID, "✅ Вы вошли. Выберите действие:")
			msg.ReplyMarkup = menu.GetRoleMenu(sess.Role)
			if _, err := tg.Send(bot, msg); err != nil {
				metrics.HandlerErrors.Inc()
			}
		}()
	}
}

func send(bot *tgbotapi.BotAPI, chatID int64, text string) {
	if _, err := tg.Send(bot, tgbotapi.NewMessage(chatID, text)); err != nil {
		metrics.HandlerErrors.Inc()
	}
}
