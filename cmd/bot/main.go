package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/avdeevsm/driving-school-bot/internal/app"
	"github.com/avdeevsm/driving-school-bot/internal/bot/shared/fsmutil"
	"github.com/avdeevsm/driving-school-bot/internal/config"
	"github.com/avdeevsm/driving-school-bot/internal/jobs"
	"github.com/avdeevsm/driving-school-bot/internal/logging"
	"github.com/avdeevsm/driving-school-bot/internal/metrics"
	"github.com/avdeevsm/driving-school-bot/internal/observability"
	"github.com/avdeevsm/driving-school-bot/internal/schedclient"
	"github.com/avdeevsm/driving-school-bot/internal/store"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
)

const release = "driving-school-bot@1.0.0"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Не удалось загрузить .env файл, используем переменные окружения")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Ошибка конфигурации: %v", err)
	}

	lg, err := logging.Init(cfg.LogLevel, cfg.Env)
	if err != nil {
		log.Fatalf("Ошибка инициализации логгера: %v", err)
	}
	defer lg.Closer()

	flush, err := observability.InitSentry(cfg.SentryDSN, cfg.Env, release)
	if err != nil {
		lg.Sugar.Warnw("sentry init failed", "err", err)
	}
	defer flush()

	database, err := store.Open(cfg.DatabaseURL)
	if err != nil {
		lg.Sugar.Fatalw("db open failed", "err", err)
	}
	defer database.Close()

	if err := store.Migrate(database); err != nil {
		lg.Sugar.Fatalw("migration failed", "err", err)
	}

	client := schedclient.New(cfg.APIBaseURL)

	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		lg.Sugar.Fatalw("bot init failed", "err", err)
	}
	lg.Sugar.Infow("бот запущен", "username", bot.Self.UserName)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app.StartHTTP(ctx, cfg.HTTPAddr, database)

	runner := jobs.New(ctx)
	reminders := &jobs.LessonReminders{Bot: bot, DB: database, Client: client, Loc: cfg.Location}
	runner.Every(24*time.Hour, "lesson_reminders", reminders.Run)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			lg.Sugar.Info("остановка по сигналу")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			metrics.BotUpdates.Inc()

			switch {
			case update.CallbackQuery != nil:
				cb := update.CallbackQuery
				chatID := cb.From.ID
				if cb.Message != nil {
					chatID = cb.Message.Chat.ID
				}
				go fsmutil.Chats.Do(chatID, func() {
					app.HandleCallback(ctx, bot, database, client, cb)
				})
			case update.Message != nil:
				msg := update.Message
				go fsmutil.Chats.Do(msg.Chat.ID, func() {
					app.HandleMessage(ctx, bot, database, client, msg)
				})
			}
		}
	}
}
