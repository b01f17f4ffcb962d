package handlers

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/avdeevsm/driving-school-bot/internal/booking"
	"github.com/avdeevsm/driving-school-bot/internal/bot/shared/fsmutil"
	"github.com/avdeevsm/driving-school-bot/internal/models"
	"github.com/avdeevsm/driving-school-bot/internal/observability"
	"github.com/avdeevsm/driving-school-bot/internal/schedclient"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	StepAdjustCustomer = iota
	StepAdjustPayment
	StepAdjustBase
	StepAdjustExtra
	StepAdjustDiscount
	StepAdjustConfirm
)

// PriceAdjustState — корректировка цены после создания оплаты.
// Первый взнос не трогаем: остаток бэкенд пересчитывает от сохранённого.
type PriceAdjustState struct {
	Step       int
	CustomerID int64
	Payment    models.Payment

	NewBase     float64
	NewExtra    float64
	NewDiscount float64
}

var adjustStates = struct {
	mu sync.Mutex
	m  map[int64]*PriceAdjustState
}{m: make(map[int64]*PriceAdjustState)}

func GetPriceAdjustState(chatID int64) *PriceAdjustState {
	adjustStates.mu.Lock()
	defer adjustStates.mu.Unlock()
	return adjustStates.m[chatID]
}

func setPriceAdjustState(chatID int64, st *PriceAdjustState) {
	adjustStates.mu.Lock()
	defer adjustStates.mu.Unlock()
	adjustStates.m[chatID] = st
}

func ClearPriceAdjustState(chatID int64) {
	adjustStates.mu.Lock()
	defer adjustStates.mu.Unlock()
	delete(adjustStates.m, chatID)
}

// StartPriceAdjustFSM — «Корректировка цены» (админ).
func StartPriceAdjustFSM(ctx context.Context, bot *tgbotapi.BotAPI, database *sql.DB, client *schedclient.Client, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	sess := RequireAdmin(ctx, bot, database, chatID)
	if sess == nil {
		return
	}
	ClearPriceAdjustState(chatID)
	setPriceAdjustState(chatID, &PriceAdjustState{Step: StepAdjustCustomer})
	askCustomer(ctx, bot, client, sess, chatID,
		"Выберите клиента для корректировки цены:", "pad_cust:", "pad_cancel")
}

// HandlePriceAdjustText — ввод новых сумм.
func HandlePriceAdjustText(ctx context.Context, bot *tgbotapi.BotAPI, database *sql.DB, client *schedclient.Client, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	st := GetPriceAdjustState(chatID)
	if st == nil {
		return
	}
	if fsmutil.IsCancelText(msg.Text) {
		ClearPriceAdjustState(chatID)
		sendText(bot, chatID, "Отменено.")
		return
	}
	if RequireAdmin(ctx, bot, database, chatID) == nil {
		return
	}
	v, err := parseAmount(strings.TrimSpace(msg.Text))
	if err != nil || v < 0 {
		sendText(bot, chatID, "Введите неотрицательную сумму, например 5000.")
		return
	}

	switch st.Step {
	case StepAdjustBase:
		st.NewBase = v
		st.Step = StepAdjustExtra
		sendText(bot, chatID, fmt.Sprintf("Новая доплата за подачу (сейчас %.0f):", st.Payment.ExtraCharges))
	case StepAdjustExtra:
		st.NewExtra = v
		st.Step = StepAdjustDiscount
		sendText(bot, chatID, fmt.Sprintf("Новая скидка (сейчас %.0f):", st.Payment.Discount))
	case StepAdjustDiscount:
		st.NewDiscount = v
		st.Step = StepAdjustConfirm
		sendAdjustPreview(bot, chatID, st)
	}
}

// HandlePriceAdjustCallback — выбор клиента, оплаты и подтверждение.
func HandlePriceAdjustCallback(ctx context.Context, bot *tgbotapi.BotAPI, database *sql.DB, client *schedclient.Client, cb *tgbotapi.CallbackQuery) {
	chatID := cb.Message.Chat.ID
	sess := RequireAdmin(ctx, bot, database, chatID)
	if sess == nil {
		return
	}
	st := GetPriceAdjustState(chatID)
	data := cb.Data

	if data == "pad_cancel" {
		fsmutil.DisableMarkup(bot, chatID, cb.Message.MessageID)
		ClearPriceAdjustState(chatID)
		sendText(bot, chatID, "Отменено.")
		return
	}
	if st == nil {
		return
	}

	switch {
	case strings.HasPrefix(data, "pad_cust:") && st.Step == StepAdjustCustomer:
		customerID, err := strconv.ParseInt(strings.TrimPrefix(data, "pad_cust:"), 10, 64)
		if err != nil {
			return
		}
		fsmutil.DisableMarkup(bot, chatID, cb.Message.MessageID)
		st.CustomerID = customerID
		askPayment(ctx, bot, client, sess, chatID, st)

	case strings.HasPrefix(data, "pad_pay:") && st.Step == StepAdjustPayment:
		paymentID, err := strconv.ParseInt(strings.TrimPrefix(data, "pad_pay:"), 10, 64)
		if err != nil {
			return
		}
		payments, err := client.ListPayments(ctx, sess, st.CustomerID)
		if err != nil {
			observability.CaptureErr(err)
			sendText(bot, chatID, "❌ "+err.Error())
			return
		}
		for i := range payments {
			if payments[i].ID == paymentID {
				st.Payment = payments[i]
			}
		}
		if st.Payment.ID == 0 {
			sendText(bot, chatID, "⚠️ Оплата не найдена. Начните заново.")
			ClearPriceAdjustState(chatID)
			return
		}
		fsmutil.DisableMarkup(bot, chatID, cb.Message.MessageID)
		st.Step = StepAdjustBase
		sendText(bot, chatID, fmt.Sprintf("Новая базовая цена (сейчас %.0f):", st.Payment.BasePrice))

	case data == "pad_confirm" && st.Step == StepAdjustConfirm:
		fsmutil.DisableMarkup(bot, chatID, cb.Message.MessageID)
		submitPriceAdjust(ctx, bot, database, client, sess, chatID, st)
	}
}

func askPayment(ctx context.Context, bot *tgbotapi.BotAPI, client *schedclient.Client,
	sess *schedclient.Session, chatID int64, st *PriceAdjustState) {

	payments, err := client.ListPayments(ctx, sess, st.CustomerID)
	if err != nil {
		observability.CaptureErr(err)
		sendText(bot, chatID, "❌ "+err.Error())
		return
	}
	if len(payments) == 0 {
		sendText(bot, chatID, "У клиента нет оплат.")
		ClearPriceAdjustState(chatID)
		return
	}
	st.Step = StepAdjustPayment

	var b strings.Builder
	b.WriteString("Оплаты клиента:\n")
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, p := range payments {
		b.WriteString(paymentLine(p))
		b.WriteString("\n")
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("Оплата #%d", p.ID), fmt.Sprintf("pad_pay:%d", p.ID)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("❌ Отмена", "pad_cancel"),
	))
	msg := tgbotapi.NewMessage(chatID, b.String())
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	sendMsg(bot, msg)
}

func sendAdjustPreview(bot *tgbotapi.BotAPI, chatID int64, st *PriceAdjustState) {
	total := booking.Total(st.NewBase, st.NewExtra, st.NewDiscount)
	pending := booking.PendingBalance(st.NewBase, st.NewExtra, st.NewDiscount, st.Payment.InitialPayment)

	var b strings.Builder
	fmt.Fprintf(&b, "Оплата #%d, новые суммы:\n", st.Payment.ID)
	fmt.Fprintf(&b, "База: %.0f → %.0f\n", st.Payment.BasePrice, st.NewBase)
	fmt.Fprintf(&b, "Доплата: %.0f → %.0f\n", st.Payment.ExtraCharges, st.NewExtra)
	fmt.Fprintf(&b, "Скидка: %.0f → %.0f\n", st.Payment.Discount, st.NewDiscount)
	fmt.Fprintf(&b, "Итого: %.0f\n", total)
	fmt.Fprintf(&b, "Остаток (взнос %.0f): %.0f", st.Payment.InitialPayment, pending)
	if pending < 0 {
		b.WriteString(" ⚠️ переплата")
	}

	msg := tgbotapi.NewMessage(chatID, b.String())
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("✅ Применить", "pad_confirm"),
		tgbotapi.NewInlineKeyboardButtonData("❌ Отмена", "pad_cancel"),
	))
	sendMsg(bot, msg)
}

func submitPriceAdjust(ctx context.Context, bot *tgbotapi.BotAPI, database *sql.DB, client *schedclient.Client,
	sess *schedclient.Session, chatID int64, st *PriceAdjustState) {

	// снимок параметров до горутины
	paymentID := st.Payment.ID
	customerID := st.CustomerID
	newBase, newExtra, newDiscount := st.NewBase, st.NewExtra, st.NewDiscount

	pendingKey := "adjust_price:" + strconv.FormatInt(paymentID, 10)
	if !fsmutil.SetPending(chatID, pendingKey) {
		sendText(bot, chatID, "⏳ Операция уже выполняется.")
		return
	}
	go func() {
		defer fsmutil.ClearPending(chatID, pendingKey)
		defer ClearPriceAdjustState(chatID)

		if err := client.AdjustPrice(ctx, sess, paymentID, newBase, newExtra, newDiscount); err != nil {
			observability.CaptureErr(err)
			sendText(bot, chatID, "❌ "+err.Error())
			return
		}
		// сверка: суммы показываем только те, что вернул бэкенд
		payments, err := client.ListPayments(ctx, sess, customerID)
		if err != nil {
			observability.CaptureErr(err)
			sendText(bot, chatID, "💰 Цена скорректирована.\n⚠️ Не удалось обновить список оплат: "+err.Error())
			return
		}
		var b strings.Builder
		b.WriteString("💰 Цена скорректирована.\n\nОплаты клиента:\n")
		for _, p := range payments {
			b.WriteString(paymentLine(p))
			b.WriteString("\n")
		}
		sendText(bot, chatID, b.String())
	}()
}

// paymentLine — строка оплаты в списках; остаток считаем локально от
// сохранённого взноса, без зажима в ноль.
func paymentLine(p models.Payment) string {
	total := booking.Total(p.BasePrice, p.ExtraCharges, p.Discount)
	pending := booking.PendingBalance(p.BasePrice, p.ExtraCharges, p.Discount, p.InitialPayment)
	line := fmt.Sprintf("#%d: база %.0f, доплата %.0f, скидка %.0f, итого %.0f, взнос %.0f, остаток %.0f",
		p.ID, p.BasePrice, p.ExtraCharges, p.Discount, total, p.InitialPayment, pending)
	if p.PaymentCompleted {
		line += " ✅"
	}
	return line
}
