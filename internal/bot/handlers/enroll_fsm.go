package handlers

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/avdeevsm/driving-school-bot/internal/booking"
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
	StepEnrollName = iota
	StepEnrollPhone
	StepEnrollCourse
	StepEnrollVehicle
	StepEnrollInstructor
	StepEnrollDate
	StepEnrollPickDrop
	StepEnrollAddress
	StepEnrollSlots
	StepEnrollDiscount
	StepEnrollPayment
	StepEnrollConfirm

	enrCancel  = "enr_cancel"
	enrConfirm = "enr_confirm"
	enrRecalc  = "enr_addr_recalc"
	enrAddrOK  = "enr_addr_done"

	// дебаунс геокодирования адреса
	addressDebounce = 1000 * time.Millisecond
)

type EnrollState struct {
	Step      int
	MessageID int

	Name  string
	Phone string

	Sel         booking.Selection
	Courses     []models.Course
	Course      *models.Course
	Instructors []models.Instructor

	PickAndDrop   bool
	Address       string
	DistanceKm    float64
	DistanceKnown bool
	ExtraCharges  float64

	Discount       float64
	InitialPayment float64

	Slots   []booking.Slot
	SlotIdx int
	Deb     *booking.Debouncer
}

// Карта под мьютексом: апдейты разных чатов обрабатываются параллельно.
// Поля *EnrollState при этом защищает fsmutil.Chats — под ним работают и
// обработчики, и фоновые горутины.
var enrollStates = struct {
	mu sync.Mutex
	m  map[int64]*EnrollState
}{m: make(map[int64]*EnrollState)}

var slotSeq = booking.NewSlotFetchSeq()

func GetEnrollState(chatID int64) *EnrollState {
	enrollStates.mu.Lock()
	defer enrollStates.mu.Unlock()
	return enrollStates.m[chatID]
}

func setEnrollState(chatID int64, st *EnrollState) {
	enrollStates.mu.Lock()
	defer enrollStates.mu.Unlock()
	enrollStates.m[chatID] = st
}

func ClearEnrollState(chatID int64) {
	enrollStates.mu.Lock()
	st := enrollStates.m[chatID]
	delete(enrollStates.m, chatID)
	enrollStates.mu.Unlock()
	if st != nil && st.Deb != nil {
		st.Deb.Stop()
	}
}

// StartEnrollFSM — сценарий записи на курс.
func StartEnrollFSM(ctx context.Context, bot *tgbotapi.BotAPI, database *sql.DB, client *schedclient.Client, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	if RequireSession(ctx, bot, database, chatID) == nil {
		return
	}
	ClearEnrollState(chatID)
	st := &EnrollState{Step: StepEnrollName, Deb: booking.NewDebouncer(addressDebounce)}
	setEnrollState(chatID, st)

	mk := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("❌ Отмена", enrCancel)),
	)
	enrReplace(bot, chatID, st, "Введите ФИО ученика:", mk)
}

// HandleEnrollText — текстовые шаги сценария записи.
func HandleEnrollText(ctx context.Context, bot *tgbotapi.BotAPI, database *sql.DB, client *schedclient.Client, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	st := GetEnrollState(chatID)
	if st == nil {
		return
	}
	if fsmutil.IsCancelText(msg.Text) {
		cancelEnroll(bot, chatID)
		return
	}
	sess := RequireSession(ctx, bot, database, chatID)
	if sess == nil {
		return
	}
	text := strings.TrimSpace(msg.Text)

	switch st.Step {
	case StepEnrollName:
		if text == "" {
			sendText(bot, chatID, "❌ ФИО не может быть пустым. Введите ФИО ученика:")
			return
		}
		st.Name = text
		st.Step = StepEnrollPhone
		enrReplace(bot, chatID, st, "Введите телефон ученика:", cancelRow())
	case StepEnrollPhone:
		if text == "" {
			sendText(bot, chatID, "❌ Телефон не может быть пустым. Введите телефон:")
			return
		}
		st.Phone = text
		st.Step = StepEnrollCourse
		showCourseStep(ctx, bot, client, sess, chatID, st)
	case StepEnrollDate:
		d, err := parseDate(text)
		if err != nil {
			sendText(bot, chatID, "❌ Неверный формат. Введите дату первого занятия в формате ДД.ММ.ГГГГ:")
			return
		}
		// очистка зависимых полей до записи нового значения
		st.Sel.Apply(booking.FieldDate, func(s *booking.Selection) { s.Date = wireDate(d) })
		st.Slots = nil
		st.Step = StepEnrollPickDrop
		showPickDropStep(bot, chatID, st)
	case StepEnrollAddress:
		st.Address = text
		// дебаунс: геокодируем, когда пользователь перестал печатать.
		// Запрос уходит в свою горутину — действие может быть вызвано и
		// синхронно (Flush из обработчика, уже держащего замок чата).
		st.Deb.Trigger(func() {
			go resolveDistance(ctx, bot, client, sess, chatID)
		})
	case StepEnrollDiscount:
		v, err := parseAmount(text)
		if err != nil || v < 0 {
			sendText(bot, chatID, "❌ Введите скидку числом (0, если её нет):")
			return
		}
		st.Discount = v
		st.Step = StepEnrollPayment
		enrReplace(bot, chatID, st, fmt.Sprintf("Итого к оплате: %.2f\nВведите первый взнос:", st.total()), cancelRow())
	case StepEnrollPayment:
		v, err := parseAmount(text)
		if err != nil || v < 0 {
			sendText(bot, chatID, "❌ Введите первый взнос числом:")
			return
		}
		// переплата отклоняется локально, без сетевого вызова; поля остаются
		if err := booking.ValidateInitialPayment(st.basePrice(), st.ExtraCharges, st.Discount, v); err != nil {
			sendText(bot, chatID, "❌ "+err.Error()+"\nВведите первый взнос заново:")
			return
		}
		st.InitialPayment = v
		st.Step = StepEnrollConfirm
		showEnrollPreview(bot, chatID, st)
	}
}

// HandleEnrollCallback — кнопочные шаги сценария записи.
func HandleEnrollCallback(ctx context.Context, bot *tgbotapi.BotAPI, database *sql.DB, client *schedclient.Client, cb *tgbotapi.CallbackQuery) {
	chatID := cb.Message.Chat.ID
	st := GetEnrollState(chatID)
	if st == nil {
		return
	}
	sess := RequireSession(ctx, bot, database, chatID)
	if sess == nil {
		return
	}
	data := cb.Data

	switch {
	case data == enrCancel:
		cancelEnroll(bot, chatID)

	case strings.HasPrefix(data, "enr_course:"):
		id, _ := strconv.ParseInt(strings.TrimPrefix(data, "enr_course:"), 10, 64)
		course := findCourse(st.Courses, id)
		if course == nil {
			return
		}
		// смена курса сбрасывает автомобиль, дату и время
		st.Sel.Apply(booking.FieldCourse, func(s *booking.Selection) { s.CourseID = id })
		st.Course = course
		st.Slots = nil
		st.Step = StepEnrollVehicle
		showVehicleStep(ctx, bot, client, sess, chatID, st)

	case strings.HasPrefix(data, "enr_vehicle:"):
		num := strings.TrimPrefix(data, "enr_vehicle:")
		st.Sel.Apply(booking.FieldVehicle, func(s *booking.Selection) { s.VehicleNumber = num })
		st.Slots = nil
		st.Step = StepEnrollInstructor
		showInstructorStep(ctx, bot, client, sess, chatID, st)

	case strings.HasPrefix(data, "enr_instr:"):
		id, _ := strconv.ParseInt(strings.TrimPrefix(data, "enr_instr:"), 10, 64)
		st.Sel.Apply(booking.FieldInstructor, func(s *booking.Selection) { s.InstructorID = id })
		st.Slots = nil
		st.Step = StepEnrollDate
		enrReplace(bot, chatID, st, "Введите дату первого занятия в формате ДД.ММ.ГГГГ:", cancelRow())

	case data == "enr_pd_yes":
		st.PickAndDrop = true
		// дистанция уже известна — надбавка применяется сразу, без геокода
		if st.DistanceKnown {
			st.ExtraCharges = booking.ExtraCharge(st.DistanceKm)
		}
		st.Step = StepEnrollAddress
		showAddressStep(bot, chatID, st)

	case data == "enr_pd_no":
		st.PickAndDrop = false
		st.ExtraCharges = 0 // выключение подачи всегда обнуляет надбавку
		st.Step = StepEnrollSlots
		requestSlots(ctx, bot, client, sess, chatID, st)

	case data == enrRecalc:
		if strings.TrimSpace(st.Address) == "" {
			sendText(bot, chatID, "❌ Сначала отправьте адрес подачи сообщением.")
			return
		}
		// ручной пересчёт — мимо дебаунса
		st.Deb.Flush()

	case data == enrAddrOK:
		if strings.TrimSpace(st.Address) == "" {
			sendText(bot, chatID, "❌ Сначала отправьте адрес подачи сообщением.")
			return
		}
		st.Step = StepEnrollSlots
		requestSlots(ctx, bot, client, sess, chatID, st)

	case strings.HasPrefix(data, "enr_slot:"):
		idx, _ := strconv.Atoi(strings.TrimPrefix(data, "enr_slot:"))
		if idx < 0 || idx >= len(st.Slots) {
			return
		}
		slot := st.Slots[idx]
		st.SlotIdx = idx
		st.Sel.Apply(booking.FieldTime, func(s *booking.Selection) { s.Time = slot.StartHHMMSS() })
		st.Step = StepEnrollDiscount
		enrReplace(bot, chatID, st, "Введите скидку (0, если её нет):", cancelRow())

	case data == enrConfirm:
		submitEnroll(ctx, bot, database, client, sess, chatID, st)
	}
}

func cancelEnroll(bot *tgbotapi.BotAPI, chatID int64) {
	ClearEnrollState(chatID)
	sendText(bot, chatID, "Запись отменена.")
}

func showCourseStep(ctx context.Context, bot *tgbotapi.BotAPI, client *schedclient.Client, sess *schedclient.Session, chatID int64, st *EnrollState) {
	courses, err := client.Courses(ctx, sess)
	if err != nil {
		observability.CaptureErr(err)
		sendText(bot, chatID, "❌ "+err.Error())
		return
	}
	st.Courses = courses
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, c := range courses {
		if !c.IsActive {
			continue
		}
		title := fmt.Sprintf("%s (%d дн., %.0f)", c.Name, c.TotalDays, c.Price)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(title, fmt.Sprintf("enr_course:%d", c.ID)),
		))
	}
	if len(rows) == 0 {
		sendText(bot, chatID, "Активных курсов нет.")
		ClearEnrollState(chatID)
		return
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("❌ Отмена", enrCancel)))
	enrReplace(bot, chatID, st, "Выберите курс:", tgbotapi.NewInlineKeyboardMarkup(rows...))
}

func showVehicleStep(ctx context.Context, bot *tgbotapi.BotAPI, client *schedclient.Client, sess *schedclient.Session, chatID int64, st *EnrollState) {
	// автомобили фильтруются по типу ТС выбранного курса
	vehicles, err := client.Vehicles(ctx, sess, st.Course.VehicleType)
	if err != nil {
		observability.CaptureErr(err)
		sendText(bot, chatID, "❌ "+err.Error())
		return
	}
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, v := range vehicles {
		if !v.IsActive {
			continue
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(v.Name+" • "+v.Number, "enr_vehicle:"+v.Number),
		))
	}
	if len(rows) == 0 {
		sendText(bot, chatID, "Нет автомобилей типа "+st.Course.VehicleType+".")
		return
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("❌ Отмена", enrCancel)))
	enrReplace(bot, chatID, st, "Выберите автомобиль:", tgbotapi.NewInlineKeyboardMarkup(rows...))
}

func showInstructorStep(ctx context.Context, bot *tgbotapi.BotAPI, client *schedclient.Client, sess *schedclient.Session, chatID int64, st *EnrollState) {
	instructors, err := client.Instructors(ctx, sess)
	if err != nil {
		observability.CaptureErr(err)
		sendText(bot, chatID, "❌ "+err.Error())
		return
	}
	st.Instructors = instructors
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, i := range instructors {
		if !i.IsActive {
			continue
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(i.Name, fmt.Sprintf("enr_instr:%d", i.ID)),
		))
	}
	if len(rows) == 0 {
		sendText(bot, chatID, "Нет доступных инструкторов.")
		return
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("❌ Отмена", enrCancel)))
	enrReplace(bot, chatID, st, "Выберите инструктора:", tgbotapi.NewInlineKeyboardMarkup(rows...))
}

func showPickDropStep(bot *tgbotapi.BotAPI, chatID int64, st *EnrollState) {
	mk := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🚗 Да", "enr_pd_yes"),
			tgbotapi.NewInlineKeyboardButtonData("Нет", "enr_pd_no"),
		),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("❌ Отмена", enrCancel)),
	)
	enrReplace(bot, chatID, st, "Нужна подача автомобиля к дому (за доплату по дистанции)?", mk)
}

func showAddressStep(bot *tgbotapi.BotAPI, chatID int64, st *EnrollState) {
	text := "Отправьте адрес подачи сообщением."
	if st.DistanceKnown {
		text = fmt.Sprintf("Адрес: %s\nДистанция: %.1f км, надбавка: %.2f\nМожно отправить другой адрес.",
			st.Address, st.DistanceKm, st.ExtraCharges)
	}
	mk := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Пересчитать", enrRecalc),
			tgbotapi.NewInlineKeyboardButtonData("➡️ Далее", enrAddrOK),
		),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("❌ Отмена", enrCancel)),
	)
	enrReplace(bot, chatID, st, text, mk)
}

// resolveDistance — геокод адреса и расчёт надбавки. Вызывается из дебаунса
// или кнопкой «Пересчитать» (та идёт мимо дебаунса). Всегда выполняется в
// своей горутине, поэтому состояние читаем и пишем под замком чата.
func resolveDistance(ctx context.Context, bot *tgbotapi.BotAPI, client *schedclient.Client, sess *schedclient.Session, chatID int64) {
	var (
		addr  string
		alive bool
	)
	fsmutil.Chats.Do(chatID, func() {
		if st := GetEnrollState(chatID); st != nil {
			addr = strings.TrimSpace(st.Address)
			alive = true
		}
	})
	if !alive {
		return
	}
	if addr == "" {
		sendText(bot, chatID, "❌ Адрес пуст. Отправьте адрес подачи сообщением.")
		return
	}
	if !fsmutil.SetPending(chatID, "enroll:distance") {
		return
	}
	defer fsmutil.ClearPending(chatID, "enroll:distance")

	km, err := client.CalculateDistance(ctx, sess, addr)
	if err != nil {
		observability.CaptureErr(err)
		sendText(bot, chatID, "❌ "+err.Error())
		return
	}
	fsmutil.Chats.Do(chatID, func() {
		st := GetEnrollState(chatID)
		if st == nil {
			return
		}
		st.DistanceKm = km
		st.DistanceKnown = true
		if st.PickAndDrop {
			st.ExtraCharges = booking.ExtraCharge(km)
		}
		showAddressStep(bot, chatID, st)
	})
}

// requestSlots — авторитетный запрос слотов. Ответ с устаревшим номером
// отбрасывается, чтобы не перетереть более новое состояние.
func requestSlots(ctx context.Context, bot *tgbotapi.BotAPI, client *schedclient.Client, sess *schedclient.Session, chatID int64, st *EnrollState) {
	if !st.Sel.ReadyForSlots() {
		sendText(bot, chatID, "❌ Сначала выберите курс, автомобиль, инструктора и дату.")
		return
	}
	q := schedclient.SlotQuery{
		InstructorID:      st.Sel.InstructorID,
		VehicleNumber:     st.Sel.VehicleNumber,
		Date:              st.Sel.Date,
		SlotDurationHours: st.Course.DurationPerDayHours,
		CourseID:          st.Sel.CourseID,
		IsPickAndDrop:     st.PickAndDrop,
	}
	if err := q.Validate(); err != nil {
		sendText(bot, chatID, "❌ "+err.Error())
		return
	}
	if !fsmutil.SetPending(chatID, "enroll:slots") {
		sendText(bot, chatID, "⏳ Запрос уже выполняется.")
		return
	}
	enrReplace(bot, chatID, st, "⏳ Ищу свободное время…", tgbotapi.NewInlineKeyboardMarkup(cancelButtons()))

	seq := slotSeq.Next(chatID)
	go func() {
		defer fsmutil.ClearPending(chatID, "enroll:slots")
		slots, err := client.AvailableSlots(ctx, sess, q)
		if err != nil {
			observability.CaptureErr(err)
		}
		fsmutil.Chats.Do(chatID, func() {
			if !slotSeq.IsCurrent(chatID, seq) {
				metrics.StaleSlotResponses.Inc()
				return
			}
			if GetEnrollState(chatID) != st {
				return
			}
			if err != nil {
				// выбранные поля не сбрасываем: дату можно исправить и
				// запросить слоты заново
				st.Step = StepEnrollDate
				enrReplace(bot, chatID, st, "❌ "+err.Error()+"\nВведите другую дату:", tgbotapi.NewInlineKeyboardMarkup(cancelButtons()))
				return
			}
			st.Slots = slots
			if len(slots) == 0 {
				// не ошибка: на эту связку ресурсов времени нет, запись недоступна
				st.Step = StepEnrollDate
				enrReplace(bot, chatID, st, "Свободных слотов нет. Выберите другую дату:", tgbotapi.NewInlineKeyboardMarkup(cancelButtons()))
				return
			}
			var rows [][]tgbotapi.InlineKeyboardButton
			for i, s := range slots {
				rows = append(rows, tgbotapi.NewInlineKeyboardRow(
					tgbotapi.NewInlineKeyboardButtonData(s.Label(), fmt.Sprintf("enr_slot:%d", i)),
				))
			}
			rows = append(rows, cancelButtons())
			enrReplace(bot, chatID, st, "Выберите время:", tgbotapi.NewInlineKeyboardMarkup(rows...))
		})
	}()
}

func showEnrollPreview(bot *tgbotapi.BotAPI, chatID int64, st *EnrollState) {
	slot := st.Slots[st.SlotIdx]
	total := st.total()
	balance := booking.PendingBalance(st.basePrice(), st.ExtraCharges, st.Discount, st.InitialPayment)

	var b strings.Builder
	fmt.Fprintf(&b, "Проверьте запись:\n")
	fmt.Fprintf(&b, "• Ученик: %s, %s\n", st.Name, st.Phone)
	fmt.Fprintf(&b, "• Курс: %s (%d дн.)\n", st.Course.Name, st.Course.TotalDays)
	fmt.Fprintf(&b, "• Автомобиль: %s\n", st.Sel.VehicleNumber)
	fmt.Fprintf(&b, "• Первое занятие: %s, %s\n", uiDate(st.Sel.Date), slot.Label())
	if st.PickAndDrop {
		fmt.Fprintf(&b, "• Подача: %s (%.1f км, +%.2f)\n", st.Address, st.DistanceKm, st.ExtraCharges)
	}
	fmt.Fprintf(&b, "• Цена: %.2f, скидка: %.2f\n", st.basePrice(), st.Discount)
	fmt.Fprintf(&b, "• Итого: %.2f, взнос: %.2f, остаток: %.2f", total, st.InitialPayment, balance)

	mk := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("✅ Подтвердить", enrConfirm)),
		cancelButtons(),
	)
	enrReplace(bot, chatID, st, b.String(), mk)
}

func submitEnroll(ctx context.Context, bot *tgbotapi.BotAPI, database *sql.DB, client *schedclient.Client, sess *schedclient.Session, chatID int64, st *EnrollState) {
	if !fsmutil.SetPending(chatID, "enroll:submit") {
		sendText(bot, chatID, "⏳ Запись уже отправляется.")
		return
	}
	sendText(bot, chatID, "⏳ Оформляю запись…")

	req := schedclient.EnrollRequest{
		CustomerName:   st.Name,
		Phone:          st.Phone,
		Address:        st.Address,
		CourseID:       st.Sel.CourseID,
		VehicleNumber:  st.Sel.VehicleNumber,
		InstructorID:   st.Sel.InstructorID,
		StartDate:      st.Sel.Date,
		StartTime:      st.Sel.Time,
		PickAndDrop:    st.PickAndDrop,
		BasePrice:      st.basePrice(),
		ExtraCharges:   st.ExtraCharges,
		Discount:       st.Discount,
		InitialPayment: st.InitialPayment,
	}
	go func() {
		defer fsmutil.ClearPending(chatID, "enroll:submit")
		res, err := client.Enroll(ctx, sess, req)
		if err != nil {
			observability.CaptureErr(err)
			// поля сценария не трогаем: можно исправить и подтвердить заново
			sendText(bot, chatID, "❌ "+err.Error())
			return
		}
		ClearEnrollState(chatID)

		// свой первый курс — привязываем customerId к сессии чата
		if sess.CustomerID == 0 && res.Customer.ID != 0 {
			dbCtx, cancel := ctxutil.WithDBTimeout(ctx)
			defer cancel()
			if err := store.SaveSession(dbCtx, database, models.Session{
				ChatID: chatID, CustomerID: res.Customer.ID, Role: sess.Role, Token: sess.Token, IsActive: true,
			}); err != nil {
				observability.CaptureErr(err)
			}
			sess.CustomerID = res.Customer.ID
		}

		note := fmt.Sprintf("✅ Запись оформлена! Занятий создано: %d.", len(res.Schedules))
		RefreshSchedules(ctx, bot, database, client, chatID, sess, res.Customer.ID, note)
	}()
}

func (st *EnrollState) basePrice() float64 {
	if st.Course == nil {
		return 0
	}
	return st.Course.Price
}

func (st *EnrollState) total() float64 {
	return booking.Total(st.basePrice(), st.ExtraCharges, st.Discount)
}

func findCourse(courses []models.Course, id int64) *models.Course {
	for i := range courses {
		if courses[i].ID == id {
			return &courses[i]
		}
	}
	return nil
}

func parseAmount(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", "."), 64)
}

func cancelRow() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(cancelButtons())
}

func cancelButtons() []tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("❌ Отмена", enrCancel))
}

// enrReplace редактирует сообщение сценария или отправляет новое.
func enrReplace(bot *tgbotapi.BotAPI, chatID int64, st *EnrollState, text string, mk tgbotapi.InlineKeyboardMarkup) {
	if st.MessageID != 0 {
		edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, st.MessageID, text, mk)
		if _, err := tg.Send(bot, edit); err == nil {
			return
		}
	}
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = mk
	m, err := tg.Send(bot, msg)
	if err != nil {
		metrics.HandlerErrors.Inc()
		return
	}
	st.MessageID = m.MessageID
}
