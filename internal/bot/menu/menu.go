package menu

import (
	"github.com/avdeevsm/driving-school-bot/internal/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// GetRoleMenu возвращает меню по роли из claim'а токена.
// Это только маршрутизация UI: права проверяет бэкенд.
func GetRoleMenu(role models.Role) tgbotapi.ReplyKeyboardMarkup {
	switch role {
	case models.RoleAdmin:
		return adminMenu()
	case models.RoleUser:
		return userMenu()
	default:
		return tgbotapi.NewReplyKeyboard()
	}
}

func userMenu() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("📝 Записаться на курс"),
			tgbotapi.NewKeyboardButton("📅 Мои занятия"),
		),
	)
}

func adminMenu() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("📝 Записаться на курс"),
			tgbotapi.NewKeyboardButton("📅 Мои занятия"),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("👥 Занятия клиента"),
			tgbotapi.NewKeyboardButton("🕒 Сменить время по автомобилю"),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("💰 Корректировка цены"),
			tgbotapi.NewKeyboardButton("🚫 Отменить все занятия клиента"),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("📥 Экспорт занятий"),
		),
	)
}
