package models

// Role — роль из claim'а токена. Используется только для маршрутизации меню,
// границей безопасности не является: все проверки прав делает бэкенд.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Session — привязка телеграм-чата к учётке на бэкенде расписания.
type Session struct {
	ChatID     int64
	CustomerID int64
	Role       Role
	Token      string
	IsActive   bool
}
