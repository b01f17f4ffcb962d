package schedclient

import (
	"fmt"

	"github.com/avdeevsm/driving-school-bot/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

// Session — явный объект сессии, прокидывается в каждый вызов клиента.
// Токен здесь не граница безопасности: claim роли читается только для
// маршрутизации меню, все права проверяет бэкенд.
type Session struct {
	Token      string
	Role       models.Role
	CustomerID int64
}

// NewSession разбирает токен без проверки подписи (подпись проверяет бэкенд)
// и достаёт роль и customerId для локальной маршрутизации.
func NewSession(token string) (*Session, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("разбор токена: %w", err)
	}

	s := &Session{Token: token, Role: models.RoleUser}
	if r, ok := claims["role"].(string); ok && r != "" {
		s.Role = models.Role(r)
	}
	// customerId приходит числом; json кладёт числа в float64
	if v, ok := claims["customerId"].(float64); ok {
		s.CustomerID = int64(v)
	}
	return s, nil
}
