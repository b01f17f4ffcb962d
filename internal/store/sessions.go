package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/avdeevsm/driving-school-bot/internal/models"
)

// SaveSession привязывает чат к учётке бэкенда (или обновляет токен/роль).
func SaveSession(ctx context.Context, db *sql.DB, s models.Session) error {
	_, err := db.ExecContext(ctx, `
INSERT INTO sessions (chat_id, customer_id, role, token, is_active, updated_at)
VALUES ($1, $2, $3, $4, $5, now())
ON CONFLICT (chat_id) DO UPDATE
SET customer_id = EXCLUDED.customer_id,
    role        = EXCLUDED.role,
    token       = EXCLUDED.token,
    is_active   = EXCLUDED.is_active,
    updated_at  = now()`,
		s.ChatID, s.CustomerID, string(s.Role), s.Token, s.IsActive)
	return err
}

// GetSession — сессия чата; nil без ошибки, если чат не залогинен.
func GetSession(ctx context.Context, db *sql.DB, chatID int64) (*models.Session, error) {
	row := db.QueryRowContext(ctx, `
SELECT chat_id, customer_id, role, token, is_active
FROM sessions WHERE chat_id = $1`, chatID)

	var s models.Session
	var role string
	if err := row.Scan(&s.ChatID, &s.CustomerID, &role, &s.Token, &s.IsActive); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	s.Role = models.Role(role)
	return &s, nil
}

// ListSessions — все привязанные чаты (для напоминаний).
func ListSessions(ctx context.Context, db *sql.DB) ([]models.Session, error) {
	rows, err := db.QueryContext(ctx, `
SELECT chat_id, customer_id, role, token, is_active FROM sessions`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.Session
	for rows.Next() {
		var s models.Session
		var role string
		if err := rows.Scan(&s.ChatID, &s.CustomerID, &role, &s.Token, &s.IsActive); err != nil {
			return nil, err
		}
		s.Role = models.Role(role)
		out = append(out, s)
	}
	return out, rows.Err()
}

// SetActive — локальное отражение флага active клиента после сверки с бэкендом.
func SetActive(ctx context.Context, db *sql.DB, chatID int64, active bool) error {
	_, err := db.ExecContext(ctx,
		`UPDATE sessions SET is_active = $2, updated_at = now() WHERE chat_id = $1`,
		chatID, active)
	return err
}

// SetActiveByCustomer — то же по customerId: после каскадной отмены все чаты
// этого клиента переводятся в неактивные.
func SetActiveByCustomer(ctx context.Context, db *sql.DB, customerID int64, active bool) error {
	_, err := db.ExecContext(ctx,
		`UPDATE sessions SET is_active = $2, updated_at = now() WHERE customer_id = $1`,
		customerID, active)
	return err
}

// DeleteSession — выход из учётки.
func DeleteSession(ctx context.Context, db *sql.DB, chatID int64) error {
	_, err := db.ExecContext(ctx, `DELETE FROM sessions WHERE chat_id = $1`, chatID)
	return err
}
