package store

import (
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Open — подключение к локальной БД бота (только сессии чатов;
// доменные данные живут на бэкенде расписания и здесь не хранятся).
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("открытие БД: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("пинг БД: %w", err)
	}
	return db, nil
}
