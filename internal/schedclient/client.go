// Package schedclient — клиент бэкенда расписания. Бэкенд авторитетен:
// список слотов, пересчитанные даты и суммы приходят только от него,
// клиент ничего из этого не вычисляет сам.
package schedclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/avdeevsm/driving-school-bot/internal/metrics"
)

// genericErr показывается пользователю, когда бэкенд не прислал message.
const genericErr = "Сервис расписания недоступен. Попробуйте позже."

type Client struct {
	base string
	hc   *http.Client
}

// New — клиент без таймаута на запрос: зависший вызов держит «загрузку»
// у кнопки, повторов и отмен нет, пользователь перезапускает действие сам.
func New(base string) *Client {
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{},
	}
}

// APIError — неуспешный ответ бэкенда; Message готов к показу пользователю.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string { return e.Message }

// do выполняет запрос с bearer-токеном сессии и раскладывает JSON-ответ в out.
// endpoint — короткое имя операции для метрик.
func (c *Client) do(ctx context.Context, sess *Session, endpoint, method, path string, query url.Values, body, out any) error {
	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: marshal: %w", endpoint, err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sess != nil && sess.Token != "" {
		req.Header.Set("Authorization", "Bearer "+sess.Token)
	}

	start := time.Now()
	resp, err := c.hc.Do(req)
	metrics.ObserveAPIRequest(endpoint, time.Since(start))
	if err != nil {
		metrics.APIErrors.WithLabelValues(endpoint).Inc()
		return &APIError{Message: genericErr}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode/100 != 2 {
		metrics.APIErrors.WithLabelValues(endpoint).Inc()
		return &APIError{Status: resp.StatusCode, Message: serverMessage(raw)}
	}
	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("%s: decode: %w", endpoint, err)
		}
	}
	return nil
}

// serverMessage достаёт поле message из тела ошибки, иначе общий текст.
func serverMessage(raw []byte) string {
	var e struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &e); err == nil && strings.TrimSpace(e.Message) != "" {
		return e.Message
	}
	return genericErr
}
