package schedclient

import (
	"context"
	"net/http"
)

// Login обменивает телефон и пароль на bearer-токен и собирает сессию.
func (c *Client) Login(ctx context.Context, phone, password string) (*Session, error) {
	body := map[string]string{"phone": phone, "password": password}
	var out struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, nil, "login", http.MethodPost, "/auth/login", nil, body, &out); err != nil {
		return nil, err
	}
	return NewSession(out.Token)
}
