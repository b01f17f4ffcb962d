package schedclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/avdeevsm/driving-school-bot/internal/models"
)

// AdjustPrice — корректировка цены после создания. Бэкенд пересчитывает
// остаток от СОХРАНЁННОГО первого взноса, взнос здесь не передаётся
// и молча не сбрасывается.
func (c *Client) AdjustPrice(ctx context.Context, sess *Session, paymentID int64, newBasePrice, newExtraCharges, newDiscount float64) error {
	body := map[string]float64{
		"newBasePrice":    newBasePrice,
		"newExtraCharges": newExtraCharges,
		"newDiscount":     newDiscount,
	}
	path := fmt.Sprintf("/payments/%d/adjust-price", paymentID)
	return c.do(ctx, sess, "adjust_price", http.MethodPut, path, nil, body, nil)
}

// ListPayments — оплаты клиента (сверочное чтение после adjust-price).
func (c *Client) ListPayments(ctx context.Context, sess *Session, customerID int64) ([]models.Payment, error) {
	v := url.Values{}
	v.Set("customerId", strconv.FormatInt(customerID, 10))
	var out []models.Payment
	if err := c.do(ctx, sess, "list_payments", http.MethodGet, "/payments", v, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
