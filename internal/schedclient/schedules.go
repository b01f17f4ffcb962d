package schedclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/avdeevsm/driving-school-bot/internal/models"
)

// ListSchedules — авторитетный список занятий клиента; вызывается и как
// сверочное перечитывание после каждой мутации.
func (c *Client) ListSchedules(ctx context.Context, sess *Session, customerID int64) ([]models.Schedule, error) {
	v := url.Values{}
	v.Set("customerId", strconv.FormatInt(customerID, 10))
	var out []models.Schedule
	if err := c.do(ctx, sess, "list_schedules", http.MethodGet, "/schedules", v, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateStatus переводит занятие в новый статус (COMPLETED и т.п.).
func (c *Client) UpdateStatus(ctx context.Context, sess *Session, scheduleID int64, status models.ScheduleStatus) error {
	v := url.Values{}
	v.Set("status", string(status))
	path := fmt.Sprintf("/schedules/update-status/%d", scheduleID)
	return c.do(ctx, sess, "update_status", http.MethodPatch, path, v, nil, nil)
}

// Reschedule переносит одно занятие; времена в HH:mm:ss, дата в YYYY-MM-DD.
func (c *Client) Reschedule(ctx context.Context, sess *Session, scheduleID int64, newDate, newStartTime, newEndTime string) error {
	v := url.Values{}
	v.Set("newDate", newDate)
	v.Set("newStartTime", newStartTime)
	v.Set("newEndTime", newEndTime)
	path := fmt.Sprintf("/schedules/cancel-reschedule/%d", scheduleID)
	return c.do(ctx, sess, "reschedule", http.MethodPatch, path, v, nil, nil)
}

// BulkUpdateTime меняет время всех незавершённых занятий автомобиля.
func (c *Client) BulkUpdateTime(ctx context.Context, sess *Session, vehicleNumber, newStartTime string, isPickAndDrop bool) error {
	v := url.Values{}
	v.Set("vehicleNumber", vehicleNumber)
	v.Set("newStartTime", newStartTime)
	v.Set("isPickAndDrop", strconv.FormatBool(isPickAndDrop))
	return c.do(ctx, sess, "bulk_update_time", http.MethodPatch, "/schedules/update-time/all", v, nil, nil)
}

// Cancel отменяет одно занятие.
func (c *Client) Cancel(ctx context.Context, sess *Session, scheduleID int64) error {
	path := fmt.Sprintf("/schedules/cancel/%d", scheduleID)
	return c.do(ctx, sess, "cancel", http.MethodPatch, path, nil, nil, nil)
}

// CancelAllUpcoming — каскад: все будущие занятия клиента отменяются,
// сам клиент деактивируется на бэкенде.
func (c *Client) CancelAllUpcoming(ctx context.Context, sess *Session, customerID int64) error {
	v := url.Values{}
	v.Set("customerId", strconv.FormatInt(customerID, 10))
	return c.do(ctx, sess, "cancel_all_upcoming", http.MethodPatch, "/schedules/cancel-all-upcoming", v, nil, nil)
}
