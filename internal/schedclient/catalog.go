package schedclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/avdeevsm/driving-school-bot/internal/models"
)

// Courses — активные курсы.
func (c *Client) Courses(ctx context.Context, sess *Session) ([]models.Course, error) {
	var out []models.Course
	if err := c.do(ctx, sess, "courses", http.MethodGet, "/courses", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Vehicles — автомобили; vehicleType фильтрует под тип ТС выбранного курса.
func (c *Client) Vehicles(ctx context.Context, sess *Session, vehicleType string) ([]models.Vehicle, error) {
	var v url.Values
	if vehicleType != "" {
		v = url.Values{}
		v.Set("vehicleType", vehicleType)
	}
	var out []models.Vehicle
	if err := c.do(ctx, sess, "vehicles", http.MethodGet, "/vehicles", v, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Instructors — активные инструкторы.
func (c *Client) Instructors(ctx context.Context, sess *Session) ([]models.Instructor, error) {
	var out []models.Instructor
	if err := c.do(ctx, sess, "instructors", http.MethodGet, "/instructors", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
