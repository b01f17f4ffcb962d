package schedclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/avdeevsm/driving-school-bot/internal/booking"
	"github.com/avdeevsm/driving-school-bot/internal/models"
)

// EnrollRequest — запись на курс: бэкенд создаёт клиента (если нового),
// занятия на каждый день курса и оплату.
type EnrollRequest struct {
	CustomerName   string  `json:"customerName"`
	Phone          string  `json:"phone"`
	Address        string  `json:"address"`
	CourseID       int64   `json:"courseId"`
	VehicleNumber  string  `json:"vehicleNumber"`
	InstructorID   int64   `json:"instructorId"`
	StartDate      string  `json:"startDate"` // YYYY-MM-DD
	StartTime      string  `json:"startTime"` // HH:mm:ss
	PickAndDrop    bool    `json:"pickAndDrop"`
	BasePrice      float64 `json:"basePrice"`
	ExtraCharges   float64 `json:"extraCharges"`
	Discount       float64 `json:"discount"`
	InitialPayment float64 `json:"initialPayment"`
}

// EnrollResult — что вернул бэкенд после записи.
type EnrollResult struct {
	Customer  models.Customer   `json:"customer"`
	Schedules []models.Schedule `json:"schedules"`
	Payment   models.Payment    `json:"payment"`
}

// Enroll отправляет запись на курс. Переплата первым взносом отклоняется
// локально — ни одного сетевого вызова в этом случае не делается.
func (c *Client) Enroll(ctx context.Context, sess *Session, req EnrollRequest) (*EnrollResult, error) {
	if err := booking.ValidateInitialPayment(req.BasePrice, req.ExtraCharges, req.Discount, req.InitialPayment); err != nil {
		return nil, err
	}
	var out EnrollResult
	if err := c.do(ctx, sess, "enroll", http.MethodPost, "/customers/enroll", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CalculateDistance — дистанция подачи в километрах по адресу.
func (c *Client) CalculateDistance(ctx context.Context, sess *Session, address string) (float64, error) {
	body := map[string]string{"address": address}
	var out struct {
		DistanceKm float64 `json:"distanceKm"`
	}
	if err := c.do(ctx, sess, "calculate_distance", http.MethodPost, "/customers/calculate-distance", nil, body, &out); err != nil {
		return 0, err
	}
	return out.DistanceKm, nil
}

// GetCustomer — авторитетная карточка клиента (в т.ч. флаг active после каскада).
func (c *Client) GetCustomer(ctx context.Context, sess *Session, customerID int64) (*models.Customer, error) {
	var out models.Customer
	path := fmt.Sprintf("/customers/%d", customerID)
	if err := c.do(ctx, sess, "get_customer", http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListCustomers — список клиентов (для админских сценариев).
func (c *Client) ListCustomers(ctx context.Context, sess *Session) ([]models.Customer, error) {
	var out []models.Customer
	if err := c.do(ctx, sess, "list_customers", http.MethodGet, "/customers", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
