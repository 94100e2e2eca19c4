package create_booking

import (
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	createBooking "github.com/m04kA/SMC-CourtBookingService/internal/usecase/create_booking"
)

// EquipmentLineRequest строка инвентаря в HTTP запросе
type EquipmentLineRequest struct {
	ItemID   int64 `json:"itemId"`
	Quantity int   `json:"quantity"`
}

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	UserName  string                 `json:"userName,omitempty"`
	CourtID   int64                  `json:"courtId"`
	CoachID   *int64                 `json:"coachId,omitempty"`
	Equipment []EquipmentLineRequest `json:"equipment,omitempty"`
	StartTime string                 `json:"startTime"` // RFC3339, "2025-10-18T19:00:00+05:30"
}

// EquipmentLineResponse строка инвентаря в ответе
type EquipmentLineResponse struct {
	ItemID     int64   `json:"itemId"`
	ItemName   string  `json:"itemName"`
	Quantity   int     `json:"quantity"`
	HourlyRate float64 `json:"hourlyRate"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID            int64                   `json:"id"`
	UserID        int64                   `json:"userId"`
	UserName      string                  `json:"userName,omitempty"`
	CourtID       int64                   `json:"courtId"`
	CourtName     string                  `json:"courtName"`
	CourtCategory string                  `json:"courtCategory"`
	CoachID       *int64                  `json:"coachId,omitempty"`
	CoachName     *string                 `json:"coachName,omitempty"`
	CoachRate     *float64                `json:"coachRate,omitempty"`
	Equipment     []EquipmentLineResponse `json:"equipment"`
	StartTime     string                  `json:"startTime"`
	EndTime       string                  `json:"endTime"`
	TotalPrice    float64                 `json:"totalPrice"`
	Status        string                  `json:"status"`
	CreatedAt     string                  `json:"createdAt"`
}

// SlotConflictResponse ответ 409: слот занят, можно встать в очередь
type SlotConflictResponse struct {
	Code            int    `json:"code"`
	Message         string `json:"message"`
	CanJoinWaitlist bool   `json:"canJoinWaitlist"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	startTime, err := time.Parse(domain.TimeFormat, r.StartTime)
	if err != nil {
		return nil, err
	}

	equipment := make([]createBooking.EquipmentLine, 0, len(r.Equipment))
	for _, line := range r.Equipment {
		equipment = append(equipment, createBooking.EquipmentLine{
			ItemID:   line.ItemID,
			Quantity: line.Quantity,
		})
	}

	return &createBooking.Request{
		UserID:    userID,
		UserName:  r.UserName,
		CourtID:   r.CourtID,
		CoachID:   r.CoachID,
		Equipment: equipment,
		StartTime: startTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	result := &BookingResponse{
		ID:            resp.ID,
		UserID:        resp.UserID,
		UserName:      resp.UserName,
		CourtID:       resp.CourtID,
		CourtName:     resp.CourtName,
		CourtCategory: resp.CourtCategory,
		CoachID:       resp.CoachID,
		CoachName:     resp.CoachName,
		CoachRate:     resp.CoachRate,
		Equipment:     make([]EquipmentLineResponse, 0, len(resp.Equipment)),
		StartTime:     resp.StartTime.Format(domain.TimeFormat),
		EndTime:       resp.EndTime.Format(domain.TimeFormat),
		TotalPrice:    domain.RoundMoney(resp.TotalPrice),
		Status:        resp.Status,
		CreatedAt:     resp.CreatedAt.Format(domain.TimeFormat),
	}

	for _, item := range resp.Equipment {
		result.Equipment = append(result.Equipment, EquipmentLineResponse{
			ItemID:     item.ItemID,
			ItemName:   item.ItemName,
			Quantity:   item.Quantity,
			HourlyRate: item.ItemRate,
		})
	}

	return result
}
