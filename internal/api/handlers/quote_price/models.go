package quote_price

import (
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/catalog/models"
)

// EquipmentLineRequest строка инвентаря в HTTP запросе
type EquipmentLineRequest struct {
	ItemID   int64 `json:"itemId"`
	Quantity int   `json:"quantity"`
}

// QuotePriceRequest HTTP request model
type QuotePriceRequest struct {
	CourtID   int64                  `json:"courtId"`
	CoachID   *int64                 `json:"coachId,omitempty"`
	Equipment []EquipmentLineRequest `json:"equipment,omitempty"`
	StartTime string                 `json:"startTime"` // RFC3339
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *QuotePriceRequest) ToServiceRequest() (*models.QuoteRequest, error) {
	startTime, err := time.Parse(domain.TimeFormat, r.StartTime)
	if err != nil {
		return nil, err
	}

	equipment := make([]models.QuoteEquipmentLine, 0, len(r.Equipment))
	for _, line := range r.Equipment {
		equipment = append(equipment, models.QuoteEquipmentLine{
			ItemID:   line.ItemID,
			Quantity: line.Quantity,
		})
	}

	return &models.QuoteRequest{
		CourtID:   r.CourtID,
		CoachID:   r.CoachID,
		Equipment: equipment,
		StartTime: startTime,
	}, nil
}
