package get_available_slots

import (
	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-CourtBookingService/internal/usecase/get_available_slots"
)

// SlotResponse часовой слот в ответе
type SlotResponse struct {
	StartTime string  `json:"startTime"`
	EndTime   string  `json:"endTime"`
	Available bool    `json:"available"`
	Price     float64 `json:"price"`
}

// DayScheduleResponse HTTP response model
type DayScheduleResponse struct {
	Date      string         `json:"date"`
	CourtID   int64          `json:"courtId"`
	CourtName string         `json:"courtName"`
	Slots     []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *getAvailableSlots.Response) *DayScheduleResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, slot := range resp.Slots {
		slots = append(slots, SlotResponse{
			StartTime: slot.StartTime.Format(domain.TimeFormat),
			EndTime:   slot.EndTime.Format(domain.TimeFormat),
			Available: slot.Available,
			Price:     domain.RoundMoney(slot.Price),
		})
	}

	return &DayScheduleResponse{
		Date:      resp.Date.Format(domain.DateFormat),
		CourtID:   resp.CourtID,
		CourtName: resp.CourtName,
		Slots:     slots,
	}
}
