package join_waitlist

import (
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/waitlist/models"
)

// JoinWaitlistRequest HTTP request model
type JoinWaitlistRequest struct {
	CourtID   int64  `json:"courtId"`
	StartTime string `json:"startTime"` // RFC3339
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *JoinWaitlistRequest) ToServiceRequest(userID int64) (*models.JoinRequest, error) {
	startTime, err := time.Parse(domain.TimeFormat, r.StartTime)
	if err != nil {
		return nil, err
	}

	return &models.JoinRequest{
		UserID:    userID,
		CourtID:   r.CourtID,
		StartTime: startTime,
	}, nil
}
