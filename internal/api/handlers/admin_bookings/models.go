package admin_bookings

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
// Query params: userId, courtId, status, from, to (RFC3339), limit, offset
func ToServiceRequest(query url.Values) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{}

	if v := query.Get("userId"); v != "" {
		userID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid userId: %w", err)
		}
		req.UserID = &userID
	}

	if v := query.Get("courtId"); v != "" {
		courtID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid courtId: %w", err)
		}
		req.CourtID = &courtID
	}

	if v := query.Get("status"); v != "" {
		req.Status = &v
	}

	if v := query.Get("from"); v != "" {
		from, err := time.Parse(domain.TimeFormat, v)
		if err != nil {
			return nil, fmt.Errorf("invalid from: %w", err)
		}
		req.From = &from
	}

	if v := query.Get("to"); v != "" {
		to, err := time.Parse(domain.TimeFormat, v)
		if err != nil {
			return nil, fmt.Errorf("invalid to: %w", err)
		}
		req.To = &to
	}

	if v := query.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid limit: %w", err)
		}
		req.Limit = limit
	}

	if v := query.Get("offset"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid offset: %w", err)
		}
		req.Offset = offset
	}

	return req, nil
}
