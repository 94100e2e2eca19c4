package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// ListBookingsRequest запрос администратора на список бронирований
type ListBookingsRequest struct {
	UserID  *int64     `json:"userId,omitempty"`
	CourtID *int64     `json:"courtId,omitempty"`
	Status  *string    `json:"status,omitempty"`
	From    *time.Time `json:"from,omitempty"` // start_time >= From
	To      *time.Time `json:"to,omitempty"`   // start_time < To
	Limit   int        `json:"limit,omitempty"`
	Offset  int        `json:"offset,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		UserID:  r.UserID,
		CourtID: r.CourtID,
		From:    r.From,
		To:      r.To,
		Limit:   r.Limit,
		Offset:  r.Offset,
	}

	if filter.Limit <= 0 {
		filter.Limit = domain.DefaultBookingsLimit
	}
	if filter.Limit > domain.MaxBookingsLimit {
		filter.Limit = domain.MaxBookingsLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// EquipmentLineResponse строка инвентаря бронирования
type EquipmentLineResponse struct {
	ItemID     int64   `json:"itemId"`
	ItemName   string  `json:"itemName"`
	Quantity   int     `json:"quantity"`
	HourlyRate float64 `json:"hourlyRate"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"userId"`
	UserName   string    `json:"userName,omitempty"`
	CourtID    int64     `json:"courtId"`
	CoachID    *int64    `json:"coachId,omitempty"`
	StartTime  time.Time `json:"startTime"`
	EndTime    time.Time `json:"endTime"`
	TotalPrice float64   `json:"totalPrice"`
	Status     string    `json:"status"`

	// Денормализованные данные
	CourtName     string                  `json:"courtName"`
	CourtCategory string                  `json:"courtCategory"`
	CoachName     *string                 `json:"coachName,omitempty"`
	CoachRate     *float64                `json:"coachRate,omitempty"`
	Equipment     []EquipmentLineResponse `json:"equipment"`

	CancelledAt *string   `json:"cancelledAt,omitempty"` // ISO 8601 format
	CreatedAt   time.Time `json:"createdAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// AvailabilityResponse ответ проверки доступности слота
type AvailabilityResponse struct {
	CourtID   int64     `json:"courtId"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Available bool      `json:"available"`
}

// StatsResponse сводка для административной панели
type StatsResponse struct {
	TotalBookings int64   `json:"totalBookings"`
	TotalRevenue  float64 `json:"totalRevenue"`
	ActiveCourts  int64   `json:"activeCourts"`
	ActiveCoaches int64   `json:"activeCoaches"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:            b.ID,
		UserID:        b.UserID,
		UserName:      b.UserName,
		CourtID:       b.CourtID,
		CoachID:       b.CoachID,
		StartTime:     b.StartTime,
		EndTime:       b.EndTime(),
		TotalPrice:    domain.RoundMoney(b.TotalPrice),
		Status:        string(b.Status),
		CourtName:     b.CourtName,
		CourtCategory: string(b.CourtCategory),
		CoachName:     b.CoachName,
		CoachRate:     b.CoachRate,
		Equipment:     make([]EquipmentLineResponse, 0, len(b.Equipment)),
		CreatedAt:     b.CreatedAt,
	}

	for _, item := range b.Equipment {
		resp.Equipment = append(resp.Equipment, EquipmentLineResponse{
			ItemID:     item.ItemID,
			ItemName:   item.ItemName,
			Quantity:   item.Quantity,
			HourlyRate: item.ItemRate,
		})
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// FromDomainStats конвертирует сводку в DTO
func FromDomainStats(s *domain.DashboardStats) *StatsResponse {
	return &StatsResponse{
		TotalBookings: s.TotalBookings,
		TotalRevenue:  domain.RoundMoney(s.TotalRevenue),
		ActiveCourts:  s.ActiveCourts,
		ActiveCoaches: s.ActiveCoaches,
	}
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	switch s := domain.BookingStatus(status); s {
	case domain.StatusConfirmed, domain.StatusCancelled:
		return s, nil
	default:
		return "", ErrInvalidStatus
	}
}
