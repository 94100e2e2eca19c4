package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/bookings/models"
)

// Service сервис для чтения журнала бронирований
type Service struct {
	bookingRepo BookingRepository
	catalogRepo CatalogRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		catalogRepo: catalogRepo,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
// Пользователь видит только своё бронирование, администратор - любое
func (s *Service) GetByID(ctx context.Context, id int64, userID int64, isAdmin bool) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if !isAdmin && booking.UserID != userID {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований пользователя, сначала самые новые.
// Опционально фильтрует по статусу.
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, req.UserID)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	if domainStatus != nil {
		filtered := make([]*domain.Booking, 0, len(bookings))
		for _, b := range bookings {
			if b.Status == *domainStatus {
				filtered = append(filtered, b)
			}
		}
		bookings = filtered
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// CheckAvailability сообщает, свободен ли слот.
// Результат информационный: создание бронирования перепроверяет занятость в транзакции.
func (s *Service) CheckAvailability(ctx context.Context, courtID int64, startTime time.Time) (*models.AvailabilityResponse, error) {
	s.logger.Info("CheckAvailability: court=%d, start=%s", courtID, startTime.Format(domain.TimeFormat))

	if courtID <= 0 {
		return nil, fmt.Errorf("%w: courtId must be positive", ErrInvalidInput)
	}
	if startTime.IsZero() {
		return nil, fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if _, err := s.catalogRepo.GetCourtByID(ctx, courtID); err != nil {
		if errors.Is(err, catalogRepo.ErrCourtNotFound) {
			s.logger.Warn("CheckAvailability: court id=%d not found", courtID)
			return nil, ErrCourtNotFound
		}
		s.logger.Error("CheckAvailability: failed to get court id=%d: %v", courtID, err)
		return nil, fmt.Errorf("%w: CheckAvailability - failed to get court: %v", ErrInternal, err)
	}

	slot := domain.Slot{CourtID: courtID, StartTime: startTime.UTC()}

	taken, err := s.bookingRepo.ExistsConfirmed(ctx, slot)
	if err != nil {
		s.logger.Error("CheckAvailability: repository error for slot %s: %v", slot, err)
		return nil, fmt.Errorf("%w: CheckAvailability - repository error: %v", ErrInternal, err)
	}

	return &models.AvailabilityResponse{
		CourtID:   courtID,
		StartTime: slot.StartTime,
		EndTime:   slot.StartTime.Add(domain.SlotDuration),
		Available: !taken,
	}, nil
}

// ListBookings получает бронирования для администратора с фильтрацией
func (s *Service) ListBookings(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("ListBookings: fetching bookings, limit=%d, offset=%d", req.Limit, req.Offset)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListBookings: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	if filter.From != nil && filter.To != nil && !filter.From.Before(*filter.To) {
		return nil, fmt.Errorf("%w: from must be before to", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ListBookings: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListBookings: successfully fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// GetStats собирает сводку для административной панели.
// Учитываются только подтверждённые бронирования.
func (s *Service) GetStats(ctx context.Context) (*models.StatsResponse, error) {
	s.logger.Info("GetStats: collecting dashboard stats")

	count, revenue, err := s.bookingRepo.ConfirmedTotals(ctx)
	if err != nil {
		s.logger.Error("GetStats: failed to get booking totals: %v", err)
		return nil, fmt.Errorf("%w: GetStats - booking totals: %v", ErrInternal, err)
	}

	courts, err := s.catalogRepo.CountActiveCourts(ctx)
	if err != nil {
		s.logger.Error("GetStats: failed to count courts: %v", err)
		return nil, fmt.Errorf("%w: GetStats - count courts: %v", ErrInternal, err)
	}

	coaches, err := s.catalogRepo.CountAvailableCoaches(ctx)
	if err != nil {
		s.logger.Error("GetStats: failed to count coaches: %v", err)
		return nil, fmt.Errorf("%w: GetStats - count coaches: %v", ErrInternal, err)
	}

	return models.FromDomainStats(&domain.DashboardStats{
		TotalBookings: count,
		TotalRevenue:  revenue,
		ActiveCourts:  courts,
		ActiveCoaches: coaches,
	}), nil
}
