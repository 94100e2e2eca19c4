package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-CourtBookingService/pkg/ptr"
)

// UseCase use case для получения расписания корта на день
type UseCase struct {
	bookingRepo        BookingRepository
	catalogRepo        CatalogRepository
	hours              Hours
	advanceBookingDays int
	location           *time.Location
	timeProvider       TimeProvider
	logger             Logger
}

// NewUseCase создает новый экземпляр use case.
// advanceBookingDays - на сколько дней вперёд показывается расписание, 0 - без ограничения.
func NewUseCase(
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	hours Hours,
	advanceBookingDays int,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}

	return &UseCase{
		bookingRepo:        bookingRepo,
		catalogRepo:        catalogRepo,
		hours:              hours,
		advanceBookingDays: advanceBookingDays,
		location:           location,
		timeProvider:       &RealTimeProvider{},
		logger:             logger,
	}
}

// Execute возвращает часовые слоты корта на дату с признаком занятости и ценой корта.
// Результат информационный: создание бронирования перепроверяет слот под блокировкой.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: court=%d, date=%s", req.CourtID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Дата и текущее время в часовом поясе площадки
	now := uc.timeProvider.Now().In(uc.location)
	day := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, uc.location)

	if err := validateDate(day, now, uc.advanceBookingDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 3. Корт
	court, err := uc.catalogRepo.GetCourtByID(ctx, req.CourtID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrCourtNotFound) {
			uc.logger.Warn("GetAvailableSlots: court id=%d not found", req.CourtID)
			return nil, ErrCourtNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get court id=%d: %v", req.CourtID, err)
		return nil, fmt.Errorf("%w: failed to get court: %v", ErrInternal, err)
	}
	if !court.IsActive {
		uc.logger.Warn("GetAvailableSlots: court id=%d is inactive", req.CourtID)
		return nil, ErrCourtNotFound
	}

	// 4. Активные правила цены
	rules, err := uc.catalogRepo.ListPricingRules(ctx, true)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get pricing rules: %v", err)
		return nil, fmt.Errorf("%w: failed to get pricing rules: %v", ErrInternal, err)
	}

	// 5. Подтверждённые бронирования корта за день
	dayStart := day.UTC()
	dayEnd := day.AddDate(0, 0, 1).UTC()
	bookings, err := uc.bookingRepo.List(ctx, domain.BookingsFilter{
		CourtID: ptr.Ptr(req.CourtID),
		Status:  ptr.Ptr(domain.StatusConfirmed),
		From:    &dayStart,
		To:      &dayEnd,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 6. Слоты
	slots := buildSlots(generateSlotStarts(day, uc.hours, now), court, rules, bookings)

	uc.logger.Info("GetAvailableSlots: generated %d slots for court=%d, date=%s, booked=%d",
		len(slots), req.CourtID, day.Format(domain.DateFormat), len(bookings))

	return &Response{
		Date:      day,
		CourtID:   court.ID,
		CourtName: court.Name,
		Slots:     slots,
	}, nil
}
