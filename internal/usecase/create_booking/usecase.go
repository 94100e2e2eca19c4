package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-CourtBookingService/internal/pricing"
	"github.com/m04kA/SMC-CourtBookingService/pkg/metrics"
	"github.com/m04kA/SMC-CourtBookingService/pkg/ptr"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	catalogRepo  CatalogRepository
	txManager    TransactionManager
	metrics      Metrics
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case.
// location - часовой пояс площадки: в нём проверяется кратность часу и считаются правила цены.
func NewUseCase(
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	txManager TransactionManager,
	m Metrics,
	location *time.Location,
	logger Logger,
) *UseCase {
	if m == nil {
		// методы *metrics.Metrics безопасны для nil
		m = (*metrics.Metrics)(nil)
	}
	if location == nil {
		location = time.UTC
	}

	return &UseCase{
		bookingRepo:  bookingRepo,
		catalogRepo:  catalogRepo,
		txManager:    txManager,
		metrics:      m,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Все проверки и вставка выполняются в одной сериализуемой транзакции под блокировкой слота,
// поэтому из конкурентных запросов на один слот успешен ровно один.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, court=%d, start=%s, coach=%v, equipment=%d",
		req.UserID, req.CourtID, req.StartTime.Format(domain.TimeFormat), ptr.Deref(req.CoachID, 0), len(req.Equipment))

	// 1. Валидация входных данных
	now := uc.timeProvider.Now()
	if err := validateRequest(req, now, uc.location); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		uc.metrics.RecordBookingAttempt(metrics.BookingResultInvalid)
		return nil, err
	}

	slot := domain.Slot{CourtID: req.CourtID, StartTime: req.StartTime.UTC()}

	var result *domain.Booking

	// 2. Выполняем проверки и вставку в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Блокируем слот до конца транзакции
		if err := uc.bookingRepo.LockSlot(txCtx, slot); err != nil {
			uc.logger.Error("CreateBooking: failed to lock slot %s: %v", slot, err)
			return fmt.Errorf("%w: failed to lock slot: %v", ErrInternal, err)
		}

		// 2.2. Корт существует и активен
		court, err := uc.catalogRepo.GetCourtByID(txCtx, req.CourtID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrCourtNotFound) {
				uc.logger.Warn("CreateBooking: court id=%d not found", req.CourtID)
				return fmt.Errorf("%w: court %d not found", ErrResourceUnavailable, req.CourtID)
			}
			uc.logger.Error("CreateBooking: failed to get court id=%d: %v", req.CourtID, err)
			return fmt.Errorf("%w: failed to get court: %v", ErrInternal, err)
		}
		if !court.IsActive {
			uc.logger.Warn("CreateBooking: court id=%d is not active", req.CourtID)
			return fmt.Errorf("%w: court %d is not active", ErrResourceUnavailable, req.CourtID)
		}

		// 2.3. Слот свободен
		taken, err := uc.bookingRepo.ExistsConfirmed(txCtx, slot)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to check slot %s: %v", slot, err)
			return fmt.Errorf("%w: failed to check slot: %v", ErrInternal, err)
		}
		if taken {
			uc.logger.Warn("CreateBooking: slot %s is already booked", slot)
			return ErrSlotConflict
		}

		// 2.4. Тренер существует и доступен
		var coach *domain.Coach
		if req.CoachID != nil {
			coach, err = uc.catalogRepo.GetCoachByID(txCtx, *req.CoachID)
			if err != nil {
				if errors.Is(err, catalogRepo.ErrCoachNotFound) {
					uc.logger.Warn("CreateBooking: coach id=%d not found", *req.CoachID)
					return fmt.Errorf("%w: coach %d not found", ErrResourceUnavailable, *req.CoachID)
				}
				uc.logger.Error("CreateBooking: failed to get coach id=%d: %v", *req.CoachID, err)
				return fmt.Errorf("%w: failed to get coach: %v", ErrInternal, err)
			}
			if !coach.IsAvailable {
				uc.logger.Warn("CreateBooking: coach id=%d is not available", coach.ID)
				return fmt.Errorf("%w: coach %d is not available", ErrResourceUnavailable, coach.ID)
			}
		}

		// 2.5. Каждая позиция инвентаря существует и доступна
		equipment := make([]domain.BookingEquipment, 0, len(req.Equipment))
		for _, line := range req.Equipment {
			item, err := uc.catalogRepo.GetEquipmentByID(txCtx, line.ItemID)
			if err != nil {
				if errors.Is(err, catalogRepo.ErrEquipmentNotFound) {
					uc.logger.Warn("CreateBooking: equipment id=%d not found", line.ItemID)
					return fmt.Errorf("%w: equipment %d not found", ErrResourceUnavailable, line.ItemID)
				}
				uc.logger.Error("CreateBooking: failed to get equipment id=%d: %v", line.ItemID, err)
				return fmt.Errorf("%w: failed to get equipment: %v", ErrInternal, err)
			}
			if !item.IsAvailable {
				uc.logger.Warn("CreateBooking: equipment id=%d is not available", item.ID)
				return fmt.Errorf("%w: equipment %d is not available", ErrResourceUnavailable, item.ID)
			}

			equipment = append(equipment, domain.BookingEquipment{
				ItemID:   item.ID,
				Quantity: line.Quantity,
				ItemName: item.Name,
				ItemRate: item.HourlyRate,
			})
		}

		// 2.6. Считаем цену по активным правилам
		rules, err := uc.catalogRepo.ListPricingRules(txCtx, true)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get pricing rules: %v", err)
			return fmt.Errorf("%w: failed to get pricing rules: %v", ErrInternal, err)
		}

		booking := &domain.Booking{
			UserID:        req.UserID,
			UserName:      req.UserName,
			CourtID:       court.ID,
			Equipment:     equipment,
			StartTime:     slot.StartTime,
			Status:        domain.StatusConfirmed,
			CourtName:     court.Name,
			CourtCategory: court.Category,
		}

		coachSurcharge := 0.0
		if coach != nil {
			coachSurcharge = coach.HourlyRate
			booking.CoachID = ptr.Ptr(coach.ID)
			booking.CoachName = ptr.Ptr(coach.Name)
			booking.CoachRate = ptr.Ptr(coach.HourlyRate)
		}

		booking.TotalPrice = pricing.Calculate(
			court.BasePrice,
			req.StartTime.In(uc.location),
			court.Category,
			rules,
			coachSurcharge,
			booking.EquipmentSurcharge(),
		)

		// 2.7. Сохраняем бронирование
		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateBooking: slot %s taken concurrently", slot)
				return ErrSlotConflict
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		uc.metrics.RecordBookingAttempt(resultLabel(err))
		if isBusinessError(err) || errors.Is(err, ErrInternal) {
			return nil, err
		}
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}

	uc.metrics.RecordBookingAttempt(metrics.BookingResultCreated)
	uc.logger.Info("CreateBooking: successfully created booking id=%d, price=%.2f", result.ID, result.TotalPrice)

	return toResponse(result), nil
}

func isBusinessError(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrResourceUnavailable) ||
		errors.Is(err, ErrSlotConflict)
}

func resultLabel(err error) string {
	switch {
	case errors.Is(err, ErrSlotConflict):
		return metrics.BookingResultConflict
	case errors.Is(err, ErrResourceUnavailable):
		return metrics.BookingResultUnavailable
	case errors.Is(err, ErrInvalidInput):
		return metrics.BookingResultInvalid
	default:
		return metrics.BookingResultError
	}
}

func toResponse(b *domain.Booking) *Response {
	return &Response{
		ID:            b.ID,
		UserID:        b.UserID,
		UserName:      b.UserName,
		CourtID:       b.CourtID,
		CoachID:       b.CoachID,
		StartTime:     b.StartTime,
		EndTime:       b.EndTime(),
		TotalPrice:    b.TotalPrice,
		Status:        string(b.Status),
		CourtName:     b.CourtName,
		CourtCategory: string(b.CourtCategory),
		CoachName:     b.CoachName,
		CoachRate:     b.CoachRate,
		Equipment:     b.Equipment,
		CreatedAt:     b.CreatedAt,
	}
}
