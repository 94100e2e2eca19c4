package cancel_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/booking"
	waitlistRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/waitlist"
	"github.com/m04kA/SMC-CourtBookingService/pkg/metrics"
	"github.com/m04kA/SMC-CourtBookingService/pkg/ptr"
)

// UseCase use case для отмены бронирования с продвижением очереди ожидания
type UseCase struct {
	bookingRepo  BookingRepository
	waitlistRepo WaitlistRepository
	notifier     Notifier
	txManager    TransactionManager
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case. notifier может быть nil.
func NewUseCase(
	bookingRepo BookingRepository,
	waitlistRepo WaitlistRepository,
	notifier Notifier,
	txManager TransactionManager,
	m Metrics,
	logger Logger,
) *UseCase {
	if m == nil {
		// методы *metrics.Metrics безопасны для nil
		m = (*metrics.Metrics)(nil)
	}

	return &UseCase{
		bookingRepo:  bookingRepo,
		waitlistRepo: waitlistRepo,
		notifier:     notifier,
		txManager:    txManager,
		metrics:      m,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute отменяет бронирование и продвигает не более одной записи очереди на освободившийся слот.
// Отмена и продвижение фиксируются атомарно; уведомление отправляется после фиксации.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelBooking: booking=%d, user=%d, admin=%t", req.BookingID, req.UserID, req.IsAdmin)

	// 1. Валидация входных данных
	if req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingId must be positive", ErrInvalidInput)
	}
	if req.UserID <= 0 && !req.IsAdmin {
		return nil, fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	var (
		cancelled *domain.Booking
		promotion *domain.WaitlistPromotion
	)

	// 2. Отмена и продвижение очереди в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		promotion = nil

		// 2.1. Получаем бронирование с блокировкой строки
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("CancelBooking: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("CancelBooking: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// 2.2. Проверяем права
		if !req.IsAdmin && booking.UserID != req.UserID {
			uc.logger.Warn("CancelBooking: user id=%d is not the owner of booking id=%d", req.UserID, booking.ID)
			return ErrAccessDenied
		}

		// 2.3. Повторная отмена не имеет эффекта
		if !booking.CanBeCancelled() {
			uc.logger.Warn("CancelBooking: booking id=%d has status %s", booking.ID, booking.Status)
			return ErrCannotCancel
		}

		// 2.4. Блокируем слот: продвижение не должно пересечься с созданием брони и вступлением в очередь
		slot := booking.Slot()
		if err := uc.bookingRepo.LockSlot(txCtx, slot); err != nil {
			uc.logger.Error("CancelBooking: failed to lock slot %s: %v", slot, err)
			return fmt.Errorf("%w: failed to lock slot: %v", ErrInternal, err)
		}

		// 2.5. Отменяем бронирование
		if err := uc.bookingRepo.Cancel(txCtx, booking.ID); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrCannotCancel
			}
			uc.logger.Error("CancelBooking: failed to cancel booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to cancel booking: %v", ErrInternal, err)
		}

		// 2.6. Продвигаем первую ожидающую запись
		head, err := uc.waitlistRepo.FindHeadWaiting(txCtx, slot)
		switch {
		case errors.Is(err, waitlistRepo.ErrEntryNotFound):
			uc.logger.Info("CancelBooking: no waiting entries for slot %s", slot)
		case err != nil:
			uc.logger.Error("CancelBooking: failed to find waitlist head for slot %s: %v", slot, err)
			return fmt.Errorf("%w: failed to find waitlist head: %v", ErrInternal, err)
		default:
			if err := uc.waitlistRepo.MarkNotified(txCtx, head.ID); err != nil {
				uc.logger.Error("CancelBooking: failed to mark entry id=%d notified: %v", head.ID, err)
				return fmt.Errorf("%w: failed to mark waitlist entry: %v", ErrInternal, err)
			}
			promotion = &domain.WaitlistPromotion{
				EntryID:            head.ID,
				UserID:             head.UserID,
				CourtID:            booking.CourtID,
				CourtName:          booking.CourtName,
				StartTime:          booking.StartTime,
				CancelledBookingID: booking.ID,
			}
		}

		cancelled = booking
		return nil
	})

	if err != nil {
		if isBusinessError(err) || errors.Is(err, ErrInternal) {
			return nil, err
		}
		uc.logger.Error("CancelBooking: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}

	resp := &Response{
		BookingID:   cancelled.ID,
		Status:      string(domain.StatusCancelled),
		CancelledAt: uc.timeProvider.Now(),
	}

	uc.logger.Info("CancelBooking: successfully cancelled booking id=%d", cancelled.ID)

	// 3. Уведомляем продвинутого пользователя. Ошибка уведомления не отменяет отмену.
	if promotion != nil {
		uc.metrics.RecordWaitlistPromotion()
		resp.PromotedEntryID = ptr.Ptr(promotion.EntryID)
		resp.PromotedUserID = ptr.Ptr(promotion.UserID)

		uc.logger.Info("CancelBooking: promoted waitlist entry id=%d, user=%d", promotion.EntryID, promotion.UserID)
		uc.notify(ctx, promotion)
	}

	return resp, nil
}

func (uc *UseCase) notify(ctx context.Context, promotion *domain.WaitlistPromotion) {
	if uc.notifier == nil {
		return
	}

	if err := uc.notifier.NotifyWaitlistPromotion(ctx, promotion); err != nil {
		uc.logger.Warn("CancelBooking: failed to notify user=%d about entry id=%d: %v",
			promotion.UserID, promotion.EntryID, err)
	}
}

func isBusinessError(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrBookingNotFound) ||
		errors.Is(err, ErrAccessDenied) ||
		errors.Is(err, ErrCannotCancel)
}
