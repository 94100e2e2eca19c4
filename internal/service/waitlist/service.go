package waitlist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/catalog"
	waitlistRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/waitlist"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/waitlist/models"
	"github.com/m04kA/SMC-CourtBookingService/pkg/metrics"
)

// Service сервис очереди ожидания
type Service struct {
	waitlistRepo WaitlistRepository
	slotLocker   SlotLocker
	courtRepo    CourtRepository
	txManager    TransactionManager
	metrics      Metrics
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса очереди ожидания
func NewService(
	waitlistRepo WaitlistRepository,
	slotLocker SlotLocker,
	courtRepo CourtRepository,
	txManager TransactionManager,
	m Metrics,
	location *time.Location,
	logger Logger,
) *Service {
	if m == nil {
		m = (*metrics.Metrics)(nil)
	}
	if location == nil {
		location = time.UTC
	}

	return &Service{
		waitlistRepo: waitlistRepo,
		slotLocker:   slotLocker,
		courtRepo:    courtRepo,
		txManager:    txManager,
		metrics:      m,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Join ставит пользователя в очередь на слот.
// Занятость слота не проверяется: встать в очередь можно и на свободный слот.
func (s *Service) Join(ctx context.Context, req *models.JoinRequest) (*models.EntryResponse, error) {
	s.logger.Info("JoinWaitlist: user=%d, court=%d, start=%s", req.UserID, req.CourtID, req.StartTime.Format(domain.TimeFormat))

	// 1. Валидация входных данных
	if err := s.validate(req); err != nil {
		s.logger.Warn("JoinWaitlist: validation failed: %v", err)
		return nil, err
	}

	slot := domain.Slot{CourtID: req.CourtID, StartTime: req.StartTime.UTC()}

	var entry *domain.WaitlistEntry

	// 2. Вступление в очередь под блокировкой слота
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// 2.1. Блокируем слот: отмена бронирования читает голову очереди под той же блокировкой
		if err := s.slotLocker.LockSlot(txCtx, slot); err != nil {
			s.logger.Error("JoinWaitlist: failed to lock slot %s: %v", slot, err)
			return fmt.Errorf("%w: failed to lock slot: %v", ErrInternal, err)
		}

		// 2.2. Корт должен существовать и быть активным
		court, err := s.courtRepo.GetCourtByID(txCtx, req.CourtID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrCourtNotFound) {
				s.logger.Warn("JoinWaitlist: court id=%d not found", req.CourtID)
				return ErrCourtNotFound
			}
			s.logger.Error("JoinWaitlist: failed to get court id=%d: %v", req.CourtID, err)
			return fmt.Errorf("%w: failed to get court: %v", ErrInternal, err)
		}
		if !court.IsActive {
			s.logger.Warn("JoinWaitlist: court id=%d is inactive", req.CourtID)
			return ErrCourtNotFound
		}

		// 2.3. Проверяем, что пользователь ещё не ждёт этот слот
		exists, err := s.waitlistRepo.ExistsWaiting(txCtx, req.UserID, slot)
		if err != nil {
			s.logger.Error("JoinWaitlist: failed to check existing entry: %v", err)
			return fmt.Errorf("%w: failed to check existing entry: %v", ErrInternal, err)
		}
		if exists {
			s.logger.Warn("JoinWaitlist: user=%d already waiting for slot %s", req.UserID, slot)
			return ErrDuplicateWaitlistEntry
		}

		// 2.4. Создаём запись
		created, err := s.waitlistRepo.Create(txCtx, req.UserID, slot)
		if err != nil {
			if errors.Is(err, waitlistRepo.ErrDuplicateEntry) {
				s.logger.Warn("JoinWaitlist: duplicate entry for user=%d, slot %s", req.UserID, slot)
				return ErrDuplicateWaitlistEntry
			}
			s.logger.Error("JoinWaitlist: failed to create entry: %v", err)
			return fmt.Errorf("%w: failed to create entry: %v", ErrInternal, err)
		}

		entry = created
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrDuplicateWaitlistEntry) || errors.Is(err, ErrCourtNotFound) || errors.Is(err, ErrInternal) {
			return nil, err
		}
		s.logger.Error("JoinWaitlist: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}

	s.metrics.RecordWaitlistJoin()
	s.logger.Info("JoinWaitlist: created entry id=%d for user=%d", entry.ID, entry.UserID)

	return models.FromDomainEntry(entry), nil
}

// GetUserEntries получает записи очереди пользователя, сначала самые новые
func (s *Service) GetUserEntries(ctx context.Context, userID int64) (*models.EntryListResponse, error) {
	s.logger.Info("GetUserEntries: fetching waitlist entries for user=%d", userID)

	if userID <= 0 {
		return nil, fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	entries, err := s.waitlistRepo.GetByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("GetUserEntries: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: GetUserEntries - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserEntries: successfully fetched %d entries for user=%d", len(entries), userID)
	return models.FromDomainEntryList(entries), nil
}

func (s *Service) validate(req *models.JoinRequest) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	if req.CourtID <= 0 {
		return fmt.Errorf("%w: courtId must be positive", ErrInvalidInput)
	}
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	slot := domain.Slot{StartTime: req.StartTime.In(s.location)}
	if !slot.IsAligned() {
		return fmt.Errorf("%w: startTime must be aligned to a whole hour", ErrInvalidInput)
	}
	if req.StartTime.Before(s.timeProvider.Now()) {
		return fmt.Errorf("%w: startTime is in the past", ErrInvalidInput)
	}

	return nil
}
