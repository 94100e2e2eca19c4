package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/internal/pricing"
	catalogRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/catalog/models"
)

// Service сервис каталога: ресурсы, правила ценообразования, расчёт цены
type Service struct {
	catalogRepo CatalogRepository
	location    *time.Location
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога.
// location - часовой пояс площадки, в котором срабатывают правила ценообразования.
func NewService(catalogRepo CatalogRepository, location *time.Location, logger Logger) *Service {
	if location == nil {
		location = time.UTC
	}

	return &Service{
		catalogRepo: catalogRepo,
		location:    location,
		logger:      logger,
	}
}

// GetActiveResources возвращает активные корты, доступных тренеров и доступный инвентарь
func (s *Service) GetActiveResources(ctx context.Context) (*models.ActiveResourcesResponse, error) {
	s.logger.Info("GetActiveResources: fetching active resources")

	courts, err := s.catalogRepo.ListCourts(ctx, true)
	if err != nil {
		s.logger.Error("GetActiveResources: failed to list courts: %v", err)
		return nil, fmt.Errorf("%w: GetActiveResources - list courts: %v", ErrInternal, err)
	}

	coaches, err := s.catalogRepo.ListCoaches(ctx, true)
	if err != nil {
		s.logger.Error("GetActiveResources: failed to list coaches: %v", err)
		return nil, fmt.Errorf("%w: GetActiveResources - list coaches: %v", ErrInternal, err)
	}

	equipment, err := s.catalogRepo.ListEquipment(ctx, true)
	if err != nil {
		s.logger.Error("GetActiveResources: failed to list equipment: %v", err)
		return nil, fmt.Errorf("%w: GetActiveResources - list equipment: %v", ErrInternal, err)
	}

	s.logger.Info("GetActiveResources: courts=%d, coaches=%d, equipment=%d", len(courts), len(coaches), len(equipment))

	return &models.ActiveResourcesResponse{
		Courts:    models.FromDomainCourtList(courts),
		Coaches:   models.FromDomainCoachList(coaches),
		Equipment: models.FromDomainEquipmentList(equipment),
	}, nil
}

// GetActivePricingRules возвращает активные правила ценообразования
func (s *Service) GetActivePricingRules(ctx context.Context) (*models.PricingRuleListResponse, error) {
	s.logger.Info("GetActivePricingRules: fetching active rules")

	rules, err := s.catalogRepo.ListPricingRules(ctx, true)
	if err != nil {
		s.logger.Error("GetActivePricingRules: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetActivePricingRules - repository error: %v", ErrInternal, err)
	}

	return &models.PricingRuleListResponse{Rules: models.FromDomainPricingRuleList(rules)}, nil
}

// Quote считает цену бронирования без его создания.
// Ресурсы проверяются так же, как при бронировании; занятость слота не проверяется.
func (s *Service) Quote(ctx context.Context, req *models.QuoteRequest) (*models.QuoteResponse, error) {
	s.logger.Info("Quote: court=%d, start=%s", req.CourtID, req.StartTime.Format(domain.TimeFormat))

	// 1. Валидация
	if err := validateQuote(req); err != nil {
		s.logger.Warn("Quote: validation failed: %v", err)
		return nil, err
	}

	// 2. Корт
	court, err := s.catalogRepo.GetCourtByID(ctx, req.CourtID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrCourtNotFound) {
			return nil, fmt.Errorf("%w: court %d not found", ErrResourceUnavailable, req.CourtID)
		}
		s.logger.Error("Quote: failed to get court id=%d: %v", req.CourtID, err)
		return nil, fmt.Errorf("%w: Quote - get court: %v", ErrInternal, err)
	}
	if !court.IsActive {
		return nil, fmt.Errorf("%w: court %d is inactive", ErrResourceUnavailable, court.ID)
	}

	// 3. Тренер
	coachSurcharge := 0.0
	if req.CoachID != nil {
		coach, err := s.catalogRepo.GetCoachByID(ctx, *req.CoachID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrCoachNotFound) {
				return nil, fmt.Errorf("%w: coach %d not found", ErrResourceUnavailable, *req.CoachID)
			}
			s.logger.Error("Quote: failed to get coach id=%d: %v", *req.CoachID, err)
			return nil, fmt.Errorf("%w: Quote - get coach: %v", ErrInternal, err)
		}
		if !coach.IsAvailable {
			return nil, fmt.Errorf("%w: coach %d is unavailable", ErrResourceUnavailable, coach.ID)
		}
		coachSurcharge = coach.HourlyRate
	}

	// 4. Инвентарь
	equipmentSurcharge := 0.0
	for _, line := range req.Equipment {
		item, err := s.catalogRepo.GetEquipmentByID(ctx, line.ItemID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrEquipmentNotFound) {
				return nil, fmt.Errorf("%w: equipment %d not found", ErrResourceUnavailable, line.ItemID)
			}
			s.logger.Error("Quote: failed to get equipment id=%d: %v", line.ItemID, err)
			return nil, fmt.Errorf("%w: Quote - get equipment: %v", ErrInternal, err)
		}
		if !item.IsAvailable {
			return nil, fmt.Errorf("%w: equipment %d is unavailable", ErrResourceUnavailable, item.ID)
		}
		equipmentSurcharge += item.HourlyRate * float64(line.Quantity)
	}

	// 5. Активные правила и расчёт
	rules, err := s.catalogRepo.ListPricingRules(ctx, true)
	if err != nil {
		s.logger.Error("Quote: failed to list pricing rules: %v", err)
		return nil, fmt.Errorf("%w: Quote - list pricing rules: %v", ErrInternal, err)
	}

	quote := pricing.Breakdown(
		court.BasePrice,
		req.StartTime.In(s.location),
		court.Category,
		rules,
		coachSurcharge,
		equipmentSurcharge,
	)

	s.logger.Info("Quote: court=%d total=%.2f, applied rules=%d", court.ID, quote.Total, len(quote.Applied))
	return models.FromQuote(court.ID, req.StartTime.UTC(), quote), nil
}
