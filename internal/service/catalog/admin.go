package catalog

import (
	"context"
	"errors"
	"fmt"

	catalogRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/catalog/models"
)

// Административное управление каталогом. Бизнес-логики кроме валидации полей нет.

// ListCourts возвращает все корты, включая неактивные
func (s *Service) ListCourts(ctx context.Context) (*models.CourtListResponse, error) {
	courts, err := s.catalogRepo.ListCourts(ctx, false)
	if err != nil {
		return nil, s.mapError("ListCourts", err, nil, nil)
	}
	return &models.CourtListResponse{Courts: models.FromDomainCourtList(courts)}, nil
}

// CreateCourt создает корт
func (s *Service) CreateCourt(ctx context.Context, req *models.CourtRequest) (*models.CourtResponse, error) {
	court := req.ToDomain()
	if err := validateCourt(court); err != nil {
		s.logger.Warn("CreateCourt: validation failed: %v", err)
		return nil, err
	}

	created, err := s.catalogRepo.CreateCourt(ctx, court)
	if err != nil {
		return nil, s.mapError("CreateCourt", err, nil, nil)
	}

	s.logger.Info("CreateCourt: created court id=%d", created.ID)
	return models.FromDomainCourt(created), nil
}

// UpdateCourt заменяет данные корта
func (s *Service) UpdateCourt(ctx context.Context, id int64, req *models.CourtRequest) (*models.CourtResponse, error) {
	court := req.ToDomain()
	if err := validateCourt(court); err != nil {
		s.logger.Warn("UpdateCourt: validation failed for id=%d: %v", id, err)
		return nil, err
	}

	updated, err := s.catalogRepo.UpdateCourt(ctx, id, court)
	if err != nil {
		return nil, s.mapError("UpdateCourt", err, catalogRepo.ErrCourtNotFound, ErrCourtNotFound)
	}

	s.logger.Info("UpdateCourt: updated court id=%d", id)
	return models.FromDomainCourt(updated), nil
}

// DeleteCourt удаляет корт. Корт, на который ссылаются бронирования, удалить нельзя.
func (s *Service) DeleteCourt(ctx context.Context, id int64) error {
	if err := s.catalogRepo.DeleteCourt(ctx, id); err != nil {
		return s.mapError("DeleteCourt", err, catalogRepo.ErrCourtNotFound, ErrCourtNotFound)
	}

	s.logger.Info("DeleteCourt: deleted court id=%d", id)
	return nil
}

// ListCoaches возвращает всех тренеров
func (s *Service) ListCoaches(ctx context.Context) (*models.CoachListResponse, error) {
	coaches, err := s.catalogRepo.ListCoaches(ctx, false)
	if err != nil {
		return nil, s.mapError("ListCoaches", err, nil, nil)
	}
	return &models.CoachListResponse{Coaches: models.FromDomainCoachList(coaches)}, nil
}

// CreateCoach создает тренера
func (s *Service) CreateCoach(ctx context.Context, req *models.CoachRequest) (*models.CoachResponse, error) {
	coach := req.ToDomain()
	if err := validateCoach(coach); err != nil {
		s.logger.Warn("CreateCoach: validation failed: %v", err)
		return nil, err
	}

	created, err := s.catalogRepo.CreateCoach(ctx, coach)
	if err != nil {
		return nil, s.mapError("CreateCoach", err, nil, nil)
	}

	s.logger.Info("CreateCoach: created coach id=%d", created.ID)
	return models.FromDomainCoach(created), nil
}

// UpdateCoach заменяет данные тренера
func (s *Service) UpdateCoach(ctx context.Context, id int64, req *models.CoachRequest) (*models.CoachResponse, error) {
	coach := req.ToDomain()
	if err := validateCoach(coach); err != nil {
		s.logger.Warn("UpdateCoach: validation failed for id=%d: %v", id, err)
		return nil, err
	}

	updated, err := s.catalogRepo.UpdateCoach(ctx, id, coach)
	if err != nil {
		return nil, s.mapError("UpdateCoach", err, catalogRepo.ErrCoachNotFound, ErrCoachNotFound)
	}

	s.logger.Info("UpdateCoach: updated coach id=%d", id)
	return models.FromDomainCoach(updated), nil
}

// DeleteCoach удаляет тренера
func (s *Service) DeleteCoach(ctx context.Context, id int64) error {
	if err := s.catalogRepo.DeleteCoach(ctx, id); err != nil {
		return s.mapError("DeleteCoach", err, catalogRepo.ErrCoachNotFound, ErrCoachNotFound)
	}

	s.logger.Info("DeleteCoach: deleted coach id=%d", id)
	return nil
}

// ListEquipment возвращает весь инвентарь
func (s *Service) ListEquipment(ctx context.Context) (*models.EquipmentListResponse, error) {
	items, err := s.catalogRepo.ListEquipment(ctx, false)
	if err != nil {
		return nil, s.mapError("ListEquipment", err, nil, nil)
	}
	return &models.EquipmentListResponse{Equipment: models.FromDomainEquipmentList(items)}, nil
}

// CreateEquipment создает позицию инвентаря
func (s *Service) CreateEquipment(ctx context.Context, req *models.EquipmentRequest) (*models.EquipmentResponse, error) {
	item := req.ToDomain()
	if err := validateEquipment(item); err != nil {
		s.logger.Warn("CreateEquipment: validation failed: %v", err)
		return nil, err
	}

	created, err := s.catalogRepo.CreateEquipment(ctx, item)
	if err != nil {
		return nil, s.mapError("CreateEquipment", err, nil, nil)
	}

	s.logger.Info("CreateEquipment: created equipment id=%d", created.ID)
	return models.FromDomainEquipment(created), nil
}

// UpdateEquipment заменяет данные инвентаря
func (s *Service) UpdateEquipment(ctx context.Context, id int64, req *models.EquipmentRequest) (*models.EquipmentResponse, error) {
	item := req.ToDomain()
	if err := validateEquipment(item); err != nil {
		s.logger.Warn("UpdateEquipment: validation failed for id=%d: %v", id, err)
		return nil, err
	}

	updated, err := s.catalogRepo.UpdateEquipment(ctx, id, item)
	if err != nil {
		return nil, s.mapError("UpdateEquipment", err, catalogRepo.ErrEquipmentNotFound, ErrEquipmentNotFound)
	}

	s.logger.Info("UpdateEquipment: updated equipment id=%d", id)
	return models.FromDomainEquipment(updated), nil
}

// DeleteEquipment удаляет позицию инвентаря
func (s *Service) DeleteEquipment(ctx context.Context, id int64) error {
	if err := s.catalogRepo.DeleteEquipment(ctx, id); err != nil {
		return s.mapError("DeleteEquipment", err, catalogRepo.ErrEquipmentNotFound, ErrEquipmentNotFound)
	}

	s.logger.Info("DeleteEquipment: deleted equipment id=%d", id)
	return nil
}

// ListPricingRules возвращает все правила, включая выключенные
func (s *Service) ListPricingRules(ctx context.Context) (*models.PricingRuleListResponse, error) {
	rules, err := s.catalogRepo.ListPricingRules(ctx, false)
	if err != nil {
		return nil, s.mapError("ListPricingRules", err, nil, nil)
	}
	return &models.PricingRuleListResponse{Rules: models.FromDomainPricingRuleList(rules)}, nil
}

// CreatePricingRule создает правило ценообразования
func (s *Service) CreatePricingRule(ctx context.Context, req *models.PricingRuleRequest) (*models.PricingRuleResponse, error) {
	rule := req.ToDomain()
	if err := validatePricingRule(rule); err != nil {
		s.logger.Warn("CreatePricingRule: validation failed: %v", err)
		return nil, err
	}

	created, err := s.catalogRepo.CreatePricingRule(ctx, rule)
	if err != nil {
		return nil, s.mapError("CreatePricingRule", err, nil, nil)
	}

	s.logger.Info("CreatePricingRule: created rule id=%d kind=%s", created.ID, created.Kind)
	return models.FromDomainPricingRule(created), nil
}

// UpdatePricingRule заменяет правило. Через него же правило включается и выключается.
func (s *Service) UpdatePricingRule(ctx context.Context, id int64, req *models.PricingRuleRequest) (*models.PricingRuleResponse, error) {
	rule := req.ToDomain()
	if err := validatePricingRule(rule); err != nil {
		s.logger.Warn("UpdatePricingRule: validation failed for id=%d: %v", id, err)
		return nil, err
	}

	updated, err := s.catalogRepo.UpdatePricingRule(ctx, id, rule)
	if err != nil {
		return nil, s.mapError("UpdatePricingRule", err, catalogRepo.ErrPricingRuleNotFound, ErrPricingRuleNotFound)
	}

	s.logger.Info("UpdatePricingRule: updated rule id=%d, active=%t", id, updated.IsActive)
	return models.FromDomainPricingRule(updated), nil
}

// DeletePricingRule удаляет правило
func (s *Service) DeletePricingRule(ctx context.Context, id int64) error {
	if err := s.catalogRepo.DeletePricingRule(ctx, id); err != nil {
		return s.mapError("DeletePricingRule", err, catalogRepo.ErrPricingRuleNotFound, ErrPricingRuleNotFound)
	}

	s.logger.Info("DeletePricingRule: deleted rule id=%d", id)
	return nil
}

// mapError переводит ошибку репозитория в ошибку сервиса
func (s *Service) mapError(op string, err error, repoNotFound, notFound error) error {
	switch {
	case repoNotFound != nil && errors.Is(err, repoNotFound):
		s.logger.Warn("%s: %v", op, err)
		return notFound
	case errors.Is(err, catalogRepo.ErrResourceInUse):
		s.logger.Warn("%s: %v", op, err)
		return ErrResourceInUse
	default:
		s.logger.Error("%s: repository error: %v", op, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
}
