// Команда seed заполняет пустой каталог демонстрационными данными:
// корты, тренеры, инвентарь и правила ценообразования.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq"

	"github.com/m04kA/SMC-CourtBookingService/internal/config"
	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-CourtBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CourtBookingService/pkg/logger"
	"github.com/m04kA/SMC-CourtBookingService/pkg/txmanager"
)

// CatalogRepository операции каталога, нужные для наполнения
type CatalogRepository interface {
	ListCourts(ctx context.Context, activeOnly bool) ([]*domain.Court, error)
	CreateCourt(ctx context.Context, court *domain.Court) (*domain.Court, error)
	CreateCoach(ctx context.Context, coach *domain.Coach) (*domain.Coach, error)
	CreateEquipment(ctx context.Context, item *domain.EquipmentItem) (*domain.EquipmentItem, error)
	CreatePricingRule(ctx context.Context, rule *domain.PricingRule) (*domain.PricingRule, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

var (
	seedCourts = []domain.Court{
		{Name: "Court 1 (Indoor)", Category: domain.CourtIndoor, BasePrice: 20, IsActive: true},
		{Name: "Court 2 (Indoor)", Category: domain.CourtIndoor, BasePrice: 20, IsActive: true},
		{Name: "Court 3 (Outdoor)", Category: domain.CourtOutdoor, BasePrice: 15, IsActive: true},
		{Name: "Court 4 (Outdoor)", Category: domain.CourtOutdoor, BasePrice: 15, IsActive: true},
	}

	seedCoaches = []domain.Coach{
		{Name: "Coach Anjali", HourlyRate: 30, IsAvailable: true, Specialization: "Advanced Training"},
		{Name: "Coach Vikram", HourlyRate: 25, IsAvailable: true, Specialization: "Beginners"},
		{Name: "Coach David", HourlyRate: 35, IsAvailable: true, Specialization: "Professional"},
	}

	seedEquipment = []domain.EquipmentItem{
		{Name: "Professional Racket", HourlyRate: 5, TotalStock: 10, IsAvailable: true},
		{Name: "Court Shoes", HourlyRate: 4, TotalStock: 8, IsAvailable: true},
	}

	seedPricingRules = []domain.PricingRule{
		{Name: "Peak Hours (6-9 PM)", Kind: domain.RulePeak, Multiplier: 1.5, IsActive: true,
			Description: "50% surcharge during peak evening hours"},
		{Name: "Weekend Rate", Kind: domain.RuleWeekend, Multiplier: 1.3, IsActive: true,
			Description: "30% surcharge on Saturdays and Sundays"},
		{Name: "Indoor Premium", Kind: domain.RuleIndoorPremium, Multiplier: 1.2, IsActive: true,
			Description: "20% premium for indoor courts"},
	}
)

func main() {
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}

	wrappedDB := dbmetrics.Wrap(db, nil)
	seeded, err := seedCatalog(context.Background(),
		catalogRepo.NewRepository(wrappedDB),
		txmanager.NewTransactionManager(wrappedDB),
		log,
	)
	if err != nil {
		log.Fatal("Seeding failed: %v", err)
	}
	if !seeded {
		log.Info("Catalog already contains courts, nothing to seed")
		return
	}

	log.Info("Database successfully seeded")
}

// seedCatalog наполняет каталог в одной транзакции. Непустой каталог не трогается.
func seedCatalog(ctx context.Context, repo CatalogRepository, txManager TransactionManager, log Logger) (bool, error) {
	seeded := false

	err := txManager.Do(ctx, func(ctx context.Context) error {
		existing, err := repo.ListCourts(ctx, false)
		if err != nil {
			return fmt.Errorf("list courts: %w", err)
		}
		if len(existing) > 0 {
			return nil
		}

		for i := range seedCourts {
			if _, err := repo.CreateCourt(ctx, &seedCourts[i]); err != nil {
				return fmt.Errorf("create court %q: %w", seedCourts[i].Name, err)
			}
		}
		log.Info("Courts created: %d", len(seedCourts))

		for i := range seedCoaches {
			if _, err := repo.CreateCoach(ctx, &seedCoaches[i]); err != nil {
				return fmt.Errorf("create coach %q: %w", seedCoaches[i].Name, err)
			}
		}
		log.Info("Coaches created: %d", len(seedCoaches))

		for i := range seedEquipment {
			if _, err := repo.CreateEquipment(ctx, &seedEquipment[i]); err != nil {
				return fmt.Errorf("create equipment %q: %w", seedEquipment[i].Name, err)
			}
		}
		log.Info("Equipment created: %d", len(seedEquipment))

		for i := range seedPricingRules {
			if _, err := repo.CreatePricingRule(ctx, &seedPricingRules[i]); err != nil {
				return fmt.Errorf("create pricing rule %q: %w", seedPricingRules[i].Name, err)
			}
		}
		log.Info("Pricing rules created: %d", len(seedPricingRules))

		seeded = true
		return nil
	})

	return seeded, err
}
