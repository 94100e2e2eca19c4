package catalog

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CourtBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CourtBookingService/pkg/psqlbuilder"
)

const (
	courtsTable       = "courts"
	coachesTable      = "coaches"
	equipmentTable    = "equipment"
	pricingRulesTable = "pricing_rules"
)

// Repository репозиторий каталога: корты, тренеры, инвентарь и правила ценообразования.
// Каталог всегда читается из БД, без кэширования между запросами.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CountActiveCourts возвращает число активных кортов
func (r *Repository) CountActiveCourts(ctx context.Context) (int64, error) {
	return r.count(ctx, "CountActiveCourts", courtsTable, squirrel.Eq{"is_active": true})
}

// CountAvailableCoaches возвращает число доступных тренеров
func (r *Repository) CountAvailableCoaches(ctx context.Context) (int64, error) {
	return r.count(ctx, "CountAvailableCoaches", coachesTable, squirrel.Eq{"is_available": true})
}

func (r *Repository) count(ctx context.Context, op, table string, where squirrel.Eq) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From(table).
		Where(where).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var count int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: %s - scan count: %v", ErrScanRow, op, err)
	}

	return count, nil
}

// deleteByID удаляет строку по id. notFound возвращается, если строки нет.
// Ресурс, на который ссылаются бронирования, удалить нельзя: история хранит ссылку.
func (r *Repository) deleteByID(ctx context.Context, op, table string, id int64, notFound error) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: %s - build delete query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if dbmetrics.IsForeignKeyViolation(err) {
			return ErrResourceInUse
		}
		return fmt.Errorf("%w: %s - execute delete: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return notFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}
