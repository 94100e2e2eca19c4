package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CourtBookingService/pkg/psqlbuilder"
)

var courtColumns = []string{"id", "name", "category", "base_price", "is_active", "created_at"}

// CreateCourt создает корт
func (r *Repository) CreateCourt(ctx context.Context, court *domain.Court) (*domain.Court, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(courtsTable).
		Columns("name", "category", "base_price", "is_active").
		Values(court.Name, court.Category, court.BasePrice, court.IsActive).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateCourt - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&court.ID, &court.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: CreateCourt - execute insert: %v", ErrExecQuery, err)
	}

	return court, nil
}

// GetCourtByID получает корт по ID (в том числе неактивный)
func (r *Repository) GetCourtByID(ctx context.Context, id int64) (*domain.Court, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(courtColumns...).
		From(courtsTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetCourtByID - build select query: %v", ErrBuildQuery, err)
	}

	court, err := scanCourt(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrCourtNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetCourtByID - scan court: %v", ErrScanRow, err)
	}

	return court, nil
}

// ListCourts получает корты по имени. activeOnly оставляет только активные.
func (r *Repository) ListCourts(ctx context.Context, activeOnly bool) ([]*domain.Court, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(courtColumns...).
		From(courtsTable).
		OrderBy("name ASC", "id ASC")

	if activeOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_active": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListCourts - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListCourts - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	courts := make([]*domain.Court, 0)
	for rows.Next() {
		court, err := scanCourt(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListCourts - scan row: %v", ErrScanRow, err)
		}
		courts = append(courts, court)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListCourts - rows error: %v", ErrScanRow, err)
	}

	return courts, nil
}

// UpdateCourt обновляет корт
func (r *Repository) UpdateCourt(ctx context.Context, id int64, court *domain.Court) (*domain.Court, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(courtsTable).
		Set("name", court.Name).
		Set("category", court.Category).
		Set("base_price", court.BasePrice).
		Set("is_active", court.IsActive).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpdateCourt - build update query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&court.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrCourtNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateCourt - execute update: %v", ErrExecQuery, err)
	}

	court.ID = id

	return court, nil
}

// DeleteCourt удаляет корт
func (r *Repository) DeleteCourt(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, "DeleteCourt", courtsTable, id, ErrCourtNotFound)
}

func scanCourt(row rowScanner) (*domain.Court, error) {
	var court domain.Court

	err := row.Scan(
		&court.ID,
		&court.Name,
		&court.Category,
		&court.BasePrice,
		&court.IsActive,
		&court.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &court, nil
}
