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

var coachColumns = []string{"id", "name", "hourly_rate", "is_available", "specialization", "created_at"}

// CreateCoach создает тренера
func (r *Repository) CreateCoach(ctx context.Context, coach *domain.Coach) (*domain.Coach, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(coachesTable).
		Columns("name", "hourly_rate", "is_available", "specialization").
		Values(coach.Name, coach.HourlyRate, coach.IsAvailable, coach.Specialization).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateCoach - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&coach.ID, &coach.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: CreateCoach - execute insert: %v", ErrExecQuery, err)
	}

	return coach, nil
}

// GetCoachByID получает тренера по ID
func (r *Repository) GetCoachByID(ctx context.Context, id int64) (*domain.Coach, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(coachColumns...).
		From(coachesTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetCoachByID - build select query: %v", ErrBuildQuery, err)
	}

	coach, err := scanCoach(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrCoachNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetCoachByID - scan coach: %v", ErrScanRow, err)
	}

	return coach, nil
}

// ListCoaches получает тренеров. availableOnly оставляет только доступных.
func (r *Repository) ListCoaches(ctx context.Context, availableOnly bool) ([]*domain.Coach, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(coachColumns...).
		From(coachesTable).
		OrderBy("name ASC", "id ASC")

	if availableOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_available": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListCoaches - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListCoaches - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	coaches := make([]*domain.Coach, 0)
	for rows.Next() {
		coach, err := scanCoach(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListCoaches - scan row: %v", ErrScanRow, err)
		}
		coaches = append(coaches, coach)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListCoaches - rows error: %v", ErrScanRow, err)
	}

	return coaches, nil
}

// UpdateCoach обновляет тренера
func (r *Repository) UpdateCoach(ctx context.Context, id int64, coach *domain.Coach) (*domain.Coach, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(coachesTable).
		Set("name", coach.Name).
		Set("hourly_rate", coach.HourlyRate).
		Set("is_available", coach.IsAvailable).
		Set("specialization", coach.Specialization).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpdateCoach - build update query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&coach.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrCoachNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateCoach - execute update: %v", ErrExecQuery, err)
	}

	coach.ID = id

	return coach, nil
}

// DeleteCoach удаляет тренера
func (r *Repository) DeleteCoach(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, "DeleteCoach", coachesTable, id, ErrCoachNotFound)
}

func scanCoach(row rowScanner) (*domain.Coach, error) {
	var coach domain.Coach

	err := row.Scan(
		&coach.ID,
		&coach.Name,
		&coach.HourlyRate,
		&coach.IsAvailable,
		&coach.Specialization,
		&coach.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &coach, nil
}
