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

var equipmentColumns = []string{"id", "name", "hourly_rate", "total_stock", "is_available", "created_at"}

// CreateEquipment создает позицию инвентаря
func (r *Repository) CreateEquipment(ctx context.Context, item *domain.EquipmentItem) (*domain.EquipmentItem, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(equipmentTable).
		Columns("name", "hourly_rate", "total_stock", "is_available").
		Values(item.Name, item.HourlyRate, item.TotalStock, item.IsAvailable).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateEquipment - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&item.ID, &item.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: CreateEquipment - execute insert: %v", ErrExecQuery, err)
	}

	return item, nil
}

// GetEquipmentByID получает позицию инвентаря по ID
func (r *Repository) GetEquipmentByID(ctx context.Context, id int64) (*domain.EquipmentItem, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(equipmentColumns...).
		From(equipmentTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetEquipmentByID - build select query: %v", ErrBuildQuery, err)
	}

	item, err := scanEquipment(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrEquipmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetEquipmentByID - scan equipment: %v", ErrScanRow, err)
	}

	return item, nil
}

// ListEquipment получает инвентарь. availableOnly оставляет только доступный.
func (r *Repository) ListEquipment(ctx context.Context, availableOnly bool) ([]*domain.EquipmentItem, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(equipmentColumns...).
		From(equipmentTable).
		OrderBy("name ASC", "id ASC")

	if availableOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_available": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListEquipment - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListEquipment - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	items := make([]*domain.EquipmentItem, 0)
	for rows.Next() {
		item, err := scanEquipment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListEquipment - scan row: %v", ErrScanRow, err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListEquipment - rows error: %v", ErrScanRow, err)
	}

	return items, nil
}

// UpdateEquipment обновляет позицию инвентаря
func (r *Repository) UpdateEquipment(ctx context.Context, id int64, item *domain.EquipmentItem) (*domain.EquipmentItem, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(equipmentTable).
		Set("name", item.Name).
		Set("hourly_rate", item.HourlyRate).
		Set("total_stock", item.TotalStock).
		Set("is_available", item.IsAvailable).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpdateEquipment - build update query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&item.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrEquipmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateEquipment - execute update: %v", ErrExecQuery, err)
	}

	item.ID = id

	return item, nil
}

// DeleteEquipment удаляет позицию инвентаря
func (r *Repository) DeleteEquipment(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, "DeleteEquipment", equipmentTable, id, ErrEquipmentNotFound)
}

func scanEquipment(row rowScanner) (*domain.EquipmentItem, error) {
	var item domain.EquipmentItem

	err := row.Scan(
		&item.ID,
		&item.Name,
		&item.HourlyRate,
		&item.TotalStock,
		&item.IsAvailable,
		&item.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &item, nil
}
