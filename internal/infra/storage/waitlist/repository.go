package waitlist

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CourtBookingService/pkg/psqlbuilder"
)

const (
	entriesTable = "waitlist_entries"

	waitingUniqueIndex = "waitlist_waiting_uniq"
)

var entryColumns = []string{
	"id",
	"user_id",
	"court_id",
	"start_time",
	"status",
	"notified_at",
	"created_at",
}

// Repository репозиторий листа ожидания
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория листа ожидания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create ставит пользователя в очередь на слот со статусом waiting
func (r *Repository) Create(ctx context.Context, userID int64, slot domain.Slot) (*domain.WaitlistEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	entry := &domain.WaitlistEntry{
		UserID:    userID,
		CourtID:   slot.CourtID,
		StartTime: slot.StartTime,
		Status:    domain.WaitlistWaiting,
	}

	query, args, err := psqlbuilder.Insert(entriesTable).
		Columns("user_id", "court_id", "start_time", "status").
		Values(entry.UserID, entry.CourtID, entry.StartTime, entry.Status).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		if dbmetrics.IsUniqueViolation(err, waitingUniqueIndex) {
			return nil, ErrDuplicateEntry
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return entry, nil
}

// ExistsWaiting проверяет, есть ли у пользователя ожидающая запись на слот
func (r *Repository) ExistsWaiting(ctx context.Context, userID int64, slot domain.Slot) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From(entriesTable).
		Where(squirrel.Eq{
			"user_id":    userID,
			"court_id":   slot.CourtID,
			"start_time": slot.StartTime,
			"status":     domain.WaitlistWaiting,
		}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: ExistsWaiting - build select query: %v", ErrBuildQuery, err)
	}

	var count int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("%w: ExistsWaiting - scan count: %v", ErrScanRow, err)
	}

	return count > 0, nil
}

// FindHeadWaiting возвращает самую раннюю ожидающую запись на слот.
// Порядок: created_at, затем id. Внутри транзакции запись блокируется.
func (r *Repository) FindHeadWaiting(ctx context.Context, slot domain.Slot) (*domain.WaitlistEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(entryColumns...).
		From(entriesTable).
		Where(squirrel.Eq{
			"court_id":   slot.CourtID,
			"start_time": slot.StartTime,
			"status":     domain.WaitlistWaiting,
		}).
		OrderBy("created_at ASC", "id ASC").
		Limit(1)

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindHeadWaiting - build select query: %v", ErrBuildQuery, err)
	}

	entry, err := scanEntry(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: FindHeadWaiting - scan entry: %v", ErrScanRow, err)
	}

	return entry, nil
}

// MarkNotified переводит запись из waiting в notified
func (r *Repository) MarkNotified(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(entriesTable).
		Set("status", domain.WaitlistNotified).
		Set("notified_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.WaitlistWaiting}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkNotified - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkNotified - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkNotified - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrEntryNotFound
	}

	return nil
}

// GetByUserID получает записи пользователя, сначала самые новые
func (r *Repository) GetByUserID(ctx context.Context, userID int64) ([]*domain.WaitlistEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(entryColumns...).
		From(entriesTable).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]*domain.WaitlistEntry, 0)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByUserID - scan row: %v", ErrScanRow, err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - rows error: %v", ErrScanRow, err)
	}

	return entries, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(row rowScanner) (*domain.WaitlistEntry, error) {
	var entry domain.WaitlistEntry

	err := row.Scan(
		&entry.ID,
		&entry.UserID,
		&entry.CourtID,
		&entry.StartTime,
		&entry.Status,
		&entry.NotifiedAt,
		&entry.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &entry, nil
}
