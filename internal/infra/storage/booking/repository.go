package booking

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
	bookingsTable  = "bookings"
	equipmentTable = "booking_equipment"

	// confirmedSlotIndex уникальный частичный индекс (court_id, start_time) WHERE status = 'confirmed'
	confirmedSlotIndex = "bookings_confirmed_slot_uniq"
)

var bookingColumns = []string{
	"id",
	"user_id",
	"user_name",
	"court_id",
	"coach_id",
	"start_time",
	"total_price",
	"status",
	"court_name",
	"court_category",
	"coach_name",
	"coach_rate",
	"cancelled_at",
	"created_at",
}

// Repository репозиторий для работы с бронированиями (журнал бронирований)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// LockSlot берёт транзакционную advisory-блокировку на слот (корт, время начала).
// Блокировка держится до конца транзакции и сериализует операции только над этим слотом:
// операции над другими слотами не ждут друг друга.
func (r *Repository) LockSlot(ctx context.Context, slot domain.Slot) error {
	tx, ok := dbmetrics.GetTx(ctx)
	if !ok {
		return ErrNotInTransaction
	}

	if _, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtextextended($1, 0))", slot.LockKey()); err != nil {
		return fmt.Errorf("%w: LockSlot - execute: %v", ErrExecQuery, err)
	}

	return nil
}

// Create сохраняет бронирование вместе со строками инвентаря.
// Должен вызываться в транзакции: бронирование и его строки пишутся атомарно.
// Нарушение уникального индекса подтверждённого слота возвращается как ErrSlotTaken.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if !dbmetrics.IsInTransaction(ctx) {
		return nil, ErrNotInTransaction
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(bookingsTable).
		Columns(
			"user_id",
			"user_name",
			"court_id",
			"coach_id",
			"start_time",
			"total_price",
			"status",
			"court_name",
			"court_category",
			"coach_name",
			"coach_rate",
		).
		Values(
			booking.UserID,
			booking.UserName,
			booking.CourtID,
			booking.CoachID,
			booking.StartTime,
			booking.TotalPrice,
			booking.Status,
			booking.CourtName,
			booking.CourtCategory,
			booking.CoachName,
			booking.CoachRate,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&booking.ID, &booking.CreatedAt)
	if err != nil {
		if dbmetrics.IsUniqueViolation(err, confirmedSlotIndex) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	if len(booking.Equipment) == 0 {
		return booking, nil
	}

	insert := psqlbuilder.Insert(equipmentTable).
		Columns("booking_id", "line_no", "item_id", "quantity", "item_name", "item_rate")
	for i, item := range booking.Equipment {
		insert = insert.Values(booking.ID, i+1, item.ItemID, item.Quantity, item.ItemName, item.ItemRate)
	}

	query, args, err = insert.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build equipment insert: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: Create - execute equipment insert: %v", ErrExecQuery, err)
	}

	return booking, nil
}

// GetByID получает бронирование по ID вместе со строками инвентаря.
// Внутри транзакции строка блокируется (FOR UPDATE).
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(bookingsTable).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	if err := r.attachEquipment(ctx, executor, []*domain.Booking{booking}); err != nil {
		return nil, err
	}

	return booking, nil
}

// ExistsConfirmed проверяет, занят ли слот подтверждённым бронированием
func (r *Repository) ExistsConfirmed(ctx context.Context, slot domain.Slot) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From(bookingsTable).
		Where(squirrel.Eq{
			"court_id":   slot.CourtID,
			"start_time": slot.StartTime,
			"status":     domain.StatusConfirmed,
		}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: ExistsConfirmed - build select query: %v", ErrBuildQuery, err)
	}

	var count int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("%w: ExistsConfirmed - scan count: %v", ErrScanRow, err)
	}

	return count > 0, nil
}

// GetByUserID получает бронирования пользователя, сначала самые новые
func (r *Repository) GetByUserID(ctx context.Context, userID int64) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From(bookingsTable).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryBookings(ctx, executor, "GetByUserID", query, args)
}

// List получает бронирования по фильтру, сначала самые новые
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(bookingsTable).
		OrderBy("created_at DESC", "id DESC")

	if filter.UserID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"user_id": *filter.UserID})
	}
	if filter.CourtID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"court_id": *filter.CourtID})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"start_time": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_time": *filter.To})
	}
	if filter.Limit > 0 {
		selectBuilder = selectBuilder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		selectBuilder = selectBuilder.Offset(uint64(filter.Offset))
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryBookings(ctx, executor, "List", query, args)
}

// Cancel помечает подтверждённое бронирование отменённым
func (r *Repository) Cancel(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(bookingsTable).
		Set("status", domain.StatusCancelled).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.StatusConfirmed}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// ConfirmedTotals возвращает число подтверждённых бронирований и их суммарную стоимость
func (r *Repository) ConfirmedTotals(ctx context.Context) (int64, float64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)", "COALESCE(SUM(total_price), 0)").
		From(bookingsTable).
		Where(squirrel.Eq{"status": domain.StatusConfirmed}).
		ToSql()

	if err != nil {
		return 0, 0, fmt.Errorf("%w: ConfirmedTotals - build select query: %v", ErrBuildQuery, err)
	}

	var (
		count   int64
		revenue float64
	)
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count, &revenue); err != nil {
		return 0, 0, fmt.Errorf("%w: ConfirmedTotals - scan: %v", ErrScanRow, err)
	}

	return count, revenue, nil
}

func (r *Repository) queryBookings(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) ([]*domain.Booking, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	if err := r.attachEquipment(ctx, executor, bookings); err != nil {
		return nil, err
	}

	return bookings, nil
}

// attachEquipment подгружает строки инвентаря одним запросом для всех бронирований
func (r *Repository) attachEquipment(ctx context.Context, executor DBExecutor, bookings []*domain.Booking) error {
	if len(bookings) == 0 {
		return nil
	}

	byID := make(map[int64]*domain.Booking, len(bookings))
	ids := make([]int64, 0, len(bookings))
	for _, b := range bookings {
		b.Equipment = []domain.BookingEquipment{}
		byID[b.ID] = b
		ids = append(ids, b.ID)
	}

	query, args, err := psqlbuilder.Select("booking_id", "item_id", "quantity", "item_name", "item_rate").
		From(equipmentTable).
		Where(squirrel.Eq{"booking_id": ids}).
		OrderBy("booking_id", "line_no").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: attachEquipment - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: attachEquipment - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			bookingID int64
			item      domain.BookingEquipment
		)
		if err := rows.Scan(&bookingID, &item.ItemID, &item.Quantity, &item.ItemName, &item.ItemRate); err != nil {
			return fmt.Errorf("%w: attachEquipment - scan row: %v", ErrScanRow, err)
		}
		if b, ok := byID[bookingID]; ok {
			b.Equipment = append(b.Equipment, item)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: attachEquipment - rows error: %v", ErrScanRow, err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking

	err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.UserName,
		&booking.CourtID,
		&booking.CoachID,
		&booking.StartTime,
		&booking.TotalPrice,
		&booking.Status,
		&booking.CourtName,
		&booking.CourtCategory,
		&booking.CoachName,
		&booking.CoachRate,
		&booking.CancelledAt,
		&booking.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &booking, nil
}
