package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/pkg/dbmetrics"
)

func newMock(t *testing.T) (*Repository, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	return NewRepository(db), mock, func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	}
}

// newTxMock открывает транзакцию sqlmock и кладёт её в контекст
func newTxMock(t *testing.T) (*Repository, sqlmock.Sqlmock, context.Context, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	mock.ExpectBegin()
	tx, err := db.Begin()
	require.NoError(t, err)

	return NewRepository(db), mock, dbmetrics.WithTx(context.Background(), tx), func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	}
}

var bookingRowColumns = []string{
	"id", "user_id", "user_name", "court_id", "coach_id", "start_time", "total_price", "status",
	"court_name", "court_category", "coach_name", "coach_rate", "cancelled_at", "created_at",
}

func TestRepository_LockSlot(t *testing.T) {
	slot := domain.Slot{CourtID: 3, StartTime: time.Date(2025, 6, 14, 19, 0, 0, 0, time.UTC)}

	t.Run("requires transaction", func(t *testing.T) {
		repo, _, done := newMock(t)
		defer done()

		err := repo.LockSlot(context.Background(), slot)
		assert.ErrorIs(t, err, ErrNotInTransaction)
	})

	t.Run("takes advisory lock on slot key", func(t *testing.T) {
		repo, mock, ctx, done := newTxMock(t)
		defer done()

		mock.ExpectExec(`SELECT pg_advisory_xact_lock\(hashtextextended\(\$1, 0\)\)`).
			WithArgs(slot.LockKey()).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.NoError(t, repo.LockSlot(ctx, slot))
	})
}

func TestRepository_Create(t *testing.T) {
	start := time.Date(2025, 6, 14, 19, 0, 0, 0, time.UTC)
	created := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	newBooking := func() *domain.Booking {
		return &domain.Booking{
			UserID:        7,
			UserName:      "Priya",
			CourtID:       1,
			StartTime:     start,
			TotalPrice:    85.8,
			Status:        domain.StatusConfirmed,
			CourtName:     "Court 1",
			CourtCategory: domain.CourtIndoor,
			Equipment: []domain.BookingEquipment{
				{ItemID: 1, Quantity: 2, ItemName: "Racket", ItemRate: 5},
			},
		}
	}

	t.Run("requires transaction", func(t *testing.T) {
		repo, _, done := newMock(t)
		defer done()

		_, err := repo.Create(context.Background(), newBooking())
		assert.ErrorIs(t, err, ErrNotInTransaction)
	})

	t.Run("inserts booking and equipment lines", func(t *testing.T) {
		repo, mock, ctx, done := newTxMock(t)
		defer done()

		b := newBooking()
		mock.ExpectQuery(`INSERT INTO bookings .* RETURNING id, created_at`).
			WithArgs(b.UserID, b.UserName, b.CourtID, nil, b.StartTime, b.TotalPrice, "confirmed",
				b.CourtName, "indoor", nil, nil).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(42), created))
		mock.ExpectExec(`INSERT INTO booking_equipment`).
			WithArgs(int64(42), int64(1), int64(1), int64(2), "Racket", 5.0).
			WillReturnResult(sqlmock.NewResult(0, 1))

		got, err := repo.Create(ctx, b)
		require.NoError(t, err)
		assert.Equal(t, int64(42), got.ID)
		assert.Equal(t, created, got.CreatedAt)
	})

	t.Run("unique violation maps to slot taken", func(t *testing.T) {
		repo, mock, ctx, done := newTxMock(t)
		defer done()

		mock.ExpectQuery(`INSERT INTO bookings`).
			WillReturnError(&pq.Error{Code: "23505", Constraint: confirmedSlotIndex})

		_, err := repo.Create(ctx, newBooking())
		assert.ErrorIs(t, err, ErrSlotTaken)
	})

	t.Run("other errors are wrapped", func(t *testing.T) {
		repo, mock, ctx, done := newTxMock(t)
		defer done()

		mock.ExpectQuery(`INSERT INTO bookings`).WillReturnError(errors.New("connection reset"))

		_, err := repo.Create(ctx, newBooking())
		assert.ErrorIs(t, err, ErrExecQuery)
		assert.NotErrorIs(t, err, ErrSlotTaken)
	})
}

func TestRepository_GetByID(t *testing.T) {
	start := time.Date(2025, 6, 14, 19, 0, 0, 0, time.UTC)
	created := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	t.Run("loads booking with equipment", func(t *testing.T) {
		repo, mock, done := newMock(t)
		defer done()

		mock.ExpectQuery(`SELECT .* FROM bookings WHERE id = \$1`).
			WithArgs(int64(5)).
			WillReturnRows(sqlmock.NewRows(bookingRowColumns).AddRow(
				int64(5), int64(7), "Priya", int64(1), int64(2), start, 85.8, "confirmed",
				"Court 1", "indoor", "Anjali", 30.0, nil, created,
			))
		mock.ExpectQuery(`SELECT booking_id, item_id, quantity, item_name, item_rate FROM booking_equipment WHERE booking_id IN \(\$1\) ORDER BY booking_id, line_no`).
			WithArgs(int64(5)).
			WillReturnRows(sqlmock.NewRows([]string{"booking_id", "item_id", "quantity", "item_name", "item_rate"}).
				AddRow(int64(5), int64(1), 2, "Racket", 5.0))

		got, err := repo.GetByID(context.Background(), 5)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusConfirmed, got.Status)
		assert.Equal(t, domain.CourtIndoor, got.CourtCategory)
		require.NotNil(t, got.CoachID)
		assert.Equal(t, int64(2), *got.CoachID)
		require.NotNil(t, got.CoachName)
		assert.Equal(t, "Anjali", *got.CoachName)
		assert.Nil(t, got.CancelledAt)
		require.Len(t, got.Equipment, 1)
		assert.Equal(t, domain.BookingEquipment{ItemID: 1, Quantity: 2, ItemName: "Racket", ItemRate: 5}, got.Equipment[0])
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock, done := newMock(t)
		defer done()

		mock.ExpectQuery(`SELECT .* FROM bookings`).
			WithArgs(int64(404)).
			WillReturnRows(sqlmock.NewRows(bookingRowColumns))

		_, err := repo.GetByID(context.Background(), 404)
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})

	t.Run("locks row inside transaction", func(t *testing.T) {
		repo, mock, ctx, done := newTxMock(t)
		defer done()

		mock.ExpectQuery(`SELECT .* FROM bookings WHERE id = \$1 FOR UPDATE`).
			WithArgs(int64(5)).
			WillReturnRows(sqlmock.NewRows(bookingRowColumns).AddRow(
				int64(5), int64(7), "", int64(1), nil, start, 20.0, "confirmed",
				"Court 1", "indoor", nil, nil, nil, created,
			))
		mock.ExpectQuery(`FROM booking_equipment`).
			WithArgs(int64(5)).
			WillReturnRows(sqlmock.NewRows([]string{"booking_id", "item_id", "quantity", "item_name", "item_rate"}))

		got, err := repo.GetByID(ctx, 5)
		require.NoError(t, err)
		assert.Nil(t, got.CoachID)
		assert.Empty(t, got.Equipment)
	})
}

func TestRepository_ExistsConfirmed(t *testing.T) {
	slot := domain.Slot{CourtID: 1, StartTime: time.Date(2025, 6, 14, 19, 0, 0, 0, time.UTC)}

	tests := []struct {
		name  string
		count int64
		want  bool
	}{
		{name: "free slot", count: 0, want: false},
		{name: "taken slot", count: 1, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, done := newMock(t)
			defer done()

			mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings WHERE court_id = \$1 AND start_time = \$2 AND status = \$3`).
				WithArgs(slot.CourtID, slot.StartTime, "confirmed").
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(tt.count))

			got, err := repo.ExistsConfirmed(context.Background(), slot)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRepository_GetByUserID(t *testing.T) {
	start := time.Date(2025, 6, 14, 19, 0, 0, 0, time.UTC)
	created := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	cancelled := created.Add(time.Hour)

	repo, mock, done := newMock(t)
	defer done()

	mock.ExpectQuery(`SELECT .* FROM bookings WHERE user_id = \$1 ORDER BY created_at DESC, id DESC`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(bookingRowColumns).
			AddRow(int64(9), int64(7), "Priya", int64(2), nil, start, 15.0, "cancelled",
				"Court 2", "outdoor", nil, nil, cancelled, created.Add(time.Minute)).
			AddRow(int64(8), int64(7), "Priya", int64(1), nil, start, 20.0, "confirmed",
				"Court 1", "indoor", nil, nil, nil, created))
	mock.ExpectQuery(`FROM booking_equipment WHERE booking_id IN \(\$1,\$2\)`).
		WithArgs(int64(9), int64(8)).
		WillReturnRows(sqlmock.NewRows([]string{"booking_id", "item_id", "quantity", "item_name", "item_rate"}).
			AddRow(int64(8), int64(2), 1, "Shoes", 4.0))

	got, err := repo.GetByUserID(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(9), got[0].ID)
	assert.Equal(t, domain.StatusCancelled, got[0].Status)
	require.NotNil(t, got[0].CancelledAt)
	assert.Equal(t, cancelled, *got[0].CancelledAt)
	assert.Empty(t, got[0].Equipment)
	require.Len(t, got[1].Equipment, 1)
	assert.Equal(t, "Shoes", got[1].Equipment[0].ItemName)
}

func TestRepository_GetByUserID_Empty(t *testing.T) {
	repo, mock, done := newMock(t)
	defer done()

	mock.ExpectQuery(`FROM bookings WHERE user_id = \$1`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(bookingRowColumns))

	got, err := repo.GetByUserID(context.Background(), 7)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRepository_List(t *testing.T) {
	repo, mock, done := newMock(t)
	defer done()

	courtID := int64(1)
	status := domain.StatusConfirmed
	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT .* FROM bookings WHERE court_id = \$1 AND status = \$2 AND start_time >= \$3 ORDER BY created_at DESC, id DESC LIMIT 10 OFFSET 20`).
		WithArgs(courtID, "confirmed", from).
		WillReturnRows(sqlmock.NewRows(bookingRowColumns))

	got, err := repo.List(context.Background(), domain.BookingsFilter{
		CourtID: &courtID,
		Status:  &status,
		From:    &from,
		Limit:   10,
		Offset:  20,
	})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRepository_Cancel(t *testing.T) {
	t.Run("cancels confirmed booking", func(t *testing.T) {
		repo, mock, done := newMock(t)
		defer done()

		mock.ExpectExec(`UPDATE bookings SET status = \$1, cancelled_at = NOW\(\) WHERE id = \$2 AND status = \$3`).
			WithArgs("cancelled", int64(5), "confirmed").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Cancel(context.Background(), 5))
	})

	t.Run("nothing to cancel", func(t *testing.T) {
		repo, mock, done := newMock(t)
		defer done()

		mock.ExpectExec(`UPDATE bookings`).
			WithArgs("cancelled", int64(5), "confirmed").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Cancel(context.Background(), 5), ErrBookingNotFound)
	})
}

func TestRepository_ConfirmedTotals(t *testing.T) {
	repo, mock, done := newMock(t)
	defer done()

	mock.ExpectQuery(`SELECT COUNT\(\*\), COALESCE\(SUM\(total_price\), 0\) FROM bookings WHERE status = \$1`).
		WithArgs("confirmed").
		WillReturnRows(sqlmock.NewRows([]string{"count", "sum"}).AddRow(int64(3), 123.5))

	count, revenue, err := repo.ConfirmedTotals(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.Equal(t, 123.5, revenue)
}
