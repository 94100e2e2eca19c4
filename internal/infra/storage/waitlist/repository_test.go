package waitlist

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/pkg/dbmetrics"
)

var entryRowColumns = []string{"id", "user_id", "court_id", "start_time", "status", "notified_at", "created_at"}

func newMock(t *testing.T) (*Repository, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	return NewRepository(db), mock, func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	}
}

func testSlot() domain.Slot {
	return domain.Slot{CourtID: 2, StartTime: time.Date(2025, 6, 14, 19, 0, 0, 0, time.UTC)}
}

func TestRepository_Create(t *testing.T) {
	slot := testSlot()
	created := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	t.Run("creates waiting entry", func(t *testing.T) {
		repo, mock, done := newMock(t)
		defer done()

		mock.ExpectQuery(`INSERT INTO waitlist_entries \(user_id,court_id,start_time,status\) VALUES \(\$1,\$2,\$3,\$4\) RETURNING id, created_at`).
			WithArgs(int64(7), slot.CourtID, slot.StartTime, "waiting").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(11), created))

		entry, err := repo.Create(context.Background(), 7, slot)
		require.NoError(t, err)
		assert.Equal(t, int64(11), entry.ID)
		assert.Equal(t, domain.WaitlistWaiting, entry.Status)
		assert.Equal(t, created, entry.CreatedAt)
		assert.Nil(t, entry.NotifiedAt)
	})

	t.Run("duplicate waiting entry", func(t *testing.T) {
		repo, mock, done := newMock(t)
		defer done()

		mock.ExpectQuery(`INSERT INTO waitlist_entries`).
			WillReturnError(&pq.Error{Code: "23505", Constraint: waitingUniqueIndex})

		_, err := repo.Create(context.Background(), 7, slot)
		assert.ErrorIs(t, err, ErrDuplicateEntry)
	})
}

func TestRepository_ExistsWaiting(t *testing.T) {
	slot := testSlot()

	repo, mock, done := newMock(t)
	defer done()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM waitlist_entries WHERE court_id = \$1 AND start_time = \$2 AND status = \$3 AND user_id = \$4`).
		WithArgs(slot.CourtID, slot.StartTime, "waiting", int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(1)))

	exists, err := repo.ExistsWaiting(context.Background(), 7, slot)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRepository_FindHeadWaiting(t *testing.T) {
	slot := testSlot()
	created := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	t.Run("earliest entry first", func(t *testing.T) {
		repo, mock, done := newMock(t)
		defer done()

		mock.ExpectQuery(`SELECT .* FROM waitlist_entries WHERE .* ORDER BY created_at ASC, id ASC LIMIT 1`).
			WithArgs(slot.CourtID, slot.StartTime, "waiting").
			WillReturnRows(sqlmock.NewRows(entryRowColumns).
				AddRow(int64(3), int64(100), slot.CourtID, slot.StartTime, "waiting", nil, created))

		entry, err := repo.FindHeadWaiting(context.Background(), slot)
		require.NoError(t, err)
		assert.Equal(t, int64(3), entry.ID)
		assert.Equal(t, int64(100), entry.UserID)
		assert.True(t, entry.IsWaiting())
	})

	t.Run("empty queue", func(t *testing.T) {
		repo, mock, done := newMock(t)
		defer done()

		mock.ExpectQuery(`FROM waitlist_entries`).
			WillReturnRows(sqlmock.NewRows(entryRowColumns))

		_, err := repo.FindHeadWaiting(context.Background(), slot)
		assert.ErrorIs(t, err, ErrEntryNotFound)
	})

	t.Run("locks head inside transaction", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		tx, err := db.Begin()
		require.NoError(t, err)
		ctx := dbmetrics.WithTx(context.Background(), tx)

		mock.ExpectQuery(`LIMIT 1 FOR UPDATE`).
			WillReturnRows(sqlmock.NewRows(entryRowColumns).
				AddRow(int64(3), int64(100), slot.CourtID, slot.StartTime, "waiting", nil, created))

		_, err = NewRepository(db).FindHeadWaiting(ctx, slot)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_MarkNotified(t *testing.T) {
	t.Run("promotes waiting entry", func(t *testing.T) {
		repo, mock, done := newMock(t)
		defer done()

		mock.ExpectExec(`UPDATE waitlist_entries SET status = \$1, notified_at = NOW\(\) WHERE id = \$2 AND status = \$3`).
			WithArgs("notified", int64(3), "waiting").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.MarkNotified(context.Background(), 3))
	})

	t.Run("already notified", func(t *testing.T) {
		repo, mock, done := newMock(t)
		defer done()

		mock.ExpectExec(`UPDATE waitlist_entries`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.MarkNotified(context.Background(), 3), ErrEntryNotFound)
	})
}

func TestRepository_GetByUserID(t *testing.T) {
	slot := testSlot()
	created := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	notified := created.Add(time.Hour)

	repo, mock, done := newMock(t)
	defer done()

	mock.ExpectQuery(`SELECT .* FROM waitlist_entries WHERE user_id = \$1 ORDER BY created_at DESC, id DESC`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(entryRowColumns).
			AddRow(int64(4), int64(7), slot.CourtID, slot.StartTime, "notified", notified, created))

	entries, err := repo.GetByUserID(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.WaitlistNotified, entries[0].Status)
	require.NotNil(t, entries[0].NotifiedAt)
	assert.Equal(t, notified, *entries[0].NotifiedAt)
}
