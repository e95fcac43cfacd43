package reservation

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioReservations/internal/domain"
	"github.com/m04kA/SMC-StudioReservations/pkg/dbmetrics"
	"github.com/m04kA/SMC-StudioReservations/pkg/ptr"
)

var (
	start   = time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	end     = time.Date(2025, 3, 10, 11, 0, 0, 0, time.UTC)
	created = time.Date(2025, 3, 9, 12, 0, 0, 0, time.UTC)
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func reservationRows() *sqlmock.Rows {
	return sqlmock.NewRows(columns)
}

func addRow(rows *sqlmock.Rows, id int64, status domain.ReservationStatus) *sqlmock.Rows {
	return rows.AddRow(
		id, int64(1), int64(2), int64(42),
		start, end, string(status), "350.00",
		"bring drums", nil, nil,
		nil, nil, nil,
		created, created,
	)
}

func TestRepository_Create(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	res := &domain.Reservation{
		RoomID:     1,
		StudioID:   2,
		CustomerID: 42,
		Start:      start,
		End:        end,
		Status:     domain.StatusPending,
		TotalPrice: decimal.RequireFromString("350.00"),
		Notes:      ptr.Ptr("bring drums"),
		CreatedAt:  created,
		UpdatedAt:  created,
	}

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO reservations (room_id,studio_id,customer_id,start_at,end_at,status")).
		WithArgs(int64(1), int64(2), int64(42), start, end, "pending", sqlmock.AnyArg(), sqlmock.AnyArg(), nil, nil, created, created).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(17)))

	got, err := repo.Create(context.Background(), res)
	require.NoError(t, err)
	assert.Equal(t, int64(17), got.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_ExclusionViolation(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	mock.ExpectQuery("INSERT INTO reservations").
		WillReturnError(&pq.Error{Code: "23P01", Message: "conflicting key value violates exclusion constraint"})

	_, err := repo.Create(context.Background(), &domain.Reservation{Start: start, End: end})
	assert.ErrorIs(t, err, ErrOverlap)
	assert.ErrorIs(t, err, domain.ErrSchedulingConflict)
}

func TestRepository_Create_SerializationFailure(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	mock.ExpectQuery("INSERT INTO reservations").
		WillReturnError(&pq.Error{Code: "40001"})

	_, err := repo.Create(context.Background(), &domain.Reservation{Start: start, End: end})
	assert.ErrorIs(t, err, domain.ErrSchedulingConflict)
}

func TestRepository_GetByID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, room_id, studio_id, customer_id, start_at, end_at, status, total_price")).
		WithArgs(int64(5)).
		WillReturnRows(addRow(reservationRows(), 5, domain.StatusConfirmed))

	got, err := repo.GetByID(context.Background(), 5)
	require.NoError(t, err)

	assert.Equal(t, int64(5), got.ID)
	assert.Equal(t, domain.StatusConfirmed, got.Status)
	assert.Equal(t, "350.00", got.TotalPrice.StringFixed(2))
	assert.Equal(t, "bring drums", *got.Notes)
	assert.Nil(t, got.ArtistName)
	assert.Nil(t, got.CancelledAt)
	assert.Equal(t, start, got.Start)
}

func TestRepository_GetByID_UnknownStatus(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM reservations WHERE id").
		WithArgs(int64(5)).
		WillReturnRows(addRow(reservationRows(), 5, domain.ReservationStatus("archived")))

	_, err := repo.GetByID(context.Background(), 5)
	assert.ErrorIs(t, err, ErrScanRow)
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM reservations").WillReturnRows(reservationRows())

	_, err := repo.GetByID(context.Background(), 5)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRepository_GetActiveByRoom_LocksInTransaction(t *testing.T) {
	sqlDB, mock := newMock(t)
	db := dbmetrics.Wrap(sqlDB, nil)
	repo := NewRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM reservations WHERE room_id = $1 AND status IN ($2,$3,$4) AND start_at < $5 AND end_at > $6 ORDER BY start_at ASC FOR UPDATE")).
		WithArgs(int64(1), "pending", "confirmed", "in_progress", end, start).
		WillReturnRows(addRow(reservationRows(), 3, domain.StatusPending))
	mock.ExpectCommit()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)

	list, err := repo.GetActiveByRoom(dbmetrics.WithTx(context.Background(), tx), 1, start, end)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	assert.Len(t, list, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetActiveByRoom_NoLockOutsideTransaction(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY start_at ASC")+"$").
		WillReturnRows(reservationRows())

	list, err := repo.GetActiveByRoom(context.Background(), 1, start, end)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_List_Filter(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE studio_id = $1 AND status IN ($2)")).
		WithArgs(int64(2), "pending").
		WillReturnRows(addRow(addRow(reservationRows(), 1, domain.StatusPending), 2, domain.StatusPending))

	list, err := repo.List(context.Background(), domain.ReservationFilter{
		StudioID: ptr.Ptr(int64(2)),
		Statuses: []domain.ReservationStatus{domain.StatusPending},
	})
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestRepository_GetPendingOlderThan(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	cutoff := created.Add(time.Hour)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE status = $1 AND created_at <= $2 AND id > $3 ORDER BY id ASC LIMIT 100")).
		WithArgs("pending", cutoff, int64(40)).
		WillReturnRows(addRow(reservationRows(), 41, domain.StatusPending))

	list, err := repo.GetPendingOlderThan(context.Background(), cutoff, 40, 100)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestRepository_GetSettledByOwner(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM reservations res JOIN studios s ON s.id = res.studio_id WHERE s.owner_id = $1 AND res.status IN ($2,$3,$4)")).
		WithArgs(int64(9), "confirmed", "in_progress", "completed", end, start).
		WillReturnRows(addRow(reservationRows(), 1, domain.StatusCompleted))

	list, err := repo.GetSettledByOwner(context.Background(), 9, start, end)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, domain.StatusCompleted, list[0].Status)
}

func TestRepository_UpdateStatus(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	now := created.Add(time.Hour)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE reservations SET status = $1, updated_at = $2, confirmed_by = $3 WHERE id = $4 AND status = $5")).
		WithArgs("confirmed", now, "system", int64(1), "pending").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateStatus(context.Background(), 1, domain.StatusUpdate{
		From:        domain.StatusPending,
		To:          domain.StatusConfirmed,
		UpdatedAt:   now,
		ConfirmedBy: ptr.Ptr(domain.ConfirmedBySystem),
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateStatus_Stale(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	mock.ExpectExec("UPDATE reservations").WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), 1, domain.StatusUpdate{
		From: domain.StatusPending,
		To:   domain.StatusConfirmed,
	})
	assert.ErrorIs(t, err, domain.ErrStaleState)
}

func TestIsConflict(t *testing.T) {
	assert.True(t, IsConflict(&pq.Error{Code: "23P01"}))
	assert.True(t, IsConflict(&pq.Error{Code: "40001"}))
	assert.False(t, IsConflict(&pq.Error{Code: "23505"}))
	assert.False(t, IsConflict(sql.ErrNoRows))
}
