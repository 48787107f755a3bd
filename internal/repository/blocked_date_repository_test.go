package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBlockedRepo(t *testing.T) (*BlockedDateRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewBlockedDateRepo(db), mock
}

func TestBlockedDateCreate(t *testing.T) {
	repo, mock := newBlockedRepo(t)

	mock.ExpectExec(`INSERT INTO blocked_dates`).
		WithArgs(uint64(1), "2024-06-10", "Painting").
		WillReturnResult(sqlmock.NewResult(3, 1))

	id, err := repo.Create(context.Background(), 1, "2024-06-10", "Painting")
	require.NoError(t, err)
	assert.Equal(t, uint64(3), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBlockedDateCreateDefaultsReason(t *testing.T) {
	repo, mock := newBlockedRepo(t)

	mock.ExpectExec(`INSERT INTO blocked_dates`).
		WithArgs(uint64(1), "2024-06-10", "Maintenance").
		WillReturnResult(sqlmock.NewResult(4, 1))

	_, err := repo.Create(context.Background(), 1, "2024-06-10", "")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBlockedDateCreateDuplicate(t *testing.T) {
	repo, mock := newBlockedRepo(t)

	mock.ExpectExec(`INSERT INTO blocked_dates`).
		WithArgs(uint64(1), "2024-06-10", "Maintenance").
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry '1-2024-06-10' for key 'uq_blocked'"))

	_, err := repo.Create(context.Background(), 1, "2024-06-10", "")
	assert.ErrorIs(t, err, ErrDateAlreadyBlocked)
}

func TestBlockedDateList(t *testing.T) {
	repo, mock := newBlockedRepo(t)

	day, err := time.Parse("2006-01-02", "2024-06-10")
	require.NoError(t, err)
	rows := sqlmock.NewRows([]string{"id", "apartment_id", "date", "reason", "created_at"}).
		AddRow(1, 1, day, "Maintenance", time.Now()).
		AddRow(2, 1, day.AddDate(0, 0, 5), nil, time.Now())
	mock.ExpectQuery(`FROM blocked_dates WHERE apartment_id = \? ORDER BY date`).
		WithArgs(uint64(1)).
		WillReturnRows(rows)

	items, err := repo.List(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "2024-06-10", items[0].Date)
	assert.Equal(t, "Maintenance", items[0].Reason)
	// NULL reason comes back empty.
	assert.Equal(t, "", items[1].Reason)
}

func TestBlockedDateDelete(t *testing.T) {
	repo, mock := newBlockedRepo(t)

	mock.ExpectExec(`DELETE FROM blocked_dates WHERE id = \?`).
		WithArgs(uint64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), 9), sql.ErrNoRows)
}
