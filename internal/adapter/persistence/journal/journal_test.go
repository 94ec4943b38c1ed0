package journal

import (
	"context"
	"errors"
	"testing"
	"time"

	"artisan_escrow/internal/domain/entities"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func setupJournal(t *testing.T) (*PostgresJournal, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresJournal(db), mock
}

func TestPostgresJournal_Record(t *testing.T) {
	entries := []entities.LedgerEntry{
		{ID: "l-1", EscrowID: "e-1", ProjectID: "p-1", Kind: entities.LedgerDepositHeld, Amount: 120000, Reference: "ref-1", CreatedAt: testNow},
		{ID: "l-2", EscrowID: "e-1", ProjectID: "p-1", Kind: entities.LedgerAdvanceReleased, Amount: 43200, CreatedAt: testNow},
	}

	t.Run("inserts entries in one transaction", func(t *testing.T) {
		j, mock := setupJournal(t)
		mock.ExpectBegin()
		prep := mock.ExpectPrepare(`INSERT INTO escrow_ledger_entries`)
		prep.ExpectExec().
			WithArgs("l-1", "e-1", "p-1", "deposit_held", int64(120000), "ref-1", testNow).
			WillReturnResult(sqlmock.NewResult(1, 1))
		prep.ExpectExec().
			WithArgs("l-2", "e-1", "p-1", "advance_released", int64(43200), "", testNow).
			WillReturnResult(sqlmock.NewResult(2, 1))
		mock.ExpectCommit()

		require.NoError(t, j.Record(context.Background(), entries...))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on insert failure", func(t *testing.T) {
		j, mock := setupJournal(t)
		mock.ExpectBegin()
		prep := mock.ExpectPrepare(`INSERT INTO escrow_ledger_entries`)
		prep.ExpectExec().WillReturnError(errors.New("disk full"))
		mock.ExpectRollback()

		err := j.Record(context.Background(), entries...)
		assert.ErrorContains(t, err, "disk full")
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty batch is a no-op", func(t *testing.T) {
		j, mock := setupJournal(t)
		require.NoError(t, j.Record(context.Background()))
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresJournal_ListByEscrowID(t *testing.T) {
	j, mock := setupJournal(t)
	rows := sqlmock.NewRows([]string{"id", "escrow_id", "project_id", "kind", "amount", "reference", "created_at"}).
		AddRow("l-1", "e-1", "p-1", "deposit_held", int64(120000), "ref-1", testNow).
		AddRow("l-2", "e-1", "p-1", "payout_released", int64(86400), "", testNow)
	mock.ExpectQuery(`SELECT id, escrow_id, project_id, kind, amount, reference, created_at`).
		WithArgs("e-1").
		WillReturnRows(rows)

	got, err := j.ListByEscrowID(context.Background(), "e-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, entities.LedgerPayoutReleased, got[1].Kind)
	assert.Equal(t, int64(86400), got[1].Amount)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresJournal_EnsureSchema(t *testing.T) {
	j, mock := setupJournal(t)
	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS escrow_ledger_entries`).WillReturnResult(sqlmock.NewResult(0, 0))
	require.NoError(t, j.EnsureSchema(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMemoryJournal(t *testing.T) {
	j := NewMemoryJournal()
	require.NoError(t, j.Record(context.Background(),
		entities.LedgerEntry{ID: "l-1", EscrowID: "e-1"},
		entities.LedgerEntry{ID: "l-2", EscrowID: "e-2"}))
	got, err := j.ListByEscrowID(context.Background(), "e-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "l-1", got[0].ID)
}
