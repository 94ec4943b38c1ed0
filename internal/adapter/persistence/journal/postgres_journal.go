package journal

import (
	"context"
	"database/sql"
	"fmt"

	"artisan_escrow/internal/domain/entities"
	"artisan_escrow/internal/usecase/interfaces"
)

const schema = `
CREATE TABLE IF NOT EXISTS escrow_ledger_entries (
	id          TEXT PRIMARY KEY,
	escrow_id   TEXT NOT NULL,
	project_id  TEXT NOT NULL,
	kind        TEXT NOT NULL,
	amount      BIGINT NOT NULL,
	reference   TEXT NOT NULL DEFAULT '',
	created_at  TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS escrow_ledger_entries_escrow_idx ON escrow_ledger_entries (escrow_id, created_at);
`

// PostgresJournal appends ledger entries to Postgres. Entries are written in
// one transaction per Record call.
type PostgresJournal struct {
	db *sql.DB
}

var _ interfaces.ILedgerJournal = (*PostgresJournal)(nil)

func NewPostgresJournal(db *sql.DB) *PostgresJournal {
	return &PostgresJournal{db: db}
}

// EnsureSchema creates the journal table when it does not exist.
func (j *PostgresJournal) EnsureSchema(ctx context.Context) error {
	if _, err := j.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create ledger schema: %w", err)
	}
	return nil
}

func (j *PostgresJournal) Record(ctx context.Context, entries ...entities.LedgerEntry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO escrow_ledger_entries (id, escrow_id, project_id, kind, amount, reference, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO NOTHING
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx, e.ID, e.EscrowID, e.ProjectID, string(e.Kind), e.Amount, e.Reference, e.CreatedAt); err != nil {
			return fmt.Errorf("failed to insert ledger entry %s: %w", e.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (j *PostgresJournal) ListByEscrowID(ctx context.Context, escrowID string) ([]entities.LedgerEntry, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT id, escrow_id, project_id, kind, amount, reference, created_at
		FROM escrow_ledger_entries
		WHERE escrow_id = $1
		ORDER BY created_at, id
	`, escrowID)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger entries: %w", err)
	}
	defer rows.Close()

	var out []entities.LedgerEntry
	for rows.Next() {
		var e entities.LedgerEntry
		var kind string
		if err := rows.Scan(&e.ID, &e.EscrowID, &e.ProjectID, &kind, &e.Amount, &e.Reference, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		e.Kind = entities.LedgerEntryKind(kind)
		out = append(out, e)
	}
	return out, rows.Err()
}
