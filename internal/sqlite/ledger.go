package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vibetimer/vibetimer/internal/domain/ledger"
	"github.com/vibetimer/vibetimer/internal/repository"
)

// LedgerRepository implements repository.LedgerRepository for SQLite
type LedgerRepository struct {
	db *DB
}

// NewLedgerRepository creates a new LedgerRepository
func NewLedgerRepository(db *DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

const entryColumns = `date, vibe_id, name, color, total_time, is_running, start_time, created_at`

// Create inserts a new ledger entry
func (r *LedgerRepository) Create(ctx context.Context, e *ledger.Entry) error {
	query := `
		INSERT INTO vibe_sessions (` + entryColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		e.Date,
		e.VibeID,
		e.Name,
		e.Color,
		e.TotalTime,
		e.IsRunning,
		startTimeValue(e),
		e.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to create ledger entry: %w", err)
	}
	return nil
}

// Get retrieves the entry for one (date, vibe) pair
func (r *LedgerRepository) Get(ctx context.Context, date, vibeID string) (*ledger.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM vibe_sessions WHERE date = ? AND vibe_id = ?`

	entry, err := scanEntry(r.db.QueryRowContext(ctx, query, date, vibeID))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ledger entry: %w", err)
	}
	return entry, nil
}

// GetByDate returns all entries for a date in creation order
func (r *LedgerRepository) GetByDate(ctx context.Context, date string) ([]ledger.Entry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM vibe_sessions
		WHERE date = ?
		ORDER BY created_at ASC, vibe_id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []ledger.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger entries: %w", err)
	}
	return entries, nil
}

// Update writes an entry's accounting fields back
func (r *LedgerRepository) Update(ctx context.Context, e *ledger.Entry) error {
	query := `
		UPDATE vibe_sessions
		SET name = ?, color = ?, total_time = ?, is_running = ?, start_time = ?
		WHERE date = ? AND vibe_id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		e.Name,
		e.Color,
		e.TotalTime,
		e.IsRunning,
		startTimeValue(e),
		e.Date,
		e.VibeID,
	)
	if err != nil {
		return fmt.Errorf("failed to update ledger entry: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes the entry for one (date, vibe) pair
func (r *LedgerRepository) Delete(ctx context.Context, date, vibeID string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM vibe_sessions WHERE date = ? AND vibe_id = ?`, date, vibeID)
	if err != nil {
		return fmt.Errorf("failed to delete ledger entry: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// FindRunning returns the single entry with is_running set, on any date
func (r *LedgerRepository) FindRunning(ctx context.Context) (*ledger.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM vibe_sessions WHERE is_running = 1 LIMIT 1`

	entry, err := scanEntry(r.db.QueryRowContext(ctx, query))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find running entry: %w", err)
	}
	return entry, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*ledger.Entry, error) {
	var e ledger.Entry
	var startTime sql.NullInt64
	err := row.Scan(
		&e.Date,
		&e.VibeID,
		&e.Name,
		&e.Color,
		&e.TotalTime,
		&e.IsRunning,
		&startTime,
		&e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if startTime.Valid {
		e.StartTime = &startTime.Int64
	}
	return &e, nil
}

func startTimeValue(e *ledger.Entry) any {
	if e.StartTime == nil {
		return nil
	}
	return *e.StartTime
}
