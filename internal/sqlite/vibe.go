package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vibetimer/vibetimer/internal/domain/vibe"
	"github.com/vibetimer/vibetimer/internal/repository"
)

// VibeRepository implements repository.VibeRepository for SQLite
type VibeRepository struct {
	db *DB
}

// NewVibeRepository creates a new VibeRepository
func NewVibeRepository(db *DB) *VibeRepository {
	return &VibeRepository{db: db}
}

// Create inserts a new vibe definition
func (r *VibeRepository) Create(ctx context.Context, v *vibe.Vibe) error {
	query := `INSERT INTO vibes (id, name, color, created_at) VALUES (?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query, v.ID, v.Name, v.Color, v.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to create vibe: %w", err)
	}
	return nil
}

// Get retrieves a vibe by ID
func (r *VibeRepository) Get(ctx context.Context, id string) (*vibe.Vibe, error) {
	query := `SELECT id, name, color, created_at FROM vibes WHERE id = ?`

	var v vibe.Vibe
	err := r.db.QueryRowContext(ctx, query, id).Scan(&v.ID, &v.Name, &v.Color, &v.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get vibe: %w", err)
	}
	return &v, nil
}

// List returns all vibe definitions in creation order
func (r *VibeRepository) List(ctx context.Context) ([]vibe.Vibe, error) {
	query := `SELECT id, name, color, created_at FROM vibes ORDER BY created_at ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list vibes: %w", err)
	}
	defer rows.Close()

	var vibes []vibe.Vibe
	for rows.Next() {
		var v vibe.Vibe
		if err := rows.Scan(&v.ID, &v.Name, &v.Color, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan vibe: %w", err)
		}
		vibes = append(vibes, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating vibes: %w", err)
	}
	return vibes, nil
}

// Update updates a vibe's name and color
func (r *VibeRepository) Update(ctx context.Context, v *vibe.Vibe) error {
	query := `UPDATE vibes SET name = ?, color = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, v.Name, v.Color, v.ID)
	if err != nil {
		return fmt.Errorf("failed to update vibe: %w", err)
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

// Delete removes a vibe definition
func (r *VibeRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM vibes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete vibe: %w", err)
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
