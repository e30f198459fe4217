package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/storage"
)

// AddMember inserts a new member. Returns storage.ErrMemberExists for a duplicate name.
func (s *SQLiteStore) AddMember(ctx context.Context, member *models.Member) error {
	if member.CreatedAt == 0 {
		member.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, "SELECT 1 FROM members WHERE name = ?", member.Name).Scan(&exists)
	if err == nil {
		return fmt.Errorf("%w: %s", storage.ErrMemberExists, member.Name)
	}
	if err != sql.ErrNoRows {
		return fmt.Errorf("failed to check member existence: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO members (name, created_at) VALUES (?, ?)",
		member.Name, member.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert member: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListMembers retrieves all members in registration order.
func (s *SQLiteStore) ListMembers(ctx context.Context) ([]models.Member, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name, created_at FROM members ORDER BY seq")
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []models.Member
	for rows.Next() {
		var m models.Member
		if err := rows.Scan(&m.Name, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}

	return members, nil
}
