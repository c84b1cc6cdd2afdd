package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"mathmountain/internal/database"
)

// SlotRepository stores named text payloads in the history_slots table
type SlotRepository struct {
	db *database.DB
}

func NewSlotRepository(db *database.DB) *SlotRepository {
	return &SlotRepository{db: db}
}

// Get returns the payload stored under key; found is false when the slot is empty
func (r *SlotRepository) Get(ctx context.Context, key string) (string, bool, error) {
	var payload string
	query := `SELECT payload FROM history_slots WHERE slot_key = ?`
	err := r.db.QueryRowContext(ctx, query, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read slot %q: %w", key, err)
	}
	return payload, true, nil
}

// Set updates or inserts the payload for key
func (r *SlotRepository) Set(ctx context.Context, key, payload string) error {
	if _, err := r.db.ExecContext(ctx, r.db.Dialect.UpsertSlotQuery(), key, payload); err != nil {
		return fmt.Errorf("failed to write slot %q: %w", key, err)
	}
	return nil
}

// Keys lists every stored slot
func (r *SlotRepository) Keys(ctx context.Context) ([]string, error) {
	rows, err := r.db.DB.QueryContext(ctx, `SELECT slot_key FROM history_slots ORDER BY slot_key`)
	if err != nil {
		return nil, fmt.Errorf("failed to list slots: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}
