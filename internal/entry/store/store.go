package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/bruno-santana/minhas-financas-api/internal/entry"
	"github.com/bruno-santana/minhas-financas-api/internal/user"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanEntry reads an entry row joined with its owner.
// Expected column order: id, description, month, year, value, type, status,
// registration_date, user_id, user_name, user_email
func scanEntry(s scanner) (*entry.Entry, error) {
	var (
		e                  entry.Entry
		u                  user.User
		typeStr, statusStr string
	)

	if err := s.Scan(
		&e.ID, &e.Description, &e.Month, &e.Year, &e.Value, &typeStr, &statusStr,
		&e.RegistrationDate,
		&u.ID, &u.Name, &u.Email,
	); err != nil {
		return nil, err
	}

	e.Type = entry.Type(typeStr)
	e.Status = entry.Status(statusStr)
	e.User = &u

	return &e, nil
}

const selectEntryColumns = `
	e.id, e.description, e.month, e.year, e.value, e.type, e.status,
	e.registration_date, u.id, u.name, u.email
`

func (s *Store) CreateEntry(ctx context.Context, e *entry.Entry) error {
	query := `
		INSERT INTO entries (description, month, year, value, type, status, registration_date, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query,
		e.Description,
		e.Month,
		e.Year,
		e.Value,
		e.Type,
		e.Status,
		e.RegistrationDate,
		e.User.ID,
	).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("creating entry: %w", err)
	}

	return nil
}

func (s *Store) SaveEntry(ctx context.Context, e *entry.Entry) error {
	query := `
		UPDATE entries
		SET description = $1, month = $2, year = $3, value = $4, type = $5, status = $6, user_id = $7
		WHERE id = $8
	`

	res, err := s.db.ExecContext(ctx, query,
		e.Description,
		e.Month,
		e.Year,
		e.Value,
		e.Type,
		e.Status,
		e.User.ID,
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("updating entry: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating entry: %w", err)
	}

	if n == 0 {
		return entry.ErrNotFound
	}

	return nil
}

func (s *Store) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting entry: %w", err)
	}

	return nil
}

func (s *Store) GetEntry(ctx context.Context, id uuid.UUID) (*entry.Entry, error) {
	query := `SELECT ` + selectEntryColumns + `
		FROM entries e
		JOIN users u ON e.user_id = u.id
		WHERE e.id = $1`

	e, err := scanEntry(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entry.ErrNotFound
		}

		return nil, fmt.Errorf("getting entry: %w", err)
	}

	return e, nil
}

func (s *Store) ListEntries(ctx context.Context, filter entry.Filter) ([]*entry.Entry, error) {
	where, args := whereClause(filter)

	query := `SELECT ` + selectEntryColumns + `
		FROM entries e
		JOIN users u ON e.user_id = u.id` + where

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	defer rows.Close()

	var entries []*entry.Entry

	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}

		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entry rows: %w", err)
	}

	return entries, nil
}

// whereClause turns the set fields of filter into a WHERE clause with
// positional arguments.
func whereClause(filter entry.Filter) (string, []any) {
	var (
		clause string
		args   []any
	)

	add := func(column string, value any) {
		args = append(args, value)

		if clause == "" {
			clause = " WHERE "
		} else {
			clause += " AND "
		}

		clause += fmt.Sprintf("%s = $%d", column, len(args))
	}

	if filter.Description != nil {
		add("e.description", *filter.Description)
	}

	if filter.Month != nil {
		add("e.month", *filter.Month)
	}

	if filter.Year != nil {
		add("e.year", *filter.Year)
	}

	if filter.UserID != nil {
		add("e.user_id", *filter.UserID)
	}

	return clause, args
}
