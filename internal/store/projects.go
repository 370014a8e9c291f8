package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/firefly-engineering/projctl/internal/project"
)

// List returns every project in registration order plus the current key.
func (s *Store) List(ctx context.Context) (project.Collection, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT key, name, path, created_at, creating_progress
		FROM projects
		ORDER BY id ASC
	`)
	if err != nil {
		return project.Collection{}, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var records []project.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return project.Collection{}, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return project.Collection{}, fmt.Errorf("error iterating project rows: %w", err)
	}

	current, err := s.Current(ctx)
	if err != nil {
		return project.Collection{}, err
	}

	return project.NewCollection(current, records...), nil
}

// Get returns the project registered under key.
func (s *Store) Get(ctx context.Context, key string) (project.Record, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT key, name, path, created_at, creating_progress
		FROM projects
		WHERE key = ?
	`, key)

	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return project.Record{}, ErrNotFound
	}
	return rec, err
}

// Insert registers rec. An empty Key is replaced with a generated one.
// The stored record is returned.
func (s *Store) Insert(ctx context.Context, rec project.Record) (project.Record, error) {
	if rec.Key == "" {
		rec.Key = uuid.NewString()
	}

	progress, err := rec.CreatingProgress.Marshal()
	if err != nil {
		return project.Record{}, fmt.Errorf("failed to encode creation progress: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO projects (key, name, path, created_at, creating_progress)
		VALUES (?, ?, ?, ?, ?)
	`, rec.Key, rec.Name, rec.Path, nullableInt(rec.CreatedAt), nullableText(progress))
	if isUniqueViolation(err) {
		return project.Record{}, ErrConflict
	}
	if err != nil {
		return project.Record{}, fmt.Errorf("failed to insert project: %w", err)
	}

	rec.Active = false
	return rec, nil
}

// Rename changes a project's display name.
func (s *Store) Rename(ctx context.Context, key, name string) error {
	return s.updateOne(ctx, "rename project",
		`UPDATE projects SET name = ? WHERE key = ?`, name, key)
}

// UpdateProgress replaces a project's creation job.
func (s *Store) UpdateProgress(ctx context.Context, key string, p project.CreatingProgress) error {
	progress, err := p.Marshal()
	if err != nil {
		return fmt.Errorf("failed to encode creation progress: %w", err)
	}
	return s.updateOne(ctx, "update progress",
		`UPDATE projects SET creating_progress = ? WHERE key = ?`, nullableText(progress), key)
}

// Delete removes a project. The current selection is cleared when it
// pointed at the deleted project.
func (s *Store) Delete(ctx context.Context, key string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `DELETE FROM projects WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	_, err = tx.ExecContext(ctx,
		`DELETE FROM settings WHERE name = ? AND value = ?`, settingCurrentProject, key)
	if err != nil {
		return fmt.Errorf("failed to clear current project: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *Store) updateOne(ctx context.Context, op, query string, args ...any) error {
	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to %s: %w", op, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (project.Record, error) {
	var (
		rec       project.Record
		createdAt sql.NullInt64
		progress  sql.NullString
	)
	err := row.Scan(&rec.Key, &rec.Name, &rec.Path, &createdAt, &progress)
	if err == sql.ErrNoRows {
		return project.Record{}, err
	}
	if err != nil {
		return project.Record{}, fmt.Errorf("failed to scan project: %w", err)
	}

	if createdAt.Valid {
		rec.CreatedAt = createdAt.Int64
	}
	if progress.Valid {
		rec.CreatingProgress = project.ParseCreatingProgress([]byte(progress.String))
	}
	return rec, nil
}

func nullableInt(v int64) sql.NullInt64 {
	return sql.NullInt64{Int64: v, Valid: v != 0}
}

func nullableText(b []byte) sql.NullString {
	return sql.NullString{String: string(b), Valid: len(b) > 0}
}
