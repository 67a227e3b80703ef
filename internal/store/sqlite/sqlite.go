// Package sqlite stores records in an embedded SQLite database file.
//
// Substring filtering uses LIKE, which in SQLite is case-insensitive for
// ASCII by default.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"comprobantes/internal/core"

	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) Create(ctx context.Context, rec core.Record) (int64, error) {
	if err := rec.Validate(); err != nil {
		return 0, err
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO transferencias (nombre, fecha, monto, descripcion, imagen) VALUES (?, ?, ?, ?, ?)`,
		rec.Name, rec.Date, rec.Amount, rec.Description, rec.ImageRef)
	if err != nil {
		return 0, fmt.Errorf("insert record: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}

	slog.InfoContext(ctx, "Record saved to SQLite", "id", id, "nombre", rec.Name, "fecha", rec.Date)
	return id, nil
}

func (s *Store) List(ctx context.Context, f core.Filter) ([]core.Record, error) {
	f = f.Normalize()

	query := `SELECT id, nombre, fecha, monto, descripcion, imagen, created_at FROM transferencias`
	var (
		conds []string
		args  []any
	)
	if f.Term != "" {
		conds = append(conds, filterColumn(f.Field)+` LIKE '%' || ? || '%'`)
		args = append(args, f.Term)
	}
	if f.Date != "" {
		conds = append(conds, `fecha = ?`)
		args = append(args, f.Date)
	}
	for i, c := range conds {
		if i == 0 {
			query += ` WHERE ` + c
		} else {
			query += ` AND ` + c
		}
	}
	query += ` ORDER BY fecha DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var out []core.Record
	for rows.Next() {
		var (
			rec       core.Record
			createdAt sql.NullTime
		)
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Date, &rec.Amount, &rec.Description, &rec.ImageRef, &createdAt); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		rec.CreatedAt = createdAt.Time
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return out, nil
}

func (s *Store) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM transferencias WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete record: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

// filterColumn maps a filter field to its column name. The field enum is
// closed, so this can never interpolate user input into SQL.
func filterColumn(f core.FilterField) string {
	switch f {
	case core.FieldAmount:
		return "monto"
	case core.FieldDescription:
		return "descripcion"
	default:
		return "nombre"
	}
}
