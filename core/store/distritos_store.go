package store

import (
	"context"
	"database/sql"
	"strings"
	"time"
)

type DistritosStore interface {
	List(ctx context.Context) ([]Distrito, error)
	Create(ctx context.Context, nombre string) (int64, error)
}

type distritosStore struct {
	db *sql.DB
}

func NewDistritosStore(db *sql.DB) DistritosStore {
	return &distritosStore{db: db}
}

func (s *distritosStore) List(ctx context.Context) ([]Distrito, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, nombre, created_at, updated_at
		FROM distritos ORDER BY nombre`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []Distrito
	for rows.Next() {
		var d Distrito
		if err := rows.Scan(&d.ID, &d.Nombre, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		res = append(res, d)
	}
	return res, rows.Err()
}

func (s *distritosStore) Create(ctx context.Context, nombre string) (int64, error) {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO distritos(nombre, created_at, updated_at) VALUES(?,?,?)`,
		strings.TrimSpace(nombre), now, now)
	if err != nil {
		return 0, err
	}
	id, _ := res.LastInsertId()
	return id, nil
}
