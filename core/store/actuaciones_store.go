package store

import (
	"context"
	"database/sql"
	"strings"
	"time"
)

type ActuacionesStore interface {
	List(ctx context.Context) ([]Actuacion, error)
	Create(ctx context.Context, a *Actuacion) (int64, error)
	Update(ctx context.Context, id int64, a *Actuacion) error
	Delete(ctx context.Context, id int64) error
}

type actuacionesStore struct {
	db *sql.DB
}

func NewActuacionesStore(db *sql.DB) ActuacionesStore {
	return &actuacionesStore{db: db}
}

func (s *actuacionesStore) List(ctx context.Context) ([]Actuacion, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT a.id, a.nombre_actuacion, a.distrito_id, d.nombre, a.created_at, a.updated_at
		FROM actuaciones a
		LEFT JOIN distritos d ON a.distrito_id = d.id
		ORDER BY a.nombre_actuacion`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []Actuacion
	for rows.Next() {
		var a Actuacion
		if err := rows.Scan(&a.ID, &a.NombreActuacion, &a.DistritoID, &a.DistritoNombre,
			&a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		res = append(res, a)
	}
	return res, rows.Err()
}

func (s *actuacionesStore) Create(ctx context.Context, a *Actuacion) (int64, error) {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO actuaciones(nombre_actuacion, distrito_id, created_at, updated_at)
		VALUES(?,?,?,?)`,
		strings.TrimSpace(a.NombreActuacion), a.DistritoID, now, now)
	if err != nil {
		return 0, err
	}
	id, _ := res.LastInsertId()
	return id, nil
}

func (s *actuacionesStore) Update(ctx context.Context, id int64, a *Actuacion) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE actuaciones SET nombre_actuacion=?, distrito_id=?, updated_at=? WHERE id=?`,
		strings.TrimSpace(a.NombreActuacion), a.DistritoID, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	return requireRowMatched(res)
}

func (s *actuacionesStore) Delete(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM actuaciones WHERE id=?`, id)
	return err
}
