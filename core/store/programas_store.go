package store

import (
	"context"
	"database/sql"
	"strings"
	"time"
)

type ProgramasStore interface {
	List(ctx context.Context) ([]Programa, error)
	Create(ctx context.Context, p *Programa) (int64, error)
	Update(ctx context.Context, id int64, p *Programa) error
	Delete(ctx context.Context, id int64) error
}

type programasStore struct {
	db *sql.DB
}

func NewProgramasStore(db *sql.DB) ProgramasStore {
	return &programasStore{db: db}
}

func (s *programasStore) List(ctx context.Context) ([]Programa, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.id, p.nombre_programa, p.id_actuacion, p.fecha_inicio, p.fecha_fin, p.distrito_id,
			a.nombre_actuacion, d.nombre, p.created_at, p.updated_at
		FROM programas p
		LEFT JOIN actuaciones a ON p.id_actuacion = a.id
		LEFT JOIN distritos d ON p.distrito_id = d.id
		ORDER BY p.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []Programa
	for rows.Next() {
		var p Programa
		if err := rows.Scan(&p.ID, &p.NombrePrograma, &p.IDActuacion, &p.FechaInicio, &p.FechaFin,
			&p.DistritoID, &p.NombreActuacion, &p.DistritoNombre, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		res = append(res, p)
	}
	return res, rows.Err()
}

func (s *programasStore) Create(ctx context.Context, p *Programa) (int64, error) {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO programas(nombre_programa, id_actuacion, fecha_inicio, fecha_fin, distrito_id, created_at, updated_at)
		VALUES(?,?,?,?,?,?,?)`,
		strings.TrimSpace(p.NombrePrograma), p.IDActuacion, p.FechaInicio, p.FechaFin,
		p.DistritoID, now, now)
	if err != nil {
		return 0, err
	}
	id, _ := res.LastInsertId()
	return id, nil
}

func (s *programasStore) Update(ctx context.Context, id int64, p *Programa) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE programas
		SET nombre_programa=?, id_actuacion=?, fecha_inicio=?, fecha_fin=?, distrito_id=?, updated_at=?
		WHERE id=?`,
		strings.TrimSpace(p.NombrePrograma), p.IDActuacion, p.FechaInicio, p.FechaFin,
		p.DistritoID, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	return requireRowMatched(res)
}

func (s *programasStore) Delete(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM programas WHERE id=?`, id)
	return err
}
