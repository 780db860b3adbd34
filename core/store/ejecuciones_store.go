package store

import (
	"context"
	"database/sql"
	"strings"
	"time"
)

type EjecucionesStore interface {
	// List returns all rows when asignadoA is nil; otherwise only rows
	// assigned to that email. The restriction is a query predicate, never
	// post-filtering.
	List(ctx context.Context, asignadoA *string) ([]Ejecucion, error)
	Create(ctx context.Context, e *Ejecucion) (int64, error)
	Update(ctx context.Context, id int64, e *Ejecucion) error
	Delete(ctx context.Context, id int64) error
	// ListRepetibles returns, for each recurring series, its latest
	// occurrence when that occurrence is completed, along with how many
	// occurrences the series has so far.
	ListRepetibles(ctx context.Context, limit int) ([]EjecucionSerie, error)
}

type ejecucionesStore struct {
	db *sql.DB
}

func NewEjecucionesStore(db *sql.DB) EjecucionesStore {
	return &ejecucionesStore{db: db}
}

const ejecucionListQuery = `
	SELECT e.id, e.id_programa, e.id_elemento, e.fecha_inicio, e.fecha_fin, e.periodicidad,
		e.repeticiones_max, e.estado, e.asignado_a, e.notas, e.imagen_1_url, e.imagen_2_url,
		e.distrito_id,
		p.nombre_programa, p.id_actuacion,
		a.nombre_actuacion,
		i.nombre_elemento, i.id_elemento, i.tipo_inventario,
		d.nombre,
		e.created_at, e.updated_at
	FROM ejecuciones_programadas e
	LEFT JOIN programas p ON e.id_programa = p.id
	LEFT JOIN actuaciones a ON p.id_actuacion = a.id
	LEFT JOIN mint_sve i ON e.id_elemento = i.id
	LEFT JOIN distritos d ON e.distrito_id = d.id`

func scanEjecucion(rows *sql.Rows) (Ejecucion, error) {
	var e Ejecucion
	err := rows.Scan(&e.ID, &e.IDPrograma, &e.IDElemento, &e.FechaInicio, &e.FechaFin,
		&e.Periodicidad, &e.RepeticionesMax, &e.Estado, &e.AsignadoA, &e.Notas,
		&e.Imagen1URL, &e.Imagen2URL, &e.DistritoID,
		&e.NombrePrograma, &e.IDActuacion, &e.NombreActuacion,
		&e.NombreElemento, &e.CodigoElemento, &e.TipoInventario,
		&e.DistritoNombre, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}

func (s *ejecucionesStore) List(ctx context.Context, asignadoA *string) ([]Ejecucion, error) {
	query := ejecucionListQuery
	var args []any
	if asignadoA != nil {
		query += " WHERE e.asignado_a = ?"
		args = append(args, strings.TrimSpace(*asignadoA))
	}
	query += " ORDER BY e.fecha_inicio DESC"
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []Ejecucion
	for rows.Next() {
		e, err := scanEjecucion(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, e)
	}
	return res, rows.Err()
}

func (s *ejecucionesStore) Create(ctx context.Context, e *Ejecucion) (int64, error) {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO ejecuciones_programadas
			(id_programa, id_elemento, fecha_inicio, fecha_fin, periodicidad, repeticiones_max,
			estado, asignado_a, notas, imagen_1_url, imagen_2_url, distrito_id, created_at, updated_at)
		VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		e.IDPrograma, e.IDElemento, e.FechaInicio, e.FechaFin, e.Periodicidad, e.RepeticionesMax,
		e.Estado, e.AsignadoA, e.Notas, e.Imagen1URL, e.Imagen2URL, e.DistritoID, now, now)
	if err != nil {
		return 0, err
	}
	id, _ := res.LastInsertId()
	return id, nil
}

func (s *ejecucionesStore) Update(ctx context.Context, id int64, e *Ejecucion) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE ejecuciones_programadas
		SET id_programa=?, id_elemento=?, fecha_inicio=?, fecha_fin=?, periodicidad=?,
			repeticiones_max=?, estado=?, asignado_a=?, notas=?, imagen_1_url=?, imagen_2_url=?,
			distrito_id=?, updated_at=?
		WHERE id=?`,
		e.IDPrograma, e.IDElemento, e.FechaInicio, e.FechaFin, e.Periodicidad, e.RepeticionesMax,
		e.Estado, e.AsignadoA, e.Notas, e.Imagen1URL, e.Imagen2URL, e.DistritoID,
		time.Now().UTC(), id)
	if err != nil {
		return err
	}
	return requireRowMatched(res)
}

func (s *ejecucionesStore) Delete(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM ejecuciones_programadas WHERE id=?`, id)
	return err
}

func (s *ejecucionesStore) ListRepetibles(ctx context.Context, limit int) ([]EjecucionSerie, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT e.id, e.id_programa, e.id_elemento, e.fecha_inicio, e.fecha_fin, e.periodicidad,
			e.repeticiones_max, e.estado, e.asignado_a, e.notas, e.imagen_1_url, e.imagen_2_url,
			e.distrito_id, e.created_at, e.updated_at,
			(SELECT COUNT(*) FROM ejecuciones_programadas t
				WHERE t.id_programa = e.id_programa
				AND COALESCE(t.id_elemento, 0) = COALESCE(e.id_elemento, 0)
				AND t.periodicidad = e.periodicidad) AS serie_total
		FROM ejecuciones_programadas e
		WHERE e.periodicidad <> ?
			AND e.estado = ?
			AND NOT EXISTS (
				SELECT 1 FROM ejecuciones_programadas l
				WHERE l.id_programa = e.id_programa
				AND COALESCE(l.id_elemento, 0) = COALESCE(e.id_elemento, 0)
				AND l.periodicidad = e.periodicidad
				AND (l.fecha_inicio > e.fecha_inicio
					OR (l.fecha_inicio = e.fecha_inicio AND l.id > e.id)))
		ORDER BY e.fecha_inicio
		LIMIT ?`,
		PeriodicidadUnica, EstadoCompletada, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []EjecucionSerie
	for rows.Next() {
		var e EjecucionSerie
		if err := rows.Scan(&e.ID, &e.IDPrograma, &e.IDElemento, &e.FechaInicio, &e.FechaFin,
			&e.Periodicidad, &e.RepeticionesMax, &e.Estado, &e.AsignadoA, &e.Notas,
			&e.Imagen1URL, &e.Imagen2URL, &e.DistritoID, &e.CreatedAt, &e.UpdatedAt,
			&e.SerieTotal); err != nil {
			return nil, err
		}
		res = append(res, e)
	}
	return res, rows.Err()
}
