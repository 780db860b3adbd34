package store

import (
	"context"
	"database/sql"
	"strings"
	"time"
)

type InventarioStore interface {
	List(ctx context.Context) ([]Inventario, error)
	Create(ctx context.Context, item *Inventario) (int64, error)
	Update(ctx context.Context, id int64, item *Inventario) error
	Delete(ctx context.Context, id int64) error
	// BulkCreate inserts all items in one transaction; any failure rolls
	// back the whole batch.
	BulkCreate(ctx context.Context, items []Inventario) error
}

type inventarioStore struct {
	db *sql.DB
}

func NewInventarioStore(db *sql.DB) InventarioStore {
	return &inventarioStore{db: db}
}

func (s *inventarioStore) List(ctx context.Context) ([]Inventario, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT i.id, i.id_elemento, i.nombre_elemento, i.tipo_inventario, i.distrito_id,
			d.nombre, i.created_at, i.updated_at
		FROM mint_sve i
		LEFT JOIN distritos d ON i.distrito_id = d.id
		ORDER BY i.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []Inventario
	for rows.Next() {
		var it Inventario
		if err := rows.Scan(&it.ID, &it.IDElemento, &it.NombreElemento, &it.TipoInventario,
			&it.DistritoID, &it.DistritoNombre, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, err
		}
		res = append(res, it)
	}
	return res, rows.Err()
}

func (s *inventarioStore) Create(ctx context.Context, item *Inventario) (int64, error) {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO mint_sve(id_elemento, nombre_elemento, tipo_inventario, distrito_id, created_at, updated_at)
		VALUES(?,?,?,?,?,?)`,
		strings.TrimSpace(item.IDElemento), strings.TrimSpace(item.NombreElemento),
		strings.TrimSpace(item.TipoInventario), item.DistritoID, now, now)
	if err != nil {
		return 0, err
	}
	id, _ := res.LastInsertId()
	return id, nil
}

func (s *inventarioStore) Update(ctx context.Context, id int64, item *Inventario) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE mint_sve
		SET id_elemento=?, nombre_elemento=?, tipo_inventario=?, distrito_id=?, updated_at=?
		WHERE id=?`,
		strings.TrimSpace(item.IDElemento), strings.TrimSpace(item.NombreElemento),
		strings.TrimSpace(item.TipoInventario), item.DistritoID, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	return requireRowMatched(res)
}

func (s *inventarioStore) Delete(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM mint_sve WHERE id=?`, id)
	return err
}

func (s *inventarioStore) BulkCreate(ctx context.Context, items []Inventario) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	now := time.Now().UTC()
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO mint_sve(id_elemento, nombre_elemento, tipo_inventario, distrito_id, created_at, updated_at)
		VALUES(?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i := range items {
		it := &items[i]
		if _, err := stmt.ExecContext(ctx,
			strings.TrimSpace(it.IDElemento), strings.TrimSpace(it.NombreElemento),
			strings.TrimSpace(it.TipoInventario), it.DistritoID, now, now); err != nil {
			return err
		}
	}
	return tx.Commit()
}
