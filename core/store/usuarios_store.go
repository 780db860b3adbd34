package store

import (
	"context"
	"database/sql"
	"strings"
	"time"
)

type UsuariosStore interface {
	List(ctx context.Context) ([]Usuario, error)
	Create(ctx context.Context, email string, nombre *string, isAdmin bool) (int64, error)
	Update(ctx context.Context, id int64, nombre *string, isAdmin bool) error
	Delete(ctx context.Context, id int64) error
	// FindByEmail returns (nil, nil) when the email is not allow-listed.
	FindByEmail(ctx context.Context, email string) (*Usuario, error)
}

type usuariosStore struct {
	db *sql.DB
}

func NewUsuariosStore(db *sql.DB) UsuariosStore {
	return &usuariosStore{db: db}
}

func scanUsuario(row interface{ Scan(dest ...any) error }) (*Usuario, error) {
	var u Usuario
	var isAdmin int
	if err := row.Scan(&u.ID, &u.Email, &u.Nombre, &isAdmin, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	u.IsAdmin = isAdmin != 0
	return &u, nil
}

func (s *usuariosStore) List(ctx context.Context) ([]Usuario, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, email, nombre, is_admin, created_at, updated_at
		FROM usuarios ORDER BY email`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []Usuario
	for rows.Next() {
		u, err := scanUsuario(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, *u)
	}
	return res, rows.Err()
}

func (s *usuariosStore) Create(ctx context.Context, email string, nombre *string, isAdmin bool) (int64, error) {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO usuarios(email, nombre, is_admin, created_at, updated_at)
		VALUES(?,?,?,?,?)`,
		strings.ToLower(strings.TrimSpace(email)), nombre, boolToInt(isAdmin), now, now)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicateEmail
		}
		return 0, err
	}
	id, _ := res.LastInsertId()
	return id, nil
}

func (s *usuariosStore) Update(ctx context.Context, id int64, nombre *string, isAdmin bool) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE usuarios SET nombre=?, is_admin=?, updated_at=? WHERE id=?`,
		nombre, boolToInt(isAdmin), time.Now().UTC(), id)
	if err != nil {
		return err
	}
	return requireRowMatched(res)
}

func (s *usuariosStore) Delete(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM usuarios WHERE id=?`, id)
	return err
}

func (s *usuariosStore) FindByEmail(ctx context.Context, email string) (*Usuario, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, email, nombre, is_admin, created_at, updated_at
		FROM usuarios WHERE email=?`,
		strings.ToLower(strings.TrimSpace(email)))
	u, err := scanUsuario(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}
