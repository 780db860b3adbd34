package store

import (
	"context"
	"database/sql"
)

// AdminStore is the admin-only escape hatch: verbatim SQL against the
// store and table-name listing. It carries no query-shape restriction,
// timeout, or row cap; the privilege gate lives in the HTTP layer.
type AdminStore interface {
	Query(ctx context.Context, query string) ([]map[string]any, error)
	Tables(ctx context.Context) ([]string, error)
}

type adminStore struct {
	db     *sql.DB
	driver string
}

func NewAdminStore(db *sql.DB, driver string) AdminStore {
	return &adminStore{db: db, driver: driver}
}

func (s *adminStore) Query(ctx context.Context, query string) ([]map[string]any, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	results := []map[string]any{}
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make(map[string]any, len(cols))
		for i, col := range cols {
			v := values[i]
			if b, ok := v.([]byte); ok {
				v = string(b)
			}
			row[col] = v
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

func (s *adminStore) Tables(ctx context.Context) ([]string, error) {
	query := `SELECT name FROM sqlite_master WHERE type='table' ORDER BY name`
	if s.driver == DriverPostgres {
		query = `SELECT table_name FROM information_schema.tables WHERE table_schema='public' ORDER BY table_name`
	}
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		res = append(res, name)
	}
	return res, rows.Err()
}
