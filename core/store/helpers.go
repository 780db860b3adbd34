package store

import (
	"database/sql"
	"strings"
)

// isUniqueViolation matches the unique-index error of both supported
// drivers: modernc sqlite ("UNIQUE constraint failed") and postgres
// (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "SQLSTATE 23505")
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// requireRowMatched turns a zero-row UPDATE into ErrNotFound so callers
// can report a missing id instead of a silent success.
func requireRowMatched(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
