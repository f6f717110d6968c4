package store

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrSlugTaken   = errors.New("slug already taken")
	ErrSlugInvalid = errors.New("invalid slug")
	ErrForbidden   = errors.New("forbidden")
)

// notFound maps sql.ErrNoRows to ErrNotFound and passes other errors through.
func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// isUniqueViolation reports whether err is a primary key or unique
// constraint failure on any backend.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	// libsql, and sqlite without extended codes, only report the message
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// slugTaken maps a unique violation on the cards table to ErrSlugTaken.
func slugTaken(err error) error {
	if isUniqueViolation(err) {
		return ErrSlugTaken
	}
	return err
}
