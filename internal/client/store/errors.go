package store

import (
	"context"
	"database/sql"
	"errors"
	"net"
	"strings"

	"github.com/dmitrijs2005/quotekeeper/internal/client/errclass"
	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// normalize converts driver errors into *errclass.StoreError at the store
// boundary. nil stays nil.
func normalize(err error) error {
	if err == nil {
		return nil
	}

	var se *errclass.StoreError
	if errors.As(err, &se) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return &errclass.StoreError{Code: pgErr.Code, Message: pgErr.Message, Err: err}
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return &errclass.StoreError{Code: sqliteCode(liteErr), Message: liteErr.Error(), Err: err}
	}

	if errors.Is(err, sql.ErrNoRows) {
		return &errclass.StoreError{Code: errclass.CodeNotFound, Message: "no rows returned", Err: err}
	}

	var netErr net.Error
	var connErr *pgconn.ConnectError
	if errors.As(err, &netErr) || errors.As(err, &connErr) || errors.Is(err, context.DeadlineExceeded) {
		return &errclass.StoreError{Message: "network error: " + err.Error(), Err: err}
	}

	return &errclass.StoreError{Message: err.Error(), Err: err}
}

// sqliteCode maps SQLite result codes onto the PostgreSQL codes the
// classifier knows.
func sqliteCode(e *sqlite.Error) string {
	code := e.Code()
	switch {
	case code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(e.Error(), "UNIQUE"):
		return errclass.CodeUniqueViolation
	case code&0xff == sqlite3.SQLITE_PERM || code&0xff == sqlite3.SQLITE_AUTH:
		return errclass.CodeInsufficientPrivilege
	default:
		return ""
	}
}
