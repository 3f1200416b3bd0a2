// Package repository holds the MySQL-backed stores. Driver failures are
// translated into the errs taxonomy here so higher layers never inspect
// driver types.
package repository

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"

	"github.com/stylemate/marketplace-api/internal/errs"
)

const mysqlDuplicateEntry = 1062

// isDuplicate reports a unique-key violation.
func isDuplicate(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == mysqlDuplicateEntry
	}
	return strings.Contains(err.Error(), "1062")
}

// translate maps sql.ErrNoRows to NotFound(what) and a duplicate key to
// Conflict on field. Other errors pass through.
func translate(err error, what, field string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return errs.NotFound(what + " not found")
	case field != "" && isDuplicate(err):
		return errs.AlreadyExists(field)
	}
	return err
}

// affected turns a zero-row UPDATE/DELETE into NotFound(what).
func affected(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return errs.NotFound(what + " not found")
	}
	return nil
}
