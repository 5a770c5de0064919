package services

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/yeremiapane/retail-manager/integrity"
	"gorm.io/gorm"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"

	mysqlDuplicateEntry  = 1062
	mysqlRowIsReferenced = 1451
	mysqlNoReferencedRow = 1452
)

const (
	duplicateMessage   = "Record already exists."
	referentialMessage = "Referenced record does not exist or is still in use."
)

// classifyStoreError maps constraint violations raised by the store onto
// rejections. The unique and foreign-key constraints are the real enforcement;
// the snapshot check only catches the common case early. Anything else is a
// store failure.
func classifyStoreError(err error) *integrity.Rejection {
	if err == nil {
		return nil
	}
	var rej *integrity.Rejection
	if errors.As(err, &rej) {
		return rej
	}

	switch {
	case isDuplicate(err):
		return &integrity.Rejection{Reason: integrity.ReasonDuplicateKey, Message: duplicateMessage, Err: err}
	case isForeignKey(err):
		return &integrity.Rejection{Reason: integrity.ReasonReferentialViolation, Message: referentialMessage, Err: err}
	default:
		return integrity.StoreFailure(err)
	}
}

func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlDuplicateEntry
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			liteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

func isForeignKey(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgForeignKeyViolation
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlRowIsReferenced || myErr.Number == mysqlNoReferencedRow
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey
	}
	return false
}
