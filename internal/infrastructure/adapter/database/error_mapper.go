package database

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"

	domainErr "github.com/amirhossein-jamali/schema-ledger/internal/domain/error"
)

// ErrorClass is the driver-independent category of a database error
type ErrorClass int

const (
	// ClassUnknown is any error not recognized below
	ClassUnknown ErrorClass = iota
	// ClassTransient covers deadlocks, serialization failures and busy databases
	ClassTransient
	// ClassConnection covers lost or refused connections
	ClassConnection
	// ClassUndefinedTable is raised when the queried table does not exist
	ClassUndefinedTable
	// ClassUniqueViolation is raised when a primary key or unique constraint is violated
	ClassUniqueViolation
)

// SQLSTATE codes used by postgres
const (
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgLockNotAvailable     = "55P03"
	pgQueryCanceled        = "57014"
	pgAdminShutdown        = "57P01"
	pgCannotConnectNow     = "57P03"
	pgTooManyConnections   = "53300"
	pgUndefinedTable       = "42P01"
	pgUniqueViolation      = "23505"
)

// MySQL server error numbers
const (
	myLockWaitTimeout   = 1205
	myDeadlock          = 1213
	myTooManyConns      = 1040
	myServerShutdown    = 1053
	myNoSuchTable       = 1146
	myDuplicateEntry    = 1062
	myQueryInterrupted  = 1317
	myLockDeadlockCheck = 3572
)

// ErrorMapper maps database errors to domain errors
type ErrorMapper struct{}

// NewErrorMapper creates a new ErrorMapper
func NewErrorMapper() *ErrorMapper {
	return &ErrorMapper{}
}

// Classify inspects driver error types first and falls back to message matching
func (m *ErrorMapper) Classify(err error) ErrorClass {
	if err == nil {
		return ClassUnknown
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return classifyPostgres(pgErr)
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return classifyMySQL(myErr)
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code {
		case sqlite3.ErrBusy, sqlite3.ErrLocked:
			return ClassTransient
		case sqlite3.ErrConstraint:
			if liteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey || liteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
				return ClassUniqueViolation
			}
		}
	}

	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, mysql.ErrInvalidConn) || pgconn.SafeToRetry(err) {
		return ClassConnection
	}

	return classifyMessage(strings.ToLower(err.Error()))
}

func classifyPostgres(pgErr *pgconn.PgError) ErrorClass {
	switch pgErr.Code {
	case pgSerializationFailure, pgDeadlockDetected, pgLockNotAvailable, pgQueryCanceled:
		return ClassTransient
	case pgAdminShutdown, pgCannotConnectNow, pgTooManyConnections:
		return ClassConnection
	case pgUndefinedTable:
		return ClassUndefinedTable
	case pgUniqueViolation:
		return ClassUniqueViolation
	}
	// Class 08 is connection exception
	if strings.HasPrefix(pgErr.Code, "08") {
		return ClassConnection
	}
	return ClassUnknown
}

func classifyMySQL(myErr *mysql.MySQLError) ErrorClass {
	switch myErr.Number {
	case myLockWaitTimeout, myDeadlock, myQueryInterrupted, myLockDeadlockCheck:
		return ClassTransient
	case myTooManyConns, myServerShutdown:
		return ClassConnection
	case myNoSuchTable:
		return ClassUndefinedTable
	case myDuplicateEntry:
		return ClassUniqueViolation
	}
	return ClassUnknown
}

func classifyMessage(errMsg string) ErrorClass {
	switch {
	case strings.Contains(errMsg, "no such table") ||
		strings.Contains(errMsg, "doesn't exist") ||
		(strings.Contains(errMsg, "relation") && strings.Contains(errMsg, "does not exist")):
		return ClassUndefinedTable

	case strings.Contains(errMsg, "duplicate key") ||
		strings.Contains(errMsg, "duplicate entry") ||
		strings.Contains(errMsg, "unique constraint"):
		return ClassUniqueViolation

	case strings.Contains(errMsg, "deadlock") ||
		strings.Contains(errMsg, "serialization") ||
		strings.Contains(errMsg, "lock timeout") ||
		strings.Contains(errMsg, "database is locked"):
		return ClassTransient

	case strings.Contains(errMsg, "connection refused") ||
		strings.Contains(errMsg, "no connection") ||
		strings.Contains(errMsg, "connection reset") ||
		strings.Contains(errMsg, "too many connections") ||
		strings.Contains(errMsg, "server closed") ||
		strings.Contains(errMsg, "broken pipe") ||
		strings.Contains(errMsg, "unexpected eof"):
		return ClassConnection
	}
	return ClassUnknown
}

// IsTransient reports whether retrying the operation may succeed
func (m *ErrorMapper) IsTransient(err error) bool {
	switch m.Classify(err) {
	case ClassTransient, ClassConnection:
		return true
	}
	return false
}

// IsUniqueViolation reports whether err is a primary key or unique constraint violation
func (m *ErrorMapper) IsUniqueViolation(err error) bool {
	return m.Classify(err) == ClassUniqueViolation
}

// IsUndefinedTable reports whether err was raised for a table that does not exist
func (m *ErrorMapper) IsUndefinedTable(err error) bool {
	return m.Classify(err) == ClassUndefinedTable
}

// MapError maps a database error to a domain error
func (m *ErrorMapper) MapError(err error, operation string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", operation, err)
	}

	switch m.Classify(err) {
	case ClassUndefinedTable:
		return fmt.Errorf("%w: %s", domainErr.ErrHistoryNotFound, operation)
	case ClassTransient, ClassConnection:
		return fmt.Errorf("%w: %s: %s", domainErr.ErrDatabaseConnection, operation, err.Error())
	default:
		return fmt.Errorf("%w: %s: %s", domainErr.ErrInternal, operation, err.Error())
	}
}
