package error

import (
	"errors"
	"fmt"
	"strings"
)

// Error codes for standardized API and CLI responses
const (
	// 4xxx - Configuration and validation errors
	CodeInvalidVersion         = 4001
	CodeInvalidMigrationName   = 4002
	CodeDuplicateMigration     = 4003
	CodeValidationFailed       = 4004
	CodeBaselineRefused        = 4005
	CodeInvalidTarget          = 4006
	CodeFailedMigrationPresent = 4007
	CodeHistoryNotEmpty        = 4008
	CodeUnreadableLocation     = 4009
	CodeInvalidRequest         = 4000
	CodeMigrationFailed        = 4220
	CodeLockNotAcquired        = 4230
	CodeHistoryNotFound        = 4040

	// 5xxx - Server errors
	CodeInternalServer     = 5000
	CodeDatabaseConnection = 5030
)

// Base error types
var (
	// ErrInvalidVersion is returned when a version string is empty or malformed
	ErrInvalidVersion = errors.New("invalid version")

	// ErrInvalidMigrationName is returned when a migration file name does not follow the naming convention
	ErrInvalidMigrationName = errors.New("invalid migration name")

	// ErrDuplicateMigration is returned when two sources resolve the same identity
	ErrDuplicateMigration = errors.New("duplicate migration")

	// ErrUnreadableLocation is returned when a migration location cannot be scanned
	ErrUnreadableLocation = errors.New("unreadable migration location")

	// ErrValidationFailed is returned when the resolved and applied migrations disagree
	ErrValidationFailed = errors.New("validation failed")

	// ErrBaselineRefused is returned when the schema history already contains non-baseline rows
	ErrBaselineRefused = errors.New("baseline refused")

	// ErrLockNotAcquired is returned when the migration lock could not be taken within the retry budget
	ErrLockNotAcquired = errors.New("migration lock not acquired")

	// ErrMigrationFailed is returned when a migration script fails during execution
	ErrMigrationFailed = errors.New("migration failed")

	// ErrFailedMigrationPresent is returned when migrate finds a FAILED migration that requires repair
	ErrFailedMigrationPresent = errors.New("schema history contains a failed migration")

	// ErrHistoryNotEmpty is returned when an operation requires an empty schema history
	ErrHistoryNotEmpty = errors.New("schema history is not empty")

	// ErrHistoryNotFound is returned when the schema history table does not exist
	ErrHistoryNotFound = errors.New("schema history table not found")

	// ErrInvalidTarget is returned when a target version cannot be parsed or resolved
	ErrInvalidTarget = errors.New("invalid target version")

	// ErrInvalidRequest is returned when an API request is malformed
	ErrInvalidRequest = errors.New("invalid request")

	// ErrDatabaseConnection is returned when there's a problem connecting to the database
	ErrDatabaseConnection = errors.New("database connection error")

	// ErrInternal is returned for unexpected errors
	ErrInternal = errors.New("internal error")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrInvalidVersion):
		return CodeInvalidVersion
	case errors.Is(err, ErrInvalidMigrationName):
		return CodeInvalidMigrationName
	case errors.Is(err, ErrDuplicateMigration):
		return CodeDuplicateMigration
	case errors.Is(err, ErrUnreadableLocation):
		return CodeUnreadableLocation
	case errors.Is(err, ErrValidationFailed):
		return CodeValidationFailed
	case errors.Is(err, ErrBaselineRefused):
		return CodeBaselineRefused
	case errors.Is(err, ErrInvalidTarget):
		return CodeInvalidTarget
	case errors.Is(err, ErrFailedMigrationPresent):
		return CodeFailedMigrationPresent
	case errors.Is(err, ErrHistoryNotEmpty):
		return CodeHistoryNotEmpty
	case errors.Is(err, ErrHistoryNotFound):
		return CodeHistoryNotFound
	case errors.Is(err, ErrLockNotAcquired):
		return CodeLockNotAcquired
	case errors.Is(err, ErrMigrationFailed):
		return CodeMigrationFailed
	case errors.Is(err, ErrInvalidRequest):
		return CodeInvalidRequest
	case errors.Is(err, ErrDatabaseConnection):
		return CodeDatabaseConnection
	default:
		return CodeInternalServer
	}
}

// InvalidFormatError describes a version string that could not be parsed
type InvalidFormatError struct {
	Input  string
	Reason string
}

// Error implements the error interface
func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid version %q: %s", e.Input, e.Reason)
}

// Is reports whether the target is ErrInvalidVersion
func (e *InvalidFormatError) Is(target error) bool {
	return target == ErrInvalidVersion
}

// LogFields returns a map of fields for structured logging
func (e *InvalidFormatError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "invalid_version",
		"input":      e.Input,
		"reason":     e.Reason,
		"error_code": CodeInvalidVersion,
	}
}

// NewInvalidFormatError creates a new version format error
func NewInvalidFormatError(input, reason string) error {
	return &InvalidFormatError{Input: input, Reason: reason}
}

// InvalidMigrationNameError describes a migration resource whose name violates the naming convention
type InvalidMigrationNameError struct {
	Name     string
	Location string
	Reason   string
	Err      error
}

// Error implements the error interface
func (e *InvalidMigrationNameError) Error() string {
	msg := fmt.Sprintf("invalid migration name %q at %s: %s", e.Name, e.Location, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error
func (e *InvalidMigrationNameError) Unwrap() error {
	return e.Err
}

// Is reports whether the target is ErrInvalidMigrationName
func (e *InvalidMigrationNameError) Is(target error) bool {
	return target == ErrInvalidMigrationName
}

// LogFields returns a map of fields for structured logging
func (e *InvalidMigrationNameError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "invalid_migration_name",
		"name":       e.Name,
		"location":   e.Location,
		"reason":     e.Reason,
		"error_code": CodeInvalidMigrationName,
	}
}

// NewInvalidMigrationNameError creates a new naming error
func NewInvalidMigrationNameError(name, location, reason string, err error) error {
	return &InvalidMigrationNameError{Name: name, Location: location, Reason: reason, Err: err}
}

// DuplicateMigrationError describes two resolved migrations sharing the same identity
type DuplicateMigrationError struct {
	Identity  string
	Locations []string
}

// Error implements the error interface
func (e *DuplicateMigrationError) Error() string {
	return fmt.Sprintf("found more than one migration with identity %s: %s",
		e.Identity, strings.Join(e.Locations, ", "))
}

// Is reports whether the target is ErrDuplicateMigration
func (e *DuplicateMigrationError) Is(target error) bool {
	return target == ErrDuplicateMigration
}

// LogFields returns a map of fields for structured logging
func (e *DuplicateMigrationError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "duplicate_migration",
		"identity":   e.Identity,
		"locations":  e.Locations,
		"error_code": CodeDuplicateMigration,
	}
}

// NewDuplicateMigrationError creates a new duplicate identity error
func NewDuplicateMigrationError(identity string, locations ...string) error {
	return &DuplicateMigrationError{Identity: identity, Locations: locations}
}

// IssueKind classifies a single validation finding
type IssueKind string

// Validation issue kinds
const (
	IssueChecksumMismatch    IssueKind = "checksum_mismatch"
	IssueDescriptionMismatch IssueKind = "description_mismatch"
	IssueTypeMismatch        IssueKind = "type_mismatch"
	IssueMissing             IssueKind = "missing"
	IssueFuture              IssueKind = "future"
	IssueFailed              IssueKind = "failed"
	IssueOutOfOrder          IssueKind = "out_of_order"
	IssueOutdated            IssueKind = "outdated"
)

// IsFatal reports whether the issue fails validation. Outdated repeatables are informational.
func (k IssueKind) IsFatal() bool {
	return k != IssueOutdated
}

// ValidationIssue is one inconsistency between a resolved migration and the schema history
type ValidationIssue struct {
	Kind     IssueKind `json:"kind" yaml:"kind"`
	Identity string    `json:"identity" yaml:"identity"`
	Script   string    `json:"script,omitempty" yaml:"script,omitempty"`
	Message  string    `json:"message" yaml:"message"`
}

// ValidationError aggregates every validation issue found in one pass
type ValidationError struct {
	Issues []ValidationIssue
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, fmt.Sprintf("%s %s: %s", issue.Kind, issue.Identity, issue.Message))
	}
	return fmt.Sprintf("validation failed with %d issue(s): %s", len(e.Issues), strings.Join(parts, "; "))
}

// Is reports whether the target is ErrValidationFailed
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

// LogFields returns a map of fields for structured logging
func (e *ValidationError) LogFields() map[string]any {
	identities := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		identities = append(identities, issue.Identity)
	}
	return map[string]any{
		"error_type":  "validation",
		"issue_count": len(e.Issues),
		"identities":  identities,
		"error_code":  CodeValidationFailed,
	}
}

// LockError describes a failure to obtain the migration lock
type LockError struct {
	Key      string
	Attempts int
	Err      error
}

// Error implements the error interface
func (e *LockError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("unable to acquire migration lock %s after %d attempt(s)", e.Key, e.Attempts)
	}
	return fmt.Sprintf("unable to acquire migration lock %s after %d attempt(s): %v", e.Key, e.Attempts, e.Err)
}

// Unwrap returns the underlying error
func (e *LockError) Unwrap() error {
	return e.Err
}

// Is reports whether the target is ErrLockNotAcquired
func (e *LockError) Is(target error) bool {
	return target == ErrLockNotAcquired
}

// LogFields returns a map of fields for structured logging
func (e *LockError) LogFields() map[string]any {
	fields := map[string]any{
		"error_type": "lock",
		"key":        e.Key,
		"attempts":   e.Attempts,
		"error_code": CodeLockNotAcquired,
	}
	if e.Err != nil {
		fields["error"] = e.Err.Error()
	}
	return fields
}

// MigrationExecutionError describes a migration whose script failed; the failure is already recorded
type MigrationExecutionError struct {
	Identity string
	Script   string
	Err      error
}

// Error implements the error interface
func (e *MigrationExecutionError) Error() string {
	return fmt.Sprintf("migration %s (%s) failed: %v", e.Identity, e.Script, e.Err)
}

// Unwrap returns the underlying error
func (e *MigrationExecutionError) Unwrap() error {
	return e.Err
}

// Is reports whether the target is ErrMigrationFailed
func (e *MigrationExecutionError) Is(target error) bool {
	return target == ErrMigrationFailed
}

// LogFields returns a map of fields for structured logging
func (e *MigrationExecutionError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "migration_execution",
		"identity":   e.Identity,
		"script":     e.Script,
		"error":      e.Err.Error(),
		"error_code": CodeMigrationFailed,
	}
}

// BaselineError describes a refused baseline
type BaselineError struct {
	Version string
	Reason  string
}

// Error implements the error interface
func (e *BaselineError) Error() string {
	return fmt.Sprintf("unable to baseline at version %s: %s", e.Version, e.Reason)
}

// Is reports whether the target is ErrBaselineRefused
func (e *BaselineError) Is(target error) bool {
	return target == ErrBaselineRefused
}

// LogFields returns a map of fields for structured logging
func (e *BaselineError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "baseline",
		"version":    e.Version,
		"reason":     e.Reason,
		"error_code": CodeBaselineRefused,
	}
}

// IsValidationError checks if the error is an aggregate validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidationFailed)
}

// IsLockError checks if the error is related to the migration lock
func IsLockError(err error) bool {
	return errors.Is(err, ErrLockNotAcquired)
}

// IsConfigurationError checks if the error aborts an operation before any database write
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrInvalidMigrationName) ||
		errors.Is(err, ErrDuplicateMigration) ||
		errors.Is(err, ErrUnreadableLocation) ||
		errors.Is(err, ErrInvalidVersion) ||
		errors.Is(err, ErrInvalidTarget)
}

// LogFieldsOf extracts structured log fields from errors that provide them
func LogFieldsOf(err error) map[string]any {
	var withFields interface{ LogFields() map[string]any }
	if errors.As(err, &withFields) {
		return withFields.LogFields()
	}
	return map[string]any{"error": err.Error()}
}
