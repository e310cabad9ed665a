// Package sqlerr specifically handles database errors.
//
// It parses the SQLSTATE codes reported by Postgres, whether they arrive
// through the pgx driver or inside a hosted REST API error body, and
// converts them into categories the application can switch on
// (e.g. a "unique violation" on a subscriber email).
package sqlerr

import "fmt"

// Code is the application-level category of a database error.
type Code string

const (
	Other               Code = "other"
	NotNullViolation    Code = "not_null_violation"
	ForeignKeyViolation Code = "foreign_key_violation"
	UniqueViolation     Code = "unique_violation"
	CheckViolation      Code = "check_violation"
	ExclusionViolation  Code = "exclusion_violation"
	TooManyConnections  Code = "too_many_connections"
	InsufficientPrivs   Code = "insufficient_privilege"
	UndefinedTable      Code = "undefined_table"
	UndefinedColumn     Code = "undefined_column"
)

// SQLSTATE values we distinguish. Only 23505 changes user-visible behavior.
var codeMap = map[string]Code{
	"23502": NotNullViolation,
	"23503": ForeignKeyViolation,
	"23505": UniqueViolation,
	"23514": CheckViolation,
	"23P01": ExclusionViolation,
	"53300": TooManyConnections,
	"42501": InsufficientPrivs,
	"42P01": UndefinedTable,
	"42703": UndefinedColumn,
}

// MapCode maps a raw SQLSTATE to a Code. Unknown or non-SQLSTATE codes
// (PostgREST's own "PGRST..." codes included) map to Other.
func MapCode(sqlState string) Code {
	if code, ok := codeMap[sqlState]; ok {
		return code
	}
	return Other
}

// Severity mirrors the Postgres error severity levels.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityFatal   Severity = "FATAL"
	SeverityPanic   Severity = "PANIC"
	SeverityWarning Severity = "WARNING"
	SeverityNotice  Severity = "NOTICE"
	SeverityDebug   Severity = "DEBUG"
	SeverityInfo    Severity = "INFO"
	SeverityLog     Severity = "LOG"
)

// MapSeverity normalizes a Postgres severity string. Empty or unknown values
// are treated as ERROR.
func MapSeverity(severity string) Severity {
	switch s := Severity(severity); s {
	case SeverityFatal, SeverityPanic, SeverityWarning, SeverityNotice,
		SeverityDebug, SeverityInfo, SeverityLog:
		return s
	default:
		return SeverityError
	}
}

// Error is a database error normalized away from the driver that produced it.
type Error struct {
	Code           Code
	Severity       Severity
	DatabaseCode   string
	Message        string
	Details        string
	Hint           string
	SchemaName     string
	TableName      string
	ColumnName     string
	DataTypeName   string
	ConstraintName string

	// StatusCode is the HTTP status of a REST store response, 0 for driver errors.
	StatusCode int

	driverErr error
}

func (e *Error) Error() string {
	if e.DatabaseCode == "" {
		return e.Message
	}
	return fmt.Sprintf("%s (SQLSTATE %s)", e.Message, e.DatabaseCode)
}

// Unwrap exposes the original driver error, if any.
func (e *Error) Unwrap() error {
	return e.driverErr
}

// New builds an Error from a raw code and message, as reported by a REST
// store. cause is kept for Unwrap and may be nil.
func New(databaseCode, message string, cause error) *Error {
	return &Error{
		Code:         MapCode(databaseCode),
		Severity:     SeverityError,
		DatabaseCode: databaseCode,
		Message:      message,
		driverErr:    cause,
	}
}
