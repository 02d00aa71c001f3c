package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/deppfellow/go-quizbank/internal/errs"
)

// ErrCode reports the Code of err, looking through both normalized *Error
// values and raw *pgconn.PgError values in the chain.
func ErrCode(err error) Code {
	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr.Code
	}
	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		return MapCode(pgerr.Code)
	}
	return Other
}

// IsNoRows reports whether err means the lookup matched nothing.
func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows)
}

// NoRows tags pgx.ErrNoRows with the table name so HandleError can name the
// missing entity ("Question not found").
func NoRows(table string) error {
	return fmt.Errorf("table:%s: %w", table, pgx.ErrNoRows)
}

// ConvertPgError keeps the fields of a Postgres error that HandleError needs,
// with SQLSTATE and severity mapped to this package's enums.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

var codeSuffix = map[Code]string{
	ForeignKeyViolation: "NOT_FOUND",
	UniqueViolation:     "ALREADY_EXISTS",
	NotNullViolation:    "REQUIRED",
	CheckViolation:      "INVALID",
}

// errorCode builds machine codes like QUESTION_REQUIRED from the table.
func errorCode(table string, code Code) string {
	if table == "" {
		table = "record"
	}
	suffix, ok := codeSuffix[code]
	if !ok {
		suffix = "ERROR"
	}
	return strings.ToUpper(singular(table)) + "_" + suffix
}

// userMessage phrases a constraint failure for API clients.
func userMessage(e *Error) string {
	entity := entityName(e.TableName, e.ColumnName)
	column := humanizeText(e.ColumnName)

	switch e.Code {
	case ForeignKeyViolation:
		return fmt.Sprintf("The referenced %s does not exist", entity)

	case UniqueViolation:
		if col := uniqueColumn(e.ConstraintName); col != "" {
			return fmt.Sprintf("A %s with this %s already exists", entity, humanizeText(col))
		}
		return fmt.Sprintf("A %s with this identifier already exists", entity)

	case NotNullViolation:
		if column == "" {
			column = "field"
		}
		return fmt.Sprintf("The %s is required", column)

	case CheckViolation:
		if column != "" {
			return fmt.Sprintf("The %s value does not meet required conditions", column)
		}
		return "One or more values do not meet required conditions"

	default:
		return "An error occurred while processing your request"
	}
}

// entityName prefers the referenced entity of an *_id column ("category_id"
// names a Category), then the singular table name.
func entityName(table, column string) string {
	if col := strings.ToLower(column); strings.HasSuffix(col, "_id") {
		return humanizeText(strings.TrimSuffix(col, "_id"))
	}
	if table != "" {
		return humanizeText(singular(table))
	}
	return "record"
}

// singular handles the table names in this schema: "categories" ->
// "category", "questions" -> "question", "event_users" -> "event_user".
func singular(name string) string {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, "ies") && len(name) > 3:
		return name[:len(name)-3] + "y"
	case strings.HasSuffix(lower, "s") && len(name) > 1:
		return name[:len(name)-1]
	default:
		return name
	}
}

// humanizeText turns "start_datetime" into "Start Datetime".
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

var keySuffix = regexp.MustCompile(`_([^_]+)_(?:key|ukey)$`)

// uniqueColumn guesses the column from "unique_<table>_<column>" or
// "<table>_<column>_key" constraint names.
func uniqueColumn(constraint string) string {
	if rest, ok := strings.CutPrefix(constraint, "unique_"); ok {
		if i := strings.LastIndex(rest, "_"); i >= 0 {
			return rest[i+1:]
		}
	}
	if m := keySuffix.FindStringSubmatch(constraint); len(m) > 1 {
		return m[1]
	}
	return ""
}

// HandleError converts a database error into the *errs.HTTPError the client
// sees. HTTP errors pass through unchanged; constraint failures are 400,
// tagged missing rows 404, anything else 500.
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		sqlErr := ConvertPgError(pgerr)
		code := errorCode(sqlErr.TableName, sqlErr.Code)
		message := userMessage(sqlErr)

		switch sqlErr.Code {
		case ForeignKeyViolation:
			return errs.NewBadRequestError(message, false, &code, nil, nil)
		case UniqueViolation, CheckViolation:
			return errs.NewBadRequestError(message, true, &code, nil, nil)
		case NotNullViolation:
			fields := []errs.FieldError{{Field: strings.ToLower(sqlErr.ColumnName), Error: "is required"}}
			return errs.NewBadRequestError(message, true, &code, fields, nil)
		default:
			return errs.NewInternalServerError()
		}
	}

	if IsNoRows(err) {
		if _, rest, ok := strings.Cut(err.Error(), "table:"); ok {
			table, _, _ := strings.Cut(rest, ":")
			return errs.NewNotFoundError(entityName(table, "")+" not found", true, nil)
		}
		return errs.NewNotFoundError("Resource not found", false, nil)
	}

	return errs.NewInternalServerError()
}
