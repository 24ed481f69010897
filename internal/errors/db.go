package errors

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Regular expressions for parsing PgError.Detail messages.
var (
	// reKeyField extracts field name from unique violation detail: "Key (field)=(value) already exists.".
	reKeyField = regexp.MustCompile(`Key \(([^)]+)\)=`)
	// reReferencedFrom detects parent deletion: "... is still referenced from table ...".
	reReferencedFrom = regexp.MustCompile(`is still referenced from table "?([^"]+)"?`)
	// reNotPresent detects missing parent: "... is not present in table ...".
	reNotPresent = regexp.MustCompile(`is not present in table "?([^"]+)"?`)
)

// cacheTables maps local cache tables to the names shown to users.
var cacheTables = map[string]string{
	"users":              "User",
	"credentials":        "Credential",
	"connections":        "Connection",
	"proof_requests":     "Proof Request",
	"credential_offers":  "Credential Offer",
	"uploaded_documents": "Document",
	"token_mappings":     "Token Mapping",
}

// MapDBError maps database errors to AppError instances:
//   - context deadline/cancel → Timeout/Canceled
//   - pgx.ErrNoRows → NotFound
//   - unique violations → Conflict (with Field when it can be derived)
//   - foreign key violations → ForeignKey
//   - check and NOT NULL violations → Validation
//
// Anything else is returned unchanged.
func MapDBError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return Wrap(err, ErrCodeTimeout, "Request timed out. Please try again.")
	case errors.Is(err, context.Canceled):
		return Wrap(err, ErrCodeCanceled, "Request was canceled.")
	case errors.Is(err, pgx.ErrNoRows):
		return Wrap(err, ErrCodeNotFound, "Resource not found")
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		return &AppError{
			Code:    ErrCodeConflict,
			Message: "This value already exists. Please choose a different one.",
			Field:   uniqueField(pgErr),
			Cause:   pgErr,
		}
	case pgerrcode.ForeignKeyViolation:
		return Wrap(pgErr, ErrCodeForeignKey, foreignKeyMessage(pgErr))
	case pgerrcode.NotNullViolation:
		if pgErr.ColumnName != "" {
			return &AppError{Code: ErrCodeValidation, Message: "This field is required.", Field: pgErr.ColumnName, Cause: pgErr}
		}
		return Wrap(pgErr, ErrCodeValidation, "Required field is missing. Please check your input.")
	case pgerrcode.CheckViolation:
		if pgErr.ColumnName != "" {
			return &AppError{Code: ErrCodeValidation, Message: "This field has an invalid value.", Field: pgErr.ColumnName, Cause: pgErr}
		}
		return Wrap(pgErr, ErrCodeValidation, "Invalid data. Please check your input.")
	default:
		return Wrap(pgErr, ErrCodeInternal, "A database error occurred. Please try again.")
	}
}

// uniqueField prefers ColumnName, then the Detail text, then the constraint name
// ("users_username_key" → "username").
func uniqueField(pgErr *pgconn.PgError) string {
	if pgErr.ColumnName != "" {
		return pgErr.ColumnName
	}
	if m := reKeyField.FindStringSubmatch(pgErr.Detail); len(m) == 2 {
		return m[1]
	}
	return inferFieldFromConstraint(pgErr.ConstraintName)
}

func foreignKeyMessage(pgErr *pgconn.PgError) string {
	if m := reReferencedFrom.FindStringSubmatch(pgErr.Detail); len(m) == 2 {
		return "Cannot delete because this item is in use by " + domainName(m[1]) + "."
	}
	if m := reNotPresent.FindStringSubmatch(pgErr.Detail); len(m) == 2 {
		return "Cannot complete operation because the referenced " + domainName(m[1]) + " does not exist."
	}
	if pgErr.TableName != "" {
		return "Cannot complete operation because this item is in use by " + domainName(pgErr.TableName) + "."
	}
	return "Cannot complete operation due to a related record."
}

// inferFieldFromConstraint handles table_field_key style names only. Longer
// names are ambiguous (multi-column or compound table names) and yield "".
func inferFieldFromConstraint(constraintName string) string {
	for table := range cacheTables {
		if rest, ok := strings.CutPrefix(constraintName, table+"_"); ok {
			for _, suffix := range []string{"_key", "_unique", "_idx"} {
				if field, ok := strings.CutSuffix(rest, suffix); ok && field != "" {
					return field
				}
			}
		}
	}
	parts := strings.Split(constraintName, "_")
	if len(parts) == 3 {
		return parts[1]
	}
	return ""
}

// domainName maps internal table names to user-friendly names.
func domainName(table string) string {
	table = strings.ToLower(strings.TrimSpace(table))
	if name, ok := cacheTables[table]; ok {
		return name
	}
	words := strings.Fields(strings.ReplaceAll(table, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
