package httpserver

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"netrestrict/internal/models"
)

// StoreErrorMessage maps store errors to a user-friendly HTTP status + message.
// Unknown errors return 500 with fallback so internals never leak.
func StoreErrorMessage(err error, fallback string) (int, string) {
	switch {
	case errors.Is(err, models.ErrUserNotFound):
		return http.StatusNotFound, "User not found."
	case errors.Is(err, models.ErrSiteNotFound):
		return http.StatusNotFound, "Site not found."
	case errors.Is(err, models.ErrSiteExists):
		return http.StatusConflict, "A site with this slug already exists."
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErrorMessage(pgErr, fallback)
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return http.StatusConflict, "Already registered."
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return http.StatusBadRequest, "Referenced record not found."
		}
	}
	return http.StatusInternalServerError, fallback
}

func pgErrorMessage(pgErr *pgconn.PgError, fallback string) (int, string) {
	switch pgErr.Code {
	case "23505": // unique_violation
		switch pgErr.ConstraintName {
		case "users_email_key", "local_credentials_username_key":
			return http.StatusConflict, "Already registered."
		case "sites_slug_key":
			return http.StatusConflict, "A site with this slug already exists."
		default:
			return http.StatusConflict, "Duplicate value violates a unique constraint."
		}
	case "23503": // foreign_key_violation
		return http.StatusBadRequest, "Referenced record not found."
	case "23502": // not_null_violation
		return http.StatusBadRequest, "Missing required field."
	case "22P02": // invalid_text_representation
		return http.StatusBadRequest, "Invalid value format."
	case "22001": // string_data_right_truncation
		return http.StatusBadRequest, "Value is too long."
	default:
		return http.StatusInternalServerError, fallback
	}
}
