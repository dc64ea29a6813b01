package repo

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	db "netrestrict/internal/db/gen"
	"netrestrict/internal/models"
)

// Common pg/uuid helpers
func fromUUID(id uuid.UUID) pgtype.UUID { return pgtype.UUID{Bytes: id, Valid: true} }
func toUUID(u pgtype.UUID) uuid.UUID   { return uuid.UUID(u.Bytes) }

func fromText(t pgtype.Text) string { return t.String }

// toNullableText returns NULL when s is blank; otherwise a valid text.
func toNullableText(s string) pgtype.Text {
	if strings.TrimSpace(s) == "" {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{String: s, Valid: true}
}

func isNoRows(err error) bool { return errors.Is(err, pgx.ErrNoRows) }

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func userFromRow(u db.User) models.User {
	return models.User{
		ID:         toUUID(u.ID),
		Email:      u.Email,
		Name:       fromText(u.Name),
		SuperAdmin: u.IsSuperAdmin,
	}
}

func siteFromRow(s db.Site) models.Site {
	return models.Site{
		ID:   toUUID(s.ID),
		Slug: s.Slug,
		Name: s.Name,
	}
}

func normalizeUsername(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
