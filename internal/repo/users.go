package repo

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	db "netrestrict/internal/db/gen"
	"netrestrict/internal/models"
)

// ---------------- Users & credentials ----------------

func (p *pgRepo) CreateUser(ctx context.Context, email, name string) (models.User, error) {
	slog.DebugContext(ctx, "CreateUser", "email", email)
	u, err := p.q.CreateUser(ctx, db.CreateUserParams{
		Email: email,
		Name:  toNullableText(name),
	})
	if err != nil {
		slog.ErrorContext(ctx, "CreateUser failed", "err", err)
		return models.User{}, err
	}
	return userFromRow(u), nil
}

func (p *pgRepo) GetUserByID(ctx context.Context, id uuid.UUID) (models.User, error) {
	slog.DebugContext(ctx, "GetUserByID", "user_id", id.String())
	u, err := p.q.GetUserByID(ctx, fromUUID(id))
	if err != nil {
		if isNoRows(err) {
			return models.User{}, models.ErrUserNotFound
		}
		slog.ErrorContext(ctx, "GetUserByID failed", "err", err)
		return models.User{}, err
	}
	return userFromRow(u), nil
}

func (p *pgRepo) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	slog.DebugContext(ctx, "GetUserByEmail", "email", email)
	u, err := p.q.GetUserByEmail(ctx, email)
	if err != nil {
		if isNoRows(err) {
			return models.User{}, models.ErrUserNotFound
		}
		slog.ErrorContext(ctx, "GetUserByEmail failed", "err", err)
		return models.User{}, err
	}
	return userFromRow(u), nil
}

func (p *pgRepo) IsSuperAdmin(ctx context.Context, id uuid.UUID) (bool, error) {
	u, err := p.GetUserByID(ctx, id)
	if err != nil {
		return false, err
	}
	return u.SuperAdmin, nil
}

func (p *pgRepo) SetSuperAdmin(ctx context.Context, id uuid.UUID, super bool) error {
	slog.DebugContext(ctx, "SetSuperAdmin", "user_id", id.String(), "super_admin", super)
	if err := p.q.SetSuperAdmin(ctx, db.SetSuperAdminParams{ID: fromUUID(id), IsSuperAdmin: super}); err != nil {
		slog.ErrorContext(ctx, "SetSuperAdmin failed", "err", err)
		return fmt.Errorf("set super admin: %w", err)
	}
	return nil
}

func (p *pgRepo) DeleteUser(ctx context.Context, id uuid.UUID) error {
	slog.DebugContext(ctx, "DeleteUser", "user_id", id.String())
	if err := p.q.DeleteUser(ctx, fromUUID(id)); err != nil {
		slog.ErrorContext(ctx, "DeleteUser failed", "err", err)
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func (p *pgRepo) CreateLocalCredential(ctx context.Context, uid uuid.UUID, username, phc string) error {
	slog.DebugContext(ctx, "CreateLocalCredential", "user_id", uid.String(), "username", normalizeUsername(username))
	return p.q.CreateLocalCredential(ctx, db.CreateLocalCredentialParams{
		UserID:       fromUUID(uid),
		Username:     normalizeUsername(username),
		PasswordHash: phc,
	})
}

func (p *pgRepo) GetLocalCredentialByUsername(ctx context.Context, username string) (models.LocalCredential, models.User, error) {
	slog.DebugContext(ctx, "GetLocalCredentialByUsername", "username", normalizeUsername(username))
	row, err := p.q.GetLocalCredentialByUsername(ctx, normalizeUsername(username))
	if err != nil {
		if isNoRows(err) {
			return models.LocalCredential{}, models.User{}, models.ErrCredentialNotFound
		}
		slog.ErrorContext(ctx, "GetLocalCredentialByUsername failed", "err", err)
		return models.LocalCredential{}, models.User{}, err
	}
	lc := models.LocalCredential{
		UserID:       toUUID(row.UserID),
		Username:     row.Username,
		PasswordHash: row.PasswordHash,
	}
	u := models.User{
		ID:         toUUID(row.UserID),
		Email:      row.Email,
		Name:       fromText(row.Name),
		SuperAdmin: row.IsSuperAdmin,
	}
	return lc, u, nil
}
