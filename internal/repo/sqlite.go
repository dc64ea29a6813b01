package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"netrestrict/internal/db/schema"
	"netrestrict/internal/models"
)

const sqliteDriver = "sqlite"

// SQLiteRepo is the single-file store used for local development and tests.
type SQLiteRepo struct {
	conn *sql.DB
}

var _ Repo = (*SQLiteRepo)(nil)

// NewSQLite opens dsn, enables foreign keys and applies the schema.
func NewSQLite(ctx context.Context, dsn string) (*SQLiteRepo, error) {
	conn, err := sql.Open(sqliteDriver, withPragmas(dsn))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// In-memory databases exist per connection.
	conn.SetMaxOpenConns(1)

	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := conn.ExecContext(ctx, schema.SQLite); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("apply sqlite schema: %w", err)
	}
	return &SQLiteRepo{conn: conn}, nil
}

func withPragmas(dsn string) string {
	if strings.Contains(dsn, "_pragma=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

func (s *SQLiteRepo) Close() error { return s.conn.Close() }

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (models.User, error) {
	var (
		id   string
		name sql.NullString
		u    models.User
	)
	if err := row.Scan(&id, &u.Email, &name, &u.SuperAdmin); err != nil {
		return models.User{}, err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return models.User{}, fmt.Errorf("user id %q: %w", id, err)
	}
	u.ID = parsed
	u.Name = name.String
	return u, nil
}

func scanSite(row rowScanner) (models.Site, error) {
	var (
		id string
		s  models.Site
	)
	if err := row.Scan(&id, &s.Slug, &s.Name); err != nil {
		return models.Site{}, err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return models.Site{}, fmt.Errorf("site id %q: %w", id, err)
	}
	s.ID = parsed
	return s, nil
}

func isUniqueConstraint(err error) bool {
	var liteErr *sqlite.Error
	if !errors.As(err, &liteErr) {
		return false
	}
	code := liteErr.Code()
	return code == sqlite3.SQLITE_CONSTRAINT || code == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}

func nullableString(s string) sql.NullString {
	if strings.TrimSpace(s) == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// ---------------- Users & credentials ----------------

func (s *SQLiteRepo) CreateUser(ctx context.Context, email, name string) (models.User, error) {
	slog.DebugContext(ctx, "CreateUser", "email", email)
	id := uuid.New()
	const q = `INSERT INTO users (id, email, name) VALUES (?, ?, ?)`
	if _, err := s.conn.ExecContext(ctx, q, id.String(), email, nullableString(name)); err != nil {
		slog.ErrorContext(ctx, "CreateUser failed", "err", err)
		return models.User{}, err
	}
	return s.GetUserByID(ctx, id)
}

func (s *SQLiteRepo) GetUserByID(ctx context.Context, id uuid.UUID) (models.User, error) {
	slog.DebugContext(ctx, "GetUserByID", "user_id", id.String())
	const q = `SELECT id, email, name, is_super_admin FROM users WHERE id = ?`
	u, err := scanUser(s.conn.QueryRowContext(ctx, q, id.String()))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, models.ErrUserNotFound
	}
	return u, err
}

func (s *SQLiteRepo) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	slog.DebugContext(ctx, "GetUserByEmail", "email", email)
	const q = `SELECT id, email, name, is_super_admin FROM users WHERE email = ?`
	u, err := scanUser(s.conn.QueryRowContext(ctx, q, email))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, models.ErrUserNotFound
	}
	return u, err
}

func (s *SQLiteRepo) IsSuperAdmin(ctx context.Context, id uuid.UUID) (bool, error) {
	u, err := s.GetUserByID(ctx, id)
	if err != nil {
		return false, err
	}
	return u.SuperAdmin, nil
}

func (s *SQLiteRepo) SetSuperAdmin(ctx context.Context, id uuid.UUID, super bool) error {
	slog.DebugContext(ctx, "SetSuperAdmin", "user_id", id.String(), "super_admin", super)
	const q = `UPDATE users SET is_super_admin = ? WHERE id = ?`
	if _, err := s.conn.ExecContext(ctx, q, super, id.String()); err != nil {
		return fmt.Errorf("set super admin: %w", err)
	}
	return nil
}

func (s *SQLiteRepo) DeleteUser(ctx context.Context, id uuid.UUID) error {
	slog.DebugContext(ctx, "DeleteUser", "user_id", id.String())
	if _, err := s.conn.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id.String()); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func (s *SQLiteRepo) CreateLocalCredential(ctx context.Context, uid uuid.UUID, username, phc string) error {
	slog.DebugContext(ctx, "CreateLocalCredential", "user_id", uid.String(), "username", normalizeUsername(username))
	const q = `INSERT INTO local_credentials (user_id, username, password_hash) VALUES (?, ?, ?)`
	_, err := s.conn.ExecContext(ctx, q, uid.String(), normalizeUsername(username), phc)
	return err
}

func (s *SQLiteRepo) GetLocalCredentialByUsername(ctx context.Context, username string) (models.LocalCredential, models.User, error) {
	slog.DebugContext(ctx, "GetLocalCredentialByUsername", "username", normalizeUsername(username))
	const q = `SELECT u.id, u.email, u.name, u.is_super_admin, c.username, c.password_hash
	           FROM local_credentials c JOIN users u ON u.id = c.user_id
	           WHERE c.username = ?`
	var (
		id   string
		name sql.NullString
		u    models.User
		lc   models.LocalCredential
	)
	err := s.conn.QueryRowContext(ctx, q, normalizeUsername(username)).
		Scan(&id, &u.Email, &name, &u.SuperAdmin, &lc.Username, &lc.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return models.LocalCredential{}, models.User{}, models.ErrCredentialNotFound
	}
	if err != nil {
		return models.LocalCredential{}, models.User{}, err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return models.LocalCredential{}, models.User{}, err
	}
	u.ID, u.Name = parsed, name.String
	lc.UserID = parsed
	return lc, u, nil
}

// ---------------- User meta & network options ----------------

func (s *SQLiteRepo) GetUserMeta(ctx context.Context, uid uuid.UUID, key string) (string, bool, error) {
	const q = `SELECT meta_value FROM user_meta WHERE user_id = ? AND meta_key = ?`
	var v string
	err := s.conn.QueryRowContext(ctx, q, uid.String(), key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "GetUserMeta failed", "err", err)
		return "", false, err
	}
	return v, true, nil
}

func (s *SQLiteRepo) SetUserMeta(ctx context.Context, uid uuid.UUID, key, value string) error {
	slog.DebugContext(ctx, "SetUserMeta", "user_id", uid.String(), "key", key)
	const q = `INSERT INTO user_meta (user_id, meta_key, meta_value) VALUES (?, ?, ?)
	           ON CONFLICT (user_id, meta_key) DO UPDATE SET meta_value = excluded.meta_value`
	_, err := s.conn.ExecContext(ctx, q, uid.String(), key, value)
	return err
}

func (s *SQLiteRepo) GetNetworkOption(ctx context.Context, key string) (string, bool, error) {
	const q = `SELECT option_value FROM network_options WHERE option_key = ?`
	var v string
	err := s.conn.QueryRowContext(ctx, q, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "GetNetworkOption failed", "err", err)
		return "", false, err
	}
	return v, true, nil
}

func (s *SQLiteRepo) SetNetworkOption(ctx context.Context, key, value string) error {
	slog.DebugContext(ctx, "SetNetworkOption", "key", key)
	const q = `INSERT INTO network_options (option_key, option_value) VALUES (?, ?)
	           ON CONFLICT (option_key) DO UPDATE SET option_value = excluded.option_value`
	_, err := s.conn.ExecContext(ctx, q, key, value)
	return err
}

// ---------------- Sites & memberships ----------------

func (s *SQLiteRepo) CreateSite(ctx context.Context, slug, name string) (models.Site, error) {
	slog.DebugContext(ctx, "CreateSite", "slug", slug)
	const q = `INSERT INTO sites (id, slug, name) VALUES (?, ?, ?)`
	if _, err := s.conn.ExecContext(ctx, q, uuid.NewString(), slug, name); err != nil {
		if isUniqueConstraint(err) {
			return models.Site{}, models.ErrSiteExists
		}
		slog.ErrorContext(ctx, "CreateSite failed", "err", err)
		return models.Site{}, err
	}
	return s.FindSiteBySlug(ctx, slug)
}

func (s *SQLiteRepo) UpsertSite(ctx context.Context, slug, name string) (models.Site, error) {
	slog.DebugContext(ctx, "UpsertSite", "slug", slug)
	const q = `INSERT INTO sites (id, slug, name) VALUES (?, ?, ?)
	           ON CONFLICT (slug) DO UPDATE SET name = excluded.name`
	if _, err := s.conn.ExecContext(ctx, q, uuid.NewString(), slug, name); err != nil {
		slog.ErrorContext(ctx, "UpsertSite failed", "err", err)
		return models.Site{}, err
	}
	return s.FindSiteBySlug(ctx, slug)
}

func (s *SQLiteRepo) FindSiteBySlug(ctx context.Context, slug string) (models.Site, error) {
	const q = `SELECT id, slug, name FROM sites WHERE slug = ?`
	site, err := scanSite(s.conn.QueryRowContext(ctx, q, slug))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Site{}, models.ErrSiteNotFound
	}
	return site, err
}

func (s *SQLiteRepo) FindSiteByID(ctx context.Context, id uuid.UUID) (models.Site, error) {
	const q = `SELECT id, slug, name FROM sites WHERE id = ?`
	site, err := scanSite(s.conn.QueryRowContext(ctx, q, id.String()))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Site{}, models.ErrSiteNotFound
	}
	return site, err
}

func (s *SQLiteRepo) EnsureMembership(ctx context.Context, siteID, userID uuid.UUID, defaultRole models.SiteRole) (models.SiteRole, error) {
	slog.DebugContext(ctx, "EnsureMembership", "site_id", siteID.String(), "user_id", userID.String(), "default_role", string(defaultRole))
	const ins = `INSERT INTO site_members (site_id, user_id, role) VALUES (?, ?, ?)
	             ON CONFLICT (site_id, user_id) DO NOTHING`
	if _, err := s.conn.ExecContext(ctx, ins, siteID.String(), userID.String(), string(defaultRole)); err != nil {
		return "", fmt.Errorf("membership failed: %w", err)
	}
	const sel = `SELECT role FROM site_members WHERE site_id = ? AND user_id = ?`
	var role string
	if err := s.conn.QueryRowContext(ctx, sel, siteID.String(), userID.String()).Scan(&role); err != nil {
		return "", fmt.Errorf("membership failed: %w", err)
	}
	return models.SiteRole(role), nil
}

func (s *SQLiteRepo) IsMember(ctx context.Context, siteID, userID uuid.UUID) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM site_members WHERE site_id = ? AND user_id = ?)`
	var ok bool
	if err := s.conn.QueryRowContext(ctx, q, siteID.String(), userID.String()).Scan(&ok); err != nil {
		slog.ErrorContext(ctx, "IsMember failed", "err", err)
		return false, err
	}
	return ok, nil
}

func (s *SQLiteRepo) ListUserSites(ctx context.Context, uid uuid.UUID) ([]models.SiteSummary, error) {
	const q = `SELECT s.id, s.slug, s.name, m.role
	           FROM site_members m JOIN sites s ON s.id = m.site_id
	           WHERE m.user_id = ?
	           ORDER BY s.name`
	rows, err := s.conn.QueryContext(ctx, q, uid.String())
	if err != nil {
		slog.ErrorContext(ctx, "ListUserSites failed", "err", err)
		return nil, err
	}
	defer rows.Close()

	res := make([]models.SiteSummary, 0)
	for rows.Next() {
		var (
			id   string
			role string
			sum  models.SiteSummary
		)
		if err := rows.Scan(&id, &sum.Slug, &sum.Name, &role); err != nil {
			return nil, err
		}
		if sum.ID, err = uuid.Parse(id); err != nil {
			return nil, err
		}
		sum.Role = models.SiteRole(role)
		res = append(res, sum)
	}
	return res, rows.Err()
}
