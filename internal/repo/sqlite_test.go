package repo

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"netrestrict/internal/models"
)

func newSQLiteRepo(t *testing.T) Repo {
	t.Helper()
	r, err := NewSQLite(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func TestSQLiteRepo(t *testing.T) {
	runRepoContract(t, newSQLiteRepo)
}

// runRepoContract runs every store behaviour the app relies on against
// repositories built by open. Each subtest gets an empty store.
func runRepoContract(t *testing.T, open func(t *testing.T) Repo) {
	t.Run("users", func(t *testing.T) { testUsers(t, open(t)) })
	t.Run("credentials", func(t *testing.T) { testCredentials(t, open(t)) })
	t.Run("meta and options", func(t *testing.T) { testMetaAndOptions(t, open(t)) })
	t.Run("sites and membership", func(t *testing.T) { testSitesAndMembership(t, open(t)) })
	t.Run("delete user", func(t *testing.T) { testDeleteUser(t, open(t)) })
}

func testUsers(t *testing.T, r Repo) {
	ctx := context.Background()

	u, err := r.CreateUser(ctx, "ada@example.com", "Ada")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if u.ID == uuid.Nil || u.Email != "ada@example.com" || u.Name != "Ada" || u.SuperAdmin {
		t.Fatalf("unexpected user: %+v", u)
	}
	if _, err := r.CreateUser(ctx, "ada@example.com", "Other"); err == nil {
		t.Fatal("duplicate email accepted")
	}

	byEmail, err := r.GetUserByEmail(ctx, "ada@example.com")
	if err != nil || byEmail.ID != u.ID {
		t.Fatalf("get by email: %+v %v", byEmail, err)
	}
	if _, err := r.GetUserByID(ctx, uuid.New()); !errors.Is(err, models.ErrUserNotFound) {
		t.Fatalf("want ErrUserNotFound, got %v", err)
	}

	if err := r.SetSuperAdmin(ctx, u.ID, true); err != nil {
		t.Fatalf("set super admin: %v", err)
	}
	super, err := r.IsSuperAdmin(ctx, u.ID)
	if err != nil || !super {
		t.Fatalf("is super admin: %v %v", super, err)
	}
}

func testCredentials(t *testing.T, r Repo) {
	ctx := context.Background()
	u, err := r.CreateUser(ctx, "bob@example.com", "")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if err := r.CreateLocalCredential(ctx, u.ID, " Bob@Example.com ", "$argon2id$x"); err != nil {
		t.Fatalf("create credential: %v", err)
	}
	cred, got, err := r.GetLocalCredentialByUsername(ctx, "BOB@example.com")
	if err != nil {
		t.Fatalf("get credential: %v", err)
	}
	if cred.UserID != u.ID || cred.Username != "bob@example.com" || cred.PasswordHash != "$argon2id$x" {
		t.Fatalf("unexpected credential: %+v", cred)
	}
	if got.ID != u.ID || got.Name != "" {
		t.Fatalf("unexpected user: %+v", got)
	}
	if _, _, err := r.GetLocalCredentialByUsername(ctx, "nobody"); !errors.Is(err, models.ErrCredentialNotFound) {
		t.Fatalf("want ErrCredentialNotFound, got %v", err)
	}
}

func testMetaAndOptions(t *testing.T, r Repo) {
	ctx := context.Background()
	u, err := r.CreateUser(ctx, "meta@example.com", "Meta")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	if v, ok, err := r.GetUserMeta(ctx, u.ID, "network_restricted"); err != nil || ok || v != "" {
		t.Fatalf("unset meta: %q %v %v", v, ok, err)
	}
	for _, want := range []string{"1", "0"} {
		if err := r.SetUserMeta(ctx, u.ID, "network_restricted", want); err != nil {
			t.Fatalf("set meta: %v", err)
		}
		v, ok, err := r.GetUserMeta(ctx, u.ID, "network_restricted")
		if err != nil || !ok || v != want {
			t.Fatalf("meta after set %q: %q %v %v", want, v, ok, err)
		}
	}

	if _, ok, err := r.GetNetworkOption(ctx, "network_restricted_default"); err != nil || ok {
		t.Fatalf("unset option: %v %v", ok, err)
	}
	if err := r.SetNetworkOption(ctx, "network_restricted_default", "restrict"); err != nil {
		t.Fatalf("set option: %v", err)
	}
	if err := r.SetNetworkOption(ctx, "network_restricted_default", ""); err != nil {
		t.Fatalf("overwrite option: %v", err)
	}
	v, ok, err := r.GetNetworkOption(ctx, "network_restricted_default")
	if err != nil || !ok || v != "" {
		t.Fatalf("option after overwrite: %q %v %v", v, ok, err)
	}
}

func testSitesAndMembership(t *testing.T, r Repo) {
	ctx := context.Background()
	u, err := r.CreateUser(ctx, "member@example.com", "Member")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	a, err := r.CreateSite(ctx, "alpha", "Alpha")
	if err != nil {
		t.Fatalf("create site: %v", err)
	}
	b, err := r.CreateSite(ctx, "beta", "Beta")
	if err != nil {
		t.Fatalf("create site: %v", err)
	}
	if _, err := r.CreateSite(ctx, "alpha", "Other Alpha"); !errors.Is(err, models.ErrSiteExists) {
		t.Fatalf("want ErrSiteExists, got %v", err)
	}
	if got, err := r.FindSiteBySlug(ctx, "alpha"); err != nil || got.Name != "Alpha" {
		t.Fatalf("duplicate create renamed site: %+v %v", got, err)
	}
	again, err := r.UpsertSite(ctx, "alpha", "Alpha Renamed")
	if err != nil || again.ID != a.ID || again.Name != "Alpha Renamed" {
		t.Fatalf("upsert site: %+v %v", again, err)
	}
	fresh, err := r.UpsertSite(ctx, "gamma-two", "Gamma Two")
	if err != nil || fresh.ID == uuid.Nil || fresh.Slug != "gamma-two" {
		t.Fatalf("upsert new site: %+v %v", fresh, err)
	}
	if _, err := r.FindSiteBySlug(ctx, "gamma"); !errors.Is(err, models.ErrSiteNotFound) {
		t.Fatalf("want ErrSiteNotFound, got %v", err)
	}
	if got, err := r.FindSiteByID(ctx, b.ID); err != nil || got.Slug != "beta" {
		t.Fatalf("find by id: %+v %v", got, err)
	}

	if member, err := r.IsMember(ctx, a.ID, u.ID); err != nil || member {
		t.Fatalf("member before join: %v %v", member, err)
	}
	role, err := r.EnsureMembership(ctx, a.ID, u.ID, models.RoleEditor)
	if err != nil || role != models.RoleEditor {
		t.Fatalf("ensure membership: %v %v", role, err)
	}
	// existing membership keeps its role
	role, err = r.EnsureMembership(ctx, a.ID, u.ID, models.RoleSubscriber)
	if err != nil || role != models.RoleEditor {
		t.Fatalf("ensure membership again: %v %v", role, err)
	}
	if member, err := r.IsMember(ctx, a.ID, u.ID); err != nil || !member {
		t.Fatalf("member after join: %v %v", member, err)
	}
	if member, err := r.IsMember(ctx, b.ID, u.ID); err != nil || member {
		t.Fatalf("member of other site: %v %v", member, err)
	}

	sites, err := r.ListUserSites(ctx, u.ID)
	if err != nil {
		t.Fatalf("list sites: %v", err)
	}
	if len(sites) != 1 || sites[0].ID != a.ID || sites[0].Role != models.RoleEditor || sites[0].Slug != "alpha" {
		t.Fatalf("unexpected sites: %+v", sites)
	}
	none, err := r.ListUserSites(ctx, uuid.New())
	if err != nil || len(none) != 0 {
		t.Fatalf("sites of stranger: %+v %v", none, err)
	}
}

func testDeleteUser(t *testing.T, r Repo) {
	ctx := context.Background()
	u, err := r.CreateUser(ctx, "gone@example.com", "Gone")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	site, err := r.CreateSite(ctx, "home", "Home")
	if err != nil {
		t.Fatalf("create site: %v", err)
	}
	if err := r.CreateLocalCredential(ctx, u.ID, "gone@example.com", "$argon2id$x"); err != nil {
		t.Fatalf("create credential: %v", err)
	}
	if err := r.SetUserMeta(ctx, u.ID, "network_restricted", "1"); err != nil {
		t.Fatalf("set meta: %v", err)
	}
	if _, err := r.EnsureMembership(ctx, site.ID, u.ID, models.RoleSubscriber); err != nil {
		t.Fatalf("join: %v", err)
	}

	if err := r.DeleteUser(ctx, u.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}
	if _, err := r.GetUserByID(ctx, u.ID); !errors.Is(err, models.ErrUserNotFound) {
		t.Fatalf("want ErrUserNotFound, got %v", err)
	}
	if _, _, err := r.GetLocalCredentialByUsername(ctx, "gone@example.com"); !errors.Is(err, models.ErrCredentialNotFound) {
		t.Fatalf("credential survived delete: %v", err)
	}
	if _, ok, err := r.GetUserMeta(ctx, u.ID, "network_restricted"); err != nil || ok {
		t.Fatalf("meta survived delete: %v %v", ok, err)
	}
	if member, err := r.IsMember(ctx, site.ID, u.ID); err != nil || member {
		t.Fatalf("membership survived delete: %v %v", member, err)
	}
	// the email can be registered again
	if _, err := r.CreateUser(ctx, "gone@example.com", "Back"); err != nil {
		t.Fatalf("re-create user: %v", err)
	}
}
