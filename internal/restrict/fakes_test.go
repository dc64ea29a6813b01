package restrict

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"netrestrict/internal/models"
)

type viewerKey struct{}

func asViewer(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, viewerKey{}, id)
}

type fakeIdentity struct {
	supers map[uuid.UUID]bool
}

func (f *fakeIdentity) CurrentUserID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(viewerKey{}).(uuid.UUID)
	return id, ok && id != uuid.Nil
}

func (f *fakeIdentity) IsSuperAdmin(_ context.Context, id uuid.UUID) bool { return f.supers[id] }

type fakeMembership struct {
	sites   []models.Site
	members map[uuid.UUID][]uuid.UUID // user -> site ids
	err     error
}

func (f *fakeMembership) IsMember(_ context.Context, siteID, userID uuid.UUID) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	for _, id := range f.members[userID] {
		if id == siteID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeMembership) ListUserSites(_ context.Context, userID uuid.UUID) ([]models.SiteSummary, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.SiteSummary
	for _, id := range f.members[userID] {
		for _, s := range f.sites {
			if s.ID == id {
				out = append(out, models.SiteSummary{ID: s.ID, Slug: s.Slug, Name: s.Name, Role: models.RoleSubscriber})
			}
		}
	}
	return out, nil
}

type metaKey struct {
	user uuid.UUID
	key  string
}

type fakeMeta struct {
	values map[metaKey]string
	err    error
}

func (f *fakeMeta) GetUserMeta(_ context.Context, userID uuid.UUID, key string) (string, bool, error) {
	if f.err != nil {
		return "", false, f.err
	}
	v, ok := f.values[metaKey{userID, key}]
	return v, ok, nil
}

func (f *fakeMeta) SetUserMeta(_ context.Context, userID uuid.UUID, key, value string) error {
	if f.err != nil {
		return f.err
	}
	f.values[metaKey{userID, key}] = value
	return nil
}

type fakeOptions struct {
	values map[string]string
	err    error
}

func (f *fakeOptions) GetNetworkOption(_ context.Context, key string) (string, bool, error) {
	if f.err != nil {
		return "", false, f.err
	}
	v, ok := f.values[key]
	return v, ok, nil
}

func (f *fakeOptions) SetNetworkOption(_ context.Context, key, value string) error {
	if f.err != nil {
		return f.err
	}
	f.values[key] = value
	return nil
}

var errStore = errors.New("store down")

type fixture struct {
	m        *Manager
	identity *fakeIdentity
	members  *fakeMembership
	meta     *fakeMeta
	options  *fakeOptions
}

func newFixture() *fixture {
	f := &fixture{
		identity: &fakeIdentity{supers: map[uuid.UUID]bool{}},
		members:  &fakeMembership{members: map[uuid.UUID][]uuid.UUID{}},
		meta:     &fakeMeta{values: map[metaKey]string{}},
		options:  &fakeOptions{values: map[string]string{}},
	}
	f.m = NewManager(Deps{
		Identity: f.identity,
		Members:  f.members,
		Meta:     f.meta,
		Settings: NewNetworkSettings(f.options),
		URLs:     URLResolver{BaseURL: "https://net.example.com/"},
	})
	return f
}

func (f *fixture) site(slug, name string) models.Site {
	s := models.Site{ID: uuid.New(), Slug: slug, Name: name}
	f.members.sites = append(f.members.sites, s)
	return s
}

func (f *fixture) join(user uuid.UUID, sites ...models.Site) {
	for _, s := range sites {
		f.members.members[user] = append(f.members.members[user], s.ID)
	}
}

func (f *fixture) restrict(user uuid.UUID, value string) {
	f.meta.values[metaKey{user, MetaKey}] = value
}
