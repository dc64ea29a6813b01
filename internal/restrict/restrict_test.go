package restrict

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/google/uuid"
)

func TestIsUserRestrictedValues(t *testing.T) {
	cases := []struct {
		name  string
		value *string
		want  bool
	}{
		{"unset", nil, false},
		{"one", ptr("1"), true},
		{"one with spaces", ptr(" 1 "), true},
		{"one as float", ptr("1.0"), true},
		{"zero", ptr("0"), false},
		{"empty", ptr(""), false},
		{"yes", ptr("yes"), false},
		{"two", ptr("2"), false},
		{"true", ptr("true"), false},
		{"exponent", ptr("1e0"), true},
		{"leading dot", ptr(".1e1"), true},
		{"hex float", ptr("0x1p0"), false},
		{"upper hex float", ptr("0X1P+0"), false},
		{"infinity", ptr("inf"), false},
		{"underscore", ptr("0_1"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			u := uuid.New()
			if tc.value != nil {
				f.restrict(u, *tc.value)
			}
			if got := f.m.IsUserRestricted(context.Background(), u); got != tc.want {
				t.Fatalf("IsUserRestricted = %v, want %v", got, tc.want)
			}
		})
	}
}

func ptr(s string) *string { return &s }

func TestIsUserRestrictedResolvesViewer(t *testing.T) {
	f := newFixture()
	viewer := uuid.New()
	f.restrict(viewer, "1")

	if f.m.IsUserRestricted(context.Background(), uuid.Nil) {
		t.Fatal("restricted without a viewer")
	}
	if !f.m.IsUserRestricted(asViewer(context.Background(), viewer), uuid.Nil) {
		t.Fatal("viewer not resolved")
	}
}

func TestIsUserRestrictedStoreError(t *testing.T) {
	f := newFixture()
	u := uuid.New()
	f.restrict(u, "1")
	f.meta.err = errStore
	if f.m.IsUserRestricted(context.Background(), u) {
		t.Fatal("store failure must read as unrestricted")
	}
}

func TestOnUserRegistered(t *testing.T) {
	for _, def := range []string{"", "restrict", "Restrict", "1", "yes"} {
		t.Run("default="+def, func(t *testing.T) {
			f := newFixture()
			if def != "" {
				f.options.values[OptionDefault] = def
			}
			u := uuid.New()
			if err := f.m.OnUserCreated(context.Background(), u); err != nil {
				t.Fatalf("OnUserCreated: %v", err)
			}
			v, ok := f.meta.values[metaKey{u, MetaKey}]
			if def == DefaultRestrict {
				if !ok || v != "1" {
					t.Fatalf("flag = %q (set %v), want 1", v, ok)
				}
				return
			}
			if ok {
				t.Fatalf("flag written for default %q: %q", def, v)
			}
		})
	}
}

func TestOnUserRegisteredSettingsError(t *testing.T) {
	f := newFixture()
	f.options.err = errStore
	if err := f.m.OnUserCreated(context.Background(), uuid.New()); !errors.Is(err, errStore) {
		t.Fatalf("want store error, got %v", err)
	}
}

func TestSaveUserProfileToggle(t *testing.T) {
	f := newFixture()
	admin, user, otherAdmin := uuid.New(), uuid.New(), uuid.New()
	f.identity.supers[admin] = true
	f.identity.supers[otherAdmin] = true
	ctx := asViewer(context.Background(), admin)

	if err := f.m.OnProfileSave(ctx, user, url.Values{FieldRestricted: {"1"}}); err != nil {
		t.Fatalf("save checked: %v", err)
	}
	if v := f.meta.values[metaKey{user, MetaKey}]; v != "1" {
		t.Fatalf("flag = %q, want 1", v)
	}
	if err := f.m.OnProfileSave(ctx, user, url.Values{}); err != nil {
		t.Fatalf("save unchecked: %v", err)
	}
	if v := f.meta.values[metaKey{user, MetaKey}]; v != "0" {
		t.Fatalf("flag = %q, want 0", v)
	}

	if err := f.m.OnProfileSave(ctx, otherAdmin, url.Values{FieldRestricted: {"1"}}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("toggling a super admin: want ErrForbidden, got %v", err)
	}
	if err := f.m.OnProfileSave(asViewer(context.Background(), user), user, url.Values{FieldRestricted: {"1"}}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("non super admin: want ErrForbidden, got %v", err)
	}
	if err := f.m.OnProfileSave(context.Background(), user, url.Values{FieldRestricted: {"1"}}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("anonymous: want ErrForbidden, got %v", err)
	}
	if v := f.meta.values[metaKey{user, MetaKey}]; v != "0" {
		t.Fatalf("forbidden save changed flag to %q", v)
	}
}

func TestCheckboxChecked(t *testing.T) {
	cases := map[string]bool{"1": true, "on": true, "ON": true, "true": true, "yes": true, "2": true, "0": false, "": false, "off": false, "no": false}
	for in, want := range cases {
		if got := checkboxChecked(url.Values{"f": {in}}, "f"); got != want {
			t.Errorf("checkboxChecked(%q) = %v, want %v", in, got, want)
		}
	}
	if checkboxChecked(url.Values{}, "f") {
		t.Error("absent field checked")
	}
}

func TestSaveNetworkDefaultToggle(t *testing.T) {
	f := newFixture()
	admin, user := uuid.New(), uuid.New()
	f.identity.supers[admin] = true
	ctx := asViewer(context.Background(), admin)

	if err := f.m.OnSettingsSave(ctx, url.Values{FieldDefault: {DefaultRestrict}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	on, err := f.m.Settings().RestrictNewUsers(ctx)
	if err != nil || !on {
		t.Fatalf("RestrictNewUsers = %v %v", on, err)
	}

	// stored verbatim, only the sentinel restricts
	if err := f.m.OnSettingsSave(ctx, url.Values{FieldDefault: {"anything"}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	raw, _ := f.m.Settings().Raw(ctx)
	if raw != "anything" {
		t.Fatalf("raw = %q", raw)
	}
	if on, _ := f.m.Settings().RestrictNewUsers(ctx); on {
		t.Fatal("non sentinel value restricts")
	}

	if err := f.m.OnSettingsSave(ctx, url.Values{}); err != nil {
		t.Fatalf("save empty: %v", err)
	}
	if raw, _ := f.m.Settings().Raw(ctx); raw != "" {
		t.Fatalf("raw after unchecked = %q", raw)
	}

	if err := f.m.OnSettingsSave(asViewer(context.Background(), user), url.Values{FieldDefault: {DefaultRestrict}}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("non super admin: want ErrForbidden, got %v", err)
	}
}
