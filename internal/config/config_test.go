package config

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func TestDecodeDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("base_url", "https://net.example.com/")
	v.Set("database.driver", "sqlite")

	c, err := decode(v)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if c.BaseURL != "https://net.example.com" {
		t.Fatalf("base url not trimmed: %q", c.BaseURL)
	}
	if c.Database.URL != "file:netrestrict.db" {
		t.Fatalf("sqlite default url: %q", c.Database.URL)
	}
	if c.Network.LoginPath != "login" {
		t.Fatalf("login path: %q", c.Network.LoginPath)
	}
	if c.Security.RateLimit.RequestsPerMinute != 120 {
		t.Fatalf("rpm: %d", c.Security.RateLimit.RequestsPerMinute)
	}
}

func TestDecodeErrors(t *testing.T) {
	cases := []struct {
		name string
		set  map[string]any
		want string
	}{
		{"missing base url", map[string]any{}, "base_url"},
		{"bad driver", map[string]any{"base_url": "http://x", "database.driver": "mysql"}, "database.driver"},
		{"postgres without url", map[string]any{"base_url": "http://x"}, "database.url"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := viper.New()
			setDefaults(v)
			for k, val := range tc.set {
				v.Set(k, val)
			}
			_, err := decode(v)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("want error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestSplitList(t *testing.T) {
	got := splitList([]string{"a@x.com, b@x.com", "", " c@x.com "})
	if strings.Join(got, "|") != "a@x.com|b@x.com|c@x.com" {
		t.Fatalf("got %v", got)
	}
}
