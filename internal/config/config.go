// internal/config/config.go
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type SiteSeed struct {
	Slug string `mapstructure:"slug"`
	Name string `mapstructure:"name"`
}

type Config struct {
	BaseURL    string `mapstructure:"base_url"`
	ListenAddr string `mapstructure:"listen_addr"`
	Database   struct {
		Driver string `mapstructure:"driver"`
		URL    string `mapstructure:"url"`
	} `mapstructure:"database"`
	Logging struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
	} `mapstructure:"logging"`
	Security struct {
		RequestID struct {
			TrustHeader bool `mapstructure:"trust_header"`
		} `mapstructure:"request_id"`
		Session struct {
			SweeperInterval time.Duration `mapstructure:"sweeper_interval"`
			CookieSecure    bool          `mapstructure:"cookie_secure"`
			SameSite        string        `mapstructure:"same_site"`
		} `mapstructure:"session"`
		RateLimit struct {
			Enabled           bool          `mapstructure:"enabled"`
			RequestsPerMinute int           `mapstructure:"rpm"`
			Burst             int           `mapstructure:"burst"`
			TTL               time.Duration `mapstructure:"ttl"`
		} `mapstructure:"rate_limit"`
	} `mapstructure:"security"`
	Network struct {
		Name             string     `mapstructure:"name"`
		LoginPath        string     `mapstructure:"login_path"`
		SuperAdminEmails []string   `mapstructure:"super_admin_emails"`
		Sites            []SiteSeed `mapstructure:"sites"`
	} `mapstructure:"network"`
	CORS struct {
		AllowedOrigins []string `mapstructure:"allowed_origins"`
	} `mapstructure:"cors"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("security.request_id.trust_header", false)
	v.SetDefault("security.session.sweeper_interval", "5m")
	v.SetDefault("security.session.cookie_secure", false)
	v.SetDefault("security.session.same_site", "lax")
	v.SetDefault("security.rate_limit.enabled", true)
	v.SetDefault("security.rate_limit.rpm", 120)
	v.SetDefault("security.rate_limit.burst", 60)
	v.SetDefault("security.rate_limit.ttl", "30m")
	v.SetDefault("network.name", "Network")
	v.SetDefault("network.login_path", "login")
}

func bindEnv(v *viper.Viper) {
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("base_url", "BASE_URL")
	_ = v.BindEnv("listen_addr", "LISTEN_ADDR")
	_ = v.BindEnv("database.driver", "DATABASE_DRIVER")
	_ = v.BindEnv("database.url", "DATABASE_URL")
	_ = v.BindEnv("logging.level", "LOG_LEVEL")
	_ = v.BindEnv("logging.format", "LOG_FORMAT")
	_ = v.BindEnv("security.request_id.trust_header", "REQUEST_ID_TRUST_HEADER")
	_ = v.BindEnv("security.session.sweeper_interval", "SESSION_SWEEPER_INTERVAL")
	_ = v.BindEnv("security.session.cookie_secure", "SESSION_COOKIE_SECURE")
	_ = v.BindEnv("security.session.same_site", "SESSION_SAME_SITE")
	_ = v.BindEnv("security.rate_limit.enabled", "RATE_LIMIT_ENABLED")
	_ = v.BindEnv("security.rate_limit.rpm", "RATE_LIMIT_RPM")
	_ = v.BindEnv("security.rate_limit.burst", "RATE_LIMIT_BURST")
	_ = v.BindEnv("security.rate_limit.ttl", "RATE_LIMIT_TTL")
	_ = v.BindEnv("network.name", "NETWORK_NAME")
	_ = v.BindEnv("network.login_path", "NETWORK_LOGIN_PATH")
	_ = v.BindEnv("network.super_admin_emails", "NETWORK_SUPER_ADMIN_EMAILS")
	_ = v.BindEnv("cors.allowed_origins", "CORS_ALLOWED_ORIGINS")
}

// Load reads config.yaml from . or .. and applies env overrides.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("..")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}
	bindEnv(v)
	return decode(v)
}

func decode(v *viper.Viper) (Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("config error: %w", err)
	}
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if c.BaseURL == "" {
		return Config{}, fmt.Errorf("config error: base_url/BASE_URL required")
	}
	c.Database.Driver = strings.ToLower(strings.TrimSpace(c.Database.Driver))
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return Config{}, fmt.Errorf("config error: unknown database.driver %q", c.Database.Driver)
	}
	if c.Database.URL == "" {
		if c.Database.Driver != "sqlite" {
			return Config{}, fmt.Errorf("config error: database.url/DATABASE_URL required")
		}
		c.Database.URL = "file:netrestrict.db"
	}
	c.Network.LoginPath = strings.Trim(strings.TrimSpace(c.Network.LoginPath), "/")
	if c.Network.LoginPath == "" {
		c.Network.LoginPath = "login"
	}
	c.Network.SuperAdminEmails = splitList(c.Network.SuperAdminEmails)
	c.CORS.AllowedOrigins = splitList(c.CORS.AllowedOrigins)
	return c, nil
}

// splitList also accepts a single comma separated env value.
func splitList(in []string) []string {
	var out []string
	for _, s := range in {
		for _, part := range strings.Split(s, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
