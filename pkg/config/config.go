package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the runtime configuration. Values come from defaults, then the
// optional YAML file named by CONFIG_PATH, then environment variables.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
	Upload UploadConfig `yaml:"upload"`
	Fetch  FetchConfig  `yaml:"fetch"`
	GeoIP  GeoIPConfig  `yaml:"geoip"`
}

type ServerConfig struct {
	Port           string `yaml:"port" validate:"required,numeric"`
	GinMode        string `yaml:"gin_mode" validate:"omitempty,oneof=debug release test"`
	EnableNetTools bool   `yaml:"enable_net_tools"`
}

type LogConfig struct {
	Level      string `yaml:"level" validate:"omitempty,loglevel"`
	Format     string `yaml:"format" validate:"omitempty,logformat"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb" validate:"gte=0"`
	MaxBackups int    `yaml:"max_backups" validate:"gte=0"`
}

type UploadConfig struct {
	Dir           string   `yaml:"dir" validate:"required"`
	PublicBaseURL string   `yaml:"public_base_url"`
	MaxBytes      int64    `yaml:"max_bytes" validate:"gt=0"`
	AllowedScopes []string `yaml:"allowed_scopes" validate:"dive,scope"`
}

type FetchConfig struct {
	Timeout      time.Duration `yaml:"timeout" validate:"gt=0"`
	MaxRedirects int           `yaml:"max_redirects" validate:"gte=0,lte=10"`
	UserAgent    string        `yaml:"user_agent" validate:"required"`
}

type GeoIPConfig struct {
	CityDBPath string `yaml:"city_db_path"`
	ASNDBPath  string `yaml:"asn_db_path"`
}

const (
	DefaultPort         = "8080"
	DefaultUploadDir    = "uploads"
	DefaultPublicURL    = "/uploads"
	DefaultMaxBytes     = 5 << 20
	DefaultFetchTimeout = 8 * time.Second
	DefaultMaxRedirects = 3
	DefaultUserAgent    = "imagefetch-api/1.0 (+external-image-import)"
)

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:    DefaultPort,
			GinMode: "release",
		},
		Log: LogConfig{
			Level:      "info",
			Format:     "console",
			MaxSizeMB:  100,
			MaxBackups: 3,
		},
		Upload: UploadConfig{
			Dir:           DefaultUploadDir,
			PublicBaseURL: DefaultPublicURL,
			MaxBytes:      DefaultMaxBytes,
			AllowedScopes: []string{"pages", "community", "menus", "settings"},
		},
		Fetch: FetchConfig{
			Timeout:      DefaultFetchTimeout,
			MaxRedirects: DefaultMaxRedirects,
			UserAgent:    DefaultUserAgent,
		},
	}
}

// Load reads .env (if present), the YAML file at CONFIG_PATH (if set) and the
// environment, then validates the result.
func Load() (*Config, error) {
	// A missing .env is normal outside development.
	_ = godotenv.Load()

	cfg := Default()
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to unmarshal YAML from %s: %w", path, err)
	}
	return nil
}

type lookupFunc func(key string) (string, bool)

func (c *Config) applyEnv(lookup lookupFunc) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	str("PORT", &c.Server.Port)
	str("GIN_MODE", &c.Server.GinMode)
	str("LOG_LEVEL", &c.Log.Level)
	str("LOG_FORMAT", &c.Log.Format)
	str("LOG_FILE", &c.Log.File)
	str("UPLOAD_DIR", &c.Upload.Dir)
	str("UPLOAD_PUBLIC_BASE_URL", &c.Upload.PublicBaseURL)
	str("FETCH_USER_AGENT", &c.Fetch.UserAgent)
	str("MMDB_CITY_PATH", &c.GeoIP.CityDBPath)
	str("MMDB_ASN_PATH", &c.GeoIP.ASNDBPath)

	if v, ok := lookup("UPLOAD_ALLOWED_SCOPES"); ok && v != "" {
		var scopes []string
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				scopes = append(scopes, s)
			}
		}
		c.Upload.AllowedScopes = scopes
	}

	if v, ok := lookup("ENABLE_NET_TOOLS"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid ENABLE_NET_TOOLS %q: %w", v, err)
		}
		c.Server.EnableNetTools = b
	}
	if v, ok := lookup("UPLOAD_MAX_BYTES"); ok && v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid UPLOAD_MAX_BYTES %q: %w", v, err)
		}
		c.Upload.MaxBytes = n
	}
	if v, ok := lookup("FETCH_TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid FETCH_TIMEOUT %q: %w", v, err)
		}
		c.Fetch.Timeout = d
	}
	if v, ok := lookup("FETCH_MAX_REDIRECTS"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid FETCH_MAX_REDIRECTS %q: %w", v, err)
		}
		c.Fetch.MaxRedirects = n
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Server.Port
}
