package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	SwissRe SwissReConfig `yaml:"swissre"`
	Token   TokenConfig   `yaml:"token"`
	Store   StoreConfig   `yaml:"store"`
	Archive ArchiveConfig `yaml:"archive"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string        `yaml:"address"`
	ReadTimeout    time.Duration `yaml:"readTimeout"`
	WriteTimeout   time.Duration `yaml:"writeTimeout"`
	AllowedOrigins []string      `yaml:"allowedOrigins"`
}

// SwissReConfig carries the upstream summarization endpoint settings.
type SwissReConfig struct {
	BaseURL   string        `yaml:"baseUrl"`
	AuthUser  string        `yaml:"authUser"`
	SessionID string        `yaml:"sessionId"`
	Timeout   time.Duration `yaml:"timeout"`
}

// TokenConfig selects how the upstream bearer token is obtained. OAuth wins
// over the file source, which wins over the static value.
type TokenConfig struct {
	Value string          `yaml:"value"`
	File  TokenFileConfig `yaml:"file"`
	OAuth OAuthConfig     `yaml:"oauth"`
}

// TokenFileConfig points at an on-disk (optionally AES-GCM sealed) token.
type TokenFileConfig struct {
	Path          string `yaml:"path"`
	EncryptionKey string `yaml:"encryptionKey"`
}

// OAuthConfig configures the client-credentials grant.
type OAuthConfig struct {
	TokenURL     string   `yaml:"tokenUrl"`
	ClientID     string   `yaml:"clientId"`
	ClientSecret string   `yaml:"clientSecret"`
	Scopes       []string `yaml:"scopes"`
}

// StoreConfig contains record store settings.
type StoreConfig struct {
	Postgres    PostgresConfig `yaml:"postgres"`
	RecentLimit int            `yaml:"recentLimit"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// ArchiveConfig configures the raw-response object store.
type ArchiveConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("SWISSRE_BASE_URL"); v != "" {
		cfg.SwissRe.BaseURL = v
	}
	if v := os.Getenv("SWISSRE_AUTH_USER"); v != "" {
		cfg.SwissRe.AuthUser = v
	}
	if v := os.Getenv("SWISSRE_SESSION_ID"); v != "" {
		cfg.SwissRe.SessionID = v
	}
	if v := os.Getenv("SWISSRE_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.SwissRe.Timeout = parsed
		}
	}
	if v := os.Getenv("TOKEN"); v != "" {
		cfg.Token.Value = v
	}
	if v := os.Getenv("TOKEN_FILE"); v != "" {
		cfg.Token.File.Path = v
	}
	if v := os.Getenv("TOKEN_ENCRYPTION_KEY"); v != "" {
		cfg.Token.File.EncryptionKey = v
	}
	if v := os.Getenv("OAUTH_TOKEN_URL"); v != "" {
		cfg.Token.OAuth.TokenURL = v
	}
	if v := os.Getenv("OAUTH_CLIENT_ID"); v != "" {
		cfg.Token.OAuth.ClientID = v
	}
	if v := os.Getenv("OAUTH_CLIENT_SECRET"); v != "" {
		cfg.Token.OAuth.ClientSecret = v
	}
	if v := os.Getenv("OAUTH_SCOPES"); v != "" {
		cfg.Token.OAuth.Scopes = splitList(v)
	}
	if v := os.Getenv("STORE_POSTGRES_DSN"); v != "" {
		cfg.Store.Postgres.DSN = v
	}
	if v := os.Getenv("STORE_POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Store.Postgres.MaxConns = int32(parsed)
		}
	}
	if v := os.Getenv("STORE_POSTGRES_MIN_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Store.Postgres.MinConns = int32(parsed)
		}
	}
	if v := os.Getenv("STORE_RECENT_LIMIT"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Store.RecentLimit = parsed
		}
	}
	if v := os.Getenv("ARCHIVE_ENABLED"); v != "" {
		cfg.Archive.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("ARCHIVE_ENDPOINT"); v != "" {
		cfg.Archive.Endpoint = v
	}
	if v := os.Getenv("ARCHIVE_ACCESS_KEY"); v != "" {
		cfg.Archive.AccessKey = v
	}
	if v := os.Getenv("ARCHIVE_SECRET_KEY"); v != "" {
		cfg.Archive.SecretKey = v
	}
	if v := os.Getenv("ARCHIVE_BUCKET"); v != "" {
		cfg.Archive.Bucket = v
	}
	if v := os.Getenv("ARCHIVE_REGION"); v != "" {
		cfg.Archive.Region = v
	}
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 120 * time.Second,
		},
		SwissRe: SwissReConfig{
			BaseURL:   "https://lifeguide-rest-genai.api-mp.swissre.com",
			AuthUser:  "Securian",
			SessionID: "123456",
			Timeout:   60 * time.Second,
		},
		Store: StoreConfig{
			Postgres: PostgresConfig{
				MaxConns: 4,
			},
			RecentLimit: 10,
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if strings.TrimSpace(c.SwissRe.BaseURL) == "" {
		return errors.New("swissre.baseUrl cannot be empty")
	}
	if c.SwissRe.Timeout < 0 {
		return errors.New("swissre.timeout cannot be negative")
	}
	if c.Store.RecentLimit <= 0 {
		return errors.New("store.recentLimit must be positive")
	}
	if key := c.Token.File.EncryptionKey; key != "" {
		switch len(key) {
		case 16, 24, 32:
		default:
			return errors.New("token.file.encryptionKey must be 16, 24, or 32 bytes")
		}
	}
	if c.Token.OAuth.TokenURL != "" {
		if strings.TrimSpace(c.Token.OAuth.ClientID) == "" || strings.TrimSpace(c.Token.OAuth.ClientSecret) == "" {
			return errors.New("token.oauth requires clientId and clientSecret")
		}
	}
	if c.Archive.Enabled {
		if strings.TrimSpace(c.Archive.Endpoint) == "" {
			return errors.New("archive.endpoint cannot be empty when archive is enabled")
		}
		if strings.TrimSpace(c.Archive.Bucket) == "" {
			return errors.New("archive.bucket cannot be empty when archive is enabled")
		}
	}
	return nil
}
