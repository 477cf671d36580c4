package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/staffbook/staffql/internal/credential"
	"github.com/staffbook/staffql/internal/logging"
)

const (
	ConfigFile = "staffql.toml"
	EnvFile    = ".env"
)

const (
	DefaultPort     = 5000
	DefaultStoreURI = "mongodb://localhost:27017"
	DefaultDatabase = "employees"
)

// Config holds the staffql configuration.
type Config struct {
	Server ServerConfig `toml:"server"`
	Store  StoreConfig  `toml:"store"`
	Auth   AuthConfig   `toml:"auth"`
	Log    LogConfig    `toml:"log"`
}

// ServerConfig defines the HTTP listener.
type ServerConfig struct {
	Port int `toml:"port"`
}

// StoreConfig selects the record store backend by URI scheme:
// mongodb:// and mongodb+srv:// for MongoDB, bolt://<path> and file://<dir>
// for the embedded backends.
type StoreConfig struct {
	URI      string `toml:"uri"`
	Database string `toml:"database,omitempty"`
}

// AuthConfig defines credential hashing settings.
type AuthConfig struct {
	BcryptCost int `toml:"bcrypt_cost"`
}

// LogConfig defines the log output.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Port: DefaultPort},
		Store: StoreConfig{
			URI:      DefaultStoreURI,
			Database: DefaultDatabase,
		},
		Auth: AuthConfig{BcryptCost: credential.DefaultCost},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads configuration from path on top of the defaults.
// Returns default config if the file doesn't exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	// Apply defaults for values explicitly zeroed in the file
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultPort
	}
	if cfg.Store.URI == "" {
		cfg.Store.URI = DefaultStoreURI
	}
	if cfg.Auth.BcryptCost == 0 {
		cfg.Auth.BcryptCost = credential.DefaultCost
	}

	return cfg, nil
}

// Save writes the configuration to path.
func (c *Config) Save(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// LoadEnvFile loads variables from a dotenv file into the process environment.
// Variables already set are not overridden. A missing file is not an error.
func LoadEnvFile(path string) error {
	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides settings from environment variables. lookup is usually os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		c.Server.Port = port
	}
	if v, ok := lookup("MONGO_URI"); ok && v != "" {
		c.Store.URI = v
	}
	if v, ok := lookup("MONGO_DATABASE"); ok && v != "" {
		c.Store.Database = v
	}
	if v, ok := lookup("BCRYPT_COST"); ok && v != "" {
		cost, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid BCRYPT_COST %q: %w", v, err)
		}
		c.Auth.BcryptCost = cost
	}
	if v, ok := lookup("LOG_LEVEL"); ok && v != "" {
		c.Log.Level = v
	}
	if v, ok := lookup("LOG_FORMAT"); ok && v != "" {
		c.Log.Format = v
	}
	return nil
}

// Validate checks that all settings are usable.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port %d: must be between 1 and 65535", c.Server.Port)
	}
	if c.Store.URI == "" {
		return errors.New("store uri is required")
	}
	if _, err := credential.NewBcryptHasher(c.Auth.BcryptCost); err != nil {
		return err
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q: must be text or json", c.Log.Format)
	}
	return nil
}
