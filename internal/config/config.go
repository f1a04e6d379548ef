// Package config loads the settings shared by the CLI and the HTTP server.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

const (
	DefaultDBDriver    = "sqlite3"
	DefaultDBDSN       = "swiss.db"
	DefaultHTTPAddress = "127.0.0.1:8080"
	DefaultLogLevel    = "info"
)

type Config struct {
	// DBDriver is either sqlite3 or postgres.
	DBDriver string `json:"db_driver" toml:"db_driver"`

	// DBDSN is a file path for sqlite3 or a postgres:// URL. ":memory:"
	// keeps everything in memory and loses it on exit.
	DBDSN string `json:"db_dsn" toml:"db_dsn"`

	HTTPAddress string `json:"http_address" toml:"http_address"`

	// WebToken is the HMAC key used to sign admin URLs, must be ≥ 32 chars.
	WebToken string `json:"web_token" toml:"web_token"`

	LogLevel string `json:"log_level" toml:"log_level"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		DBDriver:    DefaultDBDriver,
		DBDSN:       DefaultDBDSN,
		HTTPAddress: DefaultHTTPAddress,
		LogLevel:    DefaultLogLevel,
	}
}

// Load reads the user config file then overrides its values with the
// environment. A .env file in the working directory is loaded first.
// config.toml is read instead of config.json when both exist.
func Load() (*Config, error) {
	// Ignored when the file does not exist.
	_ = godotenv.Load()

	// The file may set another level, this one only covers reading it.
	if level, err := log.ParseLevel(os.Getenv("SWISS_LOG_LEVEL")); err == nil {
		log.SetLevel(level)
	}

	path, err := UserConfigPath()
	if err != nil {
		return nil, err
	}

	tomlPath := strings.TrimSuffix(path, ".json") + ".toml"
	if _, err := os.Stat(tomlPath); err == nil {
		path = tomlPath
	}

	c := Default()
	if err := c.ReadFile(path); err != nil {
		return nil, err
	}
	c.expandFromEnv()

	return c, nil
}

// ReadFile merges the JSON or TOML file at path into c, depending on its
// extension. A missing file is not an error.
func (c *Config) ReadFile(path string) error {
	log.Debug("reading conf", "path", path)

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()

	if filepath.Ext(path) == ".toml" {
		err = toml.NewDecoder(f).Decode(c)
	} else {
		err = json.NewDecoder(f).Decode(c)
	}

	if err != nil {
		return fmt.Errorf("unable to decode %s: %w", path, err)
	}

	return nil
}

func (c *Config) expandFromEnv() {
	vars := []struct {
		src string
		dst *string
	}{
		{"SWISS_DB_DRIVER", &c.DBDriver},
		{"SWISS_DB_DSN", &c.DBDSN},
		{"SWISS_HTTP_ADDR", &c.HTTPAddress},
		{"SWISS_WEB_TOKEN", &c.WebToken},
		{"SWISS_LOG_LEVEL", &c.LogLevel},
	}

	for _, v := range vars {
		if str := os.Getenv(v.src); str != "" {
			*v.dst = str
		}
	}
}

// UserConfigPath returns the path of the config file, creating its parent
// directory if needed.
func UserConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}

	dir := filepath.Join(configDir, "swiss")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}

	return filepath.Join(dir, "config.json"), nil
}

// ErrConfigExists is returned by Init when a config file is already present.
var ErrConfigExists = errors.New("config file already exists")

// Init writes the default configuration to path, it never overwrites an
// existing file.
func Init(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: %s", ErrConfigExists, path)
	}

	return Default().Write(path)
}

// Write saves c to path.
func (c *Config) Write(path string) error {
	log.Debug("writing conf", "path", path)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "    ")
	if err := enc.Encode(c); err != nil {
		if err2 := f.Close(); err2 != nil {
			return fmt.Errorf("unable to close file (%s) after error: %w", err2, err)
		}

		return err
	}

	return f.Close()
}

// Level parses LogLevel, falling back to info on unknown values.
func (c *Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}

	return level
}
