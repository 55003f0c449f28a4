// Package file provides a TOML-backed configuration store.
package file

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/LindaBusdiecker/SharePointOnline/internal/core/domain"
	"github.com/LindaBusdiecker/SharePointOnline/internal/core/ports/driven"
	"github.com/LindaBusdiecker/SharePointOnline/internal/logger"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// Environment variables read by the store.
const (
	EnvConfigPath    = "SPDATEFMT_CONFIG"
	EnvTenantID      = "SPDATEFMT_TENANT_ID"
	EnvClientID      = "SPDATEFMT_CLIENT_ID"
	EnvUsername      = "SPDATEFMT_USERNAME"
	EnvAuthorityHost = "SPDATEFMT_AUTHORITY_HOST"
	EnvSites         = "SPDATEFMT_SITES"
)

const (
	configDirName  = ".spdatefmt"
	configFileName = "config.toml"
)

// ConfigStore reads and writes settings as TOML.
type ConfigStore struct {
	path   string
	lookup func(string) (string, bool)
}

// NewConfigStore creates a store at path. An empty path selects
// $SPDATEFMT_CONFIG, falling back to ~/.spdatefmt/config.toml.
func NewConfigStore(path string) (*ConfigStore, error) {
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		path = filepath.Join(home, configDirName, configFileName)
	}

	return &ConfigStore{path: path, lookup: os.LookupEnv}, nil
}

// Path returns the config file location.
func (s *ConfigStore) Path() string {
	return s.path
}

// Load returns the defaults, overlaid by the config file when it exists and
// then by SPDATEFMT_* environment variables.
func (s *ConfigStore) Load() (*domain.Settings, error) {
	settings := domain.DefaultSettings()

	data, err := os.ReadFile(s.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		logger.Debug("config: %s not found, using defaults", s.path)
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&settings); err != nil {
			var strict *toml.StrictMissingError
			if errors.As(err, &strict) {
				return nil, fmt.Errorf("parse config %s: %s", s.path, strict.String())
			}
			return nil, fmt.Errorf("parse config %s: %w", s.path, err)
		}
	}

	s.applyEnv(&settings)
	return &settings, nil
}

// Save writes settings to the config file, creating its directory.
func (s *ConfigStore) Save(settings *domain.Settings) error {
	data, err := toml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func (s *ConfigStore) applyEnv(settings *domain.Settings) {
	overrides := []struct {
		key string
		dst *string
	}{
		{EnvTenantID, &settings.Auth.TenantID},
		{EnvClientID, &settings.Auth.ClientID},
		{EnvUsername, &settings.Auth.Username},
		{EnvAuthorityHost, &settings.Auth.AuthorityHost},
	}
	for _, o := range overrides {
		if v, ok := s.lookup(o.key); ok && v != "" {
			*o.dst = v
		}
	}

	if v, ok := s.lookup(EnvSites); ok && v != "" {
		var sites []string
		for _, site := range strings.Split(v, ",") {
			if site = strings.TrimSpace(site); site != "" {
				sites = append(sites, site)
			}
		}
		settings.Sites = sites
	}
}

// LoadEnvFile loads variables from a dotenv file without overriding ones
// already set. A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	logger.Debug("config: loaded environment from %s", path)
	return nil
}
