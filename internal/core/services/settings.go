package services

import (
	"errors"
	"fmt"

	"github.com/LindaBusdiecker/SharePointOnline/internal/core/domain"
	"github.com/LindaBusdiecker/SharePointOnline/internal/core/ports/driven"
	"github.com/LindaBusdiecker/SharePointOnline/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// ErrInvalidSettings indicates a loaded setting is out of range.
var ErrInvalidSettings = errors.New("invalid settings")

// SettingsService validates and caches settings loaded from a config store.
type SettingsService struct {
	store  driven.ConfigStore
	cached *domain.Settings
}

// NewSettingsService creates a settings service backed by store.
func NewSettingsService(store driven.ConfigStore) *SettingsService {
	return &SettingsService{store: store}
}

// Get returns the validated settings, loading them on first use.
func (s *SettingsService) Get() (*domain.Settings, error) {
	if s.cached != nil {
		return s.cached, nil
	}

	settings, err := s.store.Load()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	if err := validateSettings(settings); err != nil {
		return nil, err
	}

	s.cached = settings
	return settings, nil
}

// Save validates settings and writes them to the config store.
func (s *SettingsService) Save(settings *domain.Settings) error {
	if err := validateSettings(settings); err != nil {
		return err
	}
	if err := s.store.Save(settings); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	s.cached = settings
	return nil
}

// Path returns the config file location.
func (s *SettingsService) Path() string {
	return s.store.Path()
}

func validateSettings(s *domain.Settings) error {
	if s.Auth.ClientID == "" {
		return fmt.Errorf("%w: auth.client_id is empty", ErrInvalidSettings)
	}
	if s.RateLimit.RequestsPerSecond <= 0 {
		return fmt.Errorf("%w: rate_limit.requests_per_second must be positive, got %v",
			ErrInvalidSettings, s.RateLimit.RequestsPerSecond)
	}
	if s.RateLimit.Burst < 1 {
		return fmt.Errorf("%w: rate_limit.burst must be at least 1, got %d", ErrInvalidSettings, s.RateLimit.Burst)
	}
	if s.HTTPTimeout.Std() <= 0 {
		return fmt.Errorf("%w: http_timeout must be positive", ErrInvalidSettings)
	}
	for _, site := range s.Sites {
		if _, err := domain.NewSite(site); err != nil {
			return fmt.Errorf("%w: sites: %w", ErrInvalidSettings, err)
		}
	}
	return nil
}
