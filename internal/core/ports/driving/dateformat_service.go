package driving

import (
	"context"

	"github.com/LindaBusdiecker/SharePointOnline/internal/core/domain"
)

// DateFormatService rewrites the display format of every date/time column on a site.
type DateFormatService interface {
	// Apply runs one request against one site. The returned report is non-nil
	// whenever a session was opened, including when the run aborted part way;
	// it then lists the changes committed before the failure.
	Apply(ctx context.Context, req domain.ApplyRequest) (*domain.Report, error)
}

// SettingsService exposes the loaded configuration to commands.
type SettingsService interface {
	// Get returns the effective settings (file, then environment overrides).
	Get() (*domain.Settings, error)
	// Save validates and persists settings.
	Save(settings *domain.Settings) error
	// Path returns the config file location.
	Path() string
}
