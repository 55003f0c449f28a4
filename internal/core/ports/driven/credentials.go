package driven

import (
	"context"

	"github.com/LindaBusdiecker/SharePointOnline/internal/core/domain"
)

// CredentialSource supplies a credential when the caller did not pass one.
type CredentialSource interface {
	// Credential returns a complete credential or an error wrapping
	// domain.ErrCredentialsRequired.
	Credential(ctx context.Context, site domain.Site, hint domain.CredentialHint) (*domain.Credential, error)
}

// ConfigStore loads and saves settings.
type ConfigStore interface {
	Load() (*domain.Settings, error)
	Save(settings *domain.Settings) error
	Path() string
}
