package driven

import (
	"context"

	"github.com/LindaBusdiecker/SharePointOnline/internal/core/domain"
)

// SessionOpener authenticates against a site and returns a session bound to it.
type SessionOpener interface {
	// Open returns a session for site. Errors wrap domain.ErrAuthentication when
	// the credential or identity lookup failed and domain.ErrConnection when the
	// site could not be reached or resolved.
	Open(ctx context.Context, site domain.Site, cred domain.Credential) (SiteSession, error)

	// NeedsCredential reports whether Open uses the password of cred. It is
	// false when the opener already holds a token.
	NeedsCredential() bool
}

// SiteSession issues reads and writes against one site. A session is owned by a
// single run and is not safe for concurrent use.
type SiteSession interface {
	// Lists returns every list on the web in the order the service yields them.
	Lists(ctx context.Context) ([]domain.List, error)

	// Fields returns every column on list.
	Fields(ctx context.Context, list domain.List) ([]domain.Field, error)

	// SetDisplayFormat writes and commits the display format of one date/time column.
	SetDisplayFormat(ctx context.Context, list domain.List, field *domain.DateTimeField, format domain.DisplayFormat) error

	// Close releases the session.
	Close() error
}
