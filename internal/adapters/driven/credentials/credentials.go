// Package credentials resolves the account used to sign in to a site.
//
// Sources are tried in order by Chain. The environment source reads the
// password from SPDATEFMT_PASSWORD; the prompt source asks on the terminal and
// refuses to run when stdin is not one.
package credentials

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/LindaBusdiecker/SharePointOnline/internal/core/domain"
	"github.com/LindaBusdiecker/SharePointOnline/internal/core/ports/driven"
	"github.com/LindaBusdiecker/SharePointOnline/internal/logger"
)

// EnvPassword holds the password for non-interactive runs.
const EnvPassword = "SPDATEFMT_PASSWORD"

// Ensure the sources implement the interface.
var (
	_ driven.CredentialSource = (*EnvSource)(nil)
	_ driven.CredentialSource = (*PromptSource)(nil)
	_ driven.CredentialSource = Chain(nil)
)

// EnvSource pairs a username with the password from the environment.
type EnvSource struct {
	// DefaultUsername is used when the hint carries none.
	DefaultUsername string
	lookup          func(string) (string, bool)
}

// NewEnvSource creates an environment source.
func NewEnvSource(defaultUsername string) *EnvSource {
	return &EnvSource{DefaultUsername: defaultUsername, lookup: os.LookupEnv}
}

// Credential implements driven.CredentialSource.
func (s *EnvSource) Credential(
	_ context.Context, _ domain.Site, hint domain.CredentialHint,
) (*domain.Credential, error) {
	username := firstNonEmpty(hint.Username, s.DefaultUsername)
	if username == "" {
		return nil, fmt.Errorf("%w: no username given", domain.ErrCredentialsRequired)
	}

	password, ok := s.lookup(EnvPassword)
	if !ok || password == "" {
		return nil, fmt.Errorf("%w: %s is not set", domain.ErrCredentialsRequired, EnvPassword)
	}

	logger.Debug("credentials: using %s for %s", EnvPassword, username)
	return &domain.Credential{Username: username, Password: password}, nil
}

// Chain tries each source in turn. A source that fails with
// domain.ErrCredentialsRequired passes to the next; any other error stops.
type Chain []driven.CredentialSource

// Credential implements driven.CredentialSource.
func (c Chain) Credential(
	ctx context.Context, site domain.Site, hint domain.CredentialHint,
) (*domain.Credential, error) {
	var reasons []string
	for _, src := range c {
		cred, err := src.Credential(ctx, site, hint)
		if err == nil {
			return cred, nil
		}
		if !errors.Is(err, domain.ErrCredentialsRequired) {
			return nil, err
		}
		reasons = append(reasons, strings.TrimPrefix(err.Error(), domain.ErrCredentialsRequired.Error()+": "))
	}

	if len(reasons) == 0 {
		return nil, domain.ErrCredentialsRequired
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrCredentialsRequired, strings.Join(reasons, "; "))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
