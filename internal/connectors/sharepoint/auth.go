package sharepoint

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/microsoft"

	"github.com/LindaBusdiecker/SharePointOnline/internal/core/domain"
	"github.com/LindaBusdiecker/SharePointOnline/internal/logger"
)

// AuthConfig configures Azure AD token acquisition.
type AuthConfig struct {
	TenantID      string
	ClientID      string
	AuthorityHost string
	// AccessToken, when set, is used as-is instead of the password grant.
	AccessToken string
}

// Authenticator obtains access tokens for SharePoint sites.
type Authenticator struct {
	cfg        AuthConfig
	httpClient *http.Client
}

// NewAuthenticator creates an authenticator. httpClient carries realm and
// token requests; nil selects http.DefaultClient.
func NewAuthenticator(cfg AuthConfig, httpClient *http.Client) *Authenticator {
	if cfg.TenantID == "" {
		cfg.TenantID = domain.DefaultTenantID
	}
	if cfg.ClientID == "" {
		cfg.ClientID = domain.DefaultClientID
	}
	if cfg.AuthorityHost == "" {
		cfg.AuthorityHost = domain.DefaultAuthorityHost
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Authenticator{cfg: cfg, httpClient: httpClient}
}

// Endpoint returns the Azure AD v2.0 endpoint for the configured tenant.
func (a *Authenticator) Endpoint() oauth2.Endpoint {
	var ep oauth2.Endpoint
	host := strings.TrimRight(a.cfg.AuthorityHost, "/")
	if host == domain.DefaultAuthorityHost {
		ep = microsoft.AzureADEndpoint(a.cfg.TenantID)
	} else {
		ep = oauth2.Endpoint{
			AuthURL:  host + "/" + a.cfg.TenantID + "/oauth2/v2.0/authorize",
			TokenURL: host + "/" + a.cfg.TenantID + "/oauth2/v2.0/token",
		}
	}
	// Public clients have no secret, so the client id goes in the form body.
	ep.AuthStyle = oauth2.AuthStyleInParams
	return ep
}

// HasAccessToken reports whether a pre-acquired token replaces the password grant.
func (a *Authenticator) HasAccessToken() bool {
	return a.cfg.AccessToken != ""
}

// Scopes returns the scopes requested for site.
func Scopes(site domain.Site) []string {
	return []string{site.Resource() + "/.default"}
}

// TokenSource returns a token source for site and fetches the first token so
// credential problems surface immediately. Errors wrap domain.ErrAuthentication.
func (a *Authenticator) TokenSource(
	ctx context.Context, site domain.Site, cred domain.Credential,
) (oauth2.TokenSource, error) {
	if a.HasAccessToken() {
		logger.Debug("sharepoint: using pre-acquired access token for %s", site)
		return oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: a.cfg.AccessToken,
			TokenType:   "Bearer",
		}), nil
	}

	realm, err := GetUserRealm(ctx, a.httpClient, a.cfg.AuthorityHost, cred.Username)
	if err != nil {
		return nil, fmt.Errorf("%w: identity lookup: %w", domain.ErrAuthentication, err)
	}
	if realm.IsFederated() {
		logger.Debug("sharepoint: %s is federated via %s, password grant relies on hash sync",
			realm.DomainName, realm.FederationBrandName)
	}

	conf := &oauth2.Config{
		ClientID: a.cfg.ClientID,
		Endpoint: a.Endpoint(),
		Scopes:   Scopes(site),
	}

	// The oauth2 package picks up the HTTP client from the context.
	ctx = context.WithValue(ctx, oauth2.HTTPClient, a.httpClient)

	tok, err := conf.PasswordCredentialsToken(ctx, cred.Username, cred.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrAuthentication, describeTokenError(err))
	}

	logger.Debug("sharepoint: token acquired for %s, expires %s", site, tok.Expiry.Format("15:04:05"))
	return conf.TokenSource(ctx, tok), nil
}

// describeTokenError turns an oauth2 error into ErrTokenRejected with the
// Azure AD error code, without echoing the request.
func describeTokenError(err error) error {
	var rerr *oauth2.RetrieveError
	if errors.As(err, &rerr) {
		msg := rerr.ErrorCode
		if rerr.ErrorDescription != "" {
			// Azure AD descriptions carry trace and correlation ids on later lines.
			msg += ": " + strings.SplitN(rerr.ErrorDescription, "\r\n", 2)[0]
		}
		if msg == "" && rerr.Response != nil {
			msg = rerr.Response.Status
		}
		return fmt.Errorf("%w: %s", ErrTokenRejected, msg)
	}
	return fmt.Errorf("token request: %w", err)
}
