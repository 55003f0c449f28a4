package domain

import "time"

// Settings is the persisted tool configuration.
type Settings struct {
	Auth        AuthSettings      `toml:"auth"`
	Sites       []string          `toml:"sites"`
	RateLimit   RateLimitSettings `toml:"rate_limit"`
	HTTPTimeout Duration          `toml:"http_timeout"`
}

// AuthSettings configures Azure AD token acquisition.
type AuthSettings struct {
	// TenantID is the directory (tenant) ID or domain. Defaults to "organizations".
	TenantID string `toml:"tenant_id"`
	// ClientID is the public client application used for the password grant.
	ClientID string `toml:"client_id"`
	// Username is the default account when --username is not given.
	Username string `toml:"username"`
	// AuthorityHost is the Azure AD login host.
	AuthorityHost string `toml:"authority_host"`
}

// RateLimitSettings configures request pacing against the site.
type RateLimitSettings struct {
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
}

// Default settings values.
const (
	DefaultTenantID      = "organizations"
	DefaultAuthorityHost = "https://login.microsoftonline.com"
	// DefaultClientID is the well-known SharePoint Online Management Shell public client.
	DefaultClientID          = "9bc3ab49-b65d-410a-85ad-de819febfddc"
	DefaultRequestsPerSecond = 5.0
	DefaultBurst             = 10
	DefaultHTTPTimeout       = 60 * time.Second
)

// DefaultSettings returns the settings used when no config file exists.
func DefaultSettings() Settings {
	return Settings{
		Auth: AuthSettings{
			TenantID:      DefaultTenantID,
			ClientID:      DefaultClientID,
			AuthorityHost: DefaultAuthorityHost,
		},
		RateLimit: RateLimitSettings{
			RequestsPerSecond: DefaultRequestsPerSecond,
			Burst:             DefaultBurst,
		},
		HTTPTimeout: Duration(DefaultHTTPTimeout),
	}
}

// Duration is a time.Duration that round-trips through TOML as a string ("30s").
type Duration time.Duration

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}
