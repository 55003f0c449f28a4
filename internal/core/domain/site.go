package domain

import (
	"fmt"
	"net/url"
	"strings"
)

// Site is a SharePoint web addressed by an absolute https URL.
type Site struct {
	URL string
}

// NewSite validates rawURL and returns a Site with any trailing slash removed.
func NewSite(rawURL string) (Site, error) {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return Site{}, fmt.Errorf("%w: empty", ErrInvalidSiteURL)
	}

	u, err := url.Parse(trimmed)
	if err != nil {
		return Site{}, fmt.Errorf("%w: %w", ErrInvalidSiteURL, err)
	}
	if u.Scheme != "https" {
		return Site{}, fmt.Errorf("%w: %q must use https", ErrInvalidSiteURL, trimmed)
	}
	if u.Host == "" {
		return Site{}, fmt.Errorf("%w: %q has no host", ErrInvalidSiteURL, trimmed)
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return Site{}, fmt.Errorf("%w: %q must not carry a query or fragment", ErrInvalidSiteURL, trimmed)
	}

	return Site{URL: strings.TrimRight(u.String(), "/")}, nil
}

// Host returns the host part of the site URL (e.g. contoso.sharepoint.com).
func (s Site) Host() string {
	u, err := url.Parse(s.URL)
	if err != nil {
		return ""
	}
	return u.Host
}

// Resource returns the Azure AD resource the site's access token must target.
func (s Site) Resource() string {
	return "https://" + s.Host()
}

// String returns the site URL.
func (s Site) String() string {
	return s.URL
}
