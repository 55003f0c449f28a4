package sharepoint

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Namespace types returned by GetUserRealm.srf.
const (
	NamespaceManaged   = "Managed"
	NamespaceFederated = "Federated"
	NamespaceUnknown   = "Unknown"
)

// UserRealm describes how Azure AD authenticates a login name.
type UserRealm struct {
	NameSpaceType       string `json:"NameSpaceType"`
	Login               string `json:"Login"`
	DomainName          string `json:"DomainName"`
	FederationBrandName string `json:"FederationBrandName"`
	AuthURL             string `json:"AuthURL"`
}

// IsFederated reports whether the domain signs in through an external identity provider.
func (r *UserRealm) IsFederated() bool {
	return strings.EqualFold(r.NameSpaceType, NamespaceFederated)
}

// GetUserRealm looks up the realm of login at authorityHost.
// An unknown realm is returned as ErrRealmUnknown.
func GetUserRealm(ctx context.Context, client *http.Client, authorityHost, login string) (*UserRealm, error) {
	endpoint := strings.TrimRight(authorityHost, "/") + "/GetUserRealm.srf?" + url.Values{
		"login": {login},
		"json":  {"1"},
	}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("user realm request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("user realm request failed with status %d: %w",
			resp.StatusCode, WrapError(resp.StatusCode))
	}

	var realm UserRealm
	if err := json.NewDecoder(resp.Body).Decode(&realm); err != nil {
		return nil, fmt.Errorf("decode user realm: %w", err)
	}

	if realm.NameSpaceType == "" || strings.EqualFold(realm.NameSpaceType, NamespaceUnknown) {
		return nil, fmt.Errorf("%w: %s", ErrRealmUnknown, login)
	}

	return &realm, nil
}
