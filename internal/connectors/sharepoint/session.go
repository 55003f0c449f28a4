package sharepoint

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/LindaBusdiecker/SharePointOnline/internal/core/domain"
	"github.com/LindaBusdiecker/SharePointOnline/internal/core/ports/driven"
	"github.com/LindaBusdiecker/SharePointOnline/internal/logger"
)

// Ensure Connector and Session implement the interfaces.
var (
	_ driven.SessionOpener = (*Connector)(nil)
	_ driven.SiteSession   = (*Session)(nil)
)

// ErrSessionClosed is returned by calls on a closed session.
var ErrSessionClosed = errors.New("sharepoint: session closed")

// Content types used against the REST API.
const (
	acceptNoMetadata   = "application/json;odata=nometadata"
	contentTypeVerbose = "application/json;odata=verbose"
)

// userAgentPrefix decorates traffic as recommended for throttling diagnostics.
const userAgentPrefix = "NONISV|LindaBusdiecker|spdatefmt/"

// DefaultUserAgent is sent when Config.UserAgent is empty.
const DefaultUserAgent = userAgentPrefix + "dev"

// UserAgent returns the decorated user agent for a release version.
func UserAgent(version string) string {
	return userAgentPrefix + version
}

// Config holds connector configuration.
type Config struct {
	RateLimit RateLimitConfig
	// Timeout bounds each HTTP round trip. Zero selects 60 seconds.
	Timeout time.Duration
	// UserAgent overrides DefaultUserAgent.
	UserAgent string
}

// Connector opens sessions against SharePoint Online sites.
type Connector struct {
	auth      *Authenticator
	cfg       Config
	transport http.RoundTripper
	timeout   time.Duration
	userAgent string
}

// New creates a connector. base is the transport REST requests go through;
// nil selects http.DefaultTransport.
func New(auth *Authenticator, cfg Config, base http.RoundTripper) *Connector {
	if base == nil {
		base = http.DefaultTransport
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Connector{
		auth:      auth,
		cfg:       cfg,
		transport: base,
		timeout:   timeout,
		userAgent: userAgent,
	}
}

// Open acquires a token for site and probes the web. Token and identity
// failures wrap domain.ErrAuthentication; an unreachable or missing site wraps
// domain.ErrConnection.
func (c *Connector) Open(ctx context.Context, site domain.Site, cred domain.Credential) (driven.SiteSession, error) {
	ts, err := c.auth.TokenSource(ctx, site, cred)
	if err != nil {
		return nil, err
	}

	s := &Session{
		site:        site,
		tokenSource: oauth2.ReuseTokenSource(nil, ts),
		client: &http.Client{
			Timeout:   c.timeout,
			Transport: c.transport,
		},
		rateLimiter: NewRateLimiter(c.cfg.RateLimit),
		userAgent:   c.userAgent,
	}

	web, err := s.GetWebInfo(ctx)
	if err != nil {
		return nil, classifyProbeError(err)
	}

	logger.Debug("sharepoint: connected to %q at %s", web.DisplayName(), site)
	return s, nil
}

// NeedsCredential reports whether Open signs in with the credential's password.
func (c *Connector) NeedsCredential() bool {
	return !c.auth.HasAccessToken()
}

// classifyProbeError maps a failed web probe onto the connect-stage errors.
func classifyProbeError(err error) error {
	if errors.Is(err, ErrUnauthorised) || errors.Is(err, ErrForbidden) {
		return fmt.Errorf("%w: %w", domain.ErrAuthentication, err)
	}
	return fmt.Errorf("%w: %w", domain.ErrConnection, err)
}

// Session is an authenticated handle on one site.
type Session struct {
	site        domain.Site
	tokenSource oauth2.TokenSource
	client      *http.Client
	rateLimiter *RateLimiter
	userAgent   string
	mu          sync.Mutex
	closed      bool
}


// Lists returns every list on the web.
func (s *Session) Lists(ctx context.Context) ([]domain.List, error) {
	if err := s.checkClosed(); err != nil {
		return nil, err
	}

	url := s.site.URL + "/_api/web/lists?$select=Id,Title,Hidden,BaseTemplate"

	var lists []domain.List
	err := s.getCollection(ctx, url, func(raw json.RawMessage) error {
		list, err := decodeList(raw)
		if err != nil {
			return err
		}
		lists = append(lists, list)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return lists, nil
}

// Fields returns every column on list. Properties are not narrowed with
// $select because DateTimeFriendlyFormat only exists on SP.FieldDateTime.
func (s *Session) Fields(ctx context.Context, list domain.List) ([]domain.Field, error) {
	if err := s.checkClosed(); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/_api/web/lists(guid'%s')/fields", s.site.URL, list.ID)

	var fields []domain.Field
	err := s.getCollection(ctx, url, func(raw json.RawMessage) error {
		field, err := decodeField(raw)
		if err != nil {
			return err
		}
		fields = append(fields, field)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Debug("sharepoint: list %q has %d fields", list.Title, len(fields))
	return fields, nil
}

// SetDisplayFormat writes DateTimeFriendlyFormat on one field and commits it.
func (s *Session) SetDisplayFormat(
	ctx context.Context, list domain.List, field *domain.DateTimeField, format domain.DisplayFormat,
) error {
	if err := s.checkClosed(); err != nil {
		return err
	}

	body, err := encodeDateTimeUpdate(format)
	if err != nil {
		return fmt.Errorf("encode update: %w", err)
	}

	url := fmt.Sprintf("%s/_api/web/lists(guid'%s')/fields(guid'%s')", s.site.URL, list.ID, field.ID)
	header := http.Header{}
	header.Set("Content-Type", contentTypeVerbose)
	header.Set("X-HTTP-Method", "MERGE")
	header.Set("IF-MATCH", "*")

	resp, err := s.doRequest(ctx, http.MethodPost, url, body, header)
	if err != nil {
		return fmt.Errorf("update request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("update field failed: %w", responseError(resp))
	}
	_, _ = io.Copy(io.Discard, resp.Body)

	return nil
}

// Close releases the session. Later calls return ErrSessionClosed.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.client.CloseIdleConnections()
	return nil
}

// collectionPage is one page of an odata=nometadata collection.
type collectionPage struct {
	Value    []json.RawMessage `json:"value"`
	NextLink string            `json:"odata.nextLink"`
}

// getCollection reads every page of a collection, handing each entry to fn.
func (s *Session) getCollection(ctx context.Context, url string, fn func(json.RawMessage) error) error {
	for url != "" {
		if err := ctx.Err(); err != nil {
			return err
		}

		resp, err := s.doRequest(ctx, http.MethodGet, url, nil, nil)
		if err != nil {
			return fmt.Errorf("collection request: %w", err)
		}

		if resp.StatusCode != http.StatusOK {
			err := responseError(resp)
			resp.Body.Close()
			return fmt.Errorf("collection request failed: %w", err)
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return fmt.Errorf("read response: %w", err)
		}

		var page collectionPage
		if err := json.Unmarshal(body, &page); err != nil {
			return fmt.Errorf("decode collection: %w", err)
		}

		for _, raw := range page.Value {
			if err := fn(raw); err != nil {
				return err
			}
		}

		url = page.NextLink
	}
	return nil
}

// doRequest performs an authenticated, rate limited request.
func (s *Session) doRequest(
	ctx context.Context, method, url string, body []byte, header http.Header,
) (*http.Response, error) {
	if err := s.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	token, err := s.tokenSource.Token()
	if err != nil {
		return nil, fmt.Errorf("get token: %w", err)
	}

	var reader io.Reader = http.NoBody
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, err
	}

	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	token.SetAuthHeader(req)
	req.Header.Set("Accept", acceptNoMetadata)
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("client-request-id", uuid.NewString())

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}

	if IsRateLimited(resp.StatusCode) {
		retryAfter := parseRetryAfter(resp.Header.Get("Retry-After"))
		logger.Warn("sharepoint: throttled (status %d), backing off %ds", resp.StatusCode, retryAfter)
		s.rateLimiter.RecordRateLimitError(retryAfter)
	}

	return resp, nil
}

// checkClosed returns an error if the session is closed.
func (s *Session) checkClosed() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	return nil
}
