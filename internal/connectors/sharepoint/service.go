package sharepoint

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// WebInfo contains the basic properties of the site's web.
type WebInfo struct {
	Title             string `json:"Title"`
	URL               string `json:"Url"`
	ServerRelativeURL string `json:"ServerRelativeUrl"`
}

// DisplayName returns the web title, falling back to its URL.
func (w *WebInfo) DisplayName() string {
	if w.Title != "" {
		return w.Title
	}
	return w.URL
}

// odataError is the error envelope SharePoint returns with odata=nometadata.
type odataError struct {
	Error struct {
		Code    string `json:"code"`
		Message struct {
			Value string `json:"value"`
		} `json:"message"`
	} `json:"odata.error"`
}

// GetWebInfo fetches the web's title and URL. It doubles as the session probe.
func (s *Session) GetWebInfo(ctx context.Context) (*WebInfo, error) {
	url := s.site.URL + "/_api/web?$select=Title,Url,ServerRelativeUrl"

	resp, err := s.doRequest(ctx, http.MethodGet, url, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch web: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("web request failed: %w", responseError(resp))
	}

	var info WebInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decode web: %w", err)
	}

	return &info, nil
}

// responseError builds an error for a non-success response, carrying the
// status sentinel and SharePoint's own message when it sent one.
func responseError(resp *http.Response) error {
	sentinel := WrapError(resp.StatusCode)
	if sentinel == nil {
		sentinel = ErrUnexpectedStatus
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))

	var envelope odataError
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message.Value != "" {
		return fmt.Errorf("%w: status %d: %s", sentinel, resp.StatusCode, envelope.Error.Message.Value)
	}

	if text := strings.TrimSpace(string(body)); text != "" && len(text) <= 200 && !strings.HasPrefix(text, "<") {
		return fmt.Errorf("%w: status %d: %s", sentinel, resp.StatusCode, text)
	}

	return fmt.Errorf("%w: status %d", sentinel, resp.StatusCode)
}
