package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/LindaBusdiecker/SharePointOnline/internal/core/domain"
	"github.com/LindaBusdiecker/SharePointOnline/internal/core/ports/driven"
	"github.com/LindaBusdiecker/SharePointOnline/internal/core/ports/driving"
	"github.com/LindaBusdiecker/SharePointOnline/internal/logger"
)

// Ensure DateFormatUpdater implements the interface.
var _ driving.DateFormatService = (*DateFormatUpdater)(nil)

// DateFormatUpdater walks every list on a site and sets the display format of
// each date/time column. Work is strictly sequential: a failure at any stage
// stops the run and earlier writes are left in place.
type DateFormatUpdater struct {
	opener      driven.SessionOpener
	credentials driven.CredentialSource
	observer    driven.ChangeObserver
}

// NewDateFormatUpdater creates an updater. credentials may be nil, in which case
// every request must carry its own credential.
func NewDateFormatUpdater(opener driven.SessionOpener, credentials driven.CredentialSource) *DateFormatUpdater {
	return &DateFormatUpdater{
		opener:      opener,
		credentials: credentials,
	}
}

// SetObserver registers a receiver for before/after diagnostics.
func (u *DateFormatUpdater) SetObserver(observer driven.ChangeObserver) {
	u.observer = observer
}

// Apply runs req against its site.
func (u *DateFormatUpdater) Apply(ctx context.Context, req domain.ApplyRequest) (*domain.Report, error) {
	if !req.Format.Valid() {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidDisplayFormat, int(req.Format))
	}

	site, err := domain.NewSite(req.SiteURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrConnection, err)
	}

	cred, err := u.resolveCredential(ctx, site, req)
	if err != nil {
		return nil, err
	}

	logger.Debug("dateformat: opening session for %s", site)
	session, err := u.opener.Open(ctx, site, *cred)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := session.Close(); cerr != nil {
			logger.Warn("dateformat: close session for %s: %v", site, cerr)
		}
	}()

	report := &domain.Report{SiteURL: site.URL, DryRun: req.DryRun}

	lists, err := session.Lists(ctx)
	if err != nil {
		return report, fmt.Errorf("%w: load lists: %w", domain.ErrRemoteQuery, err)
	}
	logger.Debug("dateformat: %s has %d lists", site, len(lists))

	filter := newTitleFilter(req.ListTitles)
	for _, list := range lists {
		if !filter.match(list.Title) {
			continue
		}
		if err := u.applyToList(ctx, session, list, req, report); err != nil {
			return report, err
		}
	}

	logger.Debug("dateformat: %s done, %d changes across %d lists",
		site, len(report.Changes), report.ListsChanged())
	return report, nil
}

// resolveCredential returns the request credential or asks the credential source.
// Openers that authenticate without a password get whatever the request carries.
func (u *DateFormatUpdater) resolveCredential(
	ctx context.Context, site domain.Site, req domain.ApplyRequest,
) (*domain.Credential, error) {
	if req.Credential.Complete() {
		return req.Credential, nil
	}
	if !u.opener.NeedsCredential() {
		cred := &domain.Credential{Username: req.Username}
		if req.Credential != nil {
			cred.Username = firstNonEmpty(cred.Username, req.Credential.Username)
		}
		return cred, nil
	}
	if u.credentials == nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrAuthentication, domain.ErrCredentialsRequired)
	}

	hint := domain.CredentialHint{Username: req.Username, NoPrompt: req.NoPrompt}
	if hint.Username == "" && req.Credential != nil {
		hint.Username = req.Credential.Username
	}

	resolved, err := u.credentials.Credential(ctx, site, hint)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrAuthentication, err)
	}
	if !resolved.Complete() {
		return nil, fmt.Errorf("%w: %w", domain.ErrAuthentication, domain.ErrCredentialsRequired)
	}
	return resolved, nil
}

// applyToList loads the columns of one list and updates its date/time columns.
func (u *DateFormatUpdater) applyToList(
	ctx context.Context,
	session driven.SiteSession,
	list domain.List,
	req domain.ApplyRequest,
	report *domain.Report,
) error {
	fields, err := session.Fields(ctx, list)
	if err != nil {
		return fmt.Errorf("%w: load fields of list %q: %w", domain.ErrRemoteQuery, list.Title, err)
	}
	report.ListsScanned++
	report.FieldsScanned += len(fields)

	for _, field := range fields {
		dt, ok := field.(*domain.DateTimeField)
		if !ok {
			continue
		}
		if err := u.applyToField(ctx, session, list, dt, req, report); err != nil {
			return err
		}
	}
	return nil
}

// applyToField writes the target format to one date/time column.
func (u *DateFormatUpdater) applyToField(
	ctx context.Context,
	session driven.SiteSession,
	list domain.List,
	field *domain.DateTimeField,
	req domain.ApplyRequest,
	report *domain.Report,
) error {
	change := domain.FieldChange{
		ListTitle:  list.Title,
		FieldTitle: field.Title,
		Before:     field.DisplayFormat,
		After:      req.Format,
	}
	if u.observer != nil {
		u.observer.BeforeChange(change)
	}

	if !req.DryRun {
		if err := session.SetDisplayFormat(ctx, list, field, req.Format); err != nil {
			return fmt.Errorf("%w: list %q field %q: %w", domain.ErrRemoteWrite, list.Title, field.Title, err)
		}
		field.DisplayFormat = req.Format
	}

	report.Changes = append(report.Changes, change)
	// Nothing was committed in a dry run, so there is no after state to report.
	if u.observer != nil && !req.DryRun {
		u.observer.AfterChange(change)
	}
	return nil
}

// titleFilter matches list titles case-insensitively. An empty filter matches all.
type titleFilter map[string]struct{}

func newTitleFilter(titles []string) titleFilter {
	if len(titles) == 0 {
		return nil
	}
	f := make(titleFilter, len(titles))
	for _, t := range titles {
		f[normalizeTitle(t)] = struct{}{}
	}
	return f
}

func (f titleFilter) match(title string) bool {
	if f == nil {
		return true
	}
	_, ok := f[normalizeTitle(title)]
	return ok
}

func normalizeTitle(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
