package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LindaBusdiecker/SharePointOnline/internal/core/domain"
)

const (
	hrSite      = "https://contoso.sharepoint.com/sites/hr"
	financeSite = "https://contoso.sharepoint.com/sites/finance"
)

func TestApply_Success(t *testing.T) {
	// Given
	svc := &mockDateFormatService{}

	// When
	stdout, stderr, err := executeCommand(t, &Services{DateFormat: svc},
		"apply", "--site", hrSite, "--format", "Disabled", "--username", "admin@contoso.com",
		"--list", "appdata", "--no-prompt")

	// Then
	require.NoError(t, err)
	assert.Empty(t, stderr)
	assert.Equal(t, "Updated 1 date/time field(s) across 1 list(s) on "+hrSite+"\n", stdout)

	require.Len(t, svc.requests, 1)
	req := svc.requests[0]
	assert.Equal(t, hrSite, req.SiteURL)
	assert.Equal(t, domain.DisplayFormatDisabled, req.Format)
	assert.Equal(t, "admin@contoso.com", req.Username)
	assert.True(t, req.NoPrompt)
	assert.False(t, req.DryRun)
	assert.Equal(t, []string{"appdata"}, req.ListTitles)
	assert.Nil(t, req.Credential)
}

func TestApply_FormatNames(t *testing.T) {
	tests := []struct {
		arg  string
		want domain.DisplayFormat
	}{
		{arg: "Undefined", want: domain.DisplayFormatUnspecified},
		{arg: "unspecified", want: domain.DisplayFormatUnspecified},
		{arg: "DISABLED", want: domain.DisplayFormatDisabled},
		{arg: "Relative", want: domain.DisplayFormatRelative},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			svc := &mockDateFormatService{}

			_, _, err := executeCommand(t, &Services{DateFormat: svc}, "apply", "-s", hrSite, "-f", tt.arg)

			require.NoError(t, err)
			require.Len(t, svc.requests, 1)
			assert.Equal(t, tt.want, svc.requests[0].Format)
		})
	}
}

func TestApply_InvalidFormat(t *testing.T) {
	// Given
	svc := &mockDateFormatService{}

	// When
	stdout, stderr, err := executeCommand(t, &Services{DateFormat: svc},
		"apply", "--site", hrSite, "--format", "Maybe", "-v")

	// Then
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidDisplayFormat)
	assert.Empty(t, svc.requests, "no remote call may be made")
	assert.Empty(t, stdout)
	assert.Equal(t, 1, countLines(stderr))
	assert.Contains(t, stderr, "Error - invalid display format")
	assert.Contains(t, stderr, "Maybe")
}

func TestApply_FormatRequired(t *testing.T) {
	// Given
	svc := &mockDateFormatService{}

	// When
	_, stderr, err := executeCommand(t, &Services{DateFormat: svc}, "apply", "--site", hrSite)

	// Then
	require.Error(t, err)
	assert.Equal(t, "Error - required flag(s) \"format\" not set\n", stderr)
	assert.NotContains(t, stderr, "invalid display format")
	assert.Empty(t, svc.requests)
}

func TestApply_VerboseDiagnostics(t *testing.T) {
	// Given
	svc := &mockDateFormatService{}
	svc.observer = NewChangePrinter()

	// When
	stdout, _, err := executeCommand(t, &Services{DateFormat: svc},
		"apply", "--site", hrSite, "--format", "Disabled", "--verbose")

	// Then
	require.NoError(t, err)
	assert.Contains(t, stdout, "Before: List [appdata], Field [Modified] value: [Relative]\n")
	assert.Contains(t, stdout, "After: List [appdata], Field [Modified] value: [Disabled]\n")
}

func TestApply_QuietHidesDiagnostics(t *testing.T) {
	svc := &mockDateFormatService{}
	svc.observer = NewChangePrinter()

	stdout, _, err := executeCommand(t, &Services{DateFormat: svc},
		"apply", "--site", hrSite, "--format", "Disabled")

	require.NoError(t, err)
	assert.NotContains(t, stdout, "Before:")
	assert.NotContains(t, stdout, "After:")
}

func TestApply_AuthenticationFailure(t *testing.T) {
	// Given
	svc := &mockDateFormatService{
		errs: map[string]error{
			hrSite: fmt.Errorf("%w: invalid_grant: AADSTS50126", domain.ErrAuthentication),
		},
	}

	// When
	stdout, stderr, err := executeCommand(t, &Services{DateFormat: svc},
		"apply", "--site", hrSite, "--format", "Disabled")

	// Then
	require.Error(t, err)
	assert.ErrorIs(t, err, errReported)
	assert.NotContains(t, stdout, "Updated")
	assert.Equal(t, 1, countLines(stderr))
	assert.Equal(t, "Error - "+hrSite+": authentication failed: invalid_grant: AADSTS50126\n", stderr)
}

func TestApply_MultipleSitesContinueAfterFailure(t *testing.T) {
	// Given
	svc := &mockDateFormatService{
		errs: map[string]error{
			hrSite: fmt.Errorf("%w: load fields of list %q: boom", domain.ErrRemoteQuery, "Documents"),
		},
		reports: map[string]*domain.Report{
			hrSite: {SiteURL: hrSite, Changes: []domain.FieldChange{{ListTitle: "appdata"}}},
		},
	}

	// When
	stdout, stderr, err := executeCommand(t, &Services{DateFormat: svc},
		"apply", "--site", hrSite, "--site", financeSite, "--format", "Relative")

	// Then
	require.Error(t, err)
	assert.ErrorIs(t, err, errReported)
	require.Len(t, svc.requests, 2)
	assert.Equal(t, financeSite, svc.requests[1].SiteURL)
	assert.Equal(t, 1, countLines(stderr))
	assert.Contains(t, stderr, "remote query failed")
	assert.Contains(t, stdout, "on "+financeSite)
}

func TestApply_DryRun(t *testing.T) {
	svc := &mockDateFormatService{}

	stdout, _, err := executeCommand(t, &Services{DateFormat: svc},
		"apply", "--site", hrSite, "--format", "Disabled", "--dry-run")

	require.NoError(t, err)
	assert.True(t, svc.requests[0].DryRun)
	assert.Contains(t, stdout, "Would update 1 date/time field(s) across 1 list(s) on "+hrSite)
	assert.Contains(t, stdout, "(dry run)")
}

func TestApply_SitesFromSettings(t *testing.T) {
	tests := []struct {
		name      string
		settings  *mockSettingsService
		wantSites []string
		wantErr   string
	}{
		{
			name: "configured sites",
			settings: &mockSettingsService{settings: &domain.Settings{
				Sites: []string{hrSite, financeSite},
			}},
			wantSites: []string{hrSite, financeSite},
		},
		{
			name:     "no sites configured",
			settings: &mockSettingsService{settings: &domain.Settings{}},
			wantErr:  "set sites in /home/test/.spdatefmt/config.toml",
		},
		{
			name:     "settings fail to load",
			settings: &mockSettingsService{err: errors.New("parse config: bad")},
			wantErr:  "parse config: bad",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockDateFormatService{}

			_, stderr, err := executeCommand(t, &Services{DateFormat: svc, Settings: tt.settings},
				"apply", "--format", "Disabled")

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, stderr, tt.wantErr)
				assert.Empty(t, svc.requests)
				return
			}
			require.NoError(t, err)
			sites := make([]string, 0, len(svc.requests))
			for _, r := range svc.requests {
				sites = append(sites, r.SiteURL)
			}
			assert.Equal(t, tt.wantSites, sites)
		})
	}
}

func TestApply_SettingsErrorExplainsMissingService(t *testing.T) {
	settings := &mockSettingsService{err: errors.New("load settings: parse config: bad key")}

	_, stderr, err := executeCommand(t, &Services{Settings: settings},
		"apply", "--site", hrSite, "--format", "Disabled")

	require.Error(t, err)
	assert.Equal(t, "Error - load settings: parse config: bad key\n", stderr)
}

func TestApply_NoServiceConfigured(t *testing.T) {
	_, stderr, err := executeCommand(t, nil, "apply", "--site", hrSite, "--format", "Disabled")

	require.Error(t, err)
	assert.Contains(t, stderr, "date format service not configured")
}
