package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/LindaBusdiecker/SharePointOnline/internal/core/domain"
	"github.com/LindaBusdiecker/SharePointOnline/internal/logger"
)

func init() {
	// Assertions compare plain text.
	lipgloss.SetColorProfile(termenv.Ascii)
}

// mockDateFormatService implements driving.DateFormatService for testing.
// Results are keyed by site URL; unknown sites succeed with one change.
type mockDateFormatService struct {
	requests []domain.ApplyRequest
	errs     map[string]error
	reports  map[string]*domain.Report
	observer *ChangePrinter
}

func (m *mockDateFormatService) Apply(_ context.Context, req domain.ApplyRequest) (*domain.Report, error) {
	m.requests = append(m.requests, req)

	change := domain.FieldChange{
		ListTitle:  "appdata",
		FieldTitle: "Modified",
		Before:     domain.DisplayFormatRelative,
		After:      req.Format,
	}
	if m.observer != nil {
		m.observer.BeforeChange(change)
		m.observer.AfterChange(change)
	}

	if err, ok := m.errs[req.SiteURL]; ok {
		return m.reports[req.SiteURL], err
	}
	if report, ok := m.reports[req.SiteURL]; ok {
		return report, nil
	}
	return &domain.Report{
		SiteURL:       req.SiteURL,
		ListsScanned:  1,
		FieldsScanned: 3,
		Changes:       []domain.FieldChange{change},
		DryRun:        req.DryRun,
	}, nil
}

// mockSettingsService implements driving.SettingsService for testing.
type mockSettingsService struct {
	settings *domain.Settings
	err      error
	saveErr  error
	saved    []*domain.Settings
	path     string
}

func (m *mockSettingsService) Get() (*domain.Settings, error) {
	return m.settings, m.err
}

func (m *mockSettingsService) Save(settings *domain.Settings) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, settings)
	return nil
}

func (m *mockSettingsService) Path() string {
	if m.path != "" {
		return m.path
	}
	return "/home/test/.spdatefmt/config.toml"
}

// executeCommand runs the root command with args against the given services
// and returns what it wrote to stdout and stderr.
func executeCommand(t *testing.T, svc *Services, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	oldDateFormat, oldSettings := dateFormatService, settingsService
	dateFormatService, settingsService = nil, nil
	SetServices(svc)

	resetFlags()
	logger.SetOutput(io.Discard)

	outBuf, errBuf := new(bytes.Buffer), new(bytes.Buffer)
	rootCmd.SetOut(outBuf)
	rootCmd.SetErr(errBuf)
	rootCmd.SetArgs(args)

	t.Cleanup(func() {
		dateFormatService, settingsService = oldDateFormat, oldSettings
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		resetFlags()
		logger.SetVerbose(false)
		logger.SetOutput(os.Stderr)
	})

	err = Execute()
	return outBuf.String(), errBuf.String(), err
}

// resetFlags restores every flag to its default between runs; cobra keeps
// parsed values on the package-level commands.
func resetFlags() {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	var visit func(cmd *cobra.Command)
	visit = func(cmd *cobra.Command) {
		cmd.PersistentFlags().VisitAll(reset)
		cmd.Flags().VisitAll(reset)
		for _, sub := range cmd.Commands() {
			visit(sub)
		}
	}
	visit(rootCmd)
	applyTarget = domain.DisplayFormatUnspecified
}

func countLines(s string) int {
	return len(strings.Split(strings.TrimRight(s, "\n"), "\n"))
}
