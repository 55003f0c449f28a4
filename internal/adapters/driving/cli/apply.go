package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/LindaBusdiecker/SharePointOnline/internal/core/domain"
	"github.com/LindaBusdiecker/SharePointOnline/internal/core/ports/driven"
	"github.com/LindaBusdiecker/SharePointOnline/internal/logger"
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Set the display format of every date/time column on a site",
	Long: `Set the display format of every date/time column on one or more sites.

The password is read from SPDATEFMT_PASSWORD (a .env file in the working
directory is loaded first). Without it, spdatefmt asks on the terminal unless
--no-prompt is given or stdin is not a terminal.

Sites are processed one after another. A failure on one site does not stop the
next, but the command exits non-zero.

Examples:
  # Switch every date column to absolute timestamps
  spdatefmt apply --site https://contoso.sharepoint.com/sites/hr --format Disabled

  # Preview the changes on two lists, showing each field
  spdatefmt apply -s https://contoso.sharepoint.com -f Relative -l Documents -l Events --dry-run -v`,
	Args:    cobra.NoArgs,
	PreRunE: validateApplyFlags,
	RunE:    runApply,
}

// Flags for apply.
var (
	applySites    []string
	applyFormat   string
	applyUsername string
	applyLists    []string
	applyDryRun   bool
	applyNoPrompt bool

	// applyTarget is the parsed --format value.
	applyTarget domain.DisplayFormat
)

func init() {
	applyCmd.Flags().StringArrayVarP(&applySites, "site", "s", nil,
		"site URL (can be repeated; defaults to sites in the config file)")
	applyCmd.Flags().StringVarP(&applyFormat, "format", "f", "",
		"display format: Undefined, Unspecified, Disabled or Relative")
	applyCmd.Flags().StringVarP(&applyUsername, "username", "u", "",
		"account to sign in with (defaults to auth.username in the config file)")
	applyCmd.Flags().StringArrayVarP(&applyLists, "list", "l", nil,
		"only process the list with this title (can be repeated)")
	applyCmd.Flags().BoolVar(&applyDryRun, "dry-run", false, "report changes without writing them")
	applyCmd.Flags().BoolVar(&applyNoPrompt, "no-prompt", false, "never ask for a password on the terminal")
	_ = applyCmd.MarkFlagRequired("format")

	rootCmd.AddCommand(applyCmd)
}

// validateApplyFlags rejects a missing or bad format before any network call.
// Cobra checks required flags only after PreRunE, so it is done here.
func validateApplyFlags(cmd *cobra.Command, _ []string) error {
	if err := cmd.ValidateRequiredFlags(); err != nil {
		return err
	}
	format, err := domain.ParseDisplayFormat(applyFormat)
	if err != nil {
		return err
	}
	applyTarget = format
	return nil
}

func runApply(cmd *cobra.Command, _ []string) error {
	if dateFormatService == nil {
		return errServiceUnavailable()
	}

	sites, err := resolveSites()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	failed := 0
	for _, site := range sites {
		report, err := dateFormatService.Apply(ctx, domain.ApplyRequest{
			SiteURL:    site,
			Format:     applyTarget,
			Username:   applyUsername,
			NoPrompt:   applyNoPrompt,
			ListTitles: applyLists,
			DryRun:     applyDryRun,
		})
		if err != nil {
			failed++
			printError(cmd.ErrOrStderr(), fmt.Errorf("%s: %w", site, err))
			if report != nil && len(report.Changes) > 0 {
				logger.Warn("%d field(s) on %s were updated before the failure", len(report.Changes), site)
			}
			continue
		}
		printSummary(cmd.OutOrStdout(), report)
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", errReported, failed, len(sites))
	}
	return nil
}

// errServiceUnavailable explains why no date format service was injected. The
// composition root leaves it out when the settings could not be loaded.
func errServiceUnavailable() error {
	if settingsService != nil {
		if _, err := settingsService.Get(); err != nil {
			return err
		}
	}
	return errors.New("date format service not configured")
}

// resolveSites returns the --site values, falling back to the config file.
func resolveSites() ([]string, error) {
	if len(applySites) > 0 {
		return applySites, nil
	}
	if settingsService == nil {
		return nil, errors.New("no site given: pass --site")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return nil, err
	}
	if len(settings.Sites) == 0 {
		return nil, fmt.Errorf("no site given: pass --site or set sites in %s", settingsService.Path())
	}
	return settings.Sites, nil
}

func printSummary(w io.Writer, report *domain.Report) {
	verb := "Updated"
	suffix := ""
	if report.DryRun {
		verb = "Would update"
		suffix = dimStyle.Render(" (dry run)")
	}
	line := fmt.Sprintf("%s %d date/time field(s) across %d list(s) on %s",
		verb, len(report.Changes), report.ListsChanged(), report.SiteURL)
	fmt.Fprintln(w, successStyle.Render(line)+suffix)
	logger.Debug("cli: scanned %d list(s), %d field(s) on %s",
		report.ListsScanned, report.FieldsScanned, report.SiteURL)
}

// Ensure ChangePrinter implements the interface.
var _ driven.ChangeObserver = (*ChangePrinter)(nil)

// ChangePrinter writes the before and after line of every field change to the
// apply command's output while verbose output is on.
type ChangePrinter struct {
	out func() io.Writer
}

// NewChangePrinter creates a ChangePrinter bound to the apply command.
func NewChangePrinter() *ChangePrinter {
	return &ChangePrinter{out: applyCmd.OutOrStdout}
}

// BeforeChange implements driven.ChangeObserver.
func (p *ChangePrinter) BeforeChange(change domain.FieldChange) {
	if logger.IsVerbose() {
		fmt.Fprintln(p.out(), change.BeforeLine())
	}
}

// AfterChange implements driven.ChangeObserver.
func (p *ChangePrinter) AfterChange(change domain.FieldChange) {
	if logger.IsVerbose() {
		fmt.Fprintln(p.out(), change.AfterLine())
	}
}
