package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/LindaBusdiecker/SharePointOnline/internal/core/ports/driving"
	"github.com/LindaBusdiecker/SharePointOnline/internal/logger"
)

var (
	// Version is set by goreleaser ldflags.
	version = "dev"

	// Verbose enables debug logging and per-field diagnostics.
	verbose bool

	// Services holds injected service implementations for CLI commands.
	dateFormatService driving.DateFormatService
	settingsService   driving.SettingsService
)

// Services holds configuration for CLI commands.
type Services struct {
	DateFormat driving.DateFormatService
	Settings   driving.SettingsService
}

// SetServices injects service implementations for CLI commands.
func SetServices(s *Services) {
	if s == nil {
		return
	}
	dateFormatService = s.DateFormat
	settingsService = s.Settings
}

// errReported marks a failure whose details were already printed.
var errReported = errors.New("one or more sites failed")

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "spdatefmt",
	Short: "Set the display format of SharePoint Online date columns",
	Long: `spdatefmt connects to a SharePoint Online site, walks every list and library,
and sets the display format of each date/time column to Unspecified, Disabled
(absolute timestamps) or Relative ("today at 3:00 PM").

Runs stop at the first failure on a site. Changes already committed stay in place.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command and prints any unreported error.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errReported) {
		printError(rootCmd.ErrOrStderr(), err)
	}
	return err
}

// SetVersion sets the version string for the CLI.
func SetVersion(v string) {
	version = v
}

// ReportError prints err as the single error line, for failures that happen
// before the command tree runs.
func ReportError(err error) {
	printError(rootCmd.ErrOrStderr(), err)
}

// printError writes the single error line for a failure.
func printError(w io.Writer, err error) {
	fmt.Fprintln(w, errorStyle.Render("Error - "+err.Error()))
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose debug output")

	// Use PersistentPreRunE to set verbose mode before any command executes
	rootCmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		return nil
	}
}
