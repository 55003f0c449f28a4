package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/LindaBusdiecker/SharePointOnline/internal/core/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the config file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with default settings",
	Long: `Write a config file with default settings and the given sites and account.

The file is not overwritten unless --force is given. Passwords are never
written; set SPDATEFMT_PASSWORD or answer the prompt instead.

Examples:
  spdatefmt config init --site https://contoso.sharepoint.com/sites/hr --username admin@contoso.com`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if settingsService == nil {
			return errors.New("settings service not configured")
		}
		fmt.Fprintln(cmd.OutOrStdout(), settingsService.Path())
		return nil
	},
}

// Flags for config init.
var (
	configInitSites    []string
	configInitUsername string
	configInitTenant   string
	configInitForce    bool
)

func init() {
	configInitCmd.Flags().StringArrayVarP(&configInitSites, "site", "s", nil, "site URL to store (can be repeated)")
	configInitCmd.Flags().StringVarP(&configInitUsername, "username", "u", "", "default account")
	configInitCmd.Flags().StringVar(&configInitTenant, "tenant", "", "tenant ID or domain (default organizations)")
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing config file")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	path := settingsService.Path()
	if _, err := os.Stat(path); err == nil && !configInitForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	settings := domain.DefaultSettings()
	settings.Sites = configInitSites
	settings.Auth.Username = configInitUsername
	if configInitTenant != "" {
		settings.Auth.TenantID = configInitTenant
	}

	if err := settingsService.Save(&settings); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("Wrote "+path))
	return nil
}
