package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/LindaBusdiecker/SharePointOnline/internal/adapters/driven/config/file"
	"github.com/LindaBusdiecker/SharePointOnline/internal/adapters/driven/credentials"
	"github.com/LindaBusdiecker/SharePointOnline/internal/adapters/driving/cli"
	"github.com/LindaBusdiecker/SharePointOnline/internal/connectors/sharepoint"
	"github.com/LindaBusdiecker/SharePointOnline/internal/core/domain"
	"github.com/LindaBusdiecker/SharePointOnline/internal/core/services"
)

var version = "dev"

// envAccessToken supplies a pre-acquired bearer token, bypassing the password grant.
const envAccessToken = "SPDATEFMT_ACCESS_TOKEN"

func main() {
	os.Exit(run())
}

func run() int {
	cli.SetVersion(version)

	// Secrets may live in a .env file next to the invocation
	if err := file.LoadEnvFile(""); err != nil {
		cli.ReportError(fmt.Errorf("load .env: %w", err))
		return 1
	}

	configStore, err := file.NewConfigStore("")
	if err != nil {
		cli.ReportError(fmt.Errorf("create config store: %w", err))
		return 1
	}
	settingsSvc := services.NewSettingsService(configStore)

	svc := &cli.Services{Settings: settingsSvc}

	// A broken config file only fails the commands that need it; apply
	// reports the settings error itself when the updater is missing.
	if settings, err := settingsSvc.Get(); err == nil {
		svc.DateFormat = newUpdater(settings)
	}

	// Inject services into CLI commands
	cli.SetServices(svc)

	if err := cli.Execute(); err != nil {
		return 1
	}
	return 0
}

// newUpdater wires the SharePoint connector and credential sources.
func newUpdater(settings *domain.Settings) *services.DateFormatUpdater {
	httpClient := &http.Client{Timeout: settings.HTTPTimeout.Std()}

	authenticator := sharepoint.NewAuthenticator(sharepoint.AuthConfig{
		TenantID:      settings.Auth.TenantID,
		ClientID:      settings.Auth.ClientID,
		AuthorityHost: settings.Auth.AuthorityHost,
		AccessToken:   os.Getenv(envAccessToken),
	}, httpClient)

	connector := sharepoint.New(authenticator, sharepoint.Config{
		RateLimit: sharepoint.RateLimitConfig{
			RequestsPerSecond: settings.RateLimit.RequestsPerSecond,
			BurstSize:         settings.RateLimit.Burst,
		},
		Timeout:   settings.HTTPTimeout.Std(),
		UserAgent: sharepoint.UserAgent(version),
	}, nil)

	// Environment first, then the terminal when one is attached
	credentialSource := credentials.Chain{
		credentials.NewEnvSource(settings.Auth.Username),
		credentials.NewPromptSource(settings.Auth.Username),
	}

	updater := services.NewDateFormatUpdater(connector, credentialSource)
	updater.SetObserver(cli.NewChangePrinter())
	return updater
}
