package file

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LindaBusdiecker/SharePointOnline/internal/core/domain"
)

func newTestStore(t *testing.T, env map[string]string) *ConfigStore {
	t.Helper()
	store, err := NewConfigStore(filepath.Join(t.TempDir(), "spdatefmt", "config.toml"))
	require.NoError(t, err)
	store.lookup = func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
	return store
}

func writeConfig(t *testing.T, store *ConfigStore, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(store.Path()), 0700))
	require.NoError(t, os.WriteFile(store.Path(), []byte(content), 0600))
}

func TestNewConfigStore_PathFromEnv(t *testing.T) {
	want := filepath.Join(t.TempDir(), "custom.toml")
	t.Setenv(EnvConfigPath, want)

	store, err := NewConfigStore("")

	require.NoError(t, err)
	assert.Equal(t, want, store.Path())
}

func TestNewConfigStore_DefaultPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(EnvConfigPath, "")

	store, err := NewConfigStore("")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".spdatefmt", "config.toml"), store.Path())
}

func TestConfigStore_Load_MissingFile(t *testing.T) {
	store := newTestStore(t, nil)

	settings, err := store.Load()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), *settings)
}

func TestConfigStore_Load_File(t *testing.T) {
	store := newTestStore(t, nil)
	writeConfig(t, store, `
sites = ["https://contoso.sharepoint.com/sites/hr"]
http_timeout = "15s"

[auth]
tenant_id = "contoso.onmicrosoft.com"
username = "admin@contoso.onmicrosoft.com"

[rate_limit]
requests_per_second = 2.5
`)

	settings, err := store.Load()

	require.NoError(t, err)
	assert.Equal(t, []string{"https://contoso.sharepoint.com/sites/hr"}, settings.Sites)
	assert.Equal(t, 15*time.Second, settings.HTTPTimeout.Std())
	assert.Equal(t, "contoso.onmicrosoft.com", settings.Auth.TenantID)
	assert.Equal(t, "admin@contoso.onmicrosoft.com", settings.Auth.Username)
	assert.Equal(t, 2.5, settings.RateLimit.RequestsPerSecond)
	// Unset keys keep their defaults.
	assert.Equal(t, domain.DefaultClientID, settings.Auth.ClientID)
	assert.Equal(t, domain.DefaultBurst, settings.RateLimit.Burst)
}

func TestConfigStore_Load_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{name: "syntax", content: "sites = [", wantMsg: "parse config"},
		{name: "unknown key", content: "[auth]\npassword = \"hunter2\"\n", wantMsg: "parse config"},
		{name: "bad duration", content: "http_timeout = \"soon\"\n", wantMsg: "parse config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore(t, nil)
			writeConfig(t, store, tt.content)

			_, err := store.Load()

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestConfigStore_Load_EnvOverrides(t *testing.T) {
	store := newTestStore(t, map[string]string{
		EnvTenantID:      "fabrikam.onmicrosoft.com",
		EnvClientID:      "11111111-2222-3333-4444-555555555555",
		EnvUsername:      "ops@fabrikam.com",
		EnvAuthorityHost: "https://login.microsoftonline.us",
		EnvSites:         " https://fabrikam.sharepoint.com/sites/a , ,https://fabrikam.sharepoint.com/sites/b",
	})
	writeConfig(t, store, "[auth]\ntenant_id = \"contoso.onmicrosoft.com\"\n")

	settings, err := store.Load()

	require.NoError(t, err)
	assert.Equal(t, "fabrikam.onmicrosoft.com", settings.Auth.TenantID)
	assert.Equal(t, "11111111-2222-3333-4444-555555555555", settings.Auth.ClientID)
	assert.Equal(t, "ops@fabrikam.com", settings.Auth.Username)
	assert.Equal(t, "https://login.microsoftonline.us", settings.Auth.AuthorityHost)
	assert.Equal(t, []string{
		"https://fabrikam.sharepoint.com/sites/a",
		"https://fabrikam.sharepoint.com/sites/b",
	}, settings.Sites)
}

func TestConfigStore_SaveThenLoad(t *testing.T) {
	store := newTestStore(t, nil)
	settings := domain.DefaultSettings()
	settings.Sites = []string{"https://contoso.sharepoint.com"}
	settings.Auth.Username = "admin@contoso.com"
	settings.HTTPTimeout = domain.Duration(90 * time.Second)

	require.NoError(t, store.Save(&settings))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, settings, *loaded)
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("SPDATEFMT_TEST_A=from-file\nSPDATEFMT_TEST_B=from-file\n"), 0600))
	t.Setenv("SPDATEFMT_TEST_A", "")
	t.Setenv("SPDATEFMT_TEST_B", "already-set")
	os.Unsetenv("SPDATEFMT_TEST_A")

	require.NoError(t, LoadEnvFile(path))

	assert.Equal(t, "from-file", os.Getenv("SPDATEFMT_TEST_A"))
	assert.Equal(t, "already-set", os.Getenv("SPDATEFMT_TEST_B"))
}

func TestLoadEnvFile_Missing(t *testing.T) {
	assert.NoError(t, LoadEnvFile(filepath.Join(t.TempDir(), "nope.env")))
}
