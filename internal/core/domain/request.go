package domain

// ApplyRequest is the input to one display format run against one site.
type ApplyRequest struct {
	// SiteURL is the absolute https address of the web.
	SiteURL string
	// Format is the display format every date/time column is set to.
	Format DisplayFormat
	// Credential is used directly when complete; otherwise the configured
	// credential source is asked for one.
	Credential *Credential
	// Username and NoPrompt are passed to the credential source when
	// Credential is nil or incomplete.
	Username string
	NoPrompt bool
	// ListTitles restricts the run to these lists (case-insensitive). Empty means all.
	ListTitles []string
	// DryRun reports the changes without committing them.
	DryRun bool
}
