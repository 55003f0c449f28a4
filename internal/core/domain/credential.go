package domain

import "fmt"

// Credential is the username/password pair used to open a session.
// It is supplied once per run and never written anywhere.
type Credential struct {
	Username string
	Password string
}

// Complete reports whether both parts are set.
func (c *Credential) Complete() bool {
	return c != nil && c.Username != "" && c.Password != ""
}

// String redacts the password.
func (c Credential) String() string {
	return fmt.Sprintf("Credential{Username: %q, Password: [redacted]}", c.Username)
}

// GoString redacts the password for %#v.
func (c Credential) GoString() string {
	return c.String()
}

// CredentialHint narrows how a credential source may resolve a credential.
type CredentialHint struct {
	// Username preselects the account. Empty lets the source decide.
	Username string
	// NoPrompt forbids asking on the terminal.
	NoPrompt bool
}
