package credentials

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/LindaBusdiecker/SharePointOnline/internal/core/domain"
)

// PromptSource asks for the username and password on the terminal.
type PromptSource struct {
	// DefaultUsername skips the username question when set.
	DefaultUsername string

	in           io.Reader
	out          io.Writer
	fd           int
	isTerminal   func(fd int) bool
	readPassword func(fd int) ([]byte, error)
}

// NewPromptSource creates a prompt source on stdin, writing questions to stderr.
func NewPromptSource(defaultUsername string) *PromptSource {
	return &PromptSource{
		DefaultUsername: defaultUsername,
		in:              os.Stdin,
		out:             os.Stderr,
		fd:              int(os.Stdin.Fd()),
		isTerminal:      term.IsTerminal,
		readPassword:    term.ReadPassword,
	}
}

// Credential implements driven.CredentialSource.
func (p *PromptSource) Credential(
	ctx context.Context, site domain.Site, hint domain.CredentialHint,
) (*domain.Credential, error) {
	if hint.NoPrompt {
		return nil, fmt.Errorf("%w: prompting disabled", domain.ErrCredentialsRequired)
	}
	if !p.isTerminal(p.fd) {
		return nil, fmt.Errorf("%w: stdin is not a terminal", domain.ErrCredentialsRequired)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fmt.Fprintf(p.out, "Sign in to %s\n", site)

	username := firstNonEmpty(hint.Username, p.DefaultUsername)
	if username == "" {
		fmt.Fprint(p.out, "Username: ")
		line, err := bufio.NewReader(p.in).ReadString('\n')
		if err != nil && line == "" {
			return nil, fmt.Errorf("read username: %w", err)
		}
		username = strings.TrimSpace(line)
		if username == "" {
			return nil, fmt.Errorf("%w: no username entered", domain.ErrCredentialsRequired)
		}
	}

	fmt.Fprintf(p.out, "Password for %s: ", username)
	password, err := p.readPassword(p.fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return nil, fmt.Errorf("read password: %w", err)
	}
	if len(password) == 0 {
		return nil, fmt.Errorf("%w: no password entered", domain.ErrCredentialsRequired)
	}

	return &domain.Credential{Username: username, Password: string(password)}, nil
}
