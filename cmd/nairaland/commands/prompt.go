package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"nairaland-client/internal/nairaland"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// prompter asks the user for input on the command's stdin, secrets are read
// without echo when stdin is a terminal.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
	// -1 when stdin is not a terminal
	fd int
}

func newPrompter(cmd *cobra.Command) prompter {
	fd := -1
	if file, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		fd = int(file.Fd())
	}
	return prompter{
		in:  bufio.NewReader(cmd.InOrStdin()),
		out: cmd.ErrOrStderr(),
		fd:  fd,
	}
}

func (p prompter) line(label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)
	text, err := p.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || text == "") {
		return "", fmt.Errorf("read %s: %w", strings.ToLower(label), err)
	}
	return strings.TrimRight(text, "\r\n"), nil
}

func (p prompter) secret(label string) (string, error) {
	if p.fd < 0 {
		return p.line(label)
	}

	fmt.Fprintf(p.out, "%s: ", label)
	secret, err := term.ReadPassword(p.fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", strings.ToLower(label), err)
	}
	return string(secret), nil
}

// readSecretFile reads a secret from path, trailing newlines are stripped.
func readSecretFile(path string) (string, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	secret := strings.TrimRight(string(contents), "\r\n")
	if secret == "" {
		return "", fmt.Errorf("%s is empty", path)
	}
	return secret, nil
}

// login collects the credentials to log in with. identifier is only
// prompted for when it is empty, the password comes from passwordFile when
// one is given.
func (p prompter) login(identifier, passwordFile string) (nairaland.Credentials, string, error) {
	var err error
	if identifier == "" {
		identifier, err = p.line("Username")
		if err != nil {
			return nairaland.Credentials{}, "", err
		}
		identifier = strings.TrimSpace(identifier)
	}
	if identifier == "" {
		return nairaland.Credentials{}, "", errors.New("a username is required")
	}

	var secret string
	if passwordFile != "" {
		secret, err = readSecretFile(passwordFile)
	} else {
		secret, err = p.secret("Password")
	}
	if err != nil {
		return nairaland.Credentials{}, "", err
	}
	return nairaland.NewCredentials(identifier, secret), secret, nil
}

// newSecret asks for a new password twice.
func (p prompter) newSecret() (string, error) {
	first, err := p.secret("New password")
	if err != nil {
		return "", err
	}
	if first == "" {
		return "", errors.New("the new password is empty")
	}
	second, err := p.secret("Repeat new password")
	if err != nil {
		return "", err
	}
	if first != second {
		return "", errors.New("the passwords do not match")
	}
	return first, nil
}
