package nairaland

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Credentials is the identifier and secret a client logs in with. The
// fields are unexported so a value cannot be changed once built, and every
// way of printing it leaves the secret out.
type Credentials struct {
	identifier string
	secret     string
}

func NewCredentials(identifier, secret string) Credentials {
	return Credentials{identifier: identifier, secret: secret}
}

func (c Credentials) Identifier() string {
	return c.identifier
}

func (c Credentials) validate() error {
	if strings.TrimSpace(c.identifier) == "" {
		return errors.New("identifier is empty")
	}
	if c.secret == "" {
		return errors.New("secret is empty")
	}
	return nil
}

func (c Credentials) String() string {
	return fmt.Sprintf("%s:[redacted]", c.identifier)
}

func (c Credentials) GoString() string {
	return fmt.Sprintf("nairaland.Credentials{identifier: %q, secret: [redacted]}", c.identifier)
}

func (c Credentials) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("identifier", c.identifier),
		slog.String("secret", "[redacted]"),
	)
}
