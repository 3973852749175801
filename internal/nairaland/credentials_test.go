package nairaland

import (
	"bytes"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCredentialsRedaction(t *testing.T) {
	creds := NewCredentials("pystar", "s3cr3t-value")
	require.Equal(t, "pystar", creds.Identifier())

	for _, format := range []string{"%v", "%+v", "%s", "%#v"} {
		out := fmt.Sprintf(format, creds)
		require.NotContains(t, out, "s3cr3t-value", format)
		require.Contains(t, out, "pystar", format)
	}

	var buffer bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buffer, nil))
	logger.Info("logging in", "creds", creds)
	require.NotContains(t, buffer.String(), "s3cr3t-value")
	require.Contains(t, buffer.String(), "pystar")
}

func TestCredentialsValidate(t *testing.T) {
	require.NoError(t, NewCredentials("pystar", "x").validate())
	require.Error(t, NewCredentials(" ", "x").validate())
	require.Error(t, NewCredentials("pystar", "").validate())
}
