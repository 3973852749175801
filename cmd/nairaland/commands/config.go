package commands

import (
	"errors"
	"os"
	"time"

	"nairaland-client/internal/nairaland"
	"nairaland-client/lib/configutil"
	"nairaland-client/lib/restyutil"
)

// Config is the contents of nairaland.json5, every field is optional.
type Config struct {
	BaseUrl           string  `json:"base_url"`
	UserAgent         string  `json:"user_agent"`
	TimeoutSeconds    int     `json:"timeout_seconds"`
	RequestsPerSecond float64 `json:"requests_per_second"`
	BrowserTransport  bool    `json:"browser_transport"`
	// the account to log in as, the password is always prompted for
	Username string `json:"username"`
	// boards missing from the built in directory
	Boards         map[string]int `json:"boards"`
	ErrorSelectors []string       `json:"error_selectors"`
}

// loadConfig reads the config at path, a missing file is the same as an
// empty one.
func loadConfig(path string) (Config, error) {
	cfg, err := configutil.ReadConfig[Config](path)
	if errors.Is(err, os.ErrNotExist) {
		return Config{}, nil
	}
	return cfg, err
}

func (c Config) directory() nairaland.Directory {
	if len(c.Boards) == 0 {
		return nairaland.DefaultDirectory()
	}
	return nairaland.DefaultDirectory().With(c.Boards)
}

func (c Config) browserOptions() restyutil.BrowserOptions {
	baseUrl := c.BaseUrl
	if baseUrl == "" {
		baseUrl = nairaland.DefaultBaseUrl
	}
	return restyutil.BrowserOptions{
		BaseUrl:           baseUrl,
		UserAgent:         c.UserAgent,
		Timeout:           time.Duration(c.TimeoutSeconds) * time.Second,
		RequestsPerSecond: c.RequestsPerSecond,
		BrowserTransport:  c.BrowserTransport,
	}
}

func (c Config) clientOptions() nairaland.ClientOptions {
	browser := c.browserOptions()
	boards := c.directory()
	return nairaland.ClientOptions{
		BaseUrl:           browser.BaseUrl,
		UserAgent:         browser.UserAgent,
		Timeout:           browser.Timeout,
		RequestsPerSecond: browser.RequestsPerSecond,
		BrowserTransport:  browser.BrowserTransport,
		ErrorSelectors:    c.ErrorSelectors,
		Boards:            &boards,
	}
}
