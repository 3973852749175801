package nairaland

import (
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"
)

func TestExtractSessionToken(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/direct", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "from-response", Path: "/"})
		w.Write([]byte(`<input type="hidden" name="session" value="from-body">`))
	})
	mux.HandleFunc("/redirect", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "from-jar", Path: "/"})
		http.Redirect(w, r, "/landing", http.StatusSeeOther)
	})
	mux.HandleFunc("/landing", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<p>welcome</p>`))
	})
	mux.HandleFunc("/body", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<form><input type="hidden" name="session" value="from-body"></form>`))
	})
	mux.HandleFunc("/none", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<p>nothing here</p>`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	base, err := url.Parse(srv.URL)
	require.NoError(t, err)

	table := []struct {
		path     string
		expected string
	}{
		{path: "/direct", expected: "from-response"},
		{path: "/redirect", expected: "from-jar"},
		{path: "/body", expected: "from-body"},
		{path: "/none", expected: ""},
	}

	for _, row := range table {
		jar, err := cookiejar.New(nil)
		require.NoError(t, err)
		client := resty.New().SetBaseURL(srv.URL).SetCookieJar(jar)

		res, err := client.R().Get(row.path)
		require.NoError(t, err)
		require.Equal(t, row.expected, extractSessionToken(res, jar, base), row.path)
	}
}
