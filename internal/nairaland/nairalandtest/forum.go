// Package nairalandtest runs a fake nairaland forum for tests. It speaks the
// same form endpoints as the real forum and records every request it gets.
package nairalandtest

import (
	"fmt"
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"
	"testing"
)

type Request struct {
	Method    string
	Path      string
	Form      url.Values
	Cookie    string
	UserAgent string
}

type Topic struct {
	Author string
	Title  string
	Body   string
	Board  int
}

type Follow struct {
	Follower string
	Member   string
}

type Featured struct {
	Title string
	Href  string
}

type Forum struct {
	Server *httptest.Server

	mu            sync.Mutex
	accounts      map[string]string
	sessions      map[string]string
	requests      []Request
	statuses      map[string]int
	sessionInBody bool
	nextSession   int

	topics        []Topic
	follows       []Follow
	deactivations []string
	featured      []Featured
}

// NewForum starts a fake forum that is shut down when the test ends.
func NewForum(t testing.TB) *Forum {
	f := &Forum{
		accounts: map[string]string{},
		sessions: map[string]string{},
		statuses: map[string]int{},
	}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.Server.Close)
	return f
}

func (f *Forum) URL() string {
	return f.Server.URL
}

func (f *Forum) AddAccount(name, password string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accounts[name] = password
}

func (f *Forum) Password(name string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.accounts[name]
}

// FailWith makes every request to path answer with status.
func (f *Forum) FailWith(path string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statuses[path] = status
}

// SessionInBody makes logins hand out the session token as a hidden input
// instead of a cookie.
func (f *Forum) SessionInBody(enabled bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessionInBody = enabled
}

func (f *Forum) SetFeatured(featured []Featured) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.featured = featured
}

// Requests returns every request made to path, in order.
func (f *Forum) Requests(path string) []Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []Request
	for _, r := range f.requests {
		if r.Path == path {
			out = append(out, r)
		}
	}
	return out
}

func (f *Forum) Count(path string) int {
	return len(f.Requests(path))
}

func (f *Forum) Total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func (f *Forum) ActiveSessions() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sessions)
}

func (f *Forum) Topics() []Topic {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Topic(nil), f.topics...)
}

func (f *Forum) Follows() []Follow {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Follow(nil), f.follows...)
}

func (f *Forum) Deactivations() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.deactivations...)
}

var pages = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html><head><title>Nairaland Forum</title></head><body>
{{if .User}}<p class="greeting">Welcome, {{.User}}</p>{{else}}
<form action="/do_login" method="post">
	<input type="text" name="name"><input type="password" name="password">
	<input type="submit" value="Login">
</form>{{end}}
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
{{if .Message}}<p class="message">{{.Message}}</p>{{end}}
{{if .Session}}<input type="hidden" name="session" value="{{.Session}}">{{end}}
{{if .ConfirmToken}}
<form action="/do_send_confirmation_email_for_account_deactivation" method="post">
	<input type="hidden" name="confirm" value="{{.ConfirmToken}}">
	<input type="submit" value="Send confirmation email">
</form>{{end}}
{{if .Featured}}<table><tr><td class="featured w">
{{range .Featured}}<a href="{{.Href}}">{{.Title}}</a>
{{end}}</td></tr></table>{{end}}
</body></html>`))

type page struct {
	User         string
	Error        string
	Message      string
	Session      string
	ConfirmToken string
	Featured     []Featured
}

func render(w http.ResponseWriter, status int, p page) {
	w.Header().Set("content-type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	pages.Execute(w, p)
}

func (f *Forum) serve(w http.ResponseWriter, r *http.Request) {
	r.ParseForm()

	cookie := ""
	if c, err := r.Cookie("session"); err == nil {
		cookie = c.Value
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.requests = append(f.requests, Request{
		Method:    r.Method,
		Path:      r.URL.Path,
		Form:      r.PostForm,
		Cookie:    cookie,
		UserAgent: r.UserAgent(),
	})

	if status, ok := f.statuses[r.URL.Path]; ok {
		render(w, status, page{Message: "Something went wrong"})
		return
	}

	if r.Method == http.MethodGet && r.URL.Path == "/" {
		render(w, http.StatusOK, page{User: f.sessions[cookie], Featured: f.featured})
		return
	}
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	switch r.URL.Path {
	case "/do_login":
		f.login(w, r)
		return
	case "/do_logout":
		delete(f.sessions, r.PostForm.Get("session"))
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "", Path: "/", MaxAge: -1})
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	token := r.PostForm.Get("session")
	user, ok := f.sessions[token]
	if !ok || (cookie != "" && cookie != token) {
		render(w, http.StatusOK, page{Error: "You must be logged in to do that"})
		return
	}

	switch r.URL.Path {
	case "/do_newtopic":
		board, err := strconv.Atoi(r.PostForm.Get("board"))
		if err != nil {
			render(w, http.StatusOK, page{User: user, Error: "Invalid board"})
			return
		}
		f.topics = append(f.topics, Topic{
			Author: user,
			Title:  r.PostForm.Get("title"),
			Body:   r.PostForm.Get("body"),
			Board:  board,
		})
		render(w, http.StatusOK, page{User: user, Message: fmt.Sprintf("Topic %d created", len(f.topics))})
	case "/do_changepass":
		if r.PostForm.Get("oldpassword") != f.accounts[user] {
			render(w, http.StatusOK, page{User: user, Error: "Your old password is incorrect"})
			return
		}
		if r.PostForm.Get("password") != r.PostForm.Get("password2") {
			render(w, http.StatusOK, page{User: user, Error: "The passwords do not match"})
			return
		}
		f.accounts[user] = r.PostForm.Get("password")
		render(w, http.StatusOK, page{User: user, Message: "Password changed"})
	case "/do_followmember":
		f.follows = append(f.follows, Follow{Follower: user, Member: r.PostForm.Get("member")})
		render(w, http.StatusOK, page{User: user, Message: "You are now following " + r.PostForm.Get("member")})
	case "/send_confirmation_email_for_account_deactivation":
		render(w, http.StatusOK, page{User: user, ConfirmToken: "confirm-" + user})
	case "/do_send_confirmation_email_for_account_deactivation":
		if r.PostForm.Get("confirm") != "confirm-"+user {
			render(w, http.StatusOK, page{User: user, Error: "Invalid confirmation"})
			return
		}
		f.deactivations = append(f.deactivations, user)
		render(w, http.StatusOK, page{User: user, Message: "A confirmation email has been sent"})
	default:
		http.NotFound(w, r)
	}
}

func (f *Forum) login(w http.ResponseWriter, r *http.Request) {
	name := r.PostForm.Get("name")
	password, ok := f.accounts[name]
	if !ok || password != r.PostForm.Get("password") {
		render(w, http.StatusOK, page{Error: "Incorrect username or password"})
		return
	}

	f.nextSession++
	token := fmt.Sprintf("sess-%d", f.nextSession)
	f.sessions[token] = name

	if f.sessionInBody {
		render(w, http.StatusOK, page{User: name, Session: token})
		return
	}
	http.SetCookie(w, &http.Cookie{Name: "session", Value: token, Path: "/"})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
