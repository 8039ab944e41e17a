//go:build integration

package integration

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// fakeUser is an account on the fake quote API.
type fakeUser struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	password string
}

type fakeNamed struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// fakeQuote is sent the way the real API does: numeric ids and 0/1 flags.
type fakeQuote struct {
	ID          int         `json:"id"`
	Content     string      `json:"content"`
	Author      string      `json:"author"`
	Source      *string     `json:"source"`
	CategoryID  *int        `json:"category_id"`
	Category    *fakeNamed  `json:"category"`
	Tags        []fakeNamed `json:"tags"`
	LikesCount  int         `json:"likes_count"`
	IsLiked     int         `json:"is_liked"`
	IsFavorited int         `json:"is_favorited"`
}

type fakeQuoteRequest struct {
	Content    string `json:"content"`
	Author     string `json:"author"`
	Source     string `json:"source"`
	CategoryID *int   `json:"category_id"`
	Tags       []int  `json:"tags"`
}

// fakeYouQuote is an in-memory YouQuote API. Every request is counted by
// "METHOD /path"; a failure registered for that key is answered instead of
// the route.
type fakeYouQuote struct {
	*httptest.Server

	mu         sync.Mutex
	nextID     int
	users      map[string]*fakeUser
	tokens     map[string]*fakeUser
	quotes     []*fakeQuote
	categories []fakeNamed
	tags       []fakeNamed
	failures   map[string]int
	delays     map[string]time.Duration
	hits       map[string]int
	headers    map[string]http.Header
}

func newFakeYouQuote() *fakeYouQuote {
	f := &fakeYouQuote{
		nextID:   1,
		users:    make(map[string]*fakeUser),
		tokens:   make(map[string]*fakeUser),
		failures: make(map[string]int),
		delays:   make(map[string]time.Duration),
		hits:     make(map[string]int),
		headers:  make(map[string]http.Header),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /login", f.login)
	mux.HandleFunc("POST /register", f.register)
	mux.HandleFunc("GET /quotes", f.authed(f.listQuotes))
	mux.HandleFunc("POST /quotes", f.authed(f.createQuote))
	mux.HandleFunc("GET /quotes/random", f.authed(f.randomQuote))
	mux.HandleFunc("GET /quotes/popular", f.authed(f.popularQuotes))
	mux.HandleFunc("GET /quotes/Favorie", f.authed(f.favoriteQuotes))
	mux.HandleFunc("PUT /quotes/{id}", f.authed(f.updateQuote))
	mux.HandleFunc("DELETE /quotes/{id}", f.authed(f.deleteQuote))
	mux.HandleFunc("POST /quotes/{id}/like", f.authed(f.likeQuote))
	mux.HandleFunc("POST /quotes/{id}/favorite", f.authed(f.favoriteQuote))
	mux.HandleFunc("GET /categories", f.authed(f.listNamed(&f.categories)))
	mux.HandleFunc("POST /categories", f.authed(f.createNamed(&f.categories)))
	mux.HandleFunc("PUT /categories/{id}", f.authed(f.renameNamed(&f.categories)))
	mux.HandleFunc("DELETE /categories/{id}", f.authed(f.deleteNamed(&f.categories)))
	mux.HandleFunc("GET /tags", f.authed(f.listNamed(&f.tags)))
	mux.HandleFunc("POST /tags", f.authed(f.createNamed(&f.tags)))
	mux.HandleFunc("PUT /tags/{id}", f.authed(f.renameNamed(&f.tags)))
	mux.HandleFunc("DELETE /tags/{id}", f.authed(f.deleteNamed(&f.tags)))

	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.Path

		f.mu.Lock()
		f.hits[key]++
		f.headers[key] = r.Header.Clone()
		status, failing := f.failures[key]
		delay := f.delays[key]
		f.mu.Unlock()

		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-r.Context().Done():
				return
			}
		}

		if failing {
			writeJSON(w, status, map[string]string{"message": http.StatusText(status)})
			return
		}

		mux.ServeHTTP(w, r)
	}))

	return f
}

// --- setup used by tests and steps ---

func (f *fakeYouQuote) id() int {
	id := f.nextID
	f.nextID++

	return id
}

func (f *fakeYouQuote) AddUser(name, email, password, role string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.users[email] = &fakeUser{ID: f.id(), Name: name, Email: email, Role: role, password: password}
}

func (f *fakeYouQuote) AddCategory(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	c := fakeNamed{ID: f.id(), Name: name}
	f.categories = append(f.categories, c)

	return c.ID
}

func (f *fakeYouQuote) AddTag(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	t := fakeNamed{ID: f.id(), Name: name}
	f.tags = append(f.tags, t)

	return t.ID
}

// AddQuote stores a quote; category names the category, or is empty.
func (f *fakeYouQuote) AddQuote(content, author, category string, likes int, favorited bool) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	q := &fakeQuote{ID: f.id(), Content: content, Author: author, LikesCount: likes, Tags: []fakeNamed{}}
	if favorited {
		q.IsFavorited = 1
	}

	if i := slices.IndexFunc(f.categories, func(c fakeNamed) bool { return c.Name == category }); i >= 0 {
		c := f.categories[i]
		q.CategoryID = &c.ID
		q.Category = &c
	}

	f.quotes = append(f.quotes, q)

	return q.ID
}

// Fail answers every "METHOD path" request with status until Recover.
func (f *fakeYouQuote) Fail(method, path string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.failures[method+" "+path] = status
}

// Delay holds every "METHOD path" response for d.
func (f *fakeYouQuote) Delay(method, path string, d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.delays[method+" "+path] = d
}

// Recover drops every failure and delay.
func (f *fakeYouQuote) Recover() {
	f.mu.Lock()
	defer f.mu.Unlock()

	clear(f.failures)
	clear(f.delays)
}

// RevokeTokens expires every issued token.
func (f *fakeYouQuote) RevokeTokens() {
	f.mu.Lock()
	defer f.mu.Unlock()

	clear(f.tokens)
}

func (f *fakeYouQuote) Hits(method, path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.hits[method+" "+path]
}

func (f *fakeYouQuote) LastHeader(method, path string) http.Header {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.headers[method+" "+path]
}

func (f *fakeYouQuote) Quote(id int) (fakeQuote, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if q := f.findQuote(id); q != nil {
		return *q, true
	}

	return fakeQuote{}, false
}

// --- handlers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func invalid(w http.ResponseWriter, fields map[string][]string) {
	writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
		"message": "The given data was invalid.",
		"errors":  fields,
	})
}

func (f *fakeYouQuote) authed(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")

		f.mu.Lock()
		_, known := f.tokens[token]
		f.mu.Unlock()

		if !ok || !known {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthenticated."})
			return
		}

		next(w, r)
	}
}

func (f *fakeYouQuote) issue(u *fakeUser) string {
	token := uuid.NewString()
	f.tokens[token] = u

	return token
}

func (f *fakeYouQuote) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Malformed body."})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[req.Email]
	if !ok || u.password != req.Password {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid credentials"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"access_token": f.issue(u), "user": u})
}

func (f *fakeYouQuote) register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name                 string `json:"name"`
		Email                string `json:"email"`
		Password             string `json:"password"`
		PasswordConfirmation string `json:"password_confirmation"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Malformed body."})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	fields := map[string][]string{}
	if _, taken := f.users[req.Email]; taken {
		fields["email"] = []string{"The email has already been taken."}
	}

	if len(req.Password) < 8 {
		fields["password"] = append(fields["password"], "The password must be at least 8 characters.")
	}

	if req.Password != req.PasswordConfirmation {
		fields["password"] = append(fields["password"], "The password confirmation does not match.")
	}

	if len(fields) > 0 {
		invalid(w, fields)
		return
	}

	u := &fakeUser{ID: f.id(), Name: req.Name, Email: req.Email, Role: "user", password: req.Password}
	f.users[u.Email] = u

	writeJSON(w, http.StatusCreated, map[string]any{"token": f.issue(u), "user": u})
}

func (f *fakeYouQuote) findQuote(id int) *fakeQuote {
	for _, q := range f.quotes {
		if q.ID == id {
			return q
		}
	}

	return nil
}

func (f *fakeYouQuote) quoteFromPath(w http.ResponseWriter, r *http.Request) *fakeQuote {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err == nil {
		if q := f.findQuote(id); q != nil {
			return q
		}
	}

	writeJSON(w, http.StatusNotFound, map[string]string{"message": "Quote not found."})

	return nil
}

func (f *fakeYouQuote) snapshot(keep func(*fakeQuote) bool) []fakeQuote {
	out := []fakeQuote{}
	for _, q := range f.quotes {
		if keep == nil || keep(q) {
			out = append(out, *q)
		}
	}

	return out
}

func (f *fakeYouQuote) listQuotes(w http.ResponseWriter, _ *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	writeJSON(w, http.StatusOK, f.snapshot(nil))
}

func (f *fakeYouQuote) favoriteQuotes(w http.ResponseWriter, _ *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	writeJSON(w, http.StatusOK, f.snapshot(func(q *fakeQuote) bool { return q.IsFavorited == 1 }))
}

func (f *fakeYouQuote) popularQuotes(w http.ResponseWriter, _ *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	quotes := f.snapshot(nil)
	slices.SortStableFunc(quotes, func(a, b fakeQuote) int { return b.LikesCount - a.LikesCount })

	writeJSON(w, http.StatusOK, quotes)
}

// randomQuote is deterministic: the most recent quote.
func (f *fakeYouQuote) randomQuote(w http.ResponseWriter, _ *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.quotes) == 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "No quotes."})
		return
	}

	writeJSON(w, http.StatusOK, *f.quotes[len(f.quotes)-1])
}

func (f *fakeYouQuote) decodeQuote(w http.ResponseWriter, r *http.Request) (fakeQuoteRequest, bool) {
	var req fakeQuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Malformed body."})
		return req, false
	}

	fields := map[string][]string{}
	if strings.TrimSpace(req.Content) == "" {
		fields["content"] = []string{"The content field is required."}
	}

	if strings.TrimSpace(req.Author) == "" {
		fields["author"] = []string{"The author field is required."}
	}

	if len(fields) > 0 {
		invalid(w, fields)
		return req, false
	}

	return req, true
}

func (f *fakeYouQuote) apply(q *fakeQuote, req fakeQuoteRequest) {
	q.Content = req.Content
	q.Author = req.Author
	q.Source = nil

	if req.Source != "" {
		source := req.Source
		q.Source = &source
	}

	q.CategoryID, q.Category = nil, nil
	if req.CategoryID != nil {
		if i := slices.IndexFunc(f.categories, func(c fakeNamed) bool { return c.ID == *req.CategoryID }); i >= 0 {
			c := f.categories[i]
			q.CategoryID = &c.ID
			q.Category = &c
		}
	}

	q.Tags = []fakeNamed{}
	for _, id := range req.Tags {
		if i := slices.IndexFunc(f.tags, func(t fakeNamed) bool { return t.ID == id }); i >= 0 {
			q.Tags = append(q.Tags, f.tags[i])
		}
	}
}

func (f *fakeYouQuote) createQuote(w http.ResponseWriter, r *http.Request) {
	req, ok := f.decodeQuote(w, r)
	if !ok {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	q := &fakeQuote{ID: f.id()}
	f.apply(q, req)
	f.quotes = append(f.quotes, q)

	writeJSON(w, http.StatusCreated, *q)
}

func (f *fakeYouQuote) updateQuote(w http.ResponseWriter, r *http.Request) {
	req, ok := f.decodeQuote(w, r)
	if !ok {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	q := f.quoteFromPath(w, r)
	if q == nil {
		return
	}

	f.apply(q, req)

	writeJSON(w, http.StatusOK, *q)
}

func (f *fakeYouQuote) deleteQuote(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	q := f.quoteFromPath(w, r)
	if q == nil {
		return
	}

	f.quotes = slices.DeleteFunc(f.quotes, func(held *fakeQuote) bool { return held == q })

	w.WriteHeader(http.StatusNoContent)
}

func (f *fakeYouQuote) likeQuote(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	q := f.quoteFromPath(w, r)
	if q == nil {
		return
	}

	q.LikesCount++
	q.IsLiked = 1

	writeJSON(w, http.StatusOK, map[string]string{"message": "Quote liked."})
}

func (f *fakeYouQuote) favoriteQuote(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	q := f.quoteFromPath(w, r)
	if q == nil {
		return
	}

	q.IsFavorited = 1 - q.IsFavorited

	writeJSON(w, http.StatusOK, map[string]string{"message": "Favorites updated."})
}

func (f *fakeYouQuote) listNamed(items *[]fakeNamed) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		writeJSON(w, http.StatusOK, append([]fakeNamed{}, *items...))
	}
}

func decodeName(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		invalid(w, map[string][]string{"name": {"The name field is required."}})
		return "", false
	}

	return req.Name, true
}

func (f *fakeYouQuote) createNamed(items *[]fakeNamed) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name, ok := decodeName(w, r)
		if !ok {
			return
		}

		f.mu.Lock()
		defer f.mu.Unlock()

		n := fakeNamed{ID: f.id(), Name: name}
		*items = append(*items, n)

		writeJSON(w, http.StatusCreated, n)
	}
}

func namedIndex(items []fakeNamed, r *http.Request) int {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return -1
	}

	return slices.IndexFunc(items, func(n fakeNamed) bool { return n.ID == id })
}

func (f *fakeYouQuote) renameNamed(items *[]fakeNamed) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name, ok := decodeName(w, r)
		if !ok {
			return
		}

		f.mu.Lock()
		defer f.mu.Unlock()

		i := namedIndex(*items, r)
		if i < 0 {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not found."})
			return
		}

		(*items)[i].Name = name

		writeJSON(w, http.StatusOK, (*items)[i])
	}
}

func (f *fakeYouQuote) deleteNamed(items *[]fakeNamed) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		i := namedIndex(*items, r)
		if i < 0 {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not found."})
			return
		}

		*items = slices.Delete(*items, i, i+1)

		w.WriteHeader(http.StatusNoContent)
	}
}
