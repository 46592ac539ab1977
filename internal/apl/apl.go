// Package apl implements the Authorized Persisted List: a credential
// store that maps a backend API URL to the access token the backend
// issued at install time. Absence of stored credentials is a fatal
// configuration error surfaced at startup, never per request.
package apl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
)

// ErrNoAuthData indicates no credentials are stored for the API URL.
var ErrNoAuthData = errors.New("no auth data found for API URL")

// AuthData is one stored credential record.
type AuthData struct {
	APIURL string `json:"api_url"`
	Token  string `json:"token"`
}

// APL looks up stored credentials by backend API URL.
type APL interface {
	Get(ctx context.Context, apiURL string) (*AuthData, error)
}

// Static is an APL holding a single in-memory record. Used in
// development where the token comes straight from the environment.
type Static struct {
	Data AuthData
}

// Get returns the record when the URL matches, ErrNoAuthData otherwise.
func (s *Static) Get(_ context.Context, apiURL string) (*AuthData, error) {
	if s.Data.APIURL != apiURL || s.Data.Token == "" {
		return nil, fmt.Errorf("%w: %s", ErrNoAuthData, apiURL)
	}
	d := s.Data
	return &d, nil
}

// File is an APL backed by a JSON file of records keyed by API URL:
//
//	{"https://demo.example.com/graphql/": {"api_url": "...", "token": "..."}}
type File struct {
	Path string
}

// Get reads the file on every call; the file is small and lookups happen
// once at startup.
func (f *File) Get(_ context.Context, apiURL string) (*AuthData, error) {
	raw, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("reading APL file: %w", err)
	}

	var records map[string]AuthData
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("parsing APL file: %w", err)
	}

	data, ok := records[apiURL]
	if !ok || data.Token == "" {
		return nil, fmt.Errorf("%w: %s", ErrNoAuthData, apiURL)
	}
	if data.APIURL == "" {
		data.APIURL = apiURL
	}
	return &data, nil
}

// TokenSource adapts an APL lookup to the GraphQL client's TokenSource.
// The lookup runs once and is cached; a failed lookup is cached too,
// since missing credentials are a configuration error that a retry
// cannot fix.
type TokenSource struct {
	store  APL
	apiURL string

	once  sync.Once
	token string
	err   error
}

// NewTokenSource creates a caching TokenSource for the given URL.
func NewTokenSource(store APL, apiURL string) *TokenSource {
	return &TokenSource{store: store, apiURL: apiURL}
}

// Token returns the stored token for the API URL.
func (t *TokenSource) Token(ctx context.Context) (string, error) {
	t.once.Do(func() {
		data, err := t.store.Get(ctx, t.apiURL)
		if err != nil {
			t.err = err
			return
		}
		t.token = data.Token
	})
	return t.token, t.err
}

// secretSlug derives a Secret Manager-safe name from an API URL.
// Secret names allow [a-zA-Z0-9_-], so everything else becomes "-".
func secretSlug(apiURL string) string {
	s := strings.TrimPrefix(apiURL, "https://")
	s = strings.TrimPrefix(s, "http://")
	s = strings.TrimSuffix(s, "/")
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, s)
}
