package fsregister

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Session issues authenticated requests to the FS Register API. Every
// request carries the Accept header plus the two auth headers built from
// the credentials given at construction. Credentials are immutable for
// the session's lifetime.
type Session struct {
	apiUsername string
	apiKey      string
	httpClient  *http.Client
	logger      zerolog.Logger
}

// NewSession creates a session for the given API username (the email
// registered on the developer portal) and key.
func NewSession(apiUsername, apiKey string, logger zerolog.Logger) (*Session, error) {
	if apiUsername == "" || apiKey == "" {
		return nil, ErrMissingCredentials
	}

	return &Session{
		apiUsername: apiUsername,
		apiKey:      apiKey,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		logger:      logger,
	}, nil
}

// APIUsername returns the API username the session authenticates with.
func (s *Session) APIUsername() string {
	return s.apiUsername
}

// APIKey returns the API key the session authenticates with.
func (s *Session) APIKey() string {
	return s.apiKey
}

// Get issues an authenticated GET to the given URL and returns the raw
// response. Transport failures are returned as-is for the caller to
// classify.
func (s *Session) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-AUTH-EMAIL", s.apiUsername)
	req.Header.Set("X-AUTH-KEY", s.apiKey)

	s.logger.Debug().Str("url", url).Msg("FS Register API request")

	return s.httpClient.Do(req)
}
