package secrets

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// Source supplies the bearer token presented to the summarization endpoint.
type Source interface {
	Token(ctx context.Context) (string, error)
}

// StaticSource returns a token fixed at configuration time.
type StaticSource struct {
	token  string
	logger *slog.Logger

	warnOnce sync.Once
}

// NewStaticSource wraps a configured token value.
func NewStaticSource(token string, logger *slog.Logger) *StaticSource {
	return &StaticSource{
		token:  strings.TrimSpace(token),
		logger: logger.With("component", "secrets.static"),
	}
}

// Token implements Source.
func (s *StaticSource) Token(_ context.Context) (string, error) {
	if s.token == "" {
		return "", errors.New("no bearer token configured")
	}
	s.warnIfExpired(s.token)
	return s.token, nil
}

func (s *StaticSource) warnIfExpired(token string) {
	exp, ok := tokenExpiry(token)
	if !ok || exp.After(time.Now()) {
		return
	}
	s.warnOnce.Do(func() {
		s.logger.Warn("configured bearer token appears expired", "expired_at", exp)
	})
}

// FileSource reads the token from a file on every call, so operators can
// rotate the secret without a restart. When a key is configured the file is
// expected to hold an AES-GCM sealed token.
type FileSource struct {
	path   string
	key    string
	logger *slog.Logger
}

// NewFileSource builds a file-backed source. key may be empty for plaintext
// token files.
func NewFileSource(path, key string, logger *slog.Logger) *FileSource {
	return &FileSource{
		path:   path,
		key:    key,
		logger: logger.With("component", "secrets.file"),
	}
}

// Token implements Source.
func (s *FileSource) Token(_ context.Context) (string, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return "", err
	}
	token := strings.TrimSpace(string(raw))
	if s.key != "" {
		token, err = Unseal(s.key, token)
		if err != nil {
			return "", err
		}
	}
	if token == "" {
		return "", errors.New("token file is empty")
	}
	if exp, ok := tokenExpiry(token); ok && exp.Before(time.Now()) {
		s.logger.Warn("bearer token from file appears expired", "expired_at", exp)
	}
	return token, nil
}

// OAuthSource mints bearer tokens through the OAuth2 client-credentials
// grant. The underlying oauth2 token source caches and refreshes tokens, so
// repeated calls do not hit the token endpoint.
type OAuthSource struct {
	source oauth2.TokenSource
}

// NewOAuthSource configures a client-credentials token source.
func NewOAuthSource(tokenURL, clientID, clientSecret string, scopes []string) *OAuthSource {
	cfg := clientcredentials.Config{
		TokenURL:     tokenURL,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Scopes:       scopes,
	}
	return &OAuthSource{source: cfg.TokenSource(context.Background())}
}

// Token implements Source.
func (s *OAuthSource) Token(_ context.Context) (string, error) {
	tok, err := s.source.Token()
	if err != nil {
		return "", err
	}
	return tok.AccessToken, nil
}

// tokenExpiry reads the exp claim of a JWT-shaped token without verifying
// the signature. Opaque tokens report ok=false.
func tokenExpiry(raw string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

var (
	_ Source = (*StaticSource)(nil)
	_ Source = (*FileSource)(nil)
	_ Source = (*OAuthSource)(nil)
)
