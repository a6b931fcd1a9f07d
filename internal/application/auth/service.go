package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"fitlog/internal/config"
	"fitlog/internal/domain/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
)

// Service verifies Supabase access tokens. Local cryptographic
// verification runs first; when it fails for any reason a single
// introspection call to the provider decides the token's fate. Callers
// only ever see auth.ErrInvalidToken after both stages fail.
type Service struct {
	cfg    *config.AuthConfig
	keys   *keyCache
	client *http.Client
}

// NewService creates a token verification service. Configuration
// problems (HS256 without a secret, asymmetric without a project URL)
// are reported here, before any request is served.
func NewService(cfg *config.AuthConfig) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client := &http.Client{Timeout: cfg.HTTPTimeout}
	s := &Service{
		cfg:    cfg,
		client: client,
	}
	if cfg.ProjectURL != "" {
		s.keys = newKeyCache(cfg.ProjectURL, client)
	}
	return s, nil
}

// VerifyToken verifies a bearer token and returns its claims. Every
// failure reason collapses into auth.ErrInvalidToken once the
// introspection fallback is exhausted; the underlying cause is only
// logged at debug level.
func (s *Service) VerifyToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	claims, err := s.verifyLocal(ctx, tokenString)
	if err == nil {
		return claims, nil
	}
	log.Debug().Err(err).Msg("local token verification failed, trying introspection")

	claims, ierr := s.introspect(ctx, tokenString)
	if ierr != nil {
		log.Debug().Err(ierr).Msg("introspection fallback failed")
		return nil, auth.ErrInvalidToken
	}
	return claims, nil
}

// verifyLocal performs cryptographic verification against the shared
// secret or the cached JWKS, then applies the provider claim checks.
func (s *Service) verifyLocal(ctx context.Context, tokenString string) (*auth.Claims, error) {
	unverified, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return nil, fmt.Errorf("invalid token format: %w", err)
	}

	alg, _ := unverified.Header["alg"].(string)

	var claims jwt.MapClaims
	switch alg {
	case "HS256":
		claims, err = s.verifySymmetric(tokenString)
	case "ES256", "RS256":
		claims, err = s.verifyAsymmetric(ctx, tokenString, alg, unverified.Header)
	default:
		return nil, fmt.Errorf("%w: %s", auth.ErrUnsupportedAlg, alg)
	}
	if err != nil {
		return nil, err
	}

	if _, ok := claims["iat"]; !ok {
		return nil, fmt.Errorf("token has no iat claim")
	}
	if err := s.checkProviderClaims(claims); err != nil {
		return nil, err
	}
	return buildClaims(claims, tokenString)
}

func (s *Service) verifySymmetric(tokenString string) (jwt.MapClaims, error) {
	if s.cfg.JWTSecret == "" {
		return nil, fmt.Errorf("no shared secret configured for HS256 token")
	}
	return s.parseSigned(tokenString, "HS256", []byte(s.cfg.JWTSecret))
}

func (s *Service) verifyAsymmetric(ctx context.Context, tokenString, alg string, header map[string]interface{}) (jwt.MapClaims, error) {
	if s.keys == nil {
		return nil, fmt.Errorf("no project URL configured for %s token", alg)
	}
	kid, ok := header["kid"].(string)
	if !ok || kid == "" {
		return nil, auth.ErrMissingKeyID
	}

	key, err := s.keys.lookup(ctx, kid)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", auth.ErrKeyNotFound, err)
	}

	claims, err := s.parseSigned(tokenString, alg, key)
	if err != nil && errors.Is(err, jwt.ErrTokenSignatureInvalid) {
		// The key may have rotated between the cache fill and this
		// verification. Refresh once and retry; a second failure is final.
		keys, rerr := s.keys.get(ctx, true)
		if rerr != nil {
			return nil, err
		}
		fresh, ok := keys[kid]
		if !ok {
			return nil, err
		}
		claims, err = s.parseSigned(tokenString, alg, fresh)
	}
	return claims, err
}

// parseSigned decodes and verifies signature, expiry and audience.
func (s *Service) parseSigned(tokenString, alg string, key interface{}) (jwt.MapClaims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{alg}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	}
	if s.cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(s.cfg.Audience))
	}

	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return key, nil
	}, opts...)
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("unexpected claims type")
	}
	return claims, nil
}

// checkProviderClaims applies the Supabase-specific checks that follow
// any successful signature verification.
func (s *Service) checkProviderClaims(claims jwt.MapClaims) error {
	if iss := getStringClaim(claims, "iss"); iss != s.cfg.Issuer() {
		return fmt.Errorf("invalid issuer: expected %s, got %s", s.cfg.Issuer(), iss)
	}

	role := getStringClaim(claims, "role")
	if role != auth.RoleAuthenticated && role != auth.RoleAnon {
		return fmt.Errorf("unexpected role claim: %q", role)
	}

	// An anonymous principal can never satisfy an "authenticated" audience.
	if getBoolClaim(claims, "is_anonymous") && s.cfg.Audience == auth.RoleAuthenticated {
		return fmt.Errorf("anonymous token rejected for audience %q", s.cfg.Audience)
	}
	return nil
}

// introspect asks the provider to confirm the token by calling its user
// endpoint. A 200 means the provider vouches for the token, so the
// claims are taken from an unverified decode; anything else is a
// definitive rejection.
func (s *Service) introspect(ctx context.Context, tokenString string) (*auth.Claims, error) {
	body, err := s.providerUser(ctx, tokenString)
	if err != nil {
		return nil, err
	}
	// Only the status code matters here; the user document is fetched
	// again on demand for profile lookups.
	_ = body

	unverified, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return nil, fmt.Errorf("provider accepted an undecodable token: %w", err)
	}
	claims, ok := unverified.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("unexpected claims type")
	}
	return buildClaims(claims, tokenString)
}

// UserProfile fetches the provider's user document for the given raw
// token. Used by the profile endpoint; not part of verification.
func (s *Service) UserProfile(ctx context.Context, rawToken string) (map[string]interface{}, error) {
	body, err := s.providerUser(ctx, rawToken)
	if err != nil {
		return nil, err
	}
	var profile map[string]interface{}
	if err := json.Unmarshal(body, &profile); err != nil {
		return nil, fmt.Errorf("failed to decode user profile: %w", err)
	}
	return profile, nil
}

func (s *Service) providerUser(ctx context.Context, tokenString string) ([]byte, error) {
	url := strings.TrimSuffix(s.cfg.ProjectURL, "/") + "/auth/v1/user"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+tokenString)
	req.Header.Set("apikey", s.cfg.AnonKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("provider user endpoint unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("provider rejected token: status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// buildClaims maps raw JWT claims onto the domain claims. A missing
// subject is a hard failure, never defaulted.
func buildClaims(claims jwt.MapClaims, rawToken string) (*auth.Claims, error) {
	sub := getStringClaim(claims, "sub")
	if sub == "" {
		return nil, auth.ErrMissingSubject
	}

	c := &auth.Claims{
		UserID:      sub,
		Email:       getStringClaim(claims, "email"),
		Phone:       getStringClaim(claims, "phone"),
		Role:        getStringClaim(claims, "role"),
		SessionID:   getStringClaim(claims, "session_id"),
		AAL:         getStringClaim(claims, "aal"),
		IsAnonymous: getBoolClaim(claims, "is_anonymous"),
		RawToken:    rawToken,
	}
	if c.Role == "" {
		c.Role = auth.RoleAuthenticated
	}
	if meta, ok := claims["app_metadata"].(map[string]interface{}); ok {
		if provider, ok := meta["provider"].(string); ok {
			c.Provider = provider
		}
	}
	return c, nil
}

// Helper functions to extract claims
func getStringClaim(claims jwt.MapClaims, key string) string {
	if val, ok := claims[key].(string); ok {
		return val
	}
	return ""
}

func getBoolClaim(claims jwt.MapClaims, key string) bool {
	if val, ok := claims[key].(bool); ok {
		return val
	}
	return false
}
