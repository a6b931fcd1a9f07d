package auth

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"fitlog/internal/config"
	"fitlog/internal/domain/auth"

	"github.com/golang-jwt/jwt/v5"
)

// fakeProvider simulates the Supabase JWKS and user endpoints
type fakeProvider struct {
	mu          sync.Mutex
	jwksFetches int
	userCalls   int
	userStatus  int
	jwks        []map[string]interface{}
	server      *httptest.Server
}

func newFakeProvider(t *testing.T) *fakeProvider {
	t.Helper()
	p := &fakeProvider{userStatus: http.StatusUnauthorized}
	p.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/v1/.well-known/jwks.json":
			p.mu.Lock()
			p.jwksFetches++
			keys := p.jwks
			p.mu.Unlock()
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"keys": keys})
		case "/auth/v1/user":
			p.mu.Lock()
			p.userCalls++
			status := p.userStatus
			p.mu.Unlock()
			if status == http.StatusOK {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"id":"user-123","email":"lifter@example.com"}`))
				return
			}
			w.WriteHeader(status)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(p.server.Close)
	return p
}

func (p *fakeProvider) setJWKS(keys ...map[string]interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.jwks = keys
}

func (p *fakeProvider) setUserStatus(status int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.userStatus = status
}

func (p *fakeProvider) counts() (jwksFetches, userCalls int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.jwksFetches, p.userCalls
}

func (p *fakeProvider) authConfig() *config.AuthConfig {
	return &config.AuthConfig{
		ProjectURL:   p.server.URL,
		AnonKey:      "anon-key",
		JWTAlgorithm: "ES256",
		Audience:     "authenticated",
		HTTPTimeout:  5 * time.Second,
	}
}

func newECKey(t *testing.T) *ecdsa.PrivateKey {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	return key
}

func ecJWK(kid string, pub *ecdsa.PublicKey) map[string]interface{} {
	x := make([]byte, 32)
	y := make([]byte, 32)
	pub.X.FillBytes(x)
	pub.Y.FillBytes(y)
	return map[string]interface{}{
		"kty": "EC",
		"crv": "P-256",
		"kid": kid,
		"x":   base64.RawURLEncoding.EncodeToString(x),
		"y":   base64.RawURLEncoding.EncodeToString(y),
	}
}

func validClaims(issuer string) jwt.MapClaims {
	now := time.Now()
	return jwt.MapClaims{
		"sub":        "user-123",
		"iss":        issuer,
		"aud":        "authenticated",
		"role":       "authenticated",
		"aal":        "aal1",
		"session_id": "sess-1",
		"exp":        now.Add(time.Hour).Unix(),
		"iat":        now.Unix(),
	}
}

func signES256(t *testing.T, key *ecdsa.PrivateKey, kid string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodES256, claims)
	if kid != "" {
		token.Header["kid"] = kid
	}
	signed, err := token.SignedString(key)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestNewService_HS256WithoutSecret(t *testing.T) {
	cfg := &config.AuthConfig{JWTAlgorithm: "HS256"}
	if _, err := NewService(cfg); err == nil {
		t.Error("Expected configuration error for HS256 without secret")
	}
}

func TestNewService_UnsupportedAlgorithm(t *testing.T) {
	cfg := &config.AuthConfig{JWTAlgorithm: "PS512", ProjectURL: "https://proj.supabase.co"}
	if _, err := NewService(cfg); err == nil {
		t.Error("Expected configuration error for unsupported algorithm")
	}
}

func TestVerifyToken_ES256Valid(t *testing.T) {
	provider := newFakeProvider(t)
	key := newECKey(t)
	provider.setJWKS(ecJWK("key-1", &key.PublicKey))

	service, err := NewService(provider.authConfig())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	tokenString := signES256(t, key, "key-1", validClaims(provider.server.URL+"/auth/v1"))

	claims, err := service.VerifyToken(context.Background(), tokenString)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if claims.UserID != "user-123" {
		t.Errorf("Expected user ID 'user-123', got '%s'", claims.UserID)
	}
	if claims.Role != "authenticated" {
		t.Errorf("Expected role 'authenticated', got '%s'", claims.Role)
	}
	if claims.SessionID != "sess-1" {
		t.Errorf("Expected session 'sess-1', got '%s'", claims.SessionID)
	}
	if claims.RawToken != tokenString {
		t.Error("Expected raw token to be retained")
	}

	fetches, userCalls := provider.counts()
	if fetches != 1 {
		t.Errorf("Expected 1 JWKS fetch, got %d", fetches)
	}
	if userCalls != 0 {
		t.Errorf("Expected no introspection calls, got %d", userCalls)
	}
}

func TestVerifyToken_HS256Valid(t *testing.T) {
	provider := newFakeProvider(t)
	cfg := provider.authConfig()
	cfg.JWTAlgorithm = "HS256"
	cfg.JWTSecret = "super-secret"

	service, err := NewService(cfg)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, validClaims(provider.server.URL+"/auth/v1"))
	tokenString, err := token.SignedString([]byte("super-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	claims, err := service.VerifyToken(context.Background(), tokenString)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if claims.UserID != "user-123" {
		t.Errorf("Expected user ID 'user-123', got '%s'", claims.UserID)
	}

	fetches, _ := provider.counts()
	if fetches != 0 {
		t.Errorf("Expected no JWKS fetches for HS256, got %d", fetches)
	}
}

func TestVerifyToken_KeyRotation(t *testing.T) {
	provider := newFakeProvider(t)
	oldKey := newECKey(t)
	newKey := newECKey(t)

	service, err := NewService(provider.authConfig())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// Warm the cache with only the old key
	provider.setJWKS(ecJWK("key-old", &oldKey.PublicKey))
	warm := signES256(t, oldKey, "key-old", validClaims(provider.server.URL+"/auth/v1"))
	if _, err := service.VerifyToken(context.Background(), warm); err != nil {
		t.Fatalf("Unexpected error warming cache: %v", err)
	}

	// Rotate: the provider now also serves the new key
	provider.setJWKS(ecJWK("key-old", &oldKey.PublicKey), ecJWK("key-new", &newKey.PublicKey))

	tokenString := signES256(t, newKey, "key-new", validClaims(provider.server.URL+"/auth/v1"))
	claims, err := service.VerifyToken(context.Background(), tokenString)
	if err != nil {
		t.Fatalf("Expected rotation recovery, got error: %v", err)
	}
	if claims.UserID != "user-123" {
		t.Errorf("Expected user ID 'user-123', got '%s'", claims.UserID)
	}

	fetches, userCalls := provider.counts()
	if fetches != 2 {
		t.Errorf("Expected 2 JWKS fetches (initial + rotation refresh), got %d", fetches)
	}
	if userCalls != 0 {
		t.Errorf("Expected no introspection calls, got %d", userCalls)
	}
}

func TestVerifyToken_SignatureRetryRecovers(t *testing.T) {
	provider := newFakeProvider(t)
	staleKey := newECKey(t)
	realKey := newECKey(t)

	service, err := NewService(provider.authConfig())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// Fill the cache with stale material under the token's kid, as if the
	// snapshot predates a rotation that reused the kid slot.
	provider.setJWKS(ecJWK("key-1", &staleKey.PublicKey))
	if _, err := service.keys.get(context.Background(), false); err != nil {
		t.Fatalf("Unexpected error warming cache: %v", err)
	}

	// The provider now serves the real key; the signature failure must
	// trigger exactly one forced refresh and then succeed.
	provider.setJWKS(ecJWK("key-1", &realKey.PublicKey))
	tokenString := signES256(t, realKey, "key-1", validClaims(provider.server.URL+"/auth/v1"))

	if _, err := service.VerifyToken(context.Background(), tokenString); err != nil {
		t.Fatalf("Expected signature retry to recover, got error: %v", err)
	}

	fetches, userCalls := provider.counts()
	if fetches != 2 {
		t.Errorf("Expected 2 JWKS fetches (warm + retry refresh), got %d", fetches)
	}
	if userCalls != 0 {
		t.Errorf("Expected no introspection calls, got %d", userCalls)
	}
}

func TestVerifyToken_SignatureRetryHappensOnce(t *testing.T) {
	provider := newFakeProvider(t)
	wrongKey := newECKey(t)
	realKey := newECKey(t)

	// The provider never serves the right key: after exactly one forced
	// refresh the failure must become final and fall through to the
	// introspection call.
	provider.setJWKS(ecJWK("key-1", &wrongKey.PublicKey))

	service, err := NewService(provider.authConfig())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	tokenString := signES256(t, realKey, "key-1", validClaims(provider.server.URL+"/auth/v1"))
	_, verr := service.VerifyToken(context.Background(), tokenString)
	if !errors.Is(verr, auth.ErrInvalidToken) {
		t.Errorf("Expected ErrInvalidToken, got %v", verr)
	}

	fetches, userCalls := provider.counts()
	if fetches != 2 {
		t.Errorf("Expected exactly 2 JWKS fetches (initial + one retry), got %d", fetches)
	}
	if userCalls != 1 {
		t.Errorf("Expected exactly 1 introspection call, got %d", userCalls)
	}
}

func TestVerifyToken_MissingKidFallsBack(t *testing.T) {
	provider := newFakeProvider(t)
	key := newECKey(t)
	provider.setJWKS(ecJWK("key-1", &key.PublicKey))

	service, err := NewService(provider.authConfig())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	tokenString := signES256(t, key, "", validClaims(provider.server.URL+"/auth/v1"))
	_, verr := service.VerifyToken(context.Background(), tokenString)
	if !errors.Is(verr, auth.ErrInvalidToken) {
		t.Errorf("Expected ErrInvalidToken, got %v", verr)
	}

	fetches, userCalls := provider.counts()
	if fetches != 0 {
		t.Errorf("Expected no JWKS fetches without a kid, got %d", fetches)
	}
	if userCalls != 1 {
		t.Errorf("Expected 1 introspection call, got %d", userCalls)
	}
}

func TestVerifyToken_WrongIssuer(t *testing.T) {
	provider := newFakeProvider(t)
	key := newECKey(t)
	provider.setJWKS(ecJWK("key-1", &key.PublicKey))

	service, err := NewService(provider.authConfig())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	claims := validClaims("https://somewhere-else.example.com/auth/v1")
	tokenString := signES256(t, key, "key-1", claims)

	if _, verr := service.VerifyToken(context.Background(), tokenString); !errors.Is(verr, auth.ErrInvalidToken) {
		t.Errorf("Expected ErrInvalidToken for issuer mismatch, got %v", verr)
	}
}

func TestVerifyToken_UnexpectedRole(t *testing.T) {
	provider := newFakeProvider(t)
	key := newECKey(t)
	provider.setJWKS(ecJWK("key-1", &key.PublicKey))

	service, err := NewService(provider.authConfig())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	claims := validClaims(provider.server.URL + "/auth/v1")
	claims["role"] = "service_role"
	tokenString := signES256(t, key, "key-1", claims)

	if _, verr := service.VerifyToken(context.Background(), tokenString); !errors.Is(verr, auth.ErrInvalidToken) {
		t.Errorf("Expected ErrInvalidToken for unexpected role, got %v", verr)
	}
}

func TestVerifyToken_AnonymousRejectedForAuthenticatedAudience(t *testing.T) {
	provider := newFakeProvider(t)
	key := newECKey(t)
	provider.setJWKS(ecJWK("key-1", &key.PublicKey))

	service, err := NewService(provider.authConfig())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	claims := validClaims(provider.server.URL + "/auth/v1")
	claims["role"] = "anon"
	claims["is_anonymous"] = true
	tokenString := signES256(t, key, "key-1", claims)

	if _, verr := service.VerifyToken(context.Background(), tokenString); !errors.Is(verr, auth.ErrInvalidToken) {
		t.Errorf("Expected ErrInvalidToken for anonymous principal, got %v", verr)
	}
}

func TestVerifyToken_FallbackAcceptsProviderConfirmedToken(t *testing.T) {
	provider := newFakeProvider(t)
	provider.setUserStatus(http.StatusOK)
	key := newECKey(t)
	provider.setJWKS(ecJWK("key-1", &key.PublicKey))

	service, err := NewService(provider.authConfig())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// Expired locally, but the provider vouches for it; the claims come
	// from an unverified decode.
	claims := validClaims(provider.server.URL + "/auth/v1")
	claims["exp"] = time.Now().Add(-time.Hour).Unix()
	tokenString := signES256(t, key, "key-1", claims)

	verified, verr := service.VerifyToken(context.Background(), tokenString)
	if verr != nil {
		t.Fatalf("Expected fallback to accept the token, got error: %v", verr)
	}
	if verified.UserID != "user-123" {
		t.Errorf("Expected user ID 'user-123', got '%s'", verified.UserID)
	}

	_, userCalls := provider.counts()
	if userCalls != 1 {
		t.Errorf("Expected 1 introspection call, got %d", userCalls)
	}
}

func TestVerifyToken_MissingSubjectIsAlwaysRejected(t *testing.T) {
	provider := newFakeProvider(t)
	provider.setUserStatus(http.StatusOK)
	key := newECKey(t)
	provider.setJWKS(ecJWK("key-1", &key.PublicKey))

	service, err := NewService(provider.authConfig())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	claims := validClaims(provider.server.URL + "/auth/v1")
	delete(claims, "sub")
	tokenString := signES256(t, key, "key-1", claims)

	// Even a provider-confirmed token cannot stand in for a subject.
	if _, verr := service.VerifyToken(context.Background(), tokenString); !errors.Is(verr, auth.ErrInvalidToken) {
		t.Errorf("Expected ErrInvalidToken for missing subject, got %v", verr)
	}
}

func TestVerifyToken_UnsupportedTokenAlgorithm(t *testing.T) {
	provider := newFakeProvider(t)
	service, err := NewService(provider.authConfig())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	es384Key, keyErr := ecdsa.GenerateKey(elliptic.P384(), rand.Reader)
	if keyErr != nil {
		t.Fatalf("generate key: %v", keyErr)
	}
	token := jwt.NewWithClaims(jwt.SigningMethodES384, validClaims(provider.server.URL+"/auth/v1"))
	tokenString, signErr := token.SignedString(es384Key)
	if signErr != nil {
		t.Fatalf("sign token: %v", signErr)
	}

	if _, verr := service.VerifyToken(context.Background(), tokenString); !errors.Is(verr, auth.ErrInvalidToken) {
		t.Errorf("Expected ErrInvalidToken for unsupported algorithm, got %v", verr)
	}

	fetches, userCalls := provider.counts()
	if fetches != 0 {
		t.Errorf("Expected no JWKS fetches, got %d", fetches)
	}
	if userCalls != 1 {
		t.Errorf("Expected 1 introspection call, got %d", userCalls)
	}
}

func TestVerifyToken_GarbageToken(t *testing.T) {
	provider := newFakeProvider(t)
	service, err := NewService(provider.authConfig())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if _, verr := service.VerifyToken(context.Background(), "not-a-jwt"); !errors.Is(verr, auth.ErrInvalidToken) {
		t.Errorf("Expected ErrInvalidToken for garbage input, got %v", verr)
	}
}

func TestUserProfile(t *testing.T) {
	provider := newFakeProvider(t)
	provider.setUserStatus(http.StatusOK)

	service, err := NewService(provider.authConfig())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	profile, perr := service.UserProfile(context.Background(), "some-token")
	if perr != nil {
		t.Fatalf("Unexpected error: %v", perr)
	}
	if profile["id"] != "user-123" {
		t.Errorf("Expected profile id 'user-123', got %v", profile["id"])
	}
}
