package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	appauth "fitlog/internal/application/auth"
	"fitlog/internal/config"
	"fitlog/internal/domain/auth"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "middleware-test-secret"

// testVerifier builds an HS256 verifier whose introspection fallback
// hits a local stub that rejects everything.
func testVerifier(t *testing.T) (*appauth.Service, string) {
	t.Helper()
	stub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(stub.Close)

	cfg := &config.AuthConfig{
		ProjectURL:   stub.URL,
		JWTAlgorithm: "HS256",
		JWTSecret:    testSecret,
		Audience:     "authenticated",
		HTTPTimeout:  time.Second,
	}
	service, err := appauth.NewService(cfg)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	return service, stub.URL + "/auth/v1"
}

func signTestToken(t *testing.T, issuer string, mutate func(jwt.MapClaims)) string {
	t.Helper()
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  "user-123",
		"iss":  issuer,
		"aud":  "authenticated",
		"role": "authenticated",
		"aal":  "aal1",
		"exp":  now.Add(time.Hour).Unix(),
		"iat":  now.Unix(),
	}
	if mutate != nil {
		mutate(claims)
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func newTestRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	chain := append(handlers, func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			c.JSON(http.StatusOK, gin.H{"user_id": nil})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": claims.UserID})
	})
	r.GET("/protected", chain...)
	return r
}

func doRequest(r *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth_ValidToken(t *testing.T) {
	verifier, issuer := testVerifier(t)
	r := newTestRouter(RequireAuth(verifier))

	w := doRequest(r, "Bearer "+signTestToken(t, issuer, nil))
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	verifier, _ := testVerifier(t)
	r := newTestRouter(RequireAuth(verifier))

	w := doRequest(r, "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", w.Code)
	}
	if got := w.Header().Get("WWW-Authenticate"); got != "Bearer" {
		t.Errorf("Expected WWW-Authenticate 'Bearer', got '%s'", got)
	}
}

func TestRequireAuth_MalformedScheme(t *testing.T) {
	verifier, issuer := testVerifier(t)
	r := newTestRouter(RequireAuth(verifier))

	for _, header := range []string{
		"Basic dXNlcjpwYXNz",
		"Bearer",
		"Bearer ",
		signTestToken(t, issuer, nil),
	} {
		w := doRequest(r, header)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected status 401 for header %q, got %d", header, w.Code)
		}
		if got := w.Header().Get("WWW-Authenticate"); got != "Bearer" {
			t.Errorf("Expected WWW-Authenticate 'Bearer' for header %q, got '%s'", header, got)
		}
	}
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	verifier, issuer := testVerifier(t)
	r := newTestRouter(RequireAuth(verifier))

	expired := signTestToken(t, issuer, func(claims jwt.MapClaims) {
		claims["exp"] = time.Now().Add(-time.Hour).Unix()
	})

	for _, token := range []string{"garbage", expired} {
		w := doRequest(r, "Bearer "+token)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected status 401 for token %q, got %d", token, w.Code)
		}
		if got := w.Header().Get("WWW-Authenticate"); got != "Bearer" {
			t.Errorf("Expected WWW-Authenticate 'Bearer', got '%s'", got)
		}
	}
}

func TestRequireAuth_CaseInsensitiveScheme(t *testing.T) {
	verifier, issuer := testVerifier(t)
	r := newTestRouter(RequireAuth(verifier))

	w := doRequest(r, "bearer "+signTestToken(t, issuer, nil))
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200 for lowercase scheme, got %d", w.Code)
	}
}

func TestOptionalAuth_NoHeader(t *testing.T) {
	verifier, _ := testVerifier(t)
	r := newTestRouter(OptionalAuth(verifier))

	w := doRequest(r, "")
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if w.Body.String() != `{"user_id":null}` {
		t.Errorf("Expected anonymous response, got %s", w.Body.String())
	}
}

func TestOptionalAuth_ValidToken(t *testing.T) {
	verifier, issuer := testVerifier(t)
	r := newTestRouter(OptionalAuth(verifier))

	w := doRequest(r, "Bearer "+signTestToken(t, issuer, nil))
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if w.Body.String() != `{"user_id":"user-123"}` {
		t.Errorf("Expected claims to be attached, got %s", w.Body.String())
	}
}

func TestOptionalAuth_InvalidTokenStaysAnonymous(t *testing.T) {
	verifier, _ := testVerifier(t)
	r := newTestRouter(OptionalAuth(verifier))

	w := doRequest(r, "Bearer garbage")
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if w.Body.String() != `{"user_id":null}` {
		t.Errorf("Expected anonymous response, got %s", w.Body.String())
	}
}

func TestRequireAAL2(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		claims     *auth.Claims
		wantStatus int
	}{
		{
			name:       "aal2 session passes",
			claims:     &auth.Claims{UserID: "user-123", AAL: auth.AAL2},
			wantStatus: http.StatusOK,
		},
		{
			name:       "aal1 session forbidden",
			claims:     &auth.Claims{UserID: "user-123", AAL: auth.AAL1},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "no claims unauthorized",
			claims:     nil,
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/mfa", func(c *gin.Context) {
				if tt.claims != nil {
					c.Set(ClaimsContextKey, tt.claims)
				}
			}, RequireAAL2(), func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/mfa", nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
}
