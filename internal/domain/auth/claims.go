package auth

// Claim values Supabase issues for the role and aal fields.
const (
	RoleAuthenticated = "authenticated"
	RoleAnon          = "anon"

	AAL1 = "aal1"
	AAL2 = "aal2"
)

// Claims represents the verified identity extracted from a Supabase JWT.
// Built once per request and discarded at response time.
type Claims struct {
	UserID      string `json:"user_id"`            // sub claim, always present
	Email       string `json:"email,omitempty"`    // email claim
	Phone       string `json:"phone,omitempty"`    // phone claim
	Role        string `json:"role"`               // "authenticated" or "anon"
	SessionID   string `json:"session_id"`         // session_id claim
	AAL         string `json:"aal"`                // authenticator assurance level: "aal1" or "aal2"
	Provider    string `json:"provider,omitempty"` // identity provider from app_metadata
	IsAnonymous bool   `json:"is_anonymous"`       // anonymous sign-in flag

	// RawToken is the bearer token the claims were extracted from. It is
	// kept for on-demand profile lookups against the provider and must
	// never be logged or serialized.
	RawToken string `json:"-"`
}

// HasAAL2 reports whether the session completed multi-factor authentication.
func (c *Claims) HasAAL2() bool {
	return c.AAL == AAL2
}
