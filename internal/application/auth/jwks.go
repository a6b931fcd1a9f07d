package auth

import (
	"context"
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"sync"
	"time"
)

// jwksTTL matches the provider's edge cache lifetime. Snapshots older
// than this are refetched on the next lookup.
const jwksTTL = 600 * time.Second

// keyCache holds a single snapshot of the provider's public signing
// keys, keyed by kid. Concurrent refreshes race benignly: snapshots are
// read-only once built, so last-writer-wins is safe.
type keyCache struct {
	jwksURL string
	client  *http.Client

	mu        sync.RWMutex
	keys      map[string]crypto.PublicKey
	fetchedAt time.Time
}

func newKeyCache(projectURL string, client *http.Client) *keyCache {
	return &keyCache{
		jwksURL: strings.TrimSuffix(projectURL, "/") + "/auth/v1/.well-known/jwks.json",
		client:  client,
	}
}

// get returns the cached key set, fetching it when absent, expired or
// forced.
func (c *keyCache) get(ctx context.Context, force bool) (map[string]crypto.PublicKey, error) {
	if !force {
		c.mu.RLock()
		if c.keys != nil && time.Since(c.fetchedAt) < jwksTTL {
			keys := c.keys
			c.mu.RUnlock()
			return keys, nil
		}
		c.mu.RUnlock()
	}

	keys, err := c.fetch(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.keys = keys
	c.fetchedAt = time.Now()
	c.mu.Unlock()

	return keys, nil
}

// lookup resolves a public key by kid, forcing one refresh on a miss to
// pick up rotated keys.
func (c *keyCache) lookup(ctx context.Context, kid string) (crypto.PublicKey, error) {
	keys, err := c.get(ctx, false)
	if err != nil {
		return nil, err
	}
	if key, ok := keys[kid]; ok {
		return key, nil
	}

	keys, err = c.get(ctx, true)
	if err != nil {
		return nil, err
	}
	if key, ok := keys[kid]; ok {
		return key, nil
	}
	return nil, fmt.Errorf("key %s not found in JWKS", kid)
}

// fetch retrieves the JWKS document from the provider
func (c *keyCache) fetch(ctx context.Context) (map[string]crypto.PublicKey, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.jwksURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch JWKS: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("failed to fetch JWKS: status %d", resp.StatusCode)
	}

	var jwks struct {
		Keys []map[string]interface{} `json:"keys"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&jwks); err != nil {
		return nil, fmt.Errorf("failed to decode JWKS: %w", err)
	}

	keys := make(map[string]crypto.PublicKey)
	for _, jwk := range jwks.Keys {
		kid, ok := jwk["kid"].(string)
		if !ok {
			continue
		}
		pubKey, err := jwkToPublicKey(jwk)
		if err == nil {
			keys[kid] = pubKey
		}
	}
	return keys, nil
}

// jwkToPublicKey converts a JWK to a public key. Supabase publishes EC
// P-256 keys for ES256 projects and RSA keys for RS256 ones.
func jwkToPublicKey(jwk map[string]interface{}) (crypto.PublicKey, error) {
	kty, _ := jwk["kty"].(string)
	switch kty {
	case "RSA":
		return rsaPublicKey(jwk)
	case "EC":
		return ecPublicKey(jwk)
	default:
		return nil, fmt.Errorf("unsupported key type: %s", kty)
	}
}

func rsaPublicKey(jwk map[string]interface{}) (*rsa.PublicKey, error) {
	nStr, ok := jwk["n"].(string)
	if !ok {
		return nil, fmt.Errorf("missing n parameter")
	}
	eStr, ok := jwk["e"].(string)
	if !ok {
		return nil, fmt.Errorf("missing e parameter")
	}

	nBytes, err := base64.RawURLEncoding.DecodeString(nStr)
	if err != nil {
		return nil, fmt.Errorf("failed to decode n: %w", err)
	}
	eBytes, err := base64.RawURLEncoding.DecodeString(eStr)
	if err != nil {
		return nil, fmt.Errorf("failed to decode e: %w", err)
	}

	n := new(big.Int).SetBytes(nBytes)
	e := new(big.Int).SetBytes(eBytes)

	return &rsa.PublicKey{N: n, E: int(e.Int64())}, nil
}

func ecPublicKey(jwk map[string]interface{}) (*ecdsa.PublicKey, error) {
	if crv, _ := jwk["crv"].(string); crv != "P-256" {
		return nil, fmt.Errorf("unsupported curve: %v", jwk["crv"])
	}
	xStr, ok := jwk["x"].(string)
	if !ok {
		return nil, fmt.Errorf("missing x parameter")
	}
	yStr, ok := jwk["y"].(string)
	if !ok {
		return nil, fmt.Errorf("missing y parameter")
	}

	xBytes, err := base64.RawURLEncoding.DecodeString(xStr)
	if err != nil {
		return nil, fmt.Errorf("failed to decode x: %w", err)
	}
	yBytes, err := base64.RawURLEncoding.DecodeString(yStr)
	if err != nil {
		return nil, fmt.Errorf("failed to decode y: %w", err)
	}

	return &ecdsa.PublicKey{
		Curve: elliptic.P256(),
		X:     new(big.Int).SetBytes(xBytes),
		Y:     new(big.Int).SetBytes(yBytes),
	}, nil
}
