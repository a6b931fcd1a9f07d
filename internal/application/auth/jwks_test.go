package auth

import (
	"context"
	"crypto/ecdsa"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"net/http"
	"testing"
	"time"
)

func rsaJWK(kid string, pub *rsa.PublicKey) map[string]interface{} {
	eBytes := []byte{byte(pub.E >> 16), byte(pub.E >> 8), byte(pub.E)}
	return map[string]interface{}{
		"kty": "RSA",
		"kid": kid,
		"n":   base64.RawURLEncoding.EncodeToString(pub.N.Bytes()),
		"e":   base64.RawURLEncoding.EncodeToString(eBytes),
	}
}

func TestKeyCache_TTLReuse(t *testing.T) {
	provider := newFakeProvider(t)
	key := newECKey(t)
	provider.setJWKS(ecJWK("key-1", &key.PublicKey))

	cache := newKeyCache(provider.server.URL, &http.Client{Timeout: 5 * time.Second})

	for i := 0; i < 3; i++ {
		keys, err := cache.get(context.Background(), false)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if _, ok := keys["key-1"]; !ok {
			t.Fatal("Expected key-1 in snapshot")
		}
	}

	fetches, _ := provider.counts()
	if fetches != 1 {
		t.Errorf("Expected 1 fetch for repeated gets within TTL, got %d", fetches)
	}
}

func TestKeyCache_ForceRefresh(t *testing.T) {
	provider := newFakeProvider(t)
	key := newECKey(t)
	provider.setJWKS(ecJWK("key-1", &key.PublicKey))

	cache := newKeyCache(provider.server.URL, &http.Client{Timeout: 5 * time.Second})

	if _, err := cache.get(context.Background(), false); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if _, err := cache.get(context.Background(), true); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	fetches, _ := provider.counts()
	if fetches != 2 {
		t.Errorf("Expected forced get to refetch, got %d fetches", fetches)
	}
}

func TestKeyCache_LookupRefreshesOnMiss(t *testing.T) {
	provider := newFakeProvider(t)
	first := newECKey(t)
	second := newECKey(t)
	provider.setJWKS(ecJWK("key-1", &first.PublicKey))

	cache := newKeyCache(provider.server.URL, &http.Client{Timeout: 5 * time.Second})

	if _, err := cache.lookup(context.Background(), "key-1"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// key-2 appears after rotation; the miss must force one refresh
	provider.setJWKS(ecJWK("key-1", &first.PublicKey), ecJWK("key-2", &second.PublicKey))

	if _, err := cache.lookup(context.Background(), "key-2"); err != nil {
		t.Fatalf("Expected refresh to find rotated key, got error: %v", err)
	}

	fetches, _ := provider.counts()
	if fetches != 2 {
		t.Errorf("Expected 2 fetches, got %d", fetches)
	}
}

func TestKeyCache_LookupUnknownKid(t *testing.T) {
	provider := newFakeProvider(t)
	key := newECKey(t)
	provider.setJWKS(ecJWK("key-1", &key.PublicKey))

	cache := newKeyCache(provider.server.URL, &http.Client{Timeout: 5 * time.Second})

	if _, err := cache.lookup(context.Background(), "key-missing"); err == nil {
		t.Error("Expected error for unknown kid")
	}

	fetches, _ := provider.counts()
	if fetches != 2 {
		t.Errorf("Expected 2 fetches (initial + forced refresh), got %d", fetches)
	}
}

func TestKeyCache_FetchError(t *testing.T) {
	cache := newKeyCache("http://127.0.0.1:1", &http.Client{Timeout: 500 * time.Millisecond})
	if _, err := cache.get(context.Background(), false); err == nil {
		t.Error("Expected error for unreachable provider")
	}
}

func TestJWKToPublicKey_EC(t *testing.T) {
	key := newECKey(t)
	pub, err := jwkToPublicKey(ecJWK("key-1", &key.PublicKey))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	ecPub, ok := pub.(*ecdsa.PublicKey)
	if !ok {
		t.Fatalf("Expected *ecdsa.PublicKey, got %T", pub)
	}
	if ecPub.X.Cmp(key.PublicKey.X) != 0 || ecPub.Y.Cmp(key.PublicKey.Y) != 0 {
		t.Error("Expected round-tripped EC coordinates to match")
	}
}

func TestJWKToPublicKey_RSA(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	pub, err := jwkToPublicKey(rsaJWK("key-1", &key.PublicKey))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	rsaPub, ok := pub.(*rsa.PublicKey)
	if !ok {
		t.Fatalf("Expected *rsa.PublicKey, got %T", pub)
	}
	if rsaPub.N.Cmp(key.PublicKey.N) != 0 || rsaPub.E != key.PublicKey.E {
		t.Error("Expected round-tripped RSA parameters to match")
	}
}

func TestJWKToPublicKey_Unsupported(t *testing.T) {
	if _, err := jwkToPublicKey(map[string]interface{}{"kty": "OKP", "kid": "key-1"}); err == nil {
		t.Error("Expected error for unsupported key type")
	}
	if _, err := jwkToPublicKey(map[string]interface{}{"kty": "EC", "crv": "P-384", "kid": "key-1"}); err == nil {
		t.Error("Expected error for unsupported curve")
	}
}
