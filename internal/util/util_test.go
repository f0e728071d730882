package util

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

func TestJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWT(42, "secret", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	id, err := ParseJWT(token, "secret")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if id != 42 {
		t.Fatalf("expected user 42, got %d", id)
	}
}

func TestParseJWTRejects(t *testing.T) {
	valid, err := GenerateJWT(1, "secret", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	expired, err := GenerateJWT(1, "secret", -time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	cases := map[string]struct{ token, secret string }{
		"wrong secret": {valid, "other"},
		"expired":      {expired, "secret"},
		"garbage":      {"not-a-token", "secret"},
	}
	for name, tc := range cases {
		if _, err := ParseJWT(tc.token, tc.secret); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestExtractToken(t *testing.T) {
	cases := map[string]string{
		"":           "",
		"Bearer abc": "abc",
		"bearer abc": "abc",
		"Token abc":  "",
		"Bearer a b": "",
		"Bearerabc":  "",
	}
	for header, want := range cases {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			r.Header.Set("Authorization", header)
		}
		if got := ExtractToken(r); got != want {
			t.Errorf("ExtractToken(%q) = %q, want %q", header, got, want)
		}
	}
}

func TestPasswordHasher(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)
	hash, err := h.Hash("password")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if ok, err := h.Matches("password", hash); err != nil || !ok {
		t.Fatalf("expected password to match: %v", err)
	}
	if ok, err := h.Matches("wrong", hash); err != nil || ok {
		t.Fatalf("expected mismatch without error: %v", err)
	}
	if _, err := h.Matches("password", "not-a-hash"); err == nil {
		t.Fatal("expected error for malformed hash")
	}
}

func TestPasswordHasherCost(t *testing.T) {
	cases := map[int]int{
		0:                  bcrypt.DefaultCost,
		1:                  bcrypt.MinCost,
		12:                 12,
		bcrypt.MaxCost + 1: bcrypt.MaxCost,
	}
	for in, want := range cases {
		if got := NewPasswordHasher(in).Cost(); got != want {
			t.Errorf("NewPasswordHasher(%d).Cost() = %d, want %d", in, got, want)
		}
	}

	hash, err := NewPasswordHasher(bcrypt.MinCost).Hash("password")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if cost, _ := bcrypt.Cost([]byte(hash)); cost != bcrypt.MinCost {
		t.Fatalf("hash cost = %d", cost)
	}
}
