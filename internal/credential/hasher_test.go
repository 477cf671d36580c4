package credential

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func newTestHasher(t *testing.T) *BcryptHasher {
	t.Helper()
	h, err := NewBcryptHasher(bcrypt.MinCost)
	if err != nil {
		t.Fatalf("NewBcryptHasher() error = %v", err)
	}
	return h
}

func TestNewBcryptHasher(t *testing.T) {
	h, err := NewBcryptHasher(0)
	if err != nil {
		t.Fatalf("NewBcryptHasher(0) error = %v", err)
	}
	if h.Cost() != DefaultCost {
		t.Errorf("Cost() = %d, want %d", h.Cost(), DefaultCost)
	}

	for _, cost := range []int{1, 3, 32, -5} {
		if _, err := NewBcryptHasher(cost); err == nil {
			t.Errorf("NewBcryptHasher(%d) should fail", cost)
		}
	}
}

func TestHashAndVerify(t *testing.T) {
	h := newTestHasher(t)

	hash, err := h.Hash("correct horse")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if hash == "correct horse" {
		t.Fatal("Hash() returned the plaintext")
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Errorf("Hash() = %q, want a bcrypt hash", hash)
	}

	if !h.Verify("correct horse", hash) {
		t.Error("Verify() = false for the original plaintext")
	}
	if h.Verify("battery staple", hash) {
		t.Error("Verify() = true for a different plaintext")
	}
	if h.Verify("", hash) {
		t.Error("Verify() = true for an empty plaintext")
	}
}

func TestHashIsSalted(t *testing.T) {
	h := newTestHasher(t)

	first, err := h.Hash("secret")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	second, err := h.Hash("secret")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	if first == second {
		t.Error("two hashes of the same plaintext should differ")
	}
	if !h.Verify("secret", first) || !h.Verify("secret", second) {
		t.Error("both hashes should verify")
	}
}

func TestVerifyMalformedHash(t *testing.T) {
	h := newTestHasher(t)

	for _, hash := range []string{"", "secret", "$2a$10$short"} {
		if h.Verify("secret", hash) {
			t.Errorf("Verify() = true for malformed hash %q", hash)
		}
	}
}

func TestHashRejectsOverlongPassword(t *testing.T) {
	h := newTestHasher(t)

	if _, err := h.Hash(strings.Repeat("x", 73)); err == nil {
		t.Error("Hash() should reject passwords longer than 72 bytes")
	}
}
