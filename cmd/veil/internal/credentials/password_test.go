package credentials

import (
	"errors"
	"strings"
	"testing"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	digest, err := HashPassword("hunter2")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if digest == "" {
		t.Fatal("HashPassword() returned empty digest")
	}
	if strings.Contains(digest, "hunter2") {
		t.Error("digest contains the plain secret")
	}
	if !VerifyPassword(digest, "hunter2") {
		t.Error("VerifyPassword() = false for the original secret")
	}
}

func TestHashPassword_FreshSaltPerCall(t *testing.T) {
	first, err := HashPassword("hunter2")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	second, err := HashPassword("hunter2")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	if first == second {
		t.Error("two hashes of the same secret are identical; salt is not fresh")
	}
	if !VerifyPassword(first, "hunter2") || !VerifyPassword(second, "hunter2") {
		t.Error("both digests should verify against the original secret")
	}
}

func TestHashPassword_SecretTooLong(t *testing.T) {
	_, err := HashPassword(strings.Repeat("a", 73))
	if err == nil {
		t.Fatal("expected error for oversize secret")
	}
	if !errors.Is(err, ErrSecretTooLong) {
		t.Errorf("error = %v, want ErrSecretTooLong", err)
	}

	// Exactly at the limit is fine.
	if _, err := HashPassword(strings.Repeat("a", 72)); err != nil {
		t.Errorf("HashPassword() at limit error = %v", err)
	}
}

func TestVerifyPassword_WrongSecret(t *testing.T) {
	digest, err := HashPassword("correct horse")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if VerifyPassword(digest, "battery staple") {
		t.Error("VerifyPassword() = true for a wrong secret")
	}
}

func TestVerifyPassword_MalformedDigest(t *testing.T) {
	tests := []struct {
		name   string
		digest string
	}{
		{name: "empty digest", digest: ""},
		{name: "garbage digest", digest: "not-a-bcrypt-digest"},
		{name: "truncated digest", digest: "$2a$10$tooshort"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if VerifyPassword(tt.digest, "anything") {
				t.Errorf("VerifyPassword(%q) = true, want false", tt.digest)
			}
		})
	}
}

func TestComparePassword(t *testing.T) {
	digest, err := HashPassword("hunter2")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	if err := ComparePassword(digest, "hunter2"); err != nil {
		t.Errorf("ComparePassword() error = %v for matching secret", err)
	}
	if err := ComparePassword(digest, "wrong"); err == nil {
		t.Error("ComparePassword() = nil for a wrong secret")
	}
}
