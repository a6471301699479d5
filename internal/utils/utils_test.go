package utils

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("correct horse", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "correct horse" {
		t.Fatal("hash equals plaintext")
	}
	if !VerifyPassword(hash, "correct horse") {
		t.Fatal("verify rejected the right password")
	}
	if VerifyPassword(hash, "wrong horse") {
		t.Fatal("verify accepted the wrong password")
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	tok, err := NewAccessToken("test-secret", 42, "alice", 5)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	id, err := ParseAccessToken("test-secret", tok.Token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if id != 42 {
		t.Fatalf("user id = %d, want 42", id)
	}
	if _, err := ParseAccessToken("other-secret", tok.Token); err == nil {
		t.Fatal("token accepted with the wrong secret")
	}
}

func TestExpiredAccessToken(t *testing.T) {
	tok, err := NewAccessToken("test-secret", 42, "alice", -1)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := ParseAccessToken("test-secret", tok.Token); err == nil {
		t.Fatal("expired token accepted")
	}
}
