package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasherRoundTrip(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("s3nha-forte")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if hash == "s3nha-forte" {
		t.Fatalf("hash must not equal the plain password")
	}
	if err := hasher.Compare(hash, "s3nha-forte"); err != nil {
		t.Fatalf("compare failed for correct password: %v", err)
	}
	if err := hasher.Compare(hash, "outra-senha"); err == nil {
		t.Fatalf("expected mismatch error for wrong password")
	}
}
