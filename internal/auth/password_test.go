package auth

import "testing"

func TestHashAndCompare(t *testing.T) {
	hasher := NewPasswordHasher(4)

	hash, err := hasher.Hash("hunter22")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if hash == "hunter22" {
		t.Fatalf("hash must not equal the plain password")
	}

	if !hasher.Compare(hash, "hunter22") {
		t.Fatalf("expected matching password to compare true")
	}
	if hasher.Compare(hash, "hunter23") {
		t.Fatalf("expected mismatched password to compare false")
	}
}

func TestOutOfRangeCostFallsBack(t *testing.T) {
	hasher := NewPasswordHasher(99)

	hash, err := hasher.Hash("pw")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !hasher.Compare(hash, "pw") {
		t.Fatalf("expected round trip to succeed")
	}
}
