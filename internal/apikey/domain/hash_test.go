package domain

import "testing"

func TestHashKeyDeterministic(t *testing.T) {
	a := HashKey("lms_deadbeef")
	b := HashKey("lms_deadbeef")
	if a != b {
		t.Fatalf("expected identical hashes, got %s and %s", a, b)
	}
	if len(a) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(a))
	}
}

func TestHashKeyDistinguishesKeys(t *testing.T) {
	if HashKey("lms_aaaa") == HashKey("lms_aaab") {
		t.Fatal("different keys must not collide")
	}
	// The prefix participates in the digest.
	if HashKey("lms_secret") == HashKey("secret") {
		t.Fatal("prefixed and bare keys must hash differently")
	}
}
