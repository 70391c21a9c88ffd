package password

import "testing"

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("Sup3r-secret")
	if err != nil {
		t.Fatalf("failed to hash: %v", err)
	}
	if hash == "Sup3r-secret" {
		t.Fatal("hash must not equal the plain password")
	}
	if !Verify("Sup3r-secret", hash) {
		t.Fatal("expected password to verify")
	}
	if Verify("sup3r-secret", hash) {
		t.Fatal("different password must not verify")
	}
}

func TestHashesAreSalted(t *testing.T) {
	first, err := Hash("same-password")
	if err != nil {
		t.Fatalf("failed to hash: %v", err)
	}
	second, err := Hash("same-password")
	if err != nil {
		t.Fatalf("failed to hash: %v", err)
	}
	if first == second {
		t.Fatal("expected distinct salts to yield distinct hashes")
	}
}
