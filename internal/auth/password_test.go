package auth

import (
	"strings"
	"testing"
)

// cheap parameters keep the test fast
var testParams = ArgonParams{Memory: 1024, Time: 1, Threads: 1, SaltLen: 16, KeyLen: 32}

func TestHashAndVerify(t *testing.T) {
	phc, err := HashPassword("correct horse", testParams)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !strings.HasPrefix(phc, "$argon2id$v=19$m=1024,t=1,p=1$") {
		t.Fatalf("unexpected phc: %s", phc)
	}
	if !VerifyPassword("correct horse", phc) {
		t.Fatal("correct password rejected")
	}
	if VerifyPassword("wrong horse", phc) {
		t.Fatal("wrong password accepted")
	}
}

func TestHashUsesFreshSalt(t *testing.T) {
	a, _ := HashPassword("same", testParams)
	b, _ := HashPassword("same", testParams)
	if a == b {
		t.Fatal("two hashes of the same password are identical")
	}
}

func TestHashRejectsEmpty(t *testing.T) {
	if _, err := HashPassword("   ", testParams); err == nil {
		t.Fatal("empty password hashed")
	}
}

func TestVerifyMalformed(t *testing.T) {
	for _, phc := range []string{
		"",
		"plain",
		"$argon2i$v=19$m=1024,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$m=0,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$m=1024,t=1,p=1$!!!$a2V5",
		"$argon2id$v=19$m=1024,t=1,p=1$c2FsdA$",
	} {
		if VerifyPassword("x", phc) {
			t.Fatalf("malformed phc %q verified", phc)
		}
	}
}
