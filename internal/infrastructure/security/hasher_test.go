package security

import (
	"context"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_HashAndCompare(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	ctx := context.Background()

	hash, err := h.Hash(ctx, "s3cret!")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "s3cret!" {
		t.Fatalf("expected hashed output")
	}
	if !h.Compare(ctx, "s3cret!", hash) {
		t.Fatalf("expected match")
	}
	if h.Compare(ctx, "wrong", hash) {
		t.Fatalf("expected mismatch")
	}
}

func TestBcryptHasher_SaltsEachHash(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	a, _ := h.Hash(context.Background(), "same")
	b, _ := h.Hash(context.Background(), "same")
	if a == b {
		t.Fatalf("expected distinct hashes for the same input")
	}
}

func TestBcryptHasher_MalformedHash(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	if h.Compare(context.Background(), "x", "not-a-hash") {
		t.Fatalf("expected false for malformed hash")
	}
	if h.Compare(context.Background(), "", "") {
		t.Fatalf("expected false for empty hash")
	}
}

func TestNewBcryptHasher_CostClamping(t *testing.T) {
	cases := []struct {
		in, want int
	}{
		{0, DefaultBcryptCost},
		{1, bcrypt.MinCost},
		{10, 10},
		{99, bcrypt.MaxCost},
	}
	for _, tc := range cases {
		if got := NewBcryptHasher(tc.in).Cost(); got != tc.want {
			t.Fatalf("cost %d: expected %d, got %d", tc.in, tc.want, got)
		}
	}
}

var testArgon2Params = Argon2Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 8, KeyLength: 16}

func TestArgon2Hasher_HashAndCompare(t *testing.T) {
	h := NewArgon2Hasher(testArgon2Params)
	ctx := context.Background()

	hash, err := h.Hash(ctx, "s3cret!")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$v=19$m=1024,t=1,p=1$") {
		t.Fatalf("unexpected encoding: %s", hash)
	}
	if !h.Compare(ctx, "s3cret!", hash) {
		t.Fatalf("expected match")
	}
	if h.Compare(ctx, "wrong", hash) {
		t.Fatalf("expected mismatch")
	}
}

func TestArgon2Hasher_VerifiesWithStoredParams(t *testing.T) {
	old := NewArgon2Hasher(testArgon2Params)
	hash, _ := old.Hash(context.Background(), "pw1234")

	current := NewArgon2Hasher(Argon2Params{Memory: 2048, Iterations: 2, Parallelism: 1, SaltLength: 16, KeyLength: 32})
	if !current.Compare(context.Background(), "pw1234", hash) {
		t.Fatalf("expected hash from older params to verify")
	}
}

func TestArgon2Hasher_MalformedHash(t *testing.T) {
	h := NewArgon2Hasher(testArgon2Params)
	for _, bad := range []string{"", "$argon2id$", "$bcrypt$v=19$m=1,t=1,p=1$aa$bb", "$argon2id$v=18$m=1,t=1,p=1$aa$bb"} {
		if h.Compare(context.Background(), "x", bad) {
			t.Fatalf("expected false for %q", bad)
		}
	}
}
