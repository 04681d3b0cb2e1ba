package security_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/framehouse-studio/booking-backend/pkg/config"
	"github.com/framehouse-studio/booking-backend/pkg/security"
)

func testHasher() *security.Hasher {
	return security.NewHasher(config.PasswordConfig{
		ArgonMemoryKB:    8 * 1024,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	})
}

func TestHashAndVerify(t *testing.T) {
	h := testHasher()
	hash, err := h.Hash("very-secure-password")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$v=19$") {
		t.Fatalf("unexpected hash format %q", hash)
	}

	ok, err := h.Verify("very-secure-password", hash)
	if err != nil || !ok {
		t.Fatalf("expected match, got ok=%v err=%v", ok, err)
	}
	ok, err = h.Verify("bogus-password", hash)
	if err != nil || ok {
		t.Fatalf("expected mismatch, got ok=%v err=%v", ok, err)
	}
}

func TestVerifyAcrossParameterChange(t *testing.T) {
	hash, err := testHasher().Hash("wedding-video-2025")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	stronger := security.NewHasher(config.PasswordConfig{ArgonMemoryKB: 16 * 1024, ArgonTime: 2, ArgonParallelism: 2, ArgonSaltLen: 16, ArgonKeyLen: 32})
	if ok, err := stronger.Verify("wedding-video-2025", hash); err != nil || !ok {
		t.Fatalf("expected hash to verify with different params, got ok=%v err=%v", ok, err)
	}
}

func TestHashRejectsShortPassword(t *testing.T) {
	if _, err := testHasher().Hash("short"); !errors.Is(err, security.ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
}

func TestVerifyBadHash(t *testing.T) {
	for _, encoded := range []string{"not-a-hash", "$bcrypt$v=19$m=1,t=1,p=1$aa$bb", "$argon2id$v=19$m=x$aa$bb"} {
		if _, err := testHasher().Verify("irrelevant", encoded); !errors.Is(err, security.ErrInvalidHash) {
			t.Fatalf("expected ErrInvalidHash for %q, got %v", encoded, err)
		}
	}
}
