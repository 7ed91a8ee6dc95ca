package api

import (
	"errors"
	"strings"
	"testing"
)

func TestSecureCookieCodecRoundTripBindsPurpose(t *testing.T) {
	t.Parallel()

	codec, err := newSecureCookieCodec(testSecretKey)
	if err != nil {
		t.Fatalf("init codec: %v", err)
	}

	sealed, err := codec.seal(authCookiePurpose, []byte("token-value"))
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	if !strings.HasPrefix(sealed, secureCookieVersion+".") || strings.Contains(sealed, "token-value") {
		t.Fatalf("unexpected sealed value %q", sealed)
	}

	opened, err := codec.open(authCookiePurpose, sealed)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if string(opened) != "token-value" {
		t.Fatalf("expected token-value, got %q", opened)
	}

	if _, err := codec.open(pendingInviteCookiePurpose, sealed); !errors.Is(err, errInvalidSecureCookieValue) {
		t.Fatalf("expected purpose mismatch to fail, got %v", err)
	}
	if _, err := codec.open(authCookiePurpose, "v2."+strings.TrimPrefix(sealed, "v1.")); !errors.Is(err, errInvalidSecureCookieValue) {
		t.Fatalf("expected unknown version to fail, got %v", err)
	}

	other, err := newSecureCookieCodec([]byte("another-secret-key-with-32-chars!!"))
	if err != nil {
		t.Fatalf("init second codec: %v", err)
	}
	if _, err := other.open(authCookiePurpose, sealed); !errors.Is(err, errInvalidSecureCookieValue) {
		t.Fatalf("expected foreign key to fail, got %v", err)
	}
}

func TestSecureCookieCodecRequiresKey(t *testing.T) {
	t.Parallel()

	if _, err := newSecureCookieCodec(nil); err == nil {
		t.Fatal("expected error for empty key")
	}
}
