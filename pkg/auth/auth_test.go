package auth

import (
	"os"
	"testing"
)

func TestHMACKeyRoundTrip(t *testing.T) {
	os.Setenv("API_MASTER_SECRET", "test-secret")
	defer os.Unsetenv("API_MASTER_SECRET")

	key := GenerateHMACKey("reportbot")
	name, err := VerifyHMACKey(key)
	if err != nil {
		t.Fatalf("expected valid key, got error: %v", err)
	}
	if name != "reportbot" {
		t.Errorf("expected name 'reportbot', got %q", name)
	}
}

func TestHMACKeyRejectsTampering(t *testing.T) {
	os.Setenv("API_MASTER_SECRET", "test-secret")
	defer os.Unsetenv("API_MASTER_SECRET")

	key := GenerateHMACKey("reportbot")

	if _, err := VerifyHMACKey("imposter." + key[len("reportbot."):]); err == nil {
		t.Error("expected error for renamed key")
	}
	if _, err := VerifyHMACKey("no-signature-here"); err == nil {
		t.Error("expected error for malformed key")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := CreateToken("staff-1", "tenant-1", true)
	if err != nil {
		t.Fatalf("could not create token: %v", err)
	}

	claims, err := VerifyToken(token)
	if err != nil {
		t.Fatalf("could not verify token: %v", err)
	}
	if claims.UserID != "staff-1" || claims.TenantID != "tenant-1" || !claims.IsAdmin {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("hunter2")
	if err != nil {
		t.Fatalf("could not hash password: %v", err)
	}
	if !CheckPasswordHash("hunter2", hash) {
		t.Error("expected matching password to verify")
	}
	if CheckPasswordHash("wrong", hash) {
		t.Error("expected non-matching password to fail")
	}
}
