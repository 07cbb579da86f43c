package commands

import (
	"testing"

	"foodzippy/backend/internal/auth"
)

const testKey = "test-signing-key"

func TestGenTokenRoundTrip(t *testing.T) {
	claims := auth.Claims{
		UserId:   7,
		Username: "agent42",
		FullName: "Field Agent",
		Role:     auth.RoleAgent,
	}

	access, refresh, err := GenToken(claims, testKey)
	if err != nil {
		t.Fatalf("GenToken: %v", err)
	}
	if access == "" || refresh == "" {
		t.Fatal("empty token pair")
	}

	a, err := auth.NewAuth(testKey)
	if err != nil {
		t.Fatalf("NewAuth: %v", err)
	}

	parsed, err := a.ValidateToken(access)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if parsed.UserId != 7 || parsed.Username != "agent42" || parsed.Role != auth.RoleAgent {
		t.Errorf("claims lost in transit: %+v", parsed)
	}
	if parsed.Type != auth.TypeAccess {
		t.Errorf("access token type = %q", parsed.Type)
	}
}

func TestValidateTokenRejectsRefresh(t *testing.T) {
	_, refresh, err := GenToken(auth.Claims{UserId: 1, Role: auth.RoleEmployee}, testKey)
	if err != nil {
		t.Fatalf("GenToken: %v", err)
	}

	a, _ := auth.NewAuth(testKey)
	if _, err := a.ValidateToken(refresh); err == nil {
		t.Fatal("refresh token accepted as access token")
	}
}

func TestVerifyRefreshToken(t *testing.T) {
	access, refresh, err := GenToken(auth.Claims{UserId: 3, Username: "agent3", Role: auth.RoleAgent}, testKey)
	if err != nil {
		t.Fatalf("GenToken: %v", err)
	}

	claims, err := VerifyRefreshToken(refresh, testKey)
	if err != nil {
		t.Fatalf("VerifyRefreshToken: %v", err)
	}
	if claims.UserId != 3 || claims.Username != "agent3" {
		t.Errorf("claims lost in transit: %+v", claims)
	}

	if _, err := VerifyRefreshToken(access, testKey); err == nil {
		t.Fatal("access token accepted as refresh token")
	}

	if _, err := VerifyRefreshToken(refresh, "other-key"); err == nil {
		t.Fatal("token verified against the wrong key")
	}
}
