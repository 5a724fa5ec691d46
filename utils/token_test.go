package utils

import (
	"testing"
)

func TestJwtRoundTrip(t *testing.T) {
	t.Setenv("API_SECRET", "first-secret")

	token, err := JwtGenerate(42, RoleViewer)
	if err != nil {
		t.Fatalf("JwtGenerate: %v", err)
	}
	claim, err := JwtValidate(token)
	if err != nil {
		t.Fatalf("JwtValidate: %v", err)
	}
	if claim.ID != 42 || claim.Role != RoleViewer {
		t.Fatalf("claim = %+v", claim)
	}

	t.Setenv("API_SECRET", "rotated-secret")
	if _, err := JwtValidate(token); err == nil {
		t.Fatalf("token signed with the old secret was accepted")
	}
}

func TestJwtRequiresSecret(t *testing.T) {
	t.Setenv("API_SECRET", "")
	if _, err := JwtGenerate(1, RoleOperator); err == nil {
		t.Fatalf("expected an error without API_SECRET")
	}
}
