package utils

import "testing"

func TestJWTRoundTrip(t *testing.T) {
	InitJWT("test-secret")

	token, err := GenerateJWT("cust-1", "alumno@lapiazza.com")
	if err != nil {
		t.Fatalf("GenerateJWT failed: %v", err)
	}

	claims, err := ValidateJWT(token)
	if err != nil {
		t.Fatalf("ValidateJWT failed: %v", err)
	}
	if claims.CustomerID != "cust-1" || claims.Email != "alumno@lapiazza.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestJWTRejectsTamperedToken(t *testing.T) {
	InitJWT("test-secret")

	token, err := GenerateJWT("cust-1", "alumno@lapiazza.com")
	if err != nil {
		t.Fatalf("GenerateJWT failed: %v", err)
	}

	if _, err := ValidateJWT(token + "x"); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}

	InitJWT("other-secret")
	if _, err := ValidateJWT(token); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}
