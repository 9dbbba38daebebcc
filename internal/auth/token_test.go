package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

func TestGenerateAndValidateToken(t *testing.T) {
	Init("test-secret", time.Hour)

	token, err := GenerateToken("Ada", RoleStudent)
	if err != nil {
		t.Fatal(err)
	}
	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatal(err)
	}
	if claims.Name != "Ada" || claims.Role != RoleStudent {
		t.Errorf("unexpected claims %+v", claims)
	}
	if claims.ID == "" {
		t.Error("expected a token id")
	}
}

func TestGenerateToken_RejectsUnknownRole(t *testing.T) {
	Init("test-secret", time.Hour)
	if _, err := GenerateToken("Ada", "admin"); !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestValidateToken_WrongKey(t *testing.T) {
	Init("first-secret", time.Hour)
	token, err := GenerateToken("Ada", RoleStudent)
	if err != nil {
		t.Fatal(err)
	}

	Init("second-secret", time.Hour)
	if _, err := ValidateToken(token); err == nil {
		t.Fatal("token signed with another key must be rejected")
	}
}

func TestValidateToken_Expired(t *testing.T) {
	Init("test-secret", time.Hour)
	claims := &Claims{
		Name: "Ada",
		Role: RoleStudent,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := ValidateToken(token); !errors.Is(err, jwt.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestInit_EmptySecretUsesRandomKey(t *testing.T) {
	Init("", time.Hour)
	token, err := GenerateToken("Ada", RoleStudent)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ValidateToken(token); err != nil {
		t.Fatalf("token must validate within the same process: %v", err)
	}
}
