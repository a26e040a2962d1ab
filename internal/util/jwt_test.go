package util

import (
	"testing"
	"time"

	"tutor_backend/internal/model"
)

func testUser() *model.User {
	u := &model.User{
		Email: "parent@example.com",
		Role:  model.Parent,
	}
	u.ID = 7
	return u
}

func TestJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWT(testUser(), 0, "secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	claims, err := ParseJWT(token, "secret")
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if claims.UserID != 7 || claims.Email != "parent@example.com" || claims.Role != model.Parent {
		t.Errorf("claims = %+v", claims)
	}
	if claims.StudentID != 0 {
		t.Errorf("parent token carries student binding %d", claims.StudentID)
	}
}

func TestJWT_StudentBinding(t *testing.T) {
	token, err := GenerateJWT(testUser(), 42, "secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	claims, err := ParseJWT(token, "secret")
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if claims.StudentID != 42 {
		t.Errorf("StudentID = %d, want 42", claims.StudentID)
	}
	// The credential is still the parent's identity.
	if claims.UserID != 7 {
		t.Errorf("UserID = %d, want 7", claims.UserID)
	}
}

func TestParseJWT_WrongSecret(t *testing.T) {
	token, err := GenerateJWT(testUser(), 0, "secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	if _, err := ParseJWT(token, "other-secret"); err == nil {
		t.Error("token verified with the wrong secret")
	}
}

func TestParseJWT_Expired(t *testing.T) {
	token, err := GenerateJWT(testUser(), 0, "secret", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	if _, err := ParseJWT(token, "secret"); err == nil {
		t.Error("expired token accepted")
	}
}
