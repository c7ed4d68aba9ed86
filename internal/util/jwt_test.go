package util

import (
	"testing"
	"time"

	"tryout_prep_backend/internal/model"
)

func TestJWTRoundTrip(t *testing.T) {
	user := &model.User{Email: "ani@example.com", Role: model.Admin}
	user.ID = 42
	secret := "test-secret-test-secret-test-secret"

	token, err := GenerateJWT(user, secret, time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := ParseJWT(token, secret)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != 42 || claims.Role != model.Admin || claims.Email != "ani@example.com" {
		t.Errorf("claims = %+v", claims)
	}

	if _, err := ParseJWT(token, "different-secret"); err == nil {
		t.Error("token should not verify under another secret")
	}
}

func TestJWTExpired(t *testing.T) {
	user := &model.User{Email: "ani@example.com"}
	user.ID = 1

	token, err := GenerateJWT(user, "secret", -time.Minute)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := ParseJWT(token, "secret"); err == nil {
		t.Error("expired token should be rejected")
	}
}
