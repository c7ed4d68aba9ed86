package service

import (
	"testing"
	"time"

	"tryout_prep_backend/internal/config"
	"tryout_prep_backend/internal/model"
	"tryout_prep_backend/internal/repository"
	"tryout_prep_backend/internal/util"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	db := newTestDB(t)
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-test-secret-test-secret"
	cfg.JWT.ExpireTime = time.Hour
	return NewAuthService(repository.NewUserRepository(db), cfg)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newAuthService(t)

	user := &model.User{
		Name:     "Ani",
		Email:    "ani@example.com",
		Password: "hunter22",
	}
	if err := svc.Register(user); err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Password == "hunter22" {
		t.Error("password should be stored hashed")
	}

	dup := &model.User{Name: "Ani", Email: "ani@example.com", Password: "other"}
	if err := svc.Register(dup); err != util.ErrEmailRegistered {
		t.Errorf("duplicate register: got %v, want %v", err, util.ErrEmailRegistered)
	}

	token, err := svc.Login("ani@example.com", "hunter22")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := util.ParseJWT(token, "test-secret-test-secret-test-secret")
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != user.ID {
		t.Errorf("claims userID = %d, want %d", claims.UserID, user.ID)
	}
	if claims.Role != model.Student {
		t.Errorf("claims role = %s, want %s", claims.Role, model.Student)
	}

	if _, err := svc.Login("ani@example.com", "wrong"); err != util.ErrInvalidCredentials {
		t.Errorf("wrong password: got %v, want %v", err, util.ErrInvalidCredentials)
	}
	if _, err := svc.Login("nobody@example.com", "hunter22"); err != util.ErrInvalidCredentials {
		t.Errorf("unknown email: got %v, want %v", err, util.ErrInvalidCredentials)
	}
}
