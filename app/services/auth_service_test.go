package services_test

import (
	"errors"
	"testing"

	"github.com/shashiranjanraj/vastra/app/services"
	"github.com/shashiranjanraj/vastra/pkg/auth"
)

func TestSignupAndLogin(t *testing.T) {
	setupDB(t)
	svc := services.NewAuthService()

	user, err := svc.Signup("Asha", "asha@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if user.Password == "s3cret-pass" {
		t.Fatal("password stored in plaintext")
	}

	got, token, err := svc.Login("asha@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("logged in as user %d, want %d", got.ID, user.ID)
	}

	claims, err := auth.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != user.ID {
		t.Errorf("token user = %d, want %d", claims.UserID, user.ID)
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	setupDB(t)
	svc := services.NewAuthService()

	if _, err := svc.Signup("Asha", "asha@example.com", "pass-one"); err != nil {
		t.Fatal(err)
	}
	_, err := svc.Signup("Another", "asha@example.com", "pass-two")
	if !errors.Is(err, services.ErrEmailTaken) {
		t.Fatalf("err = %v, want ErrEmailTaken", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	setupDB(t)
	svc := services.NewAuthService()

	if _, err := svc.Signup("Asha", "asha@example.com", "right-pass"); err != nil {
		t.Fatal(err)
	}

	if _, _, err := svc.Login("asha@example.com", "wrong-pass"); !errors.Is(err, services.ErrInvalidLogin) {
		t.Fatalf("err = %v, want ErrInvalidLogin", err)
	}
	if _, _, err := svc.Login("nobody@example.com", "whatever"); !errors.Is(err, services.ErrInvalidLogin) {
		t.Fatalf("unknown email: err = %v, want ErrInvalidLogin", err)
	}
}
