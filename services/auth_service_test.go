package services

import (
	"errors"
	"testing"
	"time"
)

func TestRegisterAndLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := newTestDB(t)
	svc := NewAuthService(db)

	user, err := svc.Register("ana@test.com", "supersecret", "Ana")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Password == "supersecret" {
		t.Error("password stored in plaintext")
	}

	token, logged, err := svc.Login("ana@test.com", "supersecret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token == "" {
		t.Error("empty token")
	}
	if logged.LastLoginAt == nil {
		t.Error("last login not stamped")
	}

	if _, _, err := svc.Login("ana@test.com", "wrongpass"); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("wrong password = %v, want ErrUnauthorized", err)
	}
	if _, _, err := svc.Login("nobody@test.com", "supersecret"); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("unknown email = %v, want ErrUnauthorized", err)
	}
}

func TestLoginRefusesBannedAccount(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := newTestDB(t)
	svc := NewAuthService(db)

	user, err := svc.Register("banned@test.com", "supersecret", "B")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	now := time.Now()
	if err := db.Model(user).Updates(map[string]any{"is_active": false, "banned_at": now}).Error; err != nil {
		t.Fatalf("ban: %v", err)
	}

	// Indistinguishable from a bad password.
	if _, _, err := svc.Login("banned@test.com", "supersecret"); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("banned login = %v, want ErrUnauthorized", err)
	}
}

func TestCheckStatus(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db)

	if _, err := svc.Register("ok@test.com", "supersecret", ""); err != nil {
		t.Fatalf("Register: %v", err)
	}
	banned, err := svc.Register("out@test.com", "supersecret", "")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := db.Model(banned).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	cases := []struct {
		email string
		want  string
	}{
		{"ok@test.com", "ok"},
		{"out@test.com", "banned"},
		// Unknown emails look fine so account existence is not revealed.
		{"ghost@test.com", "ok"},
	}
	for _, c := range cases {
		got, err := svc.CheckStatus(c.email)
		if err != nil {
			t.Errorf("CheckStatus(%s): %v", c.email, err)
			continue
		}
		if got != c.want {
			t.Errorf("CheckStatus(%s) = %q, want %q", c.email, got, c.want)
		}
	}
}
