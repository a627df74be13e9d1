package services

import (
	"context"
	"errors"
	"testing"

	"dgl-microfin/internal/config"
	"dgl-microfin/internal/core/domain"
)

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:           "test-access-secret",
			RefreshSecret:    "test-refresh-secret",
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
	}
}

type authFixture struct {
	svc      *AuthService
	userRepo *fakeUserRepo
	tokens   *fakeRefreshTokenRepo
	audit    *fakeAuditRepo
}

func newAuthFixture() *authFixture {
	userRepo := newFakeUserRepo()
	tokenRepo := newFakeRefreshTokenRepo()
	auditRepo := newFakeAuditRepo()
	return &authFixture{
		svc:      NewAuthService(userRepo, tokenRepo, NewAuditService(auditRepo), testConfig()),
		userRepo: userRepo,
		tokens:   tokenRepo,
		audit:    auditRepo,
	}
}

func TestAuthServiceLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials issue a token pair", func(t *testing.T) {
		f := newAuthFixture()
		seedUser(t, f.userRepo, "admin", "ADMIN", true)

		resp, err := f.svc.Login(ctx, &LoginInput{Username: "admin", Password: "secret123"})
		if err != nil {
			t.Fatalf("Login: %v", err)
		}
		if resp.AccessToken == "" || resp.RefreshToken == "" {
			t.Error("tokens not issued")
		}
		if resp.User.Username != "admin" {
			t.Errorf("user = %s, want admin", resp.User.Username)
		}
		if len(f.audit.entries) != 1 || f.audit.entries[0].Action != domain.AuditLogin {
			t.Errorf("audit entries = %+v, want one LOGIN", f.audit.entries)
		}
		if f.audit.entries[0].Actor != "admin" {
			t.Errorf("audit actor = %s, want admin", f.audit.entries[0].Actor)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		f := newAuthFixture()
		seedUser(t, f.userRepo, "admin", "ADMIN", true)

		_, err := f.svc.Login(ctx, &LoginInput{Username: "admin", Password: "wrong"})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("err = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		f := newAuthFixture()

		_, err := f.svc.Login(ctx, &LoginInput{Username: "ghost", Password: "secret123"})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("err = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("inactive user", func(t *testing.T) {
		f := newAuthFixture()
		seedUser(t, f.userRepo, "gone", "AGENT", false)

		_, err := f.svc.Login(ctx, &LoginInput{Username: "gone", Password: "secret123"})
		if !errors.Is(err, ErrUserInactive) {
			t.Fatalf("err = %v, want ErrUserInactive", err)
		}
	})
}

func TestAuthServiceRefresh(t *testing.T) {
	ctx := context.Background()

	login := func(t *testing.T, f *authFixture) *AuthResponse {
		t.Helper()
		seedUser(t, f.userRepo, "admin", "ADMIN", true)
		resp, err := f.svc.Login(ctx, &LoginInput{Username: "admin", Password: "secret123"})
		if err != nil {
			t.Fatalf("Login: %v", err)
		}
		return resp
	}

	t.Run("rotates the refresh token", func(t *testing.T) {
		f := newAuthFixture()
		first := login(t, f)

		second, err := f.svc.Refresh(ctx, first.RefreshToken)
		if err != nil {
			t.Fatalf("Refresh: %v", err)
		}
		if second.RefreshToken == first.RefreshToken {
			t.Error("refresh token not rotated")
		}

		// The first token is now revoked
		if _, err := f.svc.Refresh(ctx, first.RefreshToken); !errors.Is(err, ErrTokenRevoked) {
			t.Errorf("err = %v, want ErrTokenRevoked", err)
		}
	})

	t.Run("garbage token", func(t *testing.T) {
		f := newAuthFixture()

		if _, err := f.svc.Refresh(ctx, "not-a-jwt"); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("err = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("logout revokes the token", func(t *testing.T) {
		f := newAuthFixture()
		resp := login(t, f)

		if err := f.svc.Logout(ctx, resp.RefreshToken); err != nil {
			t.Fatalf("Logout: %v", err)
		}
		if _, err := f.svc.Refresh(ctx, resp.RefreshToken); !errors.Is(err, ErrTokenRevoked) {
			t.Errorf("err = %v, want ErrTokenRevoked", err)
		}
	})

	t.Run("logout all revokes every session", func(t *testing.T) {
		f := newAuthFixture()
		first := login(t, f)
		second, err := f.svc.Login(ctx, &LoginInput{Username: "admin", Password: "secret123"})
		if err != nil {
			t.Fatalf("second login: %v", err)
		}

		if err := f.svc.LogoutAll(ctx, first.User.ID); err != nil {
			t.Fatalf("LogoutAll: %v", err)
		}
		for _, token := range []string{first.RefreshToken, second.RefreshToken} {
			if _, err := f.svc.Refresh(ctx, token); !errors.Is(err, ErrTokenRevoked) {
				t.Errorf("err = %v, want ErrTokenRevoked", err)
			}
		}
	})
}
