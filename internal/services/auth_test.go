package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ownessay/ownessay-backend/internal/apperrors"
	"github.com/ownessay/ownessay-backend/internal/repos"
	"github.com/ownessay/ownessay-backend/internal/requestdata"
)

func newAuthService(t *testing.T) (AuthService, *testFixture) {
	t.Helper()
	f := newFixture(t)
	svc := NewAuthService(f.db, f.log, repos.NewUserRepo(f.db, f.log), nil, "test-secret", time.Hour, 24*time.Hour)
	return svc, f
}

func wantAuthCode(t *testing.T, err error, code string) {
	t.Helper()
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *apperrors.Error with code %s, got %v", code, err)
	}
	if appErr.Code != code {
		t.Fatalf("expected code %s, got %s (%v)", code, appErr.Code, err)
	}
}

func TestRegister_And_Login(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "writer@example.com", "writer", "hunter2pass")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Email != "writer@example.com" || user.Nickname != "writer" {
		t.Fatalf("unexpected user info: %+v", user)
	}

	tokens, err := svc.Login(ctx, "writer@example.com", "hunter2pass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if tokens.AccessToken == "" || tokens.RefreshToken == "" || tokens.TokenType != "Bearer" {
		t.Fatalf("unexpected token response: %+v", tokens)
	}

	// The access token must round-trip back to the same user.
	authCtx, err := svc.ContextFromToken(ctx, tokens.AccessToken)
	if err != nil {
		t.Fatalf("token rejected: %v", err)
	}
	rd := requestdata.GetRequestData(authCtx)
	if rd == nil || rd.Email != "writer@example.com" {
		t.Fatalf("request data not populated: %+v", rd)
	}
}

func TestRegister_DuplicateEmailAndNickname(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "dup@example.com", "first", "hunter2pass"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	_, err := svc.Register(ctx, "dup@example.com", "second", "hunter2pass")
	wantAuthCode(t, err, "AUTH001")
	if !apperrors.IsKind(err, apperrors.KindConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}

	_, err = svc.Register(ctx, "other@example.com", "first", "hunter2pass")
	wantAuthCode(t, err, "AUTH002")
}

func TestLogin_Failures(t *testing.T) {
	svc, f := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, "nobody@example.com", "whatever")
	wantAuthCode(t, err, "AUTH003")

	if _, err := svc.Register(ctx, "active@example.com", "active", "hunter2pass"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	_, err = svc.Login(ctx, "active@example.com", "wrongpass")
	wantAuthCode(t, err, "AUTH004")

	if err := f.db.Table("users").Where("email = ?", "active@example.com").
		Update("is_active", false).Error; err != nil {
		t.Fatalf("failed to disable user: %v", err)
	}
	_, err = svc.Login(ctx, "active@example.com", "hunter2pass")
	wantAuthCode(t, err, "AUTH005")
}

func TestContextFromToken_Rejections(t *testing.T) {
	svc, f := newAuthService(t)
	ctx := context.Background()

	_, err := svc.ContextFromToken(ctx, "not-a-token")
	if !apperrors.IsKind(err, apperrors.KindUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}

	if _, err := svc.Register(ctx, "signer@example.com", "signer", "hunter2pass"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	tokens, err := svc.Login(ctx, "signer@example.com", "hunter2pass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	// A verifier holding a different secret rejects the token outright.
	other := NewAuthService(f.db, f.log, repos.NewUserRepo(f.db, f.log), nil, "other-secret", time.Hour, time.Hour)
	_, err = other.ContextFromToken(ctx, tokens.AccessToken)
	if !apperrors.IsKind(err, apperrors.KindUnauthorized) {
		t.Fatalf("expected unauthorized for wrong secret, got %v", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "tz@example.com", "tz", "hunter2pass")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	nickname := "newnick"
	timezone := "UTC"
	updated, err := svc.UpdateProfile(ctx, user.ID, &nickname, &timezone)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Nickname != "newnick" || updated.Timezone != "UTC" {
		t.Fatalf("unexpected profile: %+v", updated)
	}

	// Nickname collisions with another user are rejected.
	if _, err := svc.Register(ctx, "taken@example.com", "takennick", "hunter2pass"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	taken := "takennick"
	_, err = svc.UpdateProfile(ctx, user.ID, &taken, nil)
	wantAuthCode(t, err, "AUTH002")

	_, err = svc.GetProfile(ctx, uuid.New())
	wantAuthCode(t, err, "AUTH003")
}
