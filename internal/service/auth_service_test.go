package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"tutor_backend/internal/config"
	"tutor_backend/internal/model"
	"tutor_backend/internal/repository"
	"tutor_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
)

// recordingEmail captures dispatched messages instead of talking to SES.
type recordingEmail struct {
	verifications map[string]string
	resets        map[string]string
}

func newRecordingEmail() *recordingEmail {
	return &recordingEmail{
		verifications: map[string]string{},
		resets:        map[string]string{},
	}
}

func (r *recordingEmail) SendVerificationEmail(_ context.Context, to, token string) error {
	r.verifications[to] = token
	return nil
}

func (r *recordingEmail) SendPasswordResetEmail(_ context.Context, to, token string) error {
	r.resets[to] = token
	return nil
}

func newAuthService(t *testing.T) (*AuthService, *recordingEmail) {
	t.Helper()
	db := newTestDB(t)
	email := newRecordingEmail()
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpireTime = time.Hour
	return NewAuthService(repository.NewUserRepository(db), email, cfg), email
}

func TestSignup_SendsVerificationAndBlocksLogin(t *testing.T) {
	svc, email := newAuthService(t)
	ctx := context.Background()

	user, err := svc.Signup(ctx, "parent@example.com", "password123", "Jane", "Tan")
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if user.IsActive {
		t.Error("fresh signup must be inactive until verification")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")) != nil {
		t.Error("password not stored as a bcrypt hash of the input")
	}

	token, ok := email.verifications["parent@example.com"]
	if !ok || token == "" {
		t.Fatal("verification email not dispatched")
	}

	if _, _, err := svc.Login("parent@example.com", "password123"); !errors.Is(err, util.ErrAccountNotVerified) {
		t.Errorf("login before verification: got %v, want ErrAccountNotVerified", err)
	}

	if _, err := svc.VerifyEmail(token); err != nil {
		t.Fatalf("VerifyEmail: %v", err)
	}

	jwtToken, _, err := svc.Login("parent@example.com", "password123")
	if err != nil {
		t.Fatalf("login after verification: %v", err)
	}
	claims, err := util.ParseJWT(jwtToken, "test-secret")
	if err != nil {
		t.Fatalf("issued token does not parse: %v", err)
	}
	if claims.UserID != user.ID || claims.StudentID != 0 {
		t.Errorf("claims = %+v, want user %d with no student binding", claims, user.ID)
	}
}

func TestSignup_DuplicateEmail(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	if _, err := svc.Signup(ctx, "parent@example.com", "password123", "", ""); err != nil {
		t.Fatalf("first signup: %v", err)
	}
	// The duplicate is reported by the unique index on insert, so the same
	// mapping holds for concurrent signups of the same address.
	if _, err := svc.Signup(ctx, "parent@example.com", "password456", "", ""); !errors.Is(err, util.ErrEmailRegistered) {
		t.Errorf("duplicate signup: got %v, want ErrEmailRegistered", err)
	}

	var count int64
	if err := svc.UserRepo.DB.Model(&model.User{}).Where("email = ?", "parent@example.com").Count(&count).Error; err != nil {
		t.Fatalf("count users: %v", err)
	}
	if count != 1 {
		t.Errorf("expected a single account for the address, found %d", count)
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	svc, email := newAuthService(t)
	ctx := context.Background()

	if _, err := svc.Signup(ctx, "parent@example.com", "password123", "", ""); err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if _, err := svc.VerifyEmail(email.verifications["parent@example.com"]); err != nil {
		t.Fatalf("VerifyEmail: %v", err)
	}

	if _, _, err := svc.Login("parent@example.com", "wrong"); !errors.Is(err, util.ErrInvalidCredentials) {
		t.Errorf("wrong password: got %v, want ErrInvalidCredentials", err)
	}
	if _, _, err := svc.Login("nobody@example.com", "password123"); !errors.Is(err, util.ErrInvalidCredentials) {
		t.Errorf("unknown email: got %v, want ErrInvalidCredentials", err)
	}
}

func TestVerifyEmail_BadToken(t *testing.T) {
	svc, _ := newAuthService(t)
	if _, err := svc.VerifyEmail("not-a-token"); !errors.Is(err, util.ErrInvalidToken) {
		t.Errorf("got %v, want ErrInvalidToken", err)
	}
}

func TestPasswordResetFlow(t *testing.T) {
	svc, email := newAuthService(t)
	ctx := context.Background()

	if _, err := svc.Signup(ctx, "parent@example.com", "password123", "", ""); err != nil {
		t.Fatalf("Signup: %v", err)
	}

	if err := svc.RequestPasswordReset(ctx, "parent@example.com"); err != nil {
		t.Fatalf("RequestPasswordReset: %v", err)
	}
	token, ok := email.resets["parent@example.com"]
	if !ok || token == "" {
		t.Fatal("reset email not dispatched")
	}

	user, err := svc.ResetPassword(token, "newpassword456")
	if err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}
	// Completing a reset proves mailbox control, so the unverified account
	// is activated along the way.
	if !user.IsActive {
		t.Error("account should be active after password reset")
	}

	if _, _, err := svc.Login("parent@example.com", "newpassword456"); err != nil {
		t.Errorf("login with new password: %v", err)
	}
	if _, _, err := svc.Login("parent@example.com", "password123"); !errors.Is(err, util.ErrInvalidCredentials) {
		t.Errorf("old password still works: got %v", err)
	}

	// Tokens are single-use.
	if _, err := svc.ResetPassword(token, "thirdpassword"); !errors.Is(err, util.ErrInvalidToken) {
		t.Errorf("reused token: got %v, want ErrInvalidToken", err)
	}
}

func TestRequestPasswordReset_UnknownEmailIsSilent(t *testing.T) {
	svc, email := newAuthService(t)

	if err := svc.RequestPasswordReset(context.Background(), "nobody@example.com"); err != nil {
		t.Fatalf("unknown email must not error: %v", err)
	}
	if len(email.resets) != 0 {
		t.Error("no email should be sent for an unknown address")
	}
}
