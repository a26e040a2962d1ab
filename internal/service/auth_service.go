package service

import (
	"context"
	"errors"
	"time"

	"tutor_backend/internal/config"
	"tutor_backend/internal/model"
	"tutor_backend/internal/repository"
	"tutor_backend/internal/util"
	"tutor_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo *repository.UserRepository
	Email    EmailSender
	Cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, email EmailSender, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Email:    email,
		Cfg:      cfg,
	}
}

// Signup registers a parent account. The account stays inactive until the
// emailed verification token is confirmed.
func (s *AuthService) Signup(ctx context.Context, email, password, firstName, lastName string) (*model.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:                  email,
		Password:               string(hashed),
		FirstName:              firstName,
		LastName:               lastName,
		Role:                   model.Parent,
		IsActive:               false,
		EmailVerificationToken: uuid.New().String(),
	}
	if err := s.UserRepo.Create(user); err != nil {
		// The unique index on email is the authoritative duplicate check;
		// a pre-select would race with concurrent signups.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrEmailRegistered
		}
		return nil, err
	}

	if err := s.Email.SendVerificationEmail(ctx, user.Email, user.EmailVerificationToken); err != nil {
		// The account exists either way; the token can be re-sent.
		logger.Log.Error("Failed to send verification email",
			zap.String("email", user.Email),
			zap.Error(err),
		)
	}
	return user, nil
}

func (s *AuthService) VerifyEmail(token string) (*model.User, error) {
	user, err := s.UserRepo.FindByVerificationToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrInvalidToken
		}
		return nil, err
	}

	user.IsActive = true
	user.EmailVerificationToken = ""
	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login authenticates a parent by email and password and returns a signed
// JWT. Unverified and non-parent accounts are rejected with distinct errors.
func (s *AuthService) Login(email, password string) (string, *model.User, error) {
	user, err := s.UserRepo.FindByEmail(email)
	if err != nil {
		return "", nil, util.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, util.ErrInvalidCredentials
	}
	if !user.IsActive {
		return "", nil, util.ErrAccountNotVerified
	}
	if !user.IsParent() && user.Role != model.Admin {
		return "", nil, util.ErrNotParentAccount
	}

	user.LastLogin = time.Now()
	if err := s.UserRepo.Update(user); err != nil {
		logger.Log.Warn("Failed to record last login", zap.Uint("user_id", user.ID), zap.Error(err))
	}

	token, err := util.GenerateJWT(user, 0, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// RequestPasswordReset issues a reset token and mails it. An unknown email
// is not an error so the endpoint never reveals which addresses exist.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.UserRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	user.PasswordResetToken = uuid.New().String()
	if err := s.UserRepo.Update(user); err != nil {
		return err
	}

	return s.Email.SendPasswordResetEmail(ctx, user.Email, user.PasswordResetToken)
}

// ResetPassword sets a new password for the token's owner. An account that
// never finished email verification is activated here, since completing a
// reset proves control of the mailbox.
func (s *AuthService) ResetPassword(token, newPassword string) (*model.User, error) {
	user, err := s.UserRepo.FindByResetToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrInvalidToken
		}
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user.Password = string(hashed)
	user.PasswordResetToken = ""
	if !user.IsActive {
		user.IsActive = true
		user.EmailVerificationToken = ""
	}
	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) GetCurrentUser(c *gin.Context) *model.User {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		return nil
	}

	user, err := s.UserRepo.FindByID(claims.UserID)
	if err != nil {
		return nil
	}
	return user
}
