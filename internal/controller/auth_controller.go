package controller

import (
	"errors"

	"tutor_backend/internal/service"
	"tutor_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

// swagger:model SignupRequest
type SignupRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Signup godoc
// @Summary Register a parent account
// @Description Creates an inactive parent account and emails a verification link
// @Tags auth
// @Accept json
// @Produce json
// @Param body body SignupRequest true "signup details"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /register [post]
func (c *AuthController) Signup(ctx *gin.Context) {
	var req SignupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.AuthService.Signup(ctx.Request.Context(), req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		if errors.Is(err, util.ErrEmailRegistered) {
			util.Conflict(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, gin.H{
		"email":             user.Email,
		"verification_sent": true,
	})
}

// swagger:model LoginRequest
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login godoc
// @Summary Parent login
// @Description Authenticates a verified parent and returns a JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "credentials"
// @Success 200 {object} util.Response
// @Failure 401 {object} util.Response
// @Router /login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	token, user, err := c.AuthService.Login(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrInvalidCredentials),
			errors.Is(err, util.ErrAccountNotVerified),
			errors.Is(err, util.ErrNotParentAccount):
			util.Error(ctx, 401, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{
		"token": token,
		"user":  user,
	})
}

type VerifyEmailRequest struct {
	Token string `json:"token" binding:"required"`
}

// VerifyEmail godoc
// @Summary Verify email address
// @Tags auth
// @Accept json
// @Produce json
// @Param body body VerifyEmailRequest true "verification token"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /verify-email [post]
func (c *AuthController) VerifyEmail(ctx *gin.Context) {
	var req VerifyEmailRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.AuthService.VerifyEmail(req.Token)
	if err != nil {
		if errors.Is(err, util.ErrInvalidToken) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"email": user.Email})
}

type PasswordResetRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// RequestPasswordReset godoc
// @Summary Request a password reset email
// @Description Always answers 200 so the endpoint cannot be used to probe addresses
// @Tags auth
// @Accept json
// @Produce json
// @Param body body PasswordResetRequest true "account email"
// @Success 200 {object} util.Response
// @Router /request-password-reset [post]
func (c *AuthController) RequestPasswordReset(ctx *gin.Context) {
	var req PasswordResetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.AuthService.RequestPasswordReset(ctx.Request.Context(), req.Email); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"message": "If an account with this email exists, a password reset email has been sent.",
	})
}

type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// ResetPassword godoc
// @Summary Reset password with token
// @Tags auth
// @Accept json
// @Produce json
// @Param body body ResetPasswordRequest true "reset token and new password"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /reset-password [post]
func (c *AuthController) ResetPassword(ctx *gin.Context) {
	var req ResetPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if _, err := c.AuthService.ResetPassword(req.Token, req.NewPassword); err != nil {
		if errors.Is(err, util.ErrInvalidToken) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"message": "Password reset successfully"})
}

// GetProfile godoc
// @Summary Current user profile
// @Tags auth
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Failure 401 {object} util.Response
// @Router /profile [get]
func (c *AuthController) GetProfile(ctx *gin.Context) {
	user := c.AuthService.GetCurrentUser(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	util.Success(ctx, user)
}
