package util

import "errors"

var (
	ErrEmailRegistered    = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountNotVerified = errors.New("account not verified")
	ErrNotParentAccount   = errors.New("not a parent account")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrNameRequired       = errors.New("name is required")
	ErrInvalidLevel       = errors.New("invalid grade level")
	ErrStudentNotFound    = errors.New("student not found")
	ErrInvalidJoinCode    = errors.New("invalid join code")
	ErrSessionNotFound    = errors.New("session not found")
	ErrAlreadyAnswered    = errors.New("session already answered")
	ErrNoQuestions        = errors.New("no questions available")
	ErrQuestionNotFound   = errors.New("question not found")
)
