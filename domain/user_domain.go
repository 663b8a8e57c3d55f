package domain

import (
	"errors"
)

var (
	MessageSuccessRegister       = "user registered successfully"
	MessageSuccessLogin          = "login success"
	MessageSuccessGetProfile     = "success get profile"
	MessageSuccessUpdateUser     = "user updated successfully"
	MessageSuccessSendVerify     = "verification email sent"
	MessageSuccessVerifyEmail    = "email verified successfully"
	MessageSuccessForgotPassword = "password reset email sent"
	MessageSuccessResetPassword  = "password reset successfully"

	MessageFailedRegister       = "failed to register user"
	MessageFailedLogin          = "failed to login"
	MessageFailedGetProfile     = "failed to get profile"
	MessageFailedUpdateUser     = "failed to update user"
	MessageFailedSendVerify     = "failed to send verification email"
	MessageFailedVerifyEmail    = "failed to verify email"
	MessageFailedForgotPassword = "failed to send password reset email"
	MessageFailedResetPassword  = "failed to reset password"

	ErrEmailAlreadyExists   = errors.New("email already registered")
	ErrUserNotFound         = errors.New("user not found")
	ErrCredentialsInvalid   = errors.New("invalid email or password")
	ErrUserInactive         = errors.New("user account is inactive")
	ErrEmailAlreadyVerified = errors.New("email already verified")
)

type (
	RegisterRequest struct {
		Email    string `json:"email" validate:"required,email,max=255"`
		Password string `json:"password" validate:"required,min=5"`
		Name     string `json:"name" validate:"required,max=255"`
	}

	RegisterResponse struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string `json:"token"`
		Role  string `json:"role"`
	}

	UserResponse struct {
		ID         string `json:"id"`
		Email      string `json:"email"`
		Name       string `json:"name"`
		IsStaff    bool   `json:"is_staff"`
		IsVerified bool   `json:"is_verified"`
	}

	UpdateUserRequest struct {
		Name     string `json:"name" validate:"omitempty,max=255"`
		Password string `json:"password" validate:"omitempty,min=5"`
	}

	SendVerifyEmailRequest struct {
		Email string `json:"email" validate:"required,email"`
	}

	VerifyEmailRequest struct {
		Token string `json:"token" validate:"required"`
	}

	ForgotPasswordRequest struct {
		Email string `json:"email" validate:"required,email"`
	}

	ResetPasswordRequest struct {
		Token    string `json:"token" validate:"required"`
		Password string `json:"password" validate:"required,min=5"`
	}
)
