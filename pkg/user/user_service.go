package user

import (
	"Recipe-Vault-Backend/domain"
	"Recipe-Vault-Backend/entities"
	"Recipe-Vault-Backend/internal/utils/mailing"
	"Recipe-Vault-Backend/pkg/jwt"
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	purposeVerifyEmail   = "verify_email"
	purposeResetPassword = "reset_password"

	actionTokenTTL = 15 * time.Minute
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (domain.RegisterResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
		Me(ctx context.Context, userID string) (domain.UserResponse, error)
		UpdateUser(ctx context.Context, req domain.UpdateUserRequest, userID string) (domain.UserResponse, error)
		SendVerificationEmail(ctx context.Context, req domain.SendVerifyEmailRequest) error
		VerifyEmail(ctx context.Context, token string) error
		ForgotPassword(ctx context.Context, req domain.ForgotPasswordRequest) error
		ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
	}
)

func NewUserService(userRepository UserRepository, jwtService jwt.JWTService) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
	}
}

// normalizeEmail lowercases the whole address so lookups and the uniqueness
// index are case-insensitive.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (domain.RegisterResponse, error) {
	email := normalizeEmail(req.Email)

	exists, err := s.userRepository.CheckEmailExists(ctx, email)
	if err != nil {
		return domain.RegisterResponse{}, err
	}
	if exists {
		return domain.RegisterResponse{}, domain.ErrEmailAlreadyExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.RegisterResponse{}, err
	}

	user := &entities.User{
		ID:       uuid.New(),
		Email:    email,
		Password: string(hashed),
		Name:     req.Name,
		IsActive: true,
	}

	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		return domain.RegisterResponse{}, err
	}

	s.sendVerificationMail(user)

	return domain.RegisterResponse{
		ID:    user.ID.String(),
		Email: user.Email,
		Name:  user.Name,
	}, nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	user, err := s.userRepository.GetUserByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.LoginResponse{}, domain.ErrCredentialsInvalid
		}
		return domain.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return domain.LoginResponse{}, domain.ErrCredentialsInvalid
	}

	if !user.IsActive {
		return domain.LoginResponse{}, domain.ErrUserInactive
	}

	role := domain.RoleUser
	if user.IsStaff {
		role = domain.RoleStaff
	}

	return domain.LoginResponse{
		Token: s.jwtService.GenerateTokenUser(user.ID.String(), role),
		Role:  role,
	}, nil
}

func (s *userService) Me(ctx context.Context, userID string) (domain.UserResponse, error) {
	user, err := s.findByID(ctx, userID)
	if err != nil {
		return domain.UserResponse{}, err
	}
	return userToResponse(user), nil
}

func (s *userService) UpdateUser(ctx context.Context, req domain.UpdateUserRequest, userID string) (domain.UserResponse, error) {
	user, err := s.findByID(ctx, userID)
	if err != nil {
		return domain.UserResponse{}, err
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return domain.UserResponse{}, err
		}
		user.Password = string(hashed)
	}

	if err := s.userRepository.UpdateUser(ctx, user); err != nil {
		return domain.UserResponse{}, err
	}
	return userToResponse(user), nil
}

func (s *userService) SendVerificationEmail(ctx context.Context, req domain.SendVerifyEmailRequest) error {
	user, err := s.userRepository.GetUserByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}
	if user.IsVerified {
		return domain.ErrEmailAlreadyVerified
	}

	token, err := s.jwtService.GenerateActionToken(user.ID.String(), purposeVerifyEmail, actionTokenTTL)
	if err != nil {
		return err
	}
	return mailing.SendVerificationMail(user.Email, user.Name, token)
}

func (s *userService) VerifyEmail(ctx context.Context, token string) error {
	userID, err := s.jwtService.ValidateActionToken(token, purposeVerifyEmail)
	if err != nil {
		return err
	}

	user, err := s.findByID(ctx, userID)
	if err != nil {
		return err
	}

	user.IsVerified = true
	return s.userRepository.UpdateUser(ctx, user)
}

// ForgotPassword never reveals whether the address exists; unknown emails
// are acknowledged without sending anything.
func (s *userService) ForgotPassword(ctx context.Context, req domain.ForgotPasswordRequest) error {
	user, err := s.userRepository.GetUserByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	token, err := s.jwtService.GenerateActionToken(user.ID.String(), purposeResetPassword, actionTokenTTL)
	if err != nil {
		return err
	}
	return mailing.SendPasswordResetMail(user.Email, user.Name, token)
}

func (s *userService) ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error {
	userID, err := s.jwtService.ValidateActionToken(req.Token, purposeResetPassword)
	if err != nil {
		return err
	}

	user, err := s.findByID(ctx, userID)
	if err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashed)
	return s.userRepository.UpdateUser(ctx, user)
}

func (s *userService) findByID(ctx context.Context, userID string) (*entities.User, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// sendVerificationMail is best effort at registration time; delivery problems
// must not fail the signup, the user can re-request from /send_verify.
func (s *userService) sendVerificationMail(user *entities.User) {
	token, err := s.jwtService.GenerateActionToken(user.ID.String(), purposeVerifyEmail, actionTokenTTL)
	if err != nil {
		log.Printf("generate verification token: %v", err)
		return
	}
	go func() {
		if err := mailing.SendVerificationMail(user.Email, user.Name, token); err != nil {
			log.Printf("send verification mail to %s: %v", user.Email, err)
		}
	}()
}

func userToResponse(user *entities.User) domain.UserResponse {
	return domain.UserResponse{
		ID:         user.ID.String(),
		Email:      user.Email,
		Name:       user.Name,
		IsStaff:    user.IsStaff,
		IsVerified: user.IsVerified,
	}
}
