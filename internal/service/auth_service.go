package service

import (
	"errors"
	"time"

	"go-pos-inventory/internal/model"
	"go-pos-inventory/internal/repository"
	"go-pos-inventory/pkg/jwt"
	"go-pos-inventory/pkg/mailer"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

var (
	ErrInvalidCredentials = errors.New("invalid username/email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidOTP         = errors.New("invalid OTP")
	ErrExpiredOTP         = errors.New("OTP has expired, please request a new one")
	ErrWeakPassword       = errors.New("password must be at least 6 characters")
)

const otpTTL = 10 * time.Minute

type AuthService interface {
	Login(login, password string) (*LoginResponse, error)
	Me(userID uuid.UUID) (*model.UserResponse, error)
	ForgotPassword(email string) error
	VerifyOTP(email, code string) error
	ResetPassword(email, code, newPassword string) error
}

type LoginResponse struct {
	AccessToken string             `json:"accessToken"`
	User        model.UserResponse `json:"user"`
}

type authService struct {
	userRepo repository.UserRepository
	otpRepo  repository.OTPRepository
	sender   mailer.Sender
}

func NewAuthService(userRepo repository.UserRepository, otpRepo repository.OTPRepository, sender mailer.Sender) AuthService {
	return &authService{
		userRepo: userRepo,
		otpRepo:  otpRepo,
		sender:   sender,
	}
}

func (s *authService) Login(login, password string) (*LoginResponse, error) {
	user, err := s.userRepo.FindByUsernameOrEmail(login)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	token, err := jwt.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	return &LoginResponse{
		AccessToken: token,
		User:        user.ToResponse(),
	}, nil
}

func (s *authService) Me(userID uuid.UUID) (*model.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	resp := user.ToResponse()
	return &resp, nil
}

// ForgotPassword issues a fresh 6-digit code with a 10-minute expiry. The
// caller's response must not reveal whether the address exists; a nil error
// here covers both cases on purpose.
func (s *authService) ForgotPassword(email string) error {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return nil
	}

	code, err := gonanoid.Generate("0123456789", 6)
	if err != nil {
		return err
	}

	otp := &model.PasswordOTP{
		Email:     user.Email,
		Code:      code,
		ExpiresAt: time.Now().Add(otpTTL),
	}
	if err := s.otpRepo.Replace(otp); err != nil {
		return err
	}

	return s.sender.SendOTP(user.Email, user.Username, code)
}

func (s *authService) VerifyOTP(email, code string) error {
	otp, err := s.otpRepo.Find(email, code)
	if err != nil {
		return ErrInvalidOTP
	}
	if otp.Expired() {
		// expired codes are gone for good
		s.otpRepo.DeleteByEmail(email)
		return ErrExpiredOTP
	}
	return nil
}

func (s *authService) ResetPassword(email, code, newPassword string) error {
	if len(newPassword) < 6 {
		return ErrWeakPassword
	}
	if err := s.VerifyOTP(email, code); err != nil {
		return err
	}

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return ErrUserNotFound
	}

	if err := user.SetPassword(newPassword); err != nil {
		return errors.New("failed to hash new password")
	}
	if err := s.userRepo.UpdatePassword(user.ID, user.Password); err != nil {
		return err
	}

	return s.otpRepo.DeleteByEmail(email)
}
