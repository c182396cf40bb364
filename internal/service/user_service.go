package service

import (
	"errors"
	"fmt"

	"go-pos-inventory/internal/model"
	"go-pos-inventory/internal/repository"
	"go-pos-inventory/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrUserExists  = errors.New("email or username already exist")
	ErrInvalidRole = errors.New("role must be one of cashier, admin, super admin")
)

type UserService interface {
	CreateUser(req *CreateUserRequest) (*model.UserResponse, error)
	UpdateUser(userID uuid.UUID, req *UpdateUserRequest) (*model.UserResponse, error)
	DeleteUser(userID uuid.UUID) error
	GetAllUsers() ([]model.UserResponse, error)
	GetUserByID(id uuid.UUID) (*model.UserResponse, error)
}

type CreateUserRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required"`
}

type UpdateUserRequest struct {
	Username string  `json:"username"`
	Email    string  `json:"email" validate:"omitempty,email"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=6"`
	Role     string  `json:"role"`
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) CreateUser(req *CreateUserRequest) (*model.UserResponse, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", first.FailedField, first.Tag)
	}
	if !model.IsValidRole(req.Role) {
		return nil, ErrInvalidRole
	}

	user := &model.User{
		Username: req.Username,
		Email:    req.Email,
		Role:     req.Role,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, errors.New("failed to hash password")
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserExists
		}
		return nil, err
	}

	resp := user.ToResponse()
	return &resp, nil
}

func (s *userService) UpdateUser(userID uuid.UUID, req *UpdateUserRequest) (*model.UserResponse, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", first.FailedField, first.Tag)
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	if req.Username != "" {
		user.Username = req.Username
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Role != "" {
		if !model.IsValidRole(req.Role) {
			return nil, ErrInvalidRole
		}
		user.Role = req.Role
	}
	if req.Password != nil {
		if err := user.SetPassword(*req.Password); err != nil {
			return nil, errors.New("failed to hash password")
		}
	}

	if err := s.userRepo.Update(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserExists
		}
		return nil, err
	}

	resp := user.ToResponse()
	return &resp, nil
}

func (s *userService) DeleteUser(userID uuid.UUID) error {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		return ErrUserNotFound
	}
	return s.userRepo.Delete(userID)
}

func (s *userService) GetAllUsers() ([]model.UserResponse, error) {
	users, err := s.userRepo.FindAll()
	if err != nil {
		return nil, err
	}
	responses := make([]model.UserResponse, len(users))
	for i, u := range users {
		responses[i] = u.ToResponse()
	}
	return responses, nil
}

func (s *userService) GetUserByID(id uuid.UUID) (*model.UserResponse, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, ErrUserNotFound
	}
	resp := user.ToResponse()
	return &resp, nil
}
