package service

import (
	"errors"

	"go-pharmacy-pos/internal/model"
	"go-pharmacy-pos/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrDuplicateUsername = errors.New("username already exists")
	ErrUnknownRole       = errors.New("unknown role")
	ErrUserNotFound      = errors.New("user not found")
	ErrPasswordTooShort  = errors.New("password must be at least 6 characters")
)

type UserService interface {
	GetUsers() ([]model.UserResponse, error)
	CreateUser(username, password, roleCode, actor string) (*model.UserResponse, error)
	DeleteUser(id uuid.UUID) error
}

type userService struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
}

func NewUserService(userRepo repository.UserRepository, roleRepo repository.RoleRepository) UserService {
	return &userService{
		userRepo: userRepo,
		roleRepo: roleRepo,
	}
}

func (s *userService) GetUsers() ([]model.UserResponse, error) {
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

func (s *userService) CreateUser(username, password, roleCode, actor string) (*model.UserResponse, error) {
	if username == "" || password == "" || roleCode == "" {
		return nil, errors.New("username, password, and role are required")
	}
	if len(password) < 6 {
		return nil, ErrPasswordTooShort
	}

	role, err := s.roleRepo.FindByCode(roleCode)
	if err != nil {
		return nil, ErrUnknownRole
	}

	if existing, _ := s.userRepo.FindByUsername(username); existing != nil {
		return nil, ErrDuplicateUsername
	}

	user := &model.User{
		Username: username,
		RoleID:   &role.ID,
		Role:     role,
		IsActive: true,
	}
	user.CreatedBy = actor
	user.UpdatedBy = actor

	if err := user.SetPassword(password); err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateUsername
		}
		return nil, err
	}

	resp := user.ToResponse()
	return &resp, nil
}

func (s *userService) DeleteUser(id uuid.UUID) error {
	if _, err := s.userRepo.FindByID(id); err != nil {
		return ErrUserNotFound
	}
	return s.userRepo.Delete(id)
}
