package service

import (
	"errors"

	"go-pharmacy-pos/internal/model"
	"go-pharmacy-pos/internal/repository"
	"go-pharmacy-pos/pkg/jwt"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserInactive       = errors.New("user account is inactive")
)

type AuthService interface {
	Login(username, password string) (*LoginResponse, error)
}

type LoginResponse struct {
	Token string             `json:"token"`
	User  model.UserResponse `json:"user"`
	Role  string             `json:"role"`
}

type authService struct {
	userRepo repository.UserRepository
	signer   *jwt.Signer
}

func NewAuthService(userRepo repository.UserRepository, signer *jwt.Signer) AuthService {
	return &authService{
		userRepo: userRepo,
		signer:   signer,
	}
}

func (s *authService) Login(username, password string) (*LoginResponse, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrUserInactive
	}

	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.signer.Generate(user.ID, user.Username, user.RoleCode())
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	return &LoginResponse{
		Token: token,
		User:  user.ToResponse(),
		Role:  user.RoleCode(),
	}, nil
}
