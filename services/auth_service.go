//go:generate go run go.uber.org/mock/mockgen -source=auth_service.go -destination=../mocks/mock_auth_service.go -package=mocks
package services

import (
	"fmt"

	"chat-relay/auth"
	"chat-relay/errors"
	"chat-relay/repositories"
)

type IAuthService interface {
	Register(req auth.RegisterRequest) (Credentials, error)
	Login(req auth.LoginRequest) (Credentials, error)
}

// Credentials is what the REST layer hands back after register/login.
type Credentials struct {
	Token    string
	UserID   string
	Email    string
	Username string
}

type AuthService struct {
	userRepository repositories.IUserRepository
	issuer         *auth.TokenIssuer
}

func NewAuthService(userRepository repositories.IUserRepository, issuer *auth.TokenIssuer) IAuthService {
	return &AuthService{userRepository: userRepository, issuer: issuer}
}

func (s *AuthService) Register(req auth.RegisterRequest) (Credentials, error) {
	// Validate before any expensive cryptographic operation.
	if err := auth.ValidateRegister(req); err != nil {
		return Credentials{}, fmt.Errorf("%w: %v", errors.ErrInvalidRegister, err)
	}

	// Hashing happens here so the repository never sees a plain password.
	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return Credentials{}, fmt.Errorf("hashing failed: %w", err)
	}

	user, err := s.userRepository.CreateUser(req.Email, req.Username, hashedPassword)
	if err != nil {
		return Credentials{}, err // propagates ErrUserAlreadyExists
	}

	token, err := s.issuer.Generate(user.ID, user.Username)
	if err != nil {
		return Credentials{}, errors.ErrTokenGeneration
	}

	return Credentials{Token: token, UserID: user.ID, Email: user.Email, Username: user.Username}, nil
}

func (s *AuthService) Login(req auth.LoginRequest) (Credentials, error) {
	if err := auth.ValidateLogin(req); err != nil {
		return Credentials{}, errors.ErrInvalidCredentials
	}

	user, err := s.userRepository.GetUserByEmail(req.Email)
	if err != nil {
		// Generic error to prevent user enumeration.
		return Credentials{}, errors.ErrInvalidCredentials
	}

	match, err := auth.ComparePassword(req.Password, user.PasswordHash)
	if err != nil || !match {
		return Credentials{}, errors.ErrInvalidCredentials
	}

	token, err := s.issuer.Generate(user.ID, user.Username)
	if err != nil {
		return Credentials{}, errors.ErrTokenGeneration
	}

	return Credentials{Token: token, UserID: user.ID, Email: user.Email, Username: user.Username}, nil
}
