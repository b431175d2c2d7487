package services

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/gymgoers-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/gymgoers-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/gymgoers-backend/internal/models"
)

// AuthService backs /api/auth: registration goes through UserService, and
// a successful login is exchanged for a signed session token.
type AuthService struct {
	users  *UserService
	tokens *auth.TokenService
}

func NewAuthService(users *UserService, tokens *auth.TokenService) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

func (s *AuthService) SignUp(ctx context.Context, req *dto.SignupRequest) (*models.User, error) {
	return s.users.Register(ctx, req.Username, req.EmailAddress, req.Password, req.Role)
}

func (s *AuthService) SignIn(ctx context.Context, req *dto.SigninRequest) (*dto.JwtResponse, error) {
	user, err := s.users.Login(ctx, req.Username, req.Password)
	if err != nil {
		return nil, err
	}
	return s.generateSession(user)
}

func (s *AuthService) generateSession(user *models.User) (*dto.JwtResponse, error) {
	token, err := s.tokens.Issue(user.Username)
	if err != nil {
		return nil, err
	}
	return &dto.JwtResponse{
		Token:    token,
		Type:     "Bearer",
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Roles:    append([]string{}, user.Roles...),
	}, nil
}
