package dto

import "github.com/google/uuid"

type SignupRequest struct {
	Username     string   `json:"username" validate:"required,max=100"`
	EmailAddress string   `json:"emailAddress" validate:"required,email,max=255"`
	Password     string   `json:"password" validate:"required,min=4,max=72"`
	Role         []string `json:"role"`
}

type SigninRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type JwtResponse struct {
	Token    string    `json:"token"`
	Type     string    `json:"type"`
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Roles    []string  `json:"roles"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}
