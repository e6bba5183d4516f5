package auth

import (
	"errors"

	"github.com/inkpress/core/internal/models"
)

var (
	errUserNotFound  = errors.New("user not found")
	errWrongPassword = errors.New("wrong password")
	errUserInactive  = errors.New("account is deactivated")
)

// RegisterDTO is the request body for account registration.
type RegisterDTO struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	Email    string `json:"email"    binding:"required,email"`
	Name     string `json:"name"`
}

// LoginDTO is the request body for logging in.
type LoginDTO struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}
