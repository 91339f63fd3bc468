package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	ProfileImage string    `json:"profileImage,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// for registration
type RegisterRequest struct {
	Email        string `json:"email" validate:"required,email"`
	Username     string `json:"username" validate:"required"`
	Password     string `json:"password" validate:"required,min=6"`
	ProfileImage string `json:"profileImage,omitempty"`
}

// for login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// for login/register responses
type AuthResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	User         *User  `json:"user,omitempty"`
	Error        string `json:"error,omitempty"`
}

type ProfilePatch struct {
	Username     *string `json:"username,omitempty" validate:"omitempty,min=1"`
	ProfileImage *string `json:"profileImage,omitempty"`
}

// Claims is the JWT payload issued by the backend. The subject carries the
// user id as its decimal string form.
type Claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}
