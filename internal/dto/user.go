package dto

import (
	"time"

	"github.com/yukikurage/academic-hub-api/internal/models"
	"github.com/yukikurage/academic-hub-api/internal/services"
)

// RegisterRequest is the body of POST /auth/register
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=255"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest is the body of POST /auth/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest is the body of PUT /profile
type UpdateProfileRequest struct {
	Name *string `json:"name" binding:"omitempty,max=255"`
	Bio  *string `json:"bio"`
}

// ChangePasswordRequest is the body of PUT /profile/password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

// UserDTO represents the caller's own account in API responses
type UserDTO struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Bio       string    `json:"bio"`
	IsAdmin   bool      `json:"is_admin"`
	HasPhoto  bool      `json:"has_photo"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthorDTO is the public view of a user shown next to forum content
type AuthorDTO struct {
	ID       uint64 `json:"id"`
	Name     string `json:"name"`
	HasPhoto bool   `json:"has_photo"`
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	AccessToken string  `json:"access_token"`
	TokenType   string  `json:"token_type"`
	User        UserDTO `json:"user"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Bio:       user.Bio,
		IsAdmin:   user.IsAdmin,
		HasPhoto:  user.HasPhoto(),
		CreatedAt: user.CreatedAt,
	}
}

// ToAuthorDTO converts a preloaded author to AuthorDTO
func ToAuthorDTO(user models.User) AuthorDTO {
	return AuthorDTO{
		ID:       user.ID,
		Name:     user.Name,
		HasPhoto: user.HasPhoto(),
	}
}

func ToAuthResponse(result *services.AuthResult) AuthResponse {
	return AuthResponse{
		AccessToken: result.AccessToken,
		TokenType:   result.TokenType,
		User:        ToUserDTO(*result.User),
	}
}
