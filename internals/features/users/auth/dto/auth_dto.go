package dto

import (
	userDTO "github.com/nlekkerman/roomie/internals/features/users/user/dto"
)

// =============================
// Request DTOs
// =============================

type RegisterRequest struct {
	UserName  string `json:"user_name" validate:"required,min=3,max=50"`
	FirstName string `json:"first_name" validate:"omitempty,max=100"`
	LastName  string `json:"last_name" validate:"omitempty,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	Role      string `json:"role" validate:"omitempty,oneof=tenant property_owner house_supervisor"`
}

type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"` // email or user_name
	Password   string `json:"password" validate:"required"`
}

type GoogleLoginRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

// =============================
// Response DTOs
// =============================

type LoginResponse struct {
	AccessToken string               `json:"access_token"`
	User        userDTO.UserResponse `json:"user"`
}
