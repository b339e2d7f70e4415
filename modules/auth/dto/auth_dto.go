package dto

import (
	"time"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Name       string `json:"name" validate:"required,min=2,max=100"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=6"`
	Role       string `json:"role" validate:"omitempty,oneof=student manager admin"`
	RollNumber string `json:"roll_number" validate:"omitempty,max=30"`
	Department string `json:"department" validate:"omitempty,max=100"`
	Semester   string `json:"semester" validate:"omitempty,max=20"`
	Phone      string `json:"phone" validate:"omitempty,max=20"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	// Role restricts login to one portal; empty accepts any role.
	Role string `json:"role" validate:"omitempty,oneof=student manager admin"`
}

type UpdateProfileRequest struct {
	Name       string `json:"name" validate:"omitempty,min=2,max=100"`
	Phone      string `json:"phone" validate:"omitempty,max=20"`
	Department string `json:"department" validate:"omitempty,max=100"`
	Semester   string `json:"semester" validate:"omitempty,max=20"`
}

type UserResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	RollNumber *string   `json:"roll_number,omitempty"`
	Department *string   `json:"department,omitempty"`
	Semester   *string   `json:"semester,omitempty"`
	Phone      *string   `json:"phone,omitempty"`
	Avatar     *string   `json:"avatar,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
