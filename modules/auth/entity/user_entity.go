package entity

import (
	"campus-events-api/core/entity"
)

// Role is the closed set of actor roles.
type Role = string

const (
	RoleStudent Role = "student"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

// User represents an account in the campus system. Password is the bcrypt
// hash and is never serialized.
type User struct {
	Name       string  `db:"name" json:"name"`
	Email      string  `db:"email" json:"email"`
	Password   string  `db:"password" json:"-"`
	Role       Role    `db:"role" json:"role"`
	RollNumber *string `db:"roll_number" json:"roll_number,omitempty"`
	Department *string `db:"department" json:"department,omitempty"`
	Semester   *string `db:"semester" json:"semester,omitempty"`
	Phone      *string `db:"phone" json:"phone,omitempty"`
	Avatar     *string `db:"avatar" json:"avatar,omitempty"`
	IsActive   bool    `db:"is_active" json:"is_active"`
	entity.BaseEntity
}
