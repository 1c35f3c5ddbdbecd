package models

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	Name           string    `json:"name,omitempty"`
	HashedPassword string    `json:"-"`
	Role           string    `json:"role"`
	OrderCount     int       `json:"order_count"`
	CreatedAt      time.Time `json:"created_at"`
}

type UserDetail struct {
	User
	Orders    []Order   `json:"orders"`
	Addresses []Address `json:"addresses"`
}

type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"omitempty,max=128"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Session is returned on login.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      User      `json:"user"`
}

type UpdateRoleInput struct {
	Role string `json:"role" validate:"required,oneof=user admin"`
}
