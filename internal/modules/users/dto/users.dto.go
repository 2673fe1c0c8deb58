package dto

import (
	"errors"
	"time"
)

// ErrDuplicateEmail retourné par le repository sur violation de l'index users_email_key
var ErrDuplicateEmail = errors.New("email déjà utilisé")

// User compte applicatif, le hash n'est jamais sérialisé
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	PhoneNumber  *string   `json:"phoneNumber"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CreateUserRequest création d'un compte par un administrateur
type CreateUserRequest struct {
	Email       string  `json:"email" validate:"required,email,max=255"`
	Password    string  `json:"password" validate:"required,min=8,max=72"`
	Name        string  `json:"name" validate:"required,min=2,max=255"`
	PhoneNumber *string `json:"phoneNumber" validate:"omitempty,max=50"`
	Role        string  `json:"role" validate:"required,oneof=admin pharmacist preparateur"`
}

// UpdateUserRequest modification partielle, les champs absents sont conservés
type UpdateUserRequest struct {
	Email       *string `json:"email" validate:"omitempty,email,max=255"`
	Password    *string `json:"password" validate:"omitempty,min=8,max=72"`
	Name        *string `json:"name" validate:"omitempty,min=2,max=255"`
	PhoneNumber *string `json:"phoneNumber" validate:"omitempty,max=50"`
	Role        *string `json:"role" validate:"omitempty,oneof=admin pharmacist preparateur"`
	IsActive    *bool   `json:"isActive"`
}
