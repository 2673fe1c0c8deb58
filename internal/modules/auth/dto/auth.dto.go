package dto

import "time"

// LoginRequest représente la requête de connexion
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,max=128"`
}

// LoginResponse représente la réponse de connexion réussie
type LoginResponse struct {
	AccessToken string   `json:"accessToken"`
	ExpiresAt   string   `json:"expiresAt"`
	User        UserData `json:"user"`
}

// UserData représente les informations utilisateur exposées au client
type UserData struct {
	ID          int64   `json:"id"`
	Email       string  `json:"email"`
	Name        string  `json:"name"`
	PhoneNumber *string `json:"phoneNumber"`
	Role        string  `json:"role"`
	IsActive    bool    `json:"isActive"`
}

// ChangePasswordRequest changement de son propre mot de passe
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,max=72"`
}

// UserRecord ligne de la table users, hash compris
type UserRecord struct {
	ID           int64
	Email        string
	PasswordHash string
	Name         string
	PhoneNumber  *string
	Role         string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ToUserData projection publique d'un utilisateur
func (u *UserRecord) ToUserData() UserData {
	return UserData{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		PhoneNumber: u.PhoneNumber,
		Role:        u.Role,
		IsActive:    u.IsActive,
	}
}
