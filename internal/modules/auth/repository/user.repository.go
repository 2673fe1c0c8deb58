package repository

import (
	"context"
	"fmt"

	"pharma-prep-core/internal/infrastructure/database/postgres"
	"pharma-prep-core/internal/modules/auth/dto"
	"pharma-prep-core/internal/modules/auth/queries"

	"github.com/jackc/pgx/v5"
)

// UserRepository accès PostgreSQL aux comptes pour l'authentification
type UserRepository struct {
	db *postgres.Client
}

func NewUserRepository(db *postgres.Client) *UserRepository {
	return &UserRepository{db: db}
}

// GetByEmail retourne nil sans erreur si l'email est inconnu
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*dto.UserRecord, error) {
	return r.scanOne(r.db.QueryRow(ctx, queries.UserQueries.GetByEmail, email))
}

// GetByID retourne nil sans erreur si l'id est inconnu
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*dto.UserRecord, error) {
	return r.scanOne(r.db.QueryRow(ctx, queries.UserQueries.GetByID, id))
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	var updatedID int64
	err := r.db.QueryRow(ctx, queries.UserQueries.UpdatePassword, id, passwordHash).Scan(&updatedID)
	if err != nil {
		return fmt.Errorf("mise à jour du mot de passe: %w", err)
	}
	return nil
}

func (r *UserRepository) scanOne(row pgx.Row) (*dto.UserRecord, error) {
	var user dto.UserRecord
	err := row.Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.Name, &user.PhoneNumber,
		&user.Role, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("lecture utilisateur: %w", err)
	}
	return &user, nil
}
