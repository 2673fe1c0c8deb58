package repository

import (
	"context"
	"fmt"

	"pharma-prep-core/internal/infrastructure/database/postgres"
	"pharma-prep-core/internal/modules/users/dto"
	"pharma-prep-core/internal/modules/users/queries"

	"github.com/jackc/pgx/v5"
)

const emailUniqueIndex = "users_email_key"

type UsersRepository struct {
	db *postgres.Client
}

func NewUsersRepository(db *postgres.Client) *UsersRepository {
	return &UsersRepository{db: db}
}

func (r *UsersRepository) Create(ctx context.Context, user *dto.User) (*dto.User, error) {
	row := r.db.QueryRow(ctx, queries.UserQueries.Create,
		user.Email, user.PasswordHash, user.Name, user.PhoneNumber, user.Role)
	return r.scanWrite(row)
}

func (r *UsersRepository) List(ctx context.Context) ([]dto.User, error) {
	rows, err := r.db.Query(ctx, queries.UserQueries.List)
	if err != nil {
		return nil, fmt.Errorf("liste utilisateurs: %w", err)
	}
	defer rows.Close()

	users := []dto.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("lecture utilisateur: %w", err)
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

// GetByID retourne nil sans erreur si l'id est inconnu
func (r *UsersRepository) GetByID(ctx context.Context, id int64) (*dto.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx, queries.UserQueries.GetByID, id))
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("lecture utilisateur %d: %w", id, err)
	}
	return user, nil
}

// Update retourne nil sans erreur si l'id a disparu entre-temps
func (r *UsersRepository) Update(ctx context.Context, user *dto.User) (*dto.User, error) {
	row := r.db.QueryRow(ctx, queries.UserQueries.Update,
		user.ID, user.Email, user.PasswordHash, user.Name, user.PhoneNumber, user.Role, user.IsActive)
	updated, err := r.scanWrite(row)
	if err != nil && postgres.IsNoRows(err) {
		return nil, nil
	}
	return updated, err
}

// Delete indique si une ligne a été supprimée
func (r *UsersRepository) Delete(ctx context.Context, id int64) (bool, error) {
	var deletedID int64
	err := r.db.QueryRow(ctx, queries.UserQueries.Delete, id).Scan(&deletedID)
	if err != nil {
		if postgres.IsNoRows(err) {
			return false, nil
		}
		return false, fmt.Errorf("suppression utilisateur %d: %w", id, err)
	}
	return true, nil
}

func (r *UsersRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, queries.UserQueries.Count).Scan(&count); err != nil {
		return 0, fmt.Errorf("comptage utilisateurs: %w", err)
	}
	return count, nil
}

func (r *UsersRepository) scanWrite(row pgx.Row) (*dto.User, error) {
	user, err := scanUser(row)
	if err != nil {
		if postgres.IsUniqueViolation(err, emailUniqueIndex) {
			return nil, dto.ErrDuplicateEmail
		}
		if postgres.IsNoRows(err) {
			return nil, err
		}
		return nil, fmt.Errorf("écriture utilisateur: %w", err)
	}
	return user, nil
}

func scanUser(row pgx.Row) (*dto.User, error) {
	var user dto.User
	err := row.Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.Name, &user.PhoneNumber,
		&user.Role, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
