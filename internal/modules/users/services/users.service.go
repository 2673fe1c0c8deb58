package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"pharma-prep-core/internal/app/config"
	"pharma-prep-core/internal/modules/users/dto"
	apperrors "pharma-prep-core/internal/shared/errors"
	"pharma-prep-core/internal/shared/identity"
	"pharma-prep-core/internal/shared/utils"
	"pharma-prep-core/internal/shared/validation"
)

// UsersRepository persistance des comptes
type UsersRepository interface {
	Create(ctx context.Context, user *dto.User) (*dto.User, error)
	List(ctx context.Context) ([]dto.User, error)
	GetByID(ctx context.Context, id int64) (*dto.User, error)
	Update(ctx context.Context, user *dto.User) (*dto.User, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Count(ctx context.Context) (int64, error)
}

type UsersService struct {
	repo       UsersRepository
	bcryptCost int
	logger     *slog.Logger
}

func NewUsersService(cfg *config.Config, repo UsersRepository, logger *slog.Logger) *UsersService {
	return &UsersService{
		repo:       repo,
		bcryptCost: cfg.GetAuth().BcryptCost,
		logger:     logger,
	}
}

func userNotFound() error {
	return apperrors.NotFound("USER_NOT_FOUND", "Utilisateur non trouvé")
}

func duplicateEmail(email string) error {
	return apperrors.Conflict("EMAIL_ALREADY_EXISTS", "Cet email est déjà utilisé", map[string]interface{}{
		"champs": map[string]string{"email": "Cet email est déjà utilisé"},
		"email":  email,
	})
}

// CreateUser crée un compte, le mot de passe n'est stocké que haché
func (s *UsersService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.User, error) {
	hash, err := utils.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		if apperrors.IsKind(err, apperrors.KindValidation) {
			return nil, err
		}
		return nil, apperrors.Internal(err, "Erreur lors de la création de l'utilisateur")
	}

	created, err := s.repo.Create(ctx, &dto.User{
		Email:        strings.TrimSpace(req.Email),
		PasswordHash: hash,
		Name:         strings.TrimSpace(req.Name),
		PhoneNumber:  req.PhoneNumber,
		Role:         req.Role,
	})
	if err != nil {
		if errors.Is(err, dto.ErrDuplicateEmail) {
			return nil, duplicateEmail(req.Email)
		}
		return nil, apperrors.Internal(err, "Erreur lors de la création de l'utilisateur")
	}

	s.logger.InfoContext(ctx, "utilisateur créé", "user_id", created.ID, "role", created.Role)
	return created, nil
}

func (s *UsersService) ListUsers(ctx context.Context) ([]dto.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.Internal(err, "Erreur lors de la récupération des utilisateurs")
	}
	return users, nil
}

func (s *UsersService) GetUser(ctx context.Context, id int64) (*dto.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.Internal(err, "Erreur lors de la récupération de l'utilisateur")
	}
	if user == nil {
		return nil, userNotFound()
	}
	return user, nil
}

// UpdateUser fusionne les champs fournis avec l'existant.
// Un mot de passe fourni est re-haché, sinon le hash actuel est conservé.
func (s *UsersService) UpdateUser(ctx context.Context, id int64, req dto.UpdateUserRequest) (*dto.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		user.Email = strings.TrimSpace(*req.Email)
	}
	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.PhoneNumber != nil {
		user.PhoneNumber = req.PhoneNumber
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.Password != nil {
		hash, err := utils.HashPassword(*req.Password, s.bcryptCost)
		if err != nil {
			if apperrors.IsKind(err, apperrors.KindValidation) {
				return nil, err
			}
			return nil, apperrors.Internal(err, "Erreur lors de la modification de l'utilisateur")
		}
		user.PasswordHash = hash
	}

	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		if errors.Is(err, dto.ErrDuplicateEmail) {
			return nil, duplicateEmail(user.Email)
		}
		return nil, apperrors.Internal(err, "Erreur lors de la modification de l'utilisateur")
	}
	if updated == nil {
		return nil, userNotFound()
	}

	s.logger.InfoContext(ctx, "utilisateur modifié", "user_id", id, "password_changed", req.Password != nil)
	return updated, nil
}

// DeleteUser supprime un compte, un administrateur ne peut pas supprimer le sien
func (s *UsersService) DeleteUser(ctx context.Context, id int64, actor *identity.User) error {
	if actor != nil && actor.ID == id {
		return apperrors.Forbidden("SELF_DELETE_FORBIDDEN", "Impossible de supprimer son propre compte")
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return apperrors.Internal(err, "Erreur lors de la suppression de l'utilisateur")
	}
	if !deleted {
		return userNotFound()
	}

	s.logger.InfoContext(ctx, "utilisateur supprimé", "user_id", id)
	return nil
}

// EnsureInitialAdmin crée le premier administrateur si la table est vide
func (s *UsersService) EnsureInitialAdmin(ctx context.Context, admin config.AdminConfig) (bool, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	if admin.Email == "" || admin.Password == "" {
		s.logger.WarnContext(ctx, "aucun utilisateur et ADMIN_EMAIL/ADMIN_PASSWORD absents, administrateur initial non créé")
		return false, nil
	}

	name := admin.Name
	if name == "" {
		name = "Administrateur"
	}

	req := dto.CreateUserRequest{
		Email:    admin.Email,
		Password: admin.Password,
		Name:     name,
		Role:     identity.RoleAdmin,
	}
	if err := validation.Struct(req); err != nil {
		return false, fmt.Errorf("ADMIN_EMAIL/ADMIN_PASSWORD/ADMIN_NAME invalides: %w", err)
	}

	_, err = s.CreateUser(ctx, req)
	if err != nil {
		return false, err
	}
	return true, nil
}
