package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"pharma-prep-core/internal/app/config"
	"pharma-prep-core/internal/modules/auth/dto"
	apperrors "pharma-prep-core/internal/shared/errors"
	"pharma-prep-core/internal/shared/identity"
	"pharma-prep-core/internal/shared/utils"
)

// UserStore accès aux comptes nécessaire à l'authentification
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*dto.UserRecord, error)
	GetByID(ctx context.Context, id int64) (*dto.UserRecord, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}

type AuthService struct {
	users      UserStore
	tokens     *TokenService
	limiter    *LoginLimiter
	bcryptCost int
	logger     *slog.Logger
}

// NewAuthService crée une nouvelle instance du service d'authentification
func NewAuthService(
	cfg *config.Config,
	users UserStore,
	tokens *TokenService,
	limiter *LoginLimiter,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:      users,
		tokens:     tokens,
		limiter:    limiter,
		bcryptCost: cfg.GetAuth().BcryptCost,
		logger:     logger,
	}
}

func invalidCredentials() error {
	return apperrors.Validation("INVALID_CREDENTIALS", "Email ou mot de passe incorrect", nil)
}

// Login vérifie les identifiants et émet un jeton d'accès.
// Email inconnu, mot de passe faux et compte inactif donnent la même erreur.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := s.limiter.Check(ctx, req.Email); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperrors.Internal(err, "Erreur interne lors de l'authentification")
	}

	if user == nil {
		utils.BurnPasswordCheck(req.Password)
		s.limiter.RegisterFailure(ctx, req.Email)
		return nil, invalidCredentials()
	}

	if !utils.VerifyPassword(user.PasswordHash, req.Password) || !user.IsActive {
		s.limiter.RegisterFailure(ctx, req.Email)
		return nil, invalidCredentials()
	}

	current := toIdentity(user)
	token, expiresAt, err := s.tokens.Issue(current)
	if err != nil {
		return nil, apperrors.Internal(err, "Erreur interne lors de l'authentification")
	}

	s.limiter.Reset(ctx, req.Email)
	s.logger.InfoContext(ctx, "connexion réussie", "user_id", user.ID, "role", user.Role)

	return &dto.LoginResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt.UTC().Format(time.RFC3339),
		User:        user.ToUserData(),
	}, nil
}

// Authenticate valide un jeton et recharge l'utilisateur, qui doit exister et être actif
func (s *AuthService) Authenticate(ctx context.Context, token string) (*identity.User, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, apperrors.Unauthorized("INVALID_TOKEN", "Token invalide ou expiré")
	}

	user, err := s.users.GetByID(ctx, claims.ID)
	if err != nil {
		return nil, apperrors.Internal(err, "Erreur lors de la validation du token")
	}
	if user == nil || !user.IsActive {
		return nil, apperrors.Unauthorized("USER_INACTIVE", "Utilisateur inexistant ou désactivé")
	}

	return toIdentity(user), nil
}

// Me retourne le profil de l'utilisateur courant
func (s *AuthService) Me(ctx context.Context, userID int64) (*dto.UserData, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal(err, "Erreur lors de la récupération du profil")
	}
	if user == nil {
		return nil, apperrors.NotFound("USER_NOT_FOUND", "Utilisateur non trouvé")
	}

	data := user.ToUserData()
	return &data, nil
}

// ChangePassword remplace le mot de passe après vérification de l'actuel
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, req dto.ChangePasswordRequest) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return apperrors.Internal(err, "Erreur lors du changement de mot de passe")
	}
	if user == nil {
		return apperrors.NotFound("USER_NOT_FOUND", "Utilisateur non trouvé")
	}

	if !utils.VerifyPassword(user.PasswordHash, req.CurrentPassword) {
		return apperrors.Validation("CURRENT_PASSWORD_INVALID", "Mot de passe actuel incorrect", nil)
	}

	hash, err := utils.HashPassword(req.NewPassword, s.bcryptCost)
	if err != nil {
		if apperrors.IsKind(err, apperrors.KindValidation) {
			return err
		}
		return apperrors.Internal(err, "Erreur lors du changement de mot de passe")
	}

	if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		return apperrors.Internal(fmt.Errorf("utilisateur %d: %w", userID, err), "Erreur lors du changement de mot de passe")
	}

	s.logger.InfoContext(ctx, "mot de passe modifié", "user_id", userID)
	return nil
}

func toIdentity(user *dto.UserRecord) *identity.User {
	return &identity.User{
		ID:       user.ID,
		Email:    user.Email,
		Role:     user.Role,
		Name:     user.Name,
		IsActive: user.IsActive,
	}
}
