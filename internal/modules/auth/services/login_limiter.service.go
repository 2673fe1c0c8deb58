package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"strconv"
	"strings"

	"pharma-prep-core/internal/app/config"
	"pharma-prep-core/internal/infrastructure/database/redis"
	apperrors "pharma-prep-core/internal/shared/errors"
)

// LoginLimiter compte les échecs de connexion par email dans Redis
type LoginLimiter struct {
	redis       *redis.Client
	maxAttempts int
	logger      *slog.Logger
}

func NewLoginLimiter(cfg *config.Config, redisClient *redis.Client, logger *slog.Logger) *LoginLimiter {
	return newLoginLimiter(redisClient, cfg.GetAuth().LoginMaxAttempts, logger)
}

func newLoginLimiter(redisClient *redis.Client, maxAttempts int, logger *slog.Logger) *LoginLimiter {
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	return &LoginLimiter{redis: redisClient, maxAttempts: maxAttempts, logger: logger}
}

// Check refuse la connexion si le quota d'échecs est atteint.
// Redis indisponible : la connexion reste possible.
func (l *LoginLimiter) Check(ctx context.Context, email string) error {
	key, err := l.redis.GenerateKey(redis.PatternLoginAttempts, emailDigest(email))
	if err != nil {
		return apperrors.Internal(err, "clé du limiteur de connexion invalide")
	}

	val, err := l.redis.Get(ctx, key)
	if err != nil {
		if !redis.IsNil(err) {
			l.logger.WarnContext(ctx, "limiteur de connexion indisponible", "error", err)
		}
		return nil
	}

	attempts, _ := strconv.Atoi(val)
	if attempts < l.maxAttempts {
		return nil
	}

	details := map[string]interface{}{"max_attempts": l.maxAttempts}
	if ttl, err := l.redis.TTL(ctx, key); err == nil && ttl > 0 {
		details["retry_after_seconds"] = int(ttl.Seconds())
	}

	return apperrors.RateLimited("RATE_LIMIT_EXCEEDED", "Trop de tentatives de connexion", details)
}

// RegisterFailure incrémente le compteur d'échecs
func (l *LoginLimiter) RegisterFailure(ctx context.Context, email string) {
	if _, err := l.redis.IncrWithPattern(ctx, redis.PatternLoginAttempts, emailDigest(email)); err != nil {
		l.logger.WarnContext(ctx, "échec incrément limiteur de connexion", "error", err)
	}
}

// Reset nettoie le compteur après succès
func (l *LoginLimiter) Reset(ctx context.Context, email string) {
	if err := l.redis.DelWithPattern(ctx, redis.PatternLoginAttempts, emailDigest(email)); err != nil {
		l.logger.WarnContext(ctx, "échec remise à zéro limiteur de connexion", "error", err)
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// emailDigest identifiant de clé Redis, l'email brut peut contenir des caractères hors clé
func emailDigest(email string) string {
	sum := sha256.Sum256([]byte(normalizeEmail(email)))
	return hex.EncodeToString(sum[:])
}
