package redis

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"
)

// RedisKeyPattern définit les patterns standards des clés
// Pattern: pharma_prep_{environnement}_{domain}_{context}:{identifier}
type RedisKeyPattern struct {
	Domain  string        // auth, cache
	Context string        // login_attempts, preparation_counts
	TTL     time.Duration // 0 = pas d'expiration
}

const (
	PatternLoginAttempts     = "auth_login_attempts"
	PatternPreparationCounts = "cache_preparation_counts"
)

// Patterns par défaut, seuls les patterns réellement utilisés sont listés
var defaultPatterns = map[string]RedisKeyPattern{
	PatternLoginAttempts:     {Domain: "auth", Context: "login_attempts", TTL: 15 * time.Minute},
	PatternPreparationCounts: {Domain: "cache", Context: "preparation_counts", TTL: time.Minute},
}

var (
	validKeyRegex     = regexp.MustCompile(`^[a-zA-Z0-9_:\-@.+]+$`)
	validEnvironRegex = regexp.MustCompile(`^[a-z0-9]{2,20}$`)
)

// RedisKeyGenerator génère et valide les clés Redis du projet
type RedisKeyGenerator struct {
	environment string
	mu          sync.RWMutex
	patterns    map[string]RedisKeyPattern
}

// NewRedisKeyGenerator crée un générateur pour un environnement donné
func NewRedisKeyGenerator(environment string) *RedisKeyGenerator {
	patterns := make(map[string]RedisKeyPattern, len(defaultPatterns))
	for name, p := range defaultPatterns {
		patterns[name] = p
	}

	env := strings.ToLower(environment)
	if !validEnvironRegex.MatchString(env) {
		env = "default"
	}

	return &RedisKeyGenerator{
		environment: env,
		patterns:    patterns,
	}
}

// SetTTL remplace le TTL d'un pattern existant (valeurs issues de la configuration)
func (rkg *RedisKeyGenerator) SetTTL(patternName string, ttl time.Duration) error {
	rkg.mu.Lock()
	defer rkg.mu.Unlock()

	pattern, exists := rkg.patterns[patternName]
	if !exists {
		return fmt.Errorf("pattern Redis non trouvé: %s", patternName)
	}
	pattern.TTL = ttl
	rkg.patterns[patternName] = pattern
	return nil
}

// GenerateKey génère une clé : pharma_prep_{env}_{domain}_{context}:{identifier}
func (rkg *RedisKeyGenerator) GenerateKey(patternName string, identifier ...string) (string, error) {
	rkg.mu.RLock()
	pattern, exists := rkg.patterns[patternName]
	rkg.mu.RUnlock()
	if !exists {
		return "", fmt.Errorf("pattern Redis non trouvé: %s", patternName)
	}

	prefix := fmt.Sprintf("pharma_prep_%s_%s_%s", rkg.environment, pattern.Domain, pattern.Context)

	key := prefix
	if len(identifier) > 0 {
		key = fmt.Sprintf("%s:%s", prefix, strings.Join(identifier, "_"))
	}

	if err := rkg.ValidateKey(key); err != nil {
		return "", err
	}
	return key, nil
}

// GetTTL récupère le TTL d'un pattern
func (rkg *RedisKeyGenerator) GetTTL(patternName string) (time.Duration, error) {
	rkg.mu.RLock()
	defer rkg.mu.RUnlock()

	pattern, exists := rkg.patterns[patternName]
	if !exists {
		return 0, fmt.Errorf("pattern Redis non trouvé: %s", patternName)
	}
	return pattern.TTL, nil
}

// ValidateKey valide qu'une clé respecte les conventions
func (rkg *RedisKeyGenerator) ValidateKey(key string) error {
	if len(key) == 0 {
		return fmt.Errorf("clé vide")
	}

	if len(key) > 250 {
		return fmt.Errorf("clé trop longue (max 250 caractères): %d", len(key))
	}

	if !validKeyRegex.MatchString(key) {
		return fmt.Errorf("clé contient des caractères invalides: %s", key)
	}

	if !strings.HasPrefix(key, "pharma_prep_") {
		return fmt.Errorf("clé doit commencer par 'pharma_prep_': %s", key)
	}

	return nil
}
