package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"pharma-prep-core/internal/infrastructure/database/mongodb"
	"pharma-prep-core/internal/infrastructure/database/postgres"
	"pharma-prep-core/internal/infrastructure/database/redis"

	"github.com/joho/godotenv"
)

// Uniquement variables d'environnement

// Config structure unifiée
type Config struct {
	Environment string
	Version     string
	Server      ServerConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	MongoDB     MongoConfig
	Auth        AuthConfig
	Admin       AdminConfig
	Cache       CacheConfig
	Migrations  MigrationsConfig
	Logging     LoggingConfig
	CORS        CORSConfig
	Metrics     MetricsConfig
}

// ServerConfig configuration serveur HTTP
type ServerConfig struct {
	Host         string        `env:"SERVER_HOST"`
	Port         int           `env:"SERVER_PORT"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT"`
}

// DatabaseConfig configuration PostgreSQL
type DatabaseConfig struct {
	URL            string        `env:"DATABASE_URL"`
	Host           string        `env:"DB_HOST"`
	Port           int           `env:"DB_PORT"`
	Database       string        `env:"DB_NAME"`
	Username       string        `env:"DB_USERNAME"`
	Password       string        `env:"DB_PASSWORD"`
	MaxConnections int           `env:"DB_MAX_CONNECTIONS"`
	QueryTimeout   time.Duration `env:"DB_QUERY_TIMEOUT"`
	SSLMode        string        `env:"DB_SSL_MODE"`
}

// RedisConfig configuration Redis
type RedisConfig struct {
	Host     string `env:"REDIS_HOST"`
	Port     int    `env:"REDIS_PORT"`
	Password string `env:"REDIS_PASSWORD"`
	Database int    `env:"REDIS_DATABASE"`
	PoolSize int    `env:"REDIS_POOL_SIZE"`
}

// MongoConfig configuration MongoDB (journal des préparations)
type MongoConfig struct {
	URI            string        `env:"MONGODB_URI"`
	Database       string        `env:"MONGODB_DATABASE"`
	ConnectTimeout time.Duration `env:"MONGODB_CONNECT_TIMEOUT"`
}

// AuthConfig configuration des jetons et du hachage
type AuthConfig struct {
	JWTSecret        string        `env:"JWT_SECRET"`
	TokenTTL         time.Duration `env:"JWT_TTL"`
	BcryptCost       int           `env:"BCRYPT_COST"`
	LoginMaxAttempts int           `env:"LOGIN_MAX_ATTEMPTS"`
	LoginLockout     time.Duration `env:"LOGIN_LOCKOUT"`
}

// AdminConfig compte administrateur initial
type AdminConfig struct {
	Email    string `env:"ADMIN_EMAIL"`
	Password string `env:"ADMIN_PASSWORD"`
	Name     string `env:"ADMIN_NAME"`
}

// CacheConfig durées de cache Redis
type CacheConfig struct {
	CountsTTL time.Duration `env:"COUNTS_CACHE_TTL"`
}

// MigrationsConfig migrations SQL embarquées
type MigrationsConfig struct {
	Auto bool `env:"MIGRATIONS_AUTO"`
}

// LoggingConfig configuration logging
type LoggingConfig struct {
	Level      string `env:"LOG_LEVEL"`
	Format     string `env:"LOG_FORMAT"`
	File       string `env:"LOG_FILE"`
	MaxSizeMB  int    `env:"LOG_MAX_SIZE_MB"`
	MaxBackups int    `env:"LOG_MAX_BACKUPS"`
	MaxAgeDays int    `env:"LOG_MAX_AGE_DAYS"`
}

// CORSConfig configuration CORS
type CORSConfig struct {
	AllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS"`
	AllowedMethods   []string `env:"CORS_ALLOWED_METHODS"`
	AllowedHeaders   []string `env:"CORS_ALLOWED_HEADERS"`
	AllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS"`
	MaxAge           int      `env:"CORS_MAX_AGE"`
}

// MetricsConfig exposition Prometheus
type MetricsConfig struct {
	Enabled bool   `env:"METRICS_ENABLED"`
	Path    string `env:"METRICS_PATH"`
}

const minProductionSecretLength = 32

// NewConfig charge le fichier .env (optionnel) puis la configuration depuis l'environnement
func NewConfig() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		fmt.Printf("[CONFIG] Warning: Fichier .env non trouvé: %v\n", err)
	}

	return Load()
}

// Load construit la configuration à partir des variables d'environnement uniquement
func Load() (*Config, error) {
	config := &Config{}

	config.Environment = getEnv("APP_ENV", "development")
	config.Version = getEnv("APP_VERSION", "0.1.0")

	config.Server = ServerConfig{
		Host:         getEnv("SERVER_HOST", "localhost"),
		Port:         getEnvInt("SERVER_PORT", 4000),
		ReadTimeout:  getEnvDuration("SERVER_READ_TIMEOUT", 30) * time.Second,
		WriteTimeout: getEnvDuration("SERVER_WRITE_TIMEOUT", 30) * time.Second,
	}

	config.Database = DatabaseConfig{
		URL:            getEnv("DATABASE_URL", ""),
		Host:           getEnv("DB_HOST", "localhost"),
		Port:           getEnvInt("DB_PORT", 5432),
		Database:       getEnv("DB_NAME", "pharma_prep"),
		Username:       getEnv("DB_USERNAME", "postgres"),
		Password:       getEnv("DB_PASSWORD", ""),
		MaxConnections: getEnvInt("DB_MAX_CONNECTIONS", 25),
		QueryTimeout:   getEnvDuration("DB_QUERY_TIMEOUT", 30) * time.Second,
		SSLMode:        getEnv("DB_SSL_MODE", "disable"),
	}

	// Auto-générer l'URL si manquante
	if config.Database.URL == "" {
		config.Database.URL = generateDatabaseURL(config.Database)
	}

	config.Redis = RedisConfig{
		Host:     getEnv("REDIS_HOST", "localhost"),
		Port:     getEnvInt("REDIS_PORT", 6379),
		Password: getEnv("REDIS_PASSWORD", ""),
		Database: getEnvInt("REDIS_DATABASE", 0),
		PoolSize: getEnvInt("REDIS_POOL_SIZE", 10),
	}

	defaultMongoURI := ""
	if config.Environment == "development" {
		defaultMongoURI = "mongodb://localhost:27017"
	}

	config.MongoDB = MongoConfig{
		URI:            getEnv("MONGODB_URI", defaultMongoURI),
		Database:       getEnv("MONGODB_DATABASE", "pharma_prep_journal"),
		ConnectTimeout: getEnvDuration("MONGODB_CONNECT_TIMEOUT", 10) * time.Second,
	}

	config.Auth = AuthConfig{
		JWTSecret:        os.Getenv("JWT_SECRET"),
		TokenTTL:         getEnvDuration("JWT_TTL", 3600) * time.Second,
		BcryptCost:       getEnvInt("BCRYPT_COST", 12),
		LoginMaxAttempts: getEnvInt("LOGIN_MAX_ATTEMPTS", 5),
		LoginLockout:     getEnvDuration("LOGIN_LOCKOUT", 900) * time.Second,
	}

	config.Admin = AdminConfig{
		Email:    strings.TrimSpace(getEnv("ADMIN_EMAIL", "")),
		Password: getEnv("ADMIN_PASSWORD", ""),
		Name:     getEnv("ADMIN_NAME", "Administrateur"),
	}

	config.Cache = CacheConfig{
		CountsTTL: getEnvDuration("COUNTS_CACHE_TTL", 60) * time.Second,
	}

	config.Migrations = MigrationsConfig{
		Auto: getEnvBool("MIGRATIONS_AUTO", true),
	}

	config.Logging = LoggingConfig{
		Level:      getEnv("LOG_LEVEL", "debug"),
		Format:     getEnv("LOG_FORMAT", ""),
		File:       getEnv("LOG_FILE", ""),
		MaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 50),
		MaxBackups: getEnvInt("LOG_MAX_BACKUPS", 5),
		MaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 30),
	}

	config.CORS = CORSConfig{
		AllowedOrigins:   getEnvStringSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		AllowedMethods:   getEnvStringSlice("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}),
		AllowedHeaders:   getEnvStringSlice("CORS_ALLOWED_HEADERS", []string{"Content-Type", "Authorization"}),
		AllowCredentials: getEnvBool("CORS_ALLOW_CREDENTIALS", true),
		MaxAge:           getEnvInt("CORS_MAX_AGE", 3600),
	}

	config.Metrics = MetricsConfig{
		Enabled: getEnvBool("METRICS_ENABLED", true),
		Path:    getEnv("METRICS_PATH", "/metrics"),
	}

	// Validation configuration critique
	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("validation configuration échouée: %w", err)
	}

	fmt.Printf("[CONFIG] ✅ Configuration chargée pour environnement: %s\n", config.Environment)
	return config, nil
}

func (c *Config) GetDatabase() DatabaseConfig     { return c.Database }
func (c *Config) GetRedis() RedisConfig           { return c.Redis }
func (c *Config) GetMongoDB() MongoConfig         { return c.MongoDB }
func (c *Config) GetServer() ServerConfig         { return c.Server }
func (c *Config) GetAuth() AuthConfig             { return c.Auth }
func (c *Config) GetAdmin() AdminConfig           { return c.Admin }
func (c *Config) GetCache() CacheConfig           { return c.Cache }
func (c *Config) GetMigrations() MigrationsConfig { return c.Migrations }
func (c *Config) GetLogging() LoggingConfig       { return c.Logging }
func (c *Config) GetCORS() CORSConfig             { return c.CORS }
func (c *Config) GetMetrics() MetricsConfig       { return c.Metrics }

// IsDevelopment indique si l'application tourne en local
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// Convertisseurs vers les configurations infrastructure

func NewPostgresConfig(config *Config) *postgres.DatabaseConfig {
	return &postgres.DatabaseConfig{
		URL:            config.Database.URL,
		MaxConnections: config.Database.MaxConnections,
		QueryTimeout:   config.Database.QueryTimeout,
	}
}

func NewRedisConfig(config *Config) *redis.RedisConfig {
	return &redis.RedisConfig{
		Host:     config.Redis.Host,
		Port:     config.Redis.Port,
		Password: config.Redis.Password,
		Database: config.Redis.Database,
		PoolSize: config.Redis.PoolSize,
	}
}

func NewMongoConfig(config *Config) *mongodb.MongoConfig {
	return &mongodb.MongoConfig{
		URI:            config.MongoDB.URI,
		Database:       config.MongoDB.Database,
		ConnectTimeout: config.MongoDB.ConnectTimeout,
	}
}

// Helpers pour parsing variables d'environnement
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultSeconds int) time.Duration {
	return time.Duration(getEnvInt(key, defaultSeconds))
}

func getEnvStringSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return defaultValue
}

// generateDatabaseURL génère l'URL PostgreSQL principale
func generateDatabaseURL(dbConfig DatabaseConfig) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		dbConfig.Username, dbConfig.Password, dbConfig.Host, dbConfig.Port, dbConfig.Database, dbConfig.SSLMode)
}

// validateConfig valide la configuration selon l'environnement
func validateConfig(config *Config) error {
	env := config.Environment

	if env != "development" && env != "docker" && env != "test" {
		return fmt.Errorf("environnement non supporté: %s (utilisez 'development', 'docker' ou 'test')", env)
	}

	missingVars := []string{}

	// Le secret de signature est obligatoire quel que soit l'environnement
	if config.Auth.JWTSecret == "" {
		missingVars = append(missingVars, "JWT_SECRET")
	}

	if env == "docker" {
		if config.Database.Password == "" && os.Getenv("DATABASE_URL") == "" {
			missingVars = append(missingVars, "DB_PASSWORD")
		}
		if config.Auth.JWTSecret != "" && len(config.Auth.JWTSecret) < minProductionSecretLength {
			return fmt.Errorf("JWT_SECRET trop court pour environnement docker (minimum %d caractères)", minProductionSecretLength)
		}
		if config.Redis.Password == "" {
			fmt.Printf("[CONFIG] ⚠️ REDIS_PASSWORD non défini pour environnement docker\n")
		}
	}

	if len(missingVars) > 0 {
		return fmt.Errorf("variables critiques manquantes pour environnement %s: %v", env, missingVars)
	}

	if config.Auth.BcryptCost < 4 || config.Auth.BcryptCost > 31 {
		return fmt.Errorf("BCRYPT_COST invalide: %d (attendu entre 4 et 31)", config.Auth.BcryptCost)
	}

	if config.Auth.TokenTTL <= 0 {
		return fmt.Errorf("JWT_TTL doit être strictement positif")
	}

	return nil
}
