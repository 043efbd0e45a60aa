package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	SessionTypeFilesystem = "filesystem"
	SessionTypeCache      = "cache"

	ErrorDetailLiteral = "literal"
	ErrorDetailOpaque  = "opaque"
)

// Config holds everything the service reads from the environment.
type Config struct {
	Port          string
	DBPath        string
	MigrationsDir string
	TemplatesDir  string

	SessionType          string
	SessionDir           string
	SessionSecret        string
	SessionMaxAge        time.Duration
	SessionMirrorProfile bool

	ErrorLogPath string
	ErrorDetail  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// Load reads a .env file if one exists and then the process environment.
func Load() Config {
	// Optional; missing .env is not an error
	_ = godotenv.Load()

	return Config{
		Port:          getEnvOrDefault("PORT", "8080"),
		DBPath:        getEnvOrDefault("DB_PATH", "./mydb.db"),
		MigrationsDir: os.Getenv("MIGRATIONS_DIR"),
		TemplatesDir:  os.Getenv("TEMPLATES_DIR"),

		SessionType:          strings.ToLower(getEnvOrDefault("SESSION_TYPE", SessionTypeFilesystem)),
		SessionDir:           getEnvOrDefault("SESSION_DIR", "./sessions"),
		SessionSecret:        getEnvOrDefault("SESSION_SECRET", "mysecretkey"),
		SessionMaxAge:        getEnvDuration("SESSION_MAX_AGE", 31*24*time.Hour),
		SessionMirrorProfile: getEnvBool("SESSION_MIRROR_PROFILE", true),

		ErrorLogPath: getEnvOrDefault("ERROR_LOG_PATH", "error.log"),
		ErrorDetail:  strings.ToLower(getEnvOrDefault("ERROR_DETAIL", ErrorDetailLiteral)),

		RedisAddr:     getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getEnvInt("REDIS_DB", 0),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}
