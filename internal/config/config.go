package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"wastepoint/internal/utils"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Environment string
	LogRequests bool

	// Upstream REST API
	APIBaseURL string
	APITimeout time.Duration

	// Public routing service (OSRM compatible)
	RoutingBaseURL     string
	RoutingProfile     string
	RoutingTimeout     time.Duration
	RoutingMinInterval time.Duration
	RoutingUserAgent   string
	RoutingCacheSize   int

	// Optional RS256 key used to verify upstream access tokens
	JWTPublicKeyPath string

	SessionSweepInterval time.Duration
	SessionIdleTimeout   time.Duration

	// Map fallback center when no route carries coordinates
	MapDefaultLat float64
	MapDefaultLng float64

	AllowedOrigins []string
}

// Load loads environment variables and returns a Config struct
func Load() *Config {
	_ = godotenv.Load()

	allowedOrigins := utils.SplitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173"))

	return &Config{
		Port:                 getEnv("APP_PORT", "8790"),
		Environment:          getEnv("ENVIRONMENT", "development"),
		LogRequests:          getEnvAsBool("LOG_REQUESTS", true),
		APIBaseURL:           strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:8000/api/v1"), "/"),
		APITimeout:           getEnvAsDuration("API_TIMEOUT", 30*time.Second),
		RoutingBaseURL:       strings.TrimRight(getEnv("ROUTING_BASE_URL", "https://router.project-osrm.org"), "/"),
		RoutingProfile:       getEnv("ROUTING_PROFILE", "driving"),
		RoutingTimeout:       getEnvAsDuration("ROUTING_TIMEOUT", 10*time.Second),
		RoutingMinInterval:   getEnvAsDuration("ROUTING_MIN_INTERVAL", time.Second),
		RoutingUserAgent:     getEnv("ROUTING_USER_AGENT", "wastepoint-portal"),
		RoutingCacheSize:     getEnvAsInt("ROUTING_CACHE_SIZE", 512),
		JWTPublicKeyPath:     getEnv("JWT_PUBLIC_KEY_PATH", ""),
		SessionSweepInterval: getEnvAsDuration("SESSION_SWEEP_INTERVAL", 5*time.Minute),
		SessionIdleTimeout:   getEnvAsDuration("SESSION_IDLE_TIMEOUT", 2*time.Hour),
		MapDefaultLat:        getEnvAsFloat("MAP_DEFAULT_LAT", -1.2921),
		MapDefaultLng:        getEnvAsFloat("MAP_DEFAULT_LNG", 36.8219),
		AllowedOrigins:       allowedOrigins,
	}
}

// IsProduction reports whether the service runs with production logging and defaults.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	valStr := os.Getenv(key)
	if valStr == "" {
		return fallback
	}
	val, err := strconv.ParseBool(valStr)
	if err != nil {
		log.Printf("invalid bool for %s, defaulting to %v\n", key, fallback)
		return fallback
	}
	return val
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	valStr := os.Getenv(key)
	if valStr == "" {
		return fallback
	}
	val, err := time.ParseDuration(valStr)
	if err != nil {
		log.Printf("invalid duration for %s, defaulting to %v\n", key, fallback)
		return fallback
	}
	return val
}

func getEnvAsFloat(key string, fallback float64) float64 {
	valStr := os.Getenv(key)
	if valStr == "" {
		return fallback
	}
	val, err := strconv.ParseFloat(valStr, 64)
	if err != nil {
		log.Printf("invalid float for %s, defaulting to %v\n", key, fallback)
		return fallback
	}
	return val
}

func getEnvAsInt(key string, fallback int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return fallback
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		log.Printf("invalid int for %s, defaulting to %v\n", key, fallback)
		return fallback
	}
	return val
}
