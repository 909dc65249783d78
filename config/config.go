package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

type Config struct {
	// APIBaseURL is the API base path the client talks to,
	// including the /api prefix.
	APIBaseURL string

	// TokenFile is the single well-known location of the persisted
	// credential.
	TokenFile string

	// HTTPTimeoutSeconds bounds every client request.
	HTTPTimeoutSeconds int

	// ServerPort and JWTSecret configure the development server.
	ServerPort int
	JWTSecret  string
}

func LoadConfig() Config {
	if os.Getenv("ENV") == "dev" {
		godotenv.Load()
	}

	return Config{
		APIBaseURL:         getEnv("UBUNTOO_API_URL", "http://localhost:8080/api"),
		TokenFile:          getEnv("UBUNTOO_TOKEN_FILE", defaultTokenFile()),
		HTTPTimeoutSeconds: getEnvInt("HTTP_TIMEOUT_SECONDS", 15),
		ServerPort:         getEnvInt("SERVER_PORT", 8080),
		JWTSecret:          getEnv("JWT_SECRET", "ubuntoo-dev-secret"),
	}
}

func defaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".ubuntoo-token"
	}
	return filepath.Join(home, ".ubuntoo", "token")
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if valueStr, exists := os.LookupEnv(key); exists {
		var value int
		fmt.Sscanf(valueStr, "%d", &value)
		return value
	}
	return defaultValue
}
