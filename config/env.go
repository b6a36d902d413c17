package config

import "os"

// GetEnv reads an environment variable. Values come from the process
// environment or the .env file loaded by godotenv at startup.
func GetEnv(key string) string {
	return os.Getenv(key)
}

// GetEnvOrDefault reads an environment variable, falling back to def when unset.
func GetEnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
