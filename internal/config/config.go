// Package config provides functionality for loading .env files and accessing environment variables.
package config

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"
)

var once sync.Once

// LoadEnv loads environment variables from a .env file in the working directory
// or its parent, once per process. It returns the file that was loaded, if any.
func LoadEnv() string {
	var loaded string
	once.Do(func() {
		loaded = loadEnvFile(".")
	})
	return loaded
}

func loadEnvFile(dir string) string {
	envFile := filepath.Join(dir, ".env")
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		envFile = filepath.Join(dir, "..", ".env")
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			return ""
		}
	}

	// Existing variables win over the file
	if err := godotenv.Load(envFile); err != nil {
		return ""
	}
	return envFile
}
