package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"git.home.luguber.info/inful/imgcaptions/internal/logfields"
)

var envFiles = []string{".env", ".env.local"}

// LoadEnv loads variables from .env and .env.local in the working directory.
// Variables already present in the environment are never overridden, so
// .env wins over .env.local for keys both define.
func LoadEnv() {
	for _, name := range envFiles {
		if _, err := os.Stat(name); err != nil {
			continue
		}
		if err := godotenv.Load(name); err != nil {
			slog.Warn("Failed to load environment file", logfields.Path(name), logfields.Error(err))
			continue
		}
		slog.Debug("Loaded environment variables", logfields.Path(name))
	}
}
