package config

import (
	"log/slog"
	"os"
	"regexp"

	"github.com/joho/godotenv"

	"git.home.luguber.info/inful/llmstxt/internal/logfields"
)

var envFiles = []string{".env", ".env.local"}

// loadEnvFiles loads every present .env file in order. Variables already set are kept.
func loadEnvFiles() {
	for _, name := range envFiles {
		if _, err := os.Stat(name); err != nil {
			continue
		}
		if err := godotenv.Load(name); err != nil {
			slog.Warn("Failed to load env file", logfields.File(name), logfields.Error(err))
			continue
		}
		slog.Debug("Loaded environment variables", logfields.File(name))
	}
}

var envReference = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// expandEnv replaces ${NAME} references with the variable's value, empty when unset.
// Bare $NAME and any other '$' are left as written.
func expandEnv(s string) string {
	return envReference.ReplaceAllStringFunc(s, func(ref string) string {
		return os.Getenv(ref[2 : len(ref)-1])
	})
}
