package file

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads .env files so their variables can override configuration.
// Existing environment variables are never overwritten, which makes earlier
// files win. Missing files are ignored. The search order is the explicit
// paths, the working directory, then the config directory.
func LoadDotEnv(configDir string, paths ...string) error {
	candidates := append([]string{}, paths...)
	candidates = append(candidates, ".env")
	if configDir != "" {
		candidates = append(candidates, filepath.Join(configDir, ".env"))
	}

	for _, path := range candidates {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return err
		}
	}
	return nil
}
