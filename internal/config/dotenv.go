package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// DotEnvFile is the dotenv file read from the working directory.
const DotEnvFile = ".env"

// LoadDotEnv exports the variables in path that are not already set in the
// environment, so COUNTRYDEX_* overrides can live next to a saved dataset.
// An empty path means DotEnvFile. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = DotEnvFile
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}
