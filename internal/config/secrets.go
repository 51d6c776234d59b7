package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
)

var errSecretsFileMissing = errors.New("secrets file not found")

// readSecret looks up key in a TOML secrets file such as the one a hosting
// platform mounts next to the app. Keys are case-insensitive.
func readSecret(path, key string) (string, error) {
	if path == "" {
		return "", errSecretsFileMissing
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", errSecretsFileMissing
		}
		return "", err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return "", fmt.Errorf("failed to parse secrets file: %w", err)
	}

	return v.GetString(key), nil
}
