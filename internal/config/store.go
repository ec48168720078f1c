// Package config persists the bot credentials under the user's XDG config
// directory and acquires them interactively on first use.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"
)

const (
	appDir          = "tgpost"
	credentialsFile = "credentials.yaml"
)

// tokenPattern matches the Telegram bot token format: <digits>:<alphanum+dash>.
var tokenPattern = regexp.MustCompile(`^\d+:[A-Za-z0-9_-]+$`)

// ErrInvalidToken indicates a token that does not match the Bot API format.
var ErrInvalidToken = errors.New("config: invalid bot token (expected <bot_id>:<hash>)")

// Credentials is the content of the credentials file.
type Credentials struct {
	BotToken string `yaml:"bot_token"`
}

// ValidateToken checks the <bot_id>:<hash> token shape.
func ValidateToken(token string) error {
	if !tokenPattern.MatchString(token) {
		return ErrInvalidToken
	}
	return nil
}

// Path returns the credentials file location.
// Search order: $XDG_CONFIG_HOME/tgpost/credentials.yaml → ~/.config/tgpost/credentials.yaml
func Path() (string, error) {
	if xdg, ok := os.LookupEnv("XDG_CONFIG_HOME"); ok {
		return filepath.Join(xdg, appDir, credentialsFile), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", appDir, credentialsFile), nil
}

// DataDir returns the persistent data directory for the send history.
// Uses $XDG_DATA_HOME/tgpost if set, otherwise ~/.local/share/tgpost per the XDG spec.
func DataDir() string {
	if dir, ok := os.LookupEnv("XDG_DATA_HOME"); ok {
		return filepath.Join(dir, appDir)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", appDir)
}

// Load reads stored credentials. A missing or malformed file yields
// (nil, nil): the token is treated as absent and the caller re-prompts
// instead of aborting.
func Load(path string) (*Credentials, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	var creds Credentials
	if err := yaml.Unmarshal(raw, &creds); err != nil {
		return nil, nil
	}
	if creds.BotToken == "" {
		return nil, nil
	}
	return &creds, nil
}

// Save writes the credentials file, creating the parent directory if absent.
// The file is owner-readable only.
func Save(path string, creds *Credentials) error {
	data, err := yaml.Marshal(creds)
	if err != nil {
		return fmt.Errorf("config: marshal credentials: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("config: create directory %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// Reset removes the stored credentials. A missing file is not an error.
func Reset(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("config: remove %s: %w", path, err)
	}
	return nil
}
