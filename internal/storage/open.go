package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath resolves a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// NewProvider picks a store from the config value: PostgreSQL for
// connection strings, the JSON store for .json paths and SQLite otherwise.
func NewProvider(config string) (Provider, error) {
	if IsPostgresConnString(config) {
		if err := ValidateConnString(config); err != nil {
			if errors.Is(err, ErrEmbeddedCredentials) {
				return nil, fmt.Errorf("%w: store the connection string with 'dayfit keyring set' or use .pgpass", err)
			}
			return nil, err
		}
		return NewPostgresStore(config), nil
	}

	path, err := ExpandPath(config)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return NewJSONStore(path), nil
	}
	return NewSQLiteStore(path), nil
}
