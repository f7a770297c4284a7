package system

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/julianstephens/dayfit/internal/cli"
	"github.com/julianstephens/dayfit/internal/constants"
	"github.com/julianstephens/dayfit/internal/keyring"
	"github.com/julianstephens/dayfit/internal/storage"
)

// KeyringCmd groups the credential commands.
type KeyringCmd struct {
	Set    KeyringSetCmd    `cmd:"" help:"Store a secret in the OS keyring."`
	Get    KeyringGetCmd    `cmd:"" help:"Show the stored connection string with its password masked."`
	Delete KeyringDeleteCmd `cmd:"" help:"Remove a secret from the OS keyring."`
	Status KeyringStatusCmd `cmd:"" help:"Check whether the OS keyring is available."`
}

// KeyringSetCmd stores the PostgreSQL connection string, or the API
// signing secret with --api-secret.
type KeyringSetCmd struct {
	Value     string `arg:"" help:"PostgreSQL connection string, or the API secret with --api-secret."`
	APISecret bool   `help:"Store the value as the HTTP API signing secret."`
}

func (cmd *KeyringSetCmd) Run(ctx *cli.Context) error {
	if cmd.APISecret {
		if len(cmd.Value) < 16 {
			return errors.New("API secret must be at least 16 characters")
		}
		if err := keyring.Set(constants.APISecretKeyringUser, cmd.Value); err != nil {
			return err
		}
		ctx.Println("✓ API secret stored successfully in OS keyring")
		return nil
	}

	if !storage.IsPostgresConnString(cmd.Value) {
		return errors.New("connection string must be a valid PostgreSQL connection string")
	}
	if err := storage.ValidateConnString(cmd.Value); err != nil {
		if !errors.Is(err, storage.ErrEmbeddedCredentials) {
			return fmt.Errorf("invalid connection string: %w", err)
		}
		// The keyring is encrypted, so a password is acceptable here
		ctx.Println("⚠️  Warning: Connection string contains embedded credentials.")
		ctx.Println("   It will be stored as-is in the encrypted OS keyring.")
	}

	if err := keyring.Set(constants.DefaultKeyringUser, cmd.Value); err != nil {
		return err
	}
	ctx.Println("✓ Connection string stored successfully in OS keyring")
	ctx.Println("  Run dayfit with --config keyring to use it")
	return nil
}

type KeyringGetCmd struct{}

func (cmd *KeyringGetCmd) Run(ctx *cli.Context) error {
	connStr, err := keyring.GetConnectionString()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no connection string found in keyring. Use 'dayfit keyring set' to store one")
		}
		return err
	}
	ctx.Println(maskPassword(connStr))
	return nil
}

type KeyringDeleteCmd struct {
	APISecret bool `help:"Delete the HTTP API signing secret instead of the connection string."`
}

func (cmd *KeyringDeleteCmd) Run(ctx *cli.Context) error {
	account, what := constants.DefaultKeyringUser, "Connection string"
	if cmd.APISecret {
		account, what = constants.APISecretKeyringUser, "API secret"
	}
	if err := keyring.Delete(account); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("no %s found in keyring", strings.ToLower(what))
		}
		return err
	}
	ctx.Printf("✓ %s deleted from OS keyring\n", what)
	return nil
}

type KeyringStatusCmd struct{}

func (cmd *KeyringStatusCmd) Run(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		ctx.Println("❌ OS keyring is not available on this system")
		return keyring.ErrKeyringUnavailable
	}
	ctx.Println("✓ OS keyring is available")
	for _, item := range []struct{ account, label string }{
		{constants.DefaultKeyringUser, "Connection string"},
		{constants.APISecretKeyringUser, "API secret"},
	} {
		if _, err := keyring.Get(item.account); err == nil {
			ctx.Printf("✓ %s is stored in keyring\n", item.label)
		} else if errors.Is(err, keyring.ErrNotFound) {
			ctx.Printf("ℹ No %s stored in keyring\n", strings.ToLower(item.label))
		}
	}
	return nil
}

var dsnPassword = regexp.MustCompile(`(?i)(password\s*=\s*)('[^']*'|\S+)`)

// maskPassword hides the password of a URI or key/value connection string.
func maskPassword(connStr string) string {
	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		u, err := url.Parse(connStr)
		if err != nil {
			return connStr
		}
		return u.Redacted()
	}
	return dsnPassword.ReplaceAllString(connStr, "${1}xxxxx")
}
