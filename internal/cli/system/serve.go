package system

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/julianstephens/dayfit/internal/api"
	"github.com/julianstephens/dayfit/internal/cli"
	"github.com/julianstephens/dayfit/internal/constants"
	"github.com/julianstephens/dayfit/internal/keyring"
	"github.com/julianstephens/dayfit/internal/logger"
)

type ServeCmd struct {
	Addr    string `help:"Listen address." env:"DAYFIT_API_ADDR"`
	EnvFile string `help:"Environment file to load before starting." default:".env"`
	NoAuth  bool   `help:"Serve without bearer token authentication."`
}

func (c *ServeCmd) Run(ctx *cli.Context) error {
	if err := godotenv.Load(c.EnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn("Failed to load env file", "path", c.EnvFile, "error", err)
	}

	addr := c.Addr
	if addr == "" {
		addr = os.Getenv(constants.EnvAPIAddr)
	}
	if addr == "" {
		addr = constants.DefaultAddr
	}

	var secret []byte
	if !c.NoAuth {
		s, err := apiSecret()
		if err != nil {
			return err
		}
		secret = []byte(s)
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx.Printf("Serving dayfit API on http://%s\n", addr)
	return api.New(ctx.Store, ctx.Scheduler, secret).ListenAndServe(sigCtx, addr)
}

// apiSecret prefers the environment and falls back to the OS keyring.
func apiSecret() (string, error) {
	if s := os.Getenv(constants.EnvAPISecret); s != "" {
		return s, nil
	}
	s, err := keyring.GetAPISecret()
	if errors.Is(err, keyring.ErrNotFound) {
		return "", errors.New("no API secret: set " + constants.EnvAPISecret + ", run 'dayfit keyring set --api-secret', or pass --no-auth")
	}
	return s, err
}
