package system

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/dayfit/internal/cli"
	"github.com/julianstephens/dayfit/internal/constants"
	"github.com/julianstephens/dayfit/internal/lockfile"
	"github.com/julianstephens/dayfit/internal/logger"
	"github.com/julianstephens/dayfit/internal/storage"
	"github.com/julianstephens/dayfit/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	lock, err := lockfile.Acquire(lockPath(ctx.Store))
	if err != nil {
		return err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			logger.Warn("Failed to release lock", "error", err)
		}
	}()

	// Perform automatic backup on TUI startup (after successful load)
	ctx.PerformAutomaticBackup()

	model, err := tui.NewModel(ctx.Store, ctx.Scheduler)
	if err != nil {
		return err
	}
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui exited with error: %w", err)
	}
	return nil
}

// lockPath keeps the lock next to file-backed stores and in the user
// config directory for PostgreSQL.
func lockPath(store storage.Provider) string {
	if _, ok := store.(*storage.PostgresStore); ok {
		dir, err := os.UserConfigDir()
		if err != nil {
			dir = os.TempDir()
		}
		return filepath.Join(dir, constants.AppName, constants.LockfileName)
	}
	return lockfile.PathFor(store.GetConfigPath())
}
