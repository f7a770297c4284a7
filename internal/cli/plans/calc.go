package plans

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"

	"github.com/julianstephens/dayfit/internal/cli"
	apperrors "github.com/julianstephens/dayfit/internal/errors"
	"github.com/julianstephens/dayfit/internal/logger"
	"github.com/julianstephens/dayfit/internal/models"
	"github.com/julianstephens/dayfit/internal/scheduler"
	"github.com/julianstephens/dayfit/internal/sheetio"
	"github.com/julianstephens/dayfit/internal/storage"
)

const formatText = "text"

type CalcCmd struct {
	File   string `short:"f" help:"Read activities from a YAML sheet instead of the database." type:"path"`
	Format string `default:"text" enum:"text,json,yaml" help:"Output format (text, json, yaml)."`
	Watch  bool   `short:"w" help:"Recalculate whenever the sheet file changes. Requires --file."`
}

func (c *CalcCmd) Run(ctx *cli.Context) error {
	if c.Watch {
		if c.File == "" {
			return errors.New("--watch requires --file")
		}
		sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return c.watch(sigCtx, ctx, nil)
	}
	return c.calculate(ctx)
}

func (c *CalcCmd) sheet(ctx *cli.Context) (models.Sheet, error) {
	if c.File != "" {
		return sheetio.LoadYAMLFile(c.File)
	}
	return ctx.Store.GetSheet()
}

// numberFormat falls back to defaults so --file works without a database.
func numberFormat(ctx *cli.Context) string {
	if ctx.Store != nil {
		if s, err := ctx.Store.GetSettings(); err == nil {
			return s.NumberFormat
		}
	}
	return storage.DefaultSettings().NumberFormat
}

func (c *CalcCmd) calculate(ctx *cli.Context) error {
	sheet, err := c.sheet(ctx)
	if err != nil {
		return err
	}
	report, err := ctx.Scheduler.Calculate(sheet)
	if err != nil {
		if errors.Is(err, scheduler.ErrEmptyInput) {
			return apperrors.WithHint(err, "add one with 'dayfit activity add <name> <H:MM>'")
		}
		return err
	}
	for _, s := range report.Skipped {
		logger.Warn("Skipped activity", "list", s.List, "name", s.Name, "duration", s.Duration, "error", s.Err)
	}

	if c.Format != "" && c.Format != formatText {
		return sheetio.EncodeReport(ctx.Stdout(), report, c.Format)
	}
	renderText(ctx.Stdout(), report, numberFormat(ctx), styledOutput(ctx))
	return nil
}

// watch recalculates on every write to the sheet file until ctx is done.
// ready, when set, is closed once the watcher is registered.
func (c *CalcCmd) watch(ctx context.Context, cctx *cli.Context, ready chan<- struct{}) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fsnotify watcher: %w", err)
	}
	defer watcher.Close()

	target, err := filepath.Abs(c.File)
	if err != nil {
		return err
	}
	// Editors often replace the file, so watch its directory.
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}
	if ready != nil {
		close(ready)
	}

	c.recalculate(cctx)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				logger.Debug("fsnotify event", "op", event.Op, "file", event.Name)
				c.recalculate(cctx)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("fsnotify error", "error", err)
		}
	}
}

func (c *CalcCmd) recalculate(ctx *cli.Context) {
	if c.Format == "" || c.Format == formatText {
		ctx.Printf("--- %s ---\n", filepath.Base(c.File))
	}
	if err := c.calculate(ctx); err != nil {
		ctx.Println(apperrors.Format(err))
	}
}
