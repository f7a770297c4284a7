package system

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/julianstephens/dayfit/internal/cli"
	"github.com/julianstephens/dayfit/internal/storage"
)

type DebugCmd struct {
	DBPath       DebugDBPathCmd       `cmd:"" help:"Show database path."`
	DumpSheet    DebugDumpSheetCmd    `cmd:"" help:"Dump all activity tables as JSON."`
	DumpActivity DebugDumpActivityCmd `cmd:"" help:"Dump one activity as JSON."`
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	// Machine-readable output
	return printJSON(ctx, map[string]string{"path": ctx.Store.GetConfigPath()})
}

type DebugDumpSheetCmd struct{}

func (cmd *DebugDumpSheetCmd) Run(ctx *cli.Context) error {
	sheet, err := ctx.Store.GetSheet()
	if err != nil {
		return fmt.Errorf("failed to get activities: %w", err)
	}
	return printJSON(ctx, sheet)
}

type DebugDumpActivityCmd struct {
	ID string `arg:"" help:"ID of the activity to dump."`
}

func (cmd *DebugDumpActivityCmd) Run(ctx *cli.Context) error {
	a, err := ctx.Store.GetActivity(cmd.ID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("activity not found: %s", cmd.ID)
		}
		return fmt.Errorf("failed to get activity: %w", err)
	}
	return printJSON(ctx, a)
}

func printJSON(ctx *cli.Context, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	ctx.Println(string(data))
	return nil
}
