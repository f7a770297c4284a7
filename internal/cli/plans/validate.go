package plans

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/dayfit/internal/cli"
	"github.com/julianstephens/dayfit/internal/validation"
)

type ValidateCmd struct {
	File   string `short:"f" help:"Validate a YAML sheet instead of the database." type:"path"`
	Fix    bool   `help:"Delete incomplete rows from the database."`
	Strict bool   `help:"Exit with an error when conflicts of error severity are found."`
}

func (cmd *ValidateCmd) Run(ctx *cli.Context) error {
	if cmd.Fix && cmd.File != "" {
		return errors.New("--fix only applies to the database")
	}

	ctx.Println("Validating activities...")
	sheet, err := (&CalcCmd{File: cmd.File}).sheet(ctx)
	if err != nil {
		return fmt.Errorf("failed to load activities: %w", err)
	}

	result := validation.New().ValidateSheet(sheet)
	ctx.Println()
	ctx.Println(strings.TrimRight(result.FormatReport(), "\n"))

	if cmd.Fix {
		actions := validation.AutoFixIncompleteRows(result.Conflicts, ctx.Store.DeleteActivity)
		if len(actions) > 0 {
			ctx.Println()
			ctx.Println("Fixes applied:")
			for _, a := range actions {
				ctx.Printf("  - %s\n", a.Action)
			}
		}
	}

	if cmd.Strict && result.HasErrors() {
		return errors.New("validation failed")
	}
	return nil
}
