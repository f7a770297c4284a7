package names

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/dayfit/internal/cli"
)

// NamesCmd manages the catalogue of activity names offered as suggestions.
type NamesCmd struct {
	List   ListCmd   `cmd:"" help:"List saved activity names." default:"1"`
	Add    AddCmd    `cmd:"" help:"Add names to the catalogue."`
	Remove RemoveCmd `cmd:"" help:"Remove a name from the catalogue."`
}

type ListCmd struct {
	Filter string `arg:"" optional:"" help:"Only show names containing this text."`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	names, err := ctx.Store.GetActivityNames()
	if err != nil {
		return fmt.Errorf("failed to load activity names: %w", err)
	}
	filter := strings.ToLower(strings.TrimSpace(c.Filter))

	shown := 0
	for _, name := range names {
		if filter != "" && !strings.Contains(strings.ToLower(name), filter) {
			continue
		}
		ctx.Println(name)
		shown++
	}
	if shown == 0 {
		ctx.Println("No activity names found")
	}
	return nil
}

type AddCmd struct {
	Names []string `arg:"" help:"Names to add."`
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	var clean []string
	for _, n := range c.Names {
		if n = strings.TrimSpace(n); n != "" {
			clean = append(clean, n)
		}
	}
	if len(clean) == 0 {
		return errors.New("no names given")
	}
	if err := ctx.Store.AddActivityNames(clean...); err != nil {
		return fmt.Errorf("failed to add activity names: %w", err)
	}
	ctx.Printf("Saved %d name(s)\n", len(clean))
	return nil
}

type RemoveCmd struct {
	Name string `arg:"" help:"Name to remove."`
}

func (c *RemoveCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.RemoveActivityName(c.Name); err != nil {
		return fmt.Errorf("failed to remove activity name: %w", err)
	}
	ctx.Printf("Removed %q\n", c.Name)
	return nil
}
