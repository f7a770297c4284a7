package activities

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/dayfit/internal/cli"
	"github.com/julianstephens/dayfit/internal/duration"
	"github.com/julianstephens/dayfit/internal/models"
	"github.com/julianstephens/dayfit/internal/utils"
)

type ActivityCmd struct {
	Add     AddCmd     `cmd:"" help:"Add an activity to a table."`
	List    ListCmd    `cmd:"" help:"List activities." default:"1"`
	Edit    EditCmd    `cmd:"" help:"Edit an existing activity."`
	Delete  DeleteCmd  `cmd:"" help:"Delete an activity."`
	Restore RestoreCmd `cmd:"" help:"Restore a deleted activity."`
}

type AddCmd struct {
	Name     string `arg:"" help:"Activity name."`
	Duration string `arg:"" help:"Duration as H:MM."`
	List     string `short:"l" default:"with_rest" help:"Table: with_rest, without_rest or joint."`
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("activity name cannot be empty")
	}
	if _, err := duration.Parse(c.Duration); err != nil {
		return err
	}
	kind, err := models.ParseListKind(c.List)
	if err != nil {
		return err
	}

	a, err := ctx.Store.AddActivity(models.Activity{
		List:     kind,
		Name:     strings.TrimSpace(c.Name),
		Duration: strings.TrimSpace(c.Duration),
	})
	if err != nil {
		return fmt.Errorf("failed to add activity: %w", err)
	}
	ctx.Printf("Added %s (%s) to %s\n", a.Name, a.Duration, kind.Title())
	ctx.Printf("ID: %s\n", a.ID)
	return nil
}

type ListCmd struct {
	List    string `short:"l" help:"Only show one table."`
	Deleted bool   `help:"Show deleted activities instead."`
	IDs     bool   `help:"Show activity IDs."`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	if c.Deleted {
		return c.listDeleted(ctx)
	}

	kinds := models.ListKinds
	if c.List != "" {
		kind, err := models.ParseListKind(c.List)
		if err != nil {
			return err
		}
		kinds = []models.ListKind{kind}
	}

	sheet, err := ctx.Store.GetSheet()
	if err != nil {
		return fmt.Errorf("failed to load activities: %w", err)
	}
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	if sheet.Len() == 0 {
		ctx.Println("No activities found")
		return nil
	}

	for i, kind := range kinds {
		if i > 0 {
			ctx.Println()
		}
		rows := sheet.List(kind)
		ctx.Printf("%s:\n", kind.Title())
		if len(rows) == 0 {
			ctx.Println("  (none)")
			continue
		}
		for n, row := range rows {
			line := fmt.Sprintf("  %s. %s - %s", utils.RowLabel(n+1, settings.NumberFormat), displayName(row), row.Duration)
			if c.IDs {
				line += "  [" + row.ID + "]"
			}
			ctx.Println(line)
		}
	}
	return nil
}

func (c *ListCmd) listDeleted(ctx *cli.Context) error {
	rows, err := ctx.Store.GetDeletedActivities()
	if err != nil {
		return fmt.Errorf("failed to load deleted activities: %w", err)
	}
	if len(rows) == 0 {
		ctx.Println("No deleted activities")
		return nil
	}
	ctx.Println("Deleted activities:")
	for _, row := range rows {
		ctx.Printf("  %s - %s (%s, deleted %s)  [%s]\n", displayName(row), row.Duration, row.List, *row.DeletedAt, row.ID)
	}
	return nil
}

func displayName(a models.Activity) string {
	if strings.TrimSpace(a.Name) == "" {
		return "(unnamed)"
	}
	return a.Name
}

type EditCmd struct {
	ID       string  `arg:"" help:"Activity ID."`
	Name     *string `help:"New name."`
	Duration *string `short:"d" help:"New duration as H:MM."`
	List     *string `short:"l" help:"Move to another table."`
}

func (c *EditCmd) Run(ctx *cli.Context) error {
	a, err := ctx.Store.GetActivity(c.ID)
	if err != nil {
		return fmt.Errorf("failed to find activity: %w", err)
	}
	if a.DeletedAt != nil {
		return fmt.Errorf("activity %s is deleted; restore it first", c.ID)
	}

	if c.Name != nil {
		if strings.TrimSpace(*c.Name) == "" {
			return errors.New("activity name cannot be empty")
		}
		a.Name = strings.TrimSpace(*c.Name)
	}
	if c.Duration != nil {
		if _, err := duration.Parse(*c.Duration); err != nil {
			return err
		}
		a.Duration = strings.TrimSpace(*c.Duration)
	}
	if c.List != nil {
		kind, err := models.ParseListKind(*c.List)
		if err != nil {
			return err
		}
		a.List = kind
	}

	if err := ctx.Store.UpdateActivity(a); err != nil {
		return fmt.Errorf("failed to update activity: %w", err)
	}
	ctx.Printf("Updated activity: %s (%s, %s)\n", a.Name, a.Duration, a.List.Title())
	return nil
}

type DeleteCmd struct {
	ID string `arg:"" help:"Activity ID to delete."`
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.DeleteActivity(c.ID); err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}
	ctx.Printf("Deleted activity with ID: %s\n", c.ID)
	ctx.Println("Use 'dayfit activity restore' to undo.")
	return nil
}

type RestoreCmd struct {
	ID string `arg:"" help:"Activity ID to restore."`
}

func (c *RestoreCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.RestoreActivity(c.ID); err != nil {
		return fmt.Errorf("failed to restore activity: %w", err)
	}
	ctx.Printf("Restored activity with ID: %s\n", c.ID)
	return nil
}
