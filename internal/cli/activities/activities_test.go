package activities

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/dayfit/internal/cli"
	"github.com/julianstephens/dayfit/internal/constants"
	"github.com/julianstephens/dayfit/internal/duration"
	"github.com/julianstephens/dayfit/internal/models"
	"github.com/julianstephens/dayfit/internal/scheduler"
	"github.com/julianstephens/dayfit/internal/storage"
)

func setupTestDB(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	store := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})
	out := &bytes.Buffer{}
	return &cli.Context{Store: store, Scheduler: scheduler.New(), Out: out}, out
}

func addActivity(t *testing.T, ctx *cli.Context, list, name, dur string) models.Activity {
	t.Helper()
	kind, _ := models.ParseListKind(list)
	a, err := ctx.Store.AddActivity(models.Activity{List: kind, Name: name, Duration: dur})
	if err != nil {
		t.Fatalf("failed to add activity: %v", err)
	}
	return a
}

func TestAddCmd(t *testing.T) {
	tests := []struct {
		name    string
		cmd     AddCmd
		wantErr bool
		errIs   error
	}{
		{name: "with rest", cmd: AddCmd{Name: "Study", Duration: "3:00", List: "with_rest"}},
		{name: "alias", cmd: AddCmd{Name: "Lunch", Duration: "1:00", List: "daily"}},
		{name: "bad duration", cmd: AddCmd{Name: "Run", Duration: "1:60", List: "with_rest"}, wantErr: true, errIs: duration.ErrFormat},
		{name: "bad list", cmd: AddCmd{Name: "Run", Duration: "1:00", List: "weekly"}, wantErr: true},
		{name: "empty name", cmd: AddCmd{Name: "  ", Duration: "1:00", List: "with_rest"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _ := setupTestDB(t)
			err := tt.cmd.Run(ctx)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Run() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.errIs != nil && !errors.Is(err, tt.errIs) {
				t.Errorf("expected %v, got %v", tt.errIs, err)
			}
			if tt.wantErr {
				return
			}
			sheet, err := ctx.Store.GetSheet()
			if err != nil {
				t.Fatal(err)
			}
			if sheet.Len() != 1 || sheet.All()[0].Name != tt.cmd.Name {
				t.Errorf("activity not stored: %+v", sheet)
			}
		})
	}
}

func TestListCmd(t *testing.T) {
	ctx, out := setupTestDB(t)
	addActivity(t, ctx, "with_rest", "Study", "3:00")
	addActivity(t, ctx, "with_rest", "Write", "1:30")
	addActivity(t, ctx, "joint", "Lunch", "1:00")

	settings, _ := ctx.Store.GetSettings()
	settings.NumberFormat = constants.NumberFormatRoman
	if err := ctx.Store.SaveSettings(settings); err != nil {
		t.Fatal(err)
	}

	if err := (&ListCmd{}).Run(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	got := out.String()
	for _, want := range []string{"Activities with breaks:", "  I. Study - 3:00", "  II. Write - 1:30", "Daily joint activities:", "  I. Lunch - 1:00", "(none)"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestEditCmd(t *testing.T) {
	ctx, _ := setupTestDB(t)
	a := addActivity(t, ctx, "with_rest", "Study", "3:00")
	addActivity(t, ctx, "joint", "Lunch", "1:00")

	name, dur, list := "Deep work", "2:15", "joint"
	if err := (&EditCmd{ID: a.ID, Name: &name, Duration: &dur, List: &list}).Run(ctx); err != nil {
		t.Fatalf("edit failed: %v", err)
	}

	got, err := ctx.Store.GetActivity(a.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != name || got.Duration != dur || got.List != models.ListJoint {
		t.Errorf("unexpected activity after edit: %+v", got)
	}
	if got.Position != 1 {
		t.Errorf("moved activity should be appended, got position %d", got.Position)
	}

	bad := "25:00"
	if err := (&EditCmd{ID: a.ID, Duration: &bad}).Run(ctx); err == nil {
		t.Error("expected error for out-of-range hours")
	}
	if err := (&EditCmd{ID: "missing"}).Run(ctx); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteAndRestore(t *testing.T) {
	ctx, out := setupTestDB(t)
	a := addActivity(t, ctx, "without_rest", "Commute", "0:45")

	if err := (&DeleteCmd{ID: a.ID}).Run(ctx); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := (&DeleteCmd{ID: a.ID}).Run(ctx); err == nil {
		t.Error("expected error deleting twice")
	}

	out.Reset()
	if err := (&ListCmd{Deleted: true}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Commute") {
		t.Errorf("deleted list missing activity:\n%s", out.String())
	}

	if err := (&EditCmd{ID: a.ID}).Run(ctx); err == nil {
		t.Error("expected edit of a deleted activity to fail")
	}
	if err := (&RestoreCmd{ID: a.ID}).Run(ctx); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	sheet, err := ctx.Store.GetSheet()
	if err != nil {
		t.Fatal(err)
	}
	if len(sheet.WithoutRest) != 1 {
		t.Errorf("expected restored activity in sheet, got %+v", sheet)
	}
}
