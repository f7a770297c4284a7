package backups

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/dayfit/internal/cli"
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
	t.Cleanup(func() { store.Close() })
	out := &bytes.Buffer{}
	return &cli.Context{Store: store, Scheduler: scheduler.New(), Out: out}, out
}

func TestBackupCreateAndList(t *testing.T) {
	ctx, out := setupTestDB(t)

	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "No backups found.") {
		t.Errorf("expected empty listing, got:\n%s", out.String())
	}

	out.Reset()
	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !strings.Contains(out.String(), "✓ Backup created: dayfit-") {
		t.Errorf("unexpected create output:\n%s", out.String())
	}

	out.Reset()
	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Available backups (1 total") {
		t.Errorf("unexpected list output:\n%s", out.String())
	}
}

func TestBackupRestore(t *testing.T) {
	ctx, _ := setupTestDB(t)
	if _, err := ctx.Store.AddActivity(models.Activity{List: models.ListWithRest, Name: "Before", Duration: "1:00"}); err != nil {
		t.Fatal(err)
	}
	mgr, _ := ctx.BackupManager()
	path, err := mgr.Create()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ctx.Store.AddActivity(models.Activity{List: models.ListWithRest, Name: "After", Duration: "1:00"}); err != nil {
		t.Fatal(err)
	}

	ctx.In = strings.NewReader("n\n")
	if err := (&BackupRestoreCmd{BackupFile: filepath.Base(path)}).Run(ctx); err != nil {
		t.Fatalf("cancelled restore failed: %v", err)
	}
	if sheet, _ := ctx.Store.GetSheet(); len(sheet.WithRest) != 2 {
		t.Fatalf("cancelled restore changed data: %+v", sheet)
	}

	if err := (&BackupRestoreCmd{BackupFile: filepath.Base(path), Yes: true}).Run(ctx); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	sheet, err := ctx.Store.GetSheet()
	if err != nil {
		t.Fatal(err)
	}
	if len(sheet.WithRest) != 1 || sheet.WithRest[0].Name != "Before" {
		t.Errorf("expected restored snapshot, got %+v", sheet.WithRest)
	}
}

func TestBackupRestore_Missing(t *testing.T) {
	ctx, _ := setupTestDB(t)
	if err := (&BackupRestoreCmd{BackupFile: "nope.db", Yes: true}).Run(ctx); err == nil {
		t.Error("expected error for missing backup")
	}
}

func TestBackups_JSONStoreUnsupported(t *testing.T) {
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "test.json"))
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}
	ctx := &cli.Context{Store: store, Out: &bytes.Buffer{}}
	if err := (&BackupCreateCmd{}).Run(ctx); err != errNoBackups {
		t.Errorf("expected errNoBackups, got %v", err)
	}
}
