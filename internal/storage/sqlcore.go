package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/dayfit/internal/models"
)

// dialect holds the statements that differ between SQLite and PostgreSQL.
// Queries are written with '?' placeholders and rebound per dialect.
type dialect struct {
	upsertSetting string
	insertName    string
	rebind        func(string) string
}

var sqliteDialect = dialect{
	upsertSetting: "INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)",
	insertName:    "INSERT OR IGNORE INTO activity_names (name) VALUES (?)",
	rebind:        func(q string) string { return q },
}

var postgresDialect = dialect{
	upsertSetting: "INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value",
	insertName:    "INSERT INTO activity_names (name) VALUES (?) ON CONFLICT (name) DO NOTHING",
	rebind:        rebindDollar,
}

// rebindDollar rewrites '?' placeholders as $1, $2, ...
func rebindDollar(query string) string {
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

var errNotLoaded = errors.New("storage not loaded")

// sqlCore implements the Provider data methods over database/sql.
type sqlCore struct {
	db      *sql.DB
	dialect dialect
}

func (c *sqlCore) q(query string) string {
	return c.dialect.rebind(query)
}

func (c *sqlCore) ready() error {
	if c.db == nil {
		return errNotLoaded
	}
	return nil
}

// queryer is satisfied by *sql.DB and *sql.Tx
type queryer interface {
	Exec(query string, args ...any) (sql.Result, error)
	QueryRow(query string, args ...any) *sql.Row
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func (c *sqlCore) GetSettings() (Settings, error) {
	if err := c.ready(); err != nil {
		return Settings{}, err
	}
	rows, err := c.db.Query("SELECT key, value FROM settings")
	if err != nil {
		return Settings{}, err
	}
	defer rows.Close()

	settings := Settings{}
	count := 0
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return Settings{}, err
		}
		settings.apply(key, value)
		count++
	}
	if err := rows.Err(); err != nil {
		return Settings{}, err
	}
	if count == 0 {
		return Settings{}, fmt.Errorf("settings not found")
	}

	settings.fillDefaults()
	return settings, nil
}

func (c *sqlCore) SaveSettings(settings Settings) error {
	if err := c.ready(); err != nil {
		return err
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(c.q(c.dialect.upsertSetting))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, kv := range settings.toPairs() {
		if _, err := stmt.Exec(kv[0], kv[1]); err != nil {
			return fmt.Errorf("failed to save setting %s: %w", kv[0], err)
		}
	}

	return tx.Commit()
}

const activityColumns = "id, list, position, name, duration, deleted_at"

type scanner interface {
	Scan(dest ...any) error
}

func scanActivity(row scanner) (models.Activity, error) {
	var a models.Activity
	var list string
	var deletedAt sql.NullString
	if err := row.Scan(&a.ID, &list, &a.Position, &a.Name, &a.Duration, &deletedAt); err != nil {
		return models.Activity{}, err
	}
	a.List = models.ListKind(list)
	if deletedAt.Valid {
		a.DeletedAt = &deletedAt.String
	}
	return a, nil
}

func (c *sqlCore) GetSheet() (models.Sheet, error) {
	if err := c.ready(); err != nil {
		return models.Sheet{}, err
	}
	rows, err := c.db.Query("SELECT " + activityColumns + " FROM activities WHERE deleted_at IS NULL ORDER BY list, position, id")
	if err != nil {
		return models.Sheet{}, err
	}
	defer rows.Close()

	grouped := make(map[models.ListKind][]models.Activity)
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return models.Sheet{}, err
		}
		grouped[a.List] = append(grouped[a.List], a)
	}
	if err := rows.Err(); err != nil {
		return models.Sheet{}, err
	}

	var sheet models.Sheet
	for _, kind := range models.ListKinds {
		sheet.SetList(kind, grouped[kind])
	}
	return sheet, nil
}

func (c *sqlCore) SaveSheet(sheet models.Sheet) error {
	if err := c.ready(); err != nil {
		return err
	}

	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM activities WHERE deleted_at IS NULL"); err != nil {
		return fmt.Errorf("failed to clear activities: %w", err)
	}

	for _, kind := range models.ListKinds {
		for i, a := range sheet.List(kind) {
			if a.ID == "" {
				a.ID = uuid.New().String()
			}
			if _, err := tx.Exec(
				c.q("INSERT INTO activities ("+activityColumns+") VALUES (?, ?, ?, ?, ?, NULL)"),
				a.ID, string(kind), i, a.Name, a.Duration,
			); err != nil {
				return fmt.Errorf("failed to save activity %q: %w", a.Name, err)
			}
			if err := c.addName(tx, a.Name); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

func (c *sqlCore) AddActivity(a models.Activity) (models.Activity, error) {
	if err := c.ready(); err != nil {
		return models.Activity{}, err
	}
	kind, err := models.ParseListKind(string(a.List))
	if err != nil {
		return models.Activity{}, err
	}
	a.List = kind
	if a.ID == "" {
		a.ID = uuid.New().String()
	}

	tx, err := c.db.Begin()
	if err != nil {
		return models.Activity{}, err
	}
	defer tx.Rollback()

	pos, err := c.nextPosition(tx, a.List)
	if err != nil {
		return models.Activity{}, err
	}
	a.Position = pos
	a.DeletedAt = nil

	if _, err := tx.Exec(
		c.q("INSERT INTO activities ("+activityColumns+") VALUES (?, ?, ?, ?, ?, NULL)"),
		a.ID, string(a.List), a.Position, a.Name, a.Duration,
	); err != nil {
		return models.Activity{}, err
	}
	if err := c.addName(tx, a.Name); err != nil {
		return models.Activity{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Activity{}, err
	}
	return a, nil
}

func (c *sqlCore) nextPosition(tx queryer, list models.ListKind) (int, error) {
	var pos int
	err := tx.QueryRow(
		c.q("SELECT COALESCE(MAX(position) + 1, 0) FROM activities WHERE list = ? AND deleted_at IS NULL"),
		string(list),
	).Scan(&pos)
	if err != nil {
		return 0, fmt.Errorf("failed to compute position: %w", err)
	}
	return pos, nil
}

func (c *sqlCore) GetActivity(id string) (models.Activity, error) {
	if err := c.ready(); err != nil {
		return models.Activity{}, err
	}
	a, err := scanActivity(c.db.QueryRow(c.q("SELECT "+activityColumns+" FROM activities WHERE id = ?"), id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Activity{}, fmt.Errorf("activity %s: %w", id, ErrNotFound)
		}
		return models.Activity{}, err
	}
	return a, nil
}

func (c *sqlCore) GetDeletedActivities() ([]models.Activity, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}
	rows, err := c.db.Query("SELECT " + activityColumns + " FROM activities WHERE deleted_at IS NOT NULL ORDER BY deleted_at DESC, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (c *sqlCore) UpdateActivity(a models.Activity) error {
	if err := c.ready(); err != nil {
		return err
	}
	kind, err := models.ParseListKind(string(a.List))
	if err != nil {
		return err
	}
	a.List = kind

	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	current, err := scanActivity(tx.QueryRow(c.q("SELECT "+activityColumns+" FROM activities WHERE id = ? AND deleted_at IS NULL"), a.ID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("activity %s: %w", a.ID, ErrNotFound)
		}
		return err
	}

	// Moving to another table appends to the end of it.
	pos := current.Position
	if current.List != a.List {
		if pos, err = c.nextPosition(tx, a.List); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(
		c.q("UPDATE activities SET list = ?, position = ?, name = ?, duration = ? WHERE id = ?"),
		string(a.List), pos, a.Name, a.Duration, a.ID,
	); err != nil {
		return err
	}
	if err := c.addName(tx, a.Name); err != nil {
		return err
	}
	return tx.Commit()
}

func (c *sqlCore) DeleteActivity(id string) error {
	if err := c.ready(); err != nil {
		return err
	}
	// Soft delete: set deleted_at timestamp instead of removing the record
	var deletedAt sql.NullString
	err := c.db.QueryRow(c.q("SELECT deleted_at FROM activities WHERE id = ?"), id).Scan(&deletedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("activity %s: %w", id, ErrNotFound)
		}
		return fmt.Errorf("failed to check activity existence: %w", err)
	}
	if deletedAt.Valid {
		return fmt.Errorf("activity with id %s is already deleted", id)
	}

	_, err = c.db.Exec(c.q("UPDATE activities SET deleted_at = ? WHERE id = ?"), now(), id)
	return err
}

func (c *sqlCore) RestoreActivity(id string) error {
	if err := c.ready(); err != nil {
		return err
	}

	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	a, err := scanActivity(tx.QueryRow(c.q("SELECT "+activityColumns+" FROM activities WHERE id = ?"), id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("activity %s: %w", id, ErrNotFound)
		}
		return fmt.Errorf("failed to check activity existence: %w", err)
	}
	if a.DeletedAt == nil {
		return fmt.Errorf("cannot restore an activity that is not deleted: %s", id)
	}

	// Restored rows go to the end of their table.
	pos, err := c.nextPosition(tx, a.List)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(c.q("UPDATE activities SET deleted_at = NULL, position = ? WHERE id = ?"), pos, id); err != nil {
		return err
	}
	return tx.Commit()
}

func (c *sqlCore) addName(tx queryer, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	if _, err := tx.Exec(c.q(c.dialect.insertName), name); err != nil {
		return fmt.Errorf("failed to save activity name %q: %w", name, err)
	}
	return nil
}

func (c *sqlCore) GetActivityNames() ([]string, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}
	rows, err := c.db.Query("SELECT name FROM activity_names ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (c *sqlCore) AddActivityNames(names ...string) error {
	if err := c.ready(); err != nil {
		return err
	}
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, name := range names {
		if err := c.addName(tx, name); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (c *sqlCore) RemoveActivityName(name string) error {
	if err := c.ready(); err != nil {
		return err
	}
	res, err := c.db.Exec(c.q("DELETE FROM activity_names WHERE name = ?"), strings.TrimSpace(name))
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("activity name %q: %w", name, ErrNotFound)
	}
	return nil
}
