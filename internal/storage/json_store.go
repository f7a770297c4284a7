package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/dayfit/internal/models"
)

type document struct {
	Version    int                        `json:"version"`
	Settings   Settings                   `json:"settings"`
	Activities map[string]models.Activity `json:"activities"`
	Names      []string                   `json:"activity_names"`
}

// JSONStore keeps everything in a single JSON document. It is selected
// when the config path ends in .json.
type JSONStore struct {
	path string
	doc  *document
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return s.Load()
	}

	s.doc = &document{
		Version:    1,
		Settings:   DefaultSettings(),
		Activities: make(map[string]models.Activity),
	}
	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return errNotInitialized()
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	doc := &document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	if doc.Activities == nil {
		doc.Activities = make(map[string]models.Activity)
	}
	doc.Settings.fillDefaults()
	s.doc = doc
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal storage: %w", err)
	}

	// Write to a temp file first so a crash never leaves a truncated document
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return os.Rename(tmp, s.path)
}

func (s *JSONStore) ready() error {
	if s.doc == nil {
		return errNotLoaded
	}
	return nil
}

func (s *JSONStore) GetSettings() (Settings, error) {
	if err := s.ready(); err != nil {
		return Settings{}, err
	}
	return s.doc.Settings, nil
}

func (s *JSONStore) SaveSettings(settings Settings) error {
	if err := s.ready(); err != nil {
		return err
	}
	if err := settings.Validate(); err != nil {
		return err
	}
	s.doc.Settings = settings
	return s.save()
}

func (s *JSONStore) live(kind models.ListKind) []models.Activity {
	var rows []models.Activity
	for _, a := range s.doc.Activities {
		if a.List == kind && a.DeletedAt == nil {
			rows = append(rows, a)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Position != rows[j].Position {
			return rows[i].Position < rows[j].Position
		}
		return rows[i].ID < rows[j].ID
	})
	return rows
}

func (s *JSONStore) nextPosition(kind models.ListKind) int {
	next := 0
	for _, a := range s.live(kind) {
		if a.Position >= next {
			next = a.Position + 1
		}
	}
	return next
}

func (s *JSONStore) GetSheet() (models.Sheet, error) {
	if err := s.ready(); err != nil {
		return models.Sheet{}, err
	}
	var sheet models.Sheet
	for _, kind := range models.ListKinds {
		sheet.SetList(kind, s.live(kind))
	}
	return sheet, nil
}

func (s *JSONStore) SaveSheet(sheet models.Sheet) error {
	if err := s.ready(); err != nil {
		return err
	}
	for id, a := range s.doc.Activities {
		if a.DeletedAt == nil {
			delete(s.doc.Activities, id)
		}
	}
	for _, kind := range models.ListKinds {
		for i, a := range sheet.List(kind) {
			if a.ID == "" {
				a.ID = uuid.New().String()
			}
			a.List = kind
			a.Position = i
			a.DeletedAt = nil
			s.doc.Activities[a.ID] = a
			s.addName(a.Name)
		}
	}
	return s.save()
}

func (s *JSONStore) AddActivity(a models.Activity) (models.Activity, error) {
	if err := s.ready(); err != nil {
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
	if _, exists := s.doc.Activities[a.ID]; exists {
		return models.Activity{}, fmt.Errorf("activity with id %s already exists", a.ID)
	}
	a.Position = s.nextPosition(kind)
	a.DeletedAt = nil
	s.doc.Activities[a.ID] = a
	s.addName(a.Name)
	return a, s.save()
}

func (s *JSONStore) GetActivity(id string) (models.Activity, error) {
	if err := s.ready(); err != nil {
		return models.Activity{}, err
	}
	a, ok := s.doc.Activities[id]
	if !ok {
		return models.Activity{}, fmt.Errorf("activity %s: %w", id, ErrNotFound)
	}
	return a, nil
}

func (s *JSONStore) GetDeletedActivities() ([]models.Activity, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	var out []models.Activity
	for _, a := range s.doc.Activities {
		if a.DeletedAt != nil {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if *out[i].DeletedAt != *out[j].DeletedAt {
			return *out[i].DeletedAt > *out[j].DeletedAt
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *JSONStore) UpdateActivity(a models.Activity) error {
	if err := s.ready(); err != nil {
		return err
	}
	kind, err := models.ParseListKind(string(a.List))
	if err != nil {
		return err
	}
	current, ok := s.doc.Activities[a.ID]
	if !ok || current.DeletedAt != nil {
		return fmt.Errorf("activity %s: %w", a.ID, ErrNotFound)
	}
	a.List = kind
	a.Position = current.Position
	if current.List != kind {
		a.Position = s.nextPosition(kind)
	}
	a.DeletedAt = nil
	s.doc.Activities[a.ID] = a
	s.addName(a.Name)
	return s.save()
}

func (s *JSONStore) DeleteActivity(id string) error {
	if err := s.ready(); err != nil {
		return err
	}
	a, ok := s.doc.Activities[id]
	if !ok {
		return fmt.Errorf("activity %s: %w", id, ErrNotFound)
	}
	if a.DeletedAt != nil {
		return fmt.Errorf("activity with id %s is already deleted", id)
	}
	ts := time.Now().UTC().Format(time.RFC3339)
	a.DeletedAt = &ts
	s.doc.Activities[id] = a
	return s.save()
}

func (s *JSONStore) RestoreActivity(id string) error {
	if err := s.ready(); err != nil {
		return err
	}
	a, ok := s.doc.Activities[id]
	if !ok {
		return fmt.Errorf("activity %s: %w", id, ErrNotFound)
	}
	if a.DeletedAt == nil {
		return fmt.Errorf("cannot restore an activity that is not deleted: %s", id)
	}
	a.Position = s.nextPosition(a.List)
	a.DeletedAt = nil
	s.doc.Activities[id] = a
	return s.save()
}

func (s *JSONStore) addName(name string) {
	name = strings.TrimSpace(name)
	if name == "" || slices.Contains(s.doc.Names, name) {
		return
	}
	s.doc.Names = append(s.doc.Names, name)
	slices.Sort(s.doc.Names)
}

func (s *JSONStore) GetActivityNames() ([]string, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return slices.Clone(s.doc.Names), nil
}

func (s *JSONStore) AddActivityNames(names ...string) error {
	if err := s.ready(); err != nil {
		return err
	}
	for _, name := range names {
		s.addName(name)
	}
	return s.save()
}

func (s *JSONStore) RemoveActivityName(name string) error {
	if err := s.ready(); err != nil {
		return err
	}
	i := slices.Index(s.doc.Names, strings.TrimSpace(name))
	if i < 0 {
		return fmt.Errorf("activity name %q: %w", name, ErrNotFound)
	}
	s.doc.Names = slices.Delete(s.doc.Names, i, i+1)
	return s.save()
}
