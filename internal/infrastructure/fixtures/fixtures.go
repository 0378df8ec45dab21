// Package fixtures loads the records the stores are seeded with at start.
package fixtures

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/taskmaster/taskflow/internal/domain/entities"
)

//go:embed seed.yaml
var defaultSeed []byte

// Seed is the initial content of every store.
type Seed struct {
	Projects      []entities.Project      `yaml:"projects"`
	Tasks         []entities.Task         `yaml:"tasks"`
	ShareLinks    []entities.ShareLink    `yaml:"shareLinks"`
	Notifications []entities.Notification `yaml:"notifications"`
	Settings      *entities.Settings      `yaml:"settings"`
}

// Default returns the embedded fixtures.
func Default() (*Seed, error) {
	return Parse(defaultSeed)
}

// Load reads fixtures from path; an empty path selects the embedded ones.
func Load(path string) (*Seed, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates fixtures. Unknown keys are rejected.
func Parse(data []byte) (*Seed, error) {
	var seed Seed
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&seed); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode seed: %w", err)
	}

	seed.normalize()
	if err := seed.Validate(); err != nil {
		return nil, fmt.Errorf("invalid seed: %w", err)
	}
	return &seed, nil
}

// SettingsOrDefault returns the seeded settings or the built-in defaults.
func (s *Seed) SettingsOrDefault() entities.Settings {
	if s.Settings == nil {
		return entities.DefaultSettings()
	}
	return *s.Settings
}

func (s *Seed) normalize() {
	for i := range s.Projects {
		p := &s.Projects[i]
		if p.SharedWith == nil {
			p.SharedWith = []string{}
		}
		if p.Permissions == nil {
			p.Permissions = map[string]entities.Permission{}
		}
	}
	for i := range s.Tasks {
		t := &s.Tasks[i]
		if t.UpdatedAt.IsZero() {
			t.UpdatedAt = t.CreatedAt
		}
	}
}

// Validate checks ids are present and unique per collection and that every
// enumerated value is known.
func (s *Seed) Validate() error {
	var errs []error

	ids := make(map[string]bool)
	for _, p := range s.Projects {
		errs = append(errs, checkID("project", p.ID, ids))
		if p.Name == "" {
			errs = append(errs, fmt.Errorf("project %s: name is required", p.ID))
		}
		for user, perm := range p.Permissions {
			if !perm.IsValid() {
				errs = append(errs, fmt.Errorf("project %s: unknown permission %q for %s", p.ID, perm, user))
			}
		}
	}

	ids = make(map[string]bool)
	for _, t := range s.Tasks {
		errs = append(errs, checkID("task", t.ID, ids))
		if !t.Status.IsValid() {
			errs = append(errs, fmt.Errorf("task %s: unknown status %q", t.ID, t.Status))
		}
		if !t.Priority.IsValid() {
			errs = append(errs, fmt.Errorf("task %s: unknown priority %q", t.ID, t.Priority))
		}
		if t.DueDate != "" {
			if _, ok := entities.ParseDueDate(t.DueDate); !ok {
				errs = append(errs, fmt.Errorf("task %s: unparseable due date %q", t.ID, t.DueDate))
			}
		}
	}

	ids = make(map[string]bool)
	for _, sl := range s.ShareLinks {
		errs = append(errs, checkID("share link", sl.ID, ids))
		if !sl.Permission.IsValid() {
			errs = append(errs, fmt.Errorf("share link %s: unknown permission %q", sl.ID, sl.Permission))
		}
		if sl.Link == "" {
			errs = append(errs, fmt.Errorf("share link %s: shareLink is required", sl.ID))
		}
	}

	ids = make(map[string]bool)
	for _, n := range s.Notifications {
		errs = append(errs, checkID("notification", n.ID, ids))
		if !n.Type.IsValid() {
			errs = append(errs, fmt.Errorf("notification %s: unknown type %q", n.ID, n.Type))
		}
		if !n.IsConsistent() {
			errs = append(errs, fmt.Errorf("notification %s: readAt must be set exactly when read is true", n.ID))
		}
	}

	if s.Settings != nil {
		if !s.Settings.TaskView.IsValid() {
			errs = append(errs, fmt.Errorf("settings: unknown task view %q", s.Settings.TaskView))
		}
		if !s.Settings.Theme.IsValid() {
			errs = append(errs, fmt.Errorf("settings: unknown theme %q", s.Settings.Theme))
		}
	}

	return errors.Join(errs...)
}

func checkID(kind, id string, seen map[string]bool) error {
	if id == "" {
		return fmt.Errorf("%s: id is required", kind)
	}
	if seen[id] {
		return fmt.Errorf("%s %s: duplicate id", kind, id)
	}
	seen[id] = true
	return nil
}
