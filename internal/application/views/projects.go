package views

import (
	"github.com/taskmaster/taskflow/internal/domain/entities"
)

// Fallbacks used when a task or share link points at a project that no
// longer exists.
const (
	UnknownProjectName  = "Unknown Project"
	UnknownProjectColor = "#64748b"
)

// ProjectRef is the name and colour shown next to a task.
type ProjectRef struct {
	ID    string
	Name  string
	Color string
	Known bool
}

// ProjectDirectory resolves weak project references.
type ProjectDirectory struct {
	byID map[string]*entities.Project
}

func NewProjectDirectory(projects []*entities.Project) *ProjectDirectory {
	d := &ProjectDirectory{byID: make(map[string]*entities.Project, len(projects))}
	for _, p := range projects {
		d.byID[p.ID] = p
	}
	return d
}

// Lookup never fails: a dangling id resolves to the Unknown Project fallback.
func (d *ProjectDirectory) Lookup(id string) ProjectRef {
	p, ok := d.byID[id]
	if !ok {
		return ProjectRef{ID: id, Name: UnknownProjectName, Color: UnknownProjectColor}
	}
	color := p.Color
	if color == "" {
		color = UnknownProjectColor
	}
	return ProjectRef{ID: id, Name: p.Name, Color: color, Known: true}
}

func (d *ProjectDirectory) Name(id string) string {
	return d.Lookup(id).Name
}

func (d *ProjectDirectory) Len() int {
	return len(d.byID)
}
