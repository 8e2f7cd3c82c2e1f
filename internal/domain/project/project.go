// Package project defines the tracked project record, its two-valued status,
// and the form rules a submission must pass before a project is created.
package project

import "fmt"

// Project is a tracked unit of work. Only the store creates projects, and
// only the store changes Status after creation.
type Project struct {
	ID          string
	Title       string
	Description string
	People      int
	Status      Status
}

// AssignedLabel renders the people count the way the item view shows it.
func (p Project) AssignedLabel() string {
	if p.People == 1 {
		return "1 person assigned"
	}
	return fmt.Sprintf("%d persons assigned", p.People)
}

// Filter returns the projects in snapshot whose status is s, keeping order.
func Filter(snapshot []Project, s Status) []Project {
	out := make([]Project, 0, len(snapshot))
	for _, p := range snapshot {
		if p.Status == s {
			out = append(out, p)
		}
	}
	return out
}
