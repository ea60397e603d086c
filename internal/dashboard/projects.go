// Package dashboard holds the sample project list shown on the dashboard.
package dashboard

import (
	"sync"

	"github.com/samber/lo"
	"github.com/testspark/testspark/internal/domain"
	"github.com/testspark/testspark/internal/notify"
)

// SampleProjects returns the built-in demo projects
func SampleProjects() []domain.Project {
	return []domain.Project{
		{
			ID:          1,
			Name:        "E-Commerce Platform",
			Description: "End-to-end tests for the shopping and checkout experiences",
			TestCount:   24,
			PassRate:    92,
			LastRun:     "2 hours ago",
			Status:      domain.ProjectStable,
		},
		{
			ID:          2,
			Name:        "Admin Dashboard",
			Description: "User management and data visualization tests",
			TestCount:   16,
			PassRate:    81,
			LastRun:     "1 day ago",
			Status:      domain.ProjectIssues,
		},
		{
			ID:          3,
			Name:        "Mobile API",
			Description: "API endpoint tests for the mobile application",
			TestCount:   38,
			PassRate:    100,
			LastRun:     "5 hours ago",
			Status:      domain.ProjectStable,
		},
	}
}

// Store is an in-memory project list
type Store struct {
	mu       sync.Mutex
	projects []domain.Project
	notifier notify.Sink
}

// NewStore seeds a store with the sample projects
func NewStore(notifier notify.Sink) *Store {
	if notifier == nil {
		notifier = notify.Discard
	}
	return &Store{projects: SampleProjects(), notifier: notifier}
}

// List returns the projects in display order
func (s *Store) List() []domain.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Project, len(s.projects))
	copy(out, s.projects)
	return out
}

// Delete removes a project, reporting false when id is unknown
func (s *Store) Delete(id int) bool {
	s.mu.Lock()
	kept := lo.Reject(s.projects, func(p domain.Project, _ int) bool { return p.ID == id })
	removed := len(kept) != len(s.projects)
	s.projects = kept
	s.mu.Unlock()

	if removed {
		s.notifier.Notify(domain.Success("Project deleted successfully"))
	}
	return removed
}

// Stats summarises the dashboard
type Stats struct {
	Projects    int `json:"projects"`
	Tests       int `json:"tests"`
	AvgPassRate int `json:"avg_pass_rate"`
	WithIssues  int `json:"with_issues"`
}

// Summary aggregates the current projects
func (s *Store) Summary() Stats {
	projects := s.List()
	st := Stats{
		Projects:   len(projects),
		Tests:      lo.SumBy(projects, func(p domain.Project) int { return p.TestCount }),
		WithIssues: lo.CountBy(projects, func(p domain.Project) bool { return p.Status == domain.ProjectIssues }),
	}
	if len(projects) > 0 {
		st.AvgPassRate = lo.SumBy(projects, func(p domain.Project) int { return p.PassRate }) / len(projects)
	}
	return st
}
