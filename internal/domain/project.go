package domain

// ProjectStatus is the health of a project's last test run
type ProjectStatus string

const (
	ProjectStable ProjectStatus = "stable"
	ProjectIssues ProjectStatus = "issues"
)

// Project is a dashboard entry grouping test cases
type Project struct {
	ID          int           `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	TestCount   int           `json:"test_count"`
	PassRate    int           `json:"pass_rate"` // Percent, 0..100
	LastRun     string        `json:"last_run"`  // Display string, e.g. "2 hours ago"
	Status      ProjectStatus `json:"status"`
}
