package domain

import "time"

// Review is one user's scored opinion of one project. At most one
// review may exist per (user, project) pair; the reviews table
// enforces this with a composite unique index.
type Review struct {
	ID          string
	UserID      string
	ProjectName string
	Score       int
	Content     string
	CreatedAt   time.Time
}

// Review content and score bounds.
const (
	ReviewScoreMin   = 1
	ReviewScoreMax   = 5
	ReviewContentMin = 10
	ReviewContentMax = 500
)

// DefaultProjectName is used when a listing request carries no project filter.
const DefaultProjectName = "Hub"

// ProjectNames is the fixed catalogue of reviewable projects.
var ProjectNames = []string{
	"Hub",
	"WMS",
	"Flowly",
	"dJango Project",
	"FastAPI Project",
}

// IsKnownProject reports whether name belongs to the project catalogue.
func IsKnownProject(name string) bool {
	for _, p := range ProjectNames {
		if p == name {
			return true
		}
	}
	return false
}
