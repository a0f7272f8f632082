// internal/models/internship.go
package models

import "time"

// Work mode values for a posting.
const (
	ModeRemote = "remote"
	ModeOnsite = "onsite"
	ModeHybrid = "hybrid"
)

// InternshipPosting represents one internship listing.
type InternshipPosting struct {
	ID                  string               `json:"id"`
	Title               string               `json:"title"`
	CompanyName         string               `json:"companyName"`
	Description         string               `json:"description"`
	RequiredSkills      []string             `json:"requiredSkills"`
	BranchPreference    []string             `json:"branchPreference"` // empty = no preference
	MinCGPA             float64              `json:"minCGPA"`          // 0 = no minimum
	Location            string               `json:"location"`
	Mode                string               `json:"mode"`
	Stipend             string               `json:"stipend,omitempty"`
	Duration            string               `json:"duration,omitempty"`
	StartDate           time.Time            `json:"startDate"`
	EndDate             time.Time            `json:"endDate"`
	ApplicationDeadline time.Time            `json:"applicationDeadline"`
	MaxApplications     int                  `json:"maxApplications"`
	CurrentApplications int                  `json:"currentApplications"`
	Applications        []PostingApplication `json:"applications"`
	IsActive            bool                 `json:"isActive"`
	Tags                []string             `json:"tags,omitempty"`
	CreatedAt           time.Time            `json:"createdAt"`
	UpdatedAt           time.Time            `json:"updatedAt"`
}

// PostingApplication is one entry in a posting's received-application history.
// Read-only for the engine: used for duplicate detection only.
type PostingApplication struct {
	StudentID string    `json:"studentId"`
	AppliedAt time.Time `json:"appliedAt"`
	Status    string    `json:"status"`
}

// HasApplicant reports whether the posting already has an application
// from the given student.
func (p *InternshipPosting) HasApplicant(studentID string) bool {
	for _, app := range p.Applications {
		if app.StudentID == studentID {
			return true
		}
	}
	return false
}
