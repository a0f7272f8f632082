// internal/models/student.go
package models

import "time"

// StudentProfile represents a student candidate record.
type StudentProfile struct {
	ID               string               `json:"id"`
	Name             string               `json:"name"`
	Email            string               `json:"email"`
	CGPA             float64              `json:"cgpa"` // 0-10 scale, 0 = not provided
	Branch           string               `json:"branch"`
	Interests        []string             `json:"interests"`
	Skills           []string             `json:"skills"`
	ResumeRef        string               `json:"resumeRef,omitempty"`
	Applications     []StudentApplication `json:"applications"`
	ProfileCompleted bool                 `json:"profileCompleted"`
	CreatedAt        time.Time            `json:"createdAt"`
	UpdatedAt        time.Time            `json:"updatedAt"`
}

// StudentApplication is one entry in a student's application history.
type StudentApplication struct {
	PostingID string    `json:"postingId"`
	AppliedAt time.Time `json:"appliedAt"`
	Status    string    `json:"status"`
}

// HasApplied reports whether the student's history contains the posting.
func (s *StudentProfile) HasApplied(postingID string) bool {
	for _, app := range s.Applications {
		if app.PostingID == postingID {
			return true
		}
	}
	return false
}
