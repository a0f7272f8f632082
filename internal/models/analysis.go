// internal/models/analysis.go
package models

// ResumeAnalysis is the structured signal set extracted from one or more
// resume documents. Ephemeral: written into the student profile and discarded.
type ResumeAnalysis struct {
	Skills     []string   `json:"skills"`
	Education  Education  `json:"education"`
	Branch     string     `json:"branch"`
	Experience Experience `json:"experience"`
	Keywords   []string   `json:"keywords"`
	Confidence int        `json:"confidence"` // 0-100
}

// Education holds degree signals found in resume text.
type Education struct {
	Degree      string `json:"degree,omitempty"`
	Field       string `json:"field,omitempty"`
	Institution string `json:"institution,omitempty"`
	Year        string `json:"year,omitempty"`
}

// Experience holds work-history signals found in resume text.
type Experience struct {
	Years     int      `json:"years"`
	Positions []string `json:"positions"`
	Companies []string `json:"companies"`
}
