// internal/models/match.go
package models

import "time"

// MatchResult is one scored recommendation. Computed fresh per request,
// never persisted.
type MatchResult struct {
	PostingID       string  `json:"postingId"`
	Title           string  `json:"title"`
	CompanyName     string  `json:"companyName"`
	Location        string  `json:"location"`
	MatchScore      float64 `json:"matchScore"`
	SkillsScore     float64 `json:"skillsScore"`
	MatchPercentage int     `json:"matchPercentage"`
	CanApply        bool    `json:"canApply"`
}

// TrendingPosting is one entry of the trending ranking: an active posting
// annotated with its application count over the trailing window.
type TrendingPosting struct {
	PostingID          string    `json:"postingId"`
	Title              string    `json:"title"`
	CompanyName        string    `json:"companyName"`
	RecentApplications int       `json:"recentApplications"`
	CreatedAt          time.Time `json:"createdAt"`
}
