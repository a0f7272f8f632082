// internal/recommender/eligibility.go
package recommender

import (
	"strings"
	"time"

	"internmatch/internal/models"
)

// Rejection reasons reported by CanApplyReason. Stable values: they label
// the eligibility_rejections metric and map onto application errors.
const (
	ReasonInactive             = "inactive"
	ReasonDeadlinePassed       = "deadline_passed"
	ReasonDuplicateApplication = "duplicate_application"
	ReasonCapacityReached      = "capacity_reached"
	ReasonCGPABelowMinimum     = "cgpa_below_minimum"
	ReasonBranchMismatch       = "branch_mismatch"
)

// CanApply reports whether the student could submit an application to the
// posting right now. Pure function of its inputs; never errors.
func CanApply(student *models.StudentProfile, posting *models.InternshipPosting, now time.Time) bool {
	ok, _ := CanApplyReason(student, posting, now)
	return ok
}

// CanApplyReason evaluates the eligibility gates in order and returns the
// first failing gate's reason. Checks are ordered cheapest-first and
// short-circuit, so a posting that is both closed and over capacity
// reports only that it is closed.
func CanApplyReason(student *models.StudentProfile, posting *models.InternshipPosting, now time.Time) (bool, string) {
	if !posting.IsActive {
		return false, ReasonInactive
	}
	if !posting.ApplicationDeadline.After(now) {
		return false, ReasonDeadlinePassed
	}
	if posting.HasApplicant(student.ID) {
		return false, ReasonDuplicateApplication
	}
	if posting.CurrentApplications >= posting.MaxApplications {
		return false, ReasonCapacityReached
	}
	if posting.MinCGPA > 0 && student.CGPA < posting.MinCGPA {
		return false, ReasonCGPABelowMinimum
	}
	if len(posting.BranchPreference) > 0 && !branchEligible(student.Branch, posting.BranchPreference) {
		return false, ReasonBranchMismatch
	}
	return true, ""
}

// branchEligible applies a lenient containment check in both directions,
// so "computer science" passes a "Computer Science and Engineering"
// preference and vice versa.
func branchEligible(studentBranch string, branchPreference []string) bool {
	branch := strings.ToLower(strings.TrimSpace(studentBranch))
	if branch == "" {
		return false
	}
	for _, pref := range branchPreference {
		p := strings.ToLower(strings.TrimSpace(pref))
		if p == "" {
			continue
		}
		if strings.Contains(branch, p) || strings.Contains(p, branch) {
			return true
		}
	}
	return false
}
