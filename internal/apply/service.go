// internal/apply/service.go
package apply

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	stderrors "internmatch/internal/common/errors"
	"internmatch/internal/common/logger"
	"internmatch/internal/common/metrics"
	"internmatch/internal/models"
	"internmatch/internal/recommender"
)

// ==========================
// 1. Collaborators
// ==========================

// StudentFinder loads the applying student.
type StudentFinder interface {
	FindStudent(ctx context.Context, studentID string) (*models.StudentProfile, error)
}

// PostingFinder loads the posting with its application history.
type PostingFinder interface {
	FindPosting(ctx context.Context, postingID string) (*models.InternshipPosting, error)
}

// ApplicationRecorder persists the application and increments the
// posting counter.
type ApplicationRecorder interface {
	RecordApplication(ctx context.Context, applicationID, studentID, postingID string, appliedAt time.Time) error
}

// CacheInvalidator drops the student's cached recommendations after a
// successful application.
type CacheInvalidator interface {
	InvalidateStudent(ctx context.Context, studentID string) error
}

// Receipt confirms a recorded application.
type Receipt struct {
	ApplicationID string    `json:"applicationId"`
	StudentID     string    `json:"studentId"`
	PostingID     string    `json:"postingId"`
	AppliedAt     time.Time `json:"appliedAt"`
	Status        string    `json:"status"`
}

// Service runs the application workflow.
type Service struct {
	students  StudentFinder
	postings  PostingFinder
	recorder  ApplicationRecorder
	cache     CacheInvalidator
	publisher Publisher
	logger    logger.Logger
	now       func() time.Time
	newID     func() string
}

// NewService wires the workflow. cache may be nil; publisher defaults
// to a no-op when nil.
func NewService(students StudentFinder, postings PostingFinder, recorder ApplicationRecorder,
	cache CacheInvalidator, publisher Publisher, log logger.Logger) *Service {
	if publisher == nil {
		publisher = NoopPublisher{}
	}
	return &Service{
		students:  students,
		postings:  postings,
		recorder:  recorder,
		cache:     cache,
		publisher: publisher,
		logger:    log,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// ==========================
// 2. Apply Workflow
// ==========================

// Apply records one application. Missing identities fail fast; an
// eligibility failure maps to its typed error. A publish failure after
// the application is durably recorded is logged but does not fail the
// call.
func (s *Service) Apply(ctx context.Context, studentID, postingID string) (*Receipt, error) {
	student, err := s.students.FindStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	posting, err := s.postings.FindPosting(ctx, postingID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if ok, reason := recommender.CanApplyReason(student, posting, now); !ok {
		metrics.EligibilityRejections.WithLabelValues(reason).Inc()
		return nil, rejectionError(reason, student, posting)
	}

	receipt := &Receipt{
		ApplicationID: s.newID(),
		StudentID:     studentID,
		PostingID:     postingID,
		AppliedAt:     now,
		Status:        "submitted",
	}
	if err := s.recorder.RecordApplication(ctx, receipt.ApplicationID, studentID, postingID, now); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.InvalidateStudent(ctx, studentID); err != nil {
			s.logger.Warn("Cache invalidation failed after application", map[string]interface{}{
				"studentId": studentID,
				"error":     err.Error(),
			})
		}
	}

	event := ApplicationEvent{
		ApplicationID: receipt.ApplicationID,
		StudentID:     studentID,
		PostingID:     postingID,
		AppliedAt:     now,
	}
	if err := s.publisher.PublishApplicationEvent(ctx, event); err != nil {
		// The application is already durable; the event stream is
		// best-effort and consumers reconcile from the database.
		s.logger.Error("Application event publish failed", map[string]interface{}{
			"applicationId": receipt.ApplicationID,
			"error":         err.Error(),
		})
	}

	s.logger.Info("Application submitted", map[string]interface{}{
		"applicationId": receipt.ApplicationID,
		"studentId":     studentID,
		"postingId":     postingID,
	})
	return receipt, nil
}

// rejectionError maps an eligibility gate failure onto its typed error.
func rejectionError(reason string, student *models.StudentProfile, posting *models.InternshipPosting) error {
	switch reason {
	case recommender.ReasonDuplicateApplication:
		return stderrors.NewDuplicateApplicationError(student.ID, posting.ID)
	case recommender.ReasonInactive:
		return stderrors.NewApplicationRejectedError(stderrors.ErrCodeApplicationClosed,
			fmt.Sprintf("postingId: %s is no longer active", posting.ID))
	case recommender.ReasonDeadlinePassed:
		return stderrors.NewApplicationRejectedError(stderrors.ErrCodeDeadlinePassed,
			fmt.Sprintf("deadline was %s", posting.ApplicationDeadline.Format(time.RFC3339)))
	case recommender.ReasonCapacityReached:
		return stderrors.NewApplicationRejectedError(stderrors.ErrCodeCapacityReached,
			fmt.Sprintf("postingId: %s accepts at most %d applications", posting.ID, posting.MaxApplications))
	case recommender.ReasonCGPABelowMinimum:
		return stderrors.NewApplicationRejectedError(stderrors.ErrCodeCGPABelowMinimum,
			fmt.Sprintf("required %.2f, have %.2f", posting.MinCGPA, student.CGPA))
	case recommender.ReasonBranchMismatch:
		return stderrors.NewApplicationRejectedError(stderrors.ErrCodeBranchMismatch,
			fmt.Sprintf("branch %q is not in the posting's preference list", student.Branch))
	default:
		return stderrors.NewApplicationRejectedError(stderrors.ErrCodeApplicationClosed, reason)
	}
}
