// internal/apply/service_test.go
package apply

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	stderrors "internmatch/internal/common/errors"
	"internmatch/internal/common/logger"
	"internmatch/internal/models"
)

var applyTestNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

// ==========================
// Fakes
// ==========================

type fakeStudentFinder struct {
	student *models.StudentProfile
	err     error
}

func (f *fakeStudentFinder) FindStudent(_ context.Context, _ string) (*models.StudentProfile, error) {
	return f.student, f.err
}

type fakePostingFinder struct {
	posting *models.InternshipPosting
	err     error
}

func (f *fakePostingFinder) FindPosting(_ context.Context, _ string) (*models.InternshipPosting, error) {
	return f.posting, f.err
}

type fakeRecorder struct {
	err      error
	recorded []string
}

func (f *fakeRecorder) RecordApplication(_ context.Context, applicationID, _, _ string, _ time.Time) error {
	if f.err != nil {
		return f.err
	}
	f.recorded = append(f.recorded, applicationID)
	return nil
}

type fakeInvalidator struct {
	err         error
	invalidated []string
}

func (f *fakeInvalidator) InvalidateStudent(_ context.Context, studentID string) error {
	if f.err != nil {
		return f.err
	}
	f.invalidated = append(f.invalidated, studentID)
	return nil
}

type fakePublisher struct {
	err    error
	events []ApplicationEvent
}

func (f *fakePublisher) PublishApplicationEvent(_ context.Context, event ApplicationEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)
	return nil
}

// ==========================
// Helpers
// ==========================

func createApplicant() *models.StudentProfile {
	return &models.StudentProfile{
		ID:     "student-1",
		Name:   "Asha",
		CGPA:   8.5,
		Branch: "Computer Science",
		Skills: []string{"JavaScript", "React"},
	}
}

func createOpenInternship() *models.InternshipPosting {
	return &models.InternshipPosting{
		ID:                  "posting-1",
		Title:               "Full Stack Developer Intern",
		RequiredSkills:      []string{"JavaScript", "React"},
		BranchPreference:    []string{"Computer Science"},
		MinCGPA:             8.0,
		StartDate:           applyTestNow.Add(30 * 24 * time.Hour),
		ApplicationDeadline: applyTestNow.Add(7 * 24 * time.Hour),
		MaxApplications:     50,
		CurrentApplications: 10,
		IsActive:            true,
	}
}

func createApplyService(students *fakeStudentFinder, postings *fakePostingFinder,
	recorder *fakeRecorder, cache *fakeInvalidator, publisher Publisher) *Service {
	svc := NewService(students, postings, recorder, cache, publisher, logger.NewNoOpLogger())
	svc.now = func() time.Time { return applyTestNow }
	svc.newID = func() string { return "application-1" }
	return svc
}

// ==========================
// Tests
// ==========================

func TestApply_Success(t *testing.T) {
	recorder := &fakeRecorder{}
	cache := &fakeInvalidator{}
	publisher := &fakePublisher{}
	svc := createApplyService(
		&fakeStudentFinder{student: createApplicant()},
		&fakePostingFinder{posting: createOpenInternship()},
		recorder, cache, publisher)

	receipt, err := svc.Apply(context.Background(), "student-1", "posting-1")
	require.NoError(t, err)

	assert.Equal(t, "application-1", receipt.ApplicationID)
	assert.Equal(t, "student-1", receipt.StudentID)
	assert.Equal(t, "posting-1", receipt.PostingID)
	assert.Equal(t, "submitted", receipt.Status)
	assert.Equal(t, applyTestNow, receipt.AppliedAt)

	assert.Equal(t, []string{"application-1"}, recorder.recorded)
	assert.Equal(t, []string{"student-1"}, cache.invalidated)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, "application-1", publisher.events[0].ApplicationID)
	assert.Equal(t, applyTestNow, publisher.events[0].AppliedAt)
}

func TestApply_StudentNotFound(t *testing.T) {
	svc := createApplyService(
		&fakeStudentFinder{err: stderrors.NewStudentNotFoundError("student-x")},
		&fakePostingFinder{posting: createOpenInternship()},
		&fakeRecorder{}, &fakeInvalidator{}, &fakePublisher{})

	_, err := svc.Apply(context.Background(), "student-x", "posting-1")
	require.Error(t, err)

	var stdErr *stderrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, stderrors.ErrCodeStudentNotFound, stdErr.Code)
}

func TestApply_PostingNotFound(t *testing.T) {
	svc := createApplyService(
		&fakeStudentFinder{student: createApplicant()},
		&fakePostingFinder{err: stderrors.NewPostingNotFoundError("posting-x")},
		&fakeRecorder{}, &fakeInvalidator{}, &fakePublisher{})

	_, err := svc.Apply(context.Background(), "student-1", "posting-x")
	require.Error(t, err)

	var stdErr *stderrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, stderrors.ErrCodePostingNotFound, stdErr.Code)
}

func TestApply_EligibilityRejections(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(student *models.StudentProfile, posting *models.InternshipPosting)
		wantCode stderrors.ErrorCode
	}{
		{
			name: "inactive posting",
			mutate: func(_ *models.StudentProfile, p *models.InternshipPosting) {
				p.IsActive = false
			},
			wantCode: stderrors.ErrCodeApplicationClosed,
		},
		{
			name: "deadline passed",
			mutate: func(_ *models.StudentProfile, p *models.InternshipPosting) {
				p.ApplicationDeadline = applyTestNow.Add(-time.Hour)
			},
			wantCode: stderrors.ErrCodeDeadlinePassed,
		},
		{
			name: "duplicate application",
			mutate: func(s *models.StudentProfile, p *models.InternshipPosting) {
				p.Applications = []models.PostingApplication{{StudentID: s.ID}}
			},
			wantCode: stderrors.ErrCodeDuplicateApplication,
		},
		{
			name: "capacity reached",
			mutate: func(_ *models.StudentProfile, p *models.InternshipPosting) {
				p.CurrentApplications = p.MaxApplications
			},
			wantCode: stderrors.ErrCodeCapacityReached,
		},
		{
			name: "cgpa below minimum",
			mutate: func(s *models.StudentProfile, _ *models.InternshipPosting) {
				s.CGPA = 7.0
			},
			wantCode: stderrors.ErrCodeCGPABelowMinimum,
		},
		{
			name: "branch mismatch",
			mutate: func(s *models.StudentProfile, _ *models.InternshipPosting) {
				s.Branch = "Civil"
			},
			wantCode: stderrors.ErrCodeBranchMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			student := createApplicant()
			posting := createOpenInternship()
			tt.mutate(student, posting)

			recorder := &fakeRecorder{}
			svc := createApplyService(
				&fakeStudentFinder{student: student},
				&fakePostingFinder{posting: posting},
				recorder, &fakeInvalidator{}, &fakePublisher{})

			_, err := svc.Apply(context.Background(), student.ID, posting.ID)
			require.Error(t, err)

			var stdErr *stderrors.StandardError
			require.ErrorAs(t, err, &stdErr)
			assert.Equal(t, tt.wantCode, stdErr.Code)
			assert.Empty(t, recorder.recorded, "rejected application must not be recorded")
		})
	}
}

func TestApply_RecordFailurePropagates(t *testing.T) {
	publisher := &fakePublisher{}
	svc := createApplyService(
		&fakeStudentFinder{student: createApplicant()},
		&fakePostingFinder{posting: createOpenInternship()},
		&fakeRecorder{err: stderrors.NewDatabaseInsertFailedError(errors.New("connection reset"))},
		&fakeInvalidator{}, publisher)

	_, err := svc.Apply(context.Background(), "student-1", "posting-1")
	require.Error(t, err)

	var stdErr *stderrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, stderrors.ErrCodeDatabaseInsertFailed, stdErr.Code)
	assert.Empty(t, publisher.events, "no event without a durable record")
}

func TestApply_PublishFailureDoesNotFailTheApply(t *testing.T) {
	recorder := &fakeRecorder{}
	svc := createApplyService(
		&fakeStudentFinder{student: createApplicant()},
		&fakePostingFinder{posting: createOpenInternship()},
		recorder, &fakeInvalidator{},
		&fakePublisher{err: stderrors.NewNotificationPublishFailedError(errors.New("topic unavailable"))})

	receipt, err := svc.Apply(context.Background(), "student-1", "posting-1")
	require.NoError(t, err)
	assert.Equal(t, "application-1", receipt.ApplicationID)
	assert.Equal(t, []string{"application-1"}, recorder.recorded)
}

func TestApply_CacheFailureDoesNotFailTheApply(t *testing.T) {
	publisher := &fakePublisher{}
	svc := createApplyService(
		&fakeStudentFinder{student: createApplicant()},
		&fakePostingFinder{posting: createOpenInternship()},
		&fakeRecorder{}, &fakeInvalidator{err: errors.New("redis down")}, publisher)

	_, err := svc.Apply(context.Background(), "student-1", "posting-1")
	require.NoError(t, err)
	assert.Len(t, publisher.events, 1, "event still published when invalidation fails")
}

func TestApply_NilPublisherDefaultsToNoop(t *testing.T) {
	svc := createApplyService(
		&fakeStudentFinder{student: createApplicant()},
		&fakePostingFinder{posting: createOpenInternship()},
		&fakeRecorder{}, &fakeInvalidator{}, nil)

	_, err := svc.Apply(context.Background(), "student-1", "posting-1")
	require.NoError(t, err)
}
