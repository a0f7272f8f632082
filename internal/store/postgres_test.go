// internal/store/postgres_test.go
package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	stderrors "internmatch/internal/common/errors"
	"internmatch/internal/common/logger"
)

// ==========================
// Test Helpers
// ==========================

func createMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

var (
	testCreatedAt = time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)
	testDeadline  = time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
)

func studentRow() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "email", "cgpa", "branch", "interests", "skills",
		"resume_ref", "profile_completed", "created_at", "updated_at",
	}).AddRow(
		"student-1", "Asha", "asha@example.edu", 8.5, "Computer Science",
		"{web development}", "{Python,Docker}",
		"resumes/student-1.txt", true, testCreatedAt, testCreatedAt,
	)
}

func postingRow(id string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "title", "company_name", "description", "required_skills",
		"branch_preference", "min_cgpa", "location", "mode", "stipend",
		"duration", "start_date", "end_date", "application_deadline",
		"max_applications", "current_applications", "is_active", "tags",
		"created_at", "updated_at",
	}).AddRow(
		id, "Backend Intern", "Acme", "Build services", "{Python,Docker}",
		"{Computer Science}", 7.0, "Pune", "onsite", "20000 INR",
		"6 months", testDeadline.Add(30*24*time.Hour), testDeadline.Add(210*24*time.Hour), testDeadline,
		100, 10, true, "{backend}",
		testCreatedAt, testCreatedAt,
	)
}

// ==========================
// 1. Student Repository Tests
// ==========================

func TestFindStudent_Success(t *testing.T) {
	db, mock := createMockDB(t)
	s := NewStudentStore(db, logger.NewNoOpLogger())

	mock.ExpectQuery("SELECT id, name, email, cgpa, branch").
		WithArgs("student-1").
		WillReturnRows(studentRow())
	mock.ExpectQuery("SELECT posting_id, applied_at, status FROM applications").
		WithArgs("student-1").
		WillReturnRows(sqlmock.NewRows([]string{"posting_id", "applied_at", "status"}).
			AddRow("posting-1", testCreatedAt, "submitted"))

	student, err := s.FindStudent(context.Background(), "student-1")
	require.NoError(t, err)

	assert.Equal(t, "student-1", student.ID)
	assert.InDelta(t, 8.5, student.CGPA, 1e-9)
	assert.Equal(t, []string{"Python", "Docker"}, student.Skills)
	require.Len(t, student.Applications, 1)
	assert.Equal(t, "posting-1", student.Applications[0].PostingID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindStudent_NotFound(t *testing.T) {
	db, mock := createMockDB(t)
	s := NewStudentStore(db, logger.NewNoOpLogger())

	mock.ExpectQuery("SELECT id, name, email, cgpa, branch").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := s.FindStudent(context.Background(), "missing")
	require.Error(t, err)

	var stdErr *stderrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, stderrors.ErrCodeStudentNotFound, stdErr.Code)
}

func TestUpdateStudentSkillsAndBranch(t *testing.T) {
	db, mock := createMockDB(t)
	s := NewStudentStore(db, logger.NewNoOpLogger())

	mock.ExpectExec("UPDATE students SET skills").
		WithArgs("student-1", sqlmock.AnyArg(), "electronics").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := s.UpdateStudentSkillsAndBranch(context.Background(), "student-1",
		[]string{"Python", "MATLAB"}, "electronics")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStudentSkillsAndBranch_MissingStudent(t *testing.T) {
	db, mock := createMockDB(t)
	s := NewStudentStore(db, logger.NewNoOpLogger())

	mock.ExpectExec("UPDATE students SET skills").
		WithArgs("missing", sqlmock.AnyArg(), "electronics").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.UpdateStudentSkillsAndBranch(context.Background(), "missing",
		[]string{"Python"}, "electronics")
	require.Error(t, err)

	var stdErr *stderrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, stderrors.ErrCodeStudentNotFound, stdErr.Code)
}

// ==========================
// 2. Posting Repository Tests
// ==========================

func TestFindPosting_Success(t *testing.T) {
	db, mock := createMockDB(t)
	s := NewPostingStore(db, logger.NewNoOpLogger())

	mock.ExpectQuery("FROM postings WHERE id").
		WithArgs("posting-1").
		WillReturnRows(postingRow("posting-1"))
	mock.ExpectQuery("SELECT student_id, applied_at, status FROM applications").
		WithArgs("posting-1").
		WillReturnRows(sqlmock.NewRows([]string{"student_id", "applied_at", "status"}).
			AddRow("student-9", testCreatedAt, "submitted"))

	posting, err := s.FindPosting(context.Background(), "posting-1")
	require.NoError(t, err)

	assert.Equal(t, "Backend Intern", posting.Title)
	assert.Equal(t, []string{"Python", "Docker"}, posting.RequiredSkills)
	assert.True(t, posting.HasApplicant("student-9"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindPosting_NotFound(t *testing.T) {
	db, mock := createMockDB(t)
	s := NewPostingStore(db, logger.NewNoOpLogger())

	mock.ExpectQuery("FROM postings WHERE id").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := s.FindPosting(context.Background(), "missing")
	require.Error(t, err)

	var stdErr *stderrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, stderrors.ErrCodePostingNotFound, stdErr.Code)
}

func TestFindActiveUpcoming(t *testing.T) {
	db, mock := createMockDB(t)
	s := NewPostingStore(db, logger.NewNoOpLogger())
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery("FROM postings WHERE is_active = TRUE").
		WithArgs(now).
		WillReturnRows(postingRow("posting-1"))

	pool, err := s.FindActiveUpcoming(context.Background(), now)
	require.NoError(t, err)
	require.Len(t, pool, 1)
	assert.Equal(t, "posting-1", pool[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindActiveUpcoming_EmptyPool(t *testing.T) {
	db, mock := createMockDB(t)
	s := NewPostingStore(db, logger.NewNoOpLogger())
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery("FROM postings WHERE is_active = TRUE").
		WithArgs(now).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	pool, err := s.FindActiveUpcoming(context.Background(), now)
	require.NoError(t, err)
	assert.NotNil(t, pool)
	assert.Empty(t, pool)
}

func TestFindTrending(t *testing.T) {
	db, mock := createMockDB(t)
	s := NewPostingStore(db, logger.NewNoOpLogger())
	since := time.Date(2026, 2, 22, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`(?s)LEFT JOIN applications a ON a\.posting_id = p\.id.+application_deadline > NOW\(\)`).
		WithArgs(since, 5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "company_name", "recent_applications", "created_at"}).
			AddRow("posting-hot", "ML Intern", "Acme", 42, testCreatedAt).
			AddRow("posting-warm", "Web Intern", "Beta", 17, testCreatedAt).
			AddRow("posting-quiet", "QA Intern", "Gamma", 0, testCreatedAt))

	trending, err := s.FindTrending(context.Background(), since, 5)
	require.NoError(t, err)
	require.Len(t, trending, 3)
	assert.Equal(t, "posting-hot", trending[0].PostingID)
	assert.Equal(t, 42, trending[0].RecentApplications)
	assert.Equal(t, 0, trending[2].RecentApplications,
		"postings with no recent applications still rank")
}

// ==========================
// 3. Application Recording Tests
// ==========================

func TestRecordApplication_Success(t *testing.T) {
	db, mock := createMockDB(t)
	s := NewPostingStore(db, logger.NewNoOpLogger())
	appliedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO applications").
		WithArgs("app-1", "student-1", "posting-1", appliedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE postings SET current_applications = current_applications").
		WithArgs("posting-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := s.RecordApplication(context.Background(), "app-1", "student-1", "posting-1", appliedAt)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordApplication_Duplicate(t *testing.T) {
	db, mock := createMockDB(t)
	s := NewPostingStore(db, logger.NewNoOpLogger())
	appliedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO applications").
		WithArgs("app-1", "student-1", "posting-1", appliedAt).
		WillReturnError(&pq.Error{Code: "23505"})
	mock.ExpectRollback()

	err := s.RecordApplication(context.Background(), "app-1", "student-1", "posting-1", appliedAt)
	require.Error(t, err)

	var stdErr *stderrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, stderrors.ErrCodeDuplicateApplication, stdErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordApplication_InsertFailure(t *testing.T) {
	db, mock := createMockDB(t)
	s := NewPostingStore(db, logger.NewNoOpLogger())
	appliedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO applications").
		WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	err := s.RecordApplication(context.Background(), "app-1", "student-1", "posting-1", appliedAt)
	require.Error(t, err)

	var stdErr *stderrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, stderrors.ErrCodeDatabaseInsertFailed, stdErr.Code)
	assert.True(t, stdErr.Retryable)
}
