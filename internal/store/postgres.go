// internal/store/postgres.go
package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	stderrors "internmatch/internal/common/errors"
	"internmatch/internal/common/logger"
	"internmatch/internal/common/metrics"
	"internmatch/internal/models"
)

// ==========================
// 1. Student Repository
// ==========================

// StudentStore reads and writes student profiles in PostgreSQL.
type StudentStore struct {
	db     *sql.DB
	logger logger.Logger
}

func NewStudentStore(db *sql.DB, log logger.Logger) *StudentStore {
	return &StudentStore{db: db, logger: log}
}

// FindStudent loads a profile with its application history. A missing
// row is STUDENT_NOT_FOUND, never an empty profile.
func (s *StudentStore) FindStudent(ctx context.Context, studentID string) (*models.StudentProfile, error) {
	var student models.StudentProfile
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, email, cgpa, branch, interests, skills,
		       COALESCE(resume_ref, ''), profile_completed, created_at, updated_at
		FROM students
		WHERE id = $1`, studentID).Scan(
		&student.ID, &student.Name, &student.Email, &student.CGPA, &student.Branch,
		pq.Array(&student.Interests), pq.Array(&student.Skills),
		&student.ResumeRef, &student.ProfileCompleted, &student.CreatedAt, &student.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, stderrors.NewStudentNotFoundError(studentID)
		}
		return nil, mapQueryError(ctx, "find_student", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT posting_id, applied_at, status
		FROM applications
		WHERE student_id = $1
		ORDER BY applied_at DESC`, studentID)
	if err != nil {
		return nil, mapQueryError(ctx, "find_student_applications", err)
	}
	defer rows.Close()

	for rows.Next() {
		var app models.StudentApplication
		if err := rows.Scan(&app.PostingID, &app.AppliedAt, &app.Status); err != nil {
			return nil, mapQueryError(ctx, "find_student_applications", err)
		}
		student.Applications = append(student.Applications, app)
	}
	if err := rows.Err(); err != nil {
		return nil, mapQueryError(ctx, "find_student_applications", err)
	}
	return &student, nil
}

// UpdateStudentSkillsAndBranch persists analyzer output onto the
// profile. Last write wins under concurrent uploads.
func (s *StudentStore) UpdateStudentSkillsAndBranch(ctx context.Context, studentID string, skills []string, branch string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE students
		SET skills = $2, branch = $3, profile_completed = TRUE, updated_at = NOW()
		WHERE id = $1`, studentID, pq.Array(skills), branch)
	if err != nil {
		return mapQueryError(ctx, "update_student_skills", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return stderrors.NewStudentNotFoundError(studentID)
	}

	s.logger.Info("Student profile updated from resume analysis", map[string]interface{}{
		"studentId": studentID,
		"skills":    len(skills),
		"branch":    branch,
	})
	return nil
}

// ==========================
// 2. Posting Repository
// ==========================

// PostingStore reads postings and records applications in PostgreSQL.
type PostingStore struct {
	db     *sql.DB
	logger logger.Logger
}

func NewPostingStore(db *sql.DB, log logger.Logger) *PostingStore {
	return &PostingStore{db: db, logger: log}
}

const postingColumns = `
	id, title, company_name, description, required_skills, branch_preference,
	min_cgpa, location, mode, COALESCE(stipend, ''), COALESCE(duration, ''),
	start_date, end_date, application_deadline, max_applications,
	current_applications, is_active, tags, created_at, updated_at`

func scanPosting(scanner interface{ Scan(...interface{}) error }) (*models.InternshipPosting, error) {
	var p models.InternshipPosting
	err := scanner.Scan(
		&p.ID, &p.Title, &p.CompanyName, &p.Description,
		pq.Array(&p.RequiredSkills), pq.Array(&p.BranchPreference),
		&p.MinCGPA, &p.Location, &p.Mode, &p.Stipend, &p.Duration,
		&p.StartDate, &p.EndDate, &p.ApplicationDeadline,
		&p.MaxApplications, &p.CurrentApplications, &p.IsActive,
		pq.Array(&p.Tags), &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// FindPosting loads one posting with its received applications, so the
// eligibility gate can run duplicate detection against it.
func (s *PostingStore) FindPosting(ctx context.Context, postingID string) (*models.InternshipPosting, error) {
	posting, err := scanPosting(s.db.QueryRowContext(ctx,
		`SELECT `+postingColumns+` FROM postings WHERE id = $1`, postingID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, stderrors.NewPostingNotFoundError(postingID)
		}
		return nil, mapQueryError(ctx, "find_posting", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT student_id, applied_at, status
		FROM applications
		WHERE posting_id = $1`, postingID)
	if err != nil {
		return nil, mapQueryError(ctx, "find_posting_applications", err)
	}
	defer rows.Close()

	for rows.Next() {
		var app models.PostingApplication
		if err := rows.Scan(&app.StudentID, &app.AppliedAt, &app.Status); err != nil {
			return nil, mapQueryError(ctx, "find_posting_applications", err)
		}
		posting.Applications = append(posting.Applications, app)
	}
	if err := rows.Err(); err != nil {
		return nil, mapQueryError(ctx, "find_posting_applications", err)
	}
	return posting, nil
}

// FindActiveUpcoming returns the recommendation candidate pool: active
// postings whose deadline and start date are still in the future.
// Application histories are not loaded here; the apply path reloads the
// single posting it needs.
func (s *PostingStore) FindActiveUpcoming(ctx context.Context, now time.Time) ([]models.InternshipPosting, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+postingColumns+`
		FROM postings
		WHERE is_active = TRUE
		  AND application_deadline > $1
		  AND start_date > $1
		ORDER BY created_at DESC`, now)
	if err != nil {
		return nil, mapQueryError(ctx, "find_active_upcoming", err)
	}
	defer rows.Close()

	pool := []models.InternshipPosting{}
	for rows.Next() {
		p, err := scanPosting(rows)
		if err != nil {
			return nil, mapQueryError(ctx, "find_active_upcoming", err)
		}
		pool = append(pool, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, mapQueryError(ctx, "find_active_upcoming", err)
	}
	return pool, nil
}

// FindTrending ranks active, non-expired postings by applications
// received since the given time, most recently created first on ties.
// Postings with no recent applications still rank, with a zero count.
func (s *PostingStore) FindTrending(ctx context.Context, since time.Time, limit int) ([]models.TrendingPosting, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.id, p.title, p.company_name, COUNT(a.id) AS recent_applications, p.created_at
		FROM postings p
		LEFT JOIN applications a ON a.posting_id = p.id AND a.applied_at >= $1
		WHERE p.is_active = TRUE
		  AND p.application_deadline > NOW()
		GROUP BY p.id, p.title, p.company_name, p.created_at
		ORDER BY recent_applications DESC, p.created_at DESC
		LIMIT $2`, since, limit)
	if err != nil {
		return nil, mapQueryError(ctx, "find_trending", err)
	}
	defer rows.Close()

	trending := []models.TrendingPosting{}
	for rows.Next() {
		var tp models.TrendingPosting
		if err := rows.Scan(&tp.PostingID, &tp.Title, &tp.CompanyName, &tp.RecentApplications, &tp.CreatedAt); err != nil {
			return nil, mapQueryError(ctx, "find_trending", err)
		}
		trending = append(trending, tp)
	}
	if err := rows.Err(); err != nil {
		return nil, mapQueryError(ctx, "find_trending", err)
	}
	return trending, nil
}

// RecordApplication inserts the application row and increments the
// posting counter in one transaction. A unique-constraint hit on
// (student_id, posting_id) reports DUPLICATE_APPLICATION.
func (s *PostingStore) RecordApplication(ctx context.Context, applicationID, studentID, postingID string, appliedAt time.Time) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return stderrors.NewDatabaseConnectionFailedError(err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO applications (id, student_id, posting_id, status, applied_at)
		VALUES ($1, $2, $3, 'submitted', $4)`,
		applicationID, studentID, postingID, appliedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			metrics.ApplicationsRecorded.WithLabelValues("duplicate").Inc()
			return stderrors.NewDuplicateApplicationError(studentID, postingID)
		}
		metrics.ApplicationsRecorded.WithLabelValues("error").Inc()
		return stderrors.NewDatabaseInsertFailedError(err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE postings
		SET current_applications = current_applications + 1, updated_at = NOW()
		WHERE id = $1`, postingID)
	if err != nil {
		metrics.ApplicationsRecorded.WithLabelValues("error").Inc()
		return stderrors.NewDatabaseInsertFailedError(err)
	}

	if err := tx.Commit(); err != nil {
		metrics.ApplicationsRecorded.WithLabelValues("error").Inc()
		return stderrors.NewDatabaseInsertFailedError(err)
	}

	metrics.ApplicationsRecorded.WithLabelValues("recorded").Inc()
	s.logger.Info("Application recorded", map[string]interface{}{
		"applicationId": applicationID,
		"studentId":     studentID,
		"postingId":     postingID,
	})
	return nil
}

// ==========================
// 3. Error Mapping
// ==========================

func mapQueryError(ctx context.Context, queryType string, err error) *stderrors.StandardError {
	if ctx.Err() == context.DeadlineExceeded {
		return &stderrors.StandardError{
			Code:      stderrors.ErrCodeQueryTimeout,
			Message:   "Database query timed out",
			Details:   queryType,
			Retryable: true,
			Timestamp: time.Now().UTC(),
		}
	}
	return stderrors.NewQueryExecutionFailedError(queryType, err)
}
