// internal/profile/service.go
package profile

import (
	"context"

	"internmatch/internal/analyzer"
	"internmatch/internal/common/logger"
	"internmatch/internal/common/metrics"
	"internmatch/internal/models"
)

// SkillsWriter persists analyzer output onto a student profile.
type SkillsWriter interface {
	UpdateStudentSkillsAndBranch(ctx context.Context, studentID string, skills []string, branch string) error
}

// CacheInvalidator drops cached state for a student after a profile write.
type CacheInvalidator interface {
	InvalidateStudent(ctx context.Context, studentID string) error
}

// Service runs the resume-upload workflow: extract text, analyze, and
// write the result back to the profile.
type Service struct {
	analyzer   *analyzer.Analyzer
	extractors *analyzer.ExtractorRegistry
	students   SkillsWriter
	cache      CacheInvalidator
	logger     logger.Logger
}

// NewService wires the workflow. cache may be nil when caching is
// disabled.
func NewService(a *analyzer.Analyzer, extractors *analyzer.ExtractorRegistry,
	students SkillsWriter, cache CacheInvalidator, log logger.Logger) *Service {
	return &Service{
		analyzer:   a,
		extractors: extractors,
		students:   students,
		cache:      cache,
		logger:     log,
	}
}

// AnalyzeResume analyzes the uploaded documents and persists the
// extracted skills and branch. Documents that cannot be converted to
// text are skipped; the call fails only when nothing is analyzable or
// the profile write fails. Concurrent uploads for the same student are
// not serialized: the last completed write wins.
func (s *Service) AnalyzeResume(ctx context.Context, studentID string, docs []analyzer.Document) (*models.ResumeAnalysis, error) {
	texts := make([]string, 0, len(docs))
	for _, doc := range docs {
		text, err := s.extractors.Extract(doc)
		if err != nil {
			s.logger.Warn("Skipping unextractable document", map[string]interface{}{
				"studentId":   studentID,
				"document":    doc.Name,
				"contentType": doc.ContentType,
				"error":       err.Error(),
			})
			continue
		}
		texts = append(texts, text)
	}

	analysis, err := s.analyzer.AnalyzeDocuments(texts)
	if err != nil {
		metrics.ResumesAnalyzed.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.ResumesAnalyzed.WithLabelValues("ok").Inc()
	metrics.AnalysisConfidence.Observe(float64(analysis.Confidence))

	if err := s.students.UpdateStudentSkillsAndBranch(ctx, studentID, analysis.Skills, analysis.Branch); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.InvalidateStudent(ctx, studentID); err != nil {
			s.logger.Warn("Cache invalidation failed after profile update", map[string]interface{}{
				"studentId": studentID,
				"error":     err.Error(),
			})
		}
	}

	s.logger.Info("Resume analyzed", map[string]interface{}{
		"studentId":  studentID,
		"documents":  len(docs),
		"skills":     len(analysis.Skills),
		"branch":     analysis.Branch,
		"confidence": analysis.Confidence,
	})
	return analysis, nil
}
