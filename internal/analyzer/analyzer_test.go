// internal/analyzer/analyzer_test.go
package analyzer

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"internmatch/internal/common/errors"
	"internmatch/internal/common/logger"
)

// ==========================
// Test Helpers
// ==========================

func createTestAnalyzer() *Analyzer {
	return New(DefaultVocabulary(), 20, logger.NewNoOpLogger())
}

func sorted(skills []string) []string {
	out := append([]string(nil), skills...)
	sort.Strings(out)
	return out
}

// ==========================
// 1. Skill Extraction Tests
// ==========================

func TestAnalyze_DictionarySkills(t *testing.T) {
	a := createTestAnalyzer()

	analysis, err := a.Analyze("Built services in golang and python with postgresql")
	require.NoError(t, err)

	assert.Equal(t, []string{"Golang", "PostgreSQL", "Python"}, sorted(analysis.Skills))
}

func TestAnalyze_SkillNormalizationDeduplicates(t *testing.T) {
	a := createTestAnalyzer()

	analysis, err := a.Analyze("Experience with reactjs and React.js projects")
	require.NoError(t, err)

	reactCount := 0
	for _, s := range analysis.Skills {
		if s == "React" {
			reactCount++
		}
	}
	assert.Equal(t, 1, reactCount, "spelling variants should collapse to one canonical name")
}

func TestAnalyze_CuePhraseSkills(t *testing.T) {
	a := createTestAnalyzer()

	analysis, err := a.Analyze("Skilled in machine vision; data wrangling")
	require.NoError(t, err)

	assert.Contains(t, analysis.Skills, "Machine vision")
	assert.Contains(t, analysis.Skills, "Data wrangling")
}

func TestAnalyze_CuePhraseTokenLengthBounds(t *testing.T) {
	a := createTestAnalyzer()

	longToken := strings.Repeat("x", 60)
	analysis, err := a.Analyze("Familiar with q; " + longToken)
	require.NoError(t, err)

	for _, s := range analysis.Skills {
		assert.NotEqual(t, "Q", s, "single-character tokens should be discarded")
		assert.Less(t, len(s), 50, "oversized tokens should be discarded")
	}
}

// ==========================
// 2. Education Tests
// ==========================

func TestAnalyze_Education(t *testing.T) {
	a := createTestAnalyzer()

	analysis, err := a.Analyze("Bachelor of Technology, B.Tech in Computer Science, 2019-2023 at Example University")
	require.NoError(t, err)

	assert.Equal(t, "Bachelor", analysis.Education.Degree)
	assert.Equal(t, "computer science", analysis.Education.Field, "last field keyword hit should win")
	assert.Equal(t, "2019-2023", analysis.Education.Year)
}

func TestAnalyze_EducationAbbreviatedDegree(t *testing.T) {
	a := createTestAnalyzer()

	analysis, err := a.Analyze("M.Tech graduate from a state institute")
	require.NoError(t, err)

	assert.Equal(t, "M.Tech", analysis.Education.Degree)
	assert.Equal(t, "institute", analysis.Education.Field)
}

// ==========================
// 3. Branch Tests
// ==========================

func TestAnalyze_BranchDetection(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{
			name:     "electronics keyword",
			text:     "Electrical Engineering student",
			expected: "electronics",
		},
		{
			name:     "mba maps to business",
			text:     "Pursuing an MBA at a top b-school",
			expected: "business",
		},
		{
			name:     "short synonym matches inside larger words",
			text:     "Visited labs during orientation",
			expected: "information technology",
		},
		{
			name:     "no signal falls back to default",
			text:     "hello world",
			expected: "computer science",
		},
	}

	a := createTestAnalyzer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis, err := a.Analyze(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, analysis.Branch)
		})
	}
}

// ==========================
// 4. Experience Tests
// ==========================

func TestAnalyze_ExperienceYearsLastMatchWins(t *testing.T) {
	a := createTestAnalyzer()

	analysis, err := a.Analyze("3 years of experience. Later gained 5 yrs experience overall.")
	require.NoError(t, err)

	assert.Equal(t, 5, analysis.Experience.Years)
}

func TestAnalyze_ExperiencePositions(t *testing.T) {
	a := createTestAnalyzer()

	analysis, err := a.Analyze("Worked as: Senior Backend Trainee\nShipped features as a developer")
	require.NoError(t, err)

	assert.Contains(t, analysis.Experience.Positions, "Senior Backend Trainee")
	assert.Contains(t, analysis.Experience.Positions, "Trainee")
	assert.Contains(t, analysis.Experience.Positions, "developer")
}

// ==========================
// 5. Confidence Tests
// ==========================

func TestAnalyze_ConfidenceEmptyText(t *testing.T) {
	a := createTestAnalyzer()

	analysis, err := a.Analyze("")
	require.NoError(t, err)

	assert.Equal(t, 0, analysis.Confidence)
	assert.Empty(t, analysis.Skills)
}

func TestAnalyze_ConfidenceRichResume(t *testing.T) {
	a := createTestAnalyzer()

	text := "Bachelor in Computer Science. 4 years of experience. Worked as: Platform Engineer. " +
		"Technologies: python, golang, docker, kubernetes, postgresql, redis. " +
		strings.Repeat("Designed and operated large ingestion pipelines. ", 25)

	analysis, err := a.Analyze(text)
	require.NoError(t, err)

	assert.Greater(t, len(analysis.Skills), 5)
	assert.Equal(t, 100, analysis.Confidence)
}

func TestAnalyze_InvalidUTF8(t *testing.T) {
	a := createTestAnalyzer()

	_, err := a.Analyze(string([]byte{0xff, 0xfe, 0xfd}))
	require.Error(t, err)

	var stdErr *errors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, errors.ErrCodeAnalysisFailed, stdErr.Code)
}

// ==========================
// 6. Multi-Document Tests
// ==========================

func TestAnalyzeDocuments_CombinesResults(t *testing.T) {
	a := createTestAnalyzer()

	combined, err := a.AnalyzeDocuments([]string{
		"Bachelor in Computer Science. 2 years of experience with python.",
		"Shipped systems in golang and python. 6 years of experience.",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Golang", "Python"}, sorted(combined.Skills))
	assert.Equal(t, "Bachelor", combined.Education.Degree)
	assert.Equal(t, 6, combined.Experience.Years, "maximum across documents")
}

func TestAnalyzeDocuments_SkipsUnreadable(t *testing.T) {
	a := createTestAnalyzer()

	combined, err := a.AnalyzeDocuments([]string{
		"Experienced with python",
		string([]byte{0xff, 0xfe}),
	})
	require.NoError(t, err)

	assert.Contains(t, combined.Skills, "Python")
}

func TestAnalyzeDocuments_Empty(t *testing.T) {
	a := createTestAnalyzer()

	_, err := a.AnalyzeDocuments(nil)
	require.Error(t, err)
}

func TestAnalyzeDocuments_AllUnreadable(t *testing.T) {
	a := createTestAnalyzer()

	_, err := a.AnalyzeDocuments([]string{string([]byte{0xff})})
	require.Error(t, err)

	var stdErr *errors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, errors.ErrCodeAnalysisFailed, stdErr.Code)
}

// ==========================
// 7. Benchmarks
// ==========================

func BenchmarkAnalyze(b *testing.B) {
	a := createTestAnalyzer()
	text := "Bachelor in Computer Science. 4 years of experience. " +
		"Technologies: python, golang, docker, kubernetes, postgresql, redis. " +
		strings.Repeat("Designed and operated large ingestion pipelines. ", 25)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = a.Analyze(text)
	}
}
