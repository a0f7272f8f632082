// internal/analyzer/analyzer.go
package analyzer

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"internmatch/internal/common/errors"
	"internmatch/internal/common/logger"
	"internmatch/internal/models"
)

// ==========================
// 1. Analyzer Setup
// ==========================

// Analyzer extracts structured skill, education, and experience signals
// from raw resume text. Stateless after construction; safe for concurrent use.
type Analyzer struct {
	vocab       *Vocabulary
	logger      logger.Logger
	maxKeywords int

	skillPatterns []skillPattern
	cuePatterns   []*regexp.Regexp

	degreePatterns   []*regexp.Regexp
	yearRangePattern *regexp.Regexp

	experiencePatterns []*regexp.Regexp
	positionCuePattern *regexp.Regexp
	positionKeywords   *regexp.Regexp

	phraseCleaner *regexp.Regexp
}

type skillPattern struct {
	term string
	re   *regexp.Regexp
}

// New builds an Analyzer over the given vocabulary. maxKeywords bounds the
// ranked keyword list (0 falls back to 20).
func New(vocab *Vocabulary, maxKeywords int, log logger.Logger) *Analyzer {
	if maxKeywords <= 0 {
		maxKeywords = 20
	}

	a := &Analyzer{
		vocab:       vocab,
		logger:      log,
		maxKeywords: maxKeywords,

		cuePatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(?:proficient in|experienced with|skilled in|expertise in|knowledge of)\s+([^.,\n]+)`),
			regexp.MustCompile(`(?i)(?:technologies?|tech stack|tools?|languages?|frameworks?):\s*([^.,\n]+)`),
			regexp.MustCompile(`(?i)(?:programming languages?|coding languages?):\s*([^.,\n]+)`),
			regexp.MustCompile(`(?i)(?:familiar with|worked with|used)\s+([^.,\n]+)`),
		},

		degreePatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(bachelor|master|phd|diploma|certificate)`),
			regexp.MustCompile(`(?i)(b\.?s\.?|m\.?s\.?|ph\.?d\.?|b\.?tech|m\.?tech)`),
		},
		yearRangePattern: regexp.MustCompile(`(\d{4})\s*[-–]\s*(\d{4}|\d{2})`),

		experiencePatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(\d+)\s*(?:years?|yrs?)\s*(?:of\s*)?(?:experience|exp)`),
			regexp.MustCompile(`(?i)(?:experience|exp):\s*(\d+)\s*(?:years?|yrs?)`),
		},
		positionCuePattern: regexp.MustCompile(`(?i)(?:worked as|position|role):\s*([^.,\n]+)`),
		positionKeywords:   regexp.MustCompile(`(?i)(intern|internship|trainee|developer|engineer|analyst)`),

		phraseCleaner: regexp.MustCompile(`[^a-zA-Z0-9\s+#.]`),
	}

	a.skillPatterns = make([]skillPattern, 0, len(vocab.Skills))
	for _, term := range vocab.Skills {
		re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(term) + `\b`)
		a.skillPatterns = append(a.skillPatterns, skillPattern{term: term, re: re})
	}
	return a
}

// ==========================
// 2. Single-Document Analysis
// ==========================

// Analyze runs the full extraction pipeline over one document's text.
// Thin or empty input yields a low-confidence result, not an error; only
// structurally unusable input (invalid UTF-8) fails.
func (a *Analyzer) Analyze(text string) (*models.ResumeAnalysis, error) {
	if !utf8.ValidString(text) {
		return nil, errors.NewAnalysisFailedError("document text is not valid UTF-8")
	}

	lower := strings.ToLower(text)

	analysis := &models.ResumeAnalysis{
		Skills:     a.extractSkills(text, lower),
		Education:  a.extractEducation(text, lower),
		Branch:     a.extractBranch(lower),
		Experience: a.extractExperience(text),
		Keywords:   a.extractKeywords(lower),
	}
	analysis.Confidence = calculateConfidence(text, analysis)

	if a.logger != nil {
		a.logger.Debug("Resume analysis completed", map[string]interface{}{
			"textLength": len(text),
			"skills":     len(analysis.Skills),
			"branch":     analysis.Branch,
			"confidence": analysis.Confidence,
		})
	}
	return analysis, nil
}

// AnalyzeDocuments analyzes each document and merges the results:
// skills are unioned, education comes from the first document that yielded
// a degree, experience years take the maximum, positions are concatenated,
// and confidence is averaged over all documents including failed ones.
// Individual failures are skipped; only an empty input set is an error.
func (a *Analyzer) AnalyzeDocuments(texts []string) (*models.ResumeAnalysis, error) {
	if len(texts) == 0 {
		return nil, errors.NewAnalysisFailedError("no documents provided")
	}

	var analyses []*models.ResumeAnalysis
	for i, text := range texts {
		analysis, err := a.Analyze(text)
		if err != nil {
			if a.logger != nil {
				a.logger.Warn("Skipping unreadable document", map[string]interface{}{
					"documentIndex": i,
					"error":         err.Error(),
				})
			}
			continue
		}
		analyses = append(analyses, analysis)
	}
	if len(analyses) == 0 {
		return nil, errors.NewAnalysisFailedError(
			fmt.Sprintf("none of the %d documents could be analyzed", len(texts)))
	}

	combined := &models.ResumeAnalysis{}

	skillSet := make(map[string]struct{})
	confidenceSum := 0
	for _, analysis := range analyses {
		for _, skill := range analysis.Skills {
			if _, seen := skillSet[skill]; !seen {
				skillSet[skill] = struct{}{}
				combined.Skills = append(combined.Skills, skill)
			}
		}
		if combined.Education.Degree == "" && analysis.Education.Degree != "" {
			combined.Education = analysis.Education
		}
		if analysis.Experience.Years > combined.Experience.Years {
			combined.Experience.Years = analysis.Experience.Years
		}
		combined.Experience.Positions = append(combined.Experience.Positions, analysis.Experience.Positions...)
		combined.Keywords = append(combined.Keywords, analysis.Keywords...)
		confidenceSum += analysis.Confidence
	}

	combined.Branch = analyses[0].Branch
	combined.Confidence = int(float64(confidenceSum)/float64(len(texts)) + 0.5)
	return combined, nil
}

// ==========================
// 3. Skill Extraction
// ==========================

// extractSkills combines the dictionary pass over the lowercased text with
// the cue-phrase pass over the original text. Results are canonical names,
// deduplicated, in first-encounter order.
func (a *Analyzer) extractSkills(text, lower string) []string {
	seen := make(map[string]struct{})
	var skills []string
	add := func(name string) {
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		skills = append(skills, name)
	}

	for _, sp := range a.skillPatterns {
		if sp.re.MatchString(lower) {
			add(a.normalizeSkill(sp.term))
		}
	}

	for _, cue := range a.cuePatterns {
		for _, match := range cue.FindAllStringSubmatch(text, -1) {
			for _, token := range splitSkillPhrase(match[1]) {
				cleaned := strings.TrimSpace(a.phraseCleaner.ReplaceAllString(token, ""))
				if len(cleaned) > 1 && len(cleaned) < 50 {
					add(a.normalizeSkill(cleaned))
				}
			}
		}
	}
	return skills
}

func splitSkillPhrase(phrase string) []string {
	return strings.FieldsFunc(phrase, func(r rune) bool {
		return r == ',' || r == ';' || r == '|' || r == '/'
	})
}

// normalizeSkill maps a raw mention to its canonical name, falling back to
// uppercasing the first letter.
func (a *Analyzer) normalizeSkill(raw string) string {
	key := strings.ToLower(strings.TrimSpace(raw))
	if canonical, ok := a.vocab.Normalization[key]; ok {
		return canonical
	}
	if key == "" {
		return ""
	}
	return strings.ToUpper(key[:1]) + key[1:]
}

// ==========================
// 4. Education / Branch / Experience
// ==========================

func (a *Analyzer) extractEducation(text, lower string) models.Education {
	var edu models.Education

	for _, re := range a.degreePatterns {
		if edu.Degree != "" {
			break
		}
		if match := re.FindString(text); match != "" {
			edu.Degree = match
		}
	}

	// Last keyword hit wins, so more specific field names listed later
	// in the vocabulary override generic ones.
	for _, keyword := range a.vocab.EducationKeywords {
		if strings.Contains(lower, keyword) {
			edu.Field = keyword
		}
	}

	if match := a.yearRangePattern.FindString(text); match != "" {
		edu.Year = match
	}
	return edu
}

// extractBranch picks the first branch whose any synonym occurs as a
// substring. Short synonyms like "it" and "me" intentionally match inside
// larger words, mirroring how the upstream resume data was labeled.
func (a *Analyzer) extractBranch(lower string) string {
	for _, bs := range a.vocab.BranchSynonyms {
		for _, keyword := range bs.Keywords {
			if strings.Contains(lower, keyword) {
				return bs.Branch
			}
		}
	}
	return a.vocab.DefaultBranch
}

func (a *Analyzer) extractExperience(text string) models.Experience {
	var exp models.Experience

	for _, re := range a.experiencePatterns {
		matches := re.FindAllStringSubmatch(text, -1)
		if len(matches) == 0 {
			continue
		}
		var years int
		if _, err := fmt.Sscanf(matches[len(matches)-1][1], "%d", &years); err == nil {
			exp.Years = years
		}
	}

	for _, match := range a.positionCuePattern.FindAllStringSubmatch(text, -1) {
		exp.Positions = append(exp.Positions, strings.TrimSpace(match[1]))
	}
	exp.Positions = append(exp.Positions, a.positionKeywords.FindAllString(text, -1)...)

	return exp
}

// ==========================
// 5. Confidence Scoring
// ==========================

// calculateConfidence scores extraction quality on a 0-100 scale from
// text volume and the richness of each extracted section.
func calculateConfidence(text string, analysis *models.ResumeAnalysis) int {
	confidence := 0

	switch {
	case len(text) > 1000:
		confidence += 20
	case len(text) > 500:
		confidence += 10
	}

	switch {
	case len(analysis.Skills) > 5:
		confidence += 30
	case len(analysis.Skills) > 2:
		confidence += 20
	case len(analysis.Skills) > 0:
		confidence += 10
	}

	switch {
	case analysis.Education.Degree != "" && analysis.Education.Field != "":
		confidence += 25
	case analysis.Education.Degree != "" || analysis.Education.Field != "":
		confidence += 15
	}

	if analysis.Experience.Years > 0 {
		confidence += 15
	}
	if len(analysis.Experience.Positions) > 0 {
		confidence += 10
	}

	if confidence > 100 {
		confidence = 100
	}
	return confidence
}
