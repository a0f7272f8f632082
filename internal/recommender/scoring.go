// internal/recommender/scoring.go
package recommender

import (
	"strings"

	"internmatch/internal/common/config"
	"internmatch/internal/models"
)

// ==========================
// 1. Scoring Weights
// ==========================

// Weights holds the per-dimension contribution to the overall match score.
type Weights struct {
	Skills    float64
	CGPA      float64
	Branch    float64
	Interests float64
	Location  float64
}

// DefaultWeights returns the production weighting.
func DefaultWeights() Weights {
	return Weights{
		Skills:    0.50,
		CGPA:      0.25,
		Branch:    0.10,
		Interests: 0.10,
		Location:  0.05,
	}
}

// WeightsFromConfig maps engine configuration onto scoring weights.
func WeightsFromConfig(cfg config.EngineConfig) Weights {
	return Weights{
		Skills:    cfg.SkillsWeight,
		CGPA:      cfg.CGPAWeight,
		Branch:    cfg.BranchWeight,
		Interests: cfg.InterestsWeight,
		Location:  cfg.LocationWeight,
	}
}

// ==========================
// 2. Dimension Scores
// ==========================

// scoreSkills rates skill coverage in [0, 1]. Exact matches count full,
// partial (substring) matches count half. A posting without skill
// requirements scores a neutral 0.3; a student without skills scores 0.
func scoreSkills(studentSkills, requiredSkills []string) (score float64, exact, partial int) {
	if len(requiredSkills) == 0 {
		return 0.3, 0, 0
	}
	if len(studentSkills) == 0 {
		return 0, 0, 0
	}

	lowered := make([]string, len(studentSkills))
	for i, s := range studentSkills {
		lowered[i] = strings.ToLower(strings.TrimSpace(s))
	}

	for _, required := range requiredSkills {
		req := strings.ToLower(strings.TrimSpace(required))

		matched := false
		for _, have := range lowered {
			if have == req {
				exact++
				matched = true
				break
			}
		}
		if matched {
			continue
		}

		for _, have := range lowered {
			if partialSkillMatch(have, req) {
				partial++
				break
			}
		}
	}

	total := float64(len(requiredSkills))
	score = float64(exact)/total + 0.5*float64(partial)/total
	if score > 1 {
		score = 1
	}
	return score, exact, partial
}

// partialSkillMatch reports a substring relation in either direction.
// Both sides must be at least 4 characters so short names like "go" or
// "c" cannot blanket-match longer skills.
func partialSkillMatch(a, b string) bool {
	if len(a) < 4 || len(b) < 4 {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// scoreCGPA rates academic standing. Postings without a minimum score a
// full 1. Meeting the minimum scores 1 plus a bonus of 0.1 per point of
// excess, capped at 1.5, so strong students rank above bare passes.
func scoreCGPA(studentCGPA, minCGPA float64) float64 {
	if minCGPA <= 0 {
		return 1
	}
	if studentCGPA < minCGPA {
		return 0
	}
	score := 1 + 0.1*(studentCGPA-minCGPA)
	if score > 1.5 {
		score = 1.5
	}
	return score
}

// scoreBranch rates branch alignment against the posting's preference
// list. No preference means every branch fits.
func scoreBranch(studentBranch string, branchPreference []string) float64 {
	if len(branchPreference) == 0 {
		return 1
	}
	branch := strings.ToLower(strings.TrimSpace(studentBranch))

	for _, pref := range branchPreference {
		p := strings.ToLower(strings.TrimSpace(pref))
		if branch == p {
			return 1
		}
	}
	if branch == "" {
		return 0
	}
	for _, pref := range branchPreference {
		p := strings.ToLower(strings.TrimSpace(pref))
		if strings.Contains(branch, p) || strings.Contains(p, branch) {
			return 0.7
		}
	}
	return 0
}

// scoreInterests rates how strongly the student's declared interests show
// up in the posting text. Each interest phrase contributes a unit in
// [0, 1]: a full phrase hit counts 1, otherwise word-level overlap earns
// a dampened partial credit.
func scoreInterests(interests []string, posting *models.InternshipPosting) float64 {
	if len(interests) == 0 {
		return 0
	}

	blob := strings.ToLower(posting.Title + " " + posting.Description + " " +
		strings.Join(posting.RequiredSkills, " "))
	blobWords := strings.Fields(blob)

	var sum float64
	for _, interest := range interests {
		phrase := strings.ToLower(strings.TrimSpace(interest))
		if phrase == "" {
			continue
		}
		if strings.Contains(blob, phrase) {
			sum++
			continue
		}

		// Only words of 3+ characters can match, but the credit is
		// diluted over every word of the phrase.
		phraseWords := strings.Fields(phrase)
		matched := 0
		for _, pw := range phraseWords {
			if len(pw) <= 2 {
				continue
			}
			for _, bw := range blobWords {
				if len(bw) <= 2 {
					continue
				}
				if strings.Contains(bw, pw) || strings.Contains(pw, bw) {
					matched++
					break
				}
			}
		}
		if matched > 0 {
			sum += float64(matched) / float64(len(phraseWords)) * 0.3
		}
	}

	score := sum / float64(len(interests))
	if score > 1 {
		score = 1
	}
	return score
}

// scoreLocation is a fixed neutral value until student location
// preferences are collected.
func scoreLocation() float64 {
	return 0.5
}

// ==========================
// 3. Overall Score
// ==========================

// dimensionScores bundles the per-dimension results for one pairing.
type dimensionScores struct {
	Skills    float64
	CGPA      float64
	Branch    float64
	Interests float64
	Location  float64
}

func scoreDimensions(student *models.StudentProfile, posting *models.InternshipPosting) dimensionScores {
	skills, _, _ := scoreSkills(student.Skills, posting.RequiredSkills)
	return dimensionScores{
		Skills:    skills,
		CGPA:      scoreCGPA(student.CGPA, posting.MinCGPA),
		Branch:    scoreBranch(student.Branch, posting.BranchPreference),
		Interests: scoreInterests(student.Interests, posting),
		Location:  scoreLocation(),
	}
}

// weightedScore folds dimension scores into a single value. The CGPA
// bonus can push individual dimensions above 1, so the sum is not
// clamped here.
func (w Weights) weightedScore(d dimensionScores) float64 {
	return d.Skills*w.Skills +
		d.CGPA*w.CGPA +
		d.Branch*w.Branch +
		d.Interests*w.Interests +
		d.Location*w.Location
}
