// internal/recommender/engine.go
package recommender

import (
	"context"
	"math"
	"math/rand"
	"sort"
	"time"

	"internmatch/internal/common/logger"
	"internmatch/internal/common/metrics"
	"internmatch/internal/models"
)

// ==========================
// 1. Engine Wiring
// ==========================

// StudentFinder loads one student profile.
type StudentFinder interface {
	FindStudent(ctx context.Context, studentID string) (*models.StudentProfile, error)
}

// PostingLister loads the candidate posting pool: active postings whose
// deadline and start date are still in the future.
type PostingLister interface {
	FindActiveUpcoming(ctx context.Context, now time.Time) ([]models.InternshipPosting, error)
}

// TrendingFinder ranks postings by recent application volume.
type TrendingFinder interface {
	FindTrending(ctx context.Context, since time.Time, limit int) ([]models.TrendingPosting, error)
}

// RecommendationCache stores computed recommendation lists per student.
type RecommendationCache interface {
	GetRecommendations(ctx context.Context, studentID string, limit int) ([]models.MatchResult, bool)
	SetRecommendations(ctx context.Context, studentID string, limit int, results []models.MatchResult)
}

// Options tunes engine behavior beyond the scoring weights.
type Options struct {
	// MinSkillsScore and MinMatchScore gate which scored pairings are
	// worth surfacing at all.
	MinSkillsScore float64
	MinMatchScore  float64
	// DefaultLimit applies when a caller passes limit <= 0.
	DefaultLimit int
	// TrendingWindow is how far back application volume counts.
	TrendingWindow time.Duration
	// Jitter returns a small random score perturbation. Overridable so
	// tests can pin it; nil selects the production uniform [0, 0.01).
	Jitter func() float64
	// Now is the time source, overridable in tests.
	Now func() time.Time
}

// DefaultOptions returns the production thresholds.
func DefaultOptions() Options {
	return Options{
		MinSkillsScore: 0.30,
		MinMatchScore:  0.45,
		DefaultLimit:   10,
		TrendingWindow: 7 * 24 * time.Hour,
	}
}

// Engine computes ranked internship recommendations for students.
type Engine struct {
	weights  Weights
	opts     Options
	students StudentFinder
	postings PostingLister
	trending TrendingFinder
	cache    RecommendationCache
	logger   logger.Logger
	jitter   func() float64
	now      func() time.Time
}

// NewEngine assembles an engine. students, postings, and trending may be
// nil when only the pure scoring entry points are used; cache may be nil
// to disable caching.
func NewEngine(weights Weights, opts Options, students StudentFinder, postings PostingLister,
	trending TrendingFinder, cache RecommendationCache, log logger.Logger) *Engine {

	e := &Engine{
		weights:  weights,
		opts:     opts,
		students: students,
		postings: postings,
		trending: trending,
		cache:    cache,
		logger:   log,
		jitter:   opts.Jitter,
		now:      opts.Now,
	}
	if e.jitter == nil {
		e.jitter = func() float64 { return rand.Float64() * 0.01 }
	}
	if e.now == nil {
		e.now = time.Now
	}
	if e.opts.DefaultLimit <= 0 {
		e.opts.DefaultLimit = 10
	}
	return e
}

// ==========================
// 2. Pure Recommendation
// ==========================

// Recommend scores the student against every posting in the pool and
// returns the eligible, passing results ordered by descending match
// score, truncated to limit. Postings the student cannot apply to are
// dropped before ranking. Sparse profiles degrade scores, never error.
// The jitter term is re-rolled per pairing and perturbs only the sort
// order, so repeated calls over the same inputs may order near-ties
// differently while reporting identical scores.
func (e *Engine) Recommend(student *models.StudentProfile, pool []models.InternshipPosting, limit int) []models.MatchResult {
	if limit <= 0 {
		limit = e.opts.DefaultLimit
	}
	now := e.now()

	type rankedResult struct {
		result  models.MatchResult
		sortKey float64
	}
	ranked := make([]rankedResult, 0, len(pool))
	for i := range pool {
		posting := &pool[i]

		canApply, reason := CanApplyReason(student, posting, now)
		if !canApply {
			metrics.EligibilityRejections.WithLabelValues(reason).Inc()
			continue
		}

		dims := scoreDimensions(student, posting)
		score := e.weights.weightedScore(dims)
		if dims.Skills < e.opts.MinSkillsScore || score < e.opts.MinMatchScore {
			continue
		}

		ranked = append(ranked, rankedResult{
			result: models.MatchResult{
				PostingID:       posting.ID,
				Title:           posting.Title,
				CompanyName:     posting.CompanyName,
				Location:        posting.Location,
				MatchScore:      score,
				SkillsScore:     dims.Skills,
				MatchPercentage: int(math.Round(score * 100)),
				CanApply:        true,
			},
			sortKey: score + e.jitter(),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].sortKey > ranked[j].sortKey
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	results := make([]models.MatchResult, len(ranked))
	for i, r := range ranked {
		results[i] = r.result
	}
	return results
}

// RecommendPersonalized behaves like Recommend but drops postings the
// student has already applied to before scoring.
func (e *Engine) RecommendPersonalized(student *models.StudentProfile, pool []models.InternshipPosting, limit int) []models.MatchResult {
	filtered := make([]models.InternshipPosting, 0, len(pool))
	for _, posting := range pool {
		if student.HasApplied(posting.ID) {
			continue
		}
		filtered = append(filtered, posting)
	}
	return e.Recommend(student, filtered, limit)
}

// ==========================
// 3. Store-Backed Recommendation
// ==========================

// RecommendForStudent loads the student and candidate pool, serves from
// cache when possible, and computes personalized recommendations
// otherwise. A missing student fails fast; an empty pool yields an empty
// list, not an error.
func (e *Engine) RecommendForStudent(ctx context.Context, studentID string, limit int) ([]models.MatchResult, error) {
	if limit <= 0 {
		limit = e.opts.DefaultLimit
	}
	start := time.Now()

	student, err := e.students.FindStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	if e.cache != nil {
		if cached, ok := e.cache.GetRecommendations(ctx, studentID, limit); ok {
			metrics.RecommendationsServed.WithLabelValues("cache").Inc()
			metrics.RecommendationDuration.WithLabelValues("cache").Observe(time.Since(start).Seconds())
			return cached, nil
		}
	}

	pool, err := e.postings.FindActiveUpcoming(ctx, e.now())
	if err != nil {
		return nil, err
	}

	results := e.RecommendPersonalized(student, pool, limit)

	if e.cache != nil {
		e.cache.SetRecommendations(ctx, studentID, limit, results)
	}
	metrics.RecommendationsServed.WithLabelValues("computed").Inc()
	metrics.RecommendationDuration.WithLabelValues("computed").Observe(time.Since(start).Seconds())

	e.logger.Debug("Recommendations computed", map[string]interface{}{
		"studentId": studentID,
		"poolSize":  len(pool),
		"results":   len(results),
	})
	return results, nil
}

// Trending returns the postings with the most applications over the
// trailing window, most recent first on ties.
func (e *Engine) Trending(ctx context.Context, limit int) ([]models.TrendingPosting, error) {
	if limit <= 0 {
		limit = e.opts.DefaultLimit
	}
	window := e.opts.TrendingWindow
	if window <= 0 {
		window = 7 * 24 * time.Hour
	}
	since := e.now().Add(-window)
	return e.trending.FindTrending(ctx, since, limit)
}
