// internal/store/cache.go
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"internmatch/internal/common/logger"
	"internmatch/internal/models"
)

// Cache is the Redis cache-aside layer for hot student profiles and
// computed recommendation lists. Failures degrade to cache misses; the
// caller always has the database as the source of truth.
type Cache struct {
	client     *redis.Client
	profileTTL time.Duration
	resultTTL  time.Duration
	logger     logger.Logger
}

func NewCache(client *redis.Client, profileTTL, resultTTL time.Duration, log logger.Logger) *Cache {
	return &Cache{
		client:     client,
		profileTTL: profileTTL,
		resultTTL:  resultTTL,
		logger:     log,
	}
}

func profileKey(studentID string) string {
	return "student:profile:" + studentID
}

func recommendationsKey(studentID string, limit int) string {
	return fmt.Sprintf("student:recommendations:%s:%d", studentID, limit)
}

// GetProfile returns the cached profile, or false on miss or decode
// failure.
func (c *Cache) GetProfile(ctx context.Context, studentID string) (*models.StudentProfile, bool) {
	val, err := c.client.Get(ctx, profileKey(studentID)).Result()
	if err != nil {
		return nil, false
	}
	var profile models.StudentProfile
	if err := json.Unmarshal([]byte(val), &profile); err != nil {
		return nil, false
	}
	return &profile, true
}

func (c *Cache) SetProfile(ctx context.Context, profile *models.StudentProfile) {
	data, err := json.Marshal(profile)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, profileKey(profile.ID), data, c.profileTTL).Err(); err != nil {
		c.logger.Warn("Profile cache write failed", map[string]interface{}{
			"studentId": profile.ID,
			"error":     err.Error(),
		})
	}
}

// GetRecommendations returns a cached result list for the exact
// (student, limit) pairing.
func (c *Cache) GetRecommendations(ctx context.Context, studentID string, limit int) ([]models.MatchResult, bool) {
	val, err := c.client.Get(ctx, recommendationsKey(studentID, limit)).Result()
	if err != nil {
		return nil, false
	}
	var results []models.MatchResult
	if err := json.Unmarshal([]byte(val), &results); err != nil {
		return nil, false
	}
	return results, true
}

func (c *Cache) SetRecommendations(ctx context.Context, studentID string, limit int, results []models.MatchResult) {
	data, err := json.Marshal(results)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, recommendationsKey(studentID, limit), data, c.resultTTL).Err(); err != nil {
		c.logger.Warn("Recommendations cache write failed", map[string]interface{}{
			"studentId": studentID,
			"error":     err.Error(),
		})
	}
}

// InvalidateStudent drops the profile and every cached recommendation
// list for the student. Called after profile writes and applications.
func (c *Cache) InvalidateStudent(ctx context.Context, studentID string) error {
	if err := c.client.Del(ctx, profileKey(studentID)).Err(); err != nil {
		return err
	}

	pattern := "student:recommendations:" + studentID + ":*"
	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) > 0 {
		if err := c.client.Del(ctx, keys...).Err(); err != nil {
			return err
		}
	}
	return nil
}
