package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/tavola-app/backend/internal/models"
)

// SuggestionCache stores computed suggestion lists in Redis, keyed by
// (familyID, date, mealType). Entries are invalidated whenever a dish or
// meal assignment of the family is written, so a cached list never
// outlives the history it was computed from. Cache failures are treated
// as misses; the cache is an optimization only.
type SuggestionCache struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewSuggestionCache creates a new SuggestionCache instance.
func NewSuggestionCache(redisClient *redis.Client, ttl time.Duration) *SuggestionCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &SuggestionCache{redis: redisClient, ttl: ttl}
}

func suggestionKey(familyID uuid.UUID, date time.Time, mealType models.MealType) string {
	return fmt.Sprintf("suggestions:%s:%s:%s", familyID, date.Format("2006-01-02"), mealType)
}

// Get returns the cached suggestions for the slot, if present.
func (c *SuggestionCache) Get(ctx context.Context, familyID uuid.UUID, date time.Time, mealType models.MealType) ([]Suggestion, bool) {
	data, err := c.redis.Get(ctx, suggestionKey(familyID, date, mealType)).Bytes()
	if err != nil {
		return nil, false
	}

	var suggestions []Suggestion
	if err := json.Unmarshal(data, &suggestions); err != nil {
		return nil, false
	}
	return suggestions, true
}

// Set caches the suggestions for the slot.
func (c *SuggestionCache) Set(ctx context.Context, familyID uuid.UUID, date time.Time, mealType models.MealType, suggestions []Suggestion) {
	data, err := json.Marshal(suggestions)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, suggestionKey(familyID, date, mealType), data, c.ttl).Err(); err != nil {
		log.Printf("failed to cache suggestions: %v", err)
	}
}

// InvalidateFamily drops every cached suggestion list for the family.
// Called after any write to the family's dishes or meal assignments.
func (c *SuggestionCache) InvalidateFamily(ctx context.Context, familyID uuid.UUID) {
	pattern := fmt.Sprintf("suggestions:%s:*", familyID)
	iter := c.redis.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := c.redis.Del(ctx, iter.Val()).Err(); err != nil {
			log.Printf("failed to invalidate suggestion cache key %s: %v", iter.Val(), err)
		}
	}
	if err := iter.Err(); err != nil {
		log.Printf("failed to scan suggestion cache keys: %v", err)
	}
}
