package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/tavola-app/backend/internal/models"
	"gorm.io/gorm"
)

// Scoring weights. A candidate starts at baseScore, penalties subtract,
// the frequency bonus adds up to frequencyBonusMax. Candidates at or
// below zero are dropped.
const (
	baseScore         = 100.0
	recentPenalty     = 80.0
	weeklyPenalty     = 50.0
	frequencyBonusMax = 20.0

	recentWindowDays = 7
	weeklyCap        = 2
	maxPerCategory   = 3
)

// Suggestion reasons shown to the user. Only the first applicable penalty
// sets the reason; it does not fully explain the numeric score.
const (
	ReasonRecentlyConsumed = "Consumed recently"
	ReasonWeeklyRepeat     = "Already eaten 2+ times this week"
	ReasonGoodChoice       = "Good choice"
)

// SuggestedDish is the dish subset echoed back in a suggestion.
type SuggestedDish struct {
	ID       uuid.UUID       `json:"id"`
	Name     string          `json:"name"`
	Category models.Category `json:"category"`
}

// Suggestion is an advisory, never-persisted recommendation.
type Suggestion struct {
	Dish   SuggestedDish `json:"dish"`
	Score  float64       `json:"score"`
	Reason string        `json:"reason"`
}

// SuggestionService ranks a family's dishes for a given meal slot based on
// the family's meal history.
type SuggestionService struct {
	db    *gorm.DB
	cache *SuggestionCache
}

// NewSuggestionService creates a new SuggestionService instance. cache may
// be nil, in which case every call recomputes from the database.
func NewSuggestionService(db *gorm.DB, cache *SuggestionCache) *SuggestionService {
	return &SuggestionService{db: db, cache: cache}
}

// GetSuggestions returns ranked dish suggestions for one (date, mealType)
// slot, grouped by category in the slot's fixed category order with at most
// three entries per category. A family with no dishes gets an empty list.
func (s *SuggestionService) GetSuggestions(ctx context.Context, familyID uuid.UUID, date time.Time, mealType models.MealType) ([]Suggestion, error) {
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, familyID, date, mealType); ok {
			return cached, nil
		}
	}

	var dishes []models.Dish
	if err := s.db.WithContext(ctx).Where("family_id = ?", familyID).Find(&dishes).Error; err != nil {
		return nil, err
	}

	// A family's history is small (tens to low hundreds of rows), so one
	// unbounded fetch feeds all three statistical windows.
	var history []models.MealAssignment
	if err := s.db.WithContext(ctx).Where("family_id = ?", familyID).Find(&history).Error; err != nil {
		return nil, err
	}

	suggestions := rankDishes(dishes, history, date, mealType)

	if s.cache != nil {
		s.cache.Set(ctx, familyID, date, mealType, suggestions)
	}
	return suggestions, nil
}

// dishStats holds the per-call usage statistics gathered from history.
type dishStats struct {
	usage       map[uuid.UUID]int       // all-time assignment count per dish
	lastUsed    map[uuid.UUID]time.Time // most recent assignment date per dish
	recent      map[uuid.UUID]bool      // assigned within [date-7d, date]
	weeklyCount map[uuid.UUID]int       // assignments within the Monday-start week of date
	maxUsage    int                     // highest all-time count across the family
}

func gatherStats(history []models.MealAssignment, date time.Time) dishStats {
	day := dateOnly(date)
	recentFrom := day.AddDate(0, 0, -recentWindowDays)
	weekFrom := startOfWeek(day)
	weekTo := weekFrom.AddDate(0, 0, 6)

	st := dishStats{
		usage:       make(map[uuid.UUID]int),
		lastUsed:    make(map[uuid.UUID]time.Time),
		recent:      make(map[uuid.UUID]bool),
		weeklyCount: make(map[uuid.UUID]int),
	}

	for _, m := range history {
		d := dateOnly(m.Date)

		st.usage[m.DishID]++
		if st.usage[m.DishID] > st.maxUsage {
			st.maxUsage = st.usage[m.DishID]
		}
		if last, ok := st.lastUsed[m.DishID]; !ok || d.After(last) {
			st.lastUsed[m.DishID] = d
		}
		if !d.Before(recentFrom) && !d.After(day) {
			st.recent[m.DishID] = true
		}
		if !d.Before(weekFrom) && !d.After(weekTo) {
			st.weeklyCount[m.DishID]++
		}
	}
	return st
}

// rankDishes scores every eligible dish and assembles the final list. It is
// pure over its inputs so the scoring rules can be tested without a database.
func rankDishes(dishes []models.Dish, history []models.MealAssignment, date time.Time, mealType models.MealType) []Suggestion {
	eligible := models.EligibleCategories[mealType]
	st := gatherStats(history, date)

	candidates := make([]Suggestion, 0, len(dishes))
	for _, dish := range dishes {
		if !categoryEligible(dish.Category, eligible) {
			continue
		}

		score := baseScore
		reason := ""

		// Anti-repetition is checked first so its reason wins.
		if st.recent[dish.ID] {
			score -= recentPenalty
			reason = ReasonRecentlyConsumed
		}
		if st.weeklyCount[dish.ID] >= weeklyCap {
			score -= weeklyPenalty
			if reason == "" {
				reason = ReasonWeeklyRepeat
			}
		}
		if st.maxUsage > 0 {
			score += float64(st.maxUsage-st.usage[dish.ID]) / float64(st.maxUsage) * frequencyBonusMax
		}

		if score <= 0 {
			continue
		}
		if reason == "" {
			reason = ReasonGoodChoice
		}
		candidates = append(candidates, Suggestion{
			Dish:   SuggestedDish{ID: dish.ID, Name: dish.Name, Category: dish.Category},
			Score:  score,
			Reason: reason,
		})
	}

	// Score descending, dish id ascending on ties so output is deterministic.
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].Dish.ID.String() < candidates[j].Dish.ID.String()
	})

	result := make([]Suggestion, 0, len(candidates))
	for _, cat := range eligible {
		taken := 0
		for _, c := range candidates {
			if c.Dish.Category != cat {
				continue
			}
			result = append(result, c)
			taken++
			if taken == maxPerCategory {
				break
			}
		}
	}
	return result
}

func categoryEligible(c models.Category, eligible []models.Category) bool {
	for _, e := range eligible {
		if c == e {
			return true
		}
	}
	return false
}

// dateOnly strips time-of-day, keeping only the calendar day in UTC.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// startOfWeek returns the Monday of the week containing day.
func startOfWeek(day time.Time) time.Time {
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}
