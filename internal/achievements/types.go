package achievements

// ConditionType names the statistic an achievement is measured against.
type ConditionType string

const (
	ConditionCardsStudied  ConditionType = "cards_studied_total"
	ConditionCardsCreated  ConditionType = "cards_created_total"
	ConditionCurrentStreak ConditionType = "current_streak"
	ConditionBestStreak    ConditionType = "best_streak"
	ConditionLevel         ConditionType = "level"
	ConditionTotalXP       ConditionType = "total_xp"
	ConditionPerfectStreak ConditionType = "perfect_ratings_streak"
	ConditionStudyHours    ConditionType = "study_time_hours"
)

// AllConditions returns every known condition type.
func AllConditions() []ConditionType {
	return []ConditionType{
		ConditionCardsStudied,
		ConditionCardsCreated,
		ConditionCurrentStreak,
		ConditionBestStreak,
		ConditionLevel,
		ConditionTotalXP,
		ConditionPerfectStreak,
		ConditionStudyHours,
	}
}

// Valid reports whether c is a known condition type.
func (c ConditionType) Valid() bool {
	for _, known := range AllConditions() {
		if c == known {
			return true
		}
	}
	return false
}

// Definition is one entry of the achievement catalog.
type Definition struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Icon        string        `json:"icon"`
	Condition   ConditionType `json:"condition"`
	Threshold   int           `json:"threshold"`
	Rarity      Rarity        `json:"rarity"`
}

// UnlockedSet holds the ids of achievements a user already owns.
type UnlockedSet map[string]struct{}

// NewUnlockedSet builds a set from ids.
func NewUnlockedSet(ids ...string) UnlockedSet {
	s := make(UnlockedSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports whether id is unlocked.
func (s UnlockedSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Add marks id as unlocked.
func (s UnlockedSet) Add(id string) {
	s[id] = struct{}{}
}
