package achievements

import (
	"fmt"
	"math"
	"time"

	"github.com/abhisek/flashiz/internal/level"
	"github.com/abhisek/flashiz/internal/stats"
)

// Estimator predicts how long an achievement will take at the user's
// historical pace.
type Estimator struct {
	curve level.Curve
}

// NewEstimator creates an Estimator using curve for level conditions.
func NewEstimator(curve level.Curve) *Estimator {
	return &Estimator{curve: curve}
}

// ActiveDays counts calendar days since the user joined, including the
// joining day itself.
func ActiveDays(joinedAt, now time.Time) int {
	if joinedAt.IsZero() || now.Before(joinedAt) {
		return 1
	}
	return int(now.Sub(joinedAt)/(24*time.Hour)) + 1
}

// EstimateDaysToComplete returns the days needed to cover remaining at the
// user's average daily rate. It returns 0 when nothing remains or when the
// rate is zero and no estimate is possible.
func (e *Estimator) EstimateDaysToComplete(cond ConditionType, remaining int, s stats.UserStatistics, now time.Time) (int, error) {
	if remaining < 0 {
		return 0, fmt.Errorf("remaining value must not be negative, got %d", remaining)
	}
	if !cond.Valid() {
		return 0, &ErrUnknownCondition{Condition: cond}
	}
	if remaining == 0 {
		return 0, nil
	}

	days := float64(ActiveDays(s.JoinedAt, now))

	switch cond {
	case ConditionCurrentStreak, ConditionBestStreak:
		// One more consecutive day per unit, no estimation involved.
		return remaining, nil
	case ConditionCardsStudied, ConditionPerfectStreak:
		return divideUp(float64(remaining), float64(s.CardsStudied)/days), nil
	case ConditionCardsCreated:
		return divideUp(float64(remaining), float64(s.CardsCreated)/days), nil
	case ConditionTotalXP:
		return divideUp(float64(remaining), float64(s.TotalXP)/days), nil
	case ConditionStudyHours:
		return divideUp(float64(remaining), s.TotalStudyTime.Hours()/days), nil
	case ConditionLevel:
		current, err := e.curve.Resolve(s.TotalXP)
		if err != nil {
			return 0, err
		}
		gap := e.curve.Threshold(current.Level+remaining) - s.TotalXP
		return divideUp(float64(gap), float64(s.TotalXP)/days), nil
	}
	return 0, nil
}

func divideUp(remaining, perDay float64) int {
	if perDay <= 0 || remaining <= 0 {
		return 0
	}
	return int(math.Ceil(remaining / perDay))
}
