package achievements

import (
	"github.com/abhisek/flashiz/internal/level"
	"github.com/abhisek/flashiz/internal/stats"
)

// Evaluator checks user statistics against a catalog.
type Evaluator struct {
	catalog Catalog
	curve   level.Curve
}

// NewEvaluator creates an Evaluator. The curve is needed to derive the
// level statistic from total XP.
func NewEvaluator(catalog Catalog, curve level.Curve) *Evaluator {
	return &Evaluator{catalog: catalog, curve: curve}
}

// Catalog returns the evaluator's catalog.
func (e *Evaluator) Catalog() Catalog {
	return e.catalog
}

// Value extracts the statistic a condition type measures.
func (e *Evaluator) Value(cond ConditionType, s stats.UserStatistics) (int, error) {
	switch cond {
	case ConditionCardsStudied:
		return s.CardsStudied, nil
	case ConditionCardsCreated:
		return s.CardsCreated, nil
	case ConditionCurrentStreak:
		return s.CurrentStreak, nil
	case ConditionBestStreak:
		return s.BestStreak, nil
	case ConditionLevel:
		p, err := e.curve.Resolve(s.TotalXP)
		if err != nil {
			return 0, err
		}
		return p.Level, nil
	case ConditionTotalXP:
		return s.TotalXP, nil
	case ConditionPerfectStreak:
		return s.PerfectStreak, nil
	case ConditionStudyHours:
		return s.StudyHours(), nil
	default:
		return 0, &ErrUnknownCondition{Condition: cond}
	}
}

// CheckUnlocked returns, in catalog order, every definition whose statistic
// meets its threshold and that is not in unlocked. Calling it again with the
// returned ids added to unlocked yields nothing new.
func (e *Evaluator) CheckUnlocked(s stats.UserStatistics, unlocked UnlockedSet) ([]Definition, error) {
	var newly []Definition
	for _, d := range e.catalog {
		if unlocked.Has(d.ID) {
			continue
		}
		v, err := e.Value(d.Condition, s)
		if err != nil {
			return nil, err
		}
		if v >= d.Threshold {
			newly = append(newly, d)
		}
	}
	return newly, nil
}

// Status is the progress of one user toward one definition.
type Status struct {
	Definition Definition
	Current    int
	Remaining  int
	Unlocked   bool
}

// Fraction returns completion in [0, 1].
func (s Status) Fraction() float64 {
	if s.Unlocked || s.Definition.Threshold <= 0 {
		return 1
	}
	f := float64(s.Current) / float64(s.Definition.Threshold)
	if f > 1 {
		return 1
	}
	return f
}

// Progress reports how far s is from d. Unlocked definitions have zero
// remaining regardless of the current statistic.
func (e *Evaluator) Progress(d Definition, s stats.UserStatistics, unlocked UnlockedSet) (Status, error) {
	v, err := e.Value(d.Condition, s)
	if err != nil {
		return Status{}, err
	}
	st := Status{Definition: d, Current: v, Unlocked: unlocked.Has(d.ID)}
	if !st.Unlocked && v < d.Threshold {
		st.Remaining = d.Threshold - v
	}
	return st, nil
}

// Closest returns the locked definition with the highest completion
// fraction, preferring catalog order on ties. ok is false when everything
// is unlocked.
func (e *Evaluator) Closest(s stats.UserStatistics, unlocked UnlockedSet) (Status, bool, error) {
	var (
		best  Status
		found bool
	)
	for _, d := range e.catalog {
		if unlocked.Has(d.ID) {
			continue
		}
		st, err := e.Progress(d, s, unlocked)
		if err != nil {
			return Status{}, false, err
		}
		if !found || st.Fraction() > best.Fraction() {
			best, found = st, true
		}
	}
	return best, found, nil
}
