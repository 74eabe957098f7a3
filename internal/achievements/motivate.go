package achievements

import "fmt"

type unit struct {
	one, many string
}

func (u unit) format(n int) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, u.one)
	}
	return fmt.Sprintf("%d %s", n, u.many)
}

// templates are keyed by condition type; %[1]s is the remaining amount with
// its unit and %[2]s is the achievement name.
var templates = map[ConditionType]struct {
	unit unit
	text string
}{
	ConditionCardsStudied:  {unit{"card", "cards"}, "Review %[1]s more to unlock %[2]q. Every card counts!"},
	ConditionCardsCreated:  {unit{"card", "cards"}, "Create %[1]s more to earn %[2]q. Your deck is growing!"},
	ConditionCurrentStreak: {unit{"day", "days"}, "Keep your streak alive for %[1]s more to unlock %[2]q."},
	ConditionBestStreak:    {unit{"day", "days"}, "Only %[1]s of unbroken study stand between you and %[2]q."},
	ConditionLevel:         {unit{"level", "levels"}, "Climb %[1]s more to reach %[2]q."},
	ConditionTotalXP:       {unit{"XP", "XP"}, "Earn %[1]s more to claim %[2]q."},
	ConditionPerfectStreak: {unit{"perfect answer", "perfect answers"}, "Give %[1]s in a row to unlock %[2]q."},
	ConditionStudyHours:    {unit{"hour", "hours"}, "Study %[1]s more to earn %[2]q."},
}

// GenerateMotivationalMessage renders the phrasing for a condition type.
// The output depends only on the arguments.
func GenerateMotivationalMessage(cond ConditionType, remaining int, name string) (string, error) {
	tpl, ok := templates[cond]
	if !ok {
		return "", &ErrUnknownCondition{Condition: cond}
	}
	if remaining < 0 {
		return "", fmt.Errorf("remaining value must not be negative, got %d", remaining)
	}
	if remaining == 0 {
		return fmt.Sprintf("%q is ready to unlock!", name), nil
	}
	return fmt.Sprintf(tpl.text, tpl.unit.format(remaining), name), nil
}
