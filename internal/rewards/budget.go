package rewards

// DailyBudget clamps awards to the XP still available today.
type DailyBudget struct {
	max    int
	earned int
	capped int
}

// Grant awards as much of amount as the remaining headroom allows and
// returns the awarded part. Non-positive amounts award nothing.
func (b *DailyBudget) Grant(amount int) int {
	if amount <= 0 {
		return 0
	}
	awarded := amount
	if h := b.Headroom(); awarded > h {
		awarded = h
	}
	b.earned += awarded
	b.capped += amount - awarded
	return awarded
}

// Headroom is the XP that can still be earned today.
func (b *DailyBudget) Headroom() int {
	if b.earned >= b.max {
		return 0
	}
	return b.max - b.earned
}

// Earned is the total XP earned today, including earlier events.
func (b *DailyBudget) Earned() int { return b.earned }

// Capped is the XP withheld by the cap since the budget was created.
func (b *DailyBudget) Capped() int { return b.capped }
