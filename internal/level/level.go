package level

import (
	"fmt"
	"math"
)

// Curve defines the XP needed per level. Leaving level N costs BaseXP × N,
// so the cumulative threshold of level N is BaseXP × (N-1) × N / 2:
//
//	level 1: 0, level 2: 100, level 3: 300, level 4: 600 (BaseXP = 100)
type Curve struct {
	BaseXP int
}

// Progress describes where a total XP value sits on the curve.
type Progress struct {
	Level              int
	XPIntoLevel        int // XP earned since reaching Level
	XPRequiredForLevel int // XP between Level and Level+1
	XPToNext           int
}

// Fraction returns progress through the current level in [0, 1).
func (p Progress) Fraction() float64 {
	if p.XPRequiredForLevel == 0 {
		return 0
	}
	return float64(p.XPIntoLevel) / float64(p.XPRequiredForLevel)
}

// Threshold returns the cumulative XP at which level is reached. Values
// past the range of int saturate at math.MaxInt.
func (c Curve) Threshold(level int) int {
	if level <= 1 || c.BaseXP <= 0 {
		return 0
	}
	// (level-1)·level is even; halve the even factor before multiplying.
	a, b := level-1, level
	if a%2 == 0 {
		a /= 2
	} else {
		b /= 2
	}
	return mulSat(mulSat(c.BaseXP, a), b)
}

// mulSat multiplies non-negative x and y, saturating at math.MaxInt.
func mulSat(x, y int) int {
	if x != 0 && y > math.MaxInt/x {
		return math.MaxInt
	}
	return x * y
}

// Resolve maps totalXP to its level. Equal inputs always give equal outputs.
// XP beyond the last threshold that fits in an int stays in that level.
func (c Curve) Resolve(totalXP int) (Progress, error) {
	if c.BaseXP <= 0 {
		return Progress{}, fmt.Errorf("level curve base must be positive, got %d", c.BaseXP)
	}
	if totalXP < 0 {
		return Progress{}, fmt.Errorf("total xp must not be negative, got %d", totalXP)
	}

	// Solve BaseXP·n(n-1)/2 <= totalXP for n, then fix float drift.
	n := int((1 + math.Sqrt(1+8*float64(totalXP)/float64(c.BaseXP))) / 2)
	if n < 1 {
		n = 1
	}
	for {
		next := c.Threshold(n + 1)
		if next > totalXP || next == math.MaxInt {
			break
		}
		n++
	}
	for n > 1 {
		if t := c.Threshold(n); t <= totalXP && t != math.MaxInt {
			break
		}
		n--
	}

	floor := c.Threshold(n)
	required := c.Threshold(n+1) - floor
	return Progress{
		Level:              n,
		XPIntoLevel:        totalXP - floor,
		XPRequiredForLevel: required,
		XPToNext:           floor + required - totalXP,
	}, nil
}
