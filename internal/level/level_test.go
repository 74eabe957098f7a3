package level

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThreshold(t *testing.T) {
	c := Curve{BaseXP: 100}

	tests := []struct {
		level int
		want  int
	}{
		{0, 0},
		{1, 0},
		{2, 100},
		{3, 300},
		{4, 600},
		{10, 4500},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, c.Threshold(tt.level), "level %d", tt.level)
	}
}

func TestResolve(t *testing.T) {
	c := Curve{BaseXP: 100}

	tests := []struct {
		xp   int
		want Progress
	}{
		{0, Progress{Level: 1, XPIntoLevel: 0, XPRequiredForLevel: 100, XPToNext: 100}},
		{99, Progress{Level: 1, XPIntoLevel: 99, XPRequiredForLevel: 100, XPToNext: 1}},
		{100, Progress{Level: 2, XPIntoLevel: 0, XPRequiredForLevel: 200, XPToNext: 200}},
		{299, Progress{Level: 2, XPIntoLevel: 199, XPRequiredForLevel: 200, XPToNext: 1}},
		{300, Progress{Level: 3, XPIntoLevel: 0, XPRequiredForLevel: 300, XPToNext: 300}},
		{4600, Progress{Level: 10, XPIntoLevel: 100, XPRequiredForLevel: 1000, XPToNext: 900}},
	}

	for _, tt := range tests {
		got, err := c.Resolve(tt.xp)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "xp %d", tt.xp)
	}
}

func TestResolve_RoundTripAndIdempotence(t *testing.T) {
	for _, base := range []int{1, 7, 100, 250} {
		c := Curve{BaseXP: base}
		prevLevel := 1
		for xp := 0; xp <= 20000; xp += 37 {
			p1, err := c.Resolve(xp)
			require.NoError(t, err)
			p2, err := c.Resolve(xp)
			require.NoError(t, err)

			require.Equal(t, p1, p2)
			require.Equal(t, xp, p1.XPIntoLevel+c.Threshold(p1.Level))
			require.Less(t, p1.XPIntoLevel, p1.XPRequiredForLevel)
			require.GreaterOrEqual(t, p1.Level, prevLevel)
			prevLevel = p1.Level
		}
	}
}

func TestResolve_Errors(t *testing.T) {
	_, err := Curve{BaseXP: 100}.Resolve(-1)
	assert.Error(t, err)

	_, err = Curve{}.Resolve(10)
	assert.Error(t, err)
}

func TestProgress_Fraction(t *testing.T) {
	assert.Equal(t, 0.25, Progress{XPIntoLevel: 50, XPRequiredForLevel: 200}.Fraction())
	assert.Equal(t, 0.0, Progress{}.Fraction())
}

func TestThresholdDoesNotOverflow(t *testing.T) {
	if strconv.IntSize < 64 {
		t.Skip("needs 64-bit int")
	}
	c := Curve{BaseXP: 100}

	// BaseXP·(N-1)·N exceeds MaxInt here, the halved product does not.
	assert.Equal(t, int64(7_999_999_980_000_000_000), int64(c.Threshold(400_000_000)))
	assert.Equal(t, math.MaxInt, c.Threshold(math.MaxInt))
	assert.Equal(t, math.MaxInt, c.Threshold(1_000_000_000))
}

func TestResolve_HugeXP(t *testing.T) {
	c := Curve{BaseXP: 100}
	for _, xp := range []int{math.MaxInt / 2, math.MaxInt/2 + 12345, math.MaxInt - 1, math.MaxInt} {
		p, err := c.Resolve(xp)
		require.NoError(t, err, "xp %d", xp)
		assert.Greater(t, p.Level, 1)
		assert.Less(t, c.Threshold(p.Level), math.MaxInt)
		assert.Equal(t, xp, p.XPIntoLevel+c.Threshold(p.Level))
		assert.GreaterOrEqual(t, p.XPToNext, 0)
		assert.GreaterOrEqual(t, p.XPRequiredForLevel, p.XPIntoLevel)
	}
}
