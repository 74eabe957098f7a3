package rewards

import "fmt"

// ErrInvalidRating indicates a rating outside the 1..5 scale.
type ErrInvalidRating struct {
	Rating int
}

func (e *ErrInvalidRating) Error() string {
	return fmt.Sprintf("rating %d is outside 1..5", e.Rating)
}

// ErrNegativeValue indicates a negative input where only non-negative
// values make sense (base XP, streak days, earned XP).
type ErrNegativeValue struct {
	Field string
	Value int
}

func (e *ErrNegativeValue) Error() string {
	return fmt.Sprintf("%s must not be negative, got %d", e.Field, e.Value)
}

// ErrInvalidConfig indicates a reward configuration that cannot be used.
type ErrInvalidConfig struct {
	Field  string
	Reason string
	Err    error
}

func (e *ErrInvalidConfig) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid reward config %s: %s: %v", e.Field, e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid reward config %s: %s", e.Field, e.Reason)
}

func (e *ErrInvalidConfig) Unwrap() error { return e.Err }
