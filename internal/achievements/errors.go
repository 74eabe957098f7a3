package achievements

import "fmt"

// ErrUnknownCondition indicates a condition type outside the known set.
type ErrUnknownCondition struct {
	Condition ConditionType
}

func (e *ErrUnknownCondition) Error() string {
	return fmt.Sprintf("unknown achievement condition %q", e.Condition)
}

// ErrInvalidCatalog indicates a catalog document that failed validation.
type ErrInvalidCatalog struct {
	Source string
	Err    error
}

func (e *ErrInvalidCatalog) Error() string {
	return fmt.Sprintf("invalid achievement catalog %s: %v", e.Source, e.Err)
}

func (e *ErrInvalidCatalog) Unwrap() error { return e.Err }
