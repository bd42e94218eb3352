package validate

import (
	"errors"
	"fmt"
)

// Positive builds a rule requiring value(record) to be strictly greater than
// zero.
func Positive[T any](field string, value func(*T) float64) Rule[T] {
	return Rule[T]{
		Field: field,
		Check: func(record *T) error {
			if v := value(record); v <= 0 {
				return fmt.Errorf("must be greater than 0, got %v", v)
			}
			return nil
		},
	}
}

// InRange builds a rule for an optional bounded number: a nil value passes,
// a non-nil value must fall within [lo, hi].
func InRange[T any](field string, value func(*T) *float64, lo, hi float64) Rule[T] {
	return Rule[T]{
		Field: field,
		Check: func(record *T) error {
			v := value(record)
			if v == nil {
				return nil
			}
			if *v < lo || *v > hi {
				return fmt.Errorf("must be between %v and %v, got %v", lo, hi, *v)
			}
			return nil
		},
	}
}

// NonEmptyList builds a rule requiring items(record) to be non-empty. When
// normalize is non-nil it is applied to every element in place, so the rule
// doubles as a normalization pass (e.g. strings.ToLower).
func NonEmptyList[T any](field string, items func(*T) *[]string, normalize func(string) string) Rule[T] {
	return Rule[T]{
		Field: field,
		Check: func(record *T) error {
			list := items(record)
			if list == nil || len(*list) == 0 {
				return errors.New("list cannot be empty")
			}
			if normalize != nil {
				for i, item := range *list {
					(*list)[i] = normalize(item)
				}
			}
			return nil
		},
	}
}
