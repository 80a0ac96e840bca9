package types

import "fmt"

// MissingPropertyError reports a required feature property that was
// absent from the property map.
type MissingPropertyError struct {
	Field string
}

func (e *MissingPropertyError) Error() string {
	return fmt.Sprintf("missing property: '%s'", e.Field)
}

// IncorrectTypeError reports a payload or feature of the wrong overall
// shape, e.g. a feature collection where a single feature was required.
type IncorrectTypeError struct {
	Expected string
	Got      string
}

func (e *IncorrectTypeError) Error() string {
	return fmt.Sprintf("expected value to be of type '%s', but found it to be of type '%s'", e.Expected, e.Got)
}

// IncorrectValueTypeError reports a property that was present but of the
// wrong JSON kind. Value carries the offending value re-serialized, for
// diagnostics.
type IncorrectValueTypeError struct {
	Expected string
	Value    string
	Got      string
}

func (e *IncorrectValueTypeError) Error() string {
	return fmt.Sprintf("expected value (%s) to be of type '%s', but found it to be of type '%s'", e.Value, e.Expected, e.Got)
}

// MissingItemsError reports a coordinate array of the wrong length.
type MissingItemsError struct {
	Expected int
	Actual   int
}

func (e *MissingItemsError) Error() string {
	return fmt.Sprintf("expected %d items, but found %d instead", e.Expected, e.Actual)
}
