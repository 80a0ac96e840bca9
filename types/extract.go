package types

import (
	"encoding/json"
	"fmt"
	"math"
)

// Properties is the free-form property map of a GeoJSON feature.
type Properties map[string]interface{}

// propertyValue is the set of scalar targets the property extractor can
// produce. JSON numbers arrive as float64; int64 targets additionally
// require the number to be integral.
type propertyValue interface {
	string | int64 | float64 | bool
}

// extract returns the named required property converted to T. An absent
// property is a MissingPropertyError; a present value of the wrong JSON
// kind is an IncorrectValueTypeError.
func extract[T propertyValue](props Properties, field string) (T, error) {
	var zero T
	raw, ok := props[field]
	if !ok {
		return zero, &MissingPropertyError{Field: field}
	}
	v, ok := convertProperty[T](raw)
	if !ok {
		return zero, incorrectValueType[T](raw)
	}
	return v, nil
}

// extractOptional is extract for properties that may legitimately be
// absent or null; both decode to nil rather than an error. A present
// non-null value of the wrong kind still fails.
func extractOptional[T propertyValue](props Properties, field string) (*T, error) {
	raw, ok := props[field]
	if !ok || raw == nil {
		return nil, nil
	}
	v, ok := convertProperty[T](raw)
	if !ok {
		return nil, incorrectValueType[T](raw)
	}
	return &v, nil
}

// boolOrFalse reads an optional boolean property, defaulting to false
// when the property is absent, null, or not a boolean.
func boolOrFalse(props Properties, field string) bool {
	b, _ := props[field].(bool)
	return b
}

func convertProperty[T propertyValue](raw interface{}) (T, bool) {
	var zero T
	switch any(zero).(type) {
	case string:
		s, ok := raw.(string)
		return any(s).(T), ok
	case bool:
		b, ok := raw.(bool)
		return any(b).(T), ok
	case float64:
		f, ok := raw.(float64)
		return any(f).(T), ok
	case int64:
		f, ok := raw.(float64)
		if !ok || f != math.Trunc(f) {
			return zero, false
		}
		return any(int64(f)).(T), true
	}
	return zero, false
}

func incorrectValueType[T propertyValue](raw interface{}) error {
	var zero T
	return &IncorrectValueTypeError{
		Expected: fmt.Sprintf("%T", zero),
		Value:    serializeValue(raw),
		Got:      jsonKind(raw),
	}
}

// jsonKind names the JSON kind of a decoded value for error reporting.
func jsonKind(v interface{}) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case string:
		return "string"
	case []interface{}:
		return "array"
	case map[string]interface{}:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func serializeValue(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}
