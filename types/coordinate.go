package types

// Coordinate is a geographic position. The feed serializes positions as
// two-element [longitude, latitude] arrays; the field mapping from array
// index to named field is exact and must not be swapped.
type Coordinate struct {
	Latitude  float64
	Longitude float64
}

// CoordinateFromValue decodes the raw_coordinates property value: an
// array of exactly two numeric entries in [longitude, latitude] order.
func CoordinateFromValue(value interface{}) (Coordinate, error) {
	array, ok := value.([]interface{})
	if !ok {
		return Coordinate{}, &IncorrectTypeError{Expected: "array", Got: jsonKind(value)}
	}
	if len(array) != 2 {
		return Coordinate{}, &MissingItemsError{Expected: 2, Actual: len(array)}
	}
	longitude, ok := array[0].(float64)
	if !ok {
		return Coordinate{}, &IncorrectTypeError{Expected: "number", Got: jsonKind(array[0])}
	}
	latitude, ok := array[1].(float64)
	if !ok {
		return Coordinate{}, &IncorrectTypeError{Expected: "number", Got: jsonKind(array[1])}
	}
	return Coordinate{Latitude: latitude, Longitude: longitude}, nil
}
