package types

import (
	"errors"
	"testing"
)

func TestCoordinateAxisOrder(t *testing.T) {
	// the feed sends [longitude, latitude]
	c, err := CoordinateFromValue([]interface{}{11.58, 48.14})
	if err != nil {
		t.Fatal(err)
	}
	if c.Longitude != 11.58 {
		t.Errorf("longitude: got %v, want 11.58", c.Longitude)
	}
	if c.Latitude != 48.14 {
		t.Errorf("latitude: got %v, want 48.14", c.Latitude)
	}
}

func TestCoordinateWrongLength(t *testing.T) {
	tests := []struct {
		name   string
		value  []interface{}
		actual int
	}{
		{"empty", []interface{}{}, 0},
		{"one entry", []interface{}{11.58}, 1},
		{"three entries", []interface{}{11.58, 48.14, 0.0}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CoordinateFromValue(tt.value)
			var missing *MissingItemsError
			if !errors.As(err, &missing) {
				t.Fatalf("got %v, want MissingItemsError", err)
			}
			if missing.Expected != 2 || missing.Actual != tt.actual {
				t.Errorf("got expected=%d actual=%d, want expected=2 actual=%d",
					missing.Expected, missing.Actual, tt.actual)
			}
		})
	}
}

func TestCoordinateWrongKinds(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
	}{
		{"not an array", "11.58,48.14"},
		{"object", map[string]interface{}{"lon": 11.58}},
		{"string longitude", []interface{}{"11.58", 48.14}},
		{"null latitude", []interface{}{11.58, nil}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CoordinateFromValue(tt.value)
			var incorrect *IncorrectTypeError
			if !errors.As(err, &incorrect) {
				t.Errorf("got %v, want IncorrectTypeError", err)
			}
		})
	}
}
