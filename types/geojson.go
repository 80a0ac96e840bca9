package types

import "encoding/json"

// GeoJSON is a loosely typed GeoJSON document (RFC 7946). The feed sends
// both single features and feature collections on the same topics;
// trajectory projection only accepts single features, so the properties
// stay a free-form map until a projection gives them a schema.
type GeoJSON struct {
	Type       string                 `json:"type"`
	Geometry   *Geometry              `json:"geometry,omitempty"`
	Properties map[string]interface{} `json:"properties,omitempty"`
	Features   []GeoJSON              `json:"features,omitempty"`
}

// Geometry is the geometry member of a feature. Coordinates are kept raw:
// their nesting depth depends on the geometry type and nothing in this
// client consumes them (vehicle positions ride in the raw_coordinates
// property instead).
type Geometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates,omitempty"`
}

// IsFeature reports whether g is a single feature rather than a
// collection or bare geometry.
func (g *GeoJSON) IsFeature() bool {
	return g != nil && g.Type == "Feature"
}

func decodeGeoJSON(raw json.RawMessage) (*GeoJSON, error) {
	var g GeoJSON
	if err := json.Unmarshal(raw, &g); err != nil {
		return nil, err
	}
	return &g, nil
}
