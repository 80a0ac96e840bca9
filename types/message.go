// Package types contains the domain types shared by the feed scraper and
// the analysis tooling: the decoded websocket envelope with its content
// variants, the trajectory projections (Train for statistics, Record for
// replay) and the decode error taxonomy.
package types

import (
	"encoding/json"
)

// Source discriminator values known to this client.
const (
	SourceTrajectory               = "trajectory"
	SourceTrajectorySchematic      = "trajectory_schematic"
	SourceStation                  = "station"
	SourceStationSchematic         = "station_schematic"
	SourceDeletedVehicles          = "deleted_vehicles"
	SourceDeletedVehiclesSchematic = "deleted_vehicles_schematic"
	SourceWebsocket                = "websocket"
	SourceExtraGeoms               = "extra_geoms"
	SourceHealthcheck              = "healthcheck"
	SourceNewsTicker               = "sbm_newsticker"
)

// Message is one decoded feed envelope: a content variant selected by the
// source tag, the server timestamp in fractional epoch milliseconds, and
// an optional client reference.
type Message struct {
	Content         Content
	Timestamp       float64
	ClientReference *int
}

// Content is the payload of a Message. Exactly one concrete variant is
// active per message, selected by the source discriminator. The variant
// set is closed; decode sites must handle Unrecognized for tags added
// upstream after this client was written.
type Content interface {
	contentSource() string
}

// TrajectorySchematic carries live vehicle position features on the
// schematic layer. This is the only variant the projections consume.
type TrajectorySchematic struct {
	GeoJSON *GeoJSON
}

// Trajectory carries live vehicle position features in geographic space.
type Trajectory struct {
	GeoJSON *GeoJSON
}

// StationSchematic carries station features on the schematic layer.
type StationSchematic struct {
	GeoJSON *GeoJSON
}

// Station carries station features in geographic space.
type Station struct {
	GeoJSON *GeoJSON
}

// DeletedVehicles announces a vehicle removal; the payload is an opaque
// reference that may be null.
type DeletedVehicles struct {
	Ref *string
}

// DeletedVehiclesSchematic is DeletedVehicles for the schematic layer.
type DeletedVehiclesSchematic struct {
	Ref *string
}

// Websocket is the status-or-pong union sent on the connection meta topic.
// Exactly one of Status and Pong is set.
type Websocket struct {
	Status *string
	Pong   *string
}

// ExtraGeoms wraps the optional extra geometry reference payload.
type ExtraGeoms struct {
	Geom *ExtraGeom
}

// ExtraGeom is one extra geometry reference.
type ExtraGeom struct {
	Type       string              `json:"type"`
	Properties ExtraGeomProperties `json:"properties"`
}

// ExtraGeomProperties holds the reference of an extra geometry.
type ExtraGeomProperties struct {
	Ref string `json:"ref"`
}

// Healthcheck reports the health of one upstream service.
type Healthcheck struct {
	Service string  `json:"service"`
	Healthy bool    `json:"healthy"`
	Tenant  *string `json:"tenant"`
}

// NewsTicker carries operator incident messages.
type NewsTicker struct {
	IncidentProgram *bool               `json:"incident_program"`
	Messages        []NewsTickerMessage `json:"messages"`
}

// NewsTickerMessage is one incident message on the news ticker.
type NewsTickerMessage struct {
	Title   string   `json:"title"`
	Lines   []string `json:"lines"`
	Content string   `json:"content"`
	Updated string   `json:"updated"`
}

// Unrecognized preserves messages whose source tag this client does not
// know. Kept as a distinct variant so upstream schema growth never turns
// into a decode failure.
type Unrecognized struct {
	Source string
	Raw    json.RawMessage
}

func (TrajectorySchematic) contentSource() string      { return SourceTrajectorySchematic }
func (Trajectory) contentSource() string               { return SourceTrajectory }
func (StationSchematic) contentSource() string         { return SourceStationSchematic }
func (Station) contentSource() string                  { return SourceStation }
func (DeletedVehicles) contentSource() string          { return SourceDeletedVehicles }
func (DeletedVehiclesSchematic) contentSource() string { return SourceDeletedVehiclesSchematic }
func (Websocket) contentSource() string                { return SourceWebsocket }
func (ExtraGeoms) contentSource() string               { return SourceExtraGeoms }
func (Healthcheck) contentSource() string              { return SourceHealthcheck }
func (NewsTicker) contentSource() string               { return SourceNewsTicker }
func (u Unrecognized) contentSource() string           { return u.Source }

type messageWire struct {
	Source          string          `json:"source"`
	Content         json.RawMessage `json:"content"`
	Timestamp       float64         `json:"timestamp"`
	ClientReference *int            `json:"client_reference"`
}

// UnmarshalJSON decodes one feed envelope. Unknown source tags decode to
// Unrecognized; a payload that does not match the shape its tag promises
// is an error and the whole envelope fails.
func (m *Message) UnmarshalJSON(data []byte) error {
	var wire messageWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	content, err := decodeContent(wire.Source, wire.Content)
	if err != nil {
		return err
	}
	m.Content = content
	m.Timestamp = wire.Timestamp
	m.ClientReference = wire.ClientReference
	return nil
}

// MarshalJSON re-encodes the envelope in the feed's wire shape.
func (m Message) MarshalJSON() ([]byte, error) {
	payload, err := contentPayload(m.Content)
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		Source          string          `json:"source"`
		Content         json.RawMessage `json:"content"`
		Timestamp       float64         `json:"timestamp"`
		ClientReference *int            `json:"client_reference"`
	}{
		Source:          m.Content.contentSource(),
		Content:         payload,
		Timestamp:       m.Timestamp,
		ClientReference: m.ClientReference,
	})
}

func decodeContent(source string, raw json.RawMessage) (Content, error) {
	switch source {
	case SourceTrajectory:
		g, err := decodeGeoJSON(raw)
		return Trajectory{GeoJSON: g}, err
	case SourceTrajectorySchematic:
		g, err := decodeGeoJSON(raw)
		return TrajectorySchematic{GeoJSON: g}, err
	case SourceStation:
		g, err := decodeGeoJSON(raw)
		return Station{GeoJSON: g}, err
	case SourceStationSchematic:
		g, err := decodeGeoJSON(raw)
		return StationSchematic{GeoJSON: g}, err
	case SourceDeletedVehicles:
		ref, err := decodeOptionalString(raw)
		return DeletedVehicles{Ref: ref}, err
	case SourceDeletedVehiclesSchematic:
		ref, err := decodeOptionalString(raw)
		return DeletedVehiclesSchematic{Ref: ref}, err
	case SourceWebsocket:
		return decodeWebsocket(raw)
	case SourceExtraGeoms:
		var geom *ExtraGeom
		if err := json.Unmarshal(raw, &geom); err != nil {
			return nil, err
		}
		return ExtraGeoms{Geom: geom}, nil
	case SourceHealthcheck:
		var hc Healthcheck
		if err := json.Unmarshal(raw, &hc); err != nil {
			return nil, err
		}
		return hc, nil
	case SourceNewsTicker:
		var nt NewsTicker
		if err := json.Unmarshal(raw, &nt); err != nil {
			return nil, err
		}
		return nt, nil
	default:
		return Unrecognized{Source: source, Raw: append(json.RawMessage(nil), raw...)}, nil
	}
}

func decodeOptionalString(raw json.RawMessage) (*string, error) {
	var s *string
	if len(raw) == 0 {
		return nil, nil
	}
	err := json.Unmarshal(raw, &s)
	return s, err
}

func decodeWebsocket(raw json.RawMessage) (Content, error) {
	var pong string
	if err := json.Unmarshal(raw, &pong); err == nil {
		return Websocket{Pong: &pong}, nil
	}
	var status struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(raw, &status); err != nil {
		return nil, err
	}
	return Websocket{Status: &status.Status}, nil
}

func contentPayload(c Content) (json.RawMessage, error) {
	var payload interface{}
	switch v := c.(type) {
	case Trajectory:
		payload = v.GeoJSON
	case TrajectorySchematic:
		payload = v.GeoJSON
	case Station:
		payload = v.GeoJSON
	case StationSchematic:
		payload = v.GeoJSON
	case DeletedVehicles:
		payload = v.Ref
	case DeletedVehiclesSchematic:
		payload = v.Ref
	case Websocket:
		if v.Pong != nil {
			payload = *v.Pong
		} else {
			payload = struct {
				Status *string `json:"status"`
			}{Status: v.Status}
		}
	case ExtraGeoms:
		payload = v.Geom
	case Unrecognized:
		return v.Raw, nil
	default:
		payload = c
	}
	return json.Marshal(payload)
}
