package types

// Train is the full statistics projection of one trajectory-schematic
// feature. Optional fields are nil when the feed sent null or nothing.
type Train struct {
	Delay                           *string
	HasJourney                      bool
	HasRealtime                     bool
	HasRealtimeJourney              bool
	Line                            *Line
	OperatorProvidesRealtimeJourney string
	OriginalLine                    *string
	OriginalRake                    *string
	Rake                            *string
	RawCoordinates                  *Coordinate
	RideState                       *string
	State                           *string
	Tenant                          string
	TrainID                         string
	TrainNumber                     *int64
	TransmittingVehicle             *string
	VehicleNumber                   *string
}

// TrainFromContent projects a trajectory-schematic content variant into a
// Train. The payload must be a single feature with a property map; any
// property of the wrong kind fails the whole projection, there are no
// partial results.
func TrainFromContent(content Content) (*Train, error) {
	schematic, ok := content.(TrajectorySchematic)
	if !ok {
		return nil, &IncorrectTypeError{Expected: SourceTrajectorySchematic, Got: contentName(content)}
	}
	props, err := featureProperties(schematic.GeoJSON)
	if err != nil {
		return nil, err
	}

	train := &Train{
		HasJourney:         boolOrFalse(props, "has_journey"),
		HasRealtime:        boolOrFalse(props, "has_realtime"),
		HasRealtimeJourney: boolOrFalse(props, "has_realtime_journey"),
	}
	if train.Delay, err = extractOptional[string](props, "delay"); err != nil {
		return nil, err
	}
	if lineValue, ok := props["line"]; ok && lineValue != nil {
		line, err := LineFromValue(lineValue)
		if err != nil {
			return nil, err
		}
		train.Line = &line
	}
	if train.OperatorProvidesRealtimeJourney, err = extract[string](props, "operator_provides_realtime_journey"); err != nil {
		return nil, err
	}
	if train.OriginalLine, err = extractOptional[string](props, "original_line"); err != nil {
		return nil, err
	}
	if train.OriginalRake, err = extractOptional[string](props, "original_rake"); err != nil {
		return nil, err
	}
	if train.Rake, err = extractOptional[string](props, "rake"); err != nil {
		return nil, err
	}
	if rawCoordinates, ok := props["raw_coordinates"]; ok && rawCoordinates != nil {
		coordinate, err := CoordinateFromValue(rawCoordinates)
		if err != nil {
			return nil, err
		}
		train.RawCoordinates = &coordinate
	}
	if train.RideState, err = extractOptional[string](props, "ride_state"); err != nil {
		return nil, err
	}
	if train.State, err = extractOptional[string](props, "state"); err != nil {
		return nil, err
	}
	if train.Tenant, err = extract[string](props, "tenant"); err != nil {
		return nil, err
	}
	if train.TrainID, err = extract[string](props, "train_id"); err != nil {
		return nil, err
	}
	if train.TrainNumber, err = extractOptional[int64](props, "train_number"); err != nil {
		return nil, err
	}
	if train.TransmittingVehicle, err = extractOptional[string](props, "transmitting_vehicle"); err != nil {
		return nil, err
	}
	if train.VehicleNumber, err = extractOptional[string](props, "vehicle_number"); err != nil {
		return nil, err
	}
	return train, nil
}

// featureProperties checks that g is a single feature carrying a
// property map and returns the map.
func featureProperties(g *GeoJSON) (Properties, error) {
	if !g.IsFeature() {
		got := "nil"
		if g != nil {
			got = g.Type
		}
		return nil, &IncorrectTypeError{Expected: "Feature", Got: got}
	}
	if g.Properties == nil {
		return nil, &IncorrectTypeError{Expected: "properties", Got: "null"}
	}
	return Properties(g.Properties), nil
}

func contentName(c Content) string {
	if c == nil {
		return "nil"
	}
	return c.contentSource()
}
