package types

// RideState classifies the movement state of a vehicle sample.
type RideState int

// The feed only distinguishes driving from everything else; all non
// DRIVING states count as boarding.
const (
	RideStateDriving RideState = iota
	RideStateBoarding
)

// RideStateFromString maps the feed's state property onto a RideState.
func RideStateFromString(s string) RideState {
	if s == "DRIVING" {
		return RideStateDriving
	}
	return RideStateBoarding
}

func (s RideState) String() string {
	if s == RideStateDriving {
		return "driving"
	}
	return "boarding"
}

// Record is the minimal replay projection of one trajectory-schematic
// message: where one vehicle was, on which line, when. It is decoded
// independently of Train from the same envelope, so it only requires the
// fields it actually renders.
type Record struct {
	Timestamp     float64
	Position      Coordinate
	Line          string
	LineColor     Color
	State         RideState
	VehicleNumber string
	TrainNumber   int64
}

// RecordFromMessage projects a feed envelope into a replay Record.
func RecordFromMessage(m Message) (*Record, error) {
	schematic, ok := m.Content.(TrajectorySchematic)
	if !ok {
		return nil, &IncorrectTypeError{Expected: SourceTrajectorySchematic, Got: contentName(m.Content)}
	}
	props, err := featureProperties(schematic.GeoJSON)
	if err != nil {
		return nil, err
	}

	record := &Record{Timestamp: m.Timestamp}

	rawCoordinates, ok := props["raw_coordinates"]
	if !ok {
		return nil, &MissingPropertyError{Field: "raw_coordinates"}
	}
	if record.Position, err = CoordinateFromValue(rawCoordinates); err != nil {
		return nil, err
	}

	lineValue, ok := props["line"]
	if !ok {
		return nil, &MissingPropertyError{Field: "line"}
	}
	lineObject, ok := lineValue.(map[string]interface{})
	if !ok {
		return nil, &IncorrectTypeError{Expected: "object", Got: jsonKind(lineValue)}
	}
	lineProps := Properties(lineObject)
	if record.Line, err = extract[string](lineProps, "name"); err != nil {
		return nil, err
	}
	colorString, err := extract[string](lineProps, "color")
	if err != nil {
		return nil, err
	}
	if record.LineColor, err = ParseColor(colorString); err != nil {
		// the color taxonomy is folded into the decode error for the record
		return nil, &IncorrectTypeError{Expected: "color", Got: err.Error()}
	}

	state, err := extract[string](props, "state")
	if err != nil {
		return nil, err
	}
	record.State = RideStateFromString(state)

	if record.VehicleNumber, err = extract[string](props, "vehicle_number"); err != nil {
		return nil, err
	}
	if record.TrainNumber, err = extract[int64](props, "train_number"); err != nil {
		return nil, err
	}
	return record, nil
}
