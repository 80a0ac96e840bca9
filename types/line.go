package types

// Line is the transit line metadata attached to a trajectory feature.
// All fields participate in equality, so a Line can key aggregation maps
// directly.
type Line struct {
	Color     string
	ID        int64
	Name      string
	Stroke    string
	TextColor string
}

// LineFromValue decodes the line property object of a trajectory feature.
func LineFromValue(value interface{}) (Line, error) {
	object, ok := value.(map[string]interface{})
	if !ok {
		return Line{}, &IncorrectTypeError{Expected: "object", Got: jsonKind(value)}
	}
	props := Properties(object)
	var (
		line Line
		err  error
	)
	if line.Color, err = extract[string](props, "color"); err != nil {
		return Line{}, err
	}
	if line.ID, err = extract[int64](props, "id"); err != nil {
		return Line{}, err
	}
	if line.Name, err = extract[string](props, "name"); err != nil {
		return Line{}, err
	}
	if line.Stroke, err = extract[string](props, "stroke"); err != nil {
		return Line{}, err
	}
	if line.TextColor, err = extract[string](props, "text_color"); err != nil {
		return Line{}, err
	}
	return line, nil
}
