package types

import (
	"errors"
	"testing"
)

func TestRecordFromMessage(t *testing.T) {
	m := trajectoryMessage(trajectoryProps())
	record, err := RecordFromMessage(m)
	if err != nil {
		t.Fatal(err)
	}
	if record.Timestamp != m.Timestamp {
		t.Errorf("timestamp: got %v, want %v", record.Timestamp, m.Timestamp)
	}
	if record.Position.Longitude != 11.58 || record.Position.Latitude != 48.14 {
		t.Errorf("position: got %#v", record.Position)
	}
	if record.Line != "S1" {
		t.Errorf("line: got %q, want %q", record.Line, "S1")
	}
	wantColor := Color{R: 26.0 / 255.0, G: 43.0 / 255.0, B: 60.0 / 255.0, A: 1.0}
	if record.LineColor != wantColor {
		t.Errorf("line color: got %#v, want %#v", record.LineColor, wantColor)
	}
	if record.State != RideStateDriving {
		t.Errorf("state: got %v, want driving", record.State)
	}
	if record.VehicleNumber != "948004232062" || record.TrainNumber != 6012 {
		t.Errorf("identity: got vehicle=%q train=%d", record.VehicleNumber, record.TrainNumber)
	}
}

func TestRecordBoardingState(t *testing.T) {
	props := trajectoryProps()
	props["state"] = "BOARDING"
	record, err := RecordFromMessage(trajectoryMessage(props))
	if err != nil {
		t.Fatal(err)
	}
	if record.State != RideStateBoarding {
		t.Errorf("state: got %v, want boarding", record.State)
	}
}

// The two projections are independent: a feature the Train projection
// rejects can still yield a Record when only fields the Record does not
// need are broken, and vice versa.
func TestRecordSurvivesMissingTrainID(t *testing.T) {
	props := trajectoryProps()
	delete(props, "train_id")
	m := trajectoryMessage(props)

	if _, err := TrainFromContent(m.Content); err == nil {
		t.Error("train projection: want error for missing train_id")
	}
	if _, err := RecordFromMessage(m); err != nil {
		t.Errorf("record projection: got %v, want success", err)
	}
}

func TestRecordMissingRequirements(t *testing.T) {
	tests := []struct {
		name  string
		field string
	}{
		{"no coordinates", "raw_coordinates"},
		{"no line", "line"},
		{"no state", "state"},
		{"no vehicle number", "vehicle_number"},
		{"no train number", "train_number"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			props := trajectoryProps()
			delete(props, tt.field)
			_, err := RecordFromMessage(trajectoryMessage(props))
			var missing *MissingPropertyError
			if !errors.As(err, &missing) {
				t.Fatalf("got %v, want MissingPropertyError", err)
			}
			if missing.Field != tt.field {
				t.Errorf("field: got %q, want %q", missing.Field, tt.field)
			}
		})
	}
}

func TestRecordBadLineColor(t *testing.T) {
	for _, color := range []string{"1A2B3C", "#GGHHII"} {
		props := trajectoryProps()
		props["line"].(map[string]interface{})["color"] = color
		_, err := RecordFromMessage(trajectoryMessage(props))
		var incorrect *IncorrectTypeError
		if !errors.As(err, &incorrect) {
			t.Errorf("color %q: got %v, want wrapped IncorrectTypeError", color, err)
		}
	}
}

func TestRecordNonIntegralTrainNumber(t *testing.T) {
	props := trajectoryProps()
	props["train_number"] = 6012.5
	_, err := RecordFromMessage(trajectoryMessage(props))
	var incorrect *IncorrectValueTypeError
	if !errors.As(err, &incorrect) {
		t.Errorf("got %v, want IncorrectValueTypeError", err)
	}
}

func TestRecordWrongVariant(t *testing.T) {
	m := Message{Content: Healthcheck{Service: "tralis", Healthy: true}}
	_, err := RecordFromMessage(m)
	var incorrect *IncorrectTypeError
	if !errors.As(err, &incorrect) {
		t.Errorf("got %v, want IncorrectTypeError", err)
	}
}
