package compute

import (
	"github.com/livemapsbm/livemapsbm/types"
)

// Surface is the drawing capability Render needs: a sized plane that can
// plot a filled circle at a point in a color. The replay viewer provides
// the real one; tests substitute their own.
type Surface interface {
	Size() (width, height float64)
	FillCircle(x, y float64, color types.Color)
}

// Viewport of the Munich S-Bahn network. Latitude maps to a flipped
// range because screen Y grows downwards.
const (
	longitudeMin = 11.0
	longitudeMax = 12.0
	latitudeMin  = 47.5
	latitudeMax  = 48.5
)

// mapRange linearly maps value from [aMin, aMax] to [bMin, bMax].
func mapRange(value, aMin, aMax, bMin, bMax float64) float64 {
	return (value-aMin)/(aMax-aMin)*(bMax-bMin) + bMin
}

// Vehicle owns the ordered, append-only timeline of replay records for
// one physical vehicle, identified by its vehicle number.
type Vehicle struct {
	Number  string
	Records []*types.Record
}

func vehicleFromRecord(r *types.Record) *Vehicle {
	return &Vehicle{
		Number:  r.VehicleNumber,
		Records: []*types.Record{r},
	}
}

func (v *Vehicle) update(r *types.Record) {
	v.Records = append(v.Records, r)
}

// render draws the record at the given frame index. Timelines shorter
// than idx+1 draw nothing for that frame; there is no interpolation
// between known samples.
func (v *Vehicle) render(s Surface, idx int) {
	if idx < 0 || idx >= len(v.Records) {
		return
	}
	record := v.Records[idx]
	width, height := s.Size()
	s.FillCircle(
		mapRange(record.Position.Longitude, longitudeMin, longitudeMax, 0, width),
		mapRange(record.Position.Latitude, latitudeMin, latitudeMax, height, 0),
		record.LineColor,
	)
}

// VehicleHandler accumulates per-vehicle position histories and renders
// them frame by frame. Histories grow monotonically for the lifetime of
// an analysis run; there is no eviction, which is fine for bounded
// offline runs but would need a windowing policy in a live service.
type VehicleHandler struct {
	vehicles map[string]*Vehicle
}

// NewVehicleHandler returns a new, initialized VehicleHandler
func NewVehicleHandler() *VehicleHandler {
	return &VehicleHandler{vehicles: make(map[string]*Vehicle)}
}

// Insert appends the record to the timeline of its vehicle, creating the
// vehicle on first sight. Arrival order is preserved; timelines are
// never reordered by the embedded timestamp.
func (h *VehicleHandler) Insert(r *types.Record) {
	if v, ok := h.vehicles[r.VehicleNumber]; ok {
		v.update(r)
		return
	}
	h.vehicles[r.VehicleNumber] = vehicleFromRecord(r)
}

// Render draws frame idx of every vehicle whose timeline reaches it.
func (h *VehicleHandler) Render(s Surface, idx int) {
	for _, v := range h.vehicles {
		v.render(s, idx)
	}
}

// Vehicle returns the timeline for a vehicle number, or nil if the
// vehicle was never seen.
func (h *VehicleHandler) Vehicle(number string) *Vehicle {
	return h.vehicles[number]
}

// VehicleCount returns the number of distinct vehicles seen.
func (h *VehicleHandler) VehicleCount() int {
	return len(h.vehicles)
}

// MaxTimeline returns the length of the longest vehicle timeline. The
// replay wrap bound is derived from it rather than hard-coded.
func (h *VehicleHandler) MaxTimeline() int {
	longest := 0
	for _, v := range h.vehicles {
		if len(v.Records) > longest {
			longest = len(v.Records)
		}
	}
	return longest
}
