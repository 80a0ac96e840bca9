// Package compute derives aggregate statistics and replay structures
// from the accumulated raw feed log.
package compute

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/hako/durafmt"
	"github.com/thoas/go-funk"

	"github.com/livemapsbm/livemapsbm/rawlog"
	"github.com/livemapsbm/livemapsbm/types"
)

// Analysis is the offline pass over the raw log: diagnostic counters over
// the Train projection and per-vehicle replay timelines over the Record
// projection. It is strictly single-threaded and read-only with respect
// to the log.
type Analysis struct {
	Trains        int
	Delays        *Counter[string]
	States        *Counter[string]
	RideStates    *Counter[string]
	OriginalLines *Counter[string]
	Lines         *Counter[types.Line]
	Vehicles      *VehicleHandler

	ParseFailures  int
	TrainFailures  int
	RecordFailures int

	// envelope timestamps observed at the edges of the log, epoch ms
	FirstTimestamp float64
	LastTimestamp  float64

	log *log.Logger
}

// NewAnalysis returns a new, initialized Analysis
func NewAnalysis(logger *log.Logger) *Analysis {
	return &Analysis{
		Delays:        NewCounter[string](),
		States:        NewCounter[string](),
		RideStates:    NewCounter[string](),
		OriginalLines: NewCounter[string](),
		Lines:         NewCounter[types.Line](),
		Vehicles:      NewVehicleHandler(),
		log:           logger,
	}
}

// ScanLog runs the analysis over the raw log at path. Only failure to
// open or read the file is an error; decode failures are counted and
// reported line by line.
func (a *Analysis) ScanLog(path string) error {
	return rawlog.Each(path, a.ScanLine)
}

// ScanReader is ScanLog over an arbitrary reader.
func (a *Analysis) ScanReader(r io.Reader) error {
	return rawlog.EachReader(r, a.ScanLine)
}

// ScanLine decodes one raw log line and feeds both projections. A
// malformed line, or a line whose projections fail, never aborts the
// scan.
func (a *Analysis) ScanLine(line string) {
	var m types.Message
	if err := json.Unmarshal([]byte(line), &m); err != nil {
		a.ParseFailures++
		a.log.Printf("unable to parse: %v", err)
		return
	}
	a.observeTimestamp(m.Timestamp)

	if _, ok := m.Content.(types.TrajectorySchematic); !ok {
		return
	}

	// the two projections are decoded independently from the same
	// envelope: failure of one does not block the other
	train, err := types.TrainFromContent(m.Content)
	if err != nil {
		a.TrainFailures++
		a.log.Printf("should be train: %v", err)
	} else {
		a.Trains++
		a.Delays.Add(train.Delay)
		a.States.Add(train.State)
		a.RideStates.Add(train.RideState)
		a.OriginalLines.Add(train.OriginalLine)
		a.Lines.Add(train.Line)
	}

	record, err := types.RecordFromMessage(m)
	if err != nil {
		a.RecordFailures++
	} else {
		a.Vehicles.Insert(record)
	}
}

func (a *Analysis) observeTimestamp(ts float64) {
	if ts == 0 {
		return
	}
	if a.FirstTimestamp == 0 || ts < a.FirstTimestamp {
		a.FirstTimestamp = ts
	}
	if ts > a.LastTimestamp {
		a.LastTimestamp = ts
	}
}

// Span returns the wall-clock interval covered by the scanned envelopes.
func (a *Analysis) Span() time.Duration {
	if a.LastTimestamp <= a.FirstTimestamp {
		return 0
	}
	return time.Duration((a.LastTimestamp - a.FirstTimestamp) * float64(time.Millisecond))
}

// Report writes the diagnostic summary of a finished scan.
func (a *Analysis) Report(w io.Writer) {
	fmt.Fprintln(w, "trains:", a.Trains)
	fmt.Fprintln(w, "vehicles:", a.Vehicles.VehicleCount())
	if span := a.Span(); span > 0 {
		fmt.Fprintln(w, "log spans:", durafmt.Parse(span.Truncate(time.Second)))
	}
	reportCounter(w, "delays", a.Delays)
	reportCounter(w, "states", a.States)
	reportCounter(w, "ride_states", a.RideStates)
	reportCounter(w, "original_lines", a.OriginalLines)

	lines := funk.Keys(a.Lines.Counts()).([]types.Line)
	names := make([]string, 0, len(lines))
	for _, l := range lines {
		names = append(names, l.Name)
	}
	sort.Strings(names)
	fmt.Fprintln(w, "lines:", strings.Join(names, " "))

	fmt.Fprintf(w, "skipped: parse=%d train=%d record=%d\n",
		a.ParseFailures, a.TrainFailures, a.RecordFailures)
}

func reportCounter[T comparable](w io.Writer, name string, c *Counter[T]) {
	buckets := make([]string, 0, len(c.Counts()))
	for value, n := range c.Counts() {
		buckets = append(buckets, fmt.Sprintf("%v=%d", value, n))
	}
	sort.Strings(buckets)
	fmt.Fprintf(w, "%s: no-value=%d", name, c.Missing())
	for _, b := range buckets {
		fmt.Fprintf(w, " %s", b)
	}
	fmt.Fprintln(w)
}
