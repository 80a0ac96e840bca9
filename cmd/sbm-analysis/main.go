// sbm-analysis replays the raw frame log offline: it decodes every line,
// prints aggregate diagnostics to stdout, then opens the terminal
// playback viewer unless --no-viewer is given.
package main

import (
	"log"
	"os"

	"github.com/spf13/pflag"

	"github.com/livemapsbm/livemapsbm/compute"
	"github.com/livemapsbm/livemapsbm/viewer"
)

func main() {
	var logPath string
	var frames int
	var noViewer bool
	flags := pflag.NewFlagSet("sbm-analysis", pflag.ExitOnError)
	flags.StringVar(&logPath, "log-file", "s-bahn-munich-live-map.jsonl", "path to the raw frame log")
	flags.IntVar(&frames, "frames", 0, "replay wrap bound (default: longest vehicle timeline)")
	flags.BoolVar(&noViewer, "no-viewer", false, "print the report and exit without playback")
	flags.Parse(os.Args[1:])

	// decode diagnostics go to stderr so the report stays parseable
	scanLog := log.New(os.Stderr, "", log.Ldate|log.Ltime)

	analysis := compute.NewAnalysis(scanLog)
	if err := analysis.ScanLog(logPath); err != nil {
		scanLog.Fatalln(err)
	}
	analysis.Report(os.Stdout)

	if noViewer {
		return
	}
	bound := frames
	if bound <= 0 {
		bound = analysis.Vehicles.MaxTimeline()
	}
	if err := viewer.Run(analysis.Vehicles, bound); err != nil {
		scanLog.Fatalln(err)
	}
}
