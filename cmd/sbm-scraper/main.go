// sbm-scraper maintains the streaming session with the geOps realtime
// feed and appends every received frame to the raw log. It runs until
// SIGINT or SIGTERM. The API key, and optionally a statsd target, come
// from the keybox secrets file.
package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gbl08ma/keybox"
	"github.com/spf13/pflag"
	statsd "gopkg.in/alexcesaro/statsd.v2"

	"github.com/livemapsbm/livemapsbm/rawlog"
	"github.com/livemapsbm/livemapsbm/scraper"
	"github.com/livemapsbm/livemapsbm/scraper/geopsscraper"
)

const feedURLFormat = "wss://api.geops.io/realtime-ws/v1/?key=%s"

var mainLog = log.New(os.Stdout, "", log.Ldate|log.Ltime)

func main() {
	var secretsPath, logPath string
	flags := pflag.NewFlagSet("sbm-scraper", pflag.ExitOnError)
	flags.StringVar(&secretsPath, "secrets", "secrets.json", "path to the keybox secrets file")
	flags.StringVar(&logPath, "log-file", "s-bahn-munich-live-map.jsonl", "path to the raw frame log")
	flags.Parse(os.Args[1:])

	mainLog.Println("Scraper starting, opening keybox...")
	secrets, err := keybox.Open(secretsPath)
	if err != nil {
		mainLog.Fatalln(err)
	}

	apiKey, present := secrets.Get("geopsAPIKey")
	if !present {
		mainLog.Fatalln("geOps API key not present in keybox")
	}

	writer, err := rawlog.OpenWriter(logPath)
	if err != nil {
		mainLog.Fatalln(err)
	}
	defer writer.Close()

	feeds := []scraper.FeedScraper{
		&geopsscraper.Scraper{
			URL:    fmt.Sprintf(feedURLFormat, apiKey),
			RawLog: writer,
			Statsd: statsdClient(secrets),
		},
	}
	for _, sc := range feeds {
		if err := sc.Init(log.New(os.Stdout, "geopsscraper", log.Ldate|log.Ltime)); err != nil {
			mainLog.Fatalln(err)
		}
		// no connection on first startup is the one fatal session error
		if err := sc.Begin(); err != nil {
			mainLog.Fatalln(sc.ID()+":", err)
		}
		mainLog.Println("Scraper " + sc.ID() + " running")
	}
	defer func() {
		for _, sc := range feeds {
			sc.End()
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	mainLog.Println("Scraper stopping")
}

// statsdClient builds the telemetry client, or nil when the keybox does
// not configure one.
func statsdClient(secrets *keybox.Keybox) *statsd.Client {
	address, present := secrets.Get("statsdAddress")
	prefix, present2 := secrets.Get("statsdPrefix")
	if !present || !present2 {
		return nil
	}
	c, err := statsd.New(statsd.Address(address), statsd.Prefix(prefix))
	if err != nil {
		// if nothing is listening on the target port the returned client
		// still works as a no-op, so log the error and go on
		mainLog.Println(err)
	}
	return c
}
