// Package geopsscraper maintains a streaming session with a geOps
// realtime websocket feed and appends every received text frame verbatim
// to the raw log.
package geopsscraper

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gorilla/websocket"
	"github.com/hako/durafmt"
	statsd "gopkg.in/alexcesaro/statsd.v2"

	"github.com/livemapsbm/livemapsbm/rawlog"
)

// DefaultBBox is the spatial filter covering the Munich S-Bahn network,
// in the feed's web-mercator coordinates plus zoom level.
const DefaultBBox = "1152072 6048052 1433666 6205578 5"

// DefaultTopics is the topic set subscribed on connect, in send order.
var DefaultTopics = []string{
	"extra_geoms",
	"healthcheck",
	"sbm_newsticker",
	"station_schematic",
	"deleted_vehicles_schematic",
	"trajectory_schematic",
	"station",
	"deleted_vehicles",
	"trajectory",
}

// keepaliveInterval is the minimum spacing between PING frames. The
// keepalive is checked after each received frame rather than on a timer,
// so a completely silent connection is only detected once a read fails.
const keepaliveInterval = 10 * time.Second

// Scraper is a scraper for a geOps realtime vehicle position feed
type Scraper struct {
	running   bool
	stopChan  chan struct{}
	conn      *websocket.Conn
	log       *log.Logger
	lastFrame time.Time

	// URL is the wss endpoint, API key already embedded by the caller
	URL    string
	BBox   string
	Tenant string
	// Topics defaults to DefaultTopics
	Topics []string
	RawLog *rawlog.Writer
	// Statsd is optional; nil disables telemetry
	Statsd *statsd.Client
	Dialer *websocket.Dialer
}

// ID returns the ID of this scraper
func (sc *Scraper) ID() string {
	return "sc-geops-" + sc.Tenant
}

// Init initializes the scraper
func (sc *Scraper) Init(logger *log.Logger) error {
	sc.log = logger
	if sc.URL == "" {
		return errors.New("geopsscraper: URL not set")
	}
	if sc.RawLog == nil {
		return errors.New("geopsscraper: raw log not set")
	}
	if sc.Tenant == "" {
		sc.Tenant = "sbm"
	}
	if sc.BBox == "" {
		sc.BBox = DefaultBBox
	}
	if len(sc.Topics) == 0 {
		sc.Topics = DefaultTopics
	}
	if sc.Dialer == nil {
		sc.Dialer = websocket.DefaultDialer
	}
	return nil
}

// Begin establishes the first connection and starts the session loop.
// Only the first connection failure is an error: once the session is up,
// connection losses reconnect immediately and indefinitely until End is
// called. There is no backoff and no retry cap.
func (sc *Scraper) Begin() error {
	conn, err := sc.connect()
	if err != nil {
		return fmt.Errorf("geopsscraper: first connect: %w", err)
	}
	sc.conn = conn
	sc.stopChan = make(chan struct{})
	sc.running = true
	sc.log.Println("Session established, subscribed to", len(sc.Topics), "topics")
	go sc.sessionLoop(conn)
	return nil
}

// End stops the session loop. There is no unsubscribe handshake; the
// connection is simply closed.
func (sc *Scraper) End() {
	close(sc.stopChan)
	sc.running = false
	if sc.conn != nil {
		sc.conn.Close()
	}
}

// Running returns whether the scraper is running
func (sc *Scraper) Running() bool {
	return sc.running
}

// LastFrame returns the arrival time of the most recent logged frame.
func (sc *Scraper) LastFrame() time.Time {
	return sc.lastFrame
}

// connect dials the endpoint and performs the subscription handshake:
// spatial filter, buffering hint, a GET+SUB pair per topic, then the
// initial keepalive.
func (sc *Scraper) connect() (*websocket.Conn, error) {
	conn, _, err := sc.Dialer.Dial(sc.URL, nil)
	if err != nil {
		return nil, err
	}
	commands := []string{
		"BBOX " + sc.BBox + " tenant=" + sc.Tenant,
		"BUFFER 100 100",
	}
	for _, topic := range sc.Topics {
		commands = append(commands, "GET "+topic, "SUB "+topic)
	}
	commands = append(commands, "PING")
	for _, command := range commands {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(command)); err != nil {
			conn.Close()
			return nil, err
		}
	}
	return conn, nil
}

func (sc *Scraper) sessionLoop(conn *websocket.Conn) {
	connectedAt := time.Now()
	for {
		err := sc.readLoop(conn)
		conn.Close()
		select {
		case <-sc.stopChan:
			return
		default:
		}
		uptime := durafmt.Parse(time.Since(connectedAt).Truncate(time.Second))
		sc.log.Printf("Connection lost after %s: %v; reconnecting", uptime, err)
		sc.count("reconnects", 1)
		for {
			conn, err = sc.connect()
			if err == nil {
				break
			}
			sc.log.Println("Reconnect failed:", err)
			select {
			case <-sc.stopChan:
				return
			default:
			}
		}
		sc.conn = conn
		connectedAt = time.Now()
	}
}

// readLoop forwards text frames to the raw log until the connection
// fails or receives a close frame. Binary frames are ignored; transport
// pings and pongs never surface here.
func (sc *Scraper) readLoop(conn *websocket.Conn) error {
	lastPing := time.Now()
	for {
		kind, frame, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		if kind == websocket.TextMessage {
			if err := sc.RawLog.Append(string(frame)); err != nil {
				// losing frames defeats the whole point of the scraper
				sc.log.Fatalln("raw log append:", err)
			}
			sc.lastFrame = time.Now()
			sc.count("frames", 1)
		}
		if time.Since(lastPing) >= keepaliveInterval {
			if err := conn.WriteMessage(websocket.TextMessage, []byte("PING")); err != nil {
				return err
			}
			lastPing = time.Now()
			sc.count("pings", 1)
		}
	}
}

func (sc *Scraper) count(stat string, n int) {
	if sc.Statsd != nil {
		sc.Statsd.Count(stat, n)
	}
}
