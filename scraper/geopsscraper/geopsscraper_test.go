package geopsscraper

import (
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/livemapsbm/livemapsbm/rawlog"
)

var upgrader = websocket.Upgrader{}

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

// handshakeCommands is what every session must send on connect, in order.
func handshakeCommands() []string {
	commands := []string{
		"BBOX " + DefaultBBox + " tenant=sbm",
		"BUFFER 100 100",
	}
	for _, topic := range DefaultTopics {
		commands = append(commands, "GET "+topic, "SUB "+topic)
	}
	return append(commands, "PING")
}

func waitForLog(t *testing.T, path string, want ...string) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for {
		data, _ := os.ReadFile(path)
		content := string(data)
		missing := false
		for _, w := range want {
			if !strings.Contains(content, w) {
				missing = true
			}
		}
		if !missing {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("log never contained %q, have:\n%s", want, content)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestSessionHandshakeAndLogging(t *testing.T) {
	received := make(chan string, 64)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for range handshakeCommands() {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				return
			}
			received <- string(msg)
		}
		conn.WriteMessage(websocket.TextMessage, []byte(`{"source": "healthcheck", "content": {"service": "tralis", "healthy": true}, "timestamp": 1, "client_reference": null}`))
		conn.WriteMessage(websocket.BinaryMessage, []byte{0x00, 0x01})
		conn.WriteMessage(websocket.TextMessage, []byte(`{"source": "websocket", "content": "PONG", "timestamp": 2, "client_reference": null}`))
		// hold the session open until the client goes away
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	logPath := filepath.Join(t.TempDir(), "frames.jsonl")
	writer, err := rawlog.OpenWriter(logPath)
	if err != nil {
		t.Fatal(err)
	}
	defer writer.Close()

	sc := &Scraper{
		URL:    "ws" + strings.TrimPrefix(srv.URL, "http"),
		RawLog: writer,
	}
	if err := sc.Init(testLogger()); err != nil {
		t.Fatal(err)
	}
	if err := sc.Begin(); err != nil {
		t.Fatal(err)
	}
	defer sc.End()

	for i, want := range handshakeCommands() {
		select {
		case got := <-received:
			if got != want {
				t.Errorf("command %d: got %q, want %q", i, got, want)
			}
		case <-time.After(5 * time.Second):
			t.Fatalf("timed out waiting for command %d (%q)", i, want)
		}
	}

	// both text frames reach the log verbatim; the binary frame does not
	waitForLog(t, logPath, `"source": "healthcheck"`, `"content": "PONG"`)
	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 2 {
		t.Errorf("log lines: got %d, want 2:\n%s", len(lines), data)
	}
}

func TestSessionReconnectsImmediately(t *testing.T) {
	var dials int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&dials, 1)
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for range handshakeCommands() {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
		if n == 1 {
			// drop the first session right after the handshake
			return
		}
		conn.WriteMessage(websocket.TextMessage, []byte("after reconnect"))
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	logPath := filepath.Join(t.TempDir(), "frames.jsonl")
	writer, err := rawlog.OpenWriter(logPath)
	if err != nil {
		t.Fatal(err)
	}
	defer writer.Close()

	sc := &Scraper{
		URL:    "ws" + strings.TrimPrefix(srv.URL, "http"),
		RawLog: writer,
	}
	if err := sc.Init(testLogger()); err != nil {
		t.Fatal(err)
	}
	if err := sc.Begin(); err != nil {
		t.Fatal(err)
	}
	defer sc.End()

	waitForLog(t, logPath, "after reconnect")
	if atomic.LoadInt32(&dials) < 2 {
		t.Errorf("dials: got %d, want at least 2", dials)
	}
}

func TestBeginFailsWithoutServer(t *testing.T) {
	writer, err := rawlog.OpenWriter(filepath.Join(t.TempDir(), "frames.jsonl"))
	if err != nil {
		t.Fatal(err)
	}
	defer writer.Close()

	sc := &Scraper{
		// nothing listens here
		URL:    "ws://127.0.0.1:1/",
		RawLog: writer,
	}
	if err := sc.Init(testLogger()); err != nil {
		t.Fatal(err)
	}
	if err := sc.Begin(); err == nil {
		sc.End()
		t.Fatal("want error when no connection can be established on startup")
	}
}

func TestInitValidatesConfig(t *testing.T) {
	sc := &Scraper{}
	if err := sc.Init(testLogger()); err == nil {
		t.Error("want error for missing URL")
	}
	writer, err := rawlog.OpenWriter(filepath.Join(t.TempDir(), "frames.jsonl"))
	if err != nil {
		t.Fatal(err)
	}
	defer writer.Close()
	sc = &Scraper{URL: "wss://example.invalid/", RawLog: writer}
	if err := sc.Init(testLogger()); err != nil {
		t.Fatal(err)
	}
	if sc.Tenant != "sbm" || sc.BBox != DefaultBBox || len(sc.Topics) != len(DefaultTopics) {
		t.Errorf("defaults not applied: tenant=%q bbox=%q topics=%d", sc.Tenant, sc.BBox, len(sc.Topics))
	}
	if sc.ID() != "sc-geops-sbm" {
		t.Errorf("id: got %q", sc.ID())
	}
}
