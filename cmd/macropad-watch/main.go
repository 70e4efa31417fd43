package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
)

// macropad-watch prints the daemon's state stream in a human-readable form.

func main() {
	var (
		wsURL = flag.String("ws", "ws://127.0.0.1:3002/ws/state", "macropad state WebSocket URL")
		raw   = flag.Bool("raw", false, "Print frames as received")
		keys  = flag.Bool("keys", true, "Print key_down/key_up frames")
	)
	flag.Parse()

	u, err := url.Parse(*wsURL)
	if err != nil {
		log.Fatalf("invalid websocket URL: %v", err)
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)

	d := websocket.Dialer{
		HandshakeTimeout: 5 * time.Second,
	}

	log.Printf("connecting to %s...", u.String())
	conn, _, err := d.Dial(u.String(), nil)
	if err != nil {
		log.Fatalf("failed to connect: %v", err)
	}
	defer conn.Close()

	log.Printf("connected! (press Ctrl+C to exit)")

	// Serializes writes: pings and the final close frame.
	var writeMu sync.Mutex

	// The daemon pings every 20s.
	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPingHandler(func(appData string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		writeMu.Lock()
		defer writeMu.Unlock()
		return conn.WriteControl(websocket.PongMessage, []byte(appData), time.Now().Add(5*time.Second))
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			messageType, message, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Printf("websocket error: %v", err)
				}
				return
			}
			conn.SetReadDeadline(time.Now().Add(60 * time.Second))

			if messageType != websocket.TextMessage {
				fmt.Printf("[BINARY] %d bytes\n", len(message))
				continue
			}
			if *raw {
				fmt.Println(string(message))
				continue
			}
			if line, ok := formatFrame(message, *keys); ok {
				fmt.Println(line)
			}
		}
	}()

	select {
	case <-sigc:
		log.Printf("shutting down...")
		writeMu.Lock()
		err := conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		writeMu.Unlock()
		if err != nil {
			log.Printf("error closing connection: %v", err)
		}
	case <-done:
		log.Printf("connection closed")
	}
}

type frame struct {
	Type string          `json:"type"`
	Ts   time.Time       `json:"ts"`
	Data json.RawMessage `json:"data"`
}

type color struct {
	R, G, B uint8
}

func (c color) String() string { return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B) }

// formatFrame renders one state frame. ok is false for frames that should
// not be printed.
func formatFrame(message []byte, showKeys bool) (string, bool) {
	var f frame
	if err := json.Unmarshal(message, &f); err != nil {
		return fmt.Sprintf("[TEXT] %s", message), true
	}
	ts := f.Ts.Local().Format("15:04:05.000")

	switch f.Type {
	case "state_init":
		var d struct {
			Mode       string `json:"mode"`
			Layer      int    `json:"layer"`
			Selecting  bool   `json:"selecting"`
			Indicator  *color `json:"indicator"`
			PendingKey string `json:"pending_key"`
		}
		if err := json.Unmarshal(f.Data, &d); err != nil {
			break
		}
		led := "unset"
		if d.Indicator != nil {
			led = d.Indicator.String()
		}
		return fmt.Sprintf("%s [STATE] mode=%s layer=%d selecting=%t led=%s pending=%q",
			ts, d.Mode, d.Layer, d.Selecting, led, d.PendingKey), true

	case "mode_changed":
		var d struct {
			Mode  string `json:"mode"`
			Layer int    `json:"layer"`
		}
		if err := json.Unmarshal(f.Data, &d); err != nil {
			break
		}
		return fmt.Sprintf("%s [MODE] %s (layer %d)", ts, d.Mode, d.Layer), true

	case "selecting_changed":
		var d struct {
			Selecting bool `json:"selecting"`
		}
		if err := json.Unmarshal(f.Data, &d); err != nil {
			break
		}
		state := "OFF"
		if d.Selecting {
			state = "ON"
		}
		return fmt.Sprintf("%s [SELECT] %s", ts, state), true

	case "indicator_changed":
		var d struct {
			Color color `json:"color"`
		}
		if err := json.Unmarshal(f.Data, &d); err != nil {
			break
		}
		return fmt.Sprintf("%s [LED] %s", ts, d.Color), true

	case "key_down", "key_up":
		if !showKeys {
			return "", false
		}
		var d struct {
			Key string `json:"key"`
		}
		if err := json.Unmarshal(f.Data, &d); err != nil {
			break
		}
		dir := "DOWN"
		if f.Type == "key_up" {
			dir = "UP"
		}
		return fmt.Sprintf("%s [KEY] %-4s %s", ts, dir, d.Key), true
	}

	return fmt.Sprintf("%s [%s] %s", ts, f.Type, f.Data), true
}
