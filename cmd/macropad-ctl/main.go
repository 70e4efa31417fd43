package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
)

// ============================================================================
// macropad-ctl - Command-line IPC Client
// ============================================================================
// Sends encoder, matrix and mode-select events to the macropad daemon.
//
// Usage:
//   macropad-ctl cw [N]
//   macropad-ctl mode-select
//   macropad-ctl press 1 0
//
// Options:
//   -socket PATH    Unix domain socket path (default: /tmp/macropad.sock)
// ============================================================================

const defaultSocketPath = "/tmp/macropad.sock"

// Event payloads (duplicated from the daemon for a standalone binary)

type pinLevels struct {
	A bool `json:"a"`
	B bool `json:"b"`
}

type rotate struct {
	Direction string `json:"direction"`
}

type keyPos struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// eventEnvelope wraps events for JSON
type eventEnvelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// ipcResponse represents the daemon's response
type ipcResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

var errUsage = errors.New("usage")

func main() {
	socketPath := defaultSocketPath

	args := os.Args[1:]
	if len(args) > 0 && (args[0] == "-socket" || args[0] == "--socket") {
		if len(args) < 2 {
			fmt.Fprintf(os.Stderr, "error: -socket requires an argument\n")
			os.Exit(1)
		}
		socketPath = args[1]
		args = args[2:]
	}

	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	if args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		printUsage()
		return
	}

	envs, err := parseCommand(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		if errors.Is(err, errUsage) {
			printUsage()
		}
		os.Exit(1)
	}

	if err := send(socketPath, envs); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("ok")
}

// parseCommand turns command-line arguments into the envelopes to send.
func parseCommand(args []string) ([]eventEnvelope, error) {
	switch args[0] {
	case "cw", "ccw":
		n := 1
		if len(args) > 1 {
			v, err := strconv.Atoi(args[1])
			if err != nil || v < 1 {
				return nil, fmt.Errorf("%w: %s count must be a positive integer", errUsage, args[0])
			}
			n = v
		}
		env, err := newEnvelope("rotate", rotate{Direction: args[0]})
		if err != nil {
			return nil, err
		}
		envs := make([]eventEnvelope, n)
		for i := range envs {
			envs[i] = env
		}
		return envs, nil

	case "mode-select", "mode":
		return []eventEnvelope{{Type: "mode_select"}}, nil

	case "press", "release", "tap":
		pos, err := parsePos(args)
		if err != nil {
			return nil, err
		}
		press, err := newEnvelope("key_press", pos)
		if err != nil {
			return nil, err
		}
		release, err := newEnvelope("key_release", pos)
		if err != nil {
			return nil, err
		}
		switch args[0] {
		case "press":
			return []eventEnvelope{press}, nil
		case "release":
			return []eventEnvelope{release}, nil
		default:
			return []eventEnvelope{press, release}, nil
		}

	case "pins":
		if len(args) < 3 {
			return nil, fmt.Errorf("%w: pins requires A and B levels (0 or 1)", errUsage)
		}
		a, errA := strconv.ParseBool(args[1])
		b, errB := strconv.ParseBool(args[2])
		if errA != nil || errB != nil {
			return nil, fmt.Errorf("%w: pin levels must be 0 or 1", errUsage)
		}
		env, err := newEnvelope("pins", pinLevels{A: a, B: b})
		if err != nil {
			return nil, err
		}
		return []eventEnvelope{env}, nil

	default:
		return nil, fmt.Errorf("%w: unknown command: %s", errUsage, args[0])
	}
}

func parsePos(args []string) (keyPos, error) {
	if len(args) < 3 {
		return keyPos{}, fmt.Errorf("%w: %s requires ROW and COL", errUsage, args[0])
	}
	row, errR := strconv.Atoi(args[1])
	col, errC := strconv.Atoi(args[2])
	if errR != nil || errC != nil {
		return keyPos{}, fmt.Errorf("%w: ROW and COL must be integers", errUsage)
	}
	return keyPos{Row: row, Col: col}, nil
}

func newEnvelope(typ string, payload any) (eventEnvelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return eventEnvelope{}, fmt.Errorf("marshal %s: %w", typ, err)
	}
	return eventEnvelope{Type: typ, Data: data}, nil
}

// send writes every envelope on one connection, waiting for each reply.
func send(socketPath string, envs []eventEnvelope) error {
	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", socketPath, err)
	}
	defer conn.Close()

	decoder := json.NewDecoder(conn)
	for _, env := range envs {
		data, err := json.Marshal(env)
		if err != nil {
			return fmt.Errorf("marshal event: %w", err)
		}

		// Line-delimited JSON
		if _, err := fmt.Fprintf(conn, "%s\n", data); err != nil {
			return fmt.Errorf("send event: %w", err)
		}

		var response ipcResponse
		if err := decoder.Decode(&response); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		if response.Status == "error" {
			return fmt.Errorf("daemon error: %s", response.Error)
		}
	}

	return nil
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `macropad-ctl - Drive the macropad daemon via IPC

Usage:
  macropad-ctl [options] <command> [args]

Options:
  -socket PATH    Unix domain socket path (default: %s)

Commands:
  cw [N], ccw [N]         Turn the virtual encoder N detents (default 1)
  mode-select, mode       Tap the mode-select key
  press ROW COL           Press the matrix key at ROW, COL
  release ROW COL         Release the matrix key at ROW, COL
  tap ROW COL             Press and release the matrix key
  pins A B                Feed one raw encoder sample (0 or 1 per line)
  help, -h, --help        Show this help message

Examples:
  macropad-ctl cw 3
  macropad-ctl mode-select && macropad-ctl ccw && macropad-ctl mode-select
  macropad-ctl -socket /run/macropad.sock tap 4 0
`, defaultSocketPath)
}
