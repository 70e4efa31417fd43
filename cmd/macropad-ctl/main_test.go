package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"net"
	"path/filepath"
	"testing"
)

func TestParseCommand_RotateRepeats(t *testing.T) {
	envs, err := parseCommand([]string{"ccw", "3"})
	if err != nil {
		t.Fatalf("parseCommand: %v", err)
	}
	if len(envs) != 3 {
		t.Fatalf("expected 3 envelopes, got %d", len(envs))
	}
	for _, env := range envs {
		if env.Type != "rotate" || string(env.Data) != `{"direction":"ccw"}` {
			t.Fatalf("unexpected envelope %s %s", env.Type, env.Data)
		}
	}
}

func TestParseCommand_TapIsPressThenRelease(t *testing.T) {
	envs, err := parseCommand([]string{"tap", "4", "0"})
	if err != nil {
		t.Fatalf("parseCommand: %v", err)
	}
	if len(envs) != 2 || envs[0].Type != "key_press" || envs[1].Type != "key_release" {
		t.Fatalf("unexpected envelopes %+v", envs)
	}
	if string(envs[0].Data) != `{"row":4,"col":0}` {
		t.Fatalf("unexpected payload %s", envs[0].Data)
	}
}

func TestParseCommand_Pins(t *testing.T) {
	envs, err := parseCommand([]string{"pins", "0", "1"})
	if err != nil {
		t.Fatalf("parseCommand: %v", err)
	}
	if string(envs[0].Data) != `{"a":false,"b":true}` {
		t.Fatalf("unexpected payload %s", envs[0].Data)
	}
}

func TestParseCommand_UsageErrors(t *testing.T) {
	for _, args := range [][]string{
		{"spin"},
		{"cw", "0"},
		{"press", "1"},
		{"release", "a", "b"},
		{"pins", "1"},
		{"pins", "high", "low"},
	} {
		if _, err := parseCommand(args); !errors.Is(err, errUsage) {
			t.Errorf("%v: expected usage error, got %v", args, err)
		}
	}
}

func TestSend_StopsOnDaemonError(t *testing.T) {
	sock := filepath.Join(t.TempDir(), "ctl.sock")
	ln, err := net.Listen("unix", sock)
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	received := make(chan string, 4)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		scanner := bufio.NewScanner(conn)
		enc := json.NewEncoder(conn)
		for scanner.Scan() {
			received <- scanner.Text()
			_ = enc.Encode(ipcResponse{Status: "error", Error: "event queue full"})
		}
	}()

	envs, _ := parseCommand([]string{"cw", "2"})
	err = send(sock, envs)
	if err == nil || err.Error() != "daemon error: event queue full" {
		t.Fatalf("expected daemon error, got %v", err)
	}
	if got := <-received; got != `{"type":"rotate","data":{"direction":"cw"}}` {
		t.Fatalf("unexpected line %s", got)
	}
	if len(received) != 0 {
		t.Fatalf("second event should not be sent after an error")
	}
}
