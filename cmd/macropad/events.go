package main

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ============================================================================
// Event Types
// ============================================================================
// Events represent input from the IPC socket, the mode-select watchers and the
// state WebSocket. The scan loop in runDaemon is their only consumer.
// ============================================================================

// Event is a marker interface for everything the scan loop consumes.
type Event interface {
	eventMarker()
}

// errUnknownEvent is returned by UnmarshalEvent for an unrecognised type.
var errUnknownEvent = errors.New("unknown event type")

// PinLevels queues one raw sample on the virtual encoder.
type PinLevels struct {
	A bool `json:"a"`
	B bool `json:"b"`
}

func (PinLevels) eventMarker() {}

// Rotate queues the pin samples of one full detent on the virtual encoder.
type Rotate struct {
	Direction string `json:"direction"` // "cw" or "ccw"
}

func (Rotate) eventMarker() {}

// KeyPress is a matrix key going down.
type KeyPress struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (KeyPress) eventMarker() {}

// KeyRelease is a matrix key going up.
type KeyRelease struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (KeyRelease) eventMarker() {}

// ModeSelectTap is a press immediately followed by a release of the
// mode-select key.
type ModeSelectTap struct{}

func (ModeSelectTap) eventMarker() {}

// ModeSelectPress is the mode-select key going down.
type ModeSelectPress struct{}

func (ModeSelectPress) eventMarker() {}

// ModeSelectRelease is the mode-select key going up.
type ModeSelectRelease struct{}

func (ModeSelectRelease) eventMarker() {}

// RequestStateSnapshot asks the scan loop for its current state.
// Internal only; never sent over IPC.
type RequestStateSnapshot struct {
	Reply chan StateSnapshot
}

func (RequestStateSnapshot) eventMarker() {}

// ============================================================================
// JSON Encoding/Decoding Support
// ============================================================================

// EventEnvelope wraps an event with a type discriminator for JSON marshaling
type EventEnvelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// UnmarshalEvent deserializes a JSON event envelope into a concrete Event
func UnmarshalEvent(data []byte) (Event, error) {
	var env EventEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("unmarshal envelope: %w", err)
	}

	switch env.Type {
	case "pins":
		var e PinLevels
		if err := json.Unmarshal(env.Data, &e); err != nil {
			return nil, fmt.Errorf("unmarshal PinLevels: %w", err)
		}
		return e, nil

	case "rotate":
		var e Rotate
		if err := json.Unmarshal(env.Data, &e); err != nil {
			return nil, fmt.Errorf("unmarshal Rotate: %w", err)
		}
		if _, err := parseDirection(e.Direction); err != nil {
			return nil, err
		}
		return e, nil

	case "key_press":
		var e KeyPress
		if err := json.Unmarshal(env.Data, &e); err != nil {
			return nil, fmt.Errorf("unmarshal KeyPress: %w", err)
		}
		return e, nil

	case "key_release":
		var e KeyRelease
		if err := json.Unmarshal(env.Data, &e); err != nil {
			return nil, fmt.Errorf("unmarshal KeyRelease: %w", err)
		}
		return e, nil

	case "mode_select":
		return ModeSelectTap{}, nil
	case "mode_select_press":
		return ModeSelectPress{}, nil
	case "mode_select_release":
		return ModeSelectRelease{}, nil

	default:
		return nil, fmt.Errorf("%w: %q", errUnknownEvent, env.Type)
	}
}

// MarshalEvent serializes an Event into a JSON envelope with type discriminator
func MarshalEvent(e Event) ([]byte, error) {
	var env EventEnvelope

	switch e := e.(type) {
	case PinLevels:
		env.Type = "pins"
		data, err := json.Marshal(e)
		if err != nil {
			return nil, fmt.Errorf("marshal PinLevels: %w", err)
		}
		env.Data = data

	case Rotate:
		env.Type = "rotate"
		data, err := json.Marshal(e)
		if err != nil {
			return nil, fmt.Errorf("marshal Rotate: %w", err)
		}
		env.Data = data

	case KeyPress:
		env.Type = "key_press"
		data, err := json.Marshal(e)
		if err != nil {
			return nil, fmt.Errorf("marshal KeyPress: %w", err)
		}
		env.Data = data

	case KeyRelease:
		env.Type = "key_release"
		data, err := json.Marshal(e)
		if err != nil {
			return nil, fmt.Errorf("marshal KeyRelease: %w", err)
		}
		env.Data = data

	case ModeSelectTap:
		env.Type = "mode_select"
	case ModeSelectPress:
		env.Type = "mode_select_press"
	case ModeSelectRelease:
		env.Type = "mode_select_release"

	default:
		return nil, fmt.Errorf("unsupported event type: %T", e)
	}

	return json.Marshal(env)
}
