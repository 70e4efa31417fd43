package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"macropad/internal/core"
)

// Config is the top-level YAML configuration for the macropad daemon.
//
// Defaults and validation live here so the rest of the code can assume a
// well-formed config.
type Config struct {
	// Rotary encoder input
	Encoder EncoderConfig `yaml:"encoder"`

	// Mode-select key sources (in addition to IPC)
	ModeSelect ModeSelectConfig `yaml:"mode_select"`

	// Scan loop rate and cycle counts
	Scan ScanConfig `yaml:"scan"`

	// RGB indicator
	Indicator IndicatorConfig `yaml:"indicator"`

	// Where synthesized keys go
	Output OutputConfig `yaml:"output"`

	// IPC configuration (used by macropad-ctl)
	IPC IPCConfig `yaml:"ipc"`

	// State WebSocket server
	StateWS StateWSConfig `yaml:"state_ws"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

type EncoderConfig struct {
	Backend string `yaml:"backend"` // "gpio" or "virtual"
	PinA    string `yaml:"pin_a,omitempty"`
	PinB    string `yaml:"pin_b,omitempty"`
}

type ModeSelectConfig struct {
	Pin         string `yaml:"pin,omitempty"`          // periph pin name, active low
	InputDevice string `yaml:"input_device,omitempty"` // evdev device path
	KeyCode     int    `yaml:"key_code,omitempty"`     // EV_KEY code on InputDevice
}

type ScanConfig struct {
	Hz              int `yaml:"hz"`
	InitDelayCycles int `yaml:"init_delay_cycles"`
	BlinkCycles     int `yaml:"blink_cycles"`
	ReleaseCycles   int `yaml:"release_cycles"`
}

type IndicatorConfig struct {
	Enabled    bool     `yaml:"enabled"`
	Brightness int      `yaml:"brightness"`
	Colors     []string `yaml:"colors,omitempty"` // "#rrggbb" per mode: numpad, media, macro
}

type OutputConfig struct {
	Backend    string `yaml:"backend"` // "uinput" or "log"
	UinputPath string `yaml:"uinput_path,omitempty"`
	DeviceName string `yaml:"device_name,omitempty"`
}

type IPCConfig struct {
	SocketPath string `yaml:"socket_path"`
}

type StateWSConfig struct {
	Listen string `yaml:"listen"` // empty disables the server
	Path   string `yaml:"path"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultConfig returns a fully-populated Config with defaults.
// Keep this aligned with constants.go.
func DefaultConfig() Config {
	timing := core.DefaultTiming()
	return Config{
		Encoder: EncoderConfig{
			Backend: defaultEncoderBackend,
			PinA:    defaultPinA,
			PinB:    defaultPinB,
		},
		ModeSelect: ModeSelectConfig{
			Pin: defaultModeSelectPin,
		},
		Scan: ScanConfig{
			Hz:              defaultScanHz,
			InitDelayCycles: timing.InitDelayCycles,
			BlinkCycles:     timing.BlinkCycles,
			ReleaseCycles:   timing.ReleaseCycles,
		},
		Indicator: IndicatorConfig{
			Enabled:    true,
			Brightness: core.DefaultBrightness,
		},
		Output: OutputConfig{
			Backend:    defaultOutputBackend,
			UinputPath: defaultUinputPath,
			DeviceName: defaultDeviceName,
		},
		IPC: IPCConfig{
			SocketPath: defaultSocketPath,
		},
		StateWS: StateWSConfig{
			Listen: defaultStateWSListen,
			Path:   defaultStateWSPath,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: string(LogFormatText),
		},
	}
}

// LoadConfigFile reads and parses a YAML config file on top of DefaultConfig.
// Unknown fields are rejected via KnownFields(true).
func LoadConfigFile(path string) (Config, error) {
	if path == "" {
		return Config{}, errors.New("config path is empty")
	}
	b, err := os.ReadFile(ExpandPath(path))
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}
	return parseConfig(b)
}

func parseConfig(b []byte) (Config, error) {
	cfg := DefaultConfig()

	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)

	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config yaml: %w", err)
	}

	// Only whitespace/comments are allowed after the document.
	var extra yaml.Node
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode config yaml: unexpected trailing document")
	}

	return cfg, nil
}

// FlagOverrides holds values from command-line flags. Each override is only
// applied when its pointer is non-nil.
type FlagOverrides struct {
	EncoderBackend *string
	EncoderPinA    *string
	EncoderPinB    *string

	ModeSelectPin    *string
	ModeSelectDevice *string

	ScanHz *int

	IndicatorEnabled    *bool
	IndicatorBrightness *int

	OutputBackend *string

	IPCSocketPath *string
	StateWSListen *string

	LogLevel  *string
	LogFormat *string
}

// Apply merges the overrides into cfg. A non-nil pointer is applied even if
// it holds a zero value.
func (o FlagOverrides) Apply(cfg *Config) {
	if cfg == nil {
		return
	}
	if o.EncoderBackend != nil {
		cfg.Encoder.Backend = *o.EncoderBackend
	}
	if o.EncoderPinA != nil {
		cfg.Encoder.PinA = *o.EncoderPinA
	}
	if o.EncoderPinB != nil {
		cfg.Encoder.PinB = *o.EncoderPinB
	}

	if o.ModeSelectPin != nil {
		cfg.ModeSelect.Pin = *o.ModeSelectPin
	}
	if o.ModeSelectDevice != nil {
		cfg.ModeSelect.InputDevice = *o.ModeSelectDevice
	}

	if o.ScanHz != nil {
		cfg.Scan.Hz = *o.ScanHz
	}

	if o.IndicatorEnabled != nil {
		cfg.Indicator.Enabled = *o.IndicatorEnabled
	}
	if o.IndicatorBrightness != nil {
		cfg.Indicator.Brightness = *o.IndicatorBrightness
	}

	if o.OutputBackend != nil {
		cfg.Output.Backend = *o.OutputBackend
	}

	if o.IPCSocketPath != nil {
		cfg.IPC.SocketPath = *o.IPCSocketPath
	}
	if o.StateWSListen != nil {
		cfg.StateWS.Listen = *o.StateWSListen
	}

	if o.LogLevel != nil {
		cfg.Logging.Level = *o.LogLevel
	}
	if o.LogFormat != nil {
		cfg.Logging.Format = *o.LogFormat
	}
}

// Validate checks config invariants and returns a user-friendly error.
// Call it after defaults + file + overrides are applied.
func (c *Config) Validate() error {
	// Encoder
	switch c.Encoder.Backend {
	case "gpio":
		if c.Encoder.PinA == "" || c.Encoder.PinB == "" {
			return errors.New("encoder.pin_a and encoder.pin_b are required for the gpio backend")
		}
		if c.Encoder.PinA == c.Encoder.PinB {
			return errors.New("encoder.pin_a and encoder.pin_b must differ")
		}
	case "virtual":
	default:
		return fmt.Errorf("encoder.backend must be %q or %q", "gpio", "virtual")
	}

	// Mode select
	if c.ModeSelect.InputDevice != "" && c.ModeSelect.KeyCode <= 0 {
		return errors.New("mode_select.key_code must be > 0 when mode_select.input_device is set")
	}

	// Scan
	if c.Scan.Hz <= 0 || c.Scan.Hz > 1000 {
		return errors.New("scan.hz must be between 1 and 1000")
	}
	if c.Scan.InitDelayCycles < 0 {
		return errors.New("scan.init_delay_cycles must be >= 0")
	}
	if c.Scan.BlinkCycles <= 0 {
		return errors.New("scan.blink_cycles must be > 0")
	}
	if c.Scan.ReleaseCycles <= 0 {
		return errors.New("scan.release_cycles must be > 0")
	}

	// Indicator
	if c.Indicator.Brightness < 0 || c.Indicator.Brightness > 100 {
		return errors.New("indicator.brightness must be between 0 and 100")
	}
	if n := len(c.Indicator.Colors); n != 0 && n != core.ModeCount {
		return fmt.Errorf("indicator.colors must list %d colors (got %d)", core.ModeCount, n)
	}
	for i, s := range c.Indicator.Colors {
		if _, err := parseHexColor(s); err != nil {
			return fmt.Errorf("indicator.colors[%d]: %w", i, err)
		}
	}

	// Output
	switch c.Output.Backend {
	case "uinput":
		if c.Output.UinputPath == "" {
			return errors.New("output.uinput_path must not be empty")
		}
		if c.Output.DeviceName == "" {
			return errors.New("output.device_name must not be empty")
		}
	case "log":
	default:
		return fmt.Errorf("output.backend must be %q or %q", "uinput", "log")
	}

	// IPC
	if c.IPC.SocketPath == "" {
		return errors.New("ipc.socket_path must not be empty")
	}

	// State WS
	if c.StateWS.Listen != "" && !strings.HasPrefix(c.StateWS.Path, "/") {
		return errors.New("state_ws.path must start with /")
	}

	// Logging
	if _, err := parseLogLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	if _, err := parseLogFormat(c.Logging.Format); err != nil {
		return fmt.Errorf("logging.format: %w", err)
	}

	return nil
}

// ToPadConfig converts the file config into the core pad configuration.
func (c *Config) ToPadConfig() (core.Config, error) {
	cfg := core.DefaultConfig()
	cfg.Timing = core.Timing{
		InitDelayCycles: c.Scan.InitDelayCycles,
		BlinkCycles:     c.Scan.BlinkCycles,
		ReleaseCycles:   c.Scan.ReleaseCycles,
	}
	cfg.Brightness = c.Indicator.Brightness

	if len(c.Indicator.Colors) == 0 {
		return cfg, nil
	}
	if len(c.Indicator.Colors) != core.ModeCount {
		return core.Config{}, fmt.Errorf("indicator.colors must list %d colors", core.ModeCount)
	}
	for i, s := range c.Indicator.Colors {
		col, err := parseHexColor(s)
		if err != nil {
			return core.Config{}, fmt.Errorf("indicator.colors[%d]: %w", i, err)
		}
		cfg.Colors[i] = col
	}
	return cfg, nil
}

// parseHexColor parses "#rrggbb" (the leading # is optional).
func parseHexColor(s string) (core.Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return core.Color{}, fmt.Errorf("invalid color %q (want #rrggbb)", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return core.Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return core.Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// ExpandPath expands a leading "~" in a path using $HOME.
func ExpandPath(p string) string {
	if p == "" {
		return p
	}
	if p[0] != '~' {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	if p == "~" {
		return home
	}
	if len(p) >= 2 && (p[1] == '/' || p[1] == '\\') {
		return filepath.Join(home, p[2:])
	}
	return p
}
