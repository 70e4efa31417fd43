package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"macropad/internal/core"
)

const version = "1.0.0"

func printVersion() {
	fmt.Printf("macropad v%s\n", version)
	fmt.Println("Rotary-encoder macro pad daemon: modes, RGB indicator and synthesized keys")
}

func printUsage() {
	printVersion()
	fmt.Println()
	fmt.Println("USAGE:")
	fmt.Println("  macropad [OPTIONS]")
	fmt.Println("  macropad keymap")
	fmt.Println()
	fmt.Println("DESCRIPTION:")
	fmt.Println("  Scans a rotary encoder and a 5x4 key matrix. The encoder sends volume")
	fmt.Println("  up/down; after the mode-select key it cycles Numpad/Media/Macro instead,")
	fmt.Println("  blinking the indicator until mode-select is pressed again.")
	fmt.Println()
	fmt.Println("OPTIONS:")
	fmt.Println("  -config string")
	fmt.Println("        YAML config file (flags below override it)")
	fmt.Println()
	fmt.Println("  -encoder-backend string")
	fmt.Printf("        Encoder input: gpio|virtual (default %q)\n", defaultEncoderBackend)
	fmt.Println()
	fmt.Println("  -encoder-pin-a string / -encoder-pin-b string")
	fmt.Printf("        GPIO pin names for the encoder (default %q / %q)\n", defaultPinA, defaultPinB)
	fmt.Println()
	fmt.Println("  -mode-select-pin string")
	fmt.Printf("        GPIO pin of the mode-select key, empty disables (default %q)\n", defaultModeSelectPin)
	fmt.Println()
	fmt.Println("  -mode-select-device string")
	fmt.Println("        Linux input event device carrying the mode-select key")
	fmt.Println()
	fmt.Println("  -scan-hz int")
	fmt.Printf("        Scan cycles per second (default %d)\n", defaultScanHz)
	fmt.Println()
	fmt.Println("  -indicator")
	fmt.Println("        Publish the RGB indicator on the state stream (default true)")
	fmt.Println()
	fmt.Println("  -brightness int")
	fmt.Printf("        Indicator brightness in percent (default %d)\n", core.DefaultBrightness)
	fmt.Println()
	fmt.Println("  -output string")
	fmt.Printf("        Key output: uinput|log (default %q)\n", defaultOutputBackend)
	fmt.Println()
	fmt.Println("  -ipc-socket string")
	fmt.Printf("        Unix domain socket path for IPC (default %q)\n", defaultSocketPath)
	fmt.Println()
	fmt.Println("  -state-ws-listen string")
	fmt.Printf("        State WebSocket listen address, empty disables (default %q)\n", defaultStateWSListen)
	fmt.Println()
	fmt.Println("  -log-level string")
	fmt.Println("        Log level: error, warn, info, debug (default \"info\")")
	fmt.Println()
	fmt.Println("  -log-format string")
	fmt.Println("        Log format: text, pretty (default \"text\")")
	fmt.Println()
	fmt.Println("  -version")
	fmt.Println("        Print version and exit")
	fmt.Println()
	fmt.Println("  -help")
	fmt.Println("        Print this help message")
	fmt.Println()
	fmt.Println("EXAMPLES:")
	fmt.Println("  # Raspberry Pi with the encoder on GPIO17/27")
	fmt.Println("  macropad -config /etc/macropad.yaml")
	fmt.Println()
	fmt.Println("  # No hardware: drive it with macropad-ctl, log keys instead of typing them")
	fmt.Println("  macropad -encoder-backend virtual -mode-select-pin '' -output log")
	fmt.Println()
	fmt.Println("NOTES:")
	fmt.Println("  - uinput output needs write access to /dev/uinput")
}

func main() {
	if len(os.Args) > 1 && os.Args[1] == "keymap" {
		printKeymap(os.Stdout, core.DefaultKeymap())
		return
	}

	var (
		configPath = flag.String("config", "", "YAML config file")

		encoderBackend   = flag.String("encoder-backend", defaultEncoderBackend, "Encoder input: gpio|virtual")
		encoderPinA      = flag.String("encoder-pin-a", defaultPinA, "GPIO pin name for encoder line A")
		encoderPinB      = flag.String("encoder-pin-b", defaultPinB, "GPIO pin name for encoder line B")
		modeSelectPin    = flag.String("mode-select-pin", defaultModeSelectPin, "GPIO pin of the mode-select key (empty disables)")
		modeSelectDevice = flag.String("mode-select-device", "", "Linux input event device carrying the mode-select key")
		scanHz           = flag.Int("scan-hz", defaultScanHz, "Scan cycles per second")
		indicator        = flag.Bool("indicator", true, "Publish the RGB indicator on the state stream")
		brightness       = flag.Int("brightness", core.DefaultBrightness, "Indicator brightness in percent")
		output           = flag.String("output", defaultOutputBackend, "Key output: uinput|log")
		ipcSocketPath    = flag.String("ipc-socket", defaultSocketPath, "Unix domain socket path for IPC")
		stateWSListen    = flag.String("state-ws-listen", defaultStateWSListen, "State WebSocket listen address (empty disables)")
		logLevelStr      = flag.String("log-level", "info", "Log level: error, warn, info, debug")
		logFormatStr     = flag.String("log-format", "text", "Log format: text, pretty")
		showVersion      = flag.Bool("version", false, "Print version and exit")
		showHelp         = flag.Bool("help", false, "Print help message")
	)

	flag.Usage = printUsage
	flag.Parse()

	if *showHelp {
		printUsage()
		return
	}
	if *showVersion {
		printVersion()
		return
	}

	// Only flags given on the command line override the config file.
	var overrides FlagOverrides
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "encoder-backend":
			overrides.EncoderBackend = encoderBackend
		case "encoder-pin-a":
			overrides.EncoderPinA = encoderPinA
		case "encoder-pin-b":
			overrides.EncoderPinB = encoderPinB
		case "mode-select-pin":
			overrides.ModeSelectPin = modeSelectPin
		case "mode-select-device":
			overrides.ModeSelectDevice = modeSelectDevice
		case "scan-hz":
			overrides.ScanHz = scanHz
		case "indicator":
			overrides.IndicatorEnabled = indicator
		case "brightness":
			overrides.IndicatorBrightness = brightness
		case "output":
			overrides.OutputBackend = output
		case "ipc-socket":
			overrides.IPCSocketPath = ipcSocketPath
		case "state-ws-listen":
			overrides.StateWSListen = stateWSListen
		case "log-level":
			overrides.LogLevel = logLevelStr
		case "log-format":
			overrides.LogFormat = logFormatStr
		}
	})

	cfg := DefaultConfig()
	if *configPath != "" {
		loaded, err := LoadConfigFile(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	overrides.Apply(&cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "error: invalid config:", err)
		os.Exit(1)
	}

	logLevel, _ := parseLogLevel(cfg.Logging.Level)
	logFormat, _ := parseLogFormat(cfg.Logging.Format)
	logger := setupLogger(logLevel, logFormat)

	if err := run(cfg, logger); err != nil {
		logger.Error("macropad stopped", "error", err)
		os.Exit(1)
	}
}

// run wires the configured components together and blocks until a signal
// or a fatal component error.
func run(cfg Config, logger *slog.Logger) error {
	padCfg, err := cfg.ToPadConfig()
	if err != nil {
		return fmt.Errorf("pad config: %w", err)
	}

	broadcasts := make(chan StateBroadcast, 256)
	events := make(chan Event, 64)

	// Key output
	var sink core.KeySink
	switch cfg.Output.Backend {
	case "uinput":
		u, err := openUinput(cfg.Output.UinputPath, cfg.Output.DeviceName, logger)
		if err != nil {
			return fmt.Errorf("open uinput: %w", err)
		}
		defer u.Close()
		sink = u
	default:
		sink = logSink{logger: logger}
	}
	sink = newBroadcastingSink(sink, broadcasts)

	// Indicator
	var px core.Pixel
	if cfg.Indicator.Enabled {
		px = newHubPixel(broadcasts)
	}

	// Encoder
	var pins core.Pins
	var vpins *virtualPins
	switch cfg.Encoder.Backend {
	case "gpio":
		gp, err := openGPIOPins(cfg.Encoder.PinA, cfg.Encoder.PinB)
		if err != nil {
			return fmt.Errorf("open encoder pins: %w", err)
		}
		defer gp.Close()
		pins = gp
	default:
		vpins = newVirtualPins()
		pins = vpins
	}

	pad := core.New(pins, sink, px, padCfg, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return runDaemon(gctx, events, pad, vpins, cfg.Scan.Hz, broadcasts, logger)
	})

	g.Go(func() error {
		return runIPCServer(gctx, cfg.IPC.SocketPath, events, logger)
	})

	if cfg.ModeSelect.Pin != "" {
		g.Go(optionalInput("mode-select pin", logger, func() error {
			return watchModeSelectPin(gctx, cfg.ModeSelect.Pin, events, logger)
		}))
	}
	if cfg.ModeSelect.InputDevice != "" {
		g.Go(optionalInput("mode-select device", logger, func() error {
			return readModeKeyEpoll(gctx, cfg.ModeSelect.InputDevice, cfg.ModeSelect.KeyCode, events, logger)
		}))
	}

	if cfg.StateWS.Listen != "" {
		startStateWS(gctx, g, cfg.StateWS, events, broadcasts, logger)
	} else {
		// Nobody listens; keep the channel drained.
		g.Go(func() error {
			for {
				select {
				case <-gctx.Done():
					return nil
				case <-broadcasts:
				}
			}
		})
	}

	logger.Info("listening",
		"encoder", cfg.Encoder.Backend,
		"output", cfg.Output.Backend,
		"ipc", cfg.IPC.SocketPath,
		"state_ws", cfg.StateWS.Listen,
		"scan_hz", cfg.Scan.Hz)

	err = g.Wait()
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("shutting down")
	return nil
}

func startStateWS(ctx context.Context, g *errgroup.Group, cfg StateWSConfig, events chan<- Event, broadcasts <-chan StateBroadcast, logger *slog.Logger) {
	srv := NewServer(logger, events, ServerConfig{})
	mux := http.NewServeMux()
	srv.Register(mux, cfg.Path)

	httpSrv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g.Go(func() error {
		srv.Hub().Run(ctx)
		return nil
	})
	g.Go(func() error {
		RunBroadcaster(ctx, srv.Hub(), broadcasts, logger)
		return nil
	})
	g.Go(func() error {
		logger.Info("state ws listening", "addr", cfg.Listen, "path", cfg.Path)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("state ws server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	})
}

// printKeymap writes every layer as a Rows x Cols grid.
func printKeymap(w io.Writer, km core.Keymap) {
	for layer := 0; layer < core.ModeCount; layer++ {
		fmt.Fprintf(w, "layer %d (%s)\n", layer, core.Mode(layer))
		for row := 0; row < core.Rows; row++ {
			cells := make([]string, core.Cols)
			for col := 0; col < core.Cols; col++ {
				cells[col] = fmt.Sprintf("%-14s", km.Lookup(layer, row, col))
			}
			fmt.Fprintln(w, "  "+strings.TrimRight(strings.Join(cells, " "), " "))
		}
	}
}

// optionalInput wraps an auxiliary input source so that its failure is logged
// and the daemon keeps scanning and emitting keys without it.
func optionalInput(name string, logger *slog.Logger, run func() error) func() error {
	return func() error {
		if err := run(); err != nil {
			logger.Warn("input source stopped, continuing without it", "source", name, "error", err)
		}
		return nil
	}
}
