package main

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/solterra/towny-catalog/internal/app"
	"github.com/solterra/towny-catalog/internal/config"
	"github.com/solterra/towny-catalog/internal/logging"
	"github.com/solterra/towny-catalog/internal/logging/events"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

var errNoTerminal = errors.New("towny-catalog needs an interactive terminal on stdin and stdout")

func main() {
	runtimeCfg := config.MustLoad()
	runtimeCfg.App.Version = version
	if err := config.Validate(runtimeCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	logging.Configure(runtimeCfg.Logging.FilePath)
	logging.SetTraceEnabled(runtimeCfg.Logging.Trace)

	tty := collectTTYDetails()
	events.App.Start(startupTracePayload(runtimeCfg, tty))
	if err := requireTerminal(tty); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := app.Run(runtimeCfg.App); err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// startupTracePayload bundles runtime context for trace logging.
func startupTracePayload(cfg config.Config, tty ttyDetails) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags)+2)
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath
	payload := map[string]interface{}{
		"version": cfg.App.Version,
		"argv":    cfg.Args,
		"flags":   flags,
		"config":  cfg,
		"tty":     tty,
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	} else {
		payload["executableError"] = err.Error()
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	} else {
		payload["cwdError"] = err.Error()
	}
	return payload
}

type ttyDetails struct {
	Detected *ttyDetected     `json:"detected,omitempty"`
	Probes   []ttyProbeResult `json:"probes"`
}

type ttyDetected struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type ttyProbeResult struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

// terminal reports whether the named descriptor was probed as a terminal.
func (d ttyDetails) terminal(name string) bool {
	for _, p := range d.Probes {
		if p.Name == name {
			return p.IsTerminal
		}
	}
	return false
}

// requireTerminal refuses to start the catalog UI when input or output is
// redirected.
func requireTerminal(d ttyDetails) error {
	if !d.terminal("stdin") || !d.terminal("stdout") {
		return errNoTerminal
	}
	return nil
}

// collectTTYDetails inspects standard descriptors for terminal support and dimensions.
func collectTTYDetails() ttyDetails {
	probes := []struct {
		name string
		fd   uintptr
	}{
		{"stdin", os.Stdin.Fd()},
		{"stdout", os.Stdout.Fd()},
		{"stderr", os.Stderr.Fd()},
	}
	results := make([]ttyProbeResult, 0, len(probes))
	var detected *ttyDetected
	for _, probe := range probes {
		entry := ttyProbeResult{Name: probe.name}
		fd := int(probe.fd)
		if fd < 0 || !term.IsTerminal(fd) {
			results = append(results, entry)
			continue
		}
		entry.IsTerminal = true
		width, height, err := term.GetSize(fd)
		if err != nil {
			entry.Error = err.Error()
		} else {
			entry.Width, entry.Height = width, height
			if detected == nil {
				detected = &ttyDetected{Source: probe.name, Width: width, Height: height}
			}
		}
		results = append(results, entry)
	}
	return ttyDetails{Detected: detected, Probes: results}
}
