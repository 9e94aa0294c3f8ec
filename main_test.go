package main

import (
	"errors"
	"testing"
	"time"

	"github.com/solterra/towny-catalog/internal/app"
	"github.com/solterra/towny-catalog/internal/config"
)

func TestCollectTTYDetailsIncludesStandardDescriptors(t *testing.T) {
	info := collectTTYDetails()
	if len(info.Probes) != 3 {
		t.Fatalf("expected 3 probe entries, got %d", len(info.Probes))
	}
	expected := []string{"stdin", "stdout", "stderr"}
	for i, name := range expected {
		if info.Probes[i].Name != name {
			t.Fatalf("expected probe %d name %q, got %q", i, name, info.Probes[i].Name)
		}
	}
}

func TestStartupTracePayloadIncludesFlags(t *testing.T) {
	cfg := config.Config{
		App: app.Config{
			DataPath:     "towny.db",
			SettingsPath: "config.yml",
			Viewer:       "Aster",
			Width:        80,
			Height:       24,
			ShowFooter:   true,
			Refresh:      5 * time.Second,
			Version:      "1.2.0",
		},
		Logging: config.Logging{
			FilePath: "trace.log",
			Trace:    true,
		},
		Flags: map[string]string{
			"data":    "towny.db",
			"viewer":  "Aster",
			"width":   "80",
			"height":  "24",
			"footer":  "true",
			"refresh": "5s",
		},
		Args: []string{"-viewer", "Aster"},
	}

	payload := startupTracePayload(cfg, collectTTYDetails())
	if payload["version"] != "1.2.0" {
		t.Fatalf("expected version in payload, got %v", payload["version"])
	}

	flagsValue, ok := payload["flags"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected flags map in payload")
	}
	if flagsValue["viewer"] != "Aster" {
		t.Fatalf("expected viewer flag %q, got %v", "Aster", flagsValue["viewer"])
	}
	if flagsValue["width"] != "80" {
		t.Fatalf("expected width 80, got %v", flagsValue["width"])
	}
	if flagsValue["height"] != "24" {
		t.Fatalf("expected height 24, got %v", flagsValue["height"])
	}
	if flagsValue["footer"] != "true" {
		t.Fatalf("expected footer flag true, got %v", flagsValue["footer"])
	}
	if flagsValue["trace"] != true {
		t.Fatalf("expected trace flag true, got %v", flagsValue["trace"])
	}
	if flagsValue["refresh"] != "5s" {
		t.Fatalf("expected refresh 5s, got %v", flagsValue["refresh"])
	}
	if flagsValue["logFile"] != "trace.log" {
		t.Fatalf("expected log file trace.log, got %v", flagsValue["logFile"])
	}

	if _, ok := payload["tty"].(ttyDetails); !ok {
		t.Fatalf("expected tty details in payload")
	}
	if cfgValue, ok := payload["config"].(config.Config); !ok {
		t.Fatalf("expected config in payload")
	} else if cfgValue.App != cfg.App {
		t.Fatalf("expected app config %#v, got %#v", cfg.App, cfgValue.App)
	}
}

func TestRequireTerminal(t *testing.T) {
	probe := func(stdin, stdout bool) ttyDetails {
		return ttyDetails{Probes: []ttyProbeResult{
			{Name: "stdin", IsTerminal: stdin},
			{Name: "stdout", IsTerminal: stdout},
			{Name: "stderr"},
		}}
	}
	if err := requireTerminal(probe(true, true)); err != nil {
		t.Fatalf("expected terminal to be accepted, got %v", err)
	}
	for _, d := range []ttyDetails{probe(false, true), probe(true, false), {}} {
		if err := requireTerminal(d); !errors.Is(err, errNoTerminal) {
			t.Fatalf("expected errNoTerminal for %+v, got %v", d, err)
		}
	}
}
