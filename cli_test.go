package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCLI(t *testing.T, args ...string) (stdout, logs string, err error) {
	t.Helper()
	var out, logBuf bytes.Buffer
	root := newRootCmd(&logBuf)
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err = root.ExecuteContext(context.Background())
	return out.String(), logBuf.String(), err
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "angle.svg")

	_, logs, err := runCLI(t, "render", "examples/right_angle.lfab", "-o", name, "--dxf")
	if err != nil {
		t.Fatalf("render error: %v\n%s", err, logs)
	}
	for _, f := range []string{"angle.svg", "angle_assembly_manual.svg", "angle.dxf"} {
		if _, err := os.Stat(filepath.Join(dir, f)); err != nil {
			t.Errorf("expected output %s: %v", f, err)
		}
	}
	if !strings.Contains(logs, "rendered linkage") {
		t.Errorf("missing completion log:\n%s", logs)
	}
}

func TestRenderCommandConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "linkfab.toml")
	if err := os.WriteFile(cfgPath, []byte("[style]\nstroke = \"black\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	name := filepath.Join(dir, "styled")
	if _, logs, err := runCLI(t, "render", "examples/right_angle.lfab", "-o", name, "-c", cfgPath); err != nil {
		t.Fatalf("render error: %v\n%s", err, logs)
	}
	data, err := os.ReadFile(name + ".svg")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `stroke="black"`) {
		t.Error("configured stroke not applied")
	}
	if _, err := os.Stat(name + ".dxf"); !os.IsNotExist(err) {
		t.Error("dxf written without --dxf")
	}
}

func TestRenderCommandErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.lfab")
	if err := os.WriteFile(bad, []byte("(segment 0 0"), 0o644); err != nil {
		t.Fatal(err)
	}
	badCfg := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(badCfg, []byte("[sheet]\nwidth = -1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		args []string
	}{
		{"missing script", []string{"render", filepath.Join(dir, "missing.lfab")}},
		{"script error", []string{"render", bad, "-o", filepath.Join(dir, "out")}},
		{"bad config", []string{"render", "examples/right_angle.lfab", "-c", badCfg}},
		{"no arguments", []string{"render"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := runCLI(t, tt.args...); err == nil {
				t.Error("expected an error")
			}
		})
	}
	if _, err := os.Stat(filepath.Join(dir, "out.svg")); !os.IsNotExist(err) {
		t.Error("output written for a failing script")
	}
}

func TestInspectCommand(t *testing.T) {
	out, logs, err := runCLI(t, "inspect", "examples/fourbar.lfab")
	if err != nil {
		t.Fatalf("inspect error: %v\n%s", err, logs)
	}
	for _, want := range []string{"Hubs (5)", "Links (5)", "A|B", "Sheet", "row 0"} {
		if !strings.Contains(out, want) {
			t.Errorf("inspect output missing %q:\n%s", want, out)
		}
	}
}

func TestVerboseLogging(t *testing.T) {
	name := filepath.Join(t.TempDir(), "v")
	_, logs, err := runCLI(t, "render", "examples/right_angle.lfab", "-o", name, "-v")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(logs, "packed sheet") {
		t.Errorf("debug logs missing with --verbose:\n%s", logs)
	}

	_, logs, err = runCLI(t, "render", "examples/right_angle.lfab", "-o", name)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(logs, "packed sheet") {
		t.Error("debug logs shown without --verbose")
	}
}
