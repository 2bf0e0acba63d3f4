package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lumen.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestRunValidate_ValidConfig(t *testing.T) {
	orig := cfgFile
	defer func() { cfgFile = orig }()

	cfgFile = writeTempConfig(t, "service:\n  name: \"svc\"\n")
	if err := runValidate(validateCmd, nil); err != nil {
		t.Errorf("runValidate() error = %v", err)
	}
}

func TestRunValidate_InvalidConfig(t *testing.T) {
	orig := cfgFile
	defer func() { cfgFile = orig }()

	cfgFile = writeTempConfig(t, "telemetry:\n  logging:\n    level: \"verbose\"\n")
	if err := runValidate(validateCmd, nil); err == nil {
		t.Error("runValidate() accepted an invalid config")
	}
}

func TestRunValidate_MissingFile(t *testing.T) {
	orig := cfgFile
	defer func() { cfgFile = orig }()

	cfgFile = filepath.Join(t.TempDir(), "absent.yaml")
	if err := runValidate(validateCmd, nil); err == nil {
		t.Error("runValidate() accepted a missing file")
	}
}

func TestCommandsRegistered(t *testing.T) {
	want := map[string]bool{"serve": false, "validate": false, "version": false, "demo": false}
	for _, cmd := range rootCmd.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("command %q not registered", name)
		}
	}
}
