package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestRunConfigValidateOK(t *testing.T) {
	path := writeConfigFile(t, "modifier: mod1\nnudge_step: 25\n")

	if rc := runConfig([]string{"validate", "--path", path}); rc != 0 {
		t.Fatalf("validate rc=%d, want 0", rc)
	}
}

func TestRunConfigValidateMissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent.yaml")

	if rc := runConfig([]string{"validate", "--path", path}); rc != 0 {
		t.Fatalf("validate rc=%d, want 0 for missing file", rc)
	}
}

func TestRunConfigValidateRejectsBadModifier(t *testing.T) {
	path := writeConfigFile(t, "modifier: hyper\n")

	if rc := runConfig([]string{"validate", "--path", path}); rc != 1 {
		t.Fatalf("validate rc=%d, want 1 for bad modifier", rc)
	}
}

func TestRunConfigValidateRejectsUnknownKey(t *testing.T) {
	path := writeConfigFile(t, "no_such_key: 1\n")

	if rc := runConfig([]string{"validate", "--path", path}); rc != 1 {
		t.Fatalf("validate rc=%d, want 1 for unknown key", rc)
	}
}

func TestRunConfigValidateRejectsEqualModifiers(t *testing.T) {
	path := writeConfigFile(t, "modifier: mod1\nsnap_modifier: mod1\n")

	if rc := runConfig([]string{"validate", "--path", path}); rc != 1 {
		t.Fatalf("validate rc=%d, want 1 for clashing modifiers", rc)
	}
}

func TestRunConfigPrintDefaults(t *testing.T) {
	if rc := runConfig([]string{"print", "--defaults"}); rc != 0 {
		t.Fatalf("print --defaults rc=%d, want 0", rc)
	}
}

func TestRunConfigUnknownSubcommand(t *testing.T) {
	if rc := runConfig([]string{"frobnicate"}); rc != 2 {
		t.Fatalf("rc=%d, want 2", rc)
	}
}

func TestParseWindowID(t *testing.T) {
	tests := []struct {
		input   string
		want    uint32
		wantErr bool
	}{
		{"42", 42, false},
		{"0x2a", 0x2a, false},
		{"0X2A", 0x2a, false},
		{"0", 0, false},
		{"", 0, true},
		{"xterm", 0, true},
		{"-1", 0, true},
		{"4294967296", 0, true},
	}
	for _, tt := range tests {
		got, err := parseWindowID(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseWindowID(%q) = %v, want error", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseWindowID(%q): %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseWindowID(%q) = %#x, want %#x", tt.input, got, tt.want)
		}
	}
}

func TestRunNudgeRequiresDirection(t *testing.T) {
	if rc := runNudge([]string{}); rc != 2 {
		t.Fatalf("rc=%d, want 2 without direction", rc)
	}
}

func TestRunSnapRejectsBadWindowID(t *testing.T) {
	if rc := runSnap([]string{"--window", "bogus", "left"}); rc != 2 {
		t.Fatalf("rc=%d, want 2 for bad window ID", rc)
	}
}
