package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestResolveBuildDetails(t *testing.T) {
	t.Parallel()

	d := resolveBuildDetails()
	// Every field resolves to something: an ldflags value, build info,
	// or its placeholder.
	if d.version == "" {
		t.Error("resolveBuildDetails() returned empty version")
	}
	if d.commit == "" {
		t.Error("resolveBuildDetails() returned empty commit")
	}
	if d.date == "" {
		t.Error("resolveBuildDetails() returned empty date")
	}
}

func TestShortRevision(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		rev  string
		want string
	}{
		{name: "full sha is trimmed", rev: "0123456789abcdef0123456789abcdef01234567", want: "0123456"},
		{name: "short value kept", rev: "abc", want: "abc"},
		{name: "empty value kept", rev: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := shortRevision(tt.rev); got != tt.want {
				t.Errorf("shortRevision(%q) = %q, want %q", tt.rev, got, tt.want)
			}
		})
	}
}

func TestGetVersion(t *testing.T) {
	t.Parallel()

	if getVersion() == "" {
		t.Error("getVersion() returned empty string")
	}
}

func TestNewVersionCmd(t *testing.T) {
	t.Parallel()

	cmd := NewVersionCmd()

	t.Run("command has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "version" {
			t.Errorf("expected Use to be 'version', got %q", cmd.Use)
		}
	})

	t.Run("command has short description", func(t *testing.T) {
		t.Parallel()
		if cmd.Short == "" {
			t.Error("expected Short to be non-empty")
		}
	})

	t.Run("command outputs version info", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		cmd := NewVersionCmd()
		cmd.SetOut(&buf)
		cmd.SetArgs([]string{})

		err := cmd.Execute()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "cargosweep ") {
			t.Errorf("expected output to contain 'cargosweep ', got %q", output)
		}
		if !strings.Contains(output, "commit ") {
			t.Errorf("expected output to contain 'commit ', got %q", output)
		}
		if !strings.Contains(output, "built ") {
			t.Errorf("expected output to contain 'built ', got %q", output)
		}
	})
}
