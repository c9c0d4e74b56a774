package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteUnitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cdnguard.service")

	if err := writeUnitFile(path, "/usr/local/bin/cdnguard"); err != nil {
		t.Fatalf("writeUnitFile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading unit file: %v", err)
	}
	unit := string(data)

	for _, want := range []string{
		"ExecStart=/usr/local/bin/cdnguard monitor",
		"Restart=on-failure",
		"WantedBy=multi-user.target",
		"EnvironmentFile=-/etc/cdnguard/cdnguard.env",
	} {
		if !strings.Contains(unit, want) {
			t.Errorf("unit file missing %q:\n%s", want, unit)
		}
	}
}

func TestWriteUnitFileBadPath(t *testing.T) {
	err := writeUnitFile(filepath.Join(t.TempDir(), "missing", "cdnguard.service"), "/usr/local/bin/cdnguard")
	if err == nil {
		t.Fatal("expected error for unwritable path")
	}
}
