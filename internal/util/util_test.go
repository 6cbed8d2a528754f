// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAtomicWriteFile_Basic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "vi.json")
	data := []byte(`{"lastUpdated":"x","vi":{}}`)

	if err := AtomicWriteFile(path, data, 0644); err != nil {
		t.Fatalf("AtomicWriteFile failed: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(got) != string(data) {
		t.Errorf("content = %q, want %q", got, data)
	}
}

func TestAtomicWriteFile_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := AtomicWriteFile(path, []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := AtomicWriteFile(path, []byte("new"), 0644); err != nil {
		t.Fatal(err)
	}

	got, _ := os.ReadFile(path)
	if string(got) != "new" {
		t.Errorf("content = %q, want new", got)
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("temp files left behind: %d entries", len(entries))
	}
}

func TestStringWidth(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"VRQ", 3},
		{"Água Subt. (ug/L)", 17},
		{"Residêncial", 11},
		{"", 0},
	}
	for _, tt := range tests {
		if got := StringWidth(tt.in); got != tt.want {
			t.Errorf("StringWidth(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestCenter(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"VI", 6, "  VI  "},
		{"VP", 5, " VP  "},
		{"Água", 4, "Água"},
	}
	for _, tt := range tests {
		if got := Center(tt.in, tt.width); got != tt.want {
			t.Errorf("Center(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}

	if got := StringWidth(Center("Industrial Soil", 8)); got > 8 {
		t.Errorf("Center() overflowed: width %d", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("Valor de Prevenção (VP)", 10); StringWidth(got) > 10 {
		t.Errorf("Truncate width = %d, want <= 10", StringWidth(got))
	}
	if got := Truncate("VI", 10); got != "VI" {
		t.Errorf("Truncate(VI) = %q", got)
	}
	if got := Truncate("VI", 0); got != "" {
		t.Errorf("Truncate(VI, 0) = %q", got)
	}
}
