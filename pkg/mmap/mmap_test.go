package mmap

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestMapReadsFileContents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.bin")
	content := bytes.Repeat([]byte("0123456789"), 1000)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	m, err := Map(path)
	if err != nil {
		t.Fatalf("Map failed: %v", err)
	}
	defer m.Close()

	if m.Size() != len(content) {
		t.Errorf("Size() = %d, want %d", m.Size(), len(content))
	}
	if !bytes.Equal(m.Data(), content) {
		t.Error("mapped data does not match file contents")
	}
}

func TestMapEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	m, err := Map(path)
	if err != nil {
		t.Fatalf("Map failed: %v", err)
	}
	if m.Size() != 0 {
		t.Errorf("Size() = %d, want 0", m.Size())
	}
	if err := m.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
}

func TestMapMissingFile(t *testing.T) {
	if _, err := Map(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestCloseInvalidatesMapping(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.bin")
	if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	m, err := Map(path)
	if err != nil {
		t.Fatalf("Map failed: %v", err)
	}
	if err := m.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if m.Data() != nil {
		t.Error("Data() must be nil after Close")
	}
}
