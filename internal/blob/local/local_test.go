package local

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPutWritesBytesAndReturnsUploadsPath(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	payload := []byte("fake png bytes")
	ref, err := s.Put(context.Background(), "recibo.png", payload, "image/png")
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if ref != "/uploads/recibo.png" {
		t.Fatalf("ref = %q, want /uploads/recibo.png", ref)
	}

	got, err := os.ReadFile(filepath.Join(dir, "recibo.png"))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatal("stored bytes differ from uploaded bytes")
	}
}

func TestPutStripsDirectoryComponents(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ref, err := s.Put(context.Background(), "sub/dir/recibo.png", []byte("x"), "image/png")
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if ref != "/uploads/recibo.png" {
		t.Fatalf("ref = %q, want basename only", ref)
	}
}

func TestPutRejectsTraversal(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := s.Put(context.Background(), "..", []byte("x"), "image/png"); err == nil {
		t.Fatal("expected error for traversal filename")
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(dir), "x")); err == nil {
		t.Fatal("file escaped the upload directory")
	}
}

func TestNewCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	if _, err := New(dir); err != nil {
		t.Fatalf("New: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("upload dir not created: %v", err)
	}
}

func TestDir(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !strings.HasPrefix(s.Dir(), dir) {
		t.Fatalf("Dir() = %q, want %q", s.Dir(), dir)
	}
}
