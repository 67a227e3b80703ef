package blob

import (
	"strings"
	"testing"
)

func TestUniqueNameKeepsOriginalName(t *testing.T) {
	name := UniqueName("recibo.png")
	if !strings.HasSuffix(name, "_recibo.png") {
		t.Fatalf("UniqueName = %q, want _recibo.png suffix", name)
	}
}

func TestUniqueNameStripsDirectories(t *testing.T) {
	name := UniqueName("../../etc/passwd")
	if strings.Contains(name, "/") || strings.Contains(name, "..") {
		t.Fatalf("UniqueName = %q, should not contain path components", name)
	}
}

func TestUniqueNameFallsBackForEmptyInput(t *testing.T) {
	for _, in := range []string{"", ".", "/"} {
		name := UniqueName(in)
		if !strings.HasSuffix(name, "_imagen") {
			t.Fatalf("UniqueName(%q) = %q, want _imagen suffix", in, name)
		}
	}
}

func TestUniqueNameIsUnique(t *testing.T) {
	a := UniqueName("recibo.png")
	b := UniqueName("recibo.png")
	if a == b {
		t.Fatalf("two UniqueName calls returned the same value: %q", a)
	}
}
