package ecnf

import "testing"

func TestCursor(t *testing.T) {
	c := newCursor("HO_GE  : x")

	if got := c.scanWhile(isKeyChar); got != "HO_GE" {
		t.Errorf("scanWhile = %q, want %q", got, "HO_GE")
	}

	c.skipWhitespace()

	if r, ok := c.next(); !ok || r != ':' {
		t.Errorf("next = %q, %v", r, ok)
	}

	c.skipWhitespace()

	if got := c.rest(); got != "x" {
		t.Errorf("rest = %q, want %q", got, "x")
	}

	c.next()

	if r, ok := c.next(); ok || r != 0 {
		t.Errorf("next past end = %q, %v", r, ok)
	}
}

func TestIsWrapped(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{`""`, true},
		{`"x"`, true},
		{`"日本"`, true},
		{`"""`, true},
		{`"`, false},
		{``, false},
		{`"x`, false},
		{`x"`, false},
		{`'x'`, false},
	}

	for _, tt := range tests {
		if got := isWrapped(tt.in, '"', '"'); got != tt.want {
			t.Errorf("isWrapped(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestValidKey(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"A", true},
		{"A_B", true},
		{"AB_", true},
		{"_A", false},
		{"a", false},
		{"A1", false},
		{"", false},
		{"A.B", false},
	}

	for _, tt := range tests {
		if got := validKey(tt.in); got != tt.want {
			t.Errorf("validKey(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
