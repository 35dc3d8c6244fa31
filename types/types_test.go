package types

import "testing"

func TestVersionString(t *testing.T) {
	cases := []struct {
		v    Version
		want string
	}{
		{0x000a0500, "10.5"},
		{0x000a0501, "10.5.1"},
		{0, "0.0"},
	}
	for _, c := range cases {
		if got := c.v.String(); got != c.want {
			t.Errorf("Version(%#x).String() = %q, want %q", uint32(c.v), got, c.want)
		}
	}
}

func TestStringName(t *testing.T) {
	names := []IntName{
		{1, "One"},
		{2, "Two"},
	}
	if got := StringName(1, names, false); got != "One" {
		t.Errorf("StringName(1) = %q, want One", got)
	}
	if got := StringName(3, names, false); got != "0x3" {
		t.Errorf("StringName(3) = %q, want 0x3", got)
	}
	if got := StringName(1, names, true); got != "codesign.One" {
		t.Errorf("StringName(1, goSyntax) = %q, want codesign.One", got)
	}
}
