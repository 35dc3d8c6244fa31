package codesign

import "testing"

func TestMagicRoundTrip(t *testing.T) {
	values := []uint32{
		0xfade0c00, 0xfade0c01, 0xfade0c02, 0xfade0cc0,
		0xfade0b02, 0xfade7171, 0xfade0cc1, 0xfade0b01,
		0xcafed00d, 0,
	}
	for _, v := range values {
		m := MagicFromU32(v)
		if got := m.ToU32(); got != v {
			t.Errorf("MagicFromU32(%#x).ToU32() = %#x, want %#x", v, got, v)
		}
	}
}

func TestMagicUnknown(t *testing.T) {
	m := MagicFromU32(0xcafed00d)
	if !m.IsUnknown() {
		t.Fatalf("expected 0xcafed00d to be unknown, got %s", m)
	}
	if MagicCodeDirectory.IsUnknown() {
		t.Fatalf("CodeDirectory magic should not be unknown")
	}
}
