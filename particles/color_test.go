package particles

import "testing"

func TestColorComponents(t *testing.T) {
	c := Color(0x11223344)
	r, g, b, a := c.Components()
	if r != 0x11 || g != 0x22 || b != 0x33 || a != 0x44 {
		t.Errorf("Components() = %x %x %x %x, want 11 22 33 44", r, g, b, a)
	}
	if RGBA(0x11, 0x22, 0x33, 0x44) != c {
		t.Errorf("RGBA = %v, want %v", RGBA(0x11, 0x22, 0x33, 0x44), c)
	}
	if got := c.WithAlpha(0xFF); got != 0x112233FF {
		t.Errorf("WithAlpha = %v", got)
	}
}

func TestColorNormalized(t *testing.T) {
	r, g, b, a := Black.Normalized()
	if r != 0 || g != 0 || b != 0 || a != 1 {
		t.Errorf("Black.Normalized() = %v %v %v %v", r, g, b, a)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{"#000000ff", Black, false},
		{"0xFFFFFFFF", White, false},
		{"#5293e2e2", 0x5293E2E2, false},
		{"#102030", 0x102030FF, false},
		{" #102030 ", 0x102030FF, false},
		{"#12345", 0, true},
		{"#zzzzzz", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestColorString(t *testing.T) {
	if got := Color(0xABCDEF01).String(); got != "#ABCDEF01" {
		t.Errorf("String() = %q", got)
	}
}
