package cli

import (
	"strings"
	"testing"

	"github.com/jmylchreest/vibrant/internal/colour"
)

func TestParseFormat(t *testing.T) {
	for _, f := range ValidFormats() {
		got, err := ParseFormat(strings.ToUpper(string(f)))
		if err != nil || got != f {
			t.Errorf("ParseFormat(%q) = %q, %v", strings.ToUpper(string(f)), got, err)
		}
	}
	if _, err := ParseFormat("yaml"); err == nil {
		t.Error("ParseFormat(yaml) should fail")
	}
}

func TestCSSName(t *testing.T) {
	tests := map[colour.Role]string{
		colour.RoleVibrant:     "vibrant",
		colour.RoleDarkVibrant: "dark-vibrant",
		colour.RoleLightMuted:  "light-muted",
	}
	for role, want := range tests {
		if got := cssName(role); got != want {
			t.Errorf("cssName(%s) = %q, want %q", role, got, want)
		}
	}
}

func TestFormatPaletteEmptySlots(t *testing.T) {
	p := colour.Palette{Muted: colour.MustSwatch(colour.RGB{R: 150, G: 100, B: 90}, 3)}

	hex, err := FormatPalette(&p, FormatHex, false)
	if err != nil {
		t.Fatalf("FormatPalette() error = %v", err)
	}
	want := strings.Join([]string{
		"Vibrant      -",
		"DarkVibrant  -",
		"LightVibrant -",
		"Muted        #96645a",
		"DarkMuted    -",
		"LightMuted   -",
		"",
	}, "\n")
	if hex != want {
		t.Errorf("hex output =\n%s\nwant\n%s", hex, want)
	}

	css, err := FormatPalette(&p, FormatCSS, false)
	if err != nil {
		t.Fatalf("FormatPalette() error = %v", err)
	}
	if strings.Contains(css, "--vibrant") || !strings.Contains(css, "--muted: #96645a;") {
		t.Errorf("css output = %s", css)
	}

	text, err := FormatPalette(&p, FormatText, true)
	if err != nil {
		t.Fatalf("FormatPalette() error = %v", err)
	}
	if !strings.Contains(text, "\033[48;2;150;100;90m") {
		t.Errorf("text preview missing colour block:\n%q", text)
	}

	if _, err := FormatPalette(&p, Format("xml"), false); err == nil {
		t.Error("FormatPalette(xml) should fail")
	}
}
