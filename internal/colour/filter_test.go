package colour

import "testing"

func TestCombineFiltersEmpty(t *testing.T) {
	f := CombineFilters()
	samples := []Pixel{{}, {R: 255, G: 255, B: 255, A: 255}, {R: 12, A: 1}}
	for _, p := range samples {
		if !f.Keep(p) {
			t.Errorf("CombineFilters() dropped %+v", p)
		}
	}

	if !CombineFilters(nil, nil).Keep(Pixel{}) {
		t.Error("CombineFilters(nil, nil) should keep everything")
	}
}

func TestCombineFiltersIsLogicalAnd(t *testing.T) {
	redOnly := Filter(func(r, _, _, _ uint8) bool { return r > 128 })
	opaqueOnly := Filter(func(_, _, _, a uint8) bool { return a == 255 })
	combined := CombineFilters(redOnly, opaqueOnly)

	for r := 0; r < 256; r += 17 {
		for a := 0; a < 256; a += 51 {
			p := Pixel{R: uint8(r), G: 10, B: 20, A: uint8(a)}
			want := redOnly.Keep(p) && opaqueOnly.Keep(p)
			if got := combined.Keep(p); got != want {
				t.Errorf("combined(%+v) = %v, want %v", p, got, want)
			}
		}
	}
}

func TestDefaultFilter(t *testing.T) {
	tests := []struct {
		name  string
		pixel Pixel
		want  bool
	}{
		{name: "opaque red", pixel: Pixel{R: 255, A: 255}, want: true},
		{name: "muted brown", pixel: Pixel{R: 120, G: 90, B: 60, A: 255}, want: true},
		{name: "transparent red", pixel: Pixel{R: 255, A: 0}, want: false},
		{name: "alpha just below threshold", pixel: Pixel{R: 255, A: 124}, want: false},
		{name: "alpha at threshold", pixel: Pixel{R: 255, A: 125}, want: true},
		{name: "white", pixel: Pixel{R: 255, G: 255, B: 255, A: 255}, want: false},
		{name: "near white", pixel: Pixel{R: 252, G: 251, B: 253, A: 255}, want: false},
		{name: "black", pixel: Pixel{A: 255}, want: false},
		{name: "near black", pixel: Pixel{R: 3, G: 2, B: 4, A: 255}, want: false},
		{name: "mid gray", pixel: Pixel{R: 128, G: 128, B: 128, A: 255}, want: false},
		{name: "almost gray", pixel: Pixel{R: 130, G: 128, B: 127, A: 255}, want: false},
		{name: "pale but coloured", pixel: Pixel{R: 240, G: 200, B: 200, A: 255}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DefaultFilter.Keep(tt.pixel); got != tt.want {
				t.Errorf("DefaultFilter(%+v) = %v, want %v", tt.pixel, got, tt.want)
			}
		})
	}
}

func TestNewFilterGrayBandDisabled(t *testing.T) {
	opts := DefaultFilterOptions()
	opts.GrayMaxSaturation = 0
	f := NewFilter(opts)

	if !f.Keep(Pixel{R: 128, G: 128, B: 128, A: 255}) {
		t.Error("gray should be kept when the gray band is disabled")
	}
}

func TestNewFilterGrayBandLimitedByLightness(t *testing.T) {
	opts := DefaultFilterOptions()
	opts.GrayMinLightness = 0.6
	f := NewFilter(opts)

	if !f.Keep(Pixel{R: 100, G: 100, B: 100, A: 255}) {
		t.Error("dark gray outside the band should be kept")
	}
	if f.Keep(Pixel{R: 200, G: 200, B: 200, A: 255}) {
		t.Error("light gray inside the band should be dropped")
	}
}

func TestFilterOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*FilterOptions)
		wantErr bool
	}{
		{name: "defaults", modify: func(*FilterOptions) {}},
		{name: "lightness above one", modify: func(o *FilterOptions) { o.MaxLightness = 1.5 }, wantErr: true},
		{name: "negative saturation", modify: func(o *FilterOptions) { o.GrayMaxSaturation = -0.1 }, wantErr: true},
		{name: "min above max", modify: func(o *FilterOptions) { o.MinLightness = 0.9; o.MaxLightness = 0.1 }, wantErr: true},
		{name: "gray band inverted", modify: func(o *FilterOptions) { o.GrayMinLightness = 0.8; o.GrayMaxLightness = 0.2 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultFilterOptions()
			tt.modify(&opts)
			err := opts.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFilterSwatches(t *testing.T) {
	swatches := []*Swatch{
		MustSwatch(RGB{R: 255}, 10),
		MustSwatch(RGB{R: 255, G: 255, B: 255}, 5),
		nil,
		MustSwatch(RGB{G: 180, B: 40}, 3),
	}

	kept := FilterSwatches(swatches, DefaultFilter)
	if len(kept) != 2 {
		t.Fatalf("FilterSwatches() kept %d swatches, want 2", len(kept))
	}
	if kept[0].Hex() != "#ff0000" || kept[1].Hex() != "#00b428" {
		t.Errorf("FilterSwatches() = %v, %v", kept[0], kept[1])
	}
}

func TestFilterPixelsPreservesOrder(t *testing.T) {
	pixels := []Pixel{
		{R: 200, G: 10, B: 10, A: 255},
		{A: 0},
		{R: 10, G: 200, B: 10, A: 255},
	}

	kept := FilterPixels(pixels, DefaultFilter)
	if len(kept) != 2 || kept[0] != pixels[0] || kept[1] != pixels[2] {
		t.Errorf("FilterPixels() = %+v", kept)
	}
}
