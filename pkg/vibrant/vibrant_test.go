package vibrant_test

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/vibrant/pkg/vibrant"
)

func solidImage(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// bandedImage has horizontal bands of saturated, muted, dark and light colours.
func bandedImage() *image.NRGBA {
	bands := []color.NRGBA{
		{R: 230, G: 40, B: 40, A: 255},
		{R: 150, G: 100, B: 90, A: 255},
		{R: 20, G: 30, B: 120, A: 255},
		{R: 250, G: 180, B: 190, A: 255},
		{R: 60, G: 50, B: 45, A: 255},
		{R: 210, G: 200, B: 190, A: 255},
	}
	img := image.NewNRGBA(image.Rect(0, 0, 60, 60))
	for y := 0; y < 60; y++ {
		for x := 0; x < 60; x++ {
			img.SetNRGBA(x, y, bands[y/10])
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode() error = %v", err)
	}
	return buf.Bytes()
}

func TestFromBytesSolidRed(t *testing.T) {
	palette, err := vibrant.FromBytes(encodePNG(t, solidImage(100, 100, color.NRGBA{R: 255, A: 255})), vibrant.DefaultOptions())
	if err != nil {
		t.Fatalf("FromBytes() error = %v", err)
	}

	if palette.Vibrant == nil {
		t.Fatalf("Vibrant is empty: %s", palette.String())
	}
	if got := palette.Vibrant.Hex(); got != "#ff0000" {
		t.Errorf("Vibrant = %s, want #ff0000", got)
	}
	// Every fifth of 10000 pixels is sampled.
	if got := palette.Vibrant.Population(); got != 2000 {
		t.Errorf("Vibrant population = %d, want 2000", got)
	}
}

func TestProcessEmptyInput(t *testing.T) {
	for _, src := range []vibrant.PixelSource{vibrant.PixelSlice(nil), vibrant.PixelSlice{}} {
		palette, err := vibrant.Process(src, vibrant.DefaultOptions())
		if err != nil {
			t.Fatalf("Process() error = %v", err)
		}
		for role, s := range palette.All() {
			if s != nil {
				t.Errorf("%s = %v, want empty slot", role, s)
			}
		}
	}
}

func TestProcessAllFiltered(t *testing.T) {
	white := make(vibrant.PixelSlice, 500)
	for i := range white {
		white[i] = vibrant.Pixel{R: 255, G: 255, B: 255, A: 255}
	}

	palette, err := vibrant.Process(white, vibrant.DefaultOptions())
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if !palette.IsEmpty() {
		t.Errorf("Process() = %s, want empty palette", palette.String())
	}

	// An empty filter list keeps white, which fits LightMuted.
	opts := vibrant.DefaultOptions()
	opts.Filters = []vibrant.Filter{}
	palette, err = vibrant.Process(white, opts)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if palette.LightMuted == nil || palette.LightMuted.Hex() != "#ffffff" {
		t.Errorf("LightMuted = %v, want #ffffff", palette.LightMuted)
	}
}

func TestProcessIdempotent(t *testing.T) {
	img := bandedImage()
	for _, alg := range vibrant.ValidAlgorithms() {
		t.Run(string(alg), func(t *testing.T) {
			opts := vibrant.DefaultOptions()
			opts.Quantizer = alg

			first, err := vibrant.FromImage(img, opts)
			if err != nil {
				t.Fatalf("FromImage() error = %v", err)
			}
			second, err := vibrant.FromImage(img, opts)
			if err != nil {
				t.Fatalf("FromImage() error = %v", err)
			}
			if !first.Equal(&second) {
				t.Errorf("palettes differ:\n%s\n%s", first.String(), second.String())
			}
			if first.Len() != 6 {
				t.Errorf("Len() = %d, want 6: %s", first.Len(), first.String())
			}
		})
	}
}

func TestProcessBandedRoles(t *testing.T) {
	opts := vibrant.DefaultOptions()
	opts.Quality = 1
	palette, err := vibrant.FromImage(bandedImage(), opts)
	if err != nil {
		t.Fatalf("FromImage() error = %v", err)
	}

	want := map[vibrant.Role]string{
		vibrant.RoleVibrant:      "#e62828",
		vibrant.RoleMuted:        "#96645a",
		vibrant.RoleDarkVibrant:  "#141e78",
		vibrant.RoleLightVibrant: "#fab4be",
		vibrant.RoleDarkMuted:    "#3c322d",
		vibrant.RoleLightMuted:   "#d2c8be",
	}
	for role, hex := range want {
		s := palette.Get(role)
		if s == nil {
			t.Errorf("%s is empty", role)
			continue
		}
		if s.Hex() != hex {
			t.Errorf("%s = %s, want %s", role, s.Hex(), hex)
		}
		if s.Population() != 600 {
			t.Errorf("%s population = %d, want 600", role, s.Population())
		}
	}
}

func TestProcessMaxDimension(t *testing.T) {
	opts := vibrant.DefaultOptions()
	opts.Quality = 1
	opts.MaxDimension = 10

	palette, err := vibrant.FromImage(solidImage(200, 100, color.NRGBA{R: 255, A: 255}), opts)
	if err != nil {
		t.Fatalf("FromImage() error = %v", err)
	}
	if palette.Vibrant == nil {
		t.Fatalf("Vibrant is empty: %s", palette.String())
	}
	if got := palette.Vibrant.Population(); got != 50 {
		t.Errorf("Vibrant population = %d, want 50 (10x5)", got)
	}
}

func TestOptionsValidate(t *testing.T) {
	badGenerator := vibrant.DefaultGeneratorOptions()
	badGenerator.TargetNormalLuma = 2

	tests := []struct {
		name    string
		modify  func(*vibrant.Options)
		wantErr bool
	}{
		{name: "defaults", modify: func(*vibrant.Options) {}},
		{name: "zero value fields", modify: func(o *vibrant.Options) { *o = vibrant.Options{} }},
		{name: "kmeans", modify: func(o *vibrant.Options) { o.Quantizer = vibrant.AlgorithmKMeans }},
		{name: "negative colour count", modify: func(o *vibrant.Options) { o.ColorCount = -1 }, wantErr: true},
		{name: "negative quality", modify: func(o *vibrant.Options) { o.Quality = -2 }, wantErr: true},
		{name: "negative max dimension", modify: func(o *vibrant.Options) { o.MaxDimension = -1 }, wantErr: true},
		{name: "unknown quantizer", modify: func(o *vibrant.Options) { o.Quantizer = "octree" }, wantErr: true},
		{name: "bad generator", modify: func(o *vibrant.Options) { o.Generator = vibrant.NewGenerator(badGenerator) }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := vibrant.DefaultOptions()
			tt.modify(&opts)

			err := opts.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr {
				return
			}
			if !errors.Is(err, vibrant.ErrInvalidOptions) {
				t.Errorf("Validate() error = %v, want ErrInvalidOptions", err)
			}
			if _, err := vibrant.Process(vibrant.PixelSlice{{R: 255, A: 255}}, opts); !errors.Is(err, vibrant.ErrInvalidOptions) {
				t.Errorf("Process() error = %v, want ErrInvalidOptions", err)
			}
		})
	}
}

type failingSource struct{}

func (failingSource) Pixels(int) ([]vibrant.Pixel, error) {
	return nil, errors.New("truncated stream")
}

func TestInvalidImageData(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.png")

	// A 1x1 PNG whose header claims 65535x65535.
	oversized := encodePNG(t, solidImage(1, 1, color.NRGBA{A: 255}))
	binary.BigEndian.PutUint32(oversized[16:20], 65535)
	binary.BigEndian.PutUint32(oversized[20:24], 65535)
	binary.BigEndian.PutUint32(oversized[29:33], crc32.ChecksumIEEE(oversized[12:29]))

	tests := []struct {
		name string
		run  func() error
	}{
		{name: "failing source", run: func() error {
			_, err := vibrant.Process(failingSource{}, vibrant.DefaultOptions())
			return err
		}},
		{name: "nil source", run: func() error {
			_, err := vibrant.Process(nil, vibrant.DefaultOptions())
			return err
		}},
		{name: "garbage bytes", run: func() error {
			_, err := vibrant.FromBytes([]byte("definitely not a png"), vibrant.DefaultOptions())
			return err
		}},
		{name: "oversized header", run: func() error {
			_, err := vibrant.FromBytes(oversized, vibrant.DefaultOptions())
			return err
		}},
		{name: "empty bytes", run: func() error {
			_, err := vibrant.FromBytes(nil, vibrant.DefaultOptions())
			return err
		}},
		{name: "missing file", run: func() error {
			_, err := vibrant.FromFile(missing, vibrant.DefaultOptions())
			return err
		}},
		{name: "nil image", run: func() error {
			_, err := vibrant.FromImage(nil, vibrant.DefaultOptions())
			return err
		}},
		{name: "not a url", run: func() error {
			_, err := vibrant.FromURL(context.Background(), "ftp://example.com/a.png", vibrant.DefaultOptions())
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.run(); !errors.Is(err, vibrant.ErrInvalidImageData) {
				t.Errorf("error = %v, want ErrInvalidImageData", err)
			}
		})
	}
}

func TestFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "green.png")
	if err := os.WriteFile(path, encodePNG(t, solidImage(20, 20, color.NRGBA{G: 200, B: 40, A: 255})), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	palette, err := vibrant.FromFile(path, vibrant.DefaultOptions())
	if err != nil {
		t.Fatalf("FromFile() error = %v", err)
	}
	if palette.Vibrant == nil || palette.Vibrant.Hex() != "#00c828" {
		t.Errorf("Vibrant = %v, want #00c828", palette.Vibrant)
	}
}

func TestFromURL(t *testing.T) {
	data := encodePNG(t, solidImage(30, 30, color.NRGBA{R: 255, A: 255}))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(data)
	}))
	defer srv.Close()

	palette, err := vibrant.FromURL(context.Background(), srv.URL+"/red.png", vibrant.DefaultOptions())
	if err != nil {
		t.Fatalf("FromURL() error = %v", err)
	}
	if palette.Vibrant == nil || palette.Vibrant.Hex() != "#ff0000" {
		t.Errorf("Vibrant = %v, want #ff0000", palette.Vibrant)
	}

	if _, err := vibrant.FromURL(context.Background(), srv.URL+"/\x7f", vibrant.DefaultOptions()); !errors.Is(err, vibrant.ErrInvalidImageData) {
		t.Errorf("FromURL() error = %v, want ErrInvalidImageData", err)
	}
}

func TestCustomGenerator(t *testing.T) {
	opts := vibrant.DefaultOptions()
	var seen int
	opts.Generator = vibrant.GeneratorFunc(func(swatches []*vibrant.Swatch) vibrant.Palette {
		seen = len(swatches)
		return vibrant.Palette{Muted: swatches[0]}
	})

	palette, err := vibrant.Process(vibrant.PixelSlice{{R: 255, A: 255}}, opts)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if seen != 1 || palette.Muted == nil || palette.Muted.Hex() != "#ff0000" {
		t.Errorf("custom generator saw %d swatches, Muted = %v", seen, palette.Muted)
	}
}

func TestProcessLogs(t *testing.T) {
	var buf bytes.Buffer
	opts := vibrant.DefaultOptions()
	opts.Logger = hclog.New(&hclog.LoggerOptions{
		Name:   "vibrant",
		Output: &buf,
		Level:  hclog.Debug,
	})

	if _, err := vibrant.Process(vibrant.PixelSlice{{R: 255, A: 255}}, opts); err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	for _, msg := range []string{"pixels acquired", "quantized", "palette generated"} {
		if !strings.Contains(buf.String(), msg) {
			t.Errorf("log output missing %q:\n%s", msg, buf.String())
		}
	}
}

func TestProcessConcurrent(t *testing.T) {
	img := bandedImage()
	want, err := vibrant.FromImage(img, vibrant.DefaultOptions())
	if err != nil {
		t.Fatalf("FromImage() error = %v", err)
	}

	var wg sync.WaitGroup
	results := make([]vibrant.Palette, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], _ = vibrant.FromImage(img, vibrant.DefaultOptions())
		}()
	}
	wg.Wait()

	for i := range results {
		if !results[i].Equal(&want) {
			t.Errorf("result %d = %s, want %s", i, results[i].String(), want.String())
		}
	}
}
