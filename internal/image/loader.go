// Package image loads raster images from files, URLs and raw bytes and turns
// them into pixel samples for palette extraction.
package image

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format
	_ "image/jpeg" // Register JPEG format
	_ "image/png"  // Register PNG format
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	_ "github.com/gen2brain/avif" // Register AVIF format
	_ "golang.org/x/image/bmp"    // Register BMP format
	_ "golang.org/x/image/tiff"   // Register TIFF format
	_ "golang.org/x/image/webp"   // Register WebP format

	httputil "github.com/jmylchreest/vibrant/internal/util/http"
	"github.com/jmylchreest/vibrant/internal/util/imagecache"
)

// MaxPixels caps width*height of images accepted for decoding. Dimensions
// are read from the header first, so oversized images are rejected before
// any pixel buffer is allocated.
const MaxPixels = 100_000_000

var (
	// ErrEmptyData is returned when there are no bytes to decode.
	ErrEmptyData = errors.New("image data is empty")

	// ErrImageTooLarge is returned when an image header declares more than
	// MaxPixels pixels.
	ErrImageTooLarge = errors.New("image dimensions too large")
)

// Loader handles loading images from various sources.
type Loader interface {
	// Load loads an image from the given path.
	Load(path string) (image.Image, error)
}

// IsURL reports whether path is an HTTP(S) URL.
func IsURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// DecodeBytes decodes an image held in memory.
func DecodeBytes(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}
	return decode(bytes.NewReader(data))
}

// decode checks the declared dimensions before decoding the full image.
func decode(r io.ReadSeeker) (image.Image, error) {
	cfg, format, err := image.DecodeConfig(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image header: %w", err)
	}
	if pixels := int64(cfg.Width) * int64(cfg.Height); pixels > MaxPixels {
		return nil, fmt.Errorf("%w: %s image is %dx%d, limit is %d pixels", ErrImageTooLarge, format, cfg.Width, cfg.Height, MaxPixels)
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to rewind image data: %w", err)
	}

	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image (format: %s): %w", format, err)
	}
	return img, nil
}

// FileLoader loads images from the local filesystem.
type FileLoader struct{}

// NewFileLoader creates a new FileLoader instance.
func NewFileLoader() *FileLoader {
	return &FileLoader{}
}

// Load loads an image from a file path.
// Supported formats: JPEG, PNG, GIF, WebP, AVIF, BMP, TIFF.
func (l *FileLoader) Load(path string) (image.Image, error) {
	if path == "" {
		return nil, fmt.Errorf("image path cannot be empty")
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("image file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to stat image file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}

	file, err := os.Open(path) // #nosec G304 - User-specified image path, intended to be read
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	return decode(file)
}

// ValidateImagePath checks that path is an HTTP(S) URL or an existing file
// in a supported format. URLs are not fetched.
func ValidateImagePath(path string) error {
	if path == "" {
		return fmt.Errorf("image path cannot be empty")
	}

	// Fetching happens once, at load time.
	if IsURL(path) {
		return nil
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("image file not found: %s", path)
		}
		return fmt.Errorf("failed to access image path: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", path)
	}

	file, err := os.Open(path) // #nosec G304 - User-specified image path, intended to be read
	if err != nil {
		return fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	if _, _, err := image.DecodeConfig(file); err != nil {
		return fmt.Errorf("unsupported or invalid image format: %w", err)
	}
	return nil
}

// SupportedImageExtensions returns a list of supported image file extensions.
func SupportedImageExtensions() []string {
	return []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".avif", ".bmp", ".tif", ".tiff"}
}

// IsImageFile checks if a file has a supported image extension.
func IsImageFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return slices.Contains(SupportedImageExtensions(), ext)
}

// SmartLoaderOptions configures remote loading.
type SmartLoaderOptions struct {
	// Cache stores downloaded images on disk and reuses them.
	Cache bool

	// CacheDir overrides the image cache directory.
	CacheDir string

	// Fetch configures the HTTP request.
	Fetch httputil.FetchOptions
}

// SmartLoader loads images from both local files and HTTP(S) URLs.
type SmartLoader struct {
	fileLoader *FileLoader
	opts       SmartLoaderOptions
}

// NewSmartLoader creates a new SmartLoader instance.
func NewSmartLoader(opts SmartLoaderOptions) *SmartLoader {
	return &SmartLoader{
		fileLoader: NewFileLoader(),
		opts:       opts,
	}
}

// Load loads an image from either a local file path or HTTP(S) URL.
func (l *SmartLoader) Load(path string) (image.Image, error) {
	return l.LoadContext(context.Background(), path)
}

// LoadContext is like Load but uses ctx for remote requests.
func (l *SmartLoader) LoadContext(ctx context.Context, path string) (image.Image, error) {
	if !IsURL(path) {
		return l.fileLoader.Load(path)
	}

	if l.opts.Cache {
		cached, err := imagecache.DownloadAndCache(ctx, path, imagecache.CacheOptions{
			CacheDir: l.opts.CacheDir,
			Fetch:    l.opts.Fetch,
		})
		if err != nil {
			return nil, err
		}
		return l.fileLoader.Load(cached)
	}

	data, err := httputil.Fetch(ctx, path, l.opts.Fetch)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image from URL: %w", err)
	}
	return DecodeBytes(data)
}
