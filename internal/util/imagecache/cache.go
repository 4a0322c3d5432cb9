// Package imagecache downloads remote images once and keeps them on disk.
package imagecache

import (
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	httputil "github.com/jmylchreest/vibrant/internal/util/http"
)

// EnvCacheDir overrides the default cache directory.
const EnvCacheDir = "VIBRANT_IMAGE_CACHE_DIR"

// CacheOptions configures image caching behavior.
type CacheOptions struct {
	// CacheDir is the directory where images will be cached.
	// If empty, DefaultCacheDir is used.
	CacheDir string

	// Filename is the filename to use for the cached image.
	// If empty, uses a hash of the URL + original extension.
	Filename string

	// AllowOverwrite determines if existing cached files can be overwritten.
	// Default: false (reuse existing cached files).
	AllowOverwrite bool

	// Fetch configures the download.
	Fetch httputil.FetchOptions
}

// DefaultCacheDir returns $VIBRANT_IMAGE_CACHE_DIR when set, otherwise
// vibrant/images under the user cache directory.
func DefaultCacheDir() (string, error) {
	if dir := os.Getenv(EnvCacheDir); dir != "" {
		return dir, nil
	}
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to determine cache directory: %w", err)
		}
		return filepath.Join(home, ".cache", "vibrant", "images"), nil
	}
	return filepath.Join(cacheDir, "vibrant", "images"), nil
}

// generateFilename creates a deterministic filename from a URL.
// Uses SHA256 hash of URL + original file extension.
func generateFilename(url string) string {
	hash := sha256.Sum256([]byte(url))
	hashStr := fmt.Sprintf("%x", hash[:16])

	// Drop the query string before looking for an extension.
	path := url
	if idx := strings.IndexAny(path, "?#"); idx != -1 {
		path = path[:idx]
	}
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" || len(ext) > 5 || strings.Contains(ext, "/") {
		ext = ".img"
	}

	return hashStr + ext
}

// CachedPath returns where url would be stored, without downloading it.
func CachedPath(url string, opts CacheOptions) (string, error) {
	cacheDir := opts.CacheDir
	if cacheDir == "" {
		defaultDir, err := DefaultCacheDir()
		if err != nil {
			return "", err
		}
		cacheDir = defaultDir
	}
	filename := opts.Filename
	if filename == "" {
		filename = generateFilename(url)
	}
	return filepath.Join(cacheDir, filename), nil
}

// DownloadAndCache downloads a remote image and saves it to the cache directory.
// Returns the local file path where the image was saved.
func DownloadAndCache(ctx context.Context, url string, opts CacheOptions) (string, error) {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return "", fmt.Errorf("invalid URL: must start with http:// or https://")
	}

	cachedPath, err := CachedPath(url, opts)
	if err != nil {
		return "", fmt.Errorf("failed to determine cache path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(cachedPath), 0o755); err != nil { // #nosec G301 - Cache directory needs standard permissions
		return "", fmt.Errorf("failed to create cache directory: %w", err)
	}

	if !opts.AllowOverwrite {
		if _, err := os.Stat(cachedPath); err == nil {
			return cachedPath, nil
		}
	}

	data, err := httputil.Fetch(ctx, url, opts.Fetch)
	if err != nil {
		return "", fmt.Errorf("failed to download image: %w", err)
	}

	// Write then rename so readers never see a partial file.
	tmp := cachedPath + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil { // #nosec G306 - Cache files need standard read permissions
		return "", fmt.Errorf("failed to write cached image: %w", err)
	}
	if err := os.Rename(tmp, cachedPath); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("failed to write cached image: %w", err)
	}

	return cachedPath, nil
}
