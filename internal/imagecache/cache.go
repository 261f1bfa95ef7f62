// Package imagecache provides local caching of furniture images: a two-level
// cache (memory over disk) in front of the remote catalog storage.
package imagecache

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	xdraw "golang.org/x/image/draw"
)

// Downloader fetches a raw image by filename. *catalog.Client satisfies it.
type Downloader interface {
	DownloadImage(ctx context.Context, filename string) ([]byte, error)
}

// Cache resolves furniture image filenames to decoded images. Lookups hit
// memory first, then the on-disk cache directory, then the downloader.
type Cache struct {
	dir        string
	downloader Downloader
	logger     *slog.Logger

	mu     sync.RWMutex
	images map[string]image.Image
}

// New creates a cache rooted at dir. The directory is created if needed.
func New(dir string, downloader Downloader, logger *slog.Logger) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache dir: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{
		dir:        dir,
		downloader: downloader,
		logger:     logger,
		images:     make(map[string]image.Image),
	}, nil
}

// DefaultDir returns the per-user image cache directory.
func DefaultDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve cache dir: %w", err)
	}
	return filepath.Join(base, "collage-maker", "images"), nil
}

// Get returns the decoded image for filename, fetching and caching it on a
// miss. Concurrent callers for the same filename may both download; the
// second write wins and the results are identical.
func (c *Cache) Get(ctx context.Context, filename string) (image.Image, error) {
	c.mu.RLock()
	img, ok := c.images[filename]
	c.mu.RUnlock()
	if ok {
		return img, nil
	}

	path := filepath.Join(c.dir, filepath.Base(filename))
	if data, err := os.ReadFile(path); err == nil {
		if img, _, err := image.Decode(bytes.NewReader(data)); err == nil {
			c.store(filename, img)
			return img, nil
		}
		// Corrupt cache file: fall through and re-download.
		c.logger.Warn("discarding corrupt cached image", "file", path)
		os.Remove(path)
	}

	if c.downloader == nil {
		return nil, fmt.Errorf("image %s not cached and no downloader configured", filename)
	}

	data, err := c.downloader.DownloadImage(ctx, filename)
	if err != nil {
		return nil, err
	}
	img, _, err = image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", filename, err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		c.logger.Warn("failed to write image cache", "file", path, "error", err)
	}
	c.store(filename, img)
	return img, nil
}

func (c *Cache) store(filename string, img image.Image) {
	c.mu.Lock()
	c.images[filename] = img
	c.mu.Unlock()
}

// Put inserts a pre-decoded image, bypassing the downloader. Used by tests
// and by drag-in of local files.
func (c *Cache) Put(filename string, img image.Image) error {
	path := filepath.Join(c.dir, filepath.Base(filename))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create cache file: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("failed to encode cache file: %w", err)
	}
	c.store(filename, img)
	return nil
}

// Thumbnail scales img to fit within maxDim on its longer side, preserving
// aspect ratio. Images already small enough are returned as is.
func Thumbnail(img image.Image, maxDim int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxDim && h <= maxDim {
		return img
	}

	var tw, th int
	if w >= h {
		tw = maxDim
		th = h * maxDim / w
	} else {
		th = maxDim
		tw = w * maxDim / h
	}
	if tw < 1 {
		tw = 1
	}
	if th < 1 {
		th = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, tw, th))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, xdraw.Over, nil)
	return dst
}
