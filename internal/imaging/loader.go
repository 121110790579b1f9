package imaging

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"io"
	"net/http"
	"net/url"
	"os"
	"sync"
	"time"

	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// maxRemoteBytes bounds how much of a remote image is read.
const maxRemoteBytes = 64 << 20

// ImageCache provides thread-safe caching of decoded source images.
//
// Images are keyed by the reference they were loaded from: a file path or an
// http(s) URL. Once decoded, subsequent Load calls for the same reference
// return the cached copy along with the format name reported by the decoder.
//
// ImageCache is safe for concurrent use by multiple goroutines.
//
// # Example Usage
//
//	cache := imaging.NewImageCache()
//	img, err := cache.Load(ctx, "/path/to/photo.jpg")
//	if err != nil {
//	    return err
//	}
//	// Use img...
//	cache.Evict("/path/to/photo.jpg") // Optional: free memory
type ImageCache struct {
	mu       sync.RWMutex
	images   map[string]cachedImage
	client   *http.Client
	maxBytes int64
}

type cachedImage struct {
	img    image.Image
	format string
	size   int64
}

// NewImageCache creates an empty cache. Remote images are fetched with the
// given timeout; zero means no timeout.
func NewImageCache(timeout time.Duration) *ImageCache {
	return &ImageCache{
		images:   make(map[string]cachedImage),
		client:   &http.Client{Timeout: timeout},
		maxBytes: maxRemoteBytes,
	}
}

// Load retrieves an image from the cache or decodes it from ref.
//
// Supported formats are PNG, JPEG, GIF, BMP, TIFF and WebP. A ref with an
// http or https scheme is downloaded; anything else is treated as a path.
//
// # Errors
//
//   - Returns error if the file or URL cannot be read
//   - Returns error if the remote server does not answer 200 OK
//   - Returns error if the content is not a supported image
func (c *ImageCache) Load(ctx context.Context, ref string) (image.Image, error) {
	entry, err := c.load(ctx, ref)
	if err != nil {
		return nil, err
	}
	return entry.img, nil
}

func (c *ImageCache) load(ctx context.Context, ref string) (cachedImage, error) {
	c.mu.RLock()
	if entry, ok := c.images[ref]; ok {
		c.mu.RUnlock()
		return entry, nil
	}
	c.mu.RUnlock()

	data, err := c.read(ctx, ref)
	if err != nil {
		return cachedImage{}, err
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return cachedImage{}, fmt.Errorf("failed to decode image: %w", err)
	}

	entry := cachedImage{img: img, format: format, size: int64(len(data))}
	c.mu.Lock()
	c.images[ref] = entry
	c.mu.Unlock()

	return entry, nil
}

func (c *ImageCache) read(ctx context.Context, ref string) ([]byte, error) {
	if !isRemote(ref) {
		data, err := os.ReadFile(ref)
		if err != nil {
			return nil, fmt.Errorf("failed to open image: %w", err)
		}
		return data, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid image URL %q: %w", ref, err)
	}
	res, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("unable to download image from %s: %w", ref, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unable to download image from %s: status %s", ref, res.Status)
	}

	data, err := io.ReadAll(io.LimitReader(res.Body, c.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("unable to read response body: %w", err)
	}
	if int64(len(data)) > c.maxBytes {
		return nil, fmt.Errorf("image at %s exceeds %d MiB", ref, c.maxBytes>>20)
	}
	return data, nil
}

// isRemote reports whether ref is a well-formed http(s) URL.
func isRemote(ref string) bool {
	u, err := url.Parse(ref)
	if err != nil || u.Host == "" {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

// Clear removes all images from the cache.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]cachedImage)
	c.mu.Unlock()
}

// Evict removes one image from the cache by its reference.
// If the reference is not cached, this method does nothing.
func (c *ImageCache) Evict(ref string) {
	c.mu.Lock()
	delete(c.images, ref)
	c.mu.Unlock()
}

// ImageInfo describes a loaded source image.
type ImageInfo struct {
	// Source is the reference the image was loaded from.
	Source string `json:"source"`

	// Width and Height are the natural (intrinsic) pixel dimensions.
	Width  int `json:"width"`
	Height int `json:"height"`

	// Format is the decoder name: "png", "jpeg", "gif", "bmp", "tiff" or "webp".
	Format string `json:"format"`

	// HasAlpha indicates whether the decoded image carries an alpha channel.
	HasAlpha bool `json:"has_alpha"`

	// SizeBytes is the encoded size that was read.
	SizeBytes int64 `json:"size_bytes"`
}

// LoadImageInfo loads ref into the cache (if not already cached) and returns
// the decoded image with its metadata.
func LoadImageInfo(ctx context.Context, cache *ImageCache, ref string) (image.Image, *ImageInfo, error) {
	entry, err := cache.load(ctx, ref)
	if err != nil {
		return nil, nil, err
	}

	hasAlpha := false
	switch entry.img.(type) {
	case *image.RGBA, *image.NRGBA, *image.RGBA64, *image.NRGBA64, *image.Paletted:
		hasAlpha = true
	}

	bounds := entry.img.Bounds()
	return entry.img, &ImageInfo{
		Source:    ref,
		Width:     bounds.Dx(),
		Height:    bounds.Dy(),
		Format:    entry.format,
		HasAlpha:  hasAlpha,
		SizeBytes: entry.size,
	}, nil
}
