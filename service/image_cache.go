package service

import (
	"bytes"
	"container/list"
	"context"
	"fmt"
	"image"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	// Raster formats the catalog accepts
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	"golang.org/x/sync/singleflight"
)

const (
	// defaultCacheEntries bounds the decoded-image LRU
	defaultCacheEntries = 256
	// maxDecodedDim caps decoded image dimensions; larger images are
	// downscaled before caching to bound memory
	maxDecodedDim = 1600

	fetchTimeout = 10 * time.Second
)

// CachedImage is the resolved state of one image URL. A nil Image with
// Failed=false means the item simply has no image.
type CachedImage struct {
	Image  image.Image
	Failed bool
}

// Missing reports whether the URL was absent (as opposed to failed)
func (c CachedImage) Missing() bool {
	return c.Image == nil && !c.Failed
}

// ImageCache resolves image URLs to decoded rasters. Concurrent gets for
// the same URL share one underlying fetch; failures resolve to a failure
// marker and are never surfaced as errors. Entries live in a bounded LRU.
type ImageCache struct {
	mu      sync.Mutex
	entries map[string]*list.Element
	order   *list.List // front = most recently used

	maxEntries int
	group      singleflight.Group
	client     *http.Client
	drive      DriveServiceInterface // optional; nil = plain HTTP only
}

type cacheEntry struct {
	url string
	img CachedImage
}

// NewImageCache creates an ImageCache bounded to maxEntries decoded images.
// maxEntries <= 0 selects the default. drive may be nil.
func NewImageCache(maxEntries int, drive DriveServiceInterface) *ImageCache {
	if maxEntries <= 0 {
		maxEntries = defaultCacheEntries
	}
	return &ImageCache{
		entries:    make(map[string]*list.Element),
		order:      list.New(),
		maxEntries: maxEntries,
		client:     &http.Client{Timeout: fetchTimeout},
		drive:      drive,
	}
}

// Get resolves imageURL to a decoded image or a failure marker. An empty
// URL resolves immediately to "no image" without any fetch.
func (c *ImageCache) Get(ctx context.Context, imageURL string) CachedImage {
	if strings.TrimSpace(imageURL) == "" {
		return CachedImage{}
	}

	c.mu.Lock()
	if el, ok := c.entries[imageURL]; ok {
		c.order.MoveToFront(el)
		img := el.Value.(*cacheEntry).img
		c.mu.Unlock()
		return img
	}
	c.mu.Unlock()

	// Concurrent requests for the same URL share this one fetch.
	result, _, _ := c.group.Do(imageURL, func() (interface{}, error) {
		img := c.fetchAndDecode(ctx, imageURL)
		c.store(imageURL, img)
		return img, nil
	})
	return result.(CachedImage)
}

// Len returns the number of cached entries
func (c *ImageCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *ImageCache) store(imageURL string, img CachedImage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.entries[imageURL]; ok {
		c.order.MoveToFront(el)
		el.Value.(*cacheEntry).img = img
		return
	}
	c.entries[imageURL] = c.order.PushFront(&cacheEntry{url: imageURL, img: img})
	for len(c.entries) > c.maxEntries {
		oldest := c.order.Back()
		if oldest == nil {
			break
		}
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheEntry).url)
	}
}

// fetchAndDecode resolves one URL. It never returns an error: any fetch or
// decode problem becomes a failure marker and the renderer substitutes a
// placeholder.
func (c *ImageCache) fetchAndDecode(ctx context.Context, imageURL string) CachedImage {
	data, err := c.fetch(ctx, imageURL)
	if err != nil {
		log.Printf("⚠️  ImageCache: fetch failed for %s: %v", imageURL, err)
		return CachedImage{Failed: true}
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		log.Printf("⚠️  ImageCache: decode failed for %s: %v", imageURL, err)
		return CachedImage{Failed: true}
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxDecodedDim || bounds.Dy() > maxDecodedDim {
		img = imaging.Fit(img, maxDecodedDim, maxDecodedDim, imaging.Lanczos)
	}

	log.Printf("📸 ImageCache: decoded %s (format=%s, bounds=%v)", imageURL, format, img.Bounds())
	return CachedImage{Image: img}
}

func (c *ImageCache) fetch(ctx context.Context, imageURL string) ([]byte, error) {
	if fileID := driveFileID(imageURL); fileID != "" && c.drive != nil {
		return c.drive.DownloadImage(fileID)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid image URL: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image endpoint returned status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

// driveFileID extracts the file ID from a Google Drive hosting URL
// (https://drive.google.com/uc?id=...), or "" for any other URL.
func driveFileID(imageURL string) string {
	u, err := url.Parse(imageURL)
	if err != nil {
		return ""
	}
	if u.Host != "drive.google.com" {
		return ""
	}
	return u.Query().Get("id")
}
