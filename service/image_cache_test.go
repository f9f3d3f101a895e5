package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestImageCacheEmptyURL(t *testing.T) {
	cache := NewImageCache(0, nil)

	got := cache.Get(context.Background(), "")
	assert.True(t, got.Missing())
	assert.False(t, got.Failed)
	assert.Equal(t, 0, cache.Len(), "no entry is created for absent URLs")

	got = cache.Get(context.Background(), "   ")
	assert.True(t, got.Missing())
}

func TestImageCacheDecodesAndCaches(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Write(pngBytes(t, 10, 6))
	}))
	defer srv.Close()

	cache := NewImageCache(0, nil)
	got := cache.Get(context.Background(), srv.URL+"/foto.png")
	require.NotNil(t, got.Image)
	assert.Equal(t, 10, got.Image.Bounds().Dx())

	// Second get is served from the cache
	cache.Get(context.Background(), srv.URL+"/foto.png")
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestImageCacheDedupesConcurrentFetches(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		time.Sleep(50 * time.Millisecond)
		w.Write(pngBytes(t, 8, 8))
	}))
	defer srv.Close()

	cache := NewImageCache(0, nil)
	url := srv.URL + "/compartida.png"

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got := cache.Get(context.Background(), url)
			assert.NotNil(t, got.Image)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&hits), "same URL must share one underlying fetch")
}

func TestImageCacheFailureMarkers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/rota.png":
			w.Write([]byte("esto no es una imagen"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	cache := NewImageCache(0, nil)

	got := cache.Get(context.Background(), srv.URL+"/nope.png")
	assert.True(t, got.Failed, "HTTP error resolves to a failure marker")
	assert.Nil(t, got.Image)

	got = cache.Get(context.Background(), srv.URL+"/rota.png")
	assert.True(t, got.Failed, "decode error resolves to a failure marker")

	// Unreachable host: still a marker, never an error or panic
	got = cache.Get(context.Background(), "http://127.0.0.1:1/x.png")
	assert.True(t, got.Failed)
}

func TestImageCacheLRUBound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(pngBytes(t, 4, 4))
	}))
	defer srv.Close()

	cache := NewImageCache(2, nil)
	for i := 0; i < 5; i++ {
		cache.Get(context.Background(), fmt.Sprintf("%s/img-%d.png", srv.URL, i))
	}
	assert.Equal(t, 2, cache.Len())
}

func TestImageCacheDownscalesOversizedDecodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(pngBytes(t, maxDecodedDim+400, 100))
	}))
	defer srv.Close()

	cache := NewImageCache(0, nil)
	got := cache.Get(context.Background(), srv.URL+"/grande.png")
	require.NotNil(t, got.Image)
	assert.LessOrEqual(t, got.Image.Bounds().Dx(), maxDecodedDim)
}

// driveStub satisfies DriveServiceInterface for routing tests
type driveStub struct {
	fileIDs []string
	data    []byte
}

func (d *driveStub) DownloadImage(fileID string) ([]byte, error) {
	d.fileIDs = append(d.fileIDs, fileID)
	return d.data, nil
}

func TestImageCacheRoutesDriveURLs(t *testing.T) {
	stub := &driveStub{data: pngBytes(t, 5, 5)}
	cache := NewImageCache(0, stub)

	got := cache.Get(context.Background(), "https://drive.google.com/uc?id=abc123")
	require.NotNil(t, got.Image)
	require.Len(t, stub.fileIDs, 1)
	assert.Equal(t, "abc123", stub.fileIDs[0])
}
