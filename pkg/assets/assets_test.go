package assets

import (
	"bytes"
	"context"
	stderrors "errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/image/bmp"

	"github.com/electripy/electripy/pkg/errors"
)

func testImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 0x80, A: 0xff})
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestIsURL(t *testing.T) {
	tests := []struct {
		src  string
		want bool
	}{
		{"https://img.icons8.com/material-outlined/24/000000/add.png", true},
		{"http://localhost/logo.png", true},
		{"./ui/public/logo.png", false},
		{"/abs/path.png", false},
		{"ftp://example.com/a.png", false},
		{"HTTPS://IMG.ICONS8.COM/add.png", true},
		{"Http://localhost/logo.png", true},
		{"http:", false},
		{"./http/logo.png", false},
	}
	for _, tt := range tests {
		if got := IsURL(tt.src); got != tt.want {
			t.Errorf("IsURL(%q) = %v, want %v", tt.src, got, tt.want)
		}
	}
}

func TestFetcherLoadsURL(t *testing.T) {
	payload := encodePNG(t, testImage(24, 24))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(payload)
	}))
	defer srv.Close()

	img, err := NewFetcher().Load(context.Background(), srv.URL+"/add.png")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if got := img.Bounds().Size(); got != image.Pt(24, 24) {
		t.Errorf("bounds = %v, want 24x24", got)
	}
}

func TestFetcherHTTPFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := NewFetcher().Load(context.Background(), srv.URL+"/missing.png")
	if !stderrors.Is(err, errors.ErrImageLoad) {
		t.Fatalf("Load error = %v, want ErrImageLoad", err)
	}
	var ee *errors.ElementError
	if !stderrors.As(err, &ee) || ee.Kind != errors.KindImageLoad {
		t.Errorf("error = %#v, want ElementError of kind image-load", err)
	}
}

func TestFetcherTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := NewFetcher(WithTimeout(50*time.Millisecond)).Load(context.Background(), srv.URL)
	if !stderrors.Is(err, errors.ErrImageLoad) {
		t.Fatalf("Load error = %v, want ErrImageLoad", err)
	}
}

func TestFetcherUndecodable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not an image</html>"))
	}))
	defer srv.Close()

	if _, err := NewFetcher().Load(context.Background(), srv.URL); !stderrors.Is(err, errors.ErrImageLoad) {
		t.Fatalf("Load error = %v, want ErrImageLoad", err)
	}
}

func TestFetcherLocalFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logo.bmp")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := bmp.Encode(f, testImage(8, 4)); err != nil {
		t.Fatal(err)
	}
	f.Close()

	img, err := NewFetcher().Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if got := img.Bounds().Size(); got != image.Pt(8, 4) {
		t.Errorf("bounds = %v, want 8x4", got)
	}

	if _, err := NewFetcher().Load(context.Background(), filepath.Join(dir, "nope.png")); !stderrors.Is(err, errors.ErrImageLoad) {
		t.Errorf("missing file error = %v, want ErrImageLoad", err)
	}
}

func TestFetcherUsesCache(t *testing.T) {
	var hits atomic.Int32
	payload := encodePNG(t, testImage(4, 4))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write(payload)
	}))
	defer srv.Close()

	cache, err := OpenBoltCache(filepath.Join(t.TempDir(), "assets.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer cache.Close()

	f := NewFetcher(WithCache(cache))
	for i := 0; i < 3; i++ {
		if _, err := f.Load(context.Background(), srv.URL+"/icon.png"); err != nil {
			t.Fatalf("Load #%d error: %v", i, err)
		}
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("server hit %d times, want 1", got)
	}
}

func TestBoltCache(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "assets.db")
	c, err := OpenBoltCache(path)
	if err != nil {
		t.Fatal(err)
	}

	if _, ok, err := c.Get("k"); ok || err != nil {
		t.Fatalf("Get on empty cache = %v, %v", ok, err)
	}
	if err := c.Put("k", []byte("v1")); err != nil {
		t.Fatal(err)
	}
	if err := c.Close(); err != nil {
		t.Fatal(err)
	}

	c, err = OpenBoltCache(path)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	data, ok, err := c.Get("k")
	if err != nil || !ok || string(data) != "v1" {
		t.Fatalf("Get after reopen = %q, %v, %v", data, ok, err)
	}
	if err := c.Put("empty", []byte{}); err != nil {
		t.Fatal(err)
	}
	if data, ok, err := c.Get("empty"); err != nil || !ok || len(data) != 0 {
		t.Errorf("Get of an empty value = %q, %v, %v; want a hit", data, ok, err)
	}
	if _, ok, _ := c.Get("em"); ok {
		t.Error("prefix of a stored key reported as a hit")
	}
	if err := c.Delete("k"); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := c.Get("k"); ok {
		t.Error("key survived Delete")
	}
}

func TestDecodeFormats(t *testing.T) {
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, testImage(3, 2)); err != nil {
		t.Fatal(err)
	}
	_, format, err := Decode(&buf)
	if err != nil || format != "bmp" {
		t.Errorf("Decode(bmp) = %q, %v", format, err)
	}

	_, format, err = Decode(bytes.NewReader(encodePNG(t, testImage(3, 2))))
	if err != nil || format != "png" {
		t.Errorf("Decode(png) = %q, %v", format, err)
	}
}

func TestContainSize(t *testing.T) {
	tests := []struct {
		srcW, srcH, reqW, reqH int
		wantW, wantH           int
	}{
		{24, 24, 100, 50, 50, 50},
		{200, 100, 100, 50, 100, 50},
		{300, 100, 100, 50, 100, 33},
		{100, 200, 100, 50, 25, 50},
		{0, 10, 100, 50, 100, 50},
	}
	for _, tt := range tests {
		w, h := ContainSize(tt.srcW, tt.srcH, tt.reqW, tt.reqH)
		if w != tt.wantW || h != tt.wantH {
			t.Errorf("ContainSize(%d, %d, %d, %d) = %d, %d, want %d, %d",
				tt.srcW, tt.srcH, tt.reqW, tt.reqH, w, h, tt.wantW, tt.wantH)
		}
	}
}

func TestResize(t *testing.T) {
	out := Resize(testImage(24, 24), 50, 30)
	if got := out.Bounds().Size(); got != image.Pt(50, 30) {
		t.Errorf("Resize bounds = %v, want 50x30", got)
	}
	if got := Resize(testImage(4, 4), 0, 10).Bounds(); !got.Empty() {
		t.Errorf("Resize to zero width = %v, want empty", got)
	}
}
