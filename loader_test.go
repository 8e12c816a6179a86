package main

import (
	"image"
	"path/filepath"
	"testing"
	"time"
)

// pollUntil drains the loader until a result arrives or the deadline hits.
func pollUntil(t *testing.T, poll func() (LoadResult, bool)) LoadResult {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if res, ok := poll(); ok {
			return res
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("timed out waiting for loader result")
	return LoadResult{}
}

func TestImageLoaderRoundtrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "img.png")
	writeTestPNG(t, path, 6, 4)

	loader := NewImageLoader()
	defer loader.Stop()

	if !loader.Request(ImagePath{Path: path}) {
		t.Fatal("request rejected on empty queue")
	}

	res := pollUntil(t, loader.Poll)

	if res.Err != "" {
		t.Fatalf("unexpected error: %s", res.Err)
	}
	if res.Path.Path != path {
		t.Errorf("result path mismatch: %s", res.Path.Path)
	}
	if res.Image == nil || res.Image.Bounds().Dx() != 6 || res.Image.Bounds().Dy() != 4 {
		t.Errorf("unexpected decoded image: %v", res.Image)
	}
}

func TestImageLoaderErrorResult(t *testing.T) {
	loader := NewImageLoader()
	defer loader.Stop()

	bad := ImagePath{Path: filepath.Join(t.TempDir(), "missing.png")}
	if !loader.Request(bad) {
		t.Fatal("request rejected on empty queue")
	}

	res := pollUntil(t, loader.Poll)

	if res.Err == "" {
		t.Error("expected an error result for a missing file")
	}
	if res.Image != nil {
		t.Error("error result must not carry an image")
	}
	if res.Path.Path != bad.Path {
		t.Errorf("result path mismatch: %s", res.Path.Path)
	}
}

func TestThumbnailLoaderDownscales(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "big.png")
	writeTestPNG(t, path, 256, 128)

	loader := NewThumbnailLoader(64)
	defer loader.Stop()

	if !loader.Request(ImagePath{Path: path}) {
		t.Fatal("request rejected on empty queue")
	}

	res := pollUntil(t, loader.Poll)

	if res.Err != "" {
		t.Fatalf("unexpected error: %s", res.Err)
	}
	if res.Image.Bounds().Dx() != 64 || res.Image.Bounds().Dy() != 32 {
		t.Errorf("expected 64x32 thumbnail, got %v", res.Image.Bounds())
	}
}

func TestScaleToFit(t *testing.T) {
	tests := []struct {
		name         string
		w, h         int
		maxEdge      int
		wantW, wantH int
	}{
		{"Wide landscape", 100, 50, 64, 64, 32},
		{"Tall portrait", 50, 100, 64, 32, 64},
		{"Already small", 10, 10, 64, 10, 10},
		{"Square at limit", 64, 64, 64, 64, 64},
		{"Extreme aspect", 1000, 1, 64, 64, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := image.NewRGBA(image.Rect(0, 0, tt.w, tt.h))
			dst := scaleToFit(src, tt.maxEdge)

			if dst.Bounds().Dx() != tt.wantW || dst.Bounds().Dy() != tt.wantH {
				t.Errorf("scaleToFit(%dx%d, %d) = %v, want %dx%d",
					tt.w, tt.h, tt.maxEdge, dst.Bounds(), tt.wantW, tt.wantH)
			}
		})
	}
}

func TestPollEmptyDoesNotBlock(t *testing.T) {
	loader := NewImageLoader()
	defer loader.Stop()

	done := make(chan struct{})
	go func() {
		_, ok := loader.Poll()
		if ok {
			t.Error("Poll on an idle loader returned a result")
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Poll blocked")
	}
}
