package main

import (
	"context"
	"image"
	"time"

	"golang.org/x/image/draw"
)

// loaderQueueSize bounds the request and result channels. Requests are
// deduped by the caller, so in practice the queue holds a handful of
// neighbor preloads; the buffer only exists so the UI thread never blocks.
const loaderQueueSize = 128

// LoadResult is what a worker sends back to the UI thread. Exactly one of
// Image or Err is set. The UI thread turns Image into a texture; decoding
// stays off the UI thread.
type LoadResult struct {
	Path  ImagePath
	Image image.Image
	Err   string
}

// ImageLoader decodes images on a single worker goroutine. The UI thread
// submits paths with Request and drains results with Poll each frame.
type ImageLoader struct {
	requests chan ImagePath
	results  chan LoadResult
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewImageLoader starts the decode worker.
func NewImageLoader() *ImageLoader {
	ctx, cancel := context.WithCancel(context.Background())
	l := &ImageLoader{
		requests: make(chan ImagePath, loaderQueueSize),
		results:  make(chan LoadResult, loaderQueueSize),
		ctx:      ctx,
		cancel:   cancel,
	}
	go l.worker()
	return l
}

// Request submits a path for decoding. Returns false if the queue is
// full; the caller re-requests on a later frame.
func (l *ImageLoader) Request(p ImagePath) bool {
	select {
	case l.requests <- p:
		return true
	default:
		logger.Debug().Str("path", p.Path).Msg("load queue full, request dropped")
		return false
	}
}

// Poll returns the next completed result without blocking.
func (l *ImageLoader) Poll() (LoadResult, bool) {
	select {
	case res := <-l.results:
		return res, true
	default:
		return LoadResult{}, false
	}
}

// Stop shuts down the worker goroutine.
func (l *ImageLoader) Stop() {
	l.cancel()
}

func (l *ImageLoader) worker() {
	for {
		select {
		case <-l.ctx.Done():
			return
		case p := <-l.requests:
			l.deliver(l.decodeOne(p))
		}
	}
}

func (l *ImageLoader) decodeOne(p ImagePath) LoadResult {
	start := time.Now()
	img, err := decodeImage(p)
	if err != nil {
		logger.Warn().Str("path", p.Path).Err(err).Msg("image decode failed")
		return LoadResult{Path: p, Err: err.Error()}
	}
	b := img.Bounds()
	logger.Debug().
		Str("path", p.Path).
		Int("width", b.Dx()).
		Int("height", b.Dy()).
		Dur("took", time.Since(start)).
		Msg("image decoded")
	return LoadResult{Path: p, Image: img}
}

func (l *ImageLoader) deliver(res LoadResult) {
	select {
	case l.results <- res:
	case <-l.ctx.Done():
	}
}

// ThumbnailLoader decodes and downscales thumbnails on its own worker.
// The strip keeps at most one request in flight, so the channels are a
// strict single-producer/single-consumer pair.
type ThumbnailLoader struct {
	requests chan ImagePath
	results  chan LoadResult
	maxEdge  int
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewThumbnailLoader starts the thumbnail worker. maxEdge is the longest
// side of produced thumbnails in pixels.
func NewThumbnailLoader(maxEdge int) *ThumbnailLoader {
	ctx, cancel := context.WithCancel(context.Background())
	l := &ThumbnailLoader{
		requests: make(chan ImagePath, loaderQueueSize),
		results:  make(chan LoadResult, loaderQueueSize),
		maxEdge:  maxEdge,
		ctx:      ctx,
		cancel:   cancel,
	}
	go l.worker()
	return l
}

// Request submits a path for thumbnailing.
func (l *ThumbnailLoader) Request(p ImagePath) bool {
	select {
	case l.requests <- p:
		return true
	default:
		return false
	}
}

// Poll returns the next completed thumbnail without blocking.
func (l *ThumbnailLoader) Poll() (LoadResult, bool) {
	select {
	case res := <-l.results:
		return res, true
	default:
		return LoadResult{}, false
	}
}

// Stop shuts down the worker goroutine.
func (l *ThumbnailLoader) Stop() {
	l.cancel()
}

func (l *ThumbnailLoader) worker() {
	for {
		select {
		case <-l.ctx.Done():
			return
		case p := <-l.requests:
			res := l.decodeOne(p)
			select {
			case l.results <- res:
			case <-l.ctx.Done():
				return
			}
		}
	}
}

func (l *ThumbnailLoader) decodeOne(p ImagePath) LoadResult {
	img, err := decodeImage(p)
	if err != nil {
		logger.Debug().Str("path", p.Path).Err(err).Msg("thumbnail decode failed")
		return LoadResult{Path: p, Err: err.Error()}
	}
	return LoadResult{Path: p, Image: scaleToFit(img, l.maxEdge)}
}

// scaleToFit downscales img so its longest side is maxEdge, preserving
// aspect ratio. Images already small enough are converted but not scaled.
func scaleToFit(img image.Image, maxEdge int) *image.RGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	tw, th := w, h
	if w > maxEdge || h > maxEdge {
		if w >= h {
			tw = maxEdge
			th = h * maxEdge / w
		} else {
			th = maxEdge
			tw = w * maxEdge / h
		}
	}
	if tw < 1 {
		tw = 1
	}
	if th < 1 {
		th = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, tw, th))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
