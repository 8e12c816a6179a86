package main

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	// Overlay message display duration
	overlayMessageDuration = 2 * time.Second
)

// RenderState provides read-only access to game state for the renderer
type RenderState interface {
	// Current image
	GetCurrentTexture() *ebiten.Image
	GetCurrentPath() (ImagePath, bool)
	IsLoading() bool
	GetErrorMessage() string

	// View transform
	GetViewZoom() float64
	GetViewPan() (float64, float64)

	// UI state
	IsShowingHelp() bool
	IsShowingInfo() bool
	IsFullscreen() bool
	GetOverlayMessage() string
	GetOverlayMessageTime() time.Time

	// Display data
	GetCurrentIndex() int
	GetTotalCount() int
	GetFontSize() float64
	GetConfigStatus() ConfigLoadResult
	GetKeybindings() map[string][]string
}

// InputActions provides action methods for the input handler
type InputActions interface {
	// Application control
	Exit()

	// Display toggles
	ToggleHelp()
	ToggleInfo()
	ToggleThumbnails()
	ToggleFullscreen()

	// Navigation
	NavigateNext()
	NavigatePrevious()
	JumpToImage(index int)

	// Settings
	CycleSortMethod()

	// Zoom and pan
	ZoomIn()
	ZoomOut()
	ZoomReset()
	PanBy(dx, dy float64)

	// Messages
	ShowOverlayMessage(message string)

	// Common data access
	GetCurrentIndex() int
	GetTotalCount() int
}
