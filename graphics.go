package main

import (
	"bytes"
	"image/color"
	"math"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"
)

// Global font source for text rendering
var globalFontSource *text.GoTextFaceSource

// InitGraphics initializes the global font source for text rendering
func InitGraphics() error {
	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return err
	}
	globalFontSource = s
	return nil
}

// DrawText draws text with specified position and color
func DrawText(screen *ebiten.Image, textString string, font *text.GoTextFace, x, y float64, textColor color.RGBA) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(textColor)
	text.Draw(screen, textString, font, op)
}

// DrawFilledRect draws filled rectangles with float64 coordinates
func DrawFilledRect(screen *ebiten.Image, x, y, w, h float64, bgColor color.Color) {
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), bgColor, false)
}

// DrawSpinner draws a circle of fading dots centered at (cx, cy). phase
// advances the rotation; pass an increasing seconds value.
func DrawSpinner(screen *ebiten.Image, cx, cy, radius, phase float64) {
	const dots = 8
	for i := 0; i < dots; i++ {
		angle := 2*math.Pi*float64(i)/dots + phase
		x := cx + radius*math.Cos(angle)
		y := cy + radius*math.Sin(angle)

		// Trailing dots fade out
		alpha := 0.25 + 0.75*float64(i)/dots
		c := color.RGBA{255, 255, 255, uint8(255 * alpha)}
		vector.DrawFilledCircle(screen, float32(x), float32(y), float32(radius/5), c, true)
	}
}

// CreateErrorImage creates an error placeholder image with filename and error message
func CreateErrorImage(width, height int, filename, errorMsg string) *ebiten.Image {
	if width <= 0 || height <= 0 {
		width, height = 400, 300
	}

	errorImg := ebiten.NewImage(width, height)
	errorImg.Fill(color.RGBA{120, 30, 30, 255}) // Dark red background

	// White border
	white := color.RGBA{255, 255, 255, 255}
	DrawFilledRect(errorImg, 0, 0, float64(width), 3, white)
	DrawFilledRect(errorImg, 0, float64(height-3), float64(width), 3, white)
	DrawFilledRect(errorImg, 0, 0, 3, float64(height), white)
	DrawFilledRect(errorImg, float64(width-3), 0, 3, float64(height), white)

	if globalFontSource == nil {
		// No font yet; the bordered rectangle alone marks the failure
		return errorImg
	}

	errorFont := &text.GoTextFace{
		Source: globalFontSource,
		Size:   20.0,
	}

	fileText := "File: " + filepath.Base(filename)
	reasonText := "Reason: " + errorMsg

	// Truncate long text to fit within image bounds
	maxChars := (width - 20) / 10 // Rough estimate: 10px per character
	if len(fileText) > maxChars && maxChars > 3 {
		fileText = fileText[:maxChars-3] + "..."
	}
	if len(reasonText) > maxChars && maxChars > 3 {
		reasonText = reasonText[:maxChars-3] + "..."
	}

	DrawText(errorImg, "ERROR", errorFont, 10, 30, white)
	DrawText(errorImg, fileText, errorFont, 10, 60, white)
	DrawText(errorImg, reasonText, errorFont, 10, 90, white)

	return errorImg
}
