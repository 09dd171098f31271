package main

import (
	"bytes"
	"image/color"
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
func DrawFilledRect(screen *ebiten.Image, x, y, w, h float64, bgColor color.RGBA) {
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), bgColor, false)
}

func drawBorder(img *ebiten.Image, width, height int, borderColor color.RGBA) {
	DrawFilledRect(img, 0, 0, float64(width), 3, borderColor)
	DrawFilledRect(img, 0, float64(height-3), float64(width), 3, borderColor)
	DrawFilledRect(img, 0, 0, 3, float64(height), borderColor)
	DrawFilledRect(img, float64(width-3), 0, 3, float64(height), borderColor)
}

// CreateErrorImage creates an error placeholder image with filename and error message
func CreateErrorImage(width, height int, filename, errorMsg string) *ebiten.Image {
	// Default size if not specified
	if width <= 0 || height <= 0 {
		width, height = 400, 300
	}

	white := color.RGBA{255, 255, 255, 255}
	errorImg := ebiten.NewImage(width, height)
	errorImg.Fill(color.RGBA{120, 30, 30, 255}) // Dark red background
	drawBorder(errorImg, width, height, white)

	// Without a font source the colored rectangle has to do
	if globalFontSource == nil {
		return errorImg
	}

	errorFont := &text.GoTextFace{
		Source: globalFontSource,
		Size:   20.0,
	}

	errorTitle := "LOAD FAILED"
	fileText := "File: " + filepath.Base(filename)
	reasonText := "Reason: " + errorMsg
	retryText := "Press R to retry"

	// Truncate long text to fit within image bounds
	maxChars := (width - 20) / 10 // Rough estimate: 10px per character
	if len(fileText) > maxChars {
		fileText = fileText[:maxChars-3] + "..."
	}
	if len(reasonText) > maxChars {
		reasonText = reasonText[:maxChars-3] + "..."
	}

	DrawText(errorImg, errorTitle, errorFont, 10, 30, white)
	DrawText(errorImg, fileText, errorFont, 10, 60, white)
	DrawText(errorImg, reasonText, errorFont, 10, 90, white)
	DrawText(errorImg, retryText, errorFont, 10, 120, white)

	return errorImg
}

// CreateLoadingImage creates a placeholder shown while a page is in flight.
func CreateLoadingImage(width, height int) *ebiten.Image {
	if width <= 0 || height <= 0 {
		width, height = 400, 300
	}

	img := ebiten.NewImage(width, height)
	img.Fill(color.RGBA{40, 40, 48, 255})
	drawBorder(img, width, height, color.RGBA{90, 90, 100, 255})

	if globalFontSource != nil {
		font := &text.GoTextFace{Source: globalFontSource, Size: 20.0}
		DrawText(img, "Loading...", font, 10, 30, color.RGBA{180, 180, 180, 255})
	}
	return img
}
