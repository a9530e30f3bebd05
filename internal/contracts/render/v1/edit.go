// Package v1 holds the wire contract of the render provider: the edit that
// describes an image, and the lifecycle of the job rendering it.
package v1

// Edit is the body of a render submission.
type Edit struct {
	Timeline Timeline `json:"timeline"`
	Output   Output   `json:"output"`
}

// Timeline lists the tracks to composite. The first track is drawn on top.
type Timeline struct {
	Background string  `json:"background"`
	Fonts      []Font  `json:"fonts,omitempty"`
	Tracks     []Track `json:"tracks"`
}

type Font struct {
	Src string `json:"src"`
}

type Track struct {
	Clips []Clip `json:"clips"`
}

// Clip places an asset on the timeline; Start and Length are in seconds.
type Clip struct {
	Asset  Asset   `json:"asset"`
	Start  float64 `json:"start"`
	Length float64 `json:"length"`
	Offset *Offset `json:"offset,omitempty"`
}

// Offset shifts a clip relative to the frame, in fractions of its size.
type Offset struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

const (
	AssetHTML  = "html"
	AssetImage = "image"
)

// Asset is either an HTML asset (HTML, CSS, Width, Height, Background) or an
// image asset (Src), selected by Type.
type Asset struct {
	Type       string `json:"type"`
	HTML       string `json:"html,omitempty"`
	CSS        string `json:"css,omitempty"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Background string `json:"background,omitempty"`
	Src        string `json:"src,omitempty"`
}

// HTMLAsset builds an HTML+CSS asset rendered into a width×height box.
func HTMLAsset(html, css string, width, height int, background string) Asset {
	return Asset{
		Type:       AssetHTML,
		HTML:       html,
		CSS:        css,
		Width:      width,
		Height:     height,
		Background: background,
	}
}

// ImageAsset builds an asset that fetches src.
func ImageAsset(src string) Asset {
	return Asset{Type: AssetImage, Src: src}
}

// Output describes the rendered file.
type Output struct {
	Format  string `json:"format"`
	Quality string `json:"quality,omitempty"`
	Size    *Size  `json:"size,omitempty"`
}

type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}
