package composer

import (
	"fmt"
	"html"

	v1 "framecraft/internal/contracts/render/v1"
)

// Layout of the rendered card.
const (
	timelineBackground = "#000000"
	titleBoxSize       = 640
	outputFormat       = "jpg"
	outputQuality      = "high"
	outputSize         = 1000

	// shadowOffset shifts the secondary-color title to fake a drop shadow.
	shadowOffset = 0.004

	clipStart  = 0
	clipLength = 1
)

// BuildEdit assembles the render description of a card. Tracks are listed
// front to back: title, title shadow, border, background photo.
func BuildEdit(tpl StyleTemplate, title, backgroundURL string) v1.Edit {
	text := "<p>" + html.EscapeString(title) + "</p>"

	return v1.Edit{
		Timeline: v1.Timeline{
			Background: timelineBackground,
			Fonts:      []v1.Font{{Src: tpl.Font.Src}},
			Tracks: []v1.Track{
				single(v1.Clip{
					Asset: titleAsset(text, tpl.Font, tpl.Font.PrimaryColor),
				}),
				single(v1.Clip{
					Asset:  titleAsset(text, tpl.Font, tpl.Font.SecondaryColor),
					Offset: &v1.Offset{X: shadowOffset, Y: -shadowOffset},
				}),
				single(v1.Clip{Asset: v1.ImageAsset(tpl.BorderURL)}),
				single(v1.Clip{Asset: v1.ImageAsset(backgroundURL)}),
			},
		},
		Output: v1.Output{
			Format:  outputFormat,
			Quality: outputQuality,
			Size:    &v1.Size{Width: outputSize, Height: outputSize},
		},
	}
}

func single(c v1.Clip) v1.Track {
	c.Start = clipStart
	c.Length = clipLength
	return v1.Track{Clips: []v1.Clip{c}}
}

func titleAsset(text string, f Font, color string) v1.Asset {
	css := fmt.Sprintf(
		`p { font-family: "%s"; color: %s; font-size: %s; line-height: %s; text-align: center; }`,
		f.Family, color, f.Size, f.LineHeight,
	)
	return v1.HTMLAsset(text, css, titleBoxSize, titleBoxSize, "transparent")
}
