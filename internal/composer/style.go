package composer

import "strconv"

// Style is a named bundle of presentation choices offered on the form.
type Style int

const (
	Style1 Style = iota
	Style2
	Style3

	numStyles
)

var styleNames = [...]string{
	Style1: "style_1",
	Style2: "style_2",
	Style3: "style_3",
}

// Every style needs a name and a built-in template. Adding a style without
// both fails to compile.
var (
	_ [numStyles - Style(len(styleNames))]struct{}
	_ [Style(len(styleNames)) - numStyles]struct{}
	_ [numStyles - Style(len(builtinTemplates))]struct{}
	_ [Style(len(builtinTemplates)) - numStyles]struct{}
)

// ParseStyle maps a form value onto a Style.
func ParseStyle(name string) (Style, bool) {
	for s, n := range styleNames {
		if n == name {
			return Style(s), true
		}
	}
	return 0, false
}

// Styles returns every style in declaration order.
func Styles() []Style {
	out := make([]Style, 0, numStyles)
	for s := Style(0); s < numStyles; s++ {
		out = append(out, s)
	}
	return out
}

func (s Style) Valid() bool {
	return s >= 0 && s < numStyles
}

func (s Style) String() string {
	if !s.Valid() {
		return "style(" + strconv.Itoa(int(s)) + ")"
	}
	return styleNames[s]
}

// Font describes the typeface and colors used for the title.
type Font struct {
	Src            string `yaml:"src"`
	Family         string `yaml:"family"`
	PrimaryColor   string `yaml:"primary_color"`
	SecondaryColor string `yaml:"secondary_color"`
	Size           string `yaml:"size"`
	LineHeight     string `yaml:"line_height"`
}

// StyleTemplate is the static rendering configuration of a Style.
type StyleTemplate struct {
	BorderURL string `yaml:"border_url"`
	Font      Font   `yaml:"font"`
}

const assetBase = "https://templates.shotstack.io/basic/asset"

var builtinTemplates = [...]StyleTemplate{
	Style1: {
		BorderURL: assetBase + "/image/border/dots-curls/square/1080-white.png",
		Font: Font{
			Src:            assetBase + "/font/rye-regular.ttf",
			Family:         "Rye",
			PrimaryColor:   "#ffffff",
			SecondaryColor: "#33555555",
			Size:           "64px",
			LineHeight:     "100",
		},
	},
	Style2: {
		BorderURL: assetBase + "/image/border/tape-scratches/square/1080-white.png",
		Font: Font{
			Src:            assetBase + "/font/specialelite-regular.ttf",
			Family:         "Special Elite",
			PrimaryColor:   "#ffffff",
			SecondaryColor: "#cc333333",
			Size:           "68px",
			LineHeight:     "135",
		},
	},
	Style3: {
		BorderURL: assetBase + "/image/border/rough-frame-dots/square/1080-white.png",
		Font: Font{
			Src:            assetBase + "/font/homemadeapple-regular.ttf",
			Family:         "Homemade Apple",
			PrimaryColor:   "#ffffff",
			SecondaryColor: "#33555555",
			Size:           "54px",
			LineHeight:     "80",
		},
	},
}
