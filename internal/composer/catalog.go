package composer

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Catalog resolves a Style to its template. The set of styles is fixed;
// a catalog file may only override the values of known styles.
type Catalog struct {
	templates [numStyles]StyleTemplate
}

// catalogFile is the YAML layout of a style catalog:
//
//	styles:
//	  style_2:
//	    border_url: https://cdn.example.com/borders/tape.png
//	    font:
//	      secondary_color: "#cc000000"
type catalogFile struct {
	Styles map[string]StyleTemplate `yaml:"styles"`
}

// DefaultCatalog returns the built-in templates.
func DefaultCatalog() *Catalog {
	return &Catalog{templates: builtinTemplates}
}

// LoadCatalog reads YAML overrides from r on top of the built-in templates.
// Empty values keep the built-in value.
func LoadCatalog(r io.Reader) (*Catalog, error) {
	var file catalogFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && err != io.EOF {
		return nil, fmt.Errorf("parse style catalog: %w", err)
	}

	c := DefaultCatalog()
	for name, override := range file.Styles {
		s, ok := ParseStyle(name)
		if !ok {
			return nil, fmt.Errorf("style catalog: unknown style %q", name)
		}
		c.templates[s] = merge(c.templates[s], override)
	}
	return c, nil
}

// LoadCatalogFile is LoadCatalog for a file on disk.
func LoadCatalogFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open style catalog: %w", err)
	}
	defer f.Close()
	return LoadCatalog(f)
}

// Template returns the template of s. s must be valid.
func (c *Catalog) Template(s Style) StyleTemplate {
	return c.templates[s]
}

func merge(base, o StyleTemplate) StyleTemplate {
	pick := func(dst *string, v string) {
		if v = strings.TrimSpace(v); v != "" {
			*dst = v
		}
	}
	pick(&base.BorderURL, o.BorderURL)
	pick(&base.Font.Src, o.Font.Src)
	pick(&base.Font.Family, o.Font.Family)
	pick(&base.Font.PrimaryColor, o.Font.PrimaryColor)
	pick(&base.Font.SecondaryColor, o.Font.SecondaryColor)
	pick(&base.Font.Size, o.Font.Size)
	pick(&base.Font.LineHeight, o.Font.LineHeight)
	return base
}
