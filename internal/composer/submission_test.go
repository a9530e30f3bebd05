package composer

import (
	"strings"
	"testing"

	"framecraft/internal/pkg/errors"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		sub       Submission
		wantStyle Style
		wantField string
	}{
		{"valid", Submission{Search: "forest", Title: "My Trip", Style: "style_1"}, Style1, ""},
		{"valid with spaces and digits", Submission{Search: "new york 1999", Title: "Été à Paris!", Style: "style_3"}, Style3, ""},
		{"search at min length", Submission{Search: "ab", Title: "t", Style: "style_2"}, Style2, ""},
		{"search at max length", Submission{Search: strings.Repeat("a", 30), Title: "t", Style: "style_2"}, Style2, ""},
		{"missing search", Submission{Title: "t", Style: "style_1"}, 0, "search"},
		{"search too short", Submission{Search: "a", Title: "t", Style: "style_1"}, 0, "search"},
		{"search too long", Submission{Search: strings.Repeat("a", 31), Title: "t", Style: "style_1"}, 0, "search"},
		{"search punctuation", Submission{Search: "forest!", Title: "t", Style: "style_1"}, 0, "search"},
		{"missing title", Submission{Search: "forest", Style: "style_1"}, 0, "title"},
		{"blank title", Submission{Search: "forest", Title: "   ", Style: "style_1"}, 0, "title"},
		{"title too long", Submission{Search: "forest", Title: strings.Repeat("x", 101), Style: "style_1"}, 0, "title"},
		{"title markup", Submission{Search: "forest", Title: "<b>hi</b>", Style: "style_1"}, 0, "title"},
		{"missing style", Submission{Search: "forest", Title: "t"}, 0, "style"},
		{"unknown style", Submission{Search: "forest", Title: "t", Style: "style_4"}, 0, "style"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			style, err := tt.sub.Validate()

			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if style != tt.wantStyle {
					t.Errorf("style: got %v, want %v", style, tt.wantStyle)
				}
				return
			}

			if !errors.IsValidation(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
			var e *errors.Error
			errors.As(err, &e)
			d := e.Details()
			if len(d) != 1 || d[0].Field != tt.wantField {
				t.Errorf("details: got %+v, want one entry for %q", d, tt.wantField)
			}
		})
	}
}

func TestParseJobID(t *testing.T) {
	tests := []struct {
		name  string
		id    string
		want  string
		valid bool
	}{
		{"v4", "2abd5c11-0f3d-4c6d-ba20-235fc9b8e8b7", "2abd5c11-0f3d-4c6d-ba20-235fc9b8e8b7", true},
		{"v4 upper case", "2ABD5C11-0F3D-4C6D-BA20-235FC9B8E8B7", "2abd5c11-0f3d-4c6d-ba20-235fc9b8e8b7", true},
		{"v5", "886313e1-3b8a-5372-9b90-0c9aee199e5d", "886313e1-3b8a-5372-9b90-0c9aee199e5d", true},
		{"v1", "6ba7b810-9dad-11d1-80b4-00c04fd430c8", "", false},
		{"wrong variant", "2abd5c11-0f3d-4c6d-0a20-235fc9b8e8b7", "", false},
		{"garbage", "not-a-guid", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseJobID(tt.id)
			if !tt.valid {
				if !errors.IsValidation(err) {
					t.Fatalf("expected validation error, got %v", err)
				}
				if errors.GetMessage(err) != `"id" must be a valid GUID` {
					t.Errorf("message: got %q", errors.GetMessage(err))
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
