package console

import (
	"fmt"
	"strings"

	"github.com/gookit/color"

	"go.minekube.com/vselect/pkg/resolve"
)

// Paint renders s in the RGB text color of status.
func Paint(status resolve.Status, s string) string {
	return RGB(status.Color()).Sprint(s)
}

// RGB converts a 0xRRGGBB color.
func RGB(rgb uint32) color.RGBColor {
	return color.HEX(fmt.Sprintf("%06X", rgb&0xFFFFFF))
}

// Field renders a text field line: the text in its status color
// followed by the grayed suggestion.
func Field(text string, res resolve.Result) string {
	b := new(strings.Builder)
	b.WriteString(Paint(res.Status(), text))
	if res.HasSuggestion {
		b.WriteString(color.Gray.Sprint(res.Suggestion))
	}
	return b.String()
}
