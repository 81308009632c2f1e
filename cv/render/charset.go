package render

import (
	"golang.org/x/text/encoding/charmap"

	"cv-backend/internal/shared/telemetry"
)

// unsupportedRunes counts the runes in blocks that the core PDF fonts
// cannot draw. They are encoded as Windows-1252 and anything outside it is
// printed as a dot.
func unsupportedRunes(blocks []Block) int {
	n := 0
	for _, b := range blocks {
		for _, r := range b.Text {
			if _, ok := charmap.Windows1252.EncodeRune(r); !ok {
				n++
			}
		}
	}
	return n
}

// warnLossyText logs when layout is about to replace characters. The chrome
// layout renders full Unicode and never calls it.
func warnLossyText(layout string, blocks []Block) {
	if n := unsupportedRunes(blocks); n > 0 {
		telemetry.Warn("render.lossy_text", map[string]any{
			"layout": layout,
			"runes":  n,
			"hint":   "set RENDER_ENGINE=chrome for non-Latin scripts",
		})
	}
}
