package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const glyphHeight = 5

// glyphs maps digits and the colon to a block-letter rendering. Digits are
// four cells wide, the colon one.
var glyphs = map[rune][glyphHeight]string{
	'0': {"▄▀▀▄", "█  █", "█  █", "█  █", "▀▄▄▀"},
	'1': {" ▄█ ", "  █ ", "  █ ", "  █ ", " ▄█▄"},
	'2': {"▄▀▀▄", "   █", " ▄▀ ", "▄▀  ", "█▄▄▄"},
	'3': {"▄▀▀▄", "   █", " ▀▀▄", "   █", "▀▄▄▀"},
	'4': {"█  █", "█  █", "▀▀▀█", "   █", "   █"},
	'5': {"█▀▀▀", "█   ", "▀▀▀▄", "   █", "▀▄▄▀"},
	'6': {"▄▀▀▀", "█   ", "█▀▀▄", "█  █", "▀▄▄▀"},
	'7': {"▀▀▀█", "   █", "  █ ", " █  ", " █  "},
	'8': {"▄▀▀▄", "█  █", "▄▀▀▄", "█  █", "▀▄▄▀"},
	'9': {"▄▀▀▄", "█  █", "▀▄▄█", "   █", "▄▄▄▀"},
	':': {" ", "▀", " ", "▀", " "},
}

// minBigWidth is the narrowest terminal that gets block digits.
const minBigWidth = 40

// renderBigTime renders a readout such as "14:32" in block digits.
// Narrow terminals, and characters without a glyph, fall back to a single
// styled line.
func renderBigTime(readout string, color lipgloss.Color, width int) string {
	style := lipgloss.NewStyle().Bold(true).Foreground(color)
	if width < minBigWidth {
		return style.Render(readout)
	}

	var rows [glyphHeight]strings.Builder
	for i, ch := range []rune(readout) {
		glyph, ok := glyphs[ch]
		if !ok {
			return style.Render(readout)
		}
		for row := range rows {
			if i > 0 {
				rows[row].WriteString(" ")
			}
			rows[row].WriteString(glyph[row])
		}
	}

	lines := make([]string, glyphHeight)
	for row := range rows {
		lines[row] = style.Render(rows[row].String())
	}
	return strings.Join(lines, "\n")
}
