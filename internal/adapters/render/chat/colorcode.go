package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// formatCodes are the non-color codes. A color code resets active formats,
// matching the classic chat formatting rules.
const formatCodes = "klmnor"

func isColorCode(c byte) bool {
	_, ok := colorStyles[c]
	return ok
}

func isFormatCode(c byte) bool {
	return strings.IndexByte(formatCodes, c) >= 0
}

// Format renders &-coded text into a styled terminal string.
func Format(input string) string {
	var out strings.Builder
	style := lipgloss.NewStyle()
	var segment strings.Builder

	flush := func() {
		if segment.Len() == 0 {
			return
		}
		out.WriteString(style.Render(segment.String()))
		segment.Reset()
	}

	for i := 0; i < len(input); i++ {
		if input[i] == '&' && i+1 < len(input) {
			code := lowerByte(input[i+1])
			switch {
			case isColorCode(code):
				flush()
				style = lipgloss.NewStyle().Foreground(colorStyles[code])
				i++
				continue
			case isFormatCode(code):
				flush()
				style = applyFormat(style, code)
				i++
				continue
			}
		}
		segment.WriteByte(input[i])
	}
	flush()

	return out.String()
}

// Strip removes every recognized &-code, leaving plain text.
func Strip(input string) string {
	var out strings.Builder
	for i := 0; i < len(input); i++ {
		if input[i] == '&' && i+1 < len(input) {
			code := lowerByte(input[i+1])
			if isColorCode(code) || isFormatCode(code) {
				i++
				continue
			}
		}
		out.WriteByte(input[i])
	}
	return out.String()
}

func applyFormat(style lipgloss.Style, code byte) lipgloss.Style {
	switch code {
	case 'l':
		return style.Bold(true)
	case 'm':
		return style.Strikethrough(true)
	case 'n':
		return style.Underline(true)
	case 'o':
		return style.Italic(true)
	case 'k':
		// Obfuscated text has no terminal equivalent; render it faint.
		return style.Faint(true)
	case 'r':
		return lipgloss.NewStyle()
	}
	return style
}

func lowerByte(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
