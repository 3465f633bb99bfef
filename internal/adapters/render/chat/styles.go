package chat

import "github.com/charmbracelet/lipgloss"

// colorStyles maps the classic &-code colors onto ANSI-256 colors.
var colorStyles = map[byte]lipgloss.Color{
	'0': lipgloss.Color("0"),
	'1': lipgloss.Color("19"),
	'2': lipgloss.Color("34"),
	'3': lipgloss.Color("37"),
	'4': lipgloss.Color("124"),
	'5': lipgloss.Color("127"),
	'6': lipgloss.Color("214"),
	'7': lipgloss.Color("250"),
	'8': lipgloss.Color("240"),
	'9': lipgloss.Color("63"),
	'a': lipgloss.Color("83"),
	'b': lipgloss.Color("87"),
	'c': lipgloss.Color("203"),
	'd': lipgloss.Color("213"),
	'e': lipgloss.Color("227"),
	'f': lipgloss.Color("255"),
}
