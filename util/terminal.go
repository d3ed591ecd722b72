package util

import "golang.org/x/term"

// DefaultTerminalWidth is used when the width of the output terminal
// cannot be determined.
const DefaultTerminalWidth = 80

// TerminalWidth returns the column width of the terminal attached to fd,
// or DefaultTerminalWidth when fd is not a terminal.
func TerminalWidth(fd uintptr) int {
	if !term.IsTerminal(int(fd)) {
		return DefaultTerminalWidth
	}
	width, _, err := term.GetSize(int(fd))
	if err != nil || width <= 0 {
		return DefaultTerminalWidth
	}

	return width
}
