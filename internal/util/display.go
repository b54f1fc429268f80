package util

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// GetDisplayWidth calculates the actual display width of a string, accounting for emojis
func GetDisplayWidth(text string) int {
	return runewidth.StringWidth(text)
}

// PadString pads a string to the given display width. Wide runes count for
// their terminal cells, so columns stay aligned for CJK names.
func PadString(text string, width int, leftAlign bool) string {
	actual := runewidth.StringWidth(text)
	if actual >= width {
		return text
	}
	padding := strings.Repeat(" ", width-actual)
	if leftAlign {
		return text + padding
	}
	return padding + text
}

// TruncateString shortens a string to the given display width, appending an
// ellipsis when anything was cut
func TruncateString(text string, width int) string {
	if runewidth.StringWidth(text) <= width {
		return text
	}
	return runewidth.Truncate(text, width, "…")
}
