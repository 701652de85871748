package tuicore

import "github.com/mattn/go-runewidth"

// runeWidthOf returns the terminal display width of a single rune (0, 1, or
// 2), delegating to go-runewidth's East Asian width tables.
func runeWidthOf(r rune) int {
	return runewidth.RuneWidth(r)
}
