package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// overlayModal paints the modal over the dimmed base view, centered.
// Overlaying by line keeps the background visible around the box.
func overlayModal(base, modal string, width, height int) string {
	if width <= 0 || height <= 0 {
		return modal
	}
	baseLines := normalizeLines(base, width, height)
	modalLines := strings.Split(modal, "\n")

	modalWidth := 0
	for _, line := range modalLines {
		if w := ansi.StringWidth(line); w > modalWidth {
			modalWidth = w
		}
	}
	top := (height - len(modalLines)) / 2
	if top < 0 {
		top = 0
	}
	left := (width - modalWidth) / 2
	if left < 0 {
		left = 0
	}

	for i, line := range modalLines {
		row := top + i
		if row >= len(baseLines) {
			break
		}
		pad := strings.Repeat(" ", left)
		baseLines[row] = ansi.Truncate(pad+line, width, "")
	}
	return strings.Join(baseLines, "\n")
}

// normalizeLines pads or truncates the view to exactly height rows of
// width columns so the modal can be placed by index.
func normalizeLines(view string, width, height int) []string {
	lines := strings.Split(view, "\n")
	out := make([]string, height)
	for i := 0; i < height; i++ {
		line := ""
		if i < len(lines) {
			line = lines[i]
		}
		w := ansi.StringWidth(line)
		if w < width {
			line += strings.Repeat(" ", width-w)
		} else if w > width {
			line = ansi.Truncate(line, width, "")
		}
		out[i] = line
	}
	return out
}

func stripANSI(s string) string { return ansi.Strip(s) }

// modalSize bounds a modal to a comfortable fraction of the screen.
func modalSize(width, height int) (int, int) {
	w := width * 2 / 3
	if w < 40 {
		w = min(40, width)
	}
	if w > 80 {
		w = 80
	}
	h := height * 2 / 3
	if h < 8 {
		h = min(8, height)
	}
	return w, h
}

// splitArgs splits a command line on whitespace.
func splitArgs(input string) []string {
	return strings.Fields(input)
}
