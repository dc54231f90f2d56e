package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a progress bar like [████░░░░] 45%.
// The bar is colored based on percentage: green >66%, yellow 33-66%, red <33%.
func RenderProgress(pct float64, width int) string {
	pct = clamp01(pct)
	if width < 2 {
		width = 2
	}

	filled := min(int(pct*float64(width)), width)
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	if pct < 0.33 {
		style = StyleRed
	} else if pct < 0.66 {
		style = StyleYellow
	}

	return fmt.Sprintf("[%s] %3.0f%%", style.Render(bar), pct*100)
}

// barCells converts a left/width fraction pair into the cell offset and
// length of a bar across a track of the given width. Any bar with a positive
// width is at least one cell long.
func barCells(left, width float64, track int) (offset, length int) {
	left = clamp01(left)
	width = clamp01(width)
	offset = min(int(left*float64(track)), track)
	length = int(width*float64(track) + 0.5)
	if width > 0 && length == 0 {
		length = 1
	}
	if offset+length > track {
		length = track - offset
	}
	return offset, length
}

// RenderBar draws one timeline bar on a track of track cells.
func RenderBar(left, width float64, track int, style func(...string) string) string {
	offset, length := barCells(left, width, track)
	return strings.Repeat(" ", offset) +
		style(strings.Repeat(filledBlock, length)) +
		strings.Repeat(" ", track-offset-length)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
