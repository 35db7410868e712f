package tui

import (
	"math"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
)

const (
	// minArenaRows keeps the score line readable: it needs about 24 columns
	// and the arena is twice as wide as it is tall.
	minArenaRows = 12
	chromeRows   = 3 // arena border top and bottom, help line
)

// layout places the square arena on a terminal of a given size.
type layout struct {
	viewport core.Viewport
	box      core.Rect // border around the viewport
	tooSmall bool
}

// computeLayout fits the arena into a w x h terminal. At most one row per
// snake step is used; smaller terminals get a coarser grid. Character cells
// are about twice as tall as wide, so a cell covers half as many world units
// across as it does down.
func computeLayout(arena config.ArenaConfig, step float64, w, h int) layout {
	maxRows := int(math.Round(2 * arena.HalfSize / step))
	rows := core.Min(maxRows, h-chromeRows)
	rows = core.Min(rows, (w-2)/2)
	if rows < minArenaRows {
		return layout{tooSmall: true}
	}

	cellH := 2 * arena.HalfSize / float64(rows)
	cols := 2 * rows
	left := (w - (cols + 2)) / 2

	return layout{
		viewport: core.Viewport{
			HalfW:   arena.HalfSize,
			HalfH:   arena.HalfSize,
			CellW:   cellH / 2,
			CellH:   cellH,
			OffsetX: left + 1,
			OffsetY: 1,
		},
		box: core.NewRect(left, 0, cols+2, rows+2),
	}
}
