package rush

import (
	"fmt"
	"math"

	"github.com/vovakirdan/reindeer-rush/internal/core"
)

// Terminal cell size in world pixels.
const (
	CellWidthPx  = 8
	CellHeightPx = 16
)

// Visual characters for rendering
const (
	SnowTopChar   = '▀'
	SnowFillChar  = '░'
	LedgeChar     = '▬'
	SnowmanHead   = 'o'
	SnowmanBody   = '@'
	ReindeerBody  = '█'
	ReindeerNose  = '●'
	ReindeerLeg1  = '╱'
	ReindeerLeg2  = '╲'
	AntlerChar    = 'Y'
	dashTrailChar = '≡'
)

// groundRowsFromBottom is where the camera baseline lands on screen.
const groundRowsFromBottom = 6

// cellView maps world pixels to terminal cells for one frame.
type cellView struct {
	scrollX float64
	offsetY float64 // added to world y, includes the camera
	rows    int
}

func newCellView(snap Snapshot, rows int) cellView {
	base := float64((rows-groundRowsFromBottom)*CellHeightPx) - snap.Camera.Baseline
	return cellView{scrollX: snap.ScrollX, offsetY: snap.Camera.Y + base, rows: rows}
}

func (v cellView) col(worldX float64) int {
	return int(math.Floor((worldX - v.scrollX) / CellWidthPx))
}

func (v cellView) row(worldY float64) int {
	return int(math.Floor((worldY + v.offsetY) / CellHeightPx))
}

// RenderSnapshot draws the world into dst using terminal cells.
func RenderSnapshot(dst *core.Screen, snap Snapshot) {
	v := newCellView(snap, dst.Height())

	for _, p := range snap.Platforms {
		top := v.row(p.SurfaceY)
		for _, sp := range p.Spans {
			x0, x1 := v.col(sp.Start), v.col(sp.End)
			dst.DrawHLine(x0, top, x1-x0, SnowTopChar, core.ColorBrightWhite)
			for y := top + 1; y < dst.Height(); y++ {
				dst.DrawHLine(x0, y, x1-x0, SnowFillChar, core.ColorGray)
			}
		}
	}

	for _, l := range snap.Ledges {
		x0, x1 := v.col(l.X), v.col(l.Right())
		dst.DrawHLine(x0, v.row(l.SurfaceY), x1-x0, LedgeChar, core.ColorIce)
	}

	for _, sm := range snap.Snowmen {
		drawSnowman(dst, v, sm, snap.Snowman)
	}

	drawReindeer(dst, v, snap)

	hud := fmt.Sprintf(" %d m  Bonus: %d  Score: %d ", int(snap.Distance), snap.Bonus, snap.Score)
	dst.DrawTextColor(1, 0, hud, core.ColorBrightYellow)
	if !snap.Unlocked && snap.State == StateRunning.String() {
		dst.DrawTextColor(dst.Width()-14, 0, " Warm-up run ", core.ColorCyan)
	}
}

func drawSnowman(dst *core.Screen, v cellView, sm Snowman, m SnowmanMetrics) {
	left := v.col(sm.X)
	cx := v.col(sm.X + m.DrawWidth/2)
	bottom := v.row(sm.SurfaceY) - 1
	top := v.row(sm.SurfaceY - m.DrawHeight)
	for y := top; y <= bottom; y++ {
		if y == top {
			dst.SetColor(cx, y, SnowmanHead, core.ColorWhite)
			continue
		}
		w := v.col(sm.X+m.DrawWidth) - left
		dst.DrawHLine(cx-w/4, y, w/2+1, SnowmanBody, core.ColorBrightWhite)
	}
}

func drawReindeer(dst *core.Screen, v cellView, snap Snapshot) {
	p := snap.Player
	left := v.col(snap.ScrollX + p.X)
	w := max(int(snap.PlayerW/CellWidthPx), 3)
	feet := v.row(p.Y) - 1

	if p.DashActive {
		dst.DrawHLine(left-3, feet-1, 3, dashTrailChar, core.ColorCyan)
	}

	// Legs alternate with the scroll position while running
	frame := int(snap.ScrollX/24) % 2
	for i := 0; i < w; i++ {
		leg := ReindeerLeg1
		if (i+frame)%2 == 1 {
			leg = ReindeerLeg2
		}
		if !p.Grounded && i%2 == 1 {
			leg = ' '
		}
		dst.SetColor(left+i, feet, leg, core.ColorBrown)
	}
	dst.DrawHLine(left, feet-1, w-1, ReindeerBody, core.ColorBrown)
	dst.SetColor(left+w-1, feet-1, ReindeerNose, core.ColorBrightRed)
	if !p.Ducking {
		dst.SetColor(left+w-2, feet-2, AntlerChar, core.ColorOrange)
		dst.SetColor(left+w-4, feet-2, AntlerChar, core.ColorOrange)
	}
}
