package rush

import "math"

// terrain is the walkable world for one tick: ground pieces and ledges.
type terrain struct {
	platforms []Platform
	ledges    []Ledge
}

// each calls fn with the surface y of every piece under [lo, hi].
func (t terrain) each(lo, hi float64, fn func(y float64)) {
	for _, p := range t.platforms {
		if p.Right() < lo || p.X > hi {
			continue
		}
		for _, sp := range p.Spans {
			if sp.Overlaps(lo, hi) {
				fn(p.SurfaceY)
				break
			}
		}
	}
	for _, l := range t.ledges {
		if l.span().Overlaps(lo, hi) {
			fn(l.SurfaceY)
		}
	}
}

func (t terrain) SupportNear(lo, hi, feetY, tol float64) (float64, bool) {
	best := math.Inf(1)
	t.each(lo, hi, func(y float64) {
		if math.Abs(y-feetY) <= tol && y < best {
			best = y
		}
	})
	return best, !math.IsInf(best, 1)
}

func (t terrain) Landing(lo, hi, prevY, y float64) (float64, bool) {
	best := math.Inf(1)
	t.each(lo, hi, func(s float64) {
		if s >= prevY && s <= y && s < best {
			best = s
		}
	})
	return best, !math.IsInf(best, 1)
}

func (t terrain) AnyBelow(lo, hi, feetY, tol float64) bool {
	found := false
	t.each(lo, hi, func(y float64) {
		if y >= feetY-tol {
			found = true
		}
	})
	return found
}
