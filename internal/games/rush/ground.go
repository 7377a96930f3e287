package rush

// Segment is an inclusive run of opaque columns in a sprite's surface row.
type Segment struct {
	Start int
	End   int
}

// Span is a walkable range of a platform in world coordinates.
type Span struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Width returns the length of the span.
func (s Span) Width() float64 {
	return s.End - s.Start
}

// Contains reports whether x lies on the span, edges included.
func (s Span) Contains(x float64) bool {
	return x >= s.Start && x <= s.End
}

// Overlaps reports whether [lo, hi] touches the span.
func (s Span) Overlaps(lo, hi float64) bool {
	return hi >= s.Start && lo <= s.End
}

// ParseMask converts a surface row description into opacity flags.
// '#' and '1' are opaque, everything else is transparent.
func ParseMask(mask string) []bool {
	row := make([]bool, 0, len(mask))
	for _, r := range mask {
		row = append(row, r == '#' || r == '1')
	}
	return row
}

// ExtractSegments finds the opaque runs of at least minRun columns.
// An empty row yields a single zero-width segment and a row without
// qualifying runs is treated as fully walkable.
func ExtractSegments(row []bool, minRun int) []Segment {
	if len(row) == 0 {
		return []Segment{{0, 0}}
	}
	if minRun < 1 {
		minRun = 1
	}

	var segs []Segment
	start := -1
	for i, opaque := range row {
		switch {
		case opaque && start < 0:
			start = i
		case !opaque && start >= 0:
			if i-start >= minRun {
				segs = append(segs, Segment{start, i - 1})
			}
			start = -1
		}
	}
	if start >= 0 && len(row)-start >= minRun {
		segs = append(segs, Segment{start, len(row) - 1})
	}
	if len(segs) == 0 {
		segs = append(segs, Segment{0, len(row) - 1})
	}
	return segs
}

// ScaleSegments maps sprite columns to world spans.
// Column c covers [offset + c*scale, offset + (c+1)*scale).
func ScaleSegments(segs []Segment, scale, offset float64) []Span {
	spans := make([]Span, 0, len(segs))
	for _, s := range segs {
		spans = append(spans, Span{
			Start: offset + float64(s.Start)*scale,
			End:   offset + float64(s.End+1)*scale,
		})
	}
	return spans
}

// SurfaceYAt returns surfaceY when x lies on one of the spans.
func SurfaceYAt(spans []Span, surfaceY, x float64) (float64, bool) {
	for _, s := range spans {
		if s.Contains(x) {
			return surfaceY, true
		}
	}
	return 0, false
}

// groundMask holds the parsed surface row of the ground sprite.
type groundMask struct {
	segments []Segment
	columns  int
}

func newGroundMask(mask string) groundMask {
	row := ParseMask(mask)
	if len(row) == 0 {
		return groundMask{}
	}
	return groundMask{segments: ExtractSegments(row, 1), columns: len(row)}
}

// spans returns the walkable spans of a piece placed at x with the given width.
func (m groundMask) spans(x, width float64) []Span {
	if m.columns == 0 {
		return []Span{{Start: x, End: x + width}}
	}
	return ScaleSegments(m.segments, width/float64(m.columns), x)
}
