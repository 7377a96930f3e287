package rush

import (
	"reflect"
	"testing"
)

func TestExtractSegments(t *testing.T) {
	tests := []struct {
		name   string
		mask   string
		minRun int
		want   []Segment
	}{
		{"empty row", "", 1, []Segment{{0, 0}}},
		{"fully opaque", "#####", 1, []Segment{{0, 4}}},
		{"two runs", "##..###.", 1, []Segment{{0, 1}, {4, 6}}},
		{"short run dropped", "#..####", 2, []Segment{{3, 6}}},
		{"run at the edge", "..##", 1, []Segment{{2, 3}}},
		{"nothing qualifies", "#.#.#", 2, []Segment{{0, 4}}},
		{"binary digits", "0110", 1, []Segment{{1, 2}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ExtractSegments(ParseMask(tc.mask), tc.minRun)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("ExtractSegments(%q) = %v, expected %v", tc.mask, got, tc.want)
			}
		})
	}
}

func TestScaleSegments(t *testing.T) {
	spans := ScaleSegments([]Segment{{0, 1}, {4, 6}}, 2, 100)
	want := []Span{{100, 104}, {108, 114}}
	if !reflect.DeepEqual(spans, want) {
		t.Errorf("ScaleSegments = %v, expected %v", spans, want)
	}
}

func TestSurfaceYAt(t *testing.T) {
	spans := []Span{{0, 10}, {20, 30}}

	if y, ok := SurfaceYAt(spans, 200, 10); !ok || y != 200 {
		t.Errorf("edge of span should be walkable, got %v %v", y, ok)
	}
	if _, ok := SurfaceYAt(spans, 200, 15); ok {
		t.Error("hole between spans should not be walkable")
	}
	if _, ok := SurfaceYAt(nil, 200, 5); ok {
		t.Error("no spans means no surface")
	}
}

func TestGroundMaskSpans(t *testing.T) {
	plain := newGroundMask("")
	if got := plain.spans(50, 200); !reflect.DeepEqual(got, []Span{{50, 250}}) {
		t.Errorf("no mask should cover the whole piece, got %v", got)
	}

	// Four columns with a transparent notch in the middle
	notched := newGroundMask("#..#")
	got := notched.spans(0, 100)
	want := []Span{{0, 25}, {75, 100}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("mask spans = %v, expected %v", got, want)
	}
}
