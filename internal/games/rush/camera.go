package rush

import "math"

// Camera is the vertical render offset. Screen y = world y + Camera.Y.
type Camera struct {
	Y        float64 `json:"y"`
	Baseline float64 `json:"baseline"`
	Target   float64 `json:"target"`
	ease     float64
}

// NewCamera creates a camera resting on the baseline.
func NewCamera(baseline, ease float64) Camera {
	return Camera{Baseline: baseline, ease: ease}
}

// Update retargets to the given surface and eases towards it.
// The per-tick ease is scaled so the approach speed does not depend on dt.
func (c *Camera) Update(surfaceY, dt float64) {
	c.Target = c.Baseline - surfaceY
	f := 1 - math.Pow(1-c.ease, dt*60)
	c.Y += (c.Target - c.Y) * f
}
