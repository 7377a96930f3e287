package rush

// Ledge is a floating intro step. It can only be landed on from above.
type Ledge struct {
	X        float64 `json:"x"`
	SurfaceY float64 `json:"surfaceY"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"` // above the ground baseline
}

// Right returns the right edge of the ledge.
func (l Ledge) Right() float64 {
	return l.X + l.Width
}

func (l Ledge) span() Span {
	return Span{Start: l.X, End: l.Right()}
}

// IntroStep describes one scripted ledge of the opening.
type IntroStep struct {
	StartX float64 `json:"startX"`
	Height float64 `json:"height"`
}

// describeIntroSteps lays count steps out every screens viewport widths,
// starting StartScreens ahead of originX. Heights past the configured
// list repeat the last one.
func (s *Simulation) describeIntroSteps(originX, screens float64, count int) []IntroStep {
	in := s.cfg.Intro
	if screens <= 0 {
		screens = in.StepScreens
	}
	if count <= 0 {
		count = len(in.StepHeights)
	}
	start := originX + in.StartScreens*s.screenW

	steps := make([]IntroStep, 0, count)
	for k := 0; k < count; k++ {
		h := in.StepHeights[min(k, len(in.StepHeights)-1)]
		steps = append(steps, IntroStep{
			StartX: start + float64(k)*screens*s.screenW,
			Height: h,
		})
	}
	return steps
}

// buildIntro places the scripted ledges and returns the x where snowmen unlock.
func (s *Simulation) buildIntro(originX float64) float64 {
	s.ledges = s.ledges[:0]
	end := originX
	for _, st := range s.describeIntroSteps(originX, 0, 0) {
		l := Ledge{
			X:        st.StartX,
			SurfaceY: s.cfg.Ground.BaseY - st.Height,
			Width:    s.cfg.Intro.LedgeWidth,
			Height:   st.Height,
		}
		s.ledges = append(s.ledges, l)
		end = l.Right()
	}
	return end
}
