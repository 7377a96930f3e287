package rush

// Snapshot is the read-only world view handed to renderers.
// Entity coordinates are world coordinates; a renderer subtracts ScrollX
// horizontally and adds Camera.Y vertically.
type Snapshot struct {
	State     string          `json:"state"`
	Reason    CollisionReason `json:"reason,omitempty"`
	ScrollX   float64         `json:"scrollX"`
	ViewportW float64         `json:"viewportW"`
	ViewportH float64         `json:"viewportH"`
	Camera    Camera          `json:"camera"`
	Player    Player          `json:"player"`
	PlayerW   float64         `json:"playerW"`
	PlayerH   float64         `json:"playerH"`
	Platforms []Platform      `json:"platforms"`
	Ledges    []Ledge         `json:"ledges"`
	Snowmen   []Snowman       `json:"snowmen"`
	Snowman   SnowmanMetrics  `json:"snowman"`
	Distance  float64         `json:"distance"`
	Score     int             `json:"score"`
	Bonus     int             `json:"bonus"`
	Unlocked  bool            `json:"unlocked"`
}

// Snapshot captures the current world.
func (s *Simulation) Snapshot() Snapshot {
	if s == nil {
		return Snapshot{State: StateIdle.String()}
	}
	h := s.cfg.Player.Height
	if s.player.Ducking {
		h *= s.cfg.Player.DuckScale
	}
	return Snapshot{
		State:     s.state.String(),
		Reason:    s.reason,
		ScrollX:   s.scrollX,
		ViewportW: s.screenW,
		ViewportH: s.screenH,
		Camera:    s.camera,
		Player:    s.player,
		PlayerW:   s.cfg.Player.Width,
		PlayerH:   h,
		Platforms: s.Platforms(),
		Ledges:    s.Ledges(),
		Snowmen:   s.Snowmen(),
		Snowman:   s.spawner.Metrics(),
		Distance:  s.distance,
		Score:     s.Score(),
		Bonus:     s.bonus,
		Unlocked:  s.unlocked,
	}
}
