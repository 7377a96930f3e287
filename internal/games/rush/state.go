package rush

// RunState is the lifecycle of a run.
type RunState int

const (
	StateIdle RunState = iota
	StateRunning
	StateEnded
)

func (s RunState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// CollisionReason is why a run ended.
type CollisionReason string

const (
	ReasonNone          CollisionReason = ""
	ReasonHitSnowman    CollisionReason = "hit-snowman"
	ReasonFellOffIsland CollisionReason = "fell-off-island"
)

// StateInfo is the public summary of a run.
type StateInfo struct {
	Distance            float64         `json:"distance"`
	ObstacleCount       int             `json:"obstacleCount"`
	FPS                 float64         `json:"fps"`
	Running             bool            `json:"running"`
	LastCollisionReason CollisionReason `json:"lastCollisionReason"`
	Bonus               int             `json:"bonus"`
	Score               int             `json:"score"`
}
