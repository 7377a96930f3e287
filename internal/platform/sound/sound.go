// Package sound plays the runner's audio cues through beep. Every cue is a
// short synthesized phrase mixed into one speaker stream.
package sound

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/reindeer-rush/internal/games/rush"
)

// SampleRate is the speaker rate.
const SampleRate = beep.SampleRate(44100)

// Note frequencies in Hz.
const (
	noteC5 = 523.25
	noteD5 = 587.33
	noteE5 = 659.25
	noteG5 = 783.99
	noteB5 = 987.77
	noteE6 = 1318.51
	noteA3 = 220.00
	noteE3 = 164.81
)

type note struct {
	freq float64 // 0 is a rest
	dur  time.Duration
}

var phrases = map[rush.Cue][]note{
	// Opening bar of Jingle Bells.
	rush.CueMusicStart: {
		{noteE5, 150 * time.Millisecond}, {0, 30 * time.Millisecond},
		{noteE5, 150 * time.Millisecond}, {0, 30 * time.Millisecond},
		{noteE5, 300 * time.Millisecond}, {0, 60 * time.Millisecond},
		{noteE5, 150 * time.Millisecond}, {0, 30 * time.Millisecond},
		{noteE5, 150 * time.Millisecond}, {0, 30 * time.Millisecond},
		{noteE5, 300 * time.Millisecond}, {0, 60 * time.Millisecond},
		{noteE5, 150 * time.Millisecond}, {noteG5, 150 * time.Millisecond},
		{noteC5, 225 * time.Millisecond}, {noteD5, 75 * time.Millisecond},
		{noteE5, 450 * time.Millisecond},
	},
	rush.CueJump: {
		{noteG5, 40 * time.Millisecond}, {noteB5, 50 * time.Millisecond},
	},
	rush.CueDashCoin: {
		{noteB5, 70 * time.Millisecond}, {noteE6, 180 * time.Millisecond},
	},
	rush.CueDeath: {
		{noteA3, 160 * time.Millisecond}, {noteE3, 320 * time.Millisecond},
	},
}

// gains per cue, as a fraction of full scale.
var gains = map[rush.Cue]float64{
	rush.CueMusicStart: 0.25,
	rush.CueJump:       0.15,
	rush.CueDashCoin:   0.3,
	rush.CueDeath:      0.35,
}

// Phrase renders the streamer for c, or nil for an unknown cue.
func Phrase(c rush.Cue, sr beep.SampleRate) beep.Streamer {
	notes, ok := phrases[c]
	if !ok {
		return nil
	}
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		samples := sr.N(n.dur)
		if n.freq == 0 {
			parts = append(parts, beep.Silence(samples))
			continue
		}
		tone, err := generators.SineTone(sr, n.freq)
		if err != nil {
			// Above Nyquist for this rate
			parts = append(parts, beep.Silence(samples))
			continue
		}
		parts = append(parts, beep.Take(samples, tone))
	}
	return &effects.Volume{
		Streamer: beep.Seq(parts...),
		Base:     2,
		Volume:   math.Log2(gains[c]),
	}
}

// PhraseLength is the duration of the phrase for c.
func PhraseLength(c rush.Cue) time.Duration {
	var total time.Duration
	for _, n := range phrases[c] {
		total += n.dur
	}
	return total
}

// Player is a rush.CueSink that mixes cue phrases into the speaker.
// Cues before Start are dropped.
type Player struct {
	mu      sync.Mutex
	mixer   *beep.Mixer
	sr      beep.SampleRate
	started bool
	muted   bool
}

// NewPlayer creates an idle player.
func NewPlayer() *Player {
	return &Player{mixer: &beep.Mixer{}, sr: SampleRate}
}

// Start opens the audio device and begins playback.
func (p *Player) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return nil
	}
	if err := speaker.Init(p.sr, p.sr.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p)
	p.started = true
	return nil
}

// Stop silences playback and drops queued phrases.
// The speaker holds its own lock while it calls Stream, so p.mu must be
// released before calling back into the speaker.
func (p *Player) Stop() {
	p.mu.Lock()
	if !p.started {
		p.mu.Unlock()
		return
	}
	p.mixer.Clear()
	p.started = false
	p.mu.Unlock()

	speaker.Clear()
}

// SetMuted drops cues while muted.
func (p *Player) SetMuted(muted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = muted
	if muted {
		p.mixer.Clear()
	}
}

// Muted reports whether cues are dropped.
func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// Cue queues the phrase for c.
func (p *Player) Cue(c rush.Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started || p.muted {
		return
	}
	if s := Phrase(c, p.sr); s != nil {
		p.mixer.Add(s)
	}
}

// Pending returns how many phrases are still playing.
func (p *Player) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mixer.Len()
}

// Stream implements beep.Streamer for the speaker.
func (p *Player) Stream(samples [][2]float64) (int, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mixer.Stream(samples)
}

// Err implements beep.Streamer.
func (p *Player) Err() error { return nil }
