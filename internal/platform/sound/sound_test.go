package sound

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/reindeer-rush/internal/games/rush"
)

// drain streams s to the end and returns the sample count and peak.
func drain(s beep.Streamer) (int, float64) {
	buf := make([][2]float64, 512)
	total, peak := 0, 0.0
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			for _, v := range buf[i] {
				if v > peak {
					peak = v
				} else if -v > peak {
					peak = -v
				}
			}
		}
		total += n
		if !ok || n == 0 {
			return total, peak
		}
	}
}

func TestPhraseLengths(t *testing.T) {
	tests := []rush.Cue{rush.CueMusicStart, rush.CueJump, rush.CueDashCoin, rush.CueDeath}

	for _, c := range tests {
		t.Run(string(c), func(t *testing.T) {
			s := Phrase(c, SampleRate)
			if s == nil {
				t.Fatal("no phrase")
			}
			n, peak := drain(s)

			// Rounding per note may shave a few samples.
			want := SampleRate.N(PhraseLength(c))
			if n < want-len(phrases[c]) || n > want {
				t.Errorf("streamed %d samples, expected about %d", n, want)
			}
			if peak <= 0 || peak > gains[c]+1e-9 {
				t.Errorf("peak %.3f outside (0, %.2f]", peak, gains[c])
			}
		})
	}
}

func TestUnknownCue(t *testing.T) {
	if Phrase(rush.Cue("fanfare"), SampleRate) != nil {
		t.Error("unknown cue should have no phrase")
	}
}

func TestPlayerDropsCuesWhenIdleOrMuted(t *testing.T) {
	p := NewPlayer()
	p.Cue(rush.CueJump)
	if p.Pending() != 0 {
		t.Error("cues before Start should be dropped")
	}

	// Pretend the device is open without touching real audio.
	p.started = true
	p.Cue(rush.CueJump)
	p.Cue(rush.CueDeath)
	if p.Pending() != 2 {
		t.Errorf("expected 2 pending phrases, got %d", p.Pending())
	}

	p.SetMuted(true)
	p.Cue(rush.CueDashCoin)
	if p.Pending() != 0 || !p.Muted() {
		t.Error("muting should clear and drop phrases")
	}
}

func TestPlayerStreamsMixedPhrases(t *testing.T) {
	p := NewPlayer()
	p.started = true
	p.Cue(rush.CueJump)

	buf := make([][2]float64, SampleRate.N(PhraseLength(rush.CueJump))+1024)
	n, ok := p.Stream(buf)
	if !ok || n != len(buf) {
		t.Errorf("mixer should fill the buffer, got %d/%d ok=%v", n, len(buf), ok)
	}
	if p.Pending() != 0 {
		t.Error("finished phrases should leave the mixer")
	}
}

func TestPlayerIsCueSink(t *testing.T) {
	var _ rush.CueSink = NewPlayer()
}

// The speaker's audio goroutine holds the speaker lock while it calls
// Stream. Stop racing with it must not wait on that lock while holding p.mu.
func TestPlayerStopWhileSpeakerStreams(t *testing.T) {
	p := NewPlayer()
	p.started = true
	p.Cue(rush.CueJump)

	speaker.Lock()
	stopped := make(chan struct{})
	go func() {
		p.Stop()
		close(stopped)
	}()

	streamed := make(chan struct{})
	go func() {
		buf := make([][2]float64, 256)
		p.Stream(buf)
		close(streamed)
	}()

	select {
	case <-streamed:
	case <-time.After(2 * time.Second):
		speaker.Unlock()
		t.Fatal("Stream blocked while Stop waited on the speaker")
	}
	speaker.Unlock()

	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return")
	}
	if p.Pending() != 0 {
		t.Errorf("Pending() = %d after Stop, expected 0", p.Pending())
	}
}
