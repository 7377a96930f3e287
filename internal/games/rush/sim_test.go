package rush

import (
	"reflect"
	"testing"

	"github.com/vovakirdan/reindeer-rush/internal/config"
	"github.com/vovakirdan/reindeer-rush/internal/core"
)

func TestStartGameResetsAndCuesMusic(t *testing.T) {
	sim, rec := newTestSim(t, NewSeededRandom(1), nil)

	if !sim.State().Running {
		t.Fatal("StartGame should start a run")
	}
	if rec.count(CueMusicStart) != 1 {
		t.Errorf("expected one music-start cue, got %v", rec.cues)
	}
	if cues := sim.StepForTest(stepMs); len(cues) == 0 || cues[0] != CueMusicStart {
		t.Errorf("first step should surface music-start, got %v", cues)
	}

	sim.StepForTest(3000)
	sim.TriggerDeathForTest()
	sim.StartGame()

	st := sim.State()
	if st.Distance != 0 || st.Bonus != 0 || st.LastCollisionReason != ReasonNone || !st.Running {
		t.Errorf("restart should clear run stats, got %+v", st)
	}
	if len(sim.Snowmen()) != 0 || sim.Camera().Y != sim.Camera().Target {
		t.Error("restart should clear snowmen and settle the camera")
	}
	if !sim.Player().Grounded {
		t.Error("player should start grounded")
	}
}

func TestHitSnowmanEndsRun(t *testing.T) {
	sim, rec := newTestSim(t, FixedRandom(0.5), withoutSnowmen)
	sim.StepForTest(100)

	if _, ok := sim.SpawnSnowmanForTest(-20); !ok {
		t.Fatal("spawn hook failed on a running sim")
	}
	cues := sim.StepForTest(16)

	st := sim.State()
	if st.Running || st.LastCollisionReason != ReasonHitSnowman {
		t.Fatalf("expected hit-snowman, got %+v", st)
	}
	if !reflect.DeepEqual(cues, []Cue{CueDeath}) {
		t.Errorf("cues = %v, expected death", cues)
	}
	if len(rec.reports) != 1 || rec.reports[0] != ReasonHitSnowman {
		t.Errorf("reports = %v", rec.reports)
	}
}

func TestDashThroughSnowmanGrantsBonus(t *testing.T) {
	sim, rec := newTestSim(t, FixedRandom(0.5), withoutSnowmen)
	sim.StepForTest(100)

	sim.SpawnSnowmanForTest(-20)
	sim.TriggerDash()
	sim.StepForTest(16)

	st := sim.State()
	if !st.Running {
		t.Fatalf("dash should pass through, run ended with %q", st.LastCollisionReason)
	}
	if st.Bonus <= 0 {
		t.Errorf("bonus = %d, expected > 0", st.Bonus)
	}
	if len(sim.Snowmen()) != 0 {
		t.Error("dashed snowman should be destroyed")
	}
	if rec.count(CueDashCoin) != 1 {
		t.Errorf("expected one dash-coin cue, got %v", rec.cues)
	}
	if st.Score != int(st.Distance)+st.Bonus {
		t.Errorf("score %d should be floor(distance)+bonus", st.Score)
	}
}

func TestFallOffIslandEndsRun(t *testing.T) {
	sim, rec := newTestSim(t, FixedRandom(0.5), withoutSnowmen)
	sim.StepForTest(100)
	sim.DropAllPlatforms()

	// Inside the grace window the run continues
	sim.StepForTest(100)
	if !sim.State().Running {
		t.Fatal("run should survive the first 100 ms of falling")
	}

	sim.StepForTest(2000)
	st := sim.State()
	if st.Running || st.LastCollisionReason != ReasonFellOffIsland {
		t.Fatalf("expected fell-off-island, got %+v", st)
	}
	if len(rec.reports) != 1 {
		t.Errorf("ReportRunEnded should fire exactly once, got %d", len(rec.reports))
	}

	// No auto restart
	sim.StepForTest(5000)
	if sim.State().Running || len(rec.reports) != 1 {
		t.Error("ended run must stay ended")
	}
}

func TestJumpOnSolidGroundDoesNotTriggerFall(t *testing.T) {
	sim, rec := newTestSim(t, FixedRandom(0.5), withoutSnowmen)
	sim.SetSinglePlatformForTest(220)

	jump := core.NewInputFrame()
	jump.Set(core.ActionJump)
	sim.Apply(jump)
	for i := 0; i < 60; i++ {
		sim.StepForTest(stepMs)
	}
	if !sim.State().Running {
		t.Fatalf("a jump over solid ground must not end the run: %q", sim.State().LastCollisionReason)
	}
	if rec.count(CueJump) != 1 {
		t.Errorf("expected one jump cue, got %v", rec.cues)
	}
	if !sim.Player().Grounded {
		t.Error("player should have landed within a second")
	}
}

func TestIntroUnlockGatesSnowmen(t *testing.T) {
	sim, _ := newTestSim(t, FixedRandom(0.5), nil)

	steps := 0
	for !sim.IntroStatus().SnowmanUnlocked {
		if n := len(sim.Snowmen()); n != 0 {
			t.Fatalf("%d snowmen before the intro unlock", n)
		}
		sim.StepForTest(100)
		steps++
		if steps > 600 {
			t.Fatal("intro never unlocked")
		}
	}

	sim.StepForTest(500)
	if len(sim.Snowmen()) == 0 {
		t.Error("expected a snowman shortly after the unlock")
	}
	if sim.State().ObstacleCount == 0 {
		t.Error("obstacle count should include spawned snowmen")
	}
}

func TestDescribeIntroSteps(t *testing.T) {
	sim, _ := newTestSim(t, FixedRandom(0.5), nil)
	steps := sim.DescribeIntroSteps(1.5, 2)
	if len(steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(steps))
	}
	if steps[1].Height <= steps[0].Height {
		t.Error("second step should need the double jump")
	}
	arc := sim.MeasureJumpArcForTest()
	if steps[0].Height >= arc.Rise {
		t.Errorf("first step %.0f should be reachable with a single jump (rise %.1f)", steps[0].Height, arc.Rise)
	}
	if steps[1].Height <= arc.Rise {
		t.Errorf("second step %.0f should need a double jump (rise %.1f)", steps[1].Height, arc.Rise)
	}
	screenW, _ := sim.Viewport()
	if d := steps[1].StartX - steps[0].StartX; d != 1.5*screenW {
		t.Errorf("steps %.0f apart, expected %.0f", d, 1.5*screenW)
	}

	// Defaults and repetition of the last height
	more := sim.DescribeIntroSteps(0, 4)
	if more[3].Height != more[1].Height {
		t.Errorf("extra steps should repeat the last height, got %+v", more)
	}

	ledges := sim.Ledges()
	if len(ledges) != 2 || ledges[0].X != steps[0].StartX {
		t.Errorf("ledges %+v do not match the described steps", ledges)
	}
}

func TestSnowmanSpacingReport(t *testing.T) {
	sim, _ := newTestSim(t, FixedRandom(0.5), withoutSnowmen)
	if r := sim.TestSnowmanSpacing(); r.Count != 0 || r.MinGap != 0 {
		t.Errorf("empty report expected, got %+v", r)
	}

	sim.SpawnSnowmanForTest(3000)
	sim.SpawnSnowmanForTest(2000)
	r := sim.TestSnowmanSpacing()
	screenW, _ := sim.Viewport()
	if r.Count != 2 || r.MinGap != 1000 || r.ScreenWidth != screenW {
		t.Errorf("unexpected report %+v", r)
	}
}

func TestGarbageCollection(t *testing.T) {
	sim, _ := newTestSim(t, FixedRandom(0.5), withoutSnowmen)
	sim.StepForTest(20000)

	screenW, _ := sim.Viewport()
	cut := sim.ScrollX() - screenW/2
	for _, p := range sim.Platforms() {
		if p.Right() < cut {
			t.Fatalf("platform ending at %.0f kept behind %.0f", p.Right(), cut)
		}
	}
	if len(sim.Ledges()) != 0 {
		t.Error("intro ledges should be collected once passed")
	}
}

func TestGarbageCollectionReindexesSnowmen(t *testing.T) {
	sim, _ := newTestSim(t, FixedRandom(0.5), withoutSnowmen)
	screenW, _ := sim.Viewport()
	w := sim.SnowmanMetrics().DrawWidth

	sim.scrollX = 1000 + screenW/2 // cut at x=1000
	sim.platforms = []Platform{
		{X: 0, Width: 400},
		{X: 400, Width: 500},
		{X: 1200, Width: 800},
	}
	sim.ledges = nil
	sim.snowmen = []Snowman{
		{ID: 1, X: 1001 - w, PlatformIndex: 1, Alive: true}, // piece gone, draw box still visible
		{ID: 2, X: 1500, PlatformIndex: 2, Alive: true},
		{ID: 3, X: 1100, PlatformIndex: -1, Alive: true},
	}

	sim.collectGarbage()

	if got := len(sim.Platforms()); got != 1 {
		t.Fatalf("platforms left = %d, expected 1", got)
	}
	want := map[int]int{1: -1, 2: 0, 3: -1}
	snowmen := sim.Snowmen()
	if len(snowmen) != len(want) {
		t.Fatalf("snowmen = %+v", snowmen)
	}
	for _, sm := range snowmen {
		if sm.PlatformIndex != want[sm.ID] {
			t.Errorf("snowman %d PlatformIndex = %d, expected %d", sm.ID, sm.PlatformIndex, want[sm.ID])
		}
	}
}

func TestDeterministicWithSameSeed(t *testing.T) {
	run := func() Snapshot {
		sim, _ := newTestSim(t, NewSeededRandom(2024), nil)
		for i := 0; i < 400; i++ {
			if i%45 == 0 {
				jump := core.NewInputFrame()
				jump.Set(core.ActionJump)
				sim.Apply(jump)
			}
			sim.StepForTest(stepMs)
		}
		return sim.Snapshot()
	}

	a, b := run(), run()
	if !reflect.DeepEqual(a, b) {
		t.Error("two runs with the same seed and inputs diverged")
	}
}

func TestStepClampsFrameAndTracksFPS(t *testing.T) {
	sim, _ := newTestSim(t, FixedRandom(0.5), withoutSnowmen)

	sim.Step(5000)
	maxMeters := sim.Config().Physics.MaxFrameMs / 1000 * sim.Config().Physics.RunSpeed / sim.Config().Scoring.PxPerMeter
	if d := sim.State().Distance; d > maxMeters+1e-9 {
		t.Errorf("distance %.3f exceeds one clamped frame (%.3f)", d, maxMeters)
	}

	for i := 0; i < 100; i++ {
		sim.Step(1000.0 / 30)
	}
	if fps := sim.State().FPS; fps < 29 || fps > 31 {
		t.Errorf("fps estimate %.2f, expected about 30", fps)
	}
}

func TestHooksAreNilSafe(t *testing.T) {
	var sim *Simulation

	if sim.Platforms() != nil || sim.Snowmen() != nil || sim.DescribeIntroSteps(1.5, 2) != nil {
		t.Error("nil simulation should return empty lists")
	}
	if sim.State() != (StateInfo{}) || sim.Player() != (Player{}) || sim.Camera() != (Camera{}) {
		t.Error("nil simulation should return zero values")
	}
	if _, ok := sim.SpawnSnowmanForTest(0); ok {
		t.Error("spawn on nil simulation should fail")
	}
	sim.ClearPlatforms()
	sim.EnablePlatformBuffer()
	sim.SetSinglePlatformForTest(200)
	sim.DropAllPlatforms()
	sim.TriggerDash()
	sim.TriggerDeathForTest()
	sim.StepForTest(16)
	_ = sim.TestSnowmanSpacing()
	_ = sim.MeasureJumpArcForTest()
	_ = sim.GroundMetrics()
	_ = sim.IntroStatus()
	_ = sim.SnowmanMetrics()
	_ = sim.Snapshot()
}

func TestIdleSimulationDoesNothing(t *testing.T) {
	sim := NewSimulation(config.DefaultRushConfig(), FixedRandom(0.5))

	if cues := sim.StepForTest(1000); len(cues) != 0 {
		t.Errorf("idle step emitted %v", cues)
	}
	if sim.State().Running || sim.State().Distance != 0 {
		t.Error("idle simulation must not run")
	}
	if len(sim.Platforms()) != 0 {
		t.Error("idle simulation has no ground yet")
	}
	if _, ok := sim.SpawnSnowmanForTest(0); ok {
		t.Error("spawn hook should refuse an idle simulation")
	}
	if sim.GroundMetrics().BaseWidth <= 0 {
		t.Error("ground metrics are known before the run")
	}
}
