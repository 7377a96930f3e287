package registry

import (
	"testing"

	"github.com/vovakirdan/reindeer-rush/internal/core"
)

type stubGame struct{ id string }

func (g *stubGame) ID() string                           { return g.id }
func (g *stubGame) Title() string                        { return "Stub " + g.id }
func (g *stubGame) Reset(core.RuntimeConfig)             {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen)                  {}
func (g *stubGame) State() core.GameState                { return core.GameState{} }

func TestRegisterCreateAndAlias(t *testing.T) {
	Register("stub-a", func() Game { return &stubGame{id: "stub-a"} })
	Alias("Stub-Alias", "stub-a")

	for _, id := range []string{"stub-a", "STUB-A", " stub-alias "} {
		g, err := Create(id)
		if err != nil {
			t.Fatalf("Create(%q): %v", id, err)
		}
		if g.ID() != "stub-a" {
			t.Errorf("Create(%q) built %q", id, g.ID())
		}
	}

	if canonical, ok := Resolve("stub-alias"); !ok || canonical != "stub-a" {
		t.Errorf("Resolve = %q, %v", canonical, ok)
	}
	if _, err := Create("missing"); err == nil {
		t.Error("expected an error for an unknown game")
	}
	if Exists("missing") {
		t.Error("missing game reported as existing")
	}

	var found bool
	for _, info := range List() {
		if info.ID == "stub-a" {
			found = true
			if info.Title != "Stub stub-a" || len(info.Aliases) != 1 || info.Aliases[0] != "stub-alias" {
				t.Errorf("unexpected info %+v", info)
			}
		}
	}
	if !found {
		t.Error("stub-a missing from List")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("stub-dup", func() Game { return &stubGame{id: "stub-dup"} })
	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("stub-dup", func() Game { return &stubGame{id: "stub-dup"} })
}
