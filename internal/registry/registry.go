// Package registry maps game ids to factories. Games register in init(),
// so hosts (terminal, SSH, browser) can build a game by id without
// importing it directly.
package registry

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/vovakirdan/reindeer-rush/internal/core"
)

// Game is a fixed-tick game driven by a host.
// Games never touch the terminal or the network; the host maps input,
// paces ticks and draws the screen buffer.
type Game interface {
	// ID is the stable id used on the score board and on the command line.
	ID() string

	// Title is the display name.
	Title() string

	// Reset starts a fresh run sized to the runtime config.
	Reset(cfg core.RuntimeConfig)

	// Step advances one tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws into a cleared screen buffer.
	Render(dst *core.Screen)

	State() core.GameState
}

// GameInfo describes a registered game.
type GameInfo struct {
	ID      string
	Title   string
	Aliases []string
}

// Factory creates a new game instance.
type Factory func() Game

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	aliases   = make(map[string]string)
)

// Register adds a game factory. It panics on a duplicate id.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	id = normalize(id)
	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	if target, exists := aliases[id]; exists {
		panic(fmt.Sprintf("registry: %q is already an alias of %q", id, target))
	}

	factories[id] = f
	titles[id] = f().Title()
}

// Alias makes alias resolve to id. The target does not have to be
// registered yet.
func Alias(alias, id string) {
	mu.Lock()
	defer mu.Unlock()

	alias = normalize(alias)
	if _, exists := factories[alias]; exists {
		panic(fmt.Sprintf("registry: alias %q shadows a game", alias))
	}
	aliases[alias] = normalize(id)
}

// Resolve returns the canonical id for id or one of its aliases.
func Resolve(id string) (string, bool) {
	mu.RLock()
	defer mu.RUnlock()
	return resolve(id)
}

func resolve(id string) (string, bool) {
	id = normalize(id)
	if target, ok := aliases[id]; ok {
		id = target
	}
	_, ok := factories[id]
	return id, ok
}

// List returns all registered games sorted by id.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	byTarget := make(map[string][]string)
	for a, target := range aliases {
		byTarget[target] = append(byTarget[target], a)
	}

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		as := byTarget[id]
		sort.Strings(as)
		result = append(result, GameInfo{ID: id, Title: titles[id], Aliases: as})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create instantiates a game by id or alias.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	canonical, ok := resolve(id)
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return factories[canonical](), nil
}

// Exists reports whether id or an alias of it is registered.
func Exists(id string) bool {
	_, ok := Resolve(id)
	return ok
}

func normalize(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}
