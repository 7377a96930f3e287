package storage

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// MaxNameLength is the longest accepted player name, in runes.
const MaxNameLength = 18

// ErrEmptyName is returned for blank player names.
var ErrEmptyName = errors.New("storage: empty player name")

// GameInfo names a leaderboard.
type GameInfo struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// KnownGames lists the advent leaderboards in calendar order.
var KnownGames = []GameInfo{
	{ID: "forste-advent", Title: "Første Advent — Snake"},
	{ID: "anden-advent", Title: "Anden Advent — Flappy Santa"},
	{ID: "tredje-advent", Title: "Tredje Advent — Jingle Bell Hero"},
	{ID: "fjerde-advent", Title: "Fjerde Advent — Reindeer Rush"},
}

// legacyIDs maps ids older clients used.
var legacyIDs = map[string]string{
	"reindeer-rush": "fjerde-advent",
}

// CanonicalGameID lowercases and trims id and resolves legacy aliases.
func CanonicalGameID(id string) string {
	id = strings.ToLower(strings.TrimSpace(id))
	if canonical, ok := legacyIDs[id]; ok {
		return canonical
	}
	return id
}

// GameTitle returns the display title for id, or id itself when unknown.
func GameTitle(id string) string {
	id = CanonicalGameID(id)
	for _, g := range KnownGames {
		if g.ID == id {
			return g.Title
		}
	}
	return id
}

// NormalizeName trims whitespace and truncates to MaxNameLength runes.
func NormalizeName(name string) (string, error) {
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return "", ErrEmptyName
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		name = strings.TrimSpace(string([]rune(name)[:MaxNameLength]))
	}
	return name, nil
}
