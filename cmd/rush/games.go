package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/reindeer-rush/internal/registry"
	"github.com/vovakirdan/reindeer-rush/internal/storage"
)

var gamesCmd = &cobra.Command{
	Use:   "games",
	Short: "List the advent leaderboards",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("Advent leaderboards:")
		fmt.Println()
		for _, g := range storage.KnownGames {
			mark := " "
			if registry.Exists(g.ID) {
				mark = "*"
			}
			fmt.Printf(" %s %-16s %s\n", mark, g.ID, g.Title)
		}
		fmt.Println()
		fmt.Println("* playable here: rush play")
		return nil
	},
}
