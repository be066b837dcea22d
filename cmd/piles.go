package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/cubeloom-cli/internal/deck"
	"github.com/KaramelBytes/cubeloom-cli/internal/export"
	"github.com/KaramelBytes/cubeloom-cli/internal/parser"
)

var (
	plNames  bool
	plOutput outputFlags
)

var pilesCmd = &cobra.Command{
	Use:   "piles <deck>",
	Short: "Sort a deck into creature and non-creature piles by mana value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cards, err := parser.LoadCube(args[0])
		if err != nil {
			return err
		}
		piles := deck.SortPiles(cards)
		t, err := piles.Table(plNames)
		if err != nil {
			return err
		}
		doc := export.Document{
			Title: "Piles of " + filepath.Base(args[0]),
			Notes: []string{fmt.Sprintf("Cards: %d", len(cards))},
			Table: t,
		}
		return writeDocument(cmd, doc, plOutput)
	},
}

func init() {
	rootCmd.AddCommand(pilesCmd)
	pilesCmd.Flags().BoolVar(&plNames, "names", false, "list card names next to each pile count")
	plOutput.register(pilesCmd)
}
