package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/cubeloom-cli/internal/characteristic"
	"github.com/KaramelBytes/cubeloom-cli/internal/export"
	"github.com/KaramelBytes/cubeloom-cli/internal/grouping"
	"github.com/KaramelBytes/cubeloom-cli/internal/table"
)

var (
	chInput  inputFlags
	chOutput outputFlags
)

var characteristicsCmd = &cobra.Command{
	Use:   "characteristics [cube]",
	Short: "List the characteristics usable as groupings and fields",
	Long: `List every characteristic by name and kind. Numeric characteristics work as --field and as
groupings; category characteristics only group. With a cube, the labels each one produces are shown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg := characteristic.Default(nil)
		var ci *cubeInput
		if len(args) == 1 {
			loaded, err := loadInput(args[0], chInput)
			if err != nil {
				return err
			}
			ci, reg = loaded, loaded.registry
		}
		cols := []table.ColumnSpec{
			{Key: "name", Title: "Characteristic", Heading: true, Sortable: true},
			{Key: "kind", Title: "Kind", Sortable: true},
		}
		if ci != nil {
			cols = append(cols,
				table.ColumnSpec{Key: "cards", Title: "Sortable Cards", Sortable: true},
				table.ColumnSpec{Key: "labels", Title: "Labels"},
			)
		}
		var rows []table.Row
		for _, name := range reg.Names() {
			c, err := reg.Lookup(name)
			if err != nil {
				return err
			}
			kind := "category"
			if reg.IsNumeric(name) {
				kind = "numeric"
			}
			row := table.Row{"name": name, "kind": kind}
			if ci != nil {
				sortable, err := grouping.Sortable(ci.cards, c)
				if err != nil {
					return err
				}
				row["cards"] = len(sortable)
				row["labels"] = strings.Join(c.Labels(ci.cards), ", ")
			}
			rows = append(rows, row)
		}
		t, err := table.New(rows, cols,
			table.WithCompare("name", table.CompareStrings),
			table.WithCompare("kind", table.CompareStrings))
		if err != nil {
			return err
		}
		return writeDocument(cmd, export.Document{Title: "Characteristics", Table: t}, chOutput)
	},
}

func init() {
	rootCmd.AddCommand(characteristicsCmd)
	chInput.register(characteristicsCmd)
	chOutput.register(characteristicsCmd)
}
