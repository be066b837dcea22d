package cmd

import (
	"github.com/spf13/cobra"
)

var (
	tbRows      string
	tbColumns   string
	tbPercentOf string
	tbInput     inputFlags
	tbOutput    outputFlags
)

var tableCmd = &cobra.Command{
	Use:   "table <cube>",
	Short: "Cross-tabulate card counts by two characteristics",
	Example: `  cubeloom table cube.csv --rows Type --columns "Color Identity"
  cubeloom table cube.json --rows "Mana Value" --columns Color --percent-of column -f md`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ci, err := loadInput(args[0], tbInput)
		if err != nil {
			return err
		}
		opt, err := reportOptions(ci.name, tbInput.weighting, tbPercentOf)
		if err != nil {
			return err
		}
		doc, err := crossTabDocument(ci, tbRows, tbColumns, opt)
		if err != nil {
			return err
		}
		return writeDocument(cmd, doc, tbOutput)
	},
}

func init() {
	rootCmd.AddCommand(tableCmd)
	tableCmd.Flags().StringVar(&tbRows, "rows", "", "row characteristic (default from config)")
	tableCmd.Flags().StringVar(&tbColumns, "columns", "", "column characteristic (default from config)")
	tableCmd.Flags().StringVar(&tbPercentOf, "percent-of", "", "percent annotation: total | row | column | none (default from config)")
	tbInput.register(tableCmd)
	tbOutput.register(tableCmd)
}
