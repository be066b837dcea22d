package cmd

import (
	"github.com/spf13/cobra"
)

var (
	avBy     string
	avField  string
	avInput  inputFlags
	avOutput outputFlags
)

var averagesCmd = &cobra.Command{
	Use:   "averages <cube>",
	Short: "Weighted mean, median and standard deviation of a field per group",
	Example: `  cubeloom averages cube.csv --by Color --field "Mana Value"
  cubeloom averages cube.json --by Type --field Elo --analytics analytics.json --sort mean --descending
  cubeloom averages cube.csv --weighting asfan --asfans asfans.json -o out/`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ci, err := loadInput(args[0], avInput)
		if err != nil {
			return err
		}
		opt, err := reportOptions(ci.name, avInput.weighting, "")
		if err != nil {
			return err
		}
		doc, err := averagesDocument(ci, avBy, avField, opt)
		if err != nil {
			return err
		}
		return writeDocument(cmd, doc, avOutput)
	},
}

func init() {
	rootCmd.AddCommand(averagesCmd)
	averagesCmd.Flags().StringVar(&avBy, "by", "", "characteristic to group by (default from config)")
	averagesCmd.Flags().StringVar(&avField, "field", "", "numeric characteristic to summarize (default from config)")
	avInput.register(averagesCmd)
	avOutput.register(averagesCmd)
}
