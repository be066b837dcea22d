package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/KaramelBytes/cubeloom-cli/internal/errs"
	"github.com/KaramelBytes/cubeloom-cli/internal/export"
	"github.com/KaramelBytes/cubeloom-cli/internal/utils"
)

var (
	btMode      string
	btJobs      int
	btOutputDir string
	btFormat    string
	btBy        string
	btField     string
	btRows      string
	btColumns   string
	btPercentOf string
	btSort      string
	btDesc      bool
	btQuiet     bool
	btInput     inputFlags
)

var batchCmd = &cobra.Command{
	Use:   "batch <files...>",
	Short: "Run the averages or table report over many cube lists in parallel",
	Example: `  cubeloom batch "cubes/*.csv" --mode table --output-dir reports -f md
  cubeloom batch a.json b.json --mode averages --by Type --field Elo --jobs 2`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := expandInputs(args)
		if err != nil {
			return err
		}
		mode := strings.ToLower(strings.TrimSpace(btMode))
		if mode != "averages" && mode != "table" {
			return errs.Config("mode", fmt.Sprintf("unknown %q (want averages or table)", btMode))
		}
		format, err := export.ParseFormat(firstNonEmpty(btFormat, settings().OutputFormat))
		if err != nil {
			return err
		}
		if format == export.FormatXLSX && btOutputDir == "" {
			return errs.Config("output-dir", "xlsx needs --output-dir")
		}
		jobs := btJobs
		if !cmd.Flags().Changed("jobs") {
			jobs = settings().BatchJobs
		}
		if jobs < 1 {
			jobs = 1
		}

		results := make([][]byte, len(files))
		g, ctx := errgroup.WithContext(cmd.Context())
		g.SetLimit(jobs)
		for i, path := range files {
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				b, err := runBatchFile(ctx, path, mode, format)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				results[i] = b
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		var names []string
		if btOutputDir != "" {
			if err := os.MkdirAll(btOutputDir, 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}
			names = utils.OutputNames(files, format.Ext())
		}
		total := len(files)
		for i, path := range files {
			if !btQuiet {
				fmt.Fprintf(out, "[%d/%d] %s\n", i+1, total, filepath.Base(path))
			}
			if names == nil {
				fmt.Fprintln(out, string(results[i]))
				continue
			}
			dest := filepath.Join(btOutputDir, names[i])
			if err := utils.SafeWriteFile(dest, results[i]); err != nil {
				return fmt.Errorf("write %s: %w", dest, err)
			}
			if !btQuiet {
				fmt.Fprintf(out, "✓ Wrote %s\n", dest)
			}
		}
		return nil
	},
}

// runBatchFile renders one cube's report into memory.
func runBatchFile(ctx context.Context, path, mode string, format export.Format) ([]byte, error) {
	ci, err := loadInput(path, btInput)
	if err != nil {
		return nil, err
	}
	opt, err := reportOptions(ci.name, btInput.weighting, btPercentOf)
	if err != nil {
		return nil, err
	}
	var doc export.Document
	if mode == "averages" {
		doc, err = averagesDocument(ci, btBy, btField, opt)
	} else {
		doc, err = crossTabDocument(ci, btRows, btColumns, opt)
	}
	if err != nil {
		return nil, err
	}
	if err := applySort(doc.Table, btSort, btDesc); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := export.Write(&buf, doc, export.Options{Format: format}); err != nil {
		return nil, err
	}
	logger.Debug("rendered report", zap.String("path", path), zap.String("mode", mode), zap.Int("bytes", buf.Len()))
	return buf.Bytes(), nil
}

func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.Flags().StringVar(&btMode, "mode", "table", "report to run: averages | table")
	batchCmd.Flags().IntVarP(&btJobs, "jobs", "j", 4, "files processed in parallel (default from config)")
	batchCmd.Flags().StringVar(&btOutputDir, "output-dir", "", "write one export per input here instead of printing")
	batchCmd.Flags().StringVarP(&btFormat, "format", "f", "", "output format (default from config)")
	batchCmd.Flags().StringVar(&btBy, "by", "", "averages: characteristic to group by")
	batchCmd.Flags().StringVar(&btField, "field", "", "averages: numeric characteristic to summarize")
	batchCmd.Flags().StringVar(&btRows, "rows", "", "table: row characteristic")
	batchCmd.Flags().StringVar(&btColumns, "columns", "", "table: column characteristic")
	batchCmd.Flags().StringVar(&btPercentOf, "percent-of", "", "table: total | row | column | none")
	batchCmd.Flags().StringVar(&btSort, "sort", "", "column key or title to sort by")
	batchCmd.Flags().BoolVar(&btDesc, "descending", false, "sort descending (with --sort)")
	batchCmd.Flags().BoolVar(&btQuiet, "quiet", false, "suppress progress and non-essential output")
	batchCmd.Flags().StringVar(&btInput.weighting, "weighting", "", "count | asfan (default from config)")
	batchCmd.Flags().StringVar(&btInput.asfans, "asfans", "", "asfans JSON applied to every cube")
	batchCmd.Flags().StringVar(&btInput.analytics, "analytics", "", "draft analytics JSON applied to every cube")
	btInput.registerFilter(batchCmd)
}
