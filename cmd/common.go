package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/KaramelBytes/cubeloom-cli/internal/analysis"
	"github.com/KaramelBytes/cubeloom-cli/internal/card"
	"github.com/KaramelBytes/cubeloom-cli/internal/characteristic"
	"github.com/KaramelBytes/cubeloom-cli/internal/errs"
	"github.com/KaramelBytes/cubeloom-cli/internal/export"
	"github.com/KaramelBytes/cubeloom-cli/internal/grouping"
	"github.com/KaramelBytes/cubeloom-cli/internal/parser"
	"github.com/KaramelBytes/cubeloom-cli/internal/table"
	"github.com/KaramelBytes/cubeloom-cli/internal/utils"
)

// inputFlags name the collaborator files loaded next to a cube list.
type inputFlags struct {
	analytics string
	asfans    string
	weighting string
	sheet     string
	filters   []string
}

func (f *inputFlags) register(c *cobra.Command) {
	c.Flags().StringVar(&f.analytics, "analytics", "", "draft analytics JSON (enables Elo, Pick Rate and Mainboard Rate)")
	c.Flags().StringVar(&f.asfans, "asfans", "", "asfans JSON mapping card id or name to expected copies per draft")
	c.Flags().StringVar(&f.weighting, "weighting", "", "count | asfan (default from config)")
	c.Flags().StringVar(&f.sheet, "sheet", "", "XLSX: sheet holding the cube list (default: first sheet)")
	f.registerFilter(c)
}

func (f *inputFlags) registerFilter(c *cobra.Command) {
	c.Flags().StringArrayVar(&f.filters, "filter", nil, "keep only cards labelled Characteristic=Label (repeatable, all must match)")
}

// outputFlags control sorting and where a table goes.
type outputFlags struct {
	format      string
	output      string
	sortKey     string
	descending  bool
	chartColumn string
	plain       bool
}

func (f *outputFlags) register(c *cobra.Command) {
	c.Flags().StringVarP(&f.format, "format", "f", "", "output format: text | csv | json | xlsx | md | chart (default from config or --output extension)")
	c.Flags().StringVarP(&f.output, "output", "o", "", "output file or directory (default: stdout)")
	c.Flags().StringVar(&f.sortKey, "sort", "", "column key or title to sort by")
	c.Flags().BoolVar(&f.descending, "descending", false, "sort descending (with --sort)")
	c.Flags().StringVar(&f.chartColumn, "chart-column", "", "column plotted by the chart format")
	c.Flags().BoolVar(&f.plain, "plain", false, "omit title and notes from text and Markdown output")
}

// cubeInput is a loaded cube list plus its collaborators.
type cubeInput struct {
	name     string
	cards    []*card.Card
	index    card.AnalyticsIndex
	registry *characteristic.Registry
}

// loadInput reads a cube list and, when given, its analytics and asfans.
func loadInput(path string, in inputFlags) (*cubeInput, error) {
	cards, err := parser.LoadCubeSheet(path, in.sheet)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded cube", zap.String("path", path), zap.Int("cards", len(cards)))
	ci := &cubeInput{name: filepath.Base(path), cards: cards}
	if in.analytics != "" {
		list, err := parser.LoadAnalytics(in.analytics)
		if err != nil {
			return nil, err
		}
		ci.index = card.NewAnalyticsIndex(list)
		logger.Debug("loaded analytics", zap.Int("entries", len(ci.index)))
	}
	if in.asfans != "" {
		m, err := parser.LoadAsfans(in.asfans)
		if err != nil {
			return nil, err
		}
		n := card.AttachAsfans(cards, m)
		logger.Debug("attached asfans", zap.Int("matched", n), zap.Int("entries", len(m)))
		if n == 0 {
			logger.Warn("no asfan matched a card in the cube", zap.String("asfans", in.asfans))
		}
	}
	ci.registry = characteristic.Default(ci.index)
	for _, expr := range in.filters {
		if ci.cards, err = applyFilter(ci.registry, ci.cards, expr); err != nil {
			return nil, err
		}
	}
	return ci, nil
}

// applyFilter narrows cards to those matching a "Characteristic=Label" expression.
func applyFilter(reg *characteristic.Registry, cards []*card.Card, expr string) ([]*card.Card, error) {
	name, label, ok := strings.Cut(expr, "=")
	name, label = strings.TrimSpace(name), strings.TrimSpace(label)
	if !ok || name == "" || label == "" {
		return nil, errs.Config("filter", fmt.Sprintf("%q is not of the form Characteristic=Label", expr))
	}
	crit, err := reg.Lookup(name)
	if err != nil {
		return nil, err
	}
	kept, err := grouping.Filter(cards, crit, label)
	if err != nil {
		return nil, err
	}
	logger.Debug("applied filter", zap.String("filter", expr), zap.Int("kept", len(kept)), zap.Int("of", len(cards)))
	return kept, nil
}

// reportOptions resolves the analysis options from flags with config fallbacks.
func reportOptions(name, weighting, percentOf string) (analysis.Options, error) {
	opt := analysis.DefaultOptions()
	opt.Name = name
	w, err := analysis.ParseWeighting(firstNonEmpty(weighting, settings().Weighting))
	if err != nil {
		return opt, err
	}
	opt.Weighting = w
	p, err := table.ParsePercentOf(firstNonEmpty(percentOf, settings().PercentOf))
	if err != nil {
		return opt, err
	}
	opt.PercentOf = p
	return opt, nil
}

// averagesDocument runs the Averages report over a loaded cube.
func averagesDocument(ci *cubeInput, by, field string, opt analysis.Options) (export.Document, error) {
	by = firstNonEmpty(by, settings().DefaultGroupBy)
	field = firstNonEmpty(field, settings().DefaultField)
	byC, err := ci.registry.Lookup(by)
	if err != nil {
		return export.Document{}, err
	}
	if !ci.registry.IsNumeric(field) {
		return export.Document{}, errs.Config("field", fmt.Sprintf("%q is not a numeric field (fields: %s)", field, strings.Join(ci.registry.Fields(), ", ")))
	}
	fieldC, err := ci.registry.Lookup(field)
	if err != nil {
		return export.Document{}, err
	}
	rep, err := analysis.Averages(ci.cards, byC, fieldC, opt)
	if err != nil {
		return export.Document{}, err
	}
	t, err := rep.Table()
	if err != nil {
		return export.Document{}, err
	}
	return export.Document{Title: rep.Title(), Notes: rep.Notes(), Table: t}, nil
}

// crossTabDocument runs the cross-tab report over a loaded cube.
func crossTabDocument(ci *cubeInput, rows, columns string, opt analysis.Options) (export.Document, error) {
	rowC, err := ci.registry.Lookup(firstNonEmpty(rows, settings().DefaultRows))
	if err != nil {
		return export.Document{}, err
	}
	colC, err := ci.registry.Lookup(firstNonEmpty(columns, settings().DefaultColumns))
	if err != nil {
		return export.Document{}, err
	}
	rep, err := analysis.CrossTab(ci.cards, rowC, colC, opt)
	if err != nil {
		return export.Document{}, err
	}
	t, err := rep.Table()
	if err != nil {
		return export.Document{}, err
	}
	return export.Document{Title: rep.Title(), Notes: rep.Notes(), Table: t}, nil
}

// applySort resolves key against the column keys and titles and requests the sort on t.
func applySort(t *table.Table, key string, descending bool) error {
	if key == "" {
		if descending {
			logger.Warn("--descending has no effect without --sort")
		}
		return nil
	}
	var match string
	for _, c := range t.Columns() {
		if strings.EqualFold(c.Key, key) || strings.EqualFold(c.Title, key) {
			match = c.Key
			break
		}
	}
	if match == "" {
		keys := make([]string, 0, len(t.Columns()))
		for _, c := range t.Columns() {
			keys = append(keys, c.Key)
		}
		return errs.Config("sort", fmt.Sprintf("unknown column %q (columns: %s)", key, strings.Join(keys, ", ")))
	}
	t.RequestSort(match)
	if descending {
		t.RequestSort(match)
	}
	if t.Unsortable(match) {
		logger.Warn("column has non-numeric cells and no comparator; rows keep their order", zap.String("column", match))
	}
	return nil
}

// resolveFormat picks the format from the flag, then the output extension, then config.
func resolveFormat(flag, output string) (export.Format, error) {
	if flag != "" {
		return export.ParseFormat(flag)
	}
	if output != "" && !utils.IsDir(output) {
		if f, ok := export.FormatForPath(output); ok {
			return f, nil
		}
	}
	return export.ParseFormat(settings().OutputFormat)
}

// exportFileName is the configured export name with the format's extension.
func exportFileName(f export.Format) string {
	name := firstNonEmpty(settings().ExportName, table.DefaultExportName)
	return strings.TrimSuffix(name, filepath.Ext(name)) + f.Ext()
}

// writeDocument prints doc to the command's output or writes it to a file. A directory output
// receives the configured export file name.
func writeDocument(cmd *cobra.Command, doc export.Document, of outputFlags) error {
	if err := applySort(doc.Table, of.sortKey, of.descending); err != nil {
		return err
	}
	format, err := resolveFormat(of.format, of.output)
	if err != nil {
		return err
	}
	opt := export.Options{Format: format, ChartColumn: of.chartColumn, Plain: of.plain}
	if of.output == "" {
		if format == export.FormatXLSX {
			return errs.Config("output", "xlsx needs --output")
		}
		return export.Write(cmd.OutOrStdout(), doc, opt)
	}
	path := of.output
	if utils.IsDir(path) {
		path = filepath.Join(path, exportFileName(format))
	}
	if err := export.WriteFile(path, doc, opt); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s\n", path)
	return nil
}

// expandInputs resolves glob patterns and literal paths into a sorted, de-duplicated list.
func expandInputs(args []string) ([]string, error) {
	var files []string
	seen := map[string]struct{}{}
	for _, arg := range args {
		matches, _ := filepath.Glob(arg)
		if len(matches) == 0 {
			// treat as literal path if exists
			if _, err := os.Stat(arg); err == nil {
				matches = []string{arg}
			}
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			files = append(files, m)
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no input files matched")
	}
	sort.Strings(files)
	return files, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
