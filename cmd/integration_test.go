package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const testCube = "Name,CMC,Type,Color,Tags\n" +
	"Lightning Bolt,1,Instant,R,burn\n" +
	"Shock,1,Instant,R,burn\n" +
	"Fireball,2,Sorcery,R,\n" +
	"Counterspell,2,Instant,U,\n" +
	"Grizzly Bears,2,Creature - Bear,G,\n" +
	"Mountain,0,Basic Land - Mountain,,\n"

// resetFlags restores every flag to its default so state does not leak between invocations.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// runCmd is a helper to execute the root command with args.
func runCmd(t *testing.T, args ...string) string {
	t.Helper()
	out, err := execute(t, args...)
	if err != nil {
		t.Fatalf("command %v failed: %v", args, err)
	}
	return out
}

// isolate points HOME at a temp dir so config reads and writes stay local.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func writeCube(t *testing.T, dir, name string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(testCube), 0o644); err != nil {
		t.Fatalf("write cube: %v", err)
	}
	return p
}

func TestCLI_AveragesCSV(t *testing.T) {
	home := isolate(t)
	cube := writeCube(t, home, "cube.csv")

	out := runCmd(t, "averages", cube, "--by", "Color", "--field", "Mana Value", "-f", "csv")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if lines[0] != "label,mean,median,stddev,count,sum" {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	var blue, red int
	for i, l := range lines {
		switch {
		case strings.HasPrefix(l, "Blue,"):
			blue = i
		case strings.HasPrefix(l, "Red,1.33,1,"):
			red = i
		case strings.HasPrefix(l, "Colorless,"):
			t.Fatalf("lands must not count toward mana value: %q", l)
		}
	}
	if blue == 0 || red == 0 || blue > red {
		t.Fatalf("expected Blue before Red in color order:\n%s", out)
	}

	sorted := runCmd(t, "averages", cube, "--by", "Color", "-f", "csv", "--sort", "Count", "--descending")
	if !strings.HasPrefix(strings.Split(sorted, "\n")[1], "Red,") {
		t.Fatalf("expected Red first when sorted by count descending:\n%s", sorted)
	}
}

func TestCLI_AveragesFilter(t *testing.T) {
	home := isolate(t)
	cube := writeCube(t, home, "cube.csv")

	out := runCmd(t, "averages", cube, "--by", "Color", "--filter", "Tags=burn", "-f", "csv")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[1], "Red,1,1,") {
		t.Fatalf("expected only the burn spells in a Red row:\n%s", out)
	}

	out = runCmd(t, "averages", cube, "--by", "Color", "--filter", "tags=burn", "--filter", "Type=Sorcery", "-f", "csv")
	if strings.Count(strings.TrimSpace(out), "\n") != 0 {
		t.Fatalf("filters combine with AND, expected header only:\n%s", out)
	}

	out = runCmd(t, "averages", cube, "--by", "Color", "-f", "csv")
	if !strings.Contains(out, "Blue,") {
		t.Fatalf("filter leaked into the next run:\n%s", out)
	}
}

func TestCLI_FilterErrors(t *testing.T) {
	home := isolate(t)
	cube := writeCube(t, home, "cube.csv")
	if _, err := execute(t, "table", cube, "--filter", "burn"); err == nil {
		t.Fatalf("expected error for filter without '='")
	}
	if _, err := execute(t, "table", cube, "--filter", "Flavor=burn"); err == nil {
		t.Fatalf("expected error for unknown characteristic")
	}
}

func TestCLI_AveragesRejectsCategoryField(t *testing.T) {
	home := isolate(t)
	cube := writeCube(t, home, "cube.csv")
	if _, err := execute(t, "averages", cube, "--field", "Color"); err == nil {
		t.Fatalf("expected error for non-numeric field")
	}
	if _, err := execute(t, "averages", cube, "--sort", "nope"); err == nil {
		t.Fatalf("expected error for unknown sort column")
	}
}

func TestCLI_TableToDirectory(t *testing.T) {
	home := isolate(t)
	cube := writeCube(t, home, "cube.csv")
	outDir := filepath.Join(home, "out")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	out := runCmd(t, "table", cube, "--rows", "Type", "--columns", "Color", "--percent-of", "column", "-o", outDir, "-f", "csv")
	dest := filepath.Join(outDir, "export.csv")
	if !strings.Contains(out, "✓ Wrote "+dest) {
		t.Fatalf("missing write confirmation: %q", out)
	}
	b, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	header := strings.SplitN(string(b), "\n", 2)[0]
	if !strings.HasPrefix(header, "rowLabel,") || !strings.HasSuffix(header, "Total") {
		t.Fatalf("unexpected header: %q", header)
	}
	if !strings.Contains(string(b), "Instant,") {
		t.Fatalf("missing Instant row:\n%s", b)
	}
}

func TestCLI_TableTextShowsPercent(t *testing.T) {
	home := isolate(t)
	cube := writeCube(t, home, "cube.csv")
	out := runCmd(t, "table", cube, "--rows", "Type", "--columns", "Color")
	if !strings.Contains(out, "Type by Color") || !strings.Contains(out, "%)") {
		t.Fatalf("expected title and percent annotations:\n%s", out)
	}
}

func TestCLI_XLSXNeedsOutput(t *testing.T) {
	home := isolate(t)
	cube := writeCube(t, home, "cube.csv")
	if _, err := execute(t, "table", cube, "-f", "xlsx"); err == nil {
		t.Fatalf("expected error writing xlsx to stdout")
	}
	p := filepath.Join(home, "t.xlsx")
	runCmd(t, "table", cube, "-o", p)
	if _, err := os.Stat(p); err != nil {
		t.Fatalf("xlsx not written: %v", err)
	}
}

func TestCLI_BatchCollisionSuffix(t *testing.T) {
	home := isolate(t)
	for _, d := range []string{"d1", "d2"} {
		if err := os.MkdirAll(filepath.Join(home, d), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		writeCube(t, filepath.Join(home, d), "cube.csv")
	}
	outDir := filepath.Join(home, "reports")
	out := runCmd(t, "batch", filepath.Join(home, "d*", "cube.csv"), "--mode", "table", "--output-dir", outDir, "-f", "md", "--jobs", "2")
	if !strings.Contains(out, "[2/2]") {
		t.Fatalf("missing progress lines: %q", out)
	}
	for _, name := range []string{"cube.md", "cube__2.md"} {
		b, err := os.ReadFile(filepath.Join(outDir, name))
		if err != nil {
			t.Fatalf("missing %s: %v", name, err)
		}
		if !strings.Contains(string(b), "| Type |") {
			t.Fatalf("%s is not a Markdown table:\n%s", name, b)
		}
	}
}

func TestCLI_BatchBadMode(t *testing.T) {
	home := isolate(t)
	cube := writeCube(t, home, "cube.csv")
	if _, err := execute(t, "batch", cube, "--mode", "nope"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}

func TestCLI_Piles(t *testing.T) {
	home := isolate(t)
	cube := writeCube(t, home, "deck.csv")
	out := runCmd(t, "piles", cube, "--names")
	for _, want := range []string{"Creatures", "Non-creatures", "7+", "Grizzly Bears"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestCLI_Characteristics(t *testing.T) {
	home := isolate(t)
	out := runCmd(t, "characteristics")
	if !strings.Contains(out, "Mana Value") || !strings.Contains(out, "numeric") || !strings.Contains(out, "category") {
		t.Fatalf("unexpected listing:\n%s", out)
	}
	cube := writeCube(t, home, "cube.csv")
	out = runCmd(t, "characteristics", cube, "-f", "csv")
	if !strings.Contains(out, "burn") {
		t.Fatalf("expected tag labels for the cube:\n%s", out)
	}
}

func TestCLI_ConfigSetShow(t *testing.T) {
	home := isolate(t)
	runCmd(t, "config", "set", "percent_of", "row")
	if _, err := os.Stat(filepath.Join(home, ".cubeloom", "config.yaml")); err != nil {
		t.Fatalf("config not saved: %v", err)
	}
	out := runCmd(t, "config", "show")
	if !strings.Contains(out, "percent_of: row") {
		t.Fatalf("expected saved value in show output:\n%s", out)
	}
	if _, err := execute(t, "config", "set", "unknown_key", "x"); err == nil {
		t.Fatalf("expected error for unknown key")
	}
}
