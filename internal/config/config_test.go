package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/KaramelBytes/cubeloom-cli/internal/errs"
)

func TestLoadDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.DefaultRows != "Type" || c.DefaultColumns != "Color Identity" || c.PercentOf != "total" {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if c.Weighting != "count" || c.ExportName != "export.csv" || c.BatchJobs != 4 {
		t.Fatalf("unexpected defaults: %+v", c)
	}
}

func TestLoadWithoutFileMatchesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	c, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if *c != *Defaults() {
		t.Fatalf("Load = %+v, Defaults = %+v", *c, *Defaults())
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(p, []byte("percent_of: row\nbatch_jobs: 2\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	c, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.PercentOf != "row" || c.BatchJobs != 2 {
		t.Fatalf("file values not applied: %+v", c)
	}

	t.Setenv("CUBELOOM_PERCENT_OF", "column")
	c, err = Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.PercentOf != "column" {
		t.Fatalf("env should override file, got %q", c.PercentOf)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.yaml")
	c, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := c.Set("default_group_by", "Rarity"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := c.Set("batch_jobs", "8"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := Save(c, p); err != nil {
		t.Fatalf("save: %v", err)
	}
	back, err := Load(p)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if back.DefaultGroupBy != "Rarity" || back.BatchJobs != 8 {
		t.Fatalf("round trip lost values: %+v", back)
	}
	if v, ok := back.Get("batch_jobs"); !ok || v != "8" {
		t.Fatalf("get: %q %v", v, ok)
	}
}

func TestSetRejectsBadValues(t *testing.T) {
	c := &Global{}
	var cfgErr *errs.ConfigurationError
	if err := c.Set("nope", "x"); !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
	if err := c.Set("batch_jobs", "0"); !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
}
