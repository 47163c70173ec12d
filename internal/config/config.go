package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gyeh/billsync/internal/model"
)

// Config holds all runtime configuration for a billsync run.
type Config struct {
	DSN           string   // optional audit ledger connection
	DocumentPaths []string // page-text files to process
	ReferencePath string   // procedure-code reference workbook
	WorkbookPath  string   // analysis workbook to reconcile into
	OutputCSV     string   // enriched record CSV artifact, empty = skip
	ArchivePath   string   // parquet archive, empty = skip
	LogFormat     string   // "text" or "json"

	// Markers overrides or extends the built-in filename marker → layout
	// mapping. Keys are markers, values are registered layout names.
	Markers map[string]string `yaml:"documents"`
}

// yamlConfig is the on-disk YAML structure.
type yamlConfig struct {
	Documents map[string]string `yaml:"documents"`
}

// LoadFromFile reads a YAML config file and merges its values into Config.
// Every layout name it mentions must be registered.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	c.Markers = yc.Documents
	return c.validateMarkers()
}

// validateMarkers checks that every configured marker maps to a known
// layout name, so a typo fails at load time rather than as a skipped
// document at dispatch time.
func (c *Config) validateMarkers() error {
	for marker, name := range c.Markers {
		if marker == "" {
			return fmt.Errorf("empty document marker for layout %q in config", name)
		}
		if _, ok := model.LayoutByName(name); !ok {
			return fmt.Errorf("unknown layout %q for marker %q in config", name, marker)
		}
	}
	return nil
}

// Layouts returns the dispatch table: the built-in layouts with any
// configured marker overrides applied, plus extra configured markers as
// additional entries.
func (c *Config) Layouts() []model.Layout {
	layouts := make([]model.Layout, len(model.AllLayouts))
	copy(layouts, model.AllLayouts)

	for marker, name := range c.Markers {
		replaced := false
		for i := range layouts {
			if layouts[i].Name == name {
				layouts[i].Marker = marker
				replaced = true
				break
			}
		}
		if !replaced {
			layouts = append(layouts, model.Layout{Name: name, Marker: marker})
		}
	}
	return layouts
}

// Validate checks required fields and returns an error if the config is
// invalid.
func (c *Config) Validate() error {
	if len(c.DocumentPaths) == 0 {
		return fmt.Errorf("at least one --bill is required")
	}
	for _, p := range c.DocumentPaths {
		if _, err := os.Stat(p); err != nil {
			return fmt.Errorf("bill not accessible: %w", err)
		}
	}
	if c.WorkbookPath == "" {
		return fmt.Errorf("--workbook is required")
	}
	if _, err := os.Stat(c.WorkbookPath); err != nil {
		return fmt.Errorf("workbook not accessible: %w", err)
	}
	if c.ReferencePath == "" {
		return fmt.Errorf("--reference is required")
	}
	if _, err := os.Stat(c.ReferencePath); err != nil {
		return fmt.Errorf("reference workbook not accessible: %w", err)
	}
	return c.validateMarkers()
}

// ValidateWithDSN checks run fields and additionally requires a DSN.
func (c *Config) ValidateWithDSN() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.DSN == "" {
		return fmt.Errorf("--dsn or BILLSYNC_DB_URL is required")
	}
	return nil
}
