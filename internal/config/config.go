// Package config loads the report-docx command configuration from an HCL
// file. Attribute expressions may reference the variables cwd and home, e.g.
//
//	output = "${home}/reports/weekly.docx"
//	locale = "fr-FR"
//
//	log {
//	  level  = "debug"
//	  format = "json"
//	}
//
//	watch {
//	  debounce = "500ms"
//	  paths    = ["${cwd}/assets"]
//	}
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

const (
	DefaultOutput    = "ExampleDocument.docx"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
	DefaultDebounce  = 300 * time.Millisecond
)

// Config is the resolved command configuration.
type Config struct {
	Output         string
	Locale         string
	AssetsDir      string
	BaseDocument   string
	LogLevel       string
	LogFormat      string
	ChartWorkbooks bool

	// drop table rows rendering nothing
	RemoveEmptyRows bool
	Watch           WatchConfig
}

type WatchConfig struct {
	Enabled  bool
	Debounce time.Duration
	// extra paths watched next to the input report
	Paths []string
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Output:         DefaultOutput,
		AssetsDir:      ".",
		LogLevel:       DefaultLogLevel,
		LogFormat:      DefaultLogFormat,
		ChartWorkbooks: true,
		Watch: WatchConfig{
			Debounce: DefaultDebounce,
		},
	}
}

// fileRoot mirrors the accepted HCL attributes and blocks.
type fileRoot struct {
	Output         string      `hcl:"output,optional"`
	Locale         string      `hcl:"locale,optional"`
	Assets         string      `hcl:"assets,optional"`
	BaseDocument   string      `hcl:"base_document,optional"`
	ChartWorkbooks *bool       `hcl:"chart_workbooks,optional"`
	RemoveEmpty    bool        `hcl:"remove_empty_rows,optional"`
	Log            *logBlock   `hcl:"log,block"`
	Watch          *watchBlock `hcl:"watch,block"`
	Remain         hcl.Body    `hcl:",remain"`
}

type logBlock struct {
	Level  string `hcl:"level,optional"`
	Format string `hcl:"format,optional"`
}

type watchBlock struct {
	Enabled  *bool    `hcl:"enabled,optional"`
	Debounce string   `hcl:"debounce,optional"`
	Paths    []string `hcl:"paths,optional"`
}

// Load parses the HCL file at path and applies it over the defaults.
func Load(path string) (*Config, error) {
	parser := hclparse.NewParser()

	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}

	evalCtx, err := evalContext()
	if err != nil {
		return nil, err
	}

	var root fileRoot
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}

	cfg := Default()
	err = root.applyTo(cfg)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", path, err)
	}

	return cfg, nil
}

// evalContext exposes the working and home directories to expressions.
func evalContext() (*hcl.EvalContext, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("unable to get working directory: %w", err)
	}

	// home is optional, e.g. in minimal containers
	home, _ := os.UserHomeDir()

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"cwd":  cty.StringVal(cwd),
			"home": cty.StringVal(home),
		},
	}, nil
}

func (r *fileRoot) applyTo(cfg *Config) error {
	if r.Output != "" {
		cfg.Output = r.Output
	}
	if r.Locale != "" {
		cfg.Locale = r.Locale
	}
	if r.Assets != "" {
		cfg.AssetsDir = r.Assets
	}
	if r.BaseDocument != "" {
		cfg.BaseDocument = r.BaseDocument
	}
	if r.ChartWorkbooks != nil {
		cfg.ChartWorkbooks = *r.ChartWorkbooks
	}
	cfg.RemoveEmptyRows = r.RemoveEmpty

	if r.Log != nil {
		if r.Log.Level != "" {
			cfg.LogLevel = strings.ToLower(r.Log.Level)
		}
		if r.Log.Format != "" {
			cfg.LogFormat = strings.ToLower(r.Log.Format)
		}
	}

	if r.Watch != nil {
		cfg.Watch.Enabled = true
		if r.Watch.Enabled != nil {
			cfg.Watch.Enabled = *r.Watch.Enabled
		}
		if r.Watch.Debounce != "" {
			d, err := time.ParseDuration(r.Watch.Debounce)
			if err != nil {
				return fmt.Errorf("invalid watch debounce %q: %w", r.Watch.Debounce, err)
			}
			cfg.Watch.Debounce = d
		}
		cfg.Watch.Paths = r.Watch.Paths
	}

	return cfg.Validate()
}

// Validate checks the values that cannot be checked by decoding alone.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q: must be 'debug', 'info', 'warn', or 'error'", c.LogLevel)
	}

	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("invalid log format %q: must be 'text' or 'json'", c.LogFormat)
	}

	if c.Watch.Debounce <= 0 {
		return fmt.Errorf("watch debounce must be positive, got %s", c.Watch.Debounce)
	}

	return nil
}
