package goreportdocx

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/JJJJJJack/go-report-docx/datacontext"
)

type generatorConfig struct {
	formatter      *datacontext.Formatter
	logger         *slog.Logger
	assetsDir      string
	chartWorkbooks bool
}

// Option configures a [ReportGenerator].
type Option func(*generatorConfig) error

func newGeneratorConfig(opts []Option) (*generatorConfig, error) {
	cfg := &generatorConfig{
		formatter:      datacontext.DefaultFormatter(),
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		assetsDir:      ".",
		chartWorkbooks: true,
	}

	for _, opt := range opts {
		err := opt(cfg)
		if err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// WithLocale sets the BCP 47 locale numbers and dates are rendered in,
// e.g. "fr-FR".
func WithLocale(locale string) Option {
	return func(cfg *generatorConfig) error {
		f, err := datacontext.ParseFormatter(locale)
		if err != nil {
			return fmt.Errorf("unable to use locale %q: %w", locale, err)
		}

		cfg.formatter = f

		return nil
	}
}

func WithFormatter(f *datacontext.Formatter) Option {
	return func(cfg *generatorConfig) error {
		if f == nil {
			return fmt.Errorf("nil formatter")
		}

		cfg.formatter = f

		return nil
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(cfg *generatorConfig) error {
		if logger != nil {
			cfg.logger = logger
		}

		return nil
	}
}

// WithAssetsDir sets the directory image paths of the template are resolved
// in.
func WithAssetsDir(dir string) Option {
	return func(cfg *generatorConfig) error {
		cfg.assetsDir = dir
		return nil
	}
}

// WithoutChartWorkbooks disables the workbook embedded behind each chart.
// Charts then carry their data as literals and cannot be edited in Word.
func WithoutChartWorkbooks() Option {
	return func(cfg *generatorConfig) error {
		cfg.chartWorkbooks = false
		return nil
	}
}
