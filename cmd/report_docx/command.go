package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	goreportdocx "github.com/JJJJJJack/go-report-docx"
	"github.com/JJJJJJack/go-report-docx/datacontext"
	"github.com/JJJJJJack/go-report-docx/internal/config"
	"github.com/JJJJJJack/go-report-docx/internal/file"
	"github.com/JJJJJJack/go-report-docx/internal/sample"
	"github.com/JJJJJJack/go-report-docx/internal/watch"
	"github.com/JJJJJJack/go-report-docx/model"
	"github.com/JJJJJJack/go-report-docx/xml"
)

type flags struct {
	output          string
	configPath      string
	locale          string
	assets          string
	base            string
	logLevel        string
	logFormat       string
	noChartWorkbook bool
	removeEmptyRows bool
	watch           bool
	interactive     bool
}

func newRootCommand(in io.Reader, outW, errW io.Writer) *cobra.Command {
	f := &flags{}

	cmd := &cobra.Command{
		Use:   "report-docx [input]",
		Short: "Render a report template into a Word document",
		Long: `Render a report (template and data context) into a .docx document.

The input is a .json, .yaml or .yml file holding a "document" and a
"contextModel". Without input the built-in sample report is rendered.

Examples:
  report-docx report.json -o weekly
  report-docx report.yaml --locale fr-FR --assets ./images
  report-docx report.json --watch
  report-docx --interactive`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return usageError("accepts at most 1 input, received %d", len(args))
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) == 1 {
				input = args[0]
			}

			return execute(cmd, f, in, input)
		},
	}

	cmd.SetIn(in)
	cmd.SetOut(outW)
	cmd.SetErr(errW)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError("%v", err)
	})

	fs := cmd.Flags()
	fs.StringVarP(&f.output, "output", "o", config.DefaultOutput, "document name, .docx is appended if missing")
	fs.StringVar(&f.configPath, "config", "", "HCL configuration file")
	fs.StringVar(&f.locale, "locale", "", "locale numbers and dates are rendered in, e.g. fr-FR")
	fs.StringVar(&f.assets, "assets", ".", "directory image paths are resolved in")
	fs.StringVar(&f.base, "base", "", "base .docx providing styles, headers and footers")
	fs.StringVar(&f.logLevel, "log-level", config.DefaultLogLevel, "log level: debug, info, warn or error")
	fs.StringVar(&f.logFormat, "log-format", config.DefaultLogFormat, "log format: text or json")
	fs.BoolVar(&f.noChartWorkbook, "no-chart-workbook", false, "do not embed a workbook behind charts")
	fs.BoolVar(&f.removeEmptyRows, "remove-empty-rows", false, "drop table rows that render no text")
	fs.BoolVar(&f.watch, "watch", false, "render again when the input changes")
	fs.BoolVar(&f.interactive, "interactive", false, "prompt for the input and the document name")

	return cmd
}

// resolveConfig loads the configuration file and applies the flags set on
// the command line over it.
func resolveConfig(cmd *cobra.Command, f *flags) (*config.Config, error) {
	cfg := config.Default()
	if f.configPath != "" {
		var err error
		cfg, err = config.Load(f.configPath)
		if err != nil {
			return nil, err
		}
	}

	changed := cmd.Flags().Changed
	if changed("output") {
		cfg.Output = f.output
	}
	if changed("locale") {
		cfg.Locale = f.locale
	}
	if changed("assets") {
		cfg.AssetsDir = f.assets
	}
	if changed("base") {
		cfg.BaseDocument = f.base
	}
	if changed("log-level") {
		cfg.LogLevel = strings.ToLower(f.logLevel)
	}
	if changed("log-format") {
		cfg.LogFormat = strings.ToLower(f.logFormat)
	}
	if changed("no-chart-workbook") {
		cfg.ChartWorkbooks = !f.noChartWorkbook
	}
	if changed("remove-empty-rows") {
		cfg.RemoveEmptyRows = f.removeEmptyRows
	}
	if changed("watch") {
		cfg.Watch.Enabled = f.watch
	}

	err := cfg.Validate()
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func execute(cmd *cobra.Command, f *flags, in io.Reader, input string) error {
	cfg, err := resolveConfig(cmd, f)
	if err != nil {
		return usageError("%v", err)
	}

	outW := cmd.OutOrStdout()
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())

	if f.interactive && input == "" {
		input, err = prompt(in, outW, cfg)
		if err != nil {
			return usageError("%v", err)
		}
	}

	opts := []goreportdocx.Option{
		goreportdocx.WithLogger(logger),
		goreportdocx.WithAssetsDir(cfg.AssetsDir),
	}
	if cfg.Locale != "" {
		formatter, err := datacontext.ParseFormatter(cfg.Locale)
		if err != nil {
			return usageError("invalid locale %q: %v", cfg.Locale, err)
		}
		opts = append(opts, goreportdocx.WithFormatter(formatter))
	}
	if !cfg.ChartWorkbooks {
		opts = append(opts, goreportdocx.WithoutChartWorkbooks())
	}

	output, err := file.UniqueFilename(file.DocumentName(cfg.Output))
	if err != nil {
		return &ExitError{Code: 1, Message: err.Error()}
	}

	r := &renderer{
		input:  input,
		base:   cfg.BaseDocument,
		output: output,
		opts:   opts,
		logger: logger,
	}
	if cfg.RemoveEmptyRows {
		r.postProcessors = xml.HandlersMap{}.Add("word/document.xml", xml.RemoveEmptyTableRows())
	}

	fmt.Fprintln(outW, "Generation in progress")
	err = r.render()
	if err != nil && !cfg.Watch.Enabled {
		return &ExitError{Code: 1, Message: err.Error()}
	}
	r.report(outW, err)

	if !cfg.Watch.Enabled {
		return nil
	}

	paths := append([]string{input, cfg.BaseDocument, f.configPath}, cfg.Watch.Paths...)
	if cfg.AssetsDir != "." {
		paths = append(paths, cfg.AssetsDir)
	}

	w, err := watch.New(paths, []string{output}, cfg.Watch.Debounce, logger)
	if err != nil {
		return usageError("%v", err)
	}

	color.New(color.FgCyan).Fprintln(outW, "Watching for changes (Ctrl+C to stop)")

	return w.Run(cmd.Context(), func() {
		fmt.Fprintln(outW, "Change detected, generating again")
		r.report(outW, r.render())
	})
}

// prompt asks for the input path, and for the document name when a path is
// given. An empty path selects the sample report.
func prompt(in io.Reader, outW io.Writer, cfg *config.Config) (string, error) {
	reader := bufio.NewReader(in)

	fmt.Fprintln(outW, "Enter the path of your Json file, press enter for an example")
	input, err := readLine(reader)
	if err != nil {
		return "", err
	}

	if input == "" {
		return "", nil
	}

	fmt.Fprintln(outW, "Enter document name")
	name, err := readLine(reader)
	if err != nil {
		return "", err
	}

	if name != "" {
		cfg.Output = name
	}

	return input, nil
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("unable to read answer: %w", err)
	}

	return strings.TrimSpace(line), nil
}

type renderer struct {
	// empty for the sample report
	input  string
	base   string
	output string
	opts   []goreportdocx.Option
	logger *slog.Logger

	postProcessors xml.HandlersMap
}

func (r *renderer) load() (*model.Report, error) {
	if r.input == "" {
		r.logger.Debug("rendering the sample report")
		return sample.Report(), nil
	}

	return goreportdocx.LoadReport(r.input)
}

func (r *renderer) render() error {
	report, err := r.load()
	if err != nil {
		return err
	}

	var g *goreportdocx.ReportGenerator
	if r.base != "" {
		g, err = goreportdocx.NewReportGeneratorFromFilename(r.base, r.opts...)
	} else {
		g, err = goreportdocx.NewReportGenerator(r.opts...)
	}
	if err != nil {
		return err
	}

	if r.postProcessors != nil {
		g.AddPostProcessors(r.postProcessors)
	}

	err = g.Generate(report.Document, report.ContextModel)
	if err != nil {
		return err
	}

	return g.Save(r.output)
}

func (r *renderer) report(outW io.Writer, err error) {
	if err != nil {
		color.New(color.FgRed).Fprintf(outW, "Generation failed: %v\n", err)
		return
	}

	color.New(color.FgGreen).Fprintf(outW, "Document %s generated\n", r.output)
}
