// Command valuate values plot files from the command line.
//
//	valuate [flags] plot.json [plot2.hjson ...]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"property_valuation/pkg/core/calc"
	"property_valuation/pkg/core/config"
	"property_valuation/pkg/core/export"
	"property_valuation/pkg/core/logger"
	"property_valuation/pkg/core/report"
	"property_valuation/pkg/core/utils"
	"property_valuation/pkg/core/valuation"
	"property_valuation/pkg/models"
)

func main() {
	configPath := flag.String("config", "config/valuation.yaml", "path to the YAML config")
	basisFlag := flag.String("basis", "", "rental basis: as_reported or market_rate (default from config)")
	modeFlag := flag.String("mode", "preview", "report mode: preview or export")
	templatePath := flag.String("template", "", "report template to fill (html or .md)")
	xlsxPath := flag.String("xlsx", "", "write a workbook of every plot to this path")
	values := flag.Bool("values", false, "print the full placeholder table")
	flag.Parse()

	godotenv.Load()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: valuate [flags] plot.json [more plots...]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatal(err)
	}
	if *basisFlag != "" {
		cfg.RentalBasis = *basisFlag
	}
	basis, err := cfg.Basis()
	if err != nil {
		fatal(err)
	}
	mode, err := report.ParseMode(*modeFlag)
	if err != nil {
		fatal(err)
	}

	log, err := logger.NewCLILogger(cfg.LogLevel, "valuate")
	if err != nil {
		fatal(err)
	}
	defer log.Sync()

	plots := make([]*models.Plot, 0, flag.NArg())
	for _, path := range flag.Args() {
		plot, err := readPlot(path)
		if err != nil {
			fatal(err)
		}
		plots = append(plots, plot)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rows, err := export.Compute(ctx, plots, valuation.Options{RentalBasis: basis}, cfg.ExportWorkers, log)
	if err != nil {
		fatal(err)
	}

	var tmpl *report.Template
	if *templatePath != "" {
		body, err := os.ReadFile(*templatePath)
		if err != nil {
			fatal(err)
		}
		format := report.FormatHTML
		if ext := strings.ToLower(filepath.Ext(*templatePath)); ext == ".md" || ext == ".markdown" {
			format = report.FormatMarkdown
		}
		tmpl = &report.Template{Name: filepath.Base(*templatePath), Body: string(body), Format: format}
	}

	failed := false
	for i, row := range rows {
		fmt.Printf("=== %s ===\n", flag.Arg(i))
		if row.Err != nil {
			fmt.Printf("  ERROR: %v\n\n", row.Err)
			failed = true
			continue
		}
		if err := printRow(row, mode, tmpl, *values, basis); err != nil {
			log.Error("report failed", zap.String("file", flag.Arg(i)), zap.Error(err))
			failed = true
		}
	}

	if *xlsxPath != "" {
		data, err := export.Workbook(rows)
		if err != nil {
			fatal(err)
		}
		if err := os.WriteFile(*xlsxPath, data, 0644); err != nil {
			fatal(err)
		}
		log.Info("workbook written", zap.String("path", *xlsxPath), zap.Int("plots", len(rows)))
	}

	if failed {
		os.Exit(1)
	}
}

// readPlot accepts JSON or Hjson.
func readPlot(path string) (*models.Plot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var plot models.Plot
	if err := utils.DecodeLenient(string(data), &plot); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &plot, nil
}

func printRow(row export.Row, mode report.Mode, tmpl *report.Template, values bool, basis calc.RentalBasis) error {
	res := row.Result
	fmt.Printf("  Classification: %s (rental basis %s)\n", res.Classification, basis)
	for _, item := range valuation.Summarize(res) {
		fmt.Printf("  %-28s %20s\n", item.ModelName, report.FormatAmount(item.Value))
	}

	table, err := report.Resolve(report.ReportInput{Plot: row.Plot, Result: res}, mode)
	if err != nil {
		return err
	}
	fmt.Printf("  In words: %s\n", table["sayMarketValueInWords"])

	if values {
		keys := make([]string, 0, len(table))
		for k := range table {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("  {%s} = %s\n", k, table[k])
		}
	}

	if tmpl != nil {
		rendered, err := report.Render(*tmpl, table)
		if err != nil {
			return err
		}
		fmt.Println(rendered.HTML)
		if len(rendered.Unresolved) > 0 {
			fmt.Fprintf(os.Stderr, "[REPORT] unresolved placeholders: %s\n", strings.Join(rendered.Unresolved, ", "))
		}
	}
	fmt.Println()
	return nil
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "[FATAL] %v\n", err)
	os.Exit(1)
}
