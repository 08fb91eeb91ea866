package benchplot

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mwiater/benchplot/internal/appconfig"
	"github.com/mwiater/benchplot/internal/logging"
	"github.com/mwiater/benchplot/internal/report"
)

// readReport decodes the report at path, or stdin when path is "-". format
// overrides the extension; stdin defaults to JSON.
func readReport(in io.Reader, path, format string) (report.ReportData, error) {
	format = strings.TrimSpace(format)
	if path == "-" {
		f := report.FormatJSON
		if format != "" {
			parsed, err := report.ParseFormat(format)
			if err != nil {
				return report.ReportData{}, err
			}
			f = parsed
		}
		data, err := report.Decode(in, f)
		if err != nil {
			return report.ReportData{}, fmt.Errorf("unable to read report from stdin: %w", err)
		}
		return data, nil
	}

	if format == "" {
		return report.Load(path)
	}
	f, err := report.ParseFormat(format)
	if err != nil {
		return report.ReportData{}, err
	}
	file, err := os.Open(path)
	if err != nil {
		return report.ReportData{}, fmt.Errorf("unable to load report %s: %w", path, err)
	}
	defer file.Close()
	data, err := report.Decode(file, f)
	if err != nil {
		return report.ReportData{}, fmt.Errorf("unable to load report %s: %w", path, err)
	}
	return data, nil
}

// prepareReport applies the configured overrides, normalizes the statistics
// and units, and returns the consistency issues found.
func prepareReport(cfg *appconfig.Config, data report.ReportData) (report.ReportData, []report.Issue, error) {
	data = data.WithOverrides(report.Overrides{
		Title:       cfg.Title,
		Units:       cfg.Units,
		Param:       cfg.Param,
		Logarithmic: cfg.Logarithmic,
	})
	data, err := report.Normalize(data)
	if err != nil {
		return report.ReportData{}, nil, err
	}
	return data, report.Check(data), nil
}

// loadReport is readReport plus prepareReport. Issues are logged as warnings
// unless strict mode turns them into an error.
func loadReport(in io.Reader, cfg *appconfig.Config, path, format string) (report.ReportData, error) {
	raw, err := readReport(in, path, format)
	if err != nil {
		return report.ReportData{}, err
	}
	data, issues, err := prepareReport(cfg, raw)
	if err != nil {
		return report.ReportData{}, fmt.Errorf("%s: %w", path, err)
	}
	if cfg.Strict {
		if err := report.CheckStrict(data); err != nil {
			return report.ReportData{}, fmt.Errorf("%s: %w", path, err)
		}
		return data, nil
	}
	for _, issue := range issues {
		logging.LogEvent("warning: %s: %s", path, issue)
	}
	return data, nil
}
