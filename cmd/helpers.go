package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/dataclean-cli/internal/cleaning"
	cfgpkg "github.com/KaramelBytes/dataclean-cli/internal/config"
	"github.com/KaramelBytes/dataclean-cli/internal/dataset"
	"github.com/KaramelBytes/dataclean-cli/internal/report"
	"github.com/KaramelBytes/dataclean-cli/internal/utils"
	"github.com/spf13/cobra"
)

// settings returns the loaded configuration, or built-in defaults when none was loaded.
func settings() *cfgpkg.Global {
	if cfg != nil {
		return cfg
	}
	return cfgpkg.Default()
}

// loadTable reads path with config loading settings overridden by any explicit flags.
func loadTable(path string) (*dataset.Table, error) {
	opt, err := settings().DatasetOptions()
	if err != nil {
		return nil, err
	}
	f := rootCmd.PersistentFlags()
	if f.Changed("delimiter") {
		if opt.Delimiter, err = dataset.ParseDelimiter(flagDelimiter); err != nil {
			return nil, err
		}
	}
	if f.Changed("decimal") {
		if opt.DecimalSeparator, err = dataset.ParseDecimal(flagDecimal); err != nil {
			return nil, err
		}
	}
	if f.Changed("thousands") {
		if opt.ThousandsSeparator, err = dataset.ParseThousands(flagThousands); err != nil {
			return nil, err
		}
	}
	if f.Changed("max-rows") {
		opt.MaxRows = flagMaxRows
	}
	tab, err := dataset.Load(path, opt)
	if err != nil {
		return nil, err
	}
	if len(tab.Normalized) > 0 {
		debugf("normalized locale numbers in %s", strings.Join(tab.Normalized, ", "))
	}
	debugf("loaded %s: %d/%d rows, columns %s", tab.Name, tab.Processed, tab.Rows, strings.Join(tab.Frame.Names(), ", "))
	return tab, nil
}

func reportFormat() string {
	if rootCmd.PersistentFlags().Changed("format") {
		return flagFormat
	}
	return settings().Format
}

func sampleRows() int {
	if rootCmd.PersistentFlags().Changed("sample-rows") {
		return flagSampleRows
	}
	return settings().SampleRows
}

// printReport renders r to the command output, or to path when one is given.
func printReport(cmd *cobra.Command, r *report.Report, path string) error {
	out, err := r.Render(reportFormat())
	if err != nil {
		return err
	}
	if path != "" {
		if err := utils.SafeWriteFile(path, []byte(out+"\n")); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote report to %s\n", path)
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

// describeMissing adds the available column names to a missing-column error.
func describeMissing(err error, tab *dataset.Table) error {
	var mc *cleaning.MissingColumnError
	if errors.As(err, &mc) {
		return fmt.Errorf("%w (available: %s)", err, strings.Join(tab.Frame.Names(), ", "))
	}
	return err
}

// baseName strips the extension from a table name for output files.
func baseName(tab *dataset.Table) string {
	return strings.TrimSuffix(tab.Name, filepath.Ext(tab.Name))
}
