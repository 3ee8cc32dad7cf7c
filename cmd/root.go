package cmd

import (
	"fmt"
	"os"

	cfgpkg "github.com/KaramelBytes/dataclean-cli/internal/config"
	"github.com/spf13/cobra"
)

// Description is printed when dataclean runs without a subcommand.
const Description = "dataclean: a toolkit for cleaning tabular data of outlier rows and low-information columns."

var (
	// Global flags
	cfgFile string
	debug   bool
	// Dataset loading flags (override config if set)
	flagDelimiter  string
	flagDecimal    string
	flagThousands  string
	flagMaxRows    int
	flagFormat     string
	flagSampleRows int

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "dataclean",
	Short: "Find outlier rows and low-information columns in CSV/TSV datasets",
	Long: `dataclean splits a dataset into outlier and clean rows on one numeric column,
using Tukey (IQR) or z-score fences, and reports columns that are near-constant or near-unique.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), Description)
	},
}

// Execute is the entry point called by main.main()
func Execute() {
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is ~/.dataclean/config.yaml)")
	pf.BoolVar(&debug, "debug", false, "enable debug output")
	pf.StringVar(&flagDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab' (default: by file extension)")
	pf.StringVar(&flagDecimal, "decimal", "", "decimal separator for numbers: '.'|'comma' (auto-detect if omitted)")
	pf.StringVar(&flagThousands, "thousands", "", "thousands separator for numbers: ','|'.'|'space' (auto-detect if omitted)")
	pf.IntVar(&flagMaxRows, "max-rows", 0, "maximum rows to load (0 = unlimited)")
	pf.StringVar(&flagFormat, "format", "markdown", "report format: markdown|yaml|json")
	pf.IntVar(&flagSampleRows, "sample-rows", 5, "number of outlier rows to show in the report")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: built-in defaults still apply
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		return
	}
	if err := c.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "⚠ Warning: ignoring invalid config: %v\n", err)
		return
	}
	cfg = c
	debugf("config: iqr x%.4g/x%.4g, zscore x%.4g/x%.4g (auto=%t), lowinfo ratio %.4g",
		cfg.IQRLeft, cfg.IQRRight, cfg.ZScoreLeft, cfg.ZScoreRight, cfg.ZScoreAuto, cfg.LowInfoRatio)
}

func debugf(format string, args ...any) {
	if debug {
		fmt.Fprintf(os.Stderr, "[debug] "+format+"\n", args...)
	}
}
