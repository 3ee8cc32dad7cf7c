package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/KaramelBytes/dataclean-cli/internal/cleaning"
	"github.com/KaramelBytes/dataclean-cli/internal/dataset"
	"github.com/KaramelBytes/dataclean-cli/internal/report"
	"github.com/spf13/cobra"
)

// detectFlags are shared by the iqr and zscore commands.
type detectFlags struct {
	feature    string
	logScale   bool
	noAddOne   bool
	left       float64
	right      float64
	auto       bool
	outDir     string
	reportPath string
	quiet      bool
}

var (
	iqrFlags detectFlags
	zFlags   detectFlags
)

var iqrCmd = &cobra.Command{
	Use:   "iqr <file>",
	Short: "Split rows into outliers and clean rows with Tukey (IQR) fences",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tab, err := loadTable(args[0])
		if err != nil {
			return err
		}
		opt := settings().IQROptions()
		applyFenceFlags(cmd, &iqrFlags, &opt.LogScale, &opt.LogAddOne, &opt.LeftMult, &opt.RightMult)
		p, err := cleaning.IQR(tab.Frame, iqrFlags.feature, opt)
		if err != nil {
			return describeMissing(err, tab)
		}
		return emitPartition(cmd, tab, p, &iqrFlags)
	},
}

var zscoreCmd = &cobra.Command{
	Use:   "zscore <file>",
	Short: "Split rows into outliers and clean rows with z-score fences",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tab, err := loadTable(args[0])
		if err != nil {
			return err
		}
		opt := settings().ZScoreOptions()
		applyFenceFlags(cmd, &zFlags, &opt.LogScale, &opt.LogAddOne, &opt.LeftMult, &opt.RightMult)
		if cmd.Flags().Changed("auto") {
			opt.Auto = zFlags.auto
		}
		p, err := cleaning.ZScore(tab.Frame, zFlags.feature, opt)
		if err != nil {
			return describeMissing(err, tab)
		}
		if opt.Auto {
			debugf("auto multipliers: left x%.4g, right x%.4g (skew %.4g)", p.Fence.LeftMult, p.Fence.RightMult, p.Moments.Skew)
		}
		return emitPartition(cmd, tab, p, &zFlags)
	},
}

func applyFenceFlags(cmd *cobra.Command, fl *detectFlags, logScale, addOne *bool, left, right *float64) {
	f := cmd.Flags()
	*logScale = fl.logScale
	if f.Changed("no-add-one") {
		*addOne = !fl.noAddOne
	}
	if f.Changed("left") {
		*left = fl.left
	}
	if f.Changed("right") {
		*right = fl.right
	}
}

// emitPartition writes the report and, with --out-dir, both row subsets as CSV.
func emitPartition(cmd *cobra.Command, tab *dataset.Table, p *cleaning.Partition, fl *detectFlags) error {
	out := cmd.OutOrStdout()
	if fl.outDir != "" {
		if err := os.MkdirAll(fl.outDir, 0o755); err != nil {
			return err
		}
		base := baseName(tab)
		outFile := filepath.Join(fl.outDir, base+".outliers.csv")
		cleanFile := filepath.Join(fl.outDir, base+".clean.csv")
		if err := dataset.Save(outFile, p.Outliers); err != nil {
			return fmt.Errorf("write outliers: %w", err)
		}
		if err := dataset.Save(cleanFile, p.Clean); err != nil {
			return fmt.Errorf("write clean rows: %w", err)
		}
		if !fl.quiet {
			fmt.Fprintf(out, "✓ Wrote %d outlier rows to %s\n", len(p.OutlierRows), outFile)
			fmt.Fprintf(out, "✓ Wrote %d clean rows to %s\n", len(p.CleanRows), cleanFile)
		}
	}
	if fl.quiet && fl.reportPath == "" {
		return nil
	}
	r := report.New(tab.Name, tab.Frame)
	r.Warnings = append(r.Warnings, tab.Warnings...)
	r.AddPartition(p, sampleRows())
	return printReport(cmd, r, fl.reportPath)
}

func addDetectFlags(c *cobra.Command, fl *detectFlags, left, right float64) {
	f := c.Flags()
	f.StringVarP(&fl.feature, "feature", "f", "", "numeric column to search for outliers")
	f.BoolVar(&fl.logScale, "log-scale", false, "fence the natural log of the feature (for log-normal data)")
	f.BoolVar(&fl.noAddOne, "no-add-one", false, "with --log-scale, use ln(v) instead of ln(v+1)")
	f.Float64Var(&fl.left, "left", left, "lower fence multiplier (overrides config)")
	f.Float64Var(&fl.right, "right", right, "upper fence multiplier (overrides config)")
	f.StringVarP(&fl.outDir, "out-dir", "o", "", "directory to write <name>.outliers.csv and <name>.clean.csv")
	f.StringVar(&fl.reportPath, "report", "", "write the report to this path instead of stdout")
	f.BoolVar(&fl.quiet, "quiet", false, "suppress the report and progress output")
	_ = c.MarkFlagRequired("feature")
}

func init() {
	iqrDefaults := cleaning.DefaultIQROptions()
	zDefaults := cleaning.DefaultZScoreOptions()
	rootCmd.AddCommand(iqrCmd)
	rootCmd.AddCommand(zscoreCmd)
	addDetectFlags(iqrCmd, &iqrFlags, iqrDefaults.LeftMult, iqrDefaults.RightMult)
	addDetectFlags(zscoreCmd, &zFlags, zDefaults.LeftMult, zDefaults.RightMult)
	zscoreCmd.Flags().BoolVar(&zFlags.auto, "auto", false, "widen the fence opposite the skew by 3*skew")
}
