package cmd

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/dataclean-cli/internal/cleaning"
	"github.com/KaramelBytes/dataclean-cli/internal/dataset"
	"github.com/KaramelBytes/dataclean-cli/internal/report"
	"github.com/spf13/cobra"
)

var (
	liRatio      float64
	liIgnore     []string
	liList       bool
	liDropOut    string
	liReportPath string
)

var lowinfoCmd = &cobra.Command{
	Use:   "lowinfo <file>",
	Short: "List near-constant and near-unique columns",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opt := settings().LowInfoOptions()
		if cmd.Flags().Changed("ratio") {
			opt.Ratio = liRatio
		}
		if cmd.Flags().Changed("ignore") {
			opt.Ignore = liIgnore
		}
		if err := opt.Validate(); err != nil {
			return err
		}
		tab, err := loadTable(args[0])
		if err != nil {
			return err
		}
		for _, name := range opt.Ignore {
			if !hasName(tab.Frame.Names(), name) {
				fmt.Fprintf(cmd.ErrOrStderr(), "⚠ Warning: --ignore column %q not in %s\n", name, tab.Name)
			}
		}
		profiles := cleaning.ProfileColumns(tab.Frame, opt)
		var cols []string
		for _, p := range profiles {
			if p.LowInformation() {
				cols = append(cols, p.Name)
			}
		}
		out := cmd.OutOrStdout()
		if liDropOut != "" {
			kept := tab.Frame
			if len(cols) > 0 {
				kept = tab.Frame.Drop(cols)
			}
			if err := dataset.Save(liDropOut, kept); err != nil {
				return fmt.Errorf("write pruned dataset: %w", err)
			}
			fmt.Fprintf(out, "✓ Wrote %d columns to %s (dropped: %s)\n", kept.Ncol(), liDropOut, strings.Join(cols, ", "))
		}
		if liList {
			for _, c := range cols {
				fmt.Fprintln(out, c)
			}
			return nil
		}
		r := report.New(tab.Name, tab.Frame)
		r.Warnings = append(r.Warnings, tab.Warnings...)
		r.AddProfiles(profiles, opt.Ratio)
		return printReport(cmd, r, liReportPath)
	},
}

func hasName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

func init() {
	rootCmd.AddCommand(lowinfoCmd)
	f := lowinfoCmd.Flags()
	f.Float64Var(&liRatio, "ratio", cleaning.DefaultLowInfoOptions().Ratio, "flag columns whose top value share or unique ratio exceeds this")
	f.StringSliceVar(&liIgnore, "ignore", nil, "comma-separated columns to skip (repeatable)")
	f.BoolVar(&liList, "list", false, "print only the flagged column names, one per line")
	f.StringVar(&liDropOut, "drop-out", "", "write the dataset without the flagged columns to this CSV path")
	f.StringVar(&liReportPath, "report", "", "write the report to this path instead of stdout")
}
