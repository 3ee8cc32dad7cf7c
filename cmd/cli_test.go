package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

const listingsCSV = "id,price,city,source\n" +
	"1,1,Oslo,web\n" +
	"2,2,Bergen,web\n" +
	"3,3,Oslo,web\n" +
	"4,4,Tromsø,web\n" +
	"5,5,Oslo,web\n" +
	"6,100,Bergen,web\n"

// resetFlags puts every flag of c and its children back to its default, unchanged state.
func resetFlags(c *cobra.Command) {
	reset := func(fl *pflag.Flag) {
		if sv, ok := fl.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = fl.Value.Set(fl.DefValue)
		}
		fl.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// runCmd executes the root command with args and returns its output.
func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	cfg = nil
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := runCmd(t, args...)
	if err != nil {
		t.Fatalf("command %v failed: %v\n%s", args, err, out)
	}
	return out
}

func writeCSV(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestCLI_NoSubcommandPrintsDescription(t *testing.T) {
	out := mustRun(t)
	require.Equal(t, Description+"\n", out)
}

func TestCLI_IQRWritesPartitions(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()
	in := writeCSV(t, dir, "listings.csv", listingsCSV)
	outDir := filepath.Join(dir, "out")

	out := mustRun(t, "iqr", in, "--feature", "price", "--out-dir", outDir)
	require.Contains(out, "✓ Wrote 1 outlier rows to")
	require.Contains(out, "✓ Wrote 5 clean rows to")
	require.Contains(out, "Method: iqr on price")
	require.Contains(out, "Fence: [-1.5, 8.5]")

	outliers, err := os.ReadFile(filepath.Join(outDir, "listings.outliers.csv"))
	require.NoError(err)
	lines := strings.Split(strings.TrimSpace(string(outliers)), "\n")
	require.Len(lines, 2)
	require.Equal("id,price,city,source", lines[0])
	require.True(strings.HasPrefix(lines[1], "6,100,Bergen"), lines[1])

	clean, err := os.ReadFile(filepath.Join(outDir, "listings.clean.csv"))
	require.NoError(err)
	require.Len(strings.Split(strings.TrimSpace(string(clean)), "\n"), 6)
}

func TestCLI_IQRZeroMultipliersAndQuiet(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()
	in := writeCSV(t, dir, "listings.csv", listingsCSV)
	outDir := filepath.Join(dir, "out")

	out := mustRun(t, "iqr", in, "-f", "price", "--left", "0", "--right", "0", "-o", outDir, "--quiet")
	require.Empty(out)
	clean, err := os.ReadFile(filepath.Join(outDir, "listings.clean.csv"))
	require.NoError(err)
	// Q25 = 2.25, Q75 = 4.75 keeps prices 3 and 4.
	require.Len(strings.Split(strings.TrimSpace(string(clean)), "\n"), 3)
}

func TestCLI_ReportToFile(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()
	in := writeCSV(t, dir, "listings.csv", listingsCSV)
	rep := filepath.Join(dir, "report.md")

	out := mustRun(t, "iqr", in, "-f", "price", "--report", rep)
	require.Equal("✓ Wrote report to "+rep+"\n", out)
	body, err := os.ReadFile(rep)
	require.NoError(err)
	require.Contains(string(body), "Method: iqr on price")

	entries, err := os.ReadDir(dir)
	require.NoError(err)
	require.Len(entries, 2, "only the input and the report")
}

func TestCLI_LowInfoKeepsLeadingZeroCodes(t *testing.T) {
	require := require.New(t)
	in := writeCSV(t, t.TempDir(), "orders.csv", "zip,amount\n01234,\"1,234\"\n1234,\"2,500\"\n00042,\"3,100\"\n")

	out := mustRun(t, "lowinfo", in, "--list")
	require.Equal("zip\namount\n", out)

	out = mustRun(t, "iqr", in, "-f", "amount", "--format", "yaml")
	require.Contains(out, "q25: 1867")
}

func TestCLI_ZScoreYAML(t *testing.T) {
	require := require.New(t)
	in := writeCSV(t, t.TempDir(), "skewed.csv", "x\n1\n1\n1\n1\n2\n2\n3\n10\n")

	out := mustRun(t, "zscore", in, "--feature", "x", "--auto", "--right", "1", "--format", "yaml")
	require.Contains(out, "method: zscore")
	require.Contains(out, "right_mult: 1")
	require.Contains(out, "outliers: 1")
	require.Contains(out, "- 7")
}

func TestCLI_DetectErrors(t *testing.T) {
	require := require.New(t)
	in := writeCSV(t, t.TempDir(), "listings.csv", listingsCSV)

	_, err := runCmd(t, "iqr", in, "--feature", "nope")
	require.Error(err)
	require.Contains(err.Error(), `column "nope" not found`)
	require.Contains(err.Error(), "available: id, price, city, source")

	_, err = runCmd(t, "zscore", in, "--feature", "city")
	require.Error(err)
	require.Contains(err.Error(), "want int or float")

	_, err = runCmd(t, "iqr", in)
	require.Error(err, "feature is required")

	_, err = runCmd(t, "iqr", in, "-f", "price", "--left", "-1")
	require.Error(err)
}

func TestCLI_LowInfo(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()
	in := writeCSV(t, dir, "listings.csv", listingsCSV)

	out := mustRun(t, "lowinfo", in, "--list")
	require.Equal("id\nprice\nsource\n", out)

	out = mustRun(t, "lowinfo", in, "--list", "--ignore", "id,price")
	require.Equal("source\n", out)

	out = mustRun(t, "lowinfo", in)
	require.Contains(out, "[LOW-INFORMATION COLUMNS] (ratio > 0.95)")
	require.Contains(out, "- source: near-constant")

	pruned := filepath.Join(dir, "pruned.csv")
	out = mustRun(t, "lowinfo", in, "--ignore", "id", "--drop-out", pruned, "--list")
	require.Contains(out, "dropped: price, source")
	body, err := os.ReadFile(pruned)
	require.NoError(err)
	require.True(strings.HasPrefix(string(body), "id,city\n"), string(body))

	_, err = runCmd(t, "lowinfo", in, "--ratio", "0")
	require.Error(err)
}

func TestCLI_ConfigSetAndShow(t *testing.T) {
	require := require.New(t)
	home := t.TempDir()
	t.Setenv("HOME", home)

	mustRun(t, "config", "set", "iqr_left", "2.5")
	_, err := os.Stat(filepath.Join(home, ".dataclean", "config.yaml"))
	require.NoError(err)

	_, err = runCmd(t, "config", "set", "lowinfo_ratio", "3")
	require.Error(err)
	_, err = runCmd(t, "config", "set", "bogus", "1")
	require.Error(err)

	cfgPath := filepath.Join(home, ".dataclean", "config.yaml")
	out := mustRun(t, "--config", cfgPath, "config", "show")
	require.Contains(out, "iqr_left: 2.5")
}
