package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/dataclean-cli/internal/cleaning"
	"github.com/KaramelBytes/dataclean-cli/internal/dataset"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// Tukey fences
	IQRLeft  float64 `mapstructure:"iqr_left" yaml:"iqr_left"`
	IQRRight float64 `mapstructure:"iqr_right" yaml:"iqr_right"`
	// Z-score fences
	ZScoreLeft  float64 `mapstructure:"zscore_left" yaml:"zscore_left"`
	ZScoreRight float64 `mapstructure:"zscore_right" yaml:"zscore_right"`
	ZScoreAuto  bool    `mapstructure:"zscore_auto" yaml:"zscore_auto"`
	// Shared log transform switch: ln(v+1) instead of ln(v)
	LogAddOne bool `mapstructure:"log_add_one" yaml:"log_add_one"`

	// Low-information scan
	LowInfoRatio  float64  `mapstructure:"lowinfo_ratio" yaml:"lowinfo_ratio"`
	LowInfoIgnore []string `mapstructure:"lowinfo_ignore" yaml:"lowinfo_ignore"`

	// Dataset loading
	Delimiter          string `mapstructure:"delimiter" yaml:"delimiter"`
	DecimalSeparator   string `mapstructure:"decimal_separator" yaml:"decimal_separator"`
	ThousandsSeparator string `mapstructure:"thousands_separator" yaml:"thousands_separator"`
	MaxRows            int    `mapstructure:"max_rows" yaml:"max_rows"`

	// Output
	SampleRows int    `mapstructure:"sample_rows" yaml:"sample_rows"`
	Format     string `mapstructure:"format" yaml:"format"`
}

// Default returns the built-in configuration without reading files or env.
func Default() *Global {
	iqr := cleaning.DefaultIQROptions()
	z := cleaning.DefaultZScoreOptions()
	return &Global{
		IQRLeft:      iqr.LeftMult,
		IQRRight:     iqr.RightMult,
		ZScoreLeft:   z.LeftMult,
		ZScoreRight:  z.RightMult,
		LogAddOne:    true,
		LowInfoRatio: cleaning.DefaultLowInfoOptions().Ratio,
		SampleRows:   5,
		Format:       "markdown",
	}
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.dataclean/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		dir, err := configDir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (applied by the caller) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("DATACLEAN")
	v.AutomaticEnv()

	d := Default()
	v.SetDefault("iqr_left", d.IQRLeft)
	v.SetDefault("iqr_right", d.IQRRight)
	v.SetDefault("zscore_left", d.ZScoreLeft)
	v.SetDefault("zscore_right", d.ZScoreRight)
	v.SetDefault("zscore_auto", d.ZScoreAuto)
	v.SetDefault("log_add_one", d.LogAddOne)
	v.SetDefault("lowinfo_ratio", d.LowInfoRatio)
	v.SetDefault("lowinfo_ignore", []string{})
	v.SetDefault("delimiter", "")
	v.SetDefault("decimal_separator", "")
	v.SetDefault("thousands_separator", "")
	v.SetDefault("max_rows", 0)
	v.SetDefault("sample_rows", d.SampleRows)
	v.SetDefault("format", d.Format)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		dir, err := configDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// optional read
		_ = v.ReadInConfig()
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

// Validate reports every invalid setting at once.
func (c *Global) Validate() error {
	var merr *multierror.Error
	nonNeg := func(key string, f float64) {
		if f < 0 || math.IsNaN(f) {
			merr = multierror.Append(merr, fmt.Errorf("%s must be non-negative, got %v", key, f))
		}
	}
	nonNeg("iqr_left", c.IQRLeft)
	nonNeg("iqr_right", c.IQRRight)
	nonNeg("zscore_left", c.ZScoreLeft)
	nonNeg("zscore_right", c.ZScoreRight)
	if !(c.LowInfoRatio > 0 && c.LowInfoRatio <= 1) {
		merr = multierror.Append(merr, fmt.Errorf("lowinfo_ratio must be in (0, 1], got %v", c.LowInfoRatio))
	}
	if c.MaxRows < 0 {
		merr = multierror.Append(merr, fmt.Errorf("max_rows must be >= 0, got %d", c.MaxRows))
	}
	if c.SampleRows < 0 {
		merr = multierror.Append(merr, fmt.Errorf("sample_rows must be >= 0, got %d", c.SampleRows))
	}
	if _, err := c.DatasetOptions(); err != nil {
		merr = multierror.Append(merr, err)
	}
	switch strings.ToLower(c.Format) {
	case "", "md", "markdown", "yaml", "yml", "json":
	default:
		merr = multierror.Append(merr, fmt.Errorf("format must be markdown, yaml or json, got %q", c.Format))
	}
	return merr.ErrorOrNil()
}

// IQROptions returns detector options seeded from the configuration.
func (c *Global) IQROptions() cleaning.IQROptions {
	return cleaning.IQROptions{LeftMult: c.IQRLeft, RightMult: c.IQRRight, LogAddOne: c.LogAddOne}
}

// ZScoreOptions returns detector options seeded from the configuration.
func (c *Global) ZScoreOptions() cleaning.ZScoreOptions {
	return cleaning.ZScoreOptions{
		Auto:      c.ZScoreAuto,
		LeftMult:  c.ZScoreLeft,
		RightMult: c.ZScoreRight,
		LogAddOne: c.LogAddOne,
	}
}

// LowInfoOptions returns scan options seeded from the configuration.
func (c *Global) LowInfoOptions() cleaning.LowInfoOptions {
	return cleaning.LowInfoOptions{Ratio: c.LowInfoRatio, Ignore: c.LowInfoIgnore}
}

// DatasetOptions converts the loading settings.
func (c *Global) DatasetOptions() (dataset.Options, error) {
	opt := dataset.DefaultOptions()
	opt.MaxRows = c.MaxRows
	var merr *multierror.Error
	var err error
	if opt.Delimiter, err = dataset.ParseDelimiter(c.Delimiter); err != nil {
		merr = multierror.Append(merr, err)
	}
	if opt.DecimalSeparator, err = dataset.ParseDecimal(c.DecimalSeparator); err != nil {
		merr = multierror.Append(merr, err)
	}
	if opt.ThousandsSeparator, err = dataset.ParseThousands(c.ThousandsSeparator); err != nil {
		merr = multierror.Append(merr, err)
	}
	return opt, merr.ErrorOrNil()
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".dataclean"), nil
}
