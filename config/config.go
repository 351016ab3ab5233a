package config

import (
	"strings"

	"emperror.dev/errors"
	"github.com/BurntSushi/toml"
	"github.com/je4/utils/v2/pkg/stashconfig"
	"github.com/shieldtechhub/droidcheck/pkg/report"
	"golang.org/x/exp/slices"
)

type ValidateConfig struct {
	Profile string `toml:"profile"`
}

type ReportConfig struct {
	Format    string `toml:"format"`
	InfoLimit int    `toml:"infolimit"`
	Template  string `toml:"template"`
}

type DroidCheckConfig struct {
	Validate *ValidateConfig    `toml:"Validate"`
	Report   *ReportConfig      `toml:"Report"`
	Log      stashconfig.Config `toml:"Log"`
}

func LoadDroidCheckConfig(data string) (*DroidCheckConfig, error) {
	var conf = &DroidCheckConfig{
		Log: stashconfig.Config{
			Level: "ERROR",
		},
		Validate: &ValidateConfig{},
		Report: &ReportConfig{
			Format:    report.FormatText,
			InfoLimit: report.DefaultInfoLimit,
		},
	}

	if _, err := toml.Decode(data, conf); err != nil {
		return nil, errors.Wrap(err, "Error on loading config")
	}
	if err := conf.Check(); err != nil {
		return nil, errors.WithStack(err)
	}
	return conf, nil
}

// Check normalizes the report format. It is called again after command line
// flags have been applied.
func (conf *DroidCheckConfig) Check() error {
	conf.Report.Format = strings.ToLower(strings.TrimSpace(conf.Report.Format))
	if conf.Report.Format == "" {
		conf.Report.Format = report.FormatText
	}
	if !slices.Contains(report.Formats, conf.Report.Format) {
		return errors.Errorf("unknown report format '%s' please use %v", conf.Report.Format, report.Formats)
	}
	if conf.Report.Template != "" && conf.Report.Format != report.FormatTemplate {
		return errors.Errorf("report template '%s' needs report format '%s'", conf.Report.Template, report.FormatTemplate)
	}
	return nil
}
