package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/ideabook/pkg/logging"
)

// LogOptions overrides the configured log settings.
type LogOptions struct {
	Level       string
	Dev   bool

	base logging.Config
}

func AddLogArgs(cmd *cobra.Command, o *LogOptions) {
	cmd.PersistentFlags().StringVar(&o.Level, "log-level", "",
		"Log level: debug, info, warn or error.")
	cmd.PersistentFlags().BoolVar(&o.Dev, "log-dev", false,
		"Human friendly development logging.")
}

// Over layers the flags on top of cfg.
func (o *LogOptions) Over(cfg logging.Config) logging.Config {
	cp := *o
	cp.base = cfg
	return &cp
}

func (o *LogOptions) LogLevel() string {
	if o.Level == "" && o.base != nil {
		return o.base.LogLevel()
	}
	return o.Level
}

func (o *LogOptions) Development() bool {
	if o.base != nil && o.base.Development() {
		return true
	}
	return o.Dev
}
