package config

import "github.com/spf13/pflag"

var (
	flagConfig   string
	flagDebug    bool
	flagLogFile  string
	flagNoVerify bool
	flagFormat   string
	flagAddr     string
)

// RegisterFlags adds the config flags to fs. Call it once on the root
// command's persistent flag set.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.StringVar(&flagConfig, "config", "", "Path to config file")
	fs.BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	fs.StringVar(&flagLogFile, "log-file", "", "Also write logs to this file")
	fs.BoolVar(&flagNoVerify, "no-verify", false, "Skip size and checksum checks when decoding")
	fs.StringVarP(&flagFormat, "format", "f", "", "Output format: table, yaml or json")
	fs.StringVar(&flagAddr, "addr", "", "HTTP listen address for serve")
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if flagDebug {
		cfg.Logging.Level = "debug"
	}
	if flagLogFile != "" {
		cfg.Logging.LogFile = flagLogFile
	}
	if flagNoVerify {
		cfg.Codec.Verify = false
	}
	if flagFormat != "" {
		cfg.Output.Format = flagFormat
	}
	if flagAddr != "" {
		cfg.Server.Addr = flagAddr
	}
}
