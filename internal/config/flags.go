package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagBase       = flag.String("base", "", "Shader source base directory")
	flagValidate   = flag.Bool("validate", false, "Validate programs after linking")
	flagPreprocess = flag.String("preprocess", "", "Print the resolved source of a logical file and exit")
	flagProgram    = flag.String("program", "", "Build only the named program")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// Preprocess returns the logical file passed with --preprocess.
func Preprocess() string {
	return *flagPreprocess
}

// Program returns the program name passed with --program.
func Program() string {
	return *flagProgram
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagBase != "" {
		cfg.Shaders.BasePath = *flagBase
	}
	if *flagValidate {
		cfg.Shaders.Validate = true
	}
}
