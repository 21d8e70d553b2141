package core

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// LogEnv is the environment variable controlling the global log level.
const LogEnv = "FACESIM_LOG"

// init sets the global zerolog level from FACESIM_LOG.
func init() {
	ConfigureLogging(os.Getenv(LogEnv))
}

// ConfigureLogging sets the global logging level: "off" or "0" disables
// logging, "full" enables debug output, anything else means info.
func ConfigureLogging(mode string) {
	mode = strings.TrimSpace(strings.ToLower(mode))

	if mode == "off" || mode == "0" {
		zerolog.SetGlobalLevel(zerolog.Disabled)
	} else if mode == "full" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
