// Package logging configures the process-wide logrus logger.
package logging

import (
	"io"
	"os"

	log "github.com/sirupsen/logrus"
)

// Setup sends log output to out (stderr when nil) at the named level. debug
// forces the debug level, which also traces every executed command.
func Setup(out io.Writer, level string, debug bool) {
	if out == nil {
		out = os.Stderr
	}
	log.SetOutput(out)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	if debug {
		log.SetLevel(log.DebugLevel)
		return
	}
	if lvl, err := log.ParseLevel(level); err == nil {
		log.SetLevel(lvl)
	} else {
		log.SetLevel(log.InfoLevel)
		log.Warnf("invalid log level %s, defaulting to info", level)
	}
}
