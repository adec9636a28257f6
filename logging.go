package main

import (
	"os"
	"strings"

	"github.com/kpango/glg"
)

var logFile *os.File

// levelOrder lists the glg levels from the most to the least verbose.
var levelOrder = []glg.LEVEL{glg.DEBG, glg.INFO, glg.OK, glg.WARN, glg.ERR}

// disabledLevels returns the levels that are quieter than the named one. Unknown
// names keep everything from info upwards.
func disabledLevels(level string) []glg.LEVEL {
	switch strings.ToLower(level) {
	case "debug":
		return nil
	case "warn", "warning":
		return levelOrder[:3]
	case "error":
		return levelOrder[:4]
	default:
		return levelOrder[:1]
	}
}

// ConfigureLogging sets the minimum glg level and, when path is given, writes the
// log to that file as well as stdout.
func ConfigureLogging(level, path string) {

	logger := glg.Get()

	if path != "" {
		logFile = glg.FileWriter(path, 0666)
		if logFile != nil {
			logger.SetMode(glg.BOTH).AddWriter(logFile)
		} else {
			glg.Warnf("Could not open log file %s, logging to stdout only", path)
		}
	}

	for _, l := range disabledLevels(level) {
		logger.SetLevelMode(l, glg.NONE)
	}
}

// CloseLogger closes the log file opened by ConfigureLogging.
func CloseLogger() {
	if logFile != nil {
		logFile.Close()
	}
}
