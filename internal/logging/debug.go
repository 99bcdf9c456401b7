package logging

import (
	"fmt"
	"io"
	"os"
)

// debugOutput receives Debugf output. Stderr keeps it out of
// machine-readable command output.
var debugOutput io.Writer = os.Stderr

// DebugEnabled returns true if debug mode is enabled via SD_DEBUG environment variable
func DebugEnabled() bool {
	return os.Getenv("SD_DEBUG") != ""
}

// Debugf prints a formatted debug message only if debug mode is enabled
func Debugf(format string, args ...interface{}) {
	if DebugEnabled() {
		fmt.Fprintf(debugOutput, format, args...)
	}
}

