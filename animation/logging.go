package animation

import (
	"io"
	"log"
	"os"
)

var debugLog = log.New(io.Discard, "", log.LstdFlags)

// SetVerboseLogging toggles debug traces of the animation runtime.
// When disabled (default), debug output is discarded.
func SetVerboseLogging(enable bool) {
	if enable {
		debugLog.SetOutput(os.Stderr)
	} else {
		debugLog.SetOutput(io.Discard)
	}
}
