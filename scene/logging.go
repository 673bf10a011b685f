package scene

import (
	"io"
	"log"
	"os"
)

var debugLog = log.New(io.Discard, "", log.LstdFlags)

// SetVerboseLogging toggles scene debug output.
func SetVerboseLogging(enable bool) {
	if enable {
		debugLog.SetOutput(os.Stderr)
	} else {
		debugLog.SetOutput(io.Discard)
	}
}
