package theme

import (
	"io"
	"log"
	"os"
)

var debugLog = log.New(io.Discard, "", log.LstdFlags)

// SetVerboseLogging toggles debug traces of the theme factory and manager.
func SetVerboseLogging(enable bool) {
	if enable {
		debugLog.SetOutput(os.Stderr)
	} else {
		debugLog.SetOutput(io.Discard)
	}
}
