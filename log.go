package telegram

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

// SetupLogging points the standard logger at stdout, and also at
// logFile when non-empty, creating parent directories as needed. Debug
// adds file/line to every record, matching the extra detail BotAPI and
// Router emit in debug mode.
//
// App.Run calls this with the BotConfig values before anything else
// logs. Programs embedding the Poller directly can skip it and keep
// their own logger settings; the engine logs through the standard
// logger either way.
func SetupLogging(debug bool, logFile string) error {
	flags := log.Ldate | log.Ltime | log.Lmsgprefix
	if debug {
		flags |= log.Lshortfile
	}
	log.SetFlags(flags)
	log.SetOutput(os.Stdout)

	if logFile == "" {
		return nil
	}

	if dir := filepath.Dir(logFile); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create log directory: %w", err)
		}
	}
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	log.SetOutput(io.MultiWriter(os.Stdout, f))
	log.Printf("[Logger] Logging to file: %s", logFile)
	return nil
}
