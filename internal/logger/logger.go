package logger

import (
	"io"
	"log"
	"os"
)

var (
	Info    *log.Logger
	Warn    *log.Logger
	Debug   *log.Logger
	Verbose *log.Logger
	Error   *log.Logger
	Always  *log.Logger // bypasses level filtering, always written to file

	currentLogLevel string
)

// Init configures logging with default level and file.
func Init() error {
	return InitWithConfig("info", "volgrid.log")
}

// InitWithConfig wires the package-level loggers to the given file. Levels
// below the configured one are discarded. Error output is mirrored to stderr
// so failures stay visible even when nobody tails the log file.
func InitWithConfig(logLevel, logFilePath string) error {
	currentLogLevel = logLevel

	logFile, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return err
	}

	nullWriter := io.Discard

	Info = log.New(levelWriter("info", logFile, nullWriter), "INFO: ", log.Ldate|log.Ltime)
	Warn = log.New(levelWriter("warn", logFile, nullWriter), "WARN: ", log.Ldate|log.Ltime|log.Lshortfile)
	Debug = log.New(levelWriter("debug", logFile, nullWriter), "DEBUG: ", log.Ldate|log.Ltime|log.Lshortfile)
	Verbose = log.New(levelWriter("verbose", logFile, nullWriter), "VERBOSE: ", log.Ldate|log.Ltime|log.Lshortfile)
	Error = log.New(io.MultiWriter(os.Stderr, logFile), "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
	Always = log.New(logFile, "", log.Ldate|log.Ltime)

	return nil
}

func levelWriter(level string, activeWriter, disabledWriter io.Writer) io.Writer {
	if shouldLog(level) {
		return activeWriter
	}
	return disabledWriter
}

func shouldLog(level string) bool {
	levels := map[string]int{
		"error":   0,
		"warn":    1,
		"info":    2,
		"debug":   3,
		"verbose": 4,
	}

	currentLevel, exists := levels[currentLogLevel]
	if !exists {
		currentLevel = 2 // default to info
	}

	requiredLevel, exists := levels[level]
	if !exists {
		return false
	}

	return currentLevel >= requiredLevel
}
