// Package global holds process wide setup: configuration and logging
package global

import (
	"io"
	"os"

	"github.com/go-logr/zerologr"
	"github.com/nathanieltooley/pokeduel/golurk"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	// Basic logging for config debugging, replaced once logging is set up
	initLogger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	previousLevel zerolog.Level
)

// InitLogging points the global zerolog logger, and the engine's logr logger, at stderr and a rolling log file.
// When console is false only the file is written to.
func InitLogging(config Config, console bool) error {
	fileWriter, err := createFileWriter(config)
	if err != nil {
		return err
	}

	writers := []io.Writer{fileWriter}
	if console {
		writers = append(writers, zerolog.ConsoleWriter{Out: os.Stderr})
	}

	initLogger = zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp().Logger().Level(config.LogLevel())
	log.Logger = initLogger.With().Caller().Logger()

	setEngineLogger(log.Logger)

	return nil
}

func createFileWriter(config Config) (zerolog.ConsoleWriter, error) {
	rollingWriter, err := NewRollingFileWriter(config.LogDir, "pokeduel", config.MaxLogSize, config.MaxLogs)
	if err != nil {
		return zerolog.ConsoleWriter{}, err
	}

	return zerolog.ConsoleWriter{Out: rollingWriter, NoColor: true}, nil
}

func setEngineLogger(logger zerolog.Logger) {
	// V(1) logs at debug and V(2) at trace
	zerologr.SetMaxV(2)
	golurk.SetInternalLogger(zerologr.New(&logger))
}

// StopLogging silences every logger until ContinueLogging is called
func StopLogging() {
	previousLevel = log.Logger.GetLevel()
	log.Logger = zerolog.Nop()
	setEngineLogger(log.Logger)
}

func ContinueLogging() {
	log.Logger = initLogger.With().Caller().Logger().Level(previousLevel)
	setEngineLogger(log.Logger)
}

// Must returns the value passed in if there is no error, otherwise it will panic.
// Only for startup code that can't go on without the value.
func Must[T any](value T, err error) T {
	if err != nil {
		panic(err)
	}

	return value
}
