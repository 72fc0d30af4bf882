// Package logging configures the zerolog global logger for the plugin
// tools CLI.
package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger initializes the zerolog logger with the specified debug mode and output format.
func InitLogger(debug, human bool) {
	zerolog.TimeFieldFormat = time.RFC3339Nano                 // always initialize base logger with timestamp.
	base := zerolog.New(os.Stderr).With().Timestamp().Logger() // initialize base logger.
	if human {
		log.Logger = base.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339Nano,
		}) // select output format.
	} else {
		log.Logger = base // use JSON logger.
	}
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel) // set debug level.
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel) // set info level.
	}
}

// LogBuild logs a completed package build with structured fields.
func LogBuild(archivePath, checksum string, fileCount int) {
	log.Info().
		Str("event", "package_built").
		Str("archive", archivePath).
		Str("checksum", checksum).
		Int("files", fileCount).
		Msg("built plugin package")
}

// LogVerification logs a verification outcome with structured fields.
func LogVerification(archivePath string, valid bool, failures int) {
	log.Info().
		Str("event", "package_verified").
		Str("archive", archivePath).
		Bool("valid", valid).
		Int("failures", failures).
		Msg("verified plugin package")
}
