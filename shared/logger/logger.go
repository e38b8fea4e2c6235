package logger

import (
	"dinebook/config"
	"dinebook/shared/constant"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const defaultLevel = zerolog.TraceLevel

// InitLogger installs a console logger tagged with the process name (api, worker, migrate).
func InitLogger(process string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(defaultLevel)

	log.Logger = newLogger(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}, process)
	log.Trace().Msg("Zerolog initialized.")
}

func newLogger(out io.Writer, process string) zerolog.Logger {
	return zerolog.New(out).With().Timestamp().Str("process", process).Logger()
}

// ErrorWithStack logs err with the stack of the caller attached as the message.
func ErrorWithStack(err error) {
	log.Error().Err(err).Msgf("%+v", errors.WithStack(err))
}

// SetLogLevel applies LOG_LEVEL. Production switches to JSON lines on stdout.
func SetLogLevel(cfg *config.Config) {
	if cfg.Server.Env == constant.ServerEnvProduction {
		log.Logger = log.Output(os.Stdout)
	}

	level, err := zerolog.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		level = defaultLevel
	}

	zerolog.SetGlobalLevel(level)

	log.Trace().
		Str("loglevel", level.String()).
		Bool("fallback", err != nil).
		Msg("Log level applied.")
}
