package logger

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/despachos/equipcheck/internal/gelf"
)

// New builds the service logger: console output always, plus GELF UDP
// shipping when gelfAddr is set.
func New(gelfAddr string) zerolog.Logger {
	consoleWriter := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "2006-01-02 15:04:05"}

	writer := zerolog.MultiLevelWriter(consoleWriter)
	if gelfAddr != "" {
		gelfWriter, err := gelf.New(gelfAddr)
		if err == nil {
			writer = zerolog.MultiLevelWriter(consoleWriter, gelfWriter)
		}
	}

	log := zerolog.New(writer).With().Timestamp().Caller().Logger()

	if gelfAddr != "" {
		log.Info().Str("addr", gelfAddr).Msg("GELF logging enabled")
	}

	return log
}
