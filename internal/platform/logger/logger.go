// Package logger arma el logger estructurado de la aplicación sobre zerolog.
// Se construye una vez en main y se pasa explícito a quien lo necesite.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options controla el logger al construirlo.
type Options struct {
	// Level mínimo: debug, info, warn, error. Default info.
	Level string
	// Pretty activa salida de consola legible; en producción queda JSON puro.
	Pretty bool
	// Output destino de los logs. Default os.Stdout.
	Output io.Writer
	// App se agrega como campo fijo a cada línea.
	App string
}

func New(opts Options) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	if opts.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	l := zerolog.New(out).
		Level(parseLevel(opts.Level)).
		With().
		Timestamp()

	if strings.TrimSpace(opts.App) != "" {
		l = l.Str("app", strings.TrimSpace(opts.App))
	}

	return l.Logger()
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
