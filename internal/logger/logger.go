// Package logger builds the process-wide zerolog logger and the gorm
// adapter that writes through it.
package logger

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	gormlogger "gorm.io/gorm/logger"
)

func New(env, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	var l zerolog.Logger
	if env == "local" {
		l = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	} else {
		l = zerolog.New(os.Stdout)
	}

	return l.Level(lvl).With().
		Timestamp().
		Str("service", "daycare-scheduler").
		Str("env", env).
		Logger()
}

type gormWriter struct {
	log zerolog.Logger
}

func (w gormWriter) Printf(format string, args ...any) {
	w.log.Warn().Msg(fmt.Sprintf(format, args...))
}

// Gorm reports slow queries and errors; record-not-found is expected and
// left out.
func Gorm(l zerolog.Logger) gormlogger.Interface {
	return gormlogger.New(
		gormWriter{log: l.With().Str("component", "gorm").Logger()},
		gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}
