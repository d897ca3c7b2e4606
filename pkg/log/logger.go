package log

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger is an instance of zerolog.Logger
type Logger struct {
	zerolog.Logger
}

type LoggerType uint8

const (
	ConsoleLogger LoggerType = iota
	JSONLogger
)

// Component loggers default to no-ops until Init is called.
var (
	Root     = zerolog.Nop()
	Registry = zerolog.Nop()
	Store    = zerolog.Nop()
	Node     = zerolog.Nop()
)

// Options for Logger
type Options struct {
	// Enable Debug loglevel, default Info
	LogLevel zerolog.Level
	Type     LoggerType
}

func ParseLogLevel(loglevel string) (zerolog.Level, error) {
	return zerolog.ParseLevel(loglevel)
}

func Init(opts Options) {
	switch opts.Type {
	case ConsoleLogger:
		cw := newConsoleWriter()
		Root = zerolog.New(cw).Level(opts.LogLevel).
			With().Timestamp().Logger()
	default:
		Root = zerolog.New(os.Stdout).Level(opts.LogLevel).
			With().Timestamp().Logger()
	}
	Registry = Root.With().Str("component", "registry").Logger()
	Store = Root.With().Str("component", "store").Logger()
	Node = Root.With().Str("component", "node").Logger()
}

func newConsoleWriter() zerolog.ConsoleWriter {
	cw := zerolog.ConsoleWriter{Out: os.Stdout, NoColor: true, TimeFormat: time.RFC3339}

	cw.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}

	cw.FormatFieldName = func(i interface{}) string {
		return fmt.Sprintf("\"%s\": ", i)
	}

	cw.FormatFieldValue = func(i interface{}) string {
		return fmt.Sprintf("\"%s\" |", i)
	}

	return cw
}
