// Package config holds the ambient configuration and logging setup used by
// the hwpxmd CLI collaborator. None of this is imported by the core
// conversion packages (markdown, style, render, hwpx, convert): the core
// never logs, per the conversion API's error-handling contract.
package config

import (
	"errors"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

// LoggingConfig controls the CLI's console logger verbosity.
type LoggingConfig struct {
	// Level is one of "none", "normal", "debug".
	Level string
}

// Prepare builds a zap.Logger that splits low-priority output to stdout and
// error-priority output to stderr, with color enabled only on an actual
// terminal.
func (conf *LoggingConfig) Prepare() *zap.Logger {
	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	if EnableColorOutput(os.Stdout) {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		ec.TimeKey = zapcore.OmitKey
	} else {
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	lowPriorityEncoder := zapcore.NewConsoleEncoder(ec)

	ec = zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	if EnableColorOutput(os.Stderr) {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		ec.TimeKey = zapcore.OmitKey
	} else {
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	highPriorityEncoder := newEncoder(ec)

	highPriority := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= zapcore.ErrorLevel
	})

	var lowCore, highCore zapcore.Core
	switch conf.Level {
	case "debug":
		lowCore = zapcore.NewCore(lowPriorityEncoder, zapcore.Lock(os.Stdout),
			zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
				return zapcore.DebugLevel <= lvl && lvl < zapcore.ErrorLevel
			}))
		highCore = zapcore.NewCore(highPriorityEncoder, zapcore.Lock(os.Stderr), highPriority)
	case "normal":
		lowCore = zapcore.NewCore(lowPriorityEncoder, zapcore.Lock(os.Stdout),
			zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
				return zapcore.InfoLevel <= lvl && lvl < zapcore.ErrorLevel
			}))
		highCore = zapcore.NewCore(highPriorityEncoder, zapcore.Lock(os.Stderr), highPriority)
	default:
		lowCore = zapcore.NewNopCore()
		highCore = zapcore.NewNopCore()
	}

	return zap.New(zapcore.NewTee(highCore, lowCore)).Named("hwpxmd")
}

// consoleEnc strips verbose wrapping off errors before they reach the console.
type consoleEnc struct {
	zapcore.Encoder
}

func newEncoder(cfg zapcore.EncoderConfig) zapcore.Encoder {
	return consoleEnc{zapcore.NewConsoleEncoder(cfg)}
}

func (c consoleEnc) Clone() zapcore.Encoder {
	return consoleEnc{c.Encoder.Clone()}
}

func (c consoleEnc) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	newFields := make([]zapcore.Field, 0, len(fields))
	for _, f := range fields {
		if f.Type == zapcore.ErrorType {
			if e, ok := f.Interface.(error); ok {
				f.Interface = errors.New(e.Error())
			}
		}
		newFields = append(newFields, f)
	}
	return c.Encoder.EncodeEntry(ent, newFields)
}
