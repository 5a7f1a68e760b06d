// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package log

import (
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// DefaultLogger writes info messages and above to os.Stdout as JSON
	// lines. Marshallers log through it unless given another logger.
	DefaultLogger Logger = NewZap(InfoLevel, os.Stdout)

	// DiscardLogger drops every message.
	DiscardLogger Logger = &Zap{
		logger: zap.NewNop(),
		sugar:  zap.NewNop().Sugar(),
		level:  zap.NewAtomicLevelAt(zapcore.InfoLevel),
	}
)

// inlineFields is the number of With pairs converted without allocating
const inlineFields = 6

// Zap is the Logger backed by go.uber.org/zap.
type Zap struct {
	logger  *zap.Logger
	sugar   *zap.SugaredLogger
	level   zap.AtomicLevel
	outputs []io.Writer
}

var _ Logger = (*Zap)(nil)

// NewZap creates a Zap writing JSON lines at level and above to writers.
// Levels outside the known range log everything.
func NewZap(level Level, writers ...io.Writer) *Zap {
	syncers := make([]zapcore.WriteSyncer, len(writers))
	for i, writer := range writers {
		syncers[i] = zapcore.AddSync(writer)
	}

	atomic := zap.NewAtomicLevelAt(toZapLevel(level))
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig()),
		zap.CombineWriteSyncers(syncers...),
		atomic)

	logger := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	return &Zap{
		logger:  logger,
		sugar:   logger.Sugar(),
		level:   atomic,
		outputs: writers,
	}
}

// Debug logs at debug level
func (z *Zap) Debug(v ...any) { z.sugar.Debug(v...) }

// Debugf logs a formatted message at debug level
func (z *Zap) Debugf(format string, v ...any) { z.sugar.Debugf(format, v...) }

// Info logs at info level
func (z *Zap) Info(v ...any) { z.sugar.Info(v...) }

// Infof logs a formatted message at info level
func (z *Zap) Infof(format string, v ...any) { z.sugar.Infof(format, v...) }

// Warn logs at warn level
func (z *Zap) Warn(v ...any) { z.sugar.Warn(v...) }

// Warnf logs a formatted message at warn level
func (z *Zap) Warnf(format string, v ...any) { z.sugar.Warnf(format, v...) }

// Error logs at error level
func (z *Zap) Error(v ...any) { z.sugar.Error(v...) }

// Errorf logs a formatted message at error level
func (z *Zap) Errorf(format string, v ...any) { z.sugar.Errorf(format, v...) }

// Enabled reports whether messages at level are written
func (z *Zap) Enabled(level Level) bool {
	return z.logger.Core().Enabled(toZapLevel(level))
}

// SetLevel changes the minimum level of z and of every logger derived from it
func (z *Zap) SetLevel(level Level) {
	z.level.SetLevel(toZapLevel(level))
}

// LogLevel returns the minimum level written
func (z *Zap) LogLevel() Level {
	return fromZapLevel(z.level.Level())
}

// With returns a child logger carrying the given pairs. Pairs whose key is
// not a string are dropped; a trailing value without a key is logged under "_".
func (z *Zap) With(keyValues ...any) Logger {
	if len(keyValues) == 0 {
		return z
	}

	var inline [inlineFields]zap.Field
	fields := inline[:0]
	for i := 0; i < len(keyValues); i += 2 {
		if i == len(keyValues)-1 {
			fields = append(fields, field("_", keyValues[i]))
			break
		}
		if key, ok := keyValues[i].(string); ok {
			fields = append(fields, field(key, keyValues[i+1]))
		}
	}
	if len(fields) == 0 {
		return z
	}

	child := z.logger.With(fields...)
	return &Zap{
		logger:  child,
		sugar:   child.Sugar(),
		level:   z.level,
		outputs: z.outputs,
	}
}

// Flush syncs the file outputs. Standard streams are skipped: syncing a
// terminal fails on most platforms.
func (z *Zap) Flush() error {
	var err error
	for _, output := range z.outputs {
		file, ok := output.(*os.File)
		if !ok || file == nil || file.Fd() == os.Stdout.Fd() || file.Fd() == os.Stderr.Fd() {
			continue
		}
		err = multierr.Append(err, file.Sync())
	}
	return err
}

// field converts a pair to a typed zap field. Stringers, reflect.Type
// included, are rendered through String.
func field(key string, value any) zap.Field {
	switch v := value.(type) {
	case string:
		return zap.String(key, v)
	case int:
		return zap.Int(key, v)
	case int64:
		return zap.Int64(key, v)
	case bool:
		return zap.Bool(key, v)
	case error:
		return zap.NamedError(key, v)
	case fmt.Stringer:
		return zap.Stringer(key, v)
	default:
		return zap.Any(key, v)
	}
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:       "ts",
		LevelKey:      "level",
		NameKey:       "logger",
		CallerKey:     "caller",
		MessageKey:    "msg",
		StacktraceKey: "stacktrace",
		LineEnding:    zapcore.DefaultLineEnding,
		EncodeLevel:   zapcore.LowercaseLevelEncoder,
		EncodeTime: func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString(t.UTC().Format(time.RFC3339Nano))
		},
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

var zapLevels = map[Level]zapcore.Level{
	DebugLevel:   zapcore.DebugLevel,
	InfoLevel:    zapcore.InfoLevel,
	WarningLevel: zapcore.WarnLevel,
	ErrorLevel:   zapcore.ErrorLevel,
	PanicLevel:   zapcore.PanicLevel,
	FatalLevel:   zapcore.FatalLevel,
}

func toZapLevel(level Level) zapcore.Level {
	if zl, ok := zapLevels[level]; ok {
		return zl
	}
	return zapcore.DebugLevel
}

func fromZapLevel(zl zapcore.Level) Level {
	for level, candidate := range zapLevels {
		if candidate == zl {
			return level
		}
	}
	return InvalidLevel
}
