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
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewZap(t *testing.T) {
	buffer := new(bytes.Buffer)
	// a level outside the known range logs everything
	logger := NewZap(Level(42), buffer)
	require.Equal(t, DebugLevel, logger.LogLevel())

	logger.Debug("decoding started")
	msg, err := extractKey(buffer.Bytes(), "msg")
	require.NoError(t, err)
	assert.Equal(t, "decoding started", msg)

	lvl, err := extractKey(buffer.Bytes(), "level")
	require.NoError(t, err)
	assert.Equal(t, DebugLevel.String(), lvl)
}

func TestLevels(t *testing.T) {
	testCases := []struct {
		level   Level
		dropped func(Logger)
		kept    func(Logger)
		name    string
	}{
		{
			level:   InfoLevel,
			dropped: func(l Logger) { l.Debugf("dropped %d", 1) },
			kept:    func(l Logger) { l.Infof("kept %d", 2) },
			name:    "info",
		},
		{
			level:   WarningLevel,
			dropped: func(l Logger) { l.Info("dropped") },
			kept:    func(l Logger) { l.Warnf("field %s discarded", "age") },
			name:    "warn",
		},
		{
			level:   ErrorLevel,
			dropped: func(l Logger) { l.Warn("dropped") },
			kept:    func(l Logger) { l.Errorf("payload of %d bytes rejected", 3) },
			name:    "error",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			buffer := new(bytes.Buffer)
			logger := NewZap(tc.level, buffer)
			assert.Equal(t, tc.level, logger.LogLevel())

			tc.dropped(logger)
			require.Empty(t, buffer.String())

			tc.kept(logger)
			lvl, err := extractKey(buffer.Bytes(), "level")
			require.NoError(t, err)
			assert.Equal(t, tc.name, lvl)
		})
	}

	t.Run("Level names", func(t *testing.T) {
		assert.Equal(t, "info", InfoLevel.String())
		assert.Equal(t, "debug", DebugLevel.String())
		assert.Equal(t, "invalid", InvalidLevel.String())
		assert.Equal(t, "invalid", Level(-1).String())
	})
}

func TestSetLevel(t *testing.T) {
	buffer := new(bytes.Buffer)
	logger := NewZap(ErrorLevel, buffer)
	child := logger.With("session", "s-1")

	child.Warn("dropped")
	require.Empty(t, buffer.String())

	logger.SetLevel(WarningLevel)
	assert.Equal(t, WarningLevel, logger.LogLevel())
	assert.True(t, child.Enabled(WarningLevel))

	child.Warn("kept")
	msg, err := extractKey(buffer.Bytes(), "msg")
	require.NoError(t, err)
	assert.Equal(t, "kept", msg)
}

func TestWith(t *testing.T) {
	t.Run("With structured fields", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(InfoLevel, buffer)
		logger.With(
			"session", "8f1c",
			"depth", 3,
			"id", int64(7),
			"polymorphic", true,
			"cause", errors.New("boom"),
			"type", reflect.TypeFor[[]string](),
			"ratio", 0.5,
		).Info("decoded")

		var m map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(buffer.Bytes(), &m))
		for _, key := range []string{"session", "depth", "id", "polymorphic", "cause", "type", "ratio"} {
			assert.Contains(t, m, key)
		}
		typeName, err := extractKey(buffer.Bytes(), "type")
		require.NoError(t, err)
		assert.Equal(t, "[]string", typeName)
	})
	t.Run("With no pairs returns the same logger", func(t *testing.T) {
		logger := NewZap(InfoLevel, new(bytes.Buffer))
		assert.Same(t, logger, logger.With())
		assert.Same(t, logger, logger.With(1, 2, 3, 4))
	})
	t.Run("With an orphan value", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		NewZap(InfoLevel, buffer).With("a", 1, "orphan").Info("msg")
		var m map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(buffer.Bytes(), &m))
		assert.Contains(t, m, "a")
		assert.Contains(t, m, "_")
	})
}

func TestFlush(t *testing.T) {
	file, err := os.Create(filepath.Join(t.TempDir(), "codec.log"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = file.Close() })

	logger := NewZap(InfoLevel, file, os.Stdout, new(bytes.Buffer))
	logger.Info("flushed")
	require.NoError(t, logger.Flush())

	content, err := os.ReadFile(file.Name())
	require.NoError(t, err)
	assert.Contains(t, string(content), "flushed")
}

func TestDiscardLogger(t *testing.T) {
	logger := DiscardLogger
	logger.Debug("debug")
	logger.Debugf("debug %s", "msg")
	logger.Info("info")
	logger.Infof("info %s", "msg")
	logger.Warn("warn")
	logger.Warnf("warn %s", "msg")
	logger.Error("error")
	logger.Errorf("error %s", "msg")

	assert.Equal(t, InfoLevel, logger.LogLevel())
	assert.False(t, logger.Enabled(ErrorLevel))
	assert.NotNil(t, logger.With("session", "id"))
	assert.NoError(t, logger.Flush())
}

func extractKey(bytes []byte, key string) (string, error) {
	c := make(map[string]json.RawMessage)
	if err := json.Unmarshal(bytes, &c); err != nil {
		return "", err
	}
	if v, ok := c[key]; ok {
		return strconv.Unquote(string(v))
	}
	return "", nil
}
