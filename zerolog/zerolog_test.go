package izerolog

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/joeycumines/go-logglobal"
	"github.com/joeycumines/logiface"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, s string) (lines []map[string]any) {
	t.Helper()
	for _, line := range strings.Split(strings.TrimSpace(s), "\n") {
		if line == `` {
			continue
		}
		var v map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &v), line)
		lines = append(lines, v)
	}
	return
}

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(math.MinInt8)
	os.Exit(m.Run())
}

func TestLogger_levels(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := L.New(
		L.WithZerolog(zerolog.New(&buf).Level(math.MinInt8)),
		L.WithLevel(logiface.LevelTrace),
	)

	levels := [...]struct {
		name  string
		level logiface.Level
		want  string
	}{
		{`emergency`, logiface.LevelEmergency, `panic`},
		{`alert`, logiface.LevelAlert, `fatal`},
		{`critical`, logiface.LevelCritical, `fatal`},
		{`error`, logiface.LevelError, `error`},
		{`warning`, logiface.LevelWarning, `warn`},
		{`notice`, logiface.LevelNotice, `warn`},
		{`informational`, logiface.LevelInformational, `info`},
		{`debug`, logiface.LevelDebug, `debug`},
		{`trace`, logiface.LevelTrace, `trace`},
		{`custom`, 9, `-2`},
	}

	// no exit or panic, for any level
	for _, tc := range levels {
		logger.Build(tc.level).Log(tc.name)
	}

	lines := decodeLines(t, buf.String())
	require.Len(t, lines, len(levels))
	for i, tc := range levels {
		assert.Equal(t, tc.name, lines[i][`message`])
		assert.Equal(t, tc.want, lines[i][`level`], tc.name)
	}
}

func TestLogger_fields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := L.New(L.WithZerolog(zerolog.New(&buf))).Logger()

	logger.Info().
		Str(`str`, `v`).
		Int(`int`, 3).
		Int64(`int64`, -4).
		Uint64(`uint64`, 5).
		Bool(`bool`, true).
		Float64(`float64`, 1.5).
		Dur(`dur`, time.Second).
		Time(`time`, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)).
		Any(`any`, []int{1, 2}).
		Err(errors.New(`some error`)).
		Log(`hello`)

	lines := decodeLines(t, buf.String())
	require.Len(t, lines, 1)
	line := lines[0]

	assert.Equal(t, `info`, line[`level`])
	assert.Equal(t, `hello`, line[`message`])
	assert.Equal(t, `v`, line[`str`])
	assert.Equal(t, float64(3), line[`int`])
	assert.Equal(t, float64(-4), line[`int64`])
	assert.Equal(t, float64(5), line[`uint64`])
	assert.Equal(t, true, line[`bool`])
	assert.Equal(t, 1.5, line[`float64`])
	assert.Equal(t, `2024-01-02T03:04:05Z`, line[`time`])
	assert.Equal(t, []any{float64(1), float64(2)}, line[`any`])
	assert.Equal(t, `some error`, line[zerolog.ErrorFieldName])
	assert.Contains(t, line, `dur`)
}

func TestLogger_zerologLevelDisabled(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := L.New(L.WithZerolog(zerolog.New(&buf).Level(zerolog.WarnLevel))).Logger()

	logger.Info().Str(`k`, `v`).Log(`dropped`)
	assert.ErrorIs(t, logger.Log(logiface.LevelInformational, nil), logiface.ErrDisabled)
	logger.Warning().Log(`written`)

	lines := decodeLines(t, buf.String())
	require.Len(t, lines, 1)
	assert.Equal(t, `written`, lines[0][`message`])
}

// closeRecorder fails the test if closed
type closeRecorder struct {
	bytes.Buffer
	t *testing.T
}

func (x *closeRecorder) Close() error {
	x.t.Error(`unexpected close`)
	return nil
}

func TestNewAsync_guard(t *testing.T) {
	t.Parallel()

	for _, tc := range [...]struct {
		name   string
		config *AsyncConfig
	}{
		{`default`, nil},
		{`poller`, &AsyncConfig{Size: 64, PollInterval: time.Millisecond}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var r logglobal.Registry
			out := closeRecorder{t: t}

			r.SetWithGuard(NewAsync(&out, tc.config))

			for i := range 10 {
				r.Borrow().Info().Int(`i`, i).Log(`async`)
			}

			r.Clear()

			lines := decodeLines(t, out.String())
			require.Len(t, lines, 10)
			for i, line := range lines {
				assert.Equal(t, float64(i), line[`i`])
				assert.Equal(t, `async`, line[`message`])
			}
		})
	}
}
