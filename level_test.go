package logglobal

import (
	"log/slog"
	"testing"

	"github.com/joeycumines/logiface"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	for _, tc := range [...]struct {
		input   string
		want    logiface.Level
		wantErr bool
	}{
		{`off`, logiface.LevelDisabled, false},
		{`disabled`, logiface.LevelDisabled, false},
		{`emerg`, logiface.LevelEmergency, false},
		{`panic`, logiface.LevelEmergency, false},
		{`fatal`, logiface.LevelAlert, false},
		{`CRIT`, logiface.LevelCritical, false},
		{`error`, logiface.LevelError, false},
		{`err`, logiface.LevelError, false},
		{` warn `, logiface.LevelWarning, false},
		{`warning`, logiface.LevelWarning, false},
		{`notice`, logiface.LevelNotice, false},
		{`Info`, logiface.LevelInformational, false},
		{`informational`, logiface.LevelInformational, false},
		{`debug`, logiface.LevelDebug, false},
		{`trace`, logiface.LevelTrace, false},
		{`9`, 9, false},
		{`-1`, logiface.LevelDisabled, false},
		{`-5`, logiface.LevelDisabled, true},
		{`-128`, logiface.LevelDisabled, true},
		{``, logiface.LevelDisabled, true},
		{`verbose`, logiface.LevelDisabled, true},
		{`1000`, logiface.LevelDisabled, true},
	} {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseLevel(tc.input)
			if (err != nil) != tc.wantErr {
				t.Fatalf(`unexpected error: %v`, err)
			}
			if got != tc.want {
				t.Errorf(`expected %s, got %s`, tc.want, got)
			}
		})
	}
}

// every level round trips through the legacy level, except those without an
// equivalent, which collapse
func TestLevelMapping(t *testing.T) {
	t.Parallel()

	for _, tc := range [...]struct {
		level logiface.Level
		slog  slog.Level
		back  logiface.Level
	}{
		{logiface.LevelEmergency, slog.LevelError, logiface.LevelError},
		{logiface.LevelAlert, slog.LevelError, logiface.LevelError},
		{logiface.LevelCritical, slog.LevelError, logiface.LevelError},
		{logiface.LevelError, slog.LevelError, logiface.LevelError},
		{logiface.LevelWarning, slog.LevelWarn, logiface.LevelWarning},
		{logiface.LevelNotice, slog.LevelInfo, logiface.LevelInformational},
		{logiface.LevelInformational, slog.LevelInfo, logiface.LevelInformational},
		{logiface.LevelDebug, slog.LevelDebug, logiface.LevelDebug},
		{logiface.LevelTrace, LevelTrace, logiface.LevelTrace},
		{9, LevelTrace, logiface.LevelTrace},
	} {
		if v := toSlogLevel(tc.level); v != tc.slog {
			t.Errorf(`%s: expected %s, got %s`, tc.level, tc.slog, v)
		}
		if v := toLogifaceLevel(tc.slog); v != tc.back {
			t.Errorf(`%s: expected %s, got %s`, tc.slog, tc.back, v)
		}
	}
}
