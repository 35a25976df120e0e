package common

import (
	"encoding/json"
	"time"
)

// StartTimer returns a function that reports the elapsed time since the call.
// Used to time dispatches and outbound provider calls.
func StartTimer() func() time.Duration {
	start := time.Now()
	return func() time.Duration {
		return time.Since(start)
	}
}

// CallStarted logs the start of an inbound protocol call.
func (l *Logger) CallStarted(method, endpoint string) {
	l.Debug().
		Str("method", method).
		Str("endpoint", endpoint).
		Msg("call started")
}

// CallFinished logs the completion of an inbound protocol call.
func (l *Logger) CallFinished(method, endpoint string, d time.Duration, err error) {
	evt := l.Info()
	if err != nil {
		evt = l.Warn().Str("error", err.Error())
	}
	evt.
		Str("method", method).
		Str("endpoint", endpoint).
		Int64("duration_ms", d.Milliseconds()).
		Msg("call finished")
}

// ToolStarted logs the start of an operation dispatch. Arguments are
// redacted before logging; credential values never reach the log sink.
func (l *Logger) ToolStarted(name string, args map[string]interface{}) {
	l.Info().
		Str("tool", name).
		Str("args", encodeArgs(RedactArgs(args))).
		Msg("tool started")
}

// ToolFinished logs the completion of an operation dispatch.
func (l *Logger) ToolFinished(name string, d time.Duration, err error) {
	if err != nil {
		l.Warn().
			Str("tool", name).
			Int64("duration_ms", d.Milliseconds()).
			Str("error", err.Error()).
			Msg("tool failed")
		return
	}
	l.Info().
		Str("tool", name).
		Int64("duration_ms", d.Milliseconds()).
		Msg("tool finished")
}

// encodeArgs renders a redacted argument map as a compact JSON string.
func encodeArgs(args map[string]interface{}) string {
	if len(args) == 0 {
		return "{}"
	}
	data, err := json.Marshal(args)
	if err != nil {
		return "{}"
	}
	return string(data)
}
