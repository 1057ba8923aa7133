// Package telemetry sinks session observations onto the application
// logger. Delivery is best-effort: recording never fails and never
// blocks the session that emitted the event.
package telemetry

import (
	"log"

	"github.com/beka-birhanu/mindmaze-api/config"
	"github.com/beka-birhanu/mindmaze-api/game/session"
)

// LogRecorder writes one line per observation.
// Implements session.Recorder.
type LogRecorder struct {
	logger *log.Logger
}

// NewLogRecorder creates a LogRecorder over the given logger.
func NewLogRecorder(logger *log.Logger) *LogRecorder {
	if logger == nil {
		logger = log.Default()
	}
	return &LogRecorder{logger: logger}
}

// Record logs the observation. Never returns and never panics outward.
func (r *LogRecorder) Record(e session.Event) {
	defer func() {
		_ = recover()
	}()

	switch e.Kind {
	case session.Move, session.InvalidMove:
		r.logger.Printf("%s[INFO]%s %s %s (%d,%d)->(%d,%d)",
			config.LogInfoColor, config.LogColorReset, e.Kind, e.Direction, e.From.X, e.From.Y, e.To.X, e.To.Y)
	case session.Hesitation:
		r.logger.Printf("%s[INFO]%s %s after %dms pause",
			config.LogInfoColor, config.LogColorReset, e.Kind, e.PauseMillis)
	case session.GameComplete:
		if e.Metrics != nil {
			r.logger.Printf("%s[INFO]%s %s moves=%d hesitations=%d",
				config.LogInfoColor, config.LogColorReset, e.Kind, e.Metrics.Moves, e.Metrics.Hesitations)
			return
		}
		r.logger.Printf("%s[INFO]%s %s", config.LogInfoColor, config.LogColorReset, e.Kind)
	default:
		r.logger.Printf("%s[INFO]%s %s", config.LogInfoColor, config.LogColorReset, e.Kind)
	}
}
