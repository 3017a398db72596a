// Package cli implements the rosview command-line interface.
//
// Commands load a ROS architecture graph (CARET YAML, rqt_graph DOT, or a
// live snapshot), lay it out with the group settings found next to the
// graph file, and then print, render or serve the result.
//
// # Commands
//
//   - layout: print the laid-out graph as JSON
//   - render: write SVG, HTML or JSON drawings
//   - paths: list named paths, or pick one interactively with -i
//   - serve: run the HTTP and WebSocket API
//   - cache: manage the layout cache
//   - version: print build information
//
// # Environment
//
// A .env file in the working directory is loaded on startup. ROSVIEW_REDIS_ADDR
// moves the layout cache and saved layouts to redis, ROSVIEW_MONGO_URI moves
// saved layouts to MongoDB, and ROSVIEW_LIVE_CMD names the program that dumps
// the running graph for --live.
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger with "HH:MM:SS.ms" timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs how long an operation took.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time, e.g. "Loaded graph (1.234s)".
func (p *progress) done(msg string, keyvals ...any) {
	p.logger.Info(msg, append(keyvals, "took", time.Since(p.start).Round(time.Millisecond))...)
}
