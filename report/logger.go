// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package report

import (
	log "github.com/sirupsen/logrus"
)

// Logger reports messages as logrus entries.
type Logger struct {
	Log *log.Logger // If nil, the logrus standard logger.
}

func (lg *Logger) Report(msg Message) {
	logger := lg.Log
	if logger == nil {
		logger = log.StandardLogger()
	}

	fields := log.Fields{"category": msg.Category.String()}
	if msg.LineNo >= 0 {
		fields["line"] = msg.LineNo
	}

	logger.WithFields(fields).Error(msg.String())
}
