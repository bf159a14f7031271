package dberrors

import "github.com/schemex/schemex/internal/logging"

// LogReporter adapts an internal/logging.Logger into a Reporter. It is not
// registered by default: a Handler has no reporters until a caller passes
// one (this, or e.g. a Sentry/Bugsnag client the teacher's ErrorHandler
// would have reported to via the same interface) to Handler.AddReporter.
type LogReporter struct {
	logger logging.Logger
}

// NewLogReporter wraps logger as a Reporter.
func NewLogReporter(logger logging.Logger) *LogReporter {
	return &LogReporter{logger: logger}
}

// Report logs err at ErrorLevel with its classified Code attached as
// context, so a structured log sink can filter or alert on specific kinds.
func (lr *LogReporter) Report(err error) error {
	lr.logger.Error(err.Error(), map[string]interface{}{
		"code": Classify(err).String(),
	})
	return nil
}
