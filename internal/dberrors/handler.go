package dberrors

import (
	"fmt"
	"runtime"
	"time"
)

// Reporter is the non-HTTP remainder of the teacher's ErrorReporter
// interface: something a migration failure can be handed to. internal/
// migrator passes accumulate, trace, plan and statement failures to
// Handler.Handle, which calls every registered Reporter; a failed statement
// is reported after its transaction has already been rolled back. Begin,
// record-version and commit failures are not reported. This is the way the
// teacher's ErrorHandler.Handle called every reporter before rendering a
// response — minus the response.
type Reporter interface {
	Report(err error) error
}

// Handler collects Reporters and produces a debug Record on demand,
// trimmed from the teacher's ErrorHandler down to the parts that have
// nothing to do with rendering an HTTP response: no content-type
// negotiation, no template engine, no Context/ResponseWriter.
type Handler struct {
	debug     bool
	reporters []Reporter
}

// NewHandler creates a Handler. debug controls whether Handle's Record
// includes a stack trace and caller location.
func NewHandler(debug bool) *Handler {
	return &Handler{debug: debug}
}

// AddReporter registers a Reporter; Handle calls every one of them.
func (h *Handler) AddReporter(r Reporter) {
	h.reporters = append(h.reporters, r)
}

// SetDebug toggles whether Handle's Record carries debug information.
func (h *Handler) SetDebug(debug bool) { h.debug = debug }

// Record is what Handle returns: a classified error plus, in debug mode,
// enough to locate where it happened.
type Record struct {
	Code      Code
	Message   string
	Timestamp time.Time
	Debug     *DebugInfo
}

// DebugInfo mirrors the fields the teacher's getDebugInfo collects, minus
// the ones (go_version, num_goroutines) that are process-wide rather than
// error-specific and belong in internal/logging's own startup fields
// instead of being repeated on every error record.
type DebugInfo struct {
	ErrorType  string
	StackTrace string
	Function   string
	File       string
	Line       int
}

// Handle reports err to every registered Reporter, then returns a Record
// classifying it. It never renders anything and never returns an error
// itself — a Reporter failing to send (e.g. a down log sink) does not
// block the caller from seeing the classification.
func (h *Handler) Handle(err error) Record {
	if err == nil {
		return Record{Code: OK, Timestamp: nowFunc()}
	}

	for _, r := range h.reporters {
		_ = r.Report(err)
	}

	rec := Record{
		Code:      Classify(err),
		Message:   err.Error(),
		Timestamp: nowFunc(),
	}
	if h.debug {
		rec.Debug = debugInfo(err)
	}
	return rec
}

// nowFunc is a seam so tests can stub the clock without reaching for a
// larger time-provider abstraction the teacher doesn't use elsewhere.
var nowFunc = time.Now

func debugInfo(err error) *DebugInfo {
	info := &DebugInfo{ErrorType: fmt.Sprintf("%T", err)}

	stack := make([]byte, 4096)
	n := runtime.Stack(stack, false)
	info.StackTrace = string(stack[:n])

	if pc, file, line, ok := runtime.Caller(2); ok {
		if fn := runtime.FuncForPC(pc); fn != nil {
			info.Function = fn.Name()
		}
		info.File = file
		info.Line = line
	}
	return info
}
