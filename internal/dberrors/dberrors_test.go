package dberrors

import (
	"errors"
	"testing"

	"github.com/schemex/schemex/pkg/schema"
	"github.com/schemex/schemex/pkg/sqlplan"
)

func TestClassifyMapsSentinelsToCodes(t *testing.T) {
	cases := []struct {
		err  error
		want Code
	}{
		{nil, OK},
		{schema.ErrEntryNotFound, EntryNotFound},
		{schema.ErrReentryDropped, ReentryDropped},
		{schema.ErrStaticData, StaticData},
		{schema.ErrTypeNotMatch, TypeNotMatch},
		{sqlplan.ErrReferenceNotFound, ReferenceNotFound},
		{sqlplan.ErrReferenceEachOther, ReferenceEachOther},
		{sqlplan.ErrNotSupport, NotSupport},
		{errors.New("boom"), Unknown},
	}
	for _, c := range cases {
		if got := Classify(c.err); got != c.want {
			t.Errorf("Classify(%v) = %v, want %v", c.err, got, c.want)
		}
	}
}

func TestClassifyUnwrapsWrappedErrors(t *testing.T) {
	wrapped := NewMigrationError(3, "accumulate", schema.ErrReentryDropped)
	if got := Classify(wrapped); got != ReentryDropped {
		t.Errorf("Classify(wrapped) = %v, want ReentryDropped", got)
	}
	if got := wrapped.Code(); got != ReentryDropped {
		t.Errorf("MigrationError.Code() = %v, want ReentryDropped", got)
	}
}

func TestReferenceEachOtherIsRecoverable(t *testing.T) {
	if !ReferenceEachOther.Recoverable() {
		t.Error("expected ReferenceEachOther to be recoverable")
	}
	if EntryNotFound.Recoverable() {
		t.Error("expected EntryNotFound to be unrecoverable")
	}
}

type stubReporter struct {
	calls int
	last  error
}

func (s *stubReporter) Report(err error) error {
	s.calls++
	s.last = err
	return nil
}

func TestHandlerCallsEveryReporter(t *testing.T) {
	h := NewHandler(false)
	r1, r2 := &stubReporter{}, &stubReporter{}
	h.AddReporter(r1)
	h.AddReporter(r2)

	rec := h.Handle(schema.ErrEntryNotFound)
	if rec.Code != EntryNotFound {
		t.Errorf("rec.Code = %v, want EntryNotFound", rec.Code)
	}
	if r1.calls != 1 || r2.calls != 1 {
		t.Errorf("expected both reporters called once, got %d and %d", r1.calls, r2.calls)
	}
	if rec.Debug != nil {
		t.Error("expected no debug info when debug=false")
	}
}

func TestHandlerDebugModeAttachesDebugInfo(t *testing.T) {
	h := NewHandler(true)
	rec := h.Handle(sqlplan.ErrNotSupport)
	if rec.Debug == nil {
		t.Fatal("expected debug info when debug=true")
	}
	if rec.Debug.File == "" {
		t.Error("expected debug info to carry a caller file")
	}
}

func TestHandlerNilErrorIsOK(t *testing.T) {
	h := NewHandler(false)
	rec := h.Handle(nil)
	if rec.Code != OK {
		t.Errorf("rec.Code = %v, want OK", rec.Code)
	}
}
