package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-cms-footnotes/pkg/interfaces"
)

type testMessage struct {
	PageID string
}

func (testMessage) Type() string { return "footnotes.test.message" }

func (testMessage) Validate() error { return nil }

type invalidMessage struct{}

func (invalidMessage) Type() string { return "footnotes.test.invalid" }

func (invalidMessage) Validate() error {
	return errors.New("invalid")
}

func TestHandlerExecuteSuccess(t *testing.T) {
	called := false
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		called = true
		return nil
	})

	if err := h.Execute(context.Background(), testMessage{}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !called {
		t.Fatal("expected handler to be invoked")
	}
}

func TestHandlerValidationShortCircuitsExecution(t *testing.T) {
	called := false
	h := NewHandler[invalidMessage](func(ctx context.Context, msg invalidMessage) error {
		called = true
		return nil
	})

	err := h.Execute(context.Background(), invalidMessage{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if called {
		t.Fatal("expected handler not to run when validation fails")
	}
}

func TestHandlerContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		called = true
		return nil
	})

	err := h.Execute(ctx, testMessage{})
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if called {
		t.Fatal("expected handler not to run when context is cancelled")
	}
}

func TestHandlerWrapsExecutionError(t *testing.T) {
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		return errors.New("boom")
	})

	err := h.Execute(context.Background(), testMessage{})
	if err == nil {
		t.Fatal("expected wrapped execution error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
}

func TestHandlerHonoursTimeoutOption(t *testing.T) {
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(200 * time.Millisecond):
			return nil
		}
	}, WithTimeout[testMessage](10*time.Millisecond))

	err := h.Execute(context.Background(), testMessage{})
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category for timeout, got %v", err)
	}
}

func TestHandlerTelemetryReceivesOutcome(t *testing.T) {
	var captured []TelemetryInfo
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		if msg.PageID == "" {
			return errors.New("missing page")
		}
		return nil
	},
		WithOperation[testMessage]("footnotes.test"),
		WithMessageFields(func(msg testMessage) map[string]any {
			return map[string]any{"page_id": msg.PageID}
		}),
		WithTelemetry[testMessage](func(ctx context.Context, msg testMessage, info TelemetryInfo) {
			captured = append(captured, info)
		}),
	)

	if err := h.Execute(context.Background(), testMessage{PageID: "p1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := h.Execute(context.Background(), testMessage{}); err == nil {
		t.Fatal("expected error for empty page id")
	}

	if len(captured) != 2 {
		t.Fatalf("expected 2 telemetry calls, got %d", len(captured))
	}
	first := captured[0]
	if first.Status != TelemetryStatusSuccess || first.Command != "footnotes.test.message" || first.Operation != "footnotes.test" {
		t.Fatalf("unexpected success telemetry: %+v", first)
	}
	if first.Fields["page_id"] != "p1" {
		t.Fatalf("expected page_id field, got %v", first.Fields)
	}
	if captured[1].Status != TelemetryStatusFailed || captured[1].Error == nil {
		t.Fatalf("expected failed telemetry with error, got %+v", captured[1])
	}
}

func TestDefaultTelemetryToleratesNilLogger(t *testing.T) {
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		return nil
	}, WithTelemetry(DefaultTelemetry[testMessage](nil)))

	if err := h.Execute(context.Background(), testMessage{PageID: "p"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

type fieldsRecorder struct {
	fields   []map[string]any
	messages []string
}

func (r *fieldsRecorder) Trace(string, ...any)                          {}
func (r *fieldsRecorder) Debug(string, ...any)                          {}
func (r *fieldsRecorder) Info(msg string, _ ...any)                     { r.messages = append(r.messages, msg) }
func (r *fieldsRecorder) Warn(string, ...any)                           {}
func (r *fieldsRecorder) Error(msg string, _ ...any)                    { r.messages = append(r.messages, msg) }
func (r *fieldsRecorder) Fatal(string, ...any)                          {}
func (r *fieldsRecorder) WithContext(context.Context) interfaces.Logger { return r }

func (r *fieldsRecorder) WithFields(fields map[string]any) interfaces.Logger {
	r.fields = append(r.fields, fields)
	return r
}

func TestDefaultTelemetryAttachesMessageFields(t *testing.T) {
	rec := &fieldsRecorder{}
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		return nil
	},
		WithMessageFields(func(msg testMessage) map[string]any {
			return map[string]any{"page_id": msg.PageID}
		}),
		WithTelemetry(DefaultTelemetry[testMessage](rec)),
	)

	if err := h.Execute(context.Background(), testMessage{PageID: "p-1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(rec.fields) != 1 || rec.fields[0]["page_id"] != "p-1" {
		t.Fatalf("expected telemetry fields with page_id, got %v", rec.fields)
	}
	if len(rec.messages) != 1 || rec.messages[0] != "command.execute.success" {
		t.Fatalf("expected success entry, got %v", rec.messages)
	}
}
