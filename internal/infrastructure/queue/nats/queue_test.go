package nats

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/kirillkom/lrhub/internal/core/domain"
)

func TestDecodeEventRejectsIncompletePayload(t *testing.T) {
	if _, err := decodeEvent([]byte(`{"description":"x"}`)); !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := decodeEvent([]byte(`not json`)); !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for garbage, got %v", err)
	}
}

func TestDispatchDeliversDecodedEvent(t *testing.T) {
	at := time.Date(2026, 5, 2, 8, 30, 0, 0, time.UTC)
	payload, err := encodeEvent(domain.ActivityEvent{
		ID:          "evt-9",
		UserID:      "17",
		Action:      domain.ActionResourceDownload,
		Description: "Downloaded resource: Python Basics",
		OccurredAt:  at,
	})
	if err != nil {
		t.Fatalf("encodeEvent() error = %v", err)
	}

	var got domain.ActivityEvent
	dispatch(context.Background(), payload, func(_ context.Context, event domain.ActivityEvent) error {
		got = event
		return nil
	})
	if got.ID != "evt-9" || got.UserID != "17" || got.Action != domain.ActionResourceDownload || !got.OccurredAt.Equal(at) {
		t.Fatalf("unexpected event: %+v", got)
	}
}

func TestDispatchSkipsMalformedEvent(t *testing.T) {
	called := false
	dispatch(context.Background(), []byte(`{}`), func(context.Context, domain.ActivityEvent) error {
		called = true
		return nil
	})
	if called {
		t.Fatalf("handler must not run for malformed events")
	}
}

func TestWrapTemporaryIfNeeded(t *testing.T) {
	err := wrapTemporaryIfNeeded(errors.Join(errors.New("nats publish"), nats.ErrConnectionClosed))
	if !domain.IsKind(err, domain.ErrTemporary) {
		t.Fatalf("expected closed connection to be temporary, got %v", err)
	}

	plain := errors.New("bad subject")
	if got := wrapTemporaryIfNeeded(plain); !errors.Is(got, plain) || domain.IsKind(got, domain.ErrTemporary) {
		t.Fatalf("expected plain error unchanged, got %v", got)
	}
}

func TestClassifyNATSErrorIgnoresPayloadErrors(t *testing.T) {
	if class := classifyNATSError(nats.ErrMaxPayload); class.RecordFailure || class.Retryable {
		t.Fatalf("oversized payload must not trip the breaker: %+v", class)
	}
	if class := classifyNATSError(nats.ErrNoServers); !class.RecordFailure {
		t.Fatalf("missing servers must count as a failure: %+v", class)
	}
}
