package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/drillbuddy/internal/store"
)

func retryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: time.Millisecond,
		MaxWait:     10 * time.Millisecond,
		Multiplier:  2.0,
	}
}

func TestRetry(t *testing.T) {
	ok := MockResponse{Content: json.RawMessage(`{"ok":true}`)}
	down := MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}}
	invalid := MockResponse{Err: &ErrInvalidResponse{Err: errors.New("bad")}}
	truncated := MockResponse{Err: &ErrMaxTokensExceeded{}}

	tests := []struct {
		name      string
		responses []MockResponse
		wantErr   bool
		wantCalls int
	}{
		{"first attempt", []MockResponse{ok}, false, 1},
		{"transient then success", []MockResponse{down, ok}, false, 2},
		{"all attempts fail", []MockResponse{down, down, down, ok}, true, 3},
		{"truncation not retried", []MockResponse{truncated, ok}, true, 1},
		{"invalid retried once", []MockResponse{invalid, invalid, ok}, true, 2},
		{"invalid then success", []MockResponse{invalid, ok}, false, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockProvider(tt.responses...)
			_, err := WithRetry(mock, retryConfig()).Generate(context.Background(), Request{})
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if mock.CallCount() != tt.wantCalls {
				t.Fatalf("expected %d calls, got %d", tt.wantCalls, mock.CallCount())
			}
		})
	}
}

func TestRetry_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	mock := NewMockProvider(MockResponse{Err: context.Canceled})
	_, err := WithRetry(mock, retryConfig()).Generate(ctx, Request{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
}

func TestRetry_RespectsRetryAfter(t *testing.T) {
	r := &RetryProvider{config: retryConfig()}
	got := r.backoff(0, &ErrRateLimit{RetryAfter: 3 * time.Second})
	if got != 3*time.Second {
		t.Fatalf("backoff = %v, want 3s", got)
	}
	got = r.backoff(10, errors.New("x"))
	if got > 12*time.Millisecond {
		t.Fatalf("backoff = %v exceeds MaxWait plus jitter", got)
	}
}

type fakeRecorder struct {
	events []store.LLMRequestEventData
	err    error
}

func (f *fakeRecorder) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	f.events = append(f.events, data)
	return f.err
}

func TestLogging_RecordsEvents(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"a":1}`), Usage: Usage{InputTokens: 10, OutputTokens: 5}},
		MockResponse{Err: errors.New("boom")},
	)
	rec := &fakeRecorder{}
	p := WithLogging(mock, rec, nil)
	ctx := WithPurpose(context.Background(), "problem-gen")

	req := Request{
		System:   "sys",
		Messages: []Message{{Role: RoleUser, Content: "hello"}},
		Schema:   &Schema{Name: "s", Definition: map[string]any{"type": "object"}},
	}
	if _, err := p.Generate(ctx, req); err != nil {
		t.Fatal(err)
	}
	if _, err := p.Generate(ctx, req); err == nil {
		t.Fatal("expected error")
	}

	if len(rec.events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(rec.events))
	}
	first := rec.events[0]
	if !first.Success || first.Purpose != "problem-gen" || first.InputTokens != 10 || first.ResponseBody != `{"a":1}` {
		t.Fatalf("unexpected first event: %+v", first)
	}
	for _, want := range []string{"[system]", "[user]\nhello", "[schema: s]"} {
		if !strings.Contains(first.RequestBody, want) {
			t.Errorf("request body missing %q", want)
		}
	}
	if second := rec.events[1]; second.Success || second.ErrorMessage != "boom" {
		t.Fatalf("unexpected second event: %+v", second)
	}
}

func TestLogging_RecorderFailureDoesNotFailRequest(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	p := WithLogging(mock, &fakeRecorder{err: errors.New("disk full")}, nil)
	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPurposeContext(t *testing.T) {
	if got := PurposeFrom(context.Background()); got != "unknown" {
		t.Errorf("PurposeFrom(empty) = %q", got)
	}
	if got := PurposeFrom(WithPurpose(context.Background(), "x")); got != "x" {
		t.Errorf("PurposeFrom = %q", got)
	}
}
