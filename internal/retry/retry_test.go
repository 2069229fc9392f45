package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"auth error", &AuthError{Message: "bad key"}, false},
		{"wrapped auth error", errors.Join(errors.New("outer"), &AuthError{Message: "bad key"}), false},
		{"rate limited", &StatusError{Code: 429}, true},
		{"server error", &StatusError{Code: 500}, true},
		{"bad gateway", &StatusError{Code: 502}, true},
		{"not found", &StatusError{Code: 404}, false},
		{"unauthorized", &StatusError{Code: 401}, false},
		{"context canceled", context.Canceled, false},
		{"deadline exceeded", context.DeadlineExceeded, false},
		{"plain error", errors.New("boom"), false},
	}

	for _, tt := range tests {
		if got := IsRetryable(tt.err); got != tt.want {
			t.Errorf("%s: IsRetryable = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"auth error", &AuthError{Message: "bad key"}, "Auth Failure"},
		{"unauthorized status", &StatusError{Code: 401}, "Auth Failure"},
		{"forbidden status", &StatusError{Code: 403}, "Auth Failure"},
		{"rate limited", &StatusError{Code: 429}, "Rate Limiting"},
		{"server error", &StatusError{Code: 500}, "API Error"},
		{"deadline exceeded", context.DeadlineExceeded, "Timeout"},
		{"plain error", errors.New("boom"), "Unknown"},
		{"nil", nil, "Unknown"},
	}

	for _, tt := range tests {
		if got := Classify(tt.err); got != tt.want {
			t.Errorf("%s: Classify = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestDo_SucceedsFirstTry(t *testing.T) {
	calls := 0
	err := Do(context.Background(), 3, func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected a single call, got %d", calls)
	}
}

func TestDo_NonRetryableStopsImmediately(t *testing.T) {
	calls := 0
	boom := &AuthError{Message: "bad key"}
	err := Do(context.Background(), 3, func() error {
		calls++
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected the auth error back, got %v", err)
	}
	if calls != 1 {
		t.Errorf("non-retryable error must not be retried, got %d calls", calls)
	}
}

func TestDo_ZeroAttemptsMeansOne(t *testing.T) {
	calls := 0
	_ = Do(context.Background(), 0, func() error {
		calls++
		return errors.New("boom")
	})
	if calls != 1 {
		t.Errorf("expected a single call, got %d", calls)
	}
}

func TestDo_CancelledContextAbortsBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	done := make(chan error, 1)
	go func() {
		done <- Do(ctx, 3, func() error {
			calls++
			if calls == 1 {
				cancel()
			}
			return &StatusError{Code: 503}
		})
	}()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("cancellation must interrupt the backoff sleep")
	}
	if calls != 1 {
		t.Errorf("expected a single call before cancellation, got %d", calls)
	}
}
