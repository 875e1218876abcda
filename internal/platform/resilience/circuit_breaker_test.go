package resilience

import (
	"errors"
	"testing"
	"time"
)

func TestCircuitBreaker_BasicTransitions(t *testing.T) {
	t.Parallel()

	b := NewCircuitBreaker(2, 5*time.Second, 1)
	now := time.Date(2025, 3, 15, 18, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	var changes []CircuitState
	b.OnStateChange(func(_, to CircuitState) { changes = append(changes, to) })

	if err := b.Allow(); err != nil {
		t.Fatalf("expected allow in closed state: %v", err)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("unexpected state after first failure: got=%s want=%s", state, CircuitStateClosed)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("unexpected state after threshold: got=%s want=%s", state, CircuitStateOpen)
	}
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected circuit open error, got %v", err)
	}

	now = now.Add(6 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("expected half-open probe to pass, got %v", err)
	}
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected second probe to be rejected, got %v", err)
	}

	b.RecordSuccess()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("unexpected state after probe success: got=%s want=%s", state, CircuitStateClosed)
	}

	want := []CircuitState{CircuitStateOpen, CircuitStateHalfOpen, CircuitStateClosed}
	if len(changes) != len(want) {
		t.Fatalf("unexpected transitions: got=%v want=%v", changes, want)
	}
	for i := range want {
		if changes[i] != want[i] {
			t.Fatalf("unexpected transition %d: got=%s want=%s", i, changes[i], want[i])
		}
	}
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	t.Parallel()

	b := NewCircuitBreaker(1, time.Second, 1)
	now := time.Date(2025, 3, 15, 18, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	b.RecordFailure()
	now = now.Add(2 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("expected probe to pass: %v", err)
	}
	b.RecordFailure()
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected breaker to reopen, got %v", err)
	}
}

func TestCircuitBreaker_DisabledIsNil(t *testing.T) {
	t.Parallel()

	b := NewCircuitBreakerFromConfig(CircuitBreakerConfig{Enabled: false})
	if b != nil {
		t.Fatalf("expected nil breaker when disabled")
	}
	for i := 0; i < 10; i++ {
		b.RecordFailure()
	}
	if err := b.Allow(); err != nil {
		t.Fatalf("expected nil breaker to allow, got %v", err)
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("unexpected nil breaker state: %s", state)
	}
}

func TestNormalizeCircuitBreakerConfig(t *testing.T) {
	t.Parallel()

	got := NormalizeCircuitBreakerConfig(CircuitBreakerConfig{Enabled: true})
	want := DefaultCircuitBreakerConfig()
	if got != want {
		t.Fatalf("unexpected normalized config: got=%+v want=%+v", got, want)
	}
}
