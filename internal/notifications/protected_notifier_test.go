package notifications

import (
	"context"
	"errors"
	"testing"
	"time"
)

type scriptedNotifier struct {
	calls int
	err   error
}

func (s *scriptedNotifier) SendContactReceived(ctx context.Context, in SendContactReceivedInput) error {
	s.calls++
	return s.err
}

func TestProtectedNotifierPassesThroughWhenClosed(t *testing.T) {
	inner := &scriptedNotifier{}
	n := NewProtectedNotifier(inner, ProtectedNotifierConfig{})

	err := n.SendContactReceived(context.Background(), SendContactReceivedInput{ContactID: 1})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if inner.calls != 1 {
		t.Fatalf("inner called %d times, want 1", inner.calls)
	}
}

func TestProtectedNotifierOpensAfterThreshold(t *testing.T) {
	inner := &scriptedNotifier{err: errors.New("provider down")}
	n := NewProtectedNotifier(inner, ProtectedNotifierConfig{
		FailureThreshold: 3,
		Cooldown:         time.Hour,
	})

	for i := 0; i < 3; i++ {
		err := n.SendContactReceived(context.Background(), SendContactReceivedInput{})
		if err == nil {
			t.Fatalf("call %d: expected provider error", i)
		}
	}

	// circuit is now open: fail fast without touching the provider
	err := n.SendContactReceived(context.Background(), SendContactReceivedInput{})
	if !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("got %v, want ErrCircuitOpen", err)
	}
	if inner.calls != 3 {
		t.Fatalf("inner called %d times, want 3", inner.calls)
	}
}

func TestProtectedNotifierHalfOpenRecovery(t *testing.T) {
	inner := &scriptedNotifier{err: errors.New("provider down")}
	n := NewProtectedNotifier(inner, ProtectedNotifierConfig{
		FailureThreshold: 1,
		Cooldown:         time.Millisecond,
	})

	// trip the breaker
	if err := n.SendContactReceived(context.Background(), SendContactReceivedInput{}); err == nil {
		t.Fatal("expected provider error")
	}

	time.Sleep(5 * time.Millisecond)

	// provider recovered; the half-open trial call closes the circuit
	inner.err = nil

	if err := n.SendContactReceived(context.Background(), SendContactReceivedInput{}); err != nil {
		t.Fatalf("half-open trial: %v", err)
	}

	if err := n.SendContactReceived(context.Background(), SendContactReceivedInput{}); err != nil {
		t.Fatalf("after recovery: %v", err)
	}
}
