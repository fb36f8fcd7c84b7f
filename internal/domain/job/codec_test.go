package job

import (
	"errors"
	"testing"
	"time"
)

func TestEncodeDecodeContactReceived(t *testing.T) {
	in := ContactReceivedPayload{
		ContactID:  7,
		Name:       "Jane Doe",
		Email:      "jane@example.com",
		Message:    "I would like a quote.",
		ReceivedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		RequestID:  "req-123",
	}

	b, err := EncodePayload(TypeContactReceived, in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	j := New(CreateRequest{Type: TypeContactReceived, Payload: b})

	decoded, err := DecodePayload(j)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	got, ok := decoded.(ContactReceivedPayload)
	if !ok {
		t.Fatalf("decoded type %T", decoded)
	}

	if got != in {
		t.Fatalf("round trip mismatch:\ngot  %+v\nwant %+v", got, in)
	}
}

func TestEncodePayloadRejectsWrongStruct(t *testing.T) {
	type other struct{ X int }

	_, err := EncodePayload(TypeContactReceived, other{X: 1})
	if !errors.Is(err, ErrPayloadTypeMismatch) {
		t.Fatalf("got %v, want ErrPayloadTypeMismatch", err)
	}
}

func TestEncodePayloadRejectsUnknownType(t *testing.T) {
	_, err := EncodePayload(Type("mystery"), ContactReceivedPayload{})
	if !errors.Is(err, ErrInvalidType) {
		t.Fatalf("got %v, want ErrInvalidType", err)
	}
}

func TestDecodePayloadRejectsEmptyPayload(t *testing.T) {
	j := Job{Type: TypeContactReceived}

	_, err := DecodePayload(j)
	if !errors.Is(err, ErrInvalidPayload) {
		t.Fatalf("got %v, want ErrInvalidPayload", err)
	}
}

func TestNewJobDefaults(t *testing.T) {
	j := New(CreateRequest{Type: TypeContactReceived, Payload: []byte(`{}`)})

	if j.ID == "" {
		t.Fatal("missing id")
	}
	if j.Status != StatusPending {
		t.Fatalf("status = %s, want pending", j.Status)
	}
	if j.MaxAttempts != 5 {
		t.Fatalf("max attempts = %d, want 5", j.MaxAttempts)
	}
	if j.RunAt.IsZero() {
		t.Fatal("run_at not defaulted")
	}
}
