package job

import (
	"encoding/json"
	"fmt"
	"time"
)

// ContactReceivedPayload carries everything the worker needs to notify the
// site operators about a new contact submission.
type ContactReceivedPayload struct {
	ContactID  int       `json:"contactId"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Message    string    `json:"message"`
	ReceivedAt time.Time `json:"receivedAt"`
	RequestID  string    `json:"requestId,omitempty"`
}

func EncodePayload(t Type, payload any) ([]byte, error) {
	if !t.IsValid() {
		return nil, ErrInvalidType
	}

	switch t {
	case TypeContactReceived:
		_, ok := payload.(ContactReceivedPayload)

		if !ok {
			_, ok2 := payload.(*ContactReceivedPayload)

			if !ok2 {
				return nil, ErrPayloadTypeMismatch
			}
		}
	}

	b, err := json.Marshal(payload)

	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	return b, nil
}

// DecodePayload unmarshals j.Payload into the typed payload struct for j.Type.
func DecodePayload(j Job) (any, error) {
	if !j.Type.IsValid() {
		return nil, ErrInvalidType
	}
	if len(j.Payload) == 0 {
		return nil, ErrInvalidPayload
	}

	switch j.Type {
	case TypeContactReceived:
		var p ContactReceivedPayload
		if err := json.Unmarshal(j.Payload, &p); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
		}
		return p, nil

	default:
		return nil, ErrInvalidType
	}
}
