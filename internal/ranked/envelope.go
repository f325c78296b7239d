package ranked

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Status tags an API envelope as carrying a payload or an error message.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// userNotFoundMessage is the API's error text for an unknown user.
const userNotFoundMessage = "User is not exists."

// ErrNullData is returned when a success envelope carries no payload.
var ErrNullData = errors.New("response data is null")

// Envelope is the wrapper every endpoint responds with.
type Envelope struct {
	Status Status          `json:"status"`
	Data   json.RawMessage `json:"data"`
}

// APIError is an error envelope. Message is empty when the API sent null.
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return "ranked api error"
	}
	return "ranked api error: " + e.Message
}

// UserMissing reports whether the API rejected the request because the user
// does not exist.
func (e *APIError) UserMissing() bool {
	return e.Message == userNotFoundMessage
}

// Unwrap decodes the payload of a success envelope into T, or returns the
// error the envelope carries.
func Unwrap[T any](env Envelope) (T, error) {
	var out T
	switch env.Status {
	case StatusSuccess:
		if isNull(env.Data) {
			return out, ErrNullData
		}
		if err := json.Unmarshal(env.Data, &out); err != nil {
			return out, fmt.Errorf("decode data: %w", err)
		}
		return out, nil
	case StatusError:
		var msg *string
		if !isNull(env.Data) {
			if err := json.Unmarshal(env.Data, &msg); err != nil {
				return out, &APIError{Message: string(env.Data)}
			}
		}
		apiErr := &APIError{}
		if msg != nil {
			apiErr.Message = *msg
		}
		return out, apiErr
	default:
		return out, fmt.Errorf("unknown response status %q", env.Status)
	}
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func isArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}
