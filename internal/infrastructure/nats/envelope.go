package nats

import (
	"encoding/json"
	"fmt"
	"net/http"

	apperrors "ordersvc/internal/errors"
)

// errorEnvelope is the uniform failure shape exchanged between services. The
// explicit marker distinguishes it from success payloads that happen to have
// a status field.
type errorEnvelope struct {
	Error   bool   `json:"error"`
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func MarshalError(remote apperrors.Remote) []byte {
	data, err := json.Marshal(errorEnvelope{
		Error:   true,
		Status:  remote.Status,
		Message: remote.Message,
	})
	if err != nil {
		return []byte(`{"error":true,"status":500,"message":"internal server error"}`)
	}
	return data
}

// DecodeReply unmarshals a reply into out, converting error envelopes into
// typed errors: 5xx means the collaborator itself failed and the call is
// retryable, anything else is a rejection of the request.
func DecodeReply(data []byte, out any) error {
	var env errorEnvelope
	if err := json.Unmarshal(data, &env); err == nil && env.Error {
		if env.Status >= http.StatusInternalServerError {
			return apperrors.NewUnavailableError(env.Message, nil)
		}
		return apperrors.NewValidationError(env.Message)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding reply: %w", err)
	}
	return nil
}
