package nats

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"

	apperrors "ordersvc/internal/errors"
)

// Request performs a JSON request/reply exchange on the given subject.
// Transport failures and timeouts surface as UnavailableError; the caller
// cannot tell them apart and should not need to.
func Request(ctx context.Context, nc *nats.Conn, subject string, in, out any) error {
	data, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encoding %s request: %w", subject, err)
	}

	msg, err := nc.RequestWithContext(ctx, subject, data)
	if err != nil {
		return apperrors.NewUnavailableError(fmt.Sprintf("%s is unavailable", subject), err)
	}

	return DecodeReply(msg.Data, out)
}
