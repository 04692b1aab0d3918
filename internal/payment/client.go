package payment

import (
	"context"
	"time"

	"github.com/nats-io/nats.go"

	"ordersvc/internal/dto"
	natsinfra "ordersvc/internal/infrastructure/nats"
)

// SubjectCreateSession is owned by the payment service.
const SubjectCreateSession = "create.payment.session"

// Client opens payment sessions with the payment gateway. The gateway later
// reports settlement asynchronously through the order.paid subject.
type Client struct {
	nc      *nats.Conn
	timeout time.Duration
}

func NewClient(nc *nats.Conn, timeout time.Duration) *Client {
	return &Client{
		nc:      nc,
		timeout: timeout,
	}
}

func (c *Client) CreateSession(ctx context.Context, req dto.PaymentSessionRequest) (*dto.PaymentSession, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var session dto.PaymentSession
	if err := natsinfra.Request(ctx, c.nc, SubjectCreateSession, req, &session); err != nil {
		return nil, err
	}

	return &session, nil
}
