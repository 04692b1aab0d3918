package nats

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	apperrors "ordersvc/internal/errors"
)

// HandlerFunc processes one inbound message payload and returns the reply
// body, or an error to be translated into the uniform error envelope.
type HandlerFunc func(ctx context.Context, data []byte) (any, error)

// Subscriber exposes handlers as queue subscriptions so that multiple
// instances of the service share the work. Each message is dispatched on its
// own goroutine; handlers must not rely on ordering across messages.
type Subscriber struct {
	nc      *nats.Conn
	queue   string
	timeout time.Duration
	logger  *zap.Logger
	subs    []*nats.Subscription
}

func NewSubscriber(nc *nats.Conn, queue string, timeout time.Duration, logger *zap.Logger) *Subscriber {
	return &Subscriber{
		nc:      nc,
		queue:   queue,
		timeout: timeout,
		logger:  logger,
	}
}

func (s *Subscriber) Handle(subject string, handler HandlerFunc) error {
	sub, err := s.nc.QueueSubscribe(subject, s.queue, func(msg *nats.Msg) {
		go s.dispatch(subject, msg, handler)
	})
	if err != nil {
		return err
	}

	s.subs = append(s.subs, sub)
	s.logger.Info("subscribed", zap.String("subject", subject), zap.String("queue", s.queue))
	return nil
}

func (s *Subscriber) dispatch(subject string, msg *nats.Msg, handler HandlerFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	result, err := handler(ctx, msg.Data)
	if err != nil {
		remote := apperrors.Translate(err)
		if remote.Status >= http.StatusInternalServerError {
			s.logger.Error("handler failed", zap.String("subject", subject), zap.Error(err))
		} else {
			s.logger.Warn("request rejected", zap.String("subject", subject), zap.Int("status", remote.Status), zap.String("reason", remote.Message))
		}
		s.respond(subject, msg, MarshalError(remote))
		return
	}

	data, err := json.Marshal(result)
	if err != nil {
		s.logger.Error("encoding reply failed", zap.String("subject", subject), zap.Error(err))
		s.respond(subject, msg, MarshalError(apperrors.Translate(err)))
		return
	}

	s.respond(subject, msg, data)
}

// respond is a no-op for fire-and-forget messages, which carry no reply
// subject.
func (s *Subscriber) respond(subject string, msg *nats.Msg, data []byte) {
	if msg.Reply == "" {
		return
	}
	if err := msg.Respond(data); err != nil {
		s.logger.Error("responding failed", zap.String("subject", subject), zap.Error(err))
	}
}

// Shutdown drains the subscriptions so in-flight messages finish before the
// connection closes.
func (s *Subscriber) Shutdown(ctx context.Context) error {
	done := make(chan error, 1)
	go func() {
		done <- s.nc.Drain()
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		s.nc.Close()
		return ctx.Err()
	}
}
