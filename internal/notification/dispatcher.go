package notification

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Transport delivers one rendered message to one phone number. The concrete
// gateway lives outside this service; implementations here are thin clients.
type Transport interface {
	Send(ctx context.Context, phone, text string) error
}

// Dispatcher is the best-effort side channel around the state machine. Notify
// returns before the send happens and nothing is ever reported back to the
// caller: a failed or duplicated message is acceptable, a blocked or rolled
// back transition is not. There is no synchronous retry.
type Dispatcher struct {
	transport   Transport
	logger      *zap.Logger
	sendTimeout time.Duration
}

func NewDispatcher(transport Transport, logger *zap.Logger, sendTimeout time.Duration) *Dispatcher {
	if sendTimeout <= 0 {
		sendTimeout = 10 * time.Second
	}
	return &Dispatcher{
		transport:   transport,
		logger:      logger,
		sendTimeout: sendTimeout,
	}
}

func (d *Dispatcher) Notify(phone, text string) {
	if phone == "" {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), d.sendTimeout)
		defer cancel()

		if err := d.transport.Send(ctx, phone, text); err != nil {
			d.logger.Warn("notification send failed",
				zap.String("phone", phone),
				zap.Error(err),
			)
			return
		}
		d.logger.Debug("notification sent", zap.String("phone", phone))
	}()
}
