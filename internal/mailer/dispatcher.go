package mailer

import (
	"context"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/dentix/clinic-server/internal/logger"
	"github.com/dentix/clinic-server/internal/model"
)

var _ model.ConfirmationSender = (*Dispatcher)(nil)

// Dispatcher wraps a ConfirmationSender with a bounded first attempt
// and background retries. A transport failure never propagates to the
// registration caller: SendConfirmation returns nil once the message is
// handed off to the retry loop.
type Dispatcher struct {
	sender         model.ConfirmationSender
	logger         *logger.Logger
	attemptTimeout time.Duration
	wg             sync.WaitGroup
	retryCtx       context.Context
	stopRetries    context.CancelFunc

	// retry knobs, overridable in tests
	retryBase time.Duration
	maxRetry  uint64
}

// NewDispatcher creates a dispatcher. attemptTimeout bounds each
// delivery attempt.
func NewDispatcher(sender model.ConfirmationSender, attemptTimeout time.Duration, logger *logger.Logger) *Dispatcher {
	retryCtx, stopRetries := context.WithCancel(context.Background())
	return &Dispatcher{
		sender:         sender,
		logger:         logger,
		attemptTimeout: attemptTimeout,
		retryCtx:       retryCtx,
		stopRetries:    stopRetries,
		retryBase:      time.Second,
		maxRetry:       5,
	}
}

// SendConfirmation tries one bounded delivery and falls back to
// asynchronous retries with exponential backoff.
func (d *Dispatcher) SendConfirmation(ctx context.Context, account model.Account, token string) error {
	attemptCtx, cancel := context.WithTimeout(ctx, d.attemptTimeout)
	err := d.sender.SendConfirmation(attemptCtx, account, token)
	cancel()
	if err == nil {
		return nil
	}

	d.logger.Warn("Mail dispatcher: delivery failed, retrying in background",
		"email", account.Email,
		"error", err.Error())

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.retryLoop(account, token)
	}()

	return nil
}

func (d *Dispatcher) retryLoop(account model.Account, token string) {
	backoff := retry.WithMaxRetries(d.maxRetry, retry.NewExponential(d.retryBase))

	err := retry.Do(d.retryCtx, backoff, func(ctx context.Context) error {
		attemptCtx, cancel := context.WithTimeout(ctx, d.attemptTimeout)
		defer cancel()

		if err := d.sender.SendConfirmation(attemptCtx, account, token); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		d.logger.Error("Mail dispatcher: giving up on confirmation delivery",
			"email", account.Email,
			"error", err.Error())
		return
	}

	d.logger.Info("Mail dispatcher: confirmation delivered after retry",
		"email", account.Email)
}

// Wait blocks until all background retries finish.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Shutdown cancels pending retries and waits for in-flight attempts,
// giving up when ctx expires. A dead relay cannot hold shutdown past
// the caller's deadline.
func (d *Dispatcher) Shutdown(ctx context.Context) {
	d.stopRetries()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		d.logger.Warn("Mail dispatcher: shutdown deadline reached with retries pending")
	}
}
