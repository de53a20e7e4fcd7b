package mailer

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dentix/clinic-server/internal/logger"
	"github.com/dentix/clinic-server/internal/model"
)

type countingSender struct {
	mu       sync.Mutex
	calls    int
	failures int
}

// SendConfirmation fails for the first `failures` calls, then succeeds.
func (s *countingSender) SendConfirmation(ctx context.Context, account model.Account, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.calls <= s.failures {
		return errors.New("relay refused")
	}
	return nil
}

func (s *countingSender) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func TestDispatcher_FirstAttemptSucceeds(t *testing.T) {
	sender := &countingSender{}
	d := NewDispatcher(sender, time.Second, logger.New(0))

	err := d.SendConfirmation(context.Background(), model.Account{Email: "ana@clinic.test"}, "tok")
	require.NoError(t, err)
	d.Wait()
	assert.Equal(t, 1, sender.callCount())
}

func TestDispatcher_FailureRetriesInBackground(t *testing.T) {
	sender := &countingSender{failures: 2}
	d := NewDispatcher(sender, time.Second, logger.New(0))
	d.retryBase = time.Millisecond

	err := d.SendConfirmation(context.Background(), model.Account{Email: "ana@clinic.test"}, "tok")
	require.NoError(t, err)

	d.Wait()
	assert.Equal(t, 3, sender.callCount())
}

func TestDispatcher_GivesUpAfterMaxRetries(t *testing.T) {
	sender := &countingSender{failures: 100}
	d := NewDispatcher(sender, time.Second, logger.New(0))
	d.retryBase = time.Millisecond
	d.maxRetry = 2

	err := d.SendConfirmation(context.Background(), model.Account{Email: "ana@clinic.test"}, "tok")
	require.NoError(t, err)

	d.Wait()
	// first synchronous attempt + initial retry + 2 retries
	assert.Equal(t, 4, sender.callCount())
}

func TestDispatcher_ShutdownBoundsDeadRelay(t *testing.T) {
	sender := &countingSender{failures: 100}
	d := NewDispatcher(sender, time.Second, logger.New(0))
	d.retryBase = time.Minute

	err := d.SendConfirmation(context.Background(), model.Account{Email: "ana@clinic.test"}, "tok")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	start := time.Now()
	d.Shutdown(ctx)
	assert.Less(t, time.Since(start), 5*time.Second)
	// synchronous attempt plus the immediate first retry; the minute
	// backoff never elapses because Shutdown cancels it
	assert.LessOrEqual(t, sender.callCount(), 2)
}
