package model

import "context"

// ConfirmationSender delivers the confirmation message for a freshly
// registered account. Implementations must respect ctx deadlines; a
// slow transport must not block registration indefinitely.
type ConfirmationSender interface {
	SendConfirmation(ctx context.Context, account Account, token string) error
}
