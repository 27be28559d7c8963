package shared

import (
	"context"

	"appointment-scheduler/internal/domain/cancellation"
	"appointment-scheduler/internal/domain/notification"

	"github.com/google/uuid"
)

// Notifier hands an attempt to the notification sink. It must not block the caller
// and never reports delivery failures back.
type Notifier interface {
	Notify(ctx context.Context, attempt notification.Attempt)
}

// PolicyProvider looks up the cancellation policy of a provider.
type PolicyProvider interface {
	PolicyFor(ctx context.Context, providerID uuid.UUID) (cancellation.Policy, error)
}
