package ports

import (
	"context"

	"tradenexus/internal/domain"
)

// SessionChecker reports whether the current request carries an
// authenticated session. The core is indifferent to how the session is
// established; it only consumes the boolean.
type SessionChecker interface {
	HasSession(ctx context.Context) bool
}

// ContactNotifier delivers a contact-form message to the notification
// service (e.g., transactional email). Callers treat delivery as
// fire-and-forget: failures are logged, never surfaced to the triggering
// operation.
type ContactNotifier interface {
	SendContact(ctx context.Context, msg domain.ContactMessage) error
}
