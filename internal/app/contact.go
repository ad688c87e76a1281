package app

import (
	"context"
	"fmt"

	"tradenexus/internal/domain"
	"tradenexus/internal/ports"
)

// ContactService forwards contact-form submissions to the notification
// collaborator with fire-and-forget semantics.
type ContactService struct {
	logger   ports.Logger
	notifier ports.ContactNotifier // nil when the contact email feature is disabled
}

// NewContactService creates a new contact service instance. A nil notifier
// is allowed and turns submissions into logged no-ops.
func NewContactService(logger ports.Logger, notifier ports.ContactNotifier) (*ContactService, error) {
	if logger == nil {
		return nil, fmt.Errorf("missing required dependencies for ContactService")
	}
	return &ContactService{logger: logger, notifier: notifier}, nil
}

// SubmitContact forwards one contact message. Delivery failures are logged,
// never surfaced: the submission that triggered the notification must not
// fail because email delivery did.
func (s *ContactService) SubmitContact(ctx context.Context, msg domain.ContactMessage) {
	if msg.Name == "" || msg.Email == "" || msg.Message == "" {
		s.logger.Warn(ctx, "Dropping contact message with missing fields", map[string]interface{}{
			"hasName": msg.Name != "", "hasEmail": msg.Email != "", "hasMessage": msg.Message != ""})
		return
	}
	if s.notifier == nil {
		s.logger.Debug(ctx, "Contact notifier disabled, dropping message")
		return
	}
	if err := s.notifier.SendContact(ctx, msg); err != nil {
		s.logger.Error(ctx, err, "Failed to deliver contact message", map[string]interface{}{"email": msg.Email})
	}
}
