package services

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net/mail"
	"strings"

	mailclient "github.com/tagadou/backend/internal/mail"
	"github.com/tagadou/backend/internal/models"
)

// ErrInvalidContact rejects a malformed contact form submission.
var ErrInvalidContact = errors.New("invalid contact request")

const maxContactMessageLength = 5000

// ContactService forwards contact form submissions by email.
type ContactService interface {
	Send(ctx context.Context, req *models.ContactRequest) (string, error)
}

// ContactServiceImpl implements ContactService.
type ContactServiceImpl struct {
	mailer    mailclient.Sender
	recipient string
}

// NewContactService creates a new ContactService sending to the given
// recipient address.
func NewContactService(mailer mailclient.Sender, recipient string) *ContactServiceImpl {
	return &ContactServiceImpl{mailer: mailer, recipient: recipient}
}

// Send validates the submission and sends the formatted notification
// email. It returns the provider email id.
func (s *ContactServiceImpl) Send(ctx context.Context, req *models.ContactRequest) (string, error) {
	if err := validateContact(req); err != nil {
		return "", err
	}

	subject := fmt.Sprintf("[Contact] %s", req.Subject)
	body := fmt.Sprintf(
		"<h2>Nouveau message de contact</h2>"+
			"<p><strong>De :</strong> %s (%s)</p>"+
			"<p><strong>Sujet :</strong> %s</p>"+
			"<hr><p>%s</p>",
		html.EscapeString(req.FirstName),
		html.EscapeString(req.Email),
		html.EscapeString(req.Subject),
		strings.ReplaceAll(html.EscapeString(req.Message), "\n", "<br>"),
	)

	id, err := s.mailer.Send(ctx, []string{s.recipient}, subject, body)
	if err != nil {
		return "", fmt.Errorf("failed to send contact email: %w", err)
	}

	return id, nil
}

func validateContact(req *models.ContactRequest) error {
	if strings.TrimSpace(req.FirstName) == "" {
		return fmt.Errorf("%w: first name is required", ErrInvalidContact)
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return fmt.Errorf("%w: valid email is required", ErrInvalidContact)
	}
	if strings.TrimSpace(req.Subject) == "" {
		return fmt.Errorf("%w: subject is required", ErrInvalidContact)
	}
	if strings.TrimSpace(req.Message) == "" {
		return fmt.Errorf("%w: message is required", ErrInvalidContact)
	}
	if len(req.Message) > maxContactMessageLength {
		return fmt.Errorf("%w: message is too long", ErrInvalidContact)
	}
	return nil
}
