package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/tagadou/backend/internal/models"
)

func validContactRequest() *models.ContactRequest {
	return &models.ContactRequest{
		FirstName: "Marie",
		Email:     "marie@example.com",
		Subject:   "Question sur ma commande",
		Message:   "Bonjour,\nOù en est ma commande ?",
	}
}

func TestContactService_Send(t *testing.T) {
	ctx := context.Background()

	t.Run("sends to the configured recipient", func(t *testing.T) {
		var sentTo []string
		var sentSubject, sentBody string
		svc := NewContactService(&mockMailer{
			SendFunc: func(ctx context.Context, to []string, subject, html string) (string, error) {
				sentTo = to
				sentSubject = subject
				sentBody = html
				return "email-7", nil
			},
		}, "hello@tagadou.fr")

		id, err := svc.Send(ctx, validContactRequest())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if id != "email-7" {
			t.Errorf("expected provider id email-7, got %q", id)
		}
		if len(sentTo) != 1 || sentTo[0] != "hello@tagadou.fr" {
			t.Errorf("expected mail to hello@tagadou.fr, got %v", sentTo)
		}
		if !strings.Contains(sentSubject, "Question sur ma commande") {
			t.Errorf("expected subject to carry the form subject, got %q", sentSubject)
		}
		if !strings.Contains(sentBody, "marie@example.com") {
			t.Errorf("expected body to carry the sender email, got %q", sentBody)
		}
		if !strings.Contains(sentBody, "<br>") {
			t.Error("expected newlines converted to <br>")
		}
	})

	t.Run("escapes HTML in the message", func(t *testing.T) {
		var sentBody string
		svc := NewContactService(&mockMailer{
			SendFunc: func(ctx context.Context, to []string, subject, html string) (string, error) {
				sentBody = html
				return "id", nil
			},
		}, "hello@tagadou.fr")

		req := validContactRequest()
		req.Message = "<script>alert(1)</script>"
		if _, err := svc.Send(ctx, req); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Contains(sentBody, "<script>") {
			t.Error("expected the message to be HTML-escaped")
		}
	})

	t.Run("validation failures", func(t *testing.T) {
		mutations := map[string]func(*models.ContactRequest){
			"missing first name": func(r *models.ContactRequest) { r.FirstName = "  " },
			"invalid email":      func(r *models.ContactRequest) { r.Email = "not-an-email" },
			"missing subject":    func(r *models.ContactRequest) { r.Subject = "" },
			"missing message":    func(r *models.ContactRequest) { r.Message = "" },
			"oversized message":  func(r *models.ContactRequest) { r.Message = strings.Repeat("a", maxContactMessageLength+1) },
		}
		svc := NewContactService(&mockMailer{}, "hello@tagadou.fr")
		for name, mutate := range mutations {
			t.Run(name, func(t *testing.T) {
				req := validContactRequest()
				mutate(req)
				if _, err := svc.Send(ctx, req); !errors.Is(err, ErrInvalidContact) {
					t.Errorf("expected ErrInvalidContact, got %v", err)
				}
			})
		}
	})

	t.Run("provider failure", func(t *testing.T) {
		svc := NewContactService(&mockMailer{
			SendFunc: func(ctx context.Context, to []string, subject, html string) (string, error) {
				return "", errors.New("provider down")
			},
		}, "hello@tagadou.fr")

		if _, err := svc.Send(ctx, validContactRequest()); err == nil {
			t.Fatal("expected an error")
		}
	})
}
