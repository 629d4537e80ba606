package mail

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestResendClient_Send(t *testing.T) {
	ctx := context.Background()

	t.Run("successful send", func(t *testing.T) {
		var gotAuth string
		var gotBody sendRequest
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/emails" || r.Method != http.MethodPost {
				t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			}
			gotAuth = r.Header.Get("Authorization")
			if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
				t.Errorf("invalid request body: %v", err)
			}
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(sendResponse{ID: "re_123"})
		}))
		defer server.Close()

		client := NewResendClient("test-key", "Tagadou <hello@tagadou.fr>", time.Second).WithBaseURL(server.URL)

		id, err := client.Send(ctx, []string{"parent@example.com"}, "Confirmation", "<p>Merci</p>")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if id != "re_123" {
			t.Errorf("expected id re_123, got %q", id)
		}
		if gotAuth != "Bearer test-key" {
			t.Errorf("expected bearer auth, got %q", gotAuth)
		}
		if gotBody.From != "Tagadou <hello@tagadou.fr>" {
			t.Errorf("unexpected from: %q", gotBody.From)
		}
		if len(gotBody.To) != 1 || gotBody.To[0] != "parent@example.com" {
			t.Errorf("unexpected recipients: %v", gotBody.To)
		}
		if gotBody.Subject != "Confirmation" || gotBody.HTML != "<p>Merci</p>" {
			t.Errorf("unexpected payload: %+v", gotBody)
		}
	})

	t.Run("provider rejection", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
		}))
		defer server.Close()

		client := NewResendClient("test-key", "hello@tagadou.fr", time.Second).WithBaseURL(server.URL)

		if _, err := client.Send(ctx, []string{"parent@example.com"}, "s", "b"); !errors.Is(err, ErrSendFailed) {
			t.Fatalf("expected ErrSendFailed, got %v", err)
		}
	})

	t.Run("unreachable provider", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		client := NewResendClient("test-key", "hello@tagadou.fr", time.Second).WithBaseURL(server.URL)

		if _, err := client.Send(ctx, []string{"parent@example.com"}, "s", "b"); err == nil {
			t.Fatal("expected an error")
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer server.Close()

		client := NewResendClient("test-key", "hello@tagadou.fr", time.Second).WithBaseURL(server.URL)

		cancelCtx, cancel := context.WithCancel(ctx)
		cancel()
		if _, err := client.Send(cancelCtx, []string{"parent@example.com"}, "s", "b"); err == nil {
			t.Fatal("expected an error")
		}
	})
}
