package payment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

// paypalStub wires the token endpoint plus one orders handler.
func paypalStub(t *testing.T, ordersHandler http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "client-id" || pass != "client-secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(tokenResponse{AccessToken: "access-token"})
	})
	mux.HandleFunc("/v2/checkout/orders", ordersHandler)
	mux.HandleFunc("/v2/checkout/orders/", ordersHandler)
	return httptest.NewServer(mux)
}

func TestClient_CreateOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("returns id and approval link", func(t *testing.T) {
		var gotOrder createOrderRequest
		server := paypalStub(t, func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer access-token" {
				t.Errorf("unexpected auth header: %q", r.Header.Get("Authorization"))
			}
			if err := json.NewDecoder(r.Body).Decode(&gotOrder); err != nil {
				t.Errorf("invalid order body: %v", err)
			}
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(orderResponse{
				ID: "PP-42",
				Links: []link{
					{Href: "https://paypal.test/self", Rel: "self"},
					{Href: "https://paypal.test/approve/PP-42", Rel: "approve"},
				},
			})
		})
		defer server.Close()

		client := NewClient(server.URL, "client-id", "client-secret", time.Second)

		id, approvalURL, err := client.CreateOrder(ctx, decimal.NewFromFloat(33.40), "EUR", "TGD-00042")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if id != "PP-42" {
			t.Errorf("expected id PP-42, got %q", id)
		}
		if approvalURL != "https://paypal.test/approve/PP-42" {
			t.Errorf("unexpected approval URL: %q", approvalURL)
		}
		if gotOrder.Intent != "CAPTURE" {
			t.Errorf("expected intent CAPTURE, got %q", gotOrder.Intent)
		}
		if len(gotOrder.PurchaseUnits) != 1 {
			t.Fatalf("expected one purchase unit, got %d", len(gotOrder.PurchaseUnits))
		}
		unit := gotOrder.PurchaseUnits[0]
		if unit.Amount.Value != "33.40" || unit.Amount.CurrencyCode != "EUR" {
			t.Errorf("unexpected amount: %+v", unit.Amount)
		}
		if unit.ReferenceID != "TGD-00042" {
			t.Errorf("unexpected reference: %q", unit.ReferenceID)
		}
	})

	t.Run("no approval link", func(t *testing.T) {
		server := paypalStub(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(orderResponse{ID: "PP-43"})
		})
		defer server.Close()

		client := NewClient(server.URL, "client-id", "client-secret", time.Second)
		if _, _, err := client.CreateOrder(ctx, decimal.NewFromInt(10), "EUR", "ref"); !errors.Is(err, ErrNoApprovalLink) {
			t.Fatalf("expected ErrNoApprovalLink, got %v", err)
		}
	})

	t.Run("rejected order", func(t *testing.T) {
		server := paypalStub(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
		})
		defer server.Close()

		client := NewClient(server.URL, "client-id", "client-secret", time.Second)
		if _, _, err := client.CreateOrder(ctx, decimal.NewFromInt(10), "EUR", "ref"); !errors.Is(err, ErrOrderCreateFailed) {
			t.Fatalf("expected ErrOrderCreateFailed, got %v", err)
		}
	})

	t.Run("bad credentials", func(t *testing.T) {
		server := paypalStub(t, func(w http.ResponseWriter, r *http.Request) {})
		defer server.Close()

		client := NewClient(server.URL, "client-id", "wrong-secret", time.Second)
		if _, _, err := client.CreateOrder(ctx, decimal.NewFromInt(10), "EUR", "ref"); !errors.Is(err, ErrAuthFailed) {
			t.Fatalf("expected ErrAuthFailed, got %v", err)
		}
	})
}

func TestClient_CaptureOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("completed capture", func(t *testing.T) {
		server := paypalStub(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/v2/checkout/orders/PP-42/capture" {
				t.Errorf("unexpected path: %s", r.URL.Path)
			}
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(orderResponse{ID: "PP-42", Status: "COMPLETED"})
		})
		defer server.Close()

		client := NewClient(server.URL, "client-id", "client-secret", time.Second)
		if err := client.CaptureOrder(ctx, "PP-42"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("capture not completed", func(t *testing.T) {
		server := paypalStub(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(orderResponse{ID: "PP-42", Status: "PENDING"})
		})
		defer server.Close()

		client := NewClient(server.URL, "client-id", "client-secret", time.Second)
		if err := client.CaptureOrder(ctx, "PP-42"); !errors.Is(err, ErrCaptureNotComplete) {
			t.Fatalf("expected ErrCaptureNotComplete, got %v", err)
		}
	})

	t.Run("capture rejected", func(t *testing.T) {
		server := paypalStub(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
		})
		defer server.Close()

		client := NewClient(server.URL, "client-id", "client-secret", time.Second)
		if err := client.CaptureOrder(ctx, "PP-42"); !errors.Is(err, ErrCaptureFailed) {
			t.Fatalf("expected ErrCaptureFailed, got %v", err)
		}
	})
}
