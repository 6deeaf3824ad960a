package handler

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/diegousa/website-backend/internal/models"
	"github.com/diegousa/website-backend/internal/service"
	"github.com/diegousa/website-backend/pkg/payment"
	"github.com/diegousa/website-backend/pkg/utils"
)

const testWebhookSecret = "whsec_test_secret"

type spySink struct {
	mu       sync.Mutex
	payments []models.PaymentNotice
	leads    []models.Lead
}

func (s *spySink) RecordPayment(n models.PaymentNotice) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payments = append(s.payments, n)
	return nil
}

func (s *spySink) RecordLead(l models.Lead) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leads = append(s.leads, l)
	return nil
}

type fakeProvider struct {
	createCalls []payment.SessionParams
	session     *payment.Session
}

func (f *fakeProvider) CreateCheckoutSession(p payment.SessionParams) (*payment.Session, error) {
	f.createCalls = append(f.createCalls, p)
	return f.session, nil
}

func (f *fakeProvider) VerifyEvent(payload []byte, sigHeader string) (payment.Event, error) {
	return payment.Event{}, nil
}

func newWebhookApp(t *testing.T, secret string, sink service.PaymentSink) *fiber.App {
	t.Helper()

	provider := payment.NewStripeService("sk_test_key", secret)
	svc := service.NewPaymentService(
		provider,
		models.DepositCatalog(),
		"http://localhost:3000",
		sink,
		service.NewEventDeduper(time.Hour),
		utils.NewValidator(),
		zap.NewNop(),
	)
	h := NewPaymentHandler(svc, secret, zap.NewNop())

	app := fiber.New()
	app.Post("/webhook/stripe", h.HandleStripeWebhook)
	return app
}

func newCheckoutApp(t *testing.T, provider service.CheckoutProvider) *fiber.App {
	t.Helper()

	svc := service.NewPaymentService(
		provider,
		models.DepositCatalog(),
		"http://localhost:3000",
		&spySink{},
		service.NewEventDeduper(time.Hour),
		utils.NewValidator(),
		zap.NewNop(),
	)
	h := NewPaymentHandler(svc, testWebhookSecret, zap.NewNop())

	app := fiber.New()
	app.Post("/api/create-checkout-session", h.CreateCheckoutSession)
	app.Get("/api/deposits", h.GetDeposits)
	return app
}

// signPayload builds a Stripe-Signature header the SDK's verifier accepts:
// an HMAC-SHA256 of "<timestamp>.<payload>" keyed with the shared secret.
func signPayload(payload []byte, secret string, ts time.Time) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", ts.Unix())
	mac.Write(payload)
	return fmt.Sprintf("t=%d,v1=%s", ts.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

func completedEventPayload(eventID, sessionID string) []byte {
	return []byte(fmt.Sprintf(`{
		"id": %q,
		"type": "checkout.session.completed",
		"data": {
			"object": {
				"id": %q,
				"customer_details": {"email": "buyer@example.com"},
				"metadata": {"planId": "starter_deposit"}
			}
		}
	}`, eventID, sessionID))
}

func postWebhook(t *testing.T, app *fiber.App, payload []byte, sig string) (int, string) {
	t.Helper()

	req := httptest.NewRequest("POST", "/webhook/stripe", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if sig != "" {
		req.Header.Set("Stripe-Signature", sig)
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func TestWebhookValidSignatureCompletedSession(t *testing.T) {
	sink := &spySink{}
	app := newWebhookApp(t, testWebhookSecret, sink)

	payload := completedEventPayload("evt_1", "cs_1")
	status, respBody := postWebhook(t, app, payload, signPayload(payload, testWebhookSecret, time.Now()))

	if status != fiber.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", status, respBody)
	}

	var body models.ReceivedBody
	if err := json.Unmarshal([]byte(respBody), &body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if !body.Received {
		t.Error(`response missing "received": true`)
	}

	if len(sink.payments) != 1 {
		t.Fatalf("side effect ran %d times, want exactly 1", len(sink.payments))
	}
	got := sink.payments[0]
	if got.SessionID != "cs_1" || got.CustomerEmail != "buyer@example.com" || got.PlanID != "starter_deposit" {
		t.Errorf("recorded notice %+v does not match event payload", got)
	}
}

func TestWebhookInvalidSignature(t *testing.T) {
	sink := &spySink{}
	app := newWebhookApp(t, testWebhookSecret, sink)

	payload := completedEventPayload("evt_1", "cs_1")

	tests := []struct {
		name string
		sig  string
	}{
		{"missing header", ""},
		{"garbage header", "t=1,v1=deadbeef"},
		{"wrong secret", signPayload(payload, "whsec_other_secret", time.Now())},
		{"stale timestamp", signPayload(payload, testWebhookSecret, time.Now().Add(-time.Hour))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _ := postWebhook(t, app, payload, tt.sig)

			if status != fiber.StatusBadRequest {
				t.Errorf("status = %d, want 400", status)
			}
			if len(sink.payments) != 0 {
				t.Error("side effect ran for an unverified request")
			}
		})
	}
}

func TestWebhookTamperedPayload(t *testing.T) {
	sink := &spySink{}
	app := newWebhookApp(t, testWebhookSecret, sink)

	payload := completedEventPayload("evt_1", "cs_1")
	sig := signPayload(payload, testWebhookSecret, time.Now())
	tampered := bytes.Replace(payload, []byte("cs_1"), []byte("cs_2"), 1)

	status, _ := postWebhook(t, app, tampered, sig)

	if status != fiber.StatusBadRequest {
		t.Errorf("status = %d, want 400", status)
	}
	if len(sink.payments) != 0 {
		t.Error("side effect ran for a tampered payload")
	}
}

func TestWebhookMissingSecret(t *testing.T) {
	sink := &spySink{}
	app := newWebhookApp(t, "", sink)

	payload := completedEventPayload("evt_1", "cs_1")
	status, _ := postWebhook(t, app, payload, signPayload(payload, testWebhookSecret, time.Now()))

	if status != fiber.StatusInternalServerError {
		t.Errorf("status = %d, want 500 when no secret is configured", status)
	}
	if len(sink.payments) != 0 {
		t.Error("side effect ran without a configured secret")
	}
}

func TestWebhookDuplicateDelivery(t *testing.T) {
	sink := &spySink{}
	app := newWebhookApp(t, testWebhookSecret, sink)

	payload := completedEventPayload("evt_1", "cs_1")

	for i := 0; i < 2; i++ {
		status, _ := postWebhook(t, app, payload, signPayload(payload, testWebhookSecret, time.Now()))
		if status != fiber.StatusOK {
			t.Fatalf("delivery %d: status = %d, want 200", i+1, status)
		}
	}

	if len(sink.payments) != 1 {
		t.Errorf("side effect ran %d times across retried deliveries, want 1", len(sink.payments))
	}
}

func TestWebhookUnrecognizedEventAcknowledged(t *testing.T) {
	sink := &spySink{}
	app := newWebhookApp(t, testWebhookSecret, sink)

	payload := []byte(`{"id": "evt_2", "type": "invoice.paid", "data": {"object": {"id": "in_1"}}}`)
	status, _ := postWebhook(t, app, payload, signPayload(payload, testWebhookSecret, time.Now()))

	if status != fiber.StatusOK {
		t.Errorf("status = %d, want 200 for any well-signed event", status)
	}
	if len(sink.payments) != 0 {
		t.Error("side effect ran for an unrecognized event type")
	}
}

func TestCreateCheckoutSessionEndpoint(t *testing.T) {
	provider := &fakeProvider{session: &payment.Session{ID: "cs_1", URL: "https://pay.example/cs_1"}}
	app := newCheckoutApp(t, provider)

	req := httptest.NewRequest("POST", "/api/create-checkout-session",
		strings.NewReader(`{"planId": "starter_deposit", "email": "a@b.com"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body models.CheckoutSessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if body.URL != "https://pay.example/cs_1" {
		t.Errorf("url = %q, want the provider redirect URL", body.URL)
	}
}

func TestCreateCheckoutSessionIgnoresClientAmount(t *testing.T) {
	provider := &fakeProvider{session: &payment.Session{ID: "cs_1", URL: "https://pay.example/cs_1"}}
	app := newCheckoutApp(t, provider)

	// An attacker-supplied amount field must have no effect: the request
	// schema has no amount on purpose, and the charge comes from the
	// catalog.
	req := httptest.NewRequest("POST", "/api/create-checkout-session",
		strings.NewReader(`{"planId": "starter_deposit", "amount": 1, "unit_amount": 1}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if len(provider.createCalls) != 1 {
		t.Fatalf("provider called %d times, want 1", len(provider.createCalls))
	}
	if got := provider.createCalls[0].Amount; got != 15000 {
		t.Errorf("amount = %d, want the catalog's 15000 regardless of request body", got)
	}
}

func TestCreateCheckoutSessionInvalidPlanEndpoint(t *testing.T) {
	provider := &fakeProvider{session: &payment.Session{ID: "cs_1", URL: "https://pay.example/cs_1"}}
	app := newCheckoutApp(t, provider)

	req := httptest.NewRequest("POST", "/api/create-checkout-session",
		strings.NewReader(`{"planId": "free_lunch"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}

	var body models.ErrorBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if body.Error != "Invalid plan." {
		t.Errorf("error = %q, want %q", body.Error, "Invalid plan.")
	}
	if len(provider.createCalls) != 0 {
		t.Error("provider contacted for an unknown plan")
	}
}

func TestGetDeposits(t *testing.T) {
	app := newCheckoutApp(t, &fakeProvider{})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/deposits", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var plans []models.DepositPlan
	if err := json.NewDecoder(resp.Body).Decode(&plans); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if len(plans) != 3 {
		t.Fatalf("got %d plans, want 3", len(plans))
	}
	if plans[0].ID != "starter_deposit" || plans[0].Amount != 15000 {
		t.Errorf("first plan = %+v, want starter_deposit at 15000", plans[0])
	}
}
