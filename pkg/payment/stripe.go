package payment

import (
	"encoding/json"

	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/checkout/session"
	"github.com/stripe/stripe-go/v74/webhook"
)

// EventCheckoutCompleted is the provider event emitted after a hosted
// checkout session is paid.
const EventCheckoutCompleted = "checkout.session.completed"

// SessionParams describes the hosted session to create. The amount is in
// minor currency units and is decided by the caller's catalog.
type SessionParams struct {
	PlanName        string
	PlanDescription string
	Amount          int64
	Currency        string
	CustomerEmail   string
	SuccessURL      string
	CancelURL       string
	Metadata        map[string]string
}

type Session struct {
	ID  string
	URL string
}

// Event is a verified webhook event. Session is populated for checkout
// session events and nil otherwise.
type Event struct {
	ID      string
	Type    string
	Session *CheckoutSessionData
}

type CheckoutSessionData struct {
	ID            string
	CustomerEmail string
	PlanID        string
}

type StripeService struct {
	webhookSecret string
}

func NewStripeService(secretKey, webhookSecret string) *StripeService {
	stripe.Key = secretKey
	return &StripeService{
		webhookSecret: webhookSecret,
	}
}

func (s *StripeService) CreateCheckoutSession(p SessionParams) (*Session, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(p.SuccessURL),
		CancelURL:  stripe.String(p.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Quantity: stripe.Int64(1),
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(p.Currency),
					UnitAmount: stripe.Int64(p.Amount),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(p.PlanName),
						Description: stripe.String(p.PlanDescription),
					},
				},
			},
		},
	}

	if p.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(p.CustomerEmail)
	}
	for k, v := range p.Metadata {
		params.AddMetadata(k, v)
	}

	sess, err := session.New(params)
	if err != nil {
		return nil, err
	}

	return &Session{ID: sess.ID, URL: sess.URL}, nil
}

// VerifyEvent validates the signature header against the raw payload and
// parses the event. The signature check covers the exact bytes received.
func (s *StripeService) VerifyEvent(payload []byte, sigHeader string) (Event, error) {
	event, err := webhook.ConstructEventWithOptions(payload, sigHeader, s.webhookSecret,
		webhook.ConstructEventOptions{
			IgnoreAPIVersionMismatch: true,
		})
	if err != nil {
		return Event{}, err
	}

	out := Event{
		ID:   event.ID,
		Type: string(event.Type),
	}

	if out.Type == EventCheckoutCompleted {
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			// Signature already verified; a malformed object payload is
			// the provider's bug, not an authentication failure. Hand the
			// event back without session data and let the caller log it.
			return out, nil
		}
		data := &CheckoutSessionData{
			ID:     sess.ID,
			PlanID: sess.Metadata["planId"],
		}
		if sess.CustomerDetails != nil {
			data.CustomerEmail = sess.CustomerDetails.Email
		}
		if data.CustomerEmail == "" {
			data.CustomerEmail = sess.CustomerEmail
		}
		out.Session = data
	}

	return out, nil
}
