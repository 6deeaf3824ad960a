package models

type CreateCheckoutSessionRequest struct {
	PlanID string `json:"planId"`
	Email  string `json:"email"`
}

type CheckoutSessionResponse struct {
	URL string `json:"url"`
}

// PaymentNotice is what the webhook hands to the payment sink once a
// checkout session completes.
type PaymentNotice struct {
	EventID       string `json:"event_id"`
	SessionID     string `json:"session_id"`
	PlanID        string `json:"plan_id"`
	CustomerEmail string `json:"customer_email"`
}
