package service

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/diegousa/website-backend/internal/models"
	"github.com/diegousa/website-backend/pkg/payment"
	"github.com/diegousa/website-backend/pkg/utils"
)

// CheckoutProvider is the narrow payment-provider capability the service
// needs. The concrete Stripe adapter lives in pkg/payment; tests inject
// fakes.
type CheckoutProvider interface {
	CreateCheckoutSession(p payment.SessionParams) (*payment.Session, error)
	VerifyEvent(payload []byte, sigHeader string) (payment.Event, error)
}

// PaymentSink receives the side effect for a completed checkout.
type PaymentSink interface {
	RecordPayment(notice models.PaymentNotice) error
}

type PaymentService struct {
	provider  CheckoutProvider
	catalog   map[string]models.DepositPlan
	baseURL   string
	sink      PaymentSink
	deduper   *EventDeduper
	validator *utils.Validator
	logger    *zap.Logger
}

func NewPaymentService(
	provider CheckoutProvider,
	catalog map[string]models.DepositPlan,
	baseURL string,
	sink PaymentSink,
	deduper *EventDeduper,
	validator *utils.Validator,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		provider:  provider,
		catalog:   catalog,
		baseURL:   baseURL,
		sink:      sink,
		deduper:   deduper,
		validator: validator,
		logger:    logger,
	}
}

// CreateCheckoutSession validates the request and asks the provider for a
// hosted session. The charged amount always comes from the catalog;
// nothing about price is read from the client.
func (s *PaymentService) CreateCheckoutSession(planID, customerEmail string) (*models.CheckoutSessionResponse, error) {
	planID = utils.SafeText(planID, 40)
	customerEmail = utils.SafeText(customerEmail, 120)

	plan, ok := s.catalog[planID]
	if !ok {
		return nil, NewValidationError("Invalid plan.")
	}
	if customerEmail != "" && !s.validator.IsEmail(customerEmail) {
		return nil, NewValidationError("Invalid email.")
	}

	sess, err := s.provider.CreateCheckoutSession(payment.SessionParams{
		PlanName:        plan.Name,
		PlanDescription: plan.Description,
		Amount:          plan.Amount,
		Currency:        "usd",
		CustomerEmail:   customerEmail,
		SuccessURL:      s.baseURL + "/?paid=1",
		CancelURL:       s.baseURL + "/?canceled=1",
		Metadata:        map[string]string{"planId": plan.ID},
	})
	if err != nil {
		s.logger.Error("checkout session creation failed",
			zap.String("plan_id", plan.ID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", ErrProvider, err)
	}

	return &models.CheckoutSessionResponse{URL: sess.URL}, nil
}

// ProcessWebhook verifies the raw payload against the signature header,
// then dispatches on event type. Verified events are always acknowledged;
// only checkout completion carries a side effect, and each event id runs
// it at most once.
func (s *PaymentService) ProcessWebhook(payload []byte, sigHeader string) error {
	event, err := s.provider.VerifyEvent(payload, sigHeader)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSignature, err)
	}

	if event.ID != "" && !s.deduper.MarkProcessed(event.ID) {
		s.logger.Info("duplicate webhook delivery ignored", zap.String("event_id", event.ID))
		return nil
	}

	if event.Type != payment.EventCheckoutCompleted {
		return nil
	}
	if event.Session == nil {
		s.logger.Warn("checkout completed event without session payload",
			zap.String("event_id", event.ID))
		return nil
	}

	notice := models.PaymentNotice{
		EventID:       event.ID,
		SessionID:     event.Session.ID,
		PlanID:        event.Session.PlanID,
		CustomerEmail: event.Session.CustomerEmail,
	}
	if err := s.sink.RecordPayment(notice); err != nil {
		// The event id is already marked processed; a provider retry
		// would be deduped, so acknowledge and keep the failure in logs.
		s.logger.Error("payment side effect failed",
			zap.String("event_id", event.ID),
			zap.Error(err),
		)
	}

	return nil
}

// Deposits lists the catalog, cheapest first.
func (s *PaymentService) Deposits() []models.DepositPlan {
	plans := make([]models.DepositPlan, 0, len(s.catalog))
	for _, p := range s.catalog {
		plans = append(plans, p)
	}
	sort.Slice(plans, func(i, j int) bool { return plans[i].Amount < plans[j].Amount })
	return plans
}
